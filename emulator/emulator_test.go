package emulator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"

	"github.com/kkkunny/chip8vm/config"
	"github.com/kkkunny/chip8vm/vm"
)

func newTestEmulator(t *testing.T, rom []uint8, opts Options) *Emulator {
	t.Helper()
	logger := log.NewTestLogger(t)
	machine, err := vm.NewMachine(rom, vm.WithLogger(logger))
	assert.NoError(t, err)
	return New(machine, opts, logger)
}

func TestNewDefaults(t *testing.T) {
	e := newTestEmulator(t, nil, Options{})
	assert.Equal(t, config.DefaultCycleRate, e.opts.CycleRate)
	assert.Equal(t, config.DefaultTimerRate, e.opts.TimerRate)
	assert.NotNil(t, e.Machine())
}

func TestCycleAppliesInputFirst(t *testing.T) {
	e := newTestEmulator(t, []uint8{0xF0, 0x0A, 0x12, 0x02}, Options{})

	assert.NoError(t, e.Cycle())
	assert.Equal(t, uint16(0x200), e.Machine().PC())

	e.Input() <- KeyDown(5)
	assert.NoError(t, e.Cycle())
	assert.Equal(t, uint8(5), e.Machine().Register(0))
	assert.Equal(t, uint16(0x202), e.Machine().PC())
	assert.True(t, e.Machine().Key(5))

	e.Input() <- KeyUp(5)
	e.Input() <- KeyDown(0x10)
	assert.NoError(t, e.Cycle())
	assert.False(t, e.Machine().Key(5))
}

func TestSoundEdges(t *testing.T) {
	e := newTestEmulator(t, []uint8{0x60, 0x03, 0xF0, 0x18, 0x12, 0x04}, Options{})
	var events []bool
	e.SetOnSound(func(on bool) { events = append(events, on) })

	assert.NoError(t, e.Cycle())
	assert.NoError(t, e.Cycle())
	assert.Equal(t, []bool{true}, events)

	e.TickTimers()
	e.TickTimers()
	assert.NoError(t, e.Cycle())
	assert.Equal(t, []bool{true}, events)

	e.TickTimers()
	assert.Equal(t, []bool{true, false}, events)
}

func TestFrameCallback(t *testing.T) {
	rom := []uint8{
		0x60, 0x00, // v0 = 0
		0xF0, 0x29, // i = glyph 0
		0xD0, 0x05, // draw
		0x12, 0x06, // loop
	}
	e := newTestEmulator(t, rom, Options{})
	var frames []vm.Frame
	e.SetOnFrame(func(frame vm.Frame) { frames = append(frames, frame) })

	e.TickTimers()
	assert.Len(t, frames, 1)
	e.TickTimers()
	assert.Len(t, frames, 1)

	for range 3 {
		assert.NoError(t, e.Cycle())
	}
	e.TickTimers()
	assert.Len(t, frames, 2)
	assert.True(t, frames[1].Pixel(0, 0))
	assert.False(t, frames[0].Pixel(0, 0))
}

func TestRunStopsOnContext(t *testing.T) {
	e := newTestEmulator(t, []uint8{0x12, 0x00}, Options{CycleRate: 1000, TimerRate: 60})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := e.Run(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, uint16(0x200), e.Machine().PC())
}

func TestRunStopsOnFatalError(t *testing.T) {
	e := newTestEmulator(t, []uint8{0x60, 0x05, 0xF0, 0x18, 0x00, 0xEE}, Options{CycleRate: 1000, TimerRate: 60})
	var events []bool
	e.SetOnSound(func(on bool) { events = append(events, on) })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := e.Run(ctx)
	assert.True(t, errors.Is(err, vm.ErrStackUnderflow))
	assert.Equal(t, err, e.Machine().Halted())
	assert.Equal(t, []bool{true, false}, events)
}

func TestNewFromOptions(t *testing.T) {
	opts, err := config.ParseFlags([]string{"-stack", "1", "-seed", "99", "-hz", "250", "rom.ch8"})
	assert.NoError(t, err)

	e, err := NewFromOptions([]uint8{0x22, 0x00}, opts, log.NewTestLogger(t))
	assert.NoError(t, err)
	assert.Equal(t, 250, e.opts.CycleRate)

	assert.NoError(t, e.Cycle())
	assert.True(t, errors.Is(e.Cycle(), vm.ErrStackOverflow))

	other, err := NewFromOptions([]uint8{0xC0, 0xFF}, opts, log.NewTestLogger(t))
	assert.NoError(t, err)
	same, err := NewFromOptions([]uint8{0xC0, 0xFF}, opts, log.NewTestLogger(t))
	assert.NoError(t, err)
	assert.NoError(t, other.Cycle())
	assert.NoError(t, same.Cycle())
	assert.Equal(t, other.Machine().Register(0), same.Machine().Register(0))

	_, err = NewFromOptions(make([]uint8, vm.MaxROMSize+1), opts, log.NewTestLogger(t))
	assert.True(t, errors.Is(err, vm.ErrROMTooLarge))
}
