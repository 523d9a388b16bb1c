package vm

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestMachine(t *testing.T, rom []uint8, opts ...Option) *Machine {
	t.Helper()
	defaults := []Option{
		WithLogger(log.NewTestLogger(t)),
		WithRandomSource(rand.NewPCG(1, 2)),
	}
	m, err := NewMachine(rom, append(defaults, opts...)...)
	assert.NoError(t, err)
	return m
}

// run parses and executes instruction literals in order.
func run(t *testing.T, m *Machine, literals ...string) {
	t.Helper()
	for _, literal := range literals {
		op, err := ParseOpcode(literal)
		assert.NoError(t, err)
		assert.NoError(t, m.Execute(op))
	}
}

func memoryAt(t *testing.T, m *Machine, addr uint16) uint8 {
	t.Helper()
	b, err := m.Memory(addr)
	assert.NoError(t, err)
	return b
}

func TestNewMachine(t *testing.T) {
	rom := []uint8{0x00, 0xE0, 0xA2, 0x2A, 0x60, 0x0C}
	m := newTestMachine(t, rom)

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, uint16(0), m.Index())
	assert.Equal(t, 0, m.StackDepth())
	_, ok := m.StackTop()
	assert.False(t, ok)
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
	assert.NoError(t, m.Halted())

	for x := range uint8(RegisterCount) {
		assert.Equal(t, uint8(0), m.Register(x))
	}
	for key := range uint8(KeyCount) {
		assert.False(t, m.Key(key))
	}
	assert.Equal(t, Frame{}, m.Display())

	for i, b := range rom {
		assert.Equal(t, b, memoryAt(t, m, uint16(ProgramStart+i)))
	}
	assert.Equal(t, uint8(0), memoryAt(t, m, uint16(ProgramStart+len(rom))))

	for i, b := range fontset {
		assert.Equal(t, b, memoryAt(t, m, uint16(FontOffset+i)))
	}
	assert.Equal(t, uint8(0), memoryAt(t, m, 0))
}

func TestNewMachineROMSize(t *testing.T) {
	full := bytes.Repeat([]uint8{0xAB}, MaxROMSize)
	m := newTestMachine(t, full)
	assert.Equal(t, uint8(0xAB), memoryAt(t, m, MemorySize-1))

	_, err := NewMachine(append(full, 0xCD), WithLogger(log.NewTestLogger(t)))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrROMTooLarge))
}

func TestNewMachineInvalidStackDepth(t *testing.T) {
	_, err := NewMachine(nil, WithStackDepth(0), WithLogger(log.NewTestLogger(t)))
	assert.Error(t, err)
}

func TestMachineMemoryBounds(t *testing.T) {
	m := newTestMachine(t, nil)

	_, err := m.Memory(MemorySize - 1)
	assert.NoError(t, err)

	_, err = m.Memory(MemorySize)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestMachineSetKey(t *testing.T) {
	m := newTestMachine(t, nil)

	assert.NoError(t, m.SetKey(0xA, true))
	assert.True(t, m.Key(0xA))
	assert.NoError(t, m.SetKey(0xA, false))
	assert.False(t, m.Key(0xA))

	err := m.SetKey(KeyCount, true)
	assert.True(t, errors.Is(err, ErrInvalidKey))
}

func TestMachineTickTimers(t *testing.T) {
	m := newTestMachine(t, nil)
	run(t, m, "6002", "6101", "F015", "F118")

	m.TickTimers()
	assert.Equal(t, uint8(1), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())

	m.TickTimers()
	m.TickTimers()
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
}

func TestMachineReset(t *testing.T) {
	rom := []uint8{0x22, 0x00}
	m := newTestMachine(t, rom)

	run(t, m, "6A12", "A300", "F055", "D005", "F018")
	assert.NoError(t, m.SetKey(3, true))
	assert.NoError(t, m.Step())
	assert.NoError(t, m.Reset())

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, uint16(0), m.Index())
	assert.Equal(t, uint8(0), m.Register(0xA))
	assert.Equal(t, uint8(0), m.SoundTimer())
	assert.Equal(t, 0, m.StackDepth())
	assert.False(t, m.Key(3))
	assert.Equal(t, Frame{}, m.Display())
	assert.Equal(t, uint8(0), memoryAt(t, m, 0x300))
	assert.Equal(t, uint8(0x22), memoryAt(t, m, ProgramStart))
}

func TestFramePixel(t *testing.T) {
	var f Frame
	f[3+2*DisplayWidth] = true

	assert.True(t, f.Pixel(3, 2))
	assert.False(t, f.Pixel(2, 3))
	assert.False(t, f.Pixel(-1, 0))
	assert.False(t, f.Pixel(DisplayWidth, 0))
	assert.False(t, f.Pixel(0, DisplayHeight))
}
