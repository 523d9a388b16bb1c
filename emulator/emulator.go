// Package emulator drives a vm.Machine: it runs instruction cycles and timer
// ticks at independent rates and applies keyboard input between cycles.
package emulator

import (
	"context"
	"time"

	"github.com/kkkunny/stl/container/tuple"
	stlval "github.com/kkkunny/stl/value"
	"github.com/retroenv/retrogolib/log"

	"github.com/kkkunny/chip8vm/config"
	"github.com/kkkunny/chip8vm/vm"
)

// Options sets the cadence of the emulation loop.
type Options struct {
	CycleRate int // instructions per second
	TimerRate int // timer decrements per second
}

// Emulator owns a machine and is the only code that touches it while Run is
// active.
type Emulator struct {
	machine *vm.Machine
	logger  *log.Logger
	opts    Options

	input chan tuple.Tuple2[KeyEvent, uint8]

	onFrame func(vm.Frame)
	onSound func(bool)

	frameVersion uint64
	sounding     bool
}

// New creates an emulator for the machine. Zero rates fall back to the
// config defaults, a nil logger to config.Logger.
func New(machine *vm.Machine, opts Options, logger *log.Logger) *Emulator {
	if opts.CycleRate <= 0 {
		opts.CycleRate = config.DefaultCycleRate
	}
	if opts.TimerRate <= 0 {
		opts.TimerRate = config.DefaultTimerRate
	}
	if logger == nil {
		logger = config.Logger
	}
	return &Emulator{
		machine: machine,
		logger:  logger,
		opts:    opts,
		input:   make(chan tuple.Tuple2[KeyEvent, uint8], inputBuffer),
	}
}

func (e *Emulator) Machine() *vm.Machine { return e.machine }

// Input returns the channel key events are sent to. Events are applied to
// the keypad before the next cycle.
func (e *Emulator) Input() chan<- tuple.Tuple2[KeyEvent, uint8] { return e.input }

// SetOnFrame sets the callback receiving the display after it changed. It is
// called at timer rate at most.
func (e *Emulator) SetOnFrame(onFrame func(vm.Frame)) {
	e.onFrame = onFrame
}

// SetOnSound sets the callback told when the sound timer starts and stops
// running.
func (e *Emulator) SetOnSound(onSound func(on bool)) {
	e.onSound = onSound
}

// Cycle applies pending input and executes one instruction.
func (e *Emulator) Cycle() error {
	e.applyInput()
	if err := e.machine.Step(); err != nil {
		return err
	}
	e.updateSound()
	return nil
}

// TickTimers decrements the timers and publishes a changed display.
func (e *Emulator) TickTimers() {
	e.machine.TickTimers()
	e.updateSound()
	e.updateFrame()
}

// Run executes cycles and timer ticks until the context is done or a cycle
// fails. It returns the context error or the fatal machine error.
func (e *Emulator) Run(ctx context.Context) error {
	e.logger.Debug("Emulation started",
		log.Int("cycle_rate", e.opts.CycleRate),
		log.Int("timer_rate", e.opts.TimerRate))
	defer e.setSound(false)

	cycles := time.NewTicker(time.Second / time.Duration(e.opts.CycleRate))
	defer cycles.Stop()
	timers := time.NewTicker(time.Second / time.Duration(e.opts.TimerRate))
	defer timers.Stop()

	e.updateFrame()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-cycles.C:
			if err := e.Cycle(); err != nil {
				e.updateFrame()
				return err
			}

		case <-timers.C:
			e.TickTimers()
		}
	}
}

func (e *Emulator) updateFrame() {
	version := e.machine.DisplayVersion()
	if version == e.frameVersion {
		return
	}
	e.frameVersion = version
	if e.onFrame != nil {
		e.onFrame(e.machine.Display())
	}
}

func (e *Emulator) updateSound() {
	e.setSound(e.machine.SoundTimer() > 0)
}

func (e *Emulator) setSound(on bool) {
	if on == e.sounding {
		return
	}
	e.sounding = on
	e.logger.Debug("Sound", log.String("state", stlval.Ternary(on, "on", "off")))
	if e.onSound != nil {
		e.onSound(on)
	}
}
