// Package vm implements the CHIP-8 instruction cycle engine.
//
// A Machine owns memory, registers, the call stack, the display, the keypad
// and both timers. It never runs on its own: the host calls Step at its own
// cadence, decrements the timers with TickTimers and updates keys with SetKey,
// always between cycles and never concurrently.
package vm

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/kkkunny/chip8vm/config"
	"github.com/retroenv/retrogolib/log"
	exprand "golang.org/x/exp/rand"
)

// RegisterCount is the number of general purpose registers, VF included.
const RegisterCount = 16

// flagRegister is VF, overwritten by carry, borrow and collision results.
const flagRegister = 0xF

// Machine is the state of one CHIP-8 session.
type Machine struct {
	v          [RegisterCount]uint8
	i          uint16
	pc         uint16
	delayTimer uint8
	soundTimer uint8

	rom      []uint8
	memory   *memory
	stack    *callStack
	screen   *screen
	keyboard *keyboard
	rand     *rand.Rand

	logger      *log.Logger
	diagnostics func(error)
	trace       bool

	// fault latches the first fatal cycle error.
	fault error
}

type settings struct {
	stackDepth  int
	source      rand.Source
	logger      *log.Logger
	diagnostics func(error)
	trace       bool
}

// Option configures a Machine.
type Option func(*settings)

// WithStackDepth sets the maximum number of nested calls, 16 by default.
func WithStackDepth(depth int) Option {
	return func(s *settings) { s.stackDepth = depth }
}

// WithRandomSource sets the source used by the random instruction.
func WithRandomSource(src rand.Source) Option {
	return func(s *settings) { s.source = src }
}

// WithLogger sets the logger, config.Logger by default.
func WithLogger(logger *log.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithDiagnostics registers a callback for recoverable problems such as
// unknown opcodes. They are logged as warnings regardless.
func WithDiagnostics(fn func(error)) Option {
	return func(s *settings) { s.diagnostics = fn }
}

// WithTrace enables debug logging of every executed instruction.
func WithTrace(enabled bool) Option {
	return func(s *settings) { s.trace = enabled }
}

// NewMachine creates a machine with the ROM loaded at ProgramStart.
func NewMachine(rom []uint8, opts ...Option) (*Machine, error) {
	s := settings{stackDepth: 16}
	for _, opt := range opts {
		opt(&s)
	}
	if s.stackDepth <= 0 {
		return nil, fmt.Errorf("invalid stack depth %d", s.stackDepth)
	}
	if s.source == nil {
		s.source = exprand.NewSource(uint64(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = config.Logger
	}

	m := &Machine{
		rom:         append([]uint8(nil), rom...),
		memory:      newMemory(),
		stack:       newCallStack(s.stackDepth),
		screen:      newScreen(),
		keyboard:    newKeyboard(),
		rand:        rand.New(s.source),
		logger:      s.logger,
		diagnostics: s.diagnostics,
		trace:       s.trace,
	}
	if err := m.Reset(); err != nil {
		return nil, err
	}
	return m, nil
}

// Reset restores the state right after construction, reloading the ROM.
func (m *Machine) Reset() error {
	m.v = [RegisterCount]uint8{}
	m.i = 0
	m.pc = ProgramStart
	m.delayTimer = 0
	m.soundTimer = 0
	m.fault = nil
	m.memory.Reset()
	m.stack.Clear()
	m.screen.Reset()
	m.keyboard.Reset()
	return m.memory.Load(m.rom)
}

func (m *Machine) PC() uint16    { return m.pc }
func (m *Machine) Index() uint16 { return m.i }

// Register returns the value of register x, 0x0 to 0xF.
func (m *Machine) Register(x uint8) uint8 { return m.v[x&0x0F] }

// Memory returns the byte at addr.
func (m *Machine) Memory(addr uint16) (uint8, error) {
	return m.memory.Get(uint(addr))
}

func (m *Machine) StackDepth() int { return m.stack.Len() }

// StackTop returns the most recent return address.
func (m *Machine) StackTop() (uint16, bool) { return m.stack.Top() }

// Display returns a copy of the framebuffer.
func (m *Machine) Display() Frame { return m.screen.pixels }

// DisplayVersion changes every time the display is cleared or drawn to.
func (m *Machine) DisplayVersion() uint64 { return m.screen.version }

func (m *Machine) DelayTimer() uint8 { return m.delayTimer }
func (m *Machine) SoundTimer() uint8 { return m.soundTimer }

// Key reports whether the key is held down.
func (m *Machine) Key(key uint8) bool { return m.keyboard.Pressed(key) }

// SetKey updates the state of a keypad key, 0x0 to 0xF.
func (m *Machine) SetKey(key uint8, pressed bool) error {
	if key >= KeyCount {
		return fmt.Errorf("%w: 0x%X", ErrInvalidKey, key)
	}
	m.keyboard.Set(key, pressed)
	return nil
}

// TickTimers decrements the delay and sound timers that are not zero.
// Hosts call it at 60Hz, independently of the cycle rate.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// Halted returns the fatal error that stopped the machine, if any.
func (m *Machine) Halted() error { return m.fault }

func (m *Machine) getVX(op Opcode) uint8    { return m.v[op.X()] }
func (m *Machine) getVY(op Opcode) uint8    { return m.v[op.Y()] }
func (m *Machine) setVX(op Opcode, v uint8) { m.v[op.X()] = v }
