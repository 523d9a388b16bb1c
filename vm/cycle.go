package vm

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// Step runs one fetch-decode-execute cycle. pc is advanced past the fetched
// word before the instruction runs, so jumps and calls are relative to the
// next instruction.
//
// A returned error is fatal: the machine keeps returning it until Reset.
func (m *Machine) Step() error {
	if m.fault != nil {
		return m.fault
	}

	pc := m.pc
	op, err := m.fetch()
	if err != nil {
		return m.halt(fmt.Errorf("fetching at 0x%03X: %w", pc, err))
	}
	m.pc += 2

	if m.trace {
		m.logger.Debug("Execute",
			log.Hex("pc", pc),
			log.Hex("opcode", uint16(op)),
			log.String("instruction", Mnemonic(op)))
	}

	if err := m.Execute(op); err != nil {
		return m.halt(fmt.Errorf("executing opcode 0x%04X at 0x%03X: %w", uint16(op), pc, err))
	}
	return nil
}

// Execute dispatches an already decoded opcode against the current state
// without fetching or advancing pc.
func (m *Machine) Execute(op Opcode) error {
	return primaryTable[op.Op()](m, op)
}

func (m *Machine) fetch() (Opcode, error) {
	if m.pc%2 != 0 {
		return 0, fmt.Errorf("%w: pc 0x%X", ErrMisalignedFetch, m.pc)
	}
	word, err := m.memory.IndexByN(uint(m.pc), 2)
	if err != nil {
		return 0, err
	}
	return Decode(word[0], word[1]), nil
}

func (m *Machine) halt(err error) error {
	m.fault = err
	return err
}
