package vm

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

type handler func(*Machine, Opcode) error

// primaryTable is indexed by the top nibble of the opcode.
var primaryTable = [16]handler{
	0x0: (*Machine).systemGroup,
	0x1: (*Machine).jump,
	0x2: (*Machine).call,
	0x3: (*Machine).skipEqualImmediate,
	0x4: (*Machine).skipNotEqualImmediate,
	0x5: (*Machine).skipEqualRegister,
	0x6: (*Machine).setImmediate,
	0x7: (*Machine).addImmediate,
	0x8: (*Machine).arithmeticGroup,
	0x9: (*Machine).skipNotEqualRegister,
	0xA: (*Machine).setIndex,
	0xB: (*Machine).jumpOffset,
	0xC: (*Machine).random,
	0xD: (*Machine).draw,
	0xE: (*Machine).keyGroup,
	0xF: (*Machine).miscGroup,
}

// 00nn
var systemTable = map[uint8]handler{
	0xE0: (*Machine).clearDisplay,
	0xEE: (*Machine).ret,
}

// 8xyn
var arithmeticTable = map[uint8]handler{
	0x0: (*Machine).assign,
	0x1: (*Machine).or,
	0x2: (*Machine).and,
	0x3: (*Machine).xor,
	0x4: (*Machine).add,
	0x5: (*Machine).subtract,
	0x6: (*Machine).shiftRight,
	0x7: (*Machine).subtractReversed,
	0xE: (*Machine).shiftLeft,
}

// Exnn
var keyTable = map[uint8]handler{
	0x9E: (*Machine).skipKeyPressed,
	0xA1: (*Machine).skipKeyNotPressed,
}

// Fxnn
var miscTable = map[uint8]handler{
	0x07: (*Machine).getDelayTimer,
	0x0A: (*Machine).waitKey,
	0x15: (*Machine).setDelayTimer,
	0x18: (*Machine).setSoundTimer,
	0x1E: (*Machine).addIndex,
	0x29: (*Machine).fontGlyph,
	0x33: (*Machine).storeBCD,
	0x55: (*Machine).storeRegisters,
	0x65: (*Machine).loadRegisters,
}

func (m *Machine) systemGroup(op Opcode) error {
	return m.dispatch(systemTable, op.NN(), op)
}

func (m *Machine) arithmeticGroup(op Opcode) error {
	return m.dispatch(arithmeticTable, op.N(), op)
}

func (m *Machine) keyGroup(op Opcode) error {
	return m.dispatch(keyTable, op.NN(), op)
}

func (m *Machine) miscGroup(op Opcode) error {
	return m.dispatch(miscTable, op.NN(), op)
}

func (m *Machine) dispatch(table map[uint8]handler, key uint8, op Opcode) error {
	h, ok := table[key]
	if !ok {
		m.report(fmt.Errorf("%w: 0x%04X (%s)", ErrUnknownOpcode, uint16(op), op))
		return nil
	}
	return h(m, op)
}

// report passes a recoverable problem to the diagnostics channel.
func (m *Machine) report(err error) {
	m.logger.Warn("Ignoring instruction", log.Err(err), log.Hex("pc", m.pc))
	if m.diagnostics != nil {
		m.diagnostics(err)
	}
}
