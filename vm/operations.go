package vm

import (
	stlval "github.com/kkkunny/stl/value"
)

func (m *Machine) setFlag(flag bool) { m.v[flagRegister] = stlval.Ternary[uint8](flag, 1, 0) }

func (m *Machine) skipIf(cond bool) { m.pc += stlval.Ternary[uint16](cond, 2, 0) }

// 00E0
func (m *Machine) clearDisplay(Opcode) error {
	m.screen.Reset()
	return nil
}

// 00EE
func (m *Machine) ret(Opcode) error {
	addr, err := m.stack.Pop()
	if err != nil {
		return err
	}
	m.pc = addr
	return nil
}

// 1nnn
func (m *Machine) jump(op Opcode) error {
	m.pc = op.NNN()
	return nil
}

// 2nnn
func (m *Machine) call(op Opcode) error {
	if err := m.stack.Push(m.pc); err != nil {
		return err
	}
	m.pc = op.NNN()
	return nil
}

// 3xnn
func (m *Machine) skipEqualImmediate(op Opcode) error {
	m.skipIf(m.getVX(op) == op.NN())
	return nil
}

// 4xnn
func (m *Machine) skipNotEqualImmediate(op Opcode) error {
	m.skipIf(m.getVX(op) != op.NN())
	return nil
}

// 5xy0
func (m *Machine) skipEqualRegister(op Opcode) error {
	m.skipIf(m.getVX(op) == m.getVY(op))
	return nil
}

// 9xy0
func (m *Machine) skipNotEqualRegister(op Opcode) error {
	m.skipIf(m.getVX(op) != m.getVY(op))
	return nil
}

// 6xnn
func (m *Machine) setImmediate(op Opcode) error {
	m.setVX(op, op.NN())
	return nil
}

// 7xnn saturates and leaves VF alone.
func (m *Machine) addImmediate(op Opcode) error {
	sum, _ := saturatingAdd(m.getVX(op), op.NN())
	m.setVX(op, sum)
	return nil
}

// 8xy0
func (m *Machine) assign(op Opcode) error {
	m.setVX(op, m.getVY(op))
	return nil
}

// 8xy1
func (m *Machine) or(op Opcode) error {
	m.setVX(op, m.getVX(op)|m.getVY(op))
	return nil
}

// 8xy2
func (m *Machine) and(op Opcode) error {
	m.setVX(op, m.getVX(op)&m.getVY(op))
	return nil
}

// 8xy3
func (m *Machine) xor(op Opcode) error {
	m.setVX(op, m.getVX(op)^m.getVY(op))
	return nil
}

// 8xy4
func (m *Machine) add(op Opcode) error {
	sum, overflow := saturatingAdd(m.getVX(op), m.getVY(op))
	m.setVX(op, sum)
	m.setFlag(overflow)
	return nil
}

// 8xy5, VF is set when there is no borrow.
func (m *Machine) subtract(op Opcode) error {
	vx, vy := m.getVX(op), m.getVY(op)
	m.setVX(op, vx-vy)
	m.setFlag(vx >= vy)
	return nil
}

// 8xy7
func (m *Machine) subtractReversed(op Opcode) error {
	vx, vy := m.getVX(op), m.getVY(op)
	m.setVX(op, vy-vx)
	m.setFlag(vy >= vx)
	return nil
}

// 8xy6
func (m *Machine) shiftRight(op Opcode) error {
	vx := m.getVX(op)
	m.setVX(op, vx>>1)
	m.setFlag(vx&0x01 != 0)
	return nil
}

// 8xyE
func (m *Machine) shiftLeft(op Opcode) error {
	vx := m.getVX(op)
	m.setVX(op, vx<<1)
	m.setFlag(vx&0x80 != 0)
	return nil
}

// Annn
func (m *Machine) setIndex(op Opcode) error {
	m.i = op.NNN()
	return nil
}

// Bnnn, the target is checked by the next fetch.
func (m *Machine) jumpOffset(op Opcode) error {
	m.pc = uint16(m.v[0]) + op.NNN()
	return nil
}

// Cxnn
func (m *Machine) random(op Opcode) error {
	m.setVX(op, uint8(m.rand.UintN(256))&op.NN())
	return nil
}

// Dxyn
func (m *Machine) draw(op Opcode) error {
	rows, err := m.memory.IndexByN(uint(m.i), uint(op.N()))
	if err != nil {
		return err
	}
	collision := m.screen.DrawSprite(m.getVX(op), m.getVY(op), rows)
	m.setFlag(collision)
	return nil
}

// Ex9E
func (m *Machine) skipKeyPressed(op Opcode) error {
	m.skipIf(m.keyboard.Pressed(m.getVX(op)))
	return nil
}

// ExA1
func (m *Machine) skipKeyNotPressed(op Opcode) error {
	m.skipIf(!m.keyboard.Pressed(m.getVX(op)))
	return nil
}

// Fx07
func (m *Machine) getDelayTimer(op Opcode) error {
	m.setVX(op, m.delayTimer)
	return nil
}

// Fx15
func (m *Machine) setDelayTimer(op Opcode) error {
	m.delayTimer = m.getVX(op)
	return nil
}

// Fx18
func (m *Machine) setSoundTimer(op Opcode) error {
	m.soundTimer = m.getVX(op)
	return nil
}

// Fx1E saturates at the top of the 16 bit index register.
func (m *Machine) addIndex(op Opcode) error {
	m.i = uint16(min(uint32(m.i)+uint32(m.getVX(op)), 0xFFFF))
	return nil
}

// Fx0A rewinds pc while no key is down, so the host re-executes it on the
// next cycle.
func (m *Machine) waitKey(op Opcode) error {
	key, ok := m.keyboard.FirstPressed()
	if !ok {
		m.pc -= 2
		return nil
	}
	m.setVX(op, key)
	return nil
}

// Fx29
func (m *Machine) fontGlyph(op Opcode) error {
	m.i = glyphAddress(m.getVX(op))
	return nil
}

// Fx33
func (m *Machine) storeBCD(op Opcode) error {
	digits, err := m.memory.IndexByN(uint(m.i), 3)
	if err != nil {
		return err
	}
	vx := m.getVX(op)
	digits[0] = vx / 100
	digits[1] = vx / 10 % 10
	digits[2] = vx % 10
	return nil
}

// Fx55
func (m *Machine) storeRegisters(op Opcode) error {
	block, err := m.memory.IndexByN(uint(m.i), uint(op.X())+1)
	if err != nil {
		return err
	}
	copy(block, m.v[:op.X()+1])
	return nil
}

// Fx65
func (m *Machine) loadRegisters(op Opcode) error {
	block, err := m.memory.IndexByN(uint(m.i), uint(op.X())+1)
	if err != nil {
		return err
	}
	copy(m.v[:op.X()+1], block)
	return nil
}

func saturatingAdd(a, b uint8) (sum uint8, overflow bool) {
	s := uint16(a) + uint16(b)
	overflow = s > 0xFF
	return stlval.Ternary[uint8](overflow, 0xFF, uint8(s)), overflow
}
