package vm

import (
	"fmt"
	"strconv"
)

// Opcode is a single big-endian CHIP-8 instruction word.
type Opcode uint16

// Decode builds the opcode from the two bytes of an instruction word.
func Decode(high, low uint8) Opcode {
	return Opcode(high)<<8 | Opcode(low)
}

// ParseOpcode decodes an instruction written as exactly four hex digits,
// for example "D015".
func ParseOpcode(s string) (Opcode, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("%w: %q is not 4 hex digits", ErrInvalidOpcodeLiteral, s)
	}
	for _, c := range []byte(s) {
		if !isHexDigit(c) {
			return 0, fmt.Errorf("%w: %q is not 4 hex digits", ErrInvalidOpcodeLiteral, s)
		}
	}
	word, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidOpcodeLiteral, err)
	}
	return Opcode(word), nil
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func (op Opcode) High() uint8 { return uint8(op >> 8) }
func (op Opcode) Low() uint8  { return uint8(op) }
func (op Opcode) Op() uint8   { return op.High() >> 4 }
func (op Opcode) X() uint8    { return op.High() & 0x0F }
func (op Opcode) Y() uint8    { return op.Low() >> 4 }
func (op Opcode) N() uint8    { return op.Low() & 0x0F }
func (op Opcode) NN() uint8   { return op.Low() }
func (op Opcode) NNN() uint16 { return uint16(op) & 0x0FFF }

// String renders the decoded fields, e.g. "op=D x=0 y=1 n=5 nn=15 nnn=015".
func (op Opcode) String() string {
	return fmt.Sprintf("op=%X x=%X y=%X n=%X nn=%02X nnn=%03X",
		op.Op(), op.X(), op.Y(), op.N(), op.NN(), op.NNN())
}
