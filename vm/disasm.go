package vm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Mnemonic returns the assembler name of the instruction, or an empty string
// for words that are not CHIP-8 instructions.
func Mnemonic(op Opcode) string {
	word := uint16(op)
	for _, candidate := range chip8.Opcodes[int(op.Op())] {
		if candidate.Instruction != nil && candidate.Info.Mask&word == candidate.Info.Value {
			return candidate.Instruction.Name
		}
	}
	return ""
}

// Disassemble writes one line per instruction word of the ROM, addressed as
// it is laid out in memory. A trailing odd byte is written as data.
func Disassemble(w io.Writer, rom []uint8) error {
	for offset := 0; offset < len(rom); offset += 2 {
		addr := ProgramStart + offset
		if offset+1 == len(rom) {
			_, err := fmt.Fprintf(w, "0x%03X: %02X\n", addr, rom[offset])
			return err
		}

		op := Decode(rom[offset], rom[offset+1])
		name := Mnemonic(op)
		if name == "" {
			name = "???"
		}
		if _, err := fmt.Fprintf(w, "0x%03X: %04X  %-4s  %s\n", addr, uint16(op), name, op); err != nil {
			return err
		}
	}
	return nil
}
