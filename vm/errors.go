package vm

import "errors"

// Fatal errors abort the session; the machine stays halted until Reset.
var (
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrStackOverflow   = errors.New("stack overflow")
	ErrOutOfBounds     = errors.New("memory access out of bounds")
	ErrMisalignedFetch = errors.New("misaligned instruction fetch")
)

// ErrUnknownOpcode is reported through the diagnostics callback and does not
// stop execution.
var ErrUnknownOpcode = errors.New("unknown opcode")

var (
	ErrROMTooLarge          = errors.New("rom too large")
	ErrInvalidKey           = errors.New("invalid key")
	ErrInvalidOpcodeLiteral = errors.New("invalid opcode literal")
)
