package vm

import "fmt"

// Memory layout.
const (
	MemorySize   = 4096
	ProgramStart = 0x200
	MaxROMSize   = MemorySize - ProgramStart
)

type memory struct {
	data [MemorySize]uint8
}

func newMemory() *memory {
	return &memory{}
}

// Reset zeroes the memory and installs the font glyphs.
func (m *memory) Reset() {
	m.data = [MemorySize]uint8{}
	copy(m.data[FontOffset:], fontset[:])
}

// Load copies the ROM to the program area.
func (m *memory) Load(rom []uint8) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, at most %d fit after 0x%03X",
			ErrROMTooLarge, len(rom), MaxROMSize, ProgramStart)
	}
	copy(m.data[ProgramStart:], rom)
	return nil
}

func (m *memory) check(addr, n uint) error {
	if addr >= MemorySize || n > MemorySize-addr {
		if n <= 1 {
			return fmt.Errorf("%w: address 0x%X", ErrOutOfBounds, addr)
		}
		return fmt.Errorf("%w: range 0x%X-0x%X", ErrOutOfBounds, addr, addr+n-1)
	}
	return nil
}

func (m *memory) Get(addr uint) (uint8, error) {
	if err := m.check(addr, 1); err != nil {
		return 0, err
	}
	return m.data[addr], nil
}

// IndexByN returns the n bytes starting at addr. The slice aliases memory.
func (m *memory) IndexByN(addr, n uint) ([]uint8, error) {
	if err := m.check(addr, n); err != nil {
		return nil, err
	}
	return m.data[addr : addr+n], nil
}
