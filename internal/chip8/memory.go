package chip8

// Package chip8 implements the CHIP-8 virtual machine: 4 KiB of flat memory,
// sixteen 8-bit data registers, a 12-bit index register, a subroutine
// stack, a monochrome 64x32 framebuffer, a 16-key hexadecimal keypad, and
// two 60 Hz countdown timers.
//
//		System memory map
// 		+---------------+= 0xFFF (4095) End Chip-8 RAM
// 		|               |
// 		| 0x200 to 0xFFF|
// 		|     Chip-8    |
// 		| Program / Data|
// 		|     Space     |
// 		|               |
// 		+---------------+= 0x200 (512) Start of most Chip-8 programs
// 		| 0x000 to 0x1FF|
// 		| Reserved for  |
// 		|  interpreter  |
// 		+---------------+= 0x000 (0) Begin Chip-8 RAM. We store font data
// 		here instead of the interpreter since we don't run inside the 4K
// 		space ourselves.

const (
	// MemorySize is the total addressable memory, in bytes.
	MemorySize = 0x1000

	// EntryPoint is the address most CHIP-8 programs are loaded at and
	// where the program counter starts.
	EntryPoint = 0x200

	// MaxROMSize is the largest ROM that fits between EntryPoint and the
	// end of memory.
	MaxROMSize = MemorySize - EntryPoint

	// fontBase is the address the font set is loaded at.
	fontBase = 0x000

	// fontGlyphSize is the number of bytes per font glyph.
	fontGlyphSize = 5
)

// font is the canonical CHIP-8 hexadecimal font set: 16 glyphs, 5 bytes
// each, MSB-first, 4 pixels wide.
//
// See http://devernay.free.fr/hacks/chip8/C8TECH10.HTM#font
var font = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// memory is the flat 4 KiB CHIP-8 address space.
type memory [MemorySize]byte

// loadFont writes the font set at fontBase.
func (m *memory) loadFont() {
	copy(m[fontBase:], font[:])
}

// fontAddr returns the address of the 5-byte glyph for the low nibble of
// digit.
func fontAddr(digit byte) uint16 {
	return uint16(digit&0xF) * fontGlyphSize
}

// read returns the byte at addr, wrapping modulo MemorySize.
func (m *memory) read(addr uint16) byte {
	return m[addr%MemorySize]
}

// write stores v at addr, wrapping modulo MemorySize.
func (m *memory) write(addr uint16, v byte) {
	m[addr%MemorySize] = v
}

// loadROM copies rom into memory starting at EntryPoint. Returns
// ErrRomTooLarge if rom does not fit.
func (m *memory) loadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return ErrRomTooLarge
	}
	copy(m[EntryPoint:], rom)
	return nil
}
