package chip8

const (
	/// MemorySize is the number of addressable bytes.
	///
	MemorySize = 0x1000

	/// ProgramBase is where all programs are loaded and begin executing.
	/// Everything below it is reserved for the interpreter and font.
	///
	ProgramBase = 0x200

	/// FontBase is where the hex digit sprites live.
	///
	FontBase = 0x000

	/// FontHeight is the number of bytes (rows) in each digit sprite.
	///
	FontHeight = 5

	/// AddressMask limits addresses to 12 bits.
	///
	AddressMask = 0xFFF
)

/// Memory is the flat 4K address space of the CHIP-8.
///
type Memory [MemorySize]byte

/// Sprites for the hex digits 0-F, 5 bytes each.
///
var font = [16 * FontHeight]byte{
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

/// Read a byte, wrapping the address to 12 bits.
///
func (m *Memory) Read(address uint16) byte {
	return m[address&AddressMask]
}

/// Write a byte, wrapping the address to 12 bits.
///
func (m *Memory) Write(address uint16, b byte) {
	m[address&AddressMask] = b
}

/// ReadWord reads a big-endian 16-bit value.
///
func (m *Memory) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address))<<8 | uint16(m.Read(address+1))
}

/// Load copies data into memory at address. Loads may not touch the
/// reserved area or run past the end of memory.
///
func (m *Memory) Load(address uint16, data []byte) error {
	if address < ProgramBase {
		return &ReservedMemoryError{Address: address}
	}

	if int(address) >= MemorySize || len(data) > MemorySize-int(address) {
		free := 0
		if int(address) < MemorySize {
			free = MemorySize - int(address)
		}

		return &ProgramTooLargeError{Size: len(data), Free: free}
	}

	copy(m[address:], data)
	return nil
}

/// Wipe memory and install the font.
///
func (m *Memory) reset() {
	*m = Memory{}

	copy(m[FontBase:], font[:])
}
