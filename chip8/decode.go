package chip8

/// Instruction is a raw 16-bit CHIP-8 instruction, big-endian in memory.
///
type Instruction uint16

/// Nibbles returns the four nibbles from most to least significant.
///
func (i Instruction) Nibbles() (byte, byte, byte, byte) {
	return byte(i >> 12 & 0xF), byte(i >> 8 & 0xF), byte(i >> 4 & 0xF), byte(i & 0xF)
}

/// Family is the top nibble, which selects the opcode family.
///
func (i Instruction) Family() byte {
	return byte(i >> 12)
}

/// X is the register operand in bits 11-8.
///
func (i Instruction) X() byte {
	return byte(i >> 8 & 0xF)
}

/// Y is the register operand in bits 7-4.
///
func (i Instruction) Y() byte {
	return byte(i >> 4 & 0xF)
}

/// N is the low nibble.
///
func (i Instruction) N() byte {
	return byte(i & 0xF)
}

/// KK is the low byte.
///
func (i Instruction) KK() byte {
	return byte(i & 0xFF)
}

/// NNN is the 12-bit address operand.
///
func (i Instruction) NNN() uint16 {
	return uint16(i) & AddressMask
}
