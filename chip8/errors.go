package chip8

import (
	"errors"
	"fmt"
)

var (
	/// ErrStackOverflow is returned when CALL is executed with all 15
	/// stack slots in use.
	///
	ErrStackOverflow = errors.New("stack overflow")

	/// ErrStackUnderflow is returned when RET is executed with an
	/// empty stack.
	///
	ErrStackUnderflow = errors.New("stack underflow")

	/// ErrUnknownOpcode matches any *UnknownOpcodeError with errors.Is.
	///
	ErrUnknownOpcode = errors.New("unknown opcode")
)

/// UnknownOpcodeError is returned when the fetched instruction does
/// not decode to any CHIP-8 instruction.
///
type UnknownOpcodeError struct {
	Opcode Instruction

	/// PC is the address the instruction was fetched from.
	///
	PC uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %04X at %04X", uint16(e.Opcode), e.PC)
}

/// Is allows errors.Is(err, ErrUnknownOpcode).
///
func (e *UnknownOpcodeError) Is(target error) bool {
	return target == ErrUnknownOpcode
}

/// ProgramTooLargeError is returned when a program doesn't fit in
/// memory at its load address.
///
type ProgramTooLargeError struct {
	Size int
	Free int
}

func (e *ProgramTooLargeError) Error() string {
	return fmt.Sprintf("program too large (size: %d, free memory: %d)", e.Size, e.Free)
}

/// ReservedMemoryError is returned when a load would overwrite the
/// interpreter area below 0x200.
///
type ReservedMemoryError struct {
	Address uint16
}

func (e *ReservedMemoryError) Error() string {
	return fmt.Sprintf("cannot load to reserved address %04X", e.Address)
}
