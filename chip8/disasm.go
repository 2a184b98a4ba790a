package chip8

import "fmt"

/// Disassemble the CHIP-8 instruction at address i.
///
func (vm *CHIP_8) Disassemble(i uint16) string {
	if int(i) >= len(vm.Memory)-1 {
		return ""
	}

	// fetch the instruction at this location
	inst := Instruction(vm.Memory.ReadWord(i))

	// end of program memory?
	if inst == 0 {
		return fmt.Sprintf("%04X -", i)
	}

	return fmt.Sprintf("%04X - %s", i, Disassemble(inst))
}

/// Disassemble a single instruction into assembler syntax. Unknown
/// instructions come back as "??".
///
func Disassemble(inst Instruction) string {
	op, ok := Decode(inst)
	if !ok {
		return "??"
	}

	if args := op.Operands(inst); args != "" {
		return fmt.Sprintf("%-6s %s", op.Name, args)
	}

	return op.Name
}
