package chip8

import (
	"fmt"
	"strings"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

/// Opcode describes a single decoded CHIP-8 operation.
///
type Opcode struct {
	/// Name is the assembler mnemonic.
	///
	Name string

	/// Operands formats the instruction operands for disassembly.
	///
	Operands func(i Instruction) string

	exec func(vm *CHIP_8, i Instruction) error
}

/// family is one entry of the first dispatch level, indexed by the top
/// nibble. Either op handles the whole family, or key picks the bits that
/// tell the family members apart and ops is searched with it. fallback is
/// used when no member matches (only SYS does this).
///
type family struct {
	op       *Opcode
	key      func(i Instruction) uint16
	ops      map[uint16]*Opcode
	fallback *Opcode
}

/// The two-level dispatch table.
///
var families [16]family

/// Wrap a handler that can't fail.
///
func always(f func(vm *CHIP_8, i Instruction)) func(vm *CHIP_8, i Instruction) error {
	return func(vm *CHIP_8, i Instruction) error {
		f(vm, i)
		return nil
	}
}

// operand formats
func noArgs(Instruction) string { return "" }
func addr(i Instruction) string { return fmt.Sprintf("#%04X", i.NNN()) }
func vx(i Instruction) string   { return fmt.Sprintf("V%X", i.X()) }
func vxkk(i Instruction) string { return fmt.Sprintf("V%X, #%02X", i.X(), i.KK()) }
func vxvy(i Instruction) string { return fmt.Sprintf("V%X, V%X", i.X(), i.Y()) }

// Vy is ignored by the shifts, only shown when it differs from Vx
func shiftArgs(i Instruction) string {
	if i.X() == i.Y() {
		return vx(i)
	}

	return vxvy(i)
}

func operands(format string) func(i Instruction) string {
	return func(i Instruction) string {
		return fmt.Sprintf(format, i.X())
	}
}

/// Assembler mnemonic of an instruction in the shared CHIP-8 table. SYS
/// isn't in the table.
///
func mnemonic(ins *cpu.Instruction) string {
	return strings.ToUpper(ins.Name)
}

func low12(i Instruction) uint16 { return uint16(i) & 0xFFF }
func lowNibble(i Instruction) uint16 { return uint16(i.N()) }
func lowByte(i Instruction) uint16 { return uint16(i.KK()) }

func init() {
	families = [16]family{
		0x0: {
			key: low12,
			ops: map[uint16]*Opcode{
				0x0E0: {Name: mnemonic(cpu.Cls), Operands: noArgs, exec: always((*CHIP_8).cls)},
				0x0EE: {Name: mnemonic(cpu.Ret), Operands: noArgs, exec: (*CHIP_8).ret},
			},
			fallback: &Opcode{Name: "SYS", Operands: addr, exec: always((*CHIP_8).sys)},
		},
		0x1: {op: &Opcode{Name: mnemonic(cpu.Jp), Operands: addr, exec: always((*CHIP_8).jump)}},
		0x2: {op: &Opcode{Name: mnemonic(cpu.Call), Operands: addr, exec: (*CHIP_8).call}},
		0x3: {op: &Opcode{Name: mnemonic(cpu.Se), Operands: vxkk, exec: always((*CHIP_8).skipIf)}},
		0x4: {op: &Opcode{Name: mnemonic(cpu.Sne), Operands: vxkk, exec: always((*CHIP_8).skipIfNot)}},
		0x5: {
			key: lowNibble,
			ops: map[uint16]*Opcode{
				0x0: {Name: mnemonic(cpu.Se), Operands: vxvy, exec: always((*CHIP_8).skipIfXY)},
			},
		},
		0x6: {op: &Opcode{Name: mnemonic(cpu.Ld), Operands: vxkk, exec: always((*CHIP_8).loadX)}},
		0x7: {op: &Opcode{Name: mnemonic(cpu.Add), Operands: vxkk, exec: always((*CHIP_8).addX)}},
		0x8: {
			key: lowNibble,
			ops: map[uint16]*Opcode{
				0x0: {Name: mnemonic(cpu.Ld), Operands: vxvy, exec: always((*CHIP_8).loadXY)},
				0x1: {Name: mnemonic(cpu.Or), Operands: vxvy, exec: always((*CHIP_8).or)},
				0x2: {Name: mnemonic(cpu.And), Operands: vxvy, exec: always((*CHIP_8).and)},
				0x3: {Name: mnemonic(cpu.Xor), Operands: vxvy, exec: always((*CHIP_8).xor)},
				0x4: {Name: mnemonic(cpu.Add), Operands: vxvy, exec: always((*CHIP_8).addXY)},
				0x5: {Name: mnemonic(cpu.Sub), Operands: vxvy, exec: always((*CHIP_8).subXY)},
				0x6: {Name: mnemonic(cpu.Shr), Operands: shiftArgs, exec: always((*CHIP_8).shr)},
				0x7: {Name: mnemonic(cpu.Subn), Operands: vxvy, exec: always((*CHIP_8).subYX)},
				0xE: {Name: mnemonic(cpu.Shl), Operands: shiftArgs, exec: always((*CHIP_8).shl)},
			},
		},
		0x9: {
			key: lowNibble,
			ops: map[uint16]*Opcode{
				0x0: {Name: mnemonic(cpu.Sne), Operands: vxvy, exec: always((*CHIP_8).skipIfNotXY)},
			},
		},
		0xA: {op: &Opcode{Name: mnemonic(cpu.Ld), Operands: func(i Instruction) string {
			return fmt.Sprintf("I, #%04X", i.NNN())
		}, exec: always((*CHIP_8).loadI)}},
		0xB: {op: &Opcode{Name: mnemonic(cpu.Jp), Operands: func(i Instruction) string {
			return fmt.Sprintf("V0, #%04X", i.NNN())
		}, exec: always((*CHIP_8).jumpV0)}},
		0xC: {op: &Opcode{Name: mnemonic(cpu.Rnd), Operands: vxkk, exec: always((*CHIP_8).rnd)}},
		0xD: {op: &Opcode{Name: mnemonic(cpu.Drw), Operands: func(i Instruction) string {
			return fmt.Sprintf("V%X, V%X, %d", i.X(), i.Y(), i.N())
		}, exec: always((*CHIP_8).drw)}},
		0xE: {
			key: lowByte,
			ops: map[uint16]*Opcode{
				0x9E: {Name: mnemonic(cpu.Skp), Operands: vx, exec: always((*CHIP_8).skipIfPressed)},
				0xA1: {Name: mnemonic(cpu.Sknp), Operands: vx, exec: always((*CHIP_8).skipIfNotPressed)},
			},
		},
		0xF: {
			key: lowByte,
			ops: map[uint16]*Opcode{
				0x07: {Name: mnemonic(cpu.Ld), Operands: operands("V%X, DT"), exec: always((*CHIP_8).loadXDT)},
				0x0A: {Name: mnemonic(cpu.Ld), Operands: operands("V%X, K"), exec: always((*CHIP_8).loadXK)},
				0x15: {Name: mnemonic(cpu.Ld), Operands: operands("DT, V%X"), exec: always((*CHIP_8).loadDTX)},
				0x18: {Name: mnemonic(cpu.Ld), Operands: operands("ST, V%X"), exec: always((*CHIP_8).loadSTX)},
				0x1E: {Name: mnemonic(cpu.Add), Operands: operands("I, V%X"), exec: always((*CHIP_8).addIX)},
				0x29: {Name: mnemonic(cpu.Ld), Operands: operands("F, V%X"), exec: always((*CHIP_8).loadF)},
				0x33: {Name: mnemonic(cpu.Ld), Operands: operands("B, V%X"), exec: always((*CHIP_8).loadB)},
				0x55: {Name: mnemonic(cpu.Ld), Operands: operands("[I], V%X"), exec: always((*CHIP_8).saveRegs)},
				0x65: {Name: mnemonic(cpu.Ld), Operands: operands("V%X, [I]"), exec: always((*CHIP_8).loadRegs)},
			},
		},
	}
}

/// Decode looks up the operation for an instruction. It never touches
/// machine state. The second return is false for unknown instructions.
///
func Decode(i Instruction) (*Opcode, bool) {
	f := &families[i.Family()]

	if f.op != nil {
		return f.op, true
	}

	if op, ok := f.ops[f.key(i)]; ok {
		return op, true
	}

	if f.fallback != nil {
		return f.fallback, true
	}

	return nil, false
}
