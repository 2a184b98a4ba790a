/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package chip8

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
)

/// Assembly is a completely assembled source file.
///
type Assembly struct {
	/// ROM is the final, assembled bytes to load at 0x200.
	///
	ROM []byte

	/// Labels maps each label to its address or EQU value.
	///
	Labels map[string]int
}

/// AsmError is returned when a source file fails to assemble.
///
type AsmError struct {
	/// Line is the 1-based source line, 0 when the error isn't tied to
	/// a single line.
	///
	Line int
	Msg  string
}

func (e *AsmError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d - %s", e.Line, e.Msg)
	}

	return e.Msg
}

var errIllegal = errors.New("illegal instruction")

/// An encoder assembles the operands of one mnemonic.
///
type encoder func(a *assembler, args []token) ([]byte, error)

var encoders map[string]encoder

func init() {
	encoders = map[string]encoder{
		"CLS":   fixed(0x00E0),
		"RET":   fixed(0x00EE),
		"SYS":   address(0x0000),
		"JP":    (*assembler).jp,
		"CALL":  address(0x2000),
		"SE":    skip(0x3000, 0x5000),
		"SNE":   skip(0x4000, 0x9000),
		"SKP":   unary(0xE09E),
		"SKNP":  unary(0xE0A1),
		"LD":    (*assembler).ld,
		"OR":    binary(0x8001),
		"AND":   binary(0x8002),
		"XOR":   binary(0x8003),
		"ADD":   (*assembler).add,
		"SUB":   binary(0x8005),
		"SHR":   shift(0x8006),
		"SUBN":  binary(0x8007),
		"SHL":   shift(0x800E),
		"BCD":   unary(0xF033),
		"RND":   (*assembler).rnd,
		"DRW":   (*assembler).drw,
		"BYTE":  (*assembler).defineBytes,
		"WORD":  (*assembler).defineWords,
		"ALIGN": (*assembler).align,
		"PAD":   (*assembler).pad,
	}
}

/// A label used before it was defined. Addresses are patched into the
/// low 12 bits of an instruction, words get all 16 bits.
///
type fixup struct {
	offset int
	label  string
	line   int
	word   bool
}

/// Assembler state while scanning the source.
///
type assembler struct {
	rom    []byte
	labels map[string]int
	fixups []fixup

	// current source line
	line int
}

/// Assemble an input CHIP-8 source code file. Source is case
/// insensitive, one statement per line.
///
func Assemble(program []byte) (*Assembly, error) {
	a := &assembler{
		rom:    make([]byte, 0, MemorySize-ProgramBase),
		labels: make(map[string]int),
	}

	scanner := bufio.NewScanner(bytes.NewReader(bytes.ToUpper(program)))

	for scanner.Scan() {
		a.line++

		if err := a.assembleLine(scanner.Bytes()); err != nil {
			return nil, &AsmError{Line: a.line, Msg: err.Error()}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &AsmError{Msg: err.Error()}
	}

	if err := a.resolve(); err != nil {
		return nil, err
	}

	return &Assembly{ROM: a.rom, Labels: a.labels}, nil
}

/// The address the next byte will be assembled to.
///
func (a *assembler) pc() int {
	return ProgramBase + len(a.rom)
}

/// Assemble a single line of source.
///
func (a *assembler) assembleLine(line []byte) error {
	st, err := parseLine(line)
	if err != nil {
		return err
	}

	if st.label != "" {
		if _, exists := a.labels[st.label]; exists {
			return errors.New("duplicate label")
		}

		if st.equ {
			a.labels[st.label] = st.value
		} else {
			a.labels[st.label] = a.pc()
		}
	}

	if st.mnemonic == "" {
		return nil
	}

	b, err := encoders[st.mnemonic](a, a.resolveArgs(st.args))
	if err != nil {
		return err
	}

	a.rom = append(a.rom, b...)

	if a.pc() > MemorySize {
		return errors.New("program too large")
	}

	return nil
}

/// Replace label references with their values. Labels not defined yet
/// become a placeholder number that remembers the label name.
///
func (a *assembler) resolveArgs(args []token) []token {
	for i, t := range args {
		if t.kind != tokRef {
			continue
		}

		if v, ok := a.labels[t.s]; ok {
			args[i] = token{kind: tokNum, n: v}
		} else {
			args[i] = token{kind: tokNum, n: ProgramBase, s: t.s}
		}
	}

	return args
}

/// Patch every forward reference now that all labels are known.
///
func (a *assembler) resolve() error {
	for _, f := range a.fixups {
		v, ok := a.labels[f.label]
		if !ok {
			return &AsmError{Line: f.line, Msg: fmt.Sprintf("unresolved label: %s", f.label)}
		}

		if f.word {
			a.rom[f.offset] = byte(v >> 8)
			a.rom[f.offset+1] = byte(v)
			continue
		}

		if v < 0 || v >= MemorySize {
			return &AsmError{Line: f.line, Msg: errIllegal.Error()}
		}

		a.rom[f.offset] = byte(v>>8) | a.rom[f.offset]&0xF0
		a.rom[f.offset+1] = byte(v)
	}

	return nil
}

/// True if the operand kinds are exactly kinds.
///
func match(args []token, kinds ...tokenKind) bool {
	if len(args) != len(kinds) {
		return false
	}

	for i, k := range kinds {
		if args[i].kind != k {
			return false
		}
	}

	return true
}

/// True if t is a number in 0..limit known at this point in the source.
///
func known(t token, limit int) bool {
	return t.kind == tokNum && t.s == "" && t.n >= 0 && t.n <= limit
}

func encode(w int) []byte {
	return []byte{byte(w >> 8), byte(w)}
}

func fixed(w int) encoder {
	return func(_ *assembler, args []token) ([]byte, error) {
		if len(args) != 0 {
			return nil, errIllegal
		}

		return encode(w), nil
	}
}

func address(w int) encoder {
	return func(a *assembler, args []token) ([]byte, error) {
		return a.address(w, args)
	}
}

/// OP Vx, byte or OP Vx, Vy.
///
func skip(imm, reg int) encoder {
	return func(_ *assembler, args []token) ([]byte, error) {
		if match(args, tokV, tokNum) && known(args[1], 0xFF) {
			return encode(imm | args[0].n<<8 | args[1].n), nil
		}

		if match(args, tokV, tokV) {
			return encode(reg | args[0].n<<8 | args[1].n<<4), nil
		}

		return nil, errIllegal
	}
}

/// OP Vx.
///
func unary(w int) encoder {
	return func(_ *assembler, args []token) ([]byte, error) {
		if match(args, tokV) {
			return encode(w | args[0].n<<8), nil
		}

		return nil, errIllegal
	}
}

/// OP Vx, Vy.
///
func binary(w int) encoder {
	return func(_ *assembler, args []token) ([]byte, error) {
		if match(args, tokV, tokV) {
			return encode(w | args[0].n<<8 | args[1].n<<4), nil
		}

		return nil, errIllegal
	}
}

/// SHR and SHL take an optional Vy, which the machine ignores.
///
func shift(w int) encoder {
	return func(a *assembler, args []token) ([]byte, error) {
		if match(args, tokV) {
			return encode(w | args[0].n<<8 | args[0].n<<4), nil
		}

		return binary(w)(a, args)
	}
}

/// A single 12-bit address operand, which may be a forward reference.
///
func (a *assembler) address(w int, args []token) ([]byte, error) {
	if !match(args, tokNum) || args[0].n < 0 || args[0].n >= MemorySize {
		return nil, errIllegal
	}

	if args[0].s != "" {
		a.fixups = append(a.fixups, fixup{offset: len(a.rom), label: args[0].s, line: a.line})
	}

	return encode(w | args[0].n), nil
}

func (a *assembler) jp(args []token) ([]byte, error) {
	if len(args) != 2 {
		return a.address(0x1000, args)
	}

	// only V0 can be jumped through
	if args[0].kind != tokV || args[0].n != 0 {
		return nil, errIllegal
	}

	return a.address(0xB000, args[1:])
}

func (a *assembler) add(args []token) ([]byte, error) {
	switch {
	case match(args, tokV, tokNum) && known(args[1], 0xFF):
		return encode(0x7000 | args[0].n<<8 | args[1].n), nil
	case match(args, tokV, tokV):
		return encode(0x8004 | args[0].n<<8 | args[1].n<<4), nil
	case match(args, tokI, tokV):
		return encode(0xF01E | args[1].n<<8), nil
	}

	return nil, errIllegal
}

func (a *assembler) rnd(args []token) ([]byte, error) {
	if match(args, tokV, tokNum) && known(args[1], 0xFF) {
		return encode(0xC000 | args[0].n<<8 | args[1].n), nil
	}

	return nil, errIllegal
}

func (a *assembler) drw(args []token) ([]byte, error) {
	if match(args, tokV, tokV, tokNum) && known(args[2], 0xF) {
		return encode(0xD000 | args[0].n<<8 | args[1].n<<4 | args[2].n), nil
	}

	return nil, errIllegal
}

/// LD forms that move a register to or from something special. The
/// register is whichever operand is Vx.
///
var loads = []struct {
	dst, src tokenKind
	w        int
}{
	{tokV, tokDT, 0xF007},
	{tokV, tokK, 0xF00A},
	{tokDT, tokV, 0xF015},
	{tokST, tokV, 0xF018},
	{tokF, tokV, 0xF029},
	{tokB, tokV, 0xF033},
	{tokIndirect, tokV, 0xF055},
	{tokV, tokIndirect, 0xF065},
}

func (a *assembler) ld(args []token) ([]byte, error) {
	switch {
	case match(args, tokV, tokNum) && known(args[1], 0xFF):
		return encode(0x6000 | args[0].n<<8 | args[1].n), nil
	case match(args, tokV, tokV):
		return encode(0x8000 | args[0].n<<8 | args[1].n<<4), nil
	case len(args) == 2 && args[0].kind == tokI:
		return a.address(0xA000, args[1:])
	}

	for _, form := range loads {
		if !match(args, form.dst, form.src) {
			continue
		}

		x := args[0].n
		if form.src == tokV {
			x = args[1].n
		}

		return encode(form.w | x<<8), nil
	}

	return nil, errIllegal
}

/// BYTE takes bytes and quoted text.
///
func (a *assembler) defineBytes(args []token) ([]byte, error) {
	b := make([]byte, 0, len(args))

	for _, t := range args {
		switch {
		case known(t, 0xFF):
			b = append(b, byte(t.n))
		case t.kind == tokText:
			b = append(b, t.s...)
		default:
			return nil, errors.New("invalid byte")
		}
	}

	return b, nil
}

/// WORD takes 16-bit values, stored MSB first.
///
func (a *assembler) defineWords(args []token) ([]byte, error) {
	b := make([]byte, 0, len(args)*2)

	for _, t := range args {
		if t.kind == tokNum && t.s != "" {
			a.fixups = append(a.fixups, fixup{offset: len(a.rom) + len(b), label: t.s, line: a.line, word: true})
		} else if !known(t, 0xFFFF) {
			return nil, errors.New("invalid word")
		}

		b = append(b, encode(t.n)...)
	}

	return b, nil
}

/// ALIGN pads to a power of two address.
///
func (a *assembler) align(args []token) ([]byte, error) {
	if !match(args, tokNum) || !known(args[0], MemorySize) {
		return nil, errors.New("illegal alignment")
	}

	n := args[0].n
	if n == 0 || n&(n-1) != 0 {
		return nil, errors.New("illegal alignment")
	}

	if offset := a.pc() & (n - 1); offset != 0 {
		return make([]byte, n-offset), nil
	}

	return nil, nil
}

/// PAD reserves zeroed bytes.
///
func (a *assembler) pad(args []token) ([]byte, error) {
	if !match(args, tokNum) || !known(args[0], MemorySize-a.pc()) {
		return nil, errors.New("illegal size")
	}

	return make([]byte, args[0].n), nil
}
