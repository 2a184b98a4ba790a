package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		inst     Instruction
		expected string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1234, "JP     #0234"},
		{0x2ABC, "CALL   #0ABC"},
		{0x6A0F, "LD     VA, #0F"},
		{0x7105, "ADD    V1, #05"},
		{0x8124, "ADD    V1, V2"},
		{0xA300, "LD     I, #0300"},
		{0xD125, "DRW    V1, V2, 5"},
		{0xF155, "LD     [I], V1"},
		{0xF265, "LD     V2, [I]"},
		{0xF41E, "ADD    I, V4"},
		{0xF00A, "LD     V0, K"},
		{0x8006, "SHR    V0"},
		{0x8016, "SHR    V0, V1"},
		{0x8EEE, "SHL    VE"},
		{0x812E, "SHL    V1, V2"},
		{0x5001, "??"},
		{0xFFFF, "??"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Disassemble(tt.inst))
	}
}

func TestDisassembleMemory(t *testing.T) {
	vm := newTestVM(t, 0x00, 0xE0, 0x00, 0x00, 0x12, 0x00)

	assert.Equal(t, "0200 - CLS", vm.Disassemble(0x200))
	assert.Equal(t, "0202 -", vm.Disassemble(0x202))
	assert.Equal(t, "0204 - JP     #0200", vm.Disassemble(0x204))
	assert.Equal(t, "", vm.Disassemble(0xFFF))
}

func TestDisassembleAssembled(t *testing.T) {
	asm, err := Assemble([]byte("LD V3, #2A\nSNE V3, V4\nSKP V3\nLD B, V3"))
	assert.NoError(t, err)

	vm := newTestVM(t, asm.ROM...)

	assert.Equal(t, "0200 - LD     V3, #2A", vm.Disassemble(0x200))
	assert.Equal(t, "0202 - SNE    V3, V4", vm.Disassemble(0x202))
	assert.Equal(t, "0204 - SKP    V3", vm.Disassemble(0x204))
	assert.Equal(t, "0206 - LD     B, V3", vm.Disassemble(0x206))
}

func TestDisassembleReassembles(t *testing.T) {
	for w := 0; w <= 0xFFFF; w++ {
		text := Disassemble(Instruction(w))
		if text == "??" {
			continue
		}

		asm, err := Assemble([]byte(text))
		assert.NoError(t, err, text)
		assert.Equal(t, encode(w), asm.ROM, text)
	}
}
