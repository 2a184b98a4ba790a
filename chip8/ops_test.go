package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// execute runs a single instruction as if it had just been fetched.
func execute(t *testing.T, vm *CHIP_8, inst Instruction) error {
	t.Helper()

	op, ok := Decode(inst)
	assert.True(t, ok)

	return op.exec(vm, inst)
}

func TestCLS(t *testing.T) {
	vm := newTestVM(t)
	vm.Display.draw(10, 10, []byte{0xFF, 0xFF})

	assert.NoError(t, execute(t, vm, 0x00E0))
	assert.Equal(t, [Width * Height]bool{}, vm.Display.Pixels())

	assert.NoError(t, execute(t, vm, 0x00E0))
	assert.Equal(t, [Width * Height]bool{}, vm.Display.Pixels())
}

func TestRET(t *testing.T) {
	vm := newTestVM(t)

	for n := range vm.Stack {
		vm.Stack[n] = 0xFE
	}
	vm.SP = 5

	assert.NoError(t, execute(t, vm, 0x00EE))
	assert.Equal(t, uint16(0xFE), vm.PC)
	assert.Equal(t, uint16(4), vm.SP)

	vm.SP = 0
	assert.True(t, errors.Is(execute(t, vm, 0x00EE), ErrStackUnderflow))
}

func TestCALL(t *testing.T) {
	vm := newTestVM(t)
	vm.PC = 0x0456

	assert.NoError(t, execute(t, vm, 0x2123))
	assert.Equal(t, uint16(0x0123), vm.PC)
	assert.Equal(t, uint16(1), vm.SP)
	assert.Equal(t, uint16(0x0456), vm.Stack[1])
}

func TestSYS(t *testing.T) {
	vm := newTestVM(t)
	vm.PC = 0x0300

	assert.NoError(t, execute(t, vm, 0x0123))
	assert.Equal(t, uint16(0x0300), vm.PC)
}

func TestJumps(t *testing.T) {
	vm := newTestVM(t)

	assert.NoError(t, execute(t, vm, 0x1ABC))
	assert.Equal(t, uint16(0xABC), vm.PC)

	vm.V[0] = 0x10
	assert.NoError(t, execute(t, vm, 0xB300))
	assert.Equal(t, uint16(0x310), vm.PC)

	// the target wraps at 12 bits
	vm.V[0] = 0xFF
	assert.NoError(t, execute(t, vm, 0xBFFF))
	assert.Equal(t, uint16(0x0FE), vm.PC)
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name  string
		inst  Instruction
		x, y  byte
		skip  bool
		press bool
	}{
		{name: "SE equal", inst: 0x3142, x: 0x42, skip: true},
		{name: "SE not equal", inst: 0x3142, x: 0x41},
		{name: "SNE equal", inst: 0x4142, x: 0x42},
		{name: "SNE not equal", inst: 0x4142, x: 0x41, skip: true},
		{name: "SE reg equal", inst: 0x5120, x: 7, y: 7, skip: true},
		{name: "SE reg not equal", inst: 0x5120, x: 7, y: 8},
		{name: "SNE reg equal", inst: 0x9120, x: 7, y: 7},
		{name: "SNE reg not equal", inst: 0x9120, x: 7, y: 8, skip: true},
		{name: "SKP pressed", inst: 0xE19E, x: 0xA, press: true, skip: true},
		{name: "SKP released", inst: 0xE19E, x: 0xA},
		{name: "SKNP pressed", inst: 0xE1A1, x: 0xA, press: true},
		{name: "SKNP released", inst: 0xE1A1, x: 0xA, skip: true},
		{name: "SKP high bits ignored", inst: 0xE19E, x: 0xFA, press: true, skip: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t)
			vm.PC = 0x202
			vm.V[1] = tt.x
			vm.V[2] = tt.y

			if tt.press {
				vm.PressKey(0xA)
			}

			assert.NoError(t, execute(t, vm, tt.inst))

			if tt.skip {
				assert.Equal(t, uint16(0x204), vm.PC)
			} else {
				assert.Equal(t, uint16(0x202), vm.PC)
			}
		})
	}
}

func TestALU(t *testing.T) {
	tests := []struct {
		name   string
		inst   Instruction
		x, y   byte
		result byte
		flag   byte
	}{
		{name: "LD", inst: 0x8450, x: 0x01, y: 0x33, result: 0x33},
		{name: "OR", inst: 0x8451, x: 0xF0, y: 0x0F, result: 0xFF},
		{name: "AND", inst: 0x8452, x: 0xF3, y: 0x3F, result: 0x33},
		{name: "XOR", inst: 0x8453, x: 0xFF, y: 0x0F, result: 0xF0},
		{name: "ADD carry", inst: 0x8454, x: 0xFF, y: 0x03, result: 0x02, flag: 1},
		{name: "ADD no carry", inst: 0x8454, x: 0x01, y: 0x01, result: 0x02},
		{name: "SUB no borrow", inst: 0x8455, x: 0x05, y: 0x03, result: 0x02, flag: 1},
		{name: "SUB borrow", inst: 0x8455, x: 0x03, y: 0x05, result: 0xFE},
		{name: "SUB equal", inst: 0x8455, x: 0x03, y: 0x03, result: 0x00},
		{name: "SHR", inst: 0x8456, x: 0xFF, result: 0x7F, flag: 1},
		{name: "SHR even", inst: 0x8456, x: 0x02, result: 0x01},
		{name: "SUBN no borrow", inst: 0x8457, x: 0x03, y: 0xFF, result: 0xFC, flag: 1},
		{name: "SUBN borrow", inst: 0x8457, x: 0xFF, y: 0x03, result: 0x04},
		{name: "SHL", inst: 0x845E, x: 0xF0, result: 0xE0, flag: 1},
		{name: "SHL no carry", inst: 0x845E, x: 0x70, result: 0xE0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t)
			vm.V[4] = tt.x
			vm.V[5] = tt.y
			vm.V[0xF] = 0xAA

			assert.NoError(t, execute(t, vm, tt.inst))
			assert.Equal(t, tt.result, vm.V[4])

			// bitwise ops and LD leave the flag alone
			if tt.inst.N() <= 3 {
				assert.Equal(t, byte(0xAA), vm.V[0xF])
			} else {
				assert.Equal(t, tt.flag, vm.V[0xF])
			}
		})
	}
}

func TestFlagRegisterOperand(t *testing.T) {
	vm := newTestVM(t)

	// the flag write happens last
	vm.V[0xF] = 0x80
	assert.NoError(t, execute(t, vm, 0x8FF4))
	assert.Equal(t, byte(1), vm.V[0xF])

	vm.V[0xF] = 0x02
	assert.NoError(t, execute(t, vm, 0x8FF6))
	assert.Equal(t, byte(0), vm.V[0xF])

	// the source operand is read before anything is written
	vm.V[0xF] = 0x81
	vm.V[1] = 0x00
	assert.NoError(t, execute(t, vm, 0x81FE))
	assert.Equal(t, byte(0x00), vm.V[1])
	assert.Equal(t, byte(0), vm.V[0xF])
}

func TestImmediates(t *testing.T) {
	vm := newTestVM(t)
	vm.V[0xF] = 0x55

	assert.NoError(t, execute(t, vm, 0x63FE))
	assert.Equal(t, byte(0xFE), vm.V[3])

	// ADD Vx, kk wraps without a flag
	assert.NoError(t, execute(t, vm, 0x7303))
	assert.Equal(t, byte(0x01), vm.V[3])
	assert.Equal(t, byte(0x55), vm.V[0xF])

	assert.NoError(t, execute(t, vm, 0xA123))
	assert.Equal(t, uint16(0x123), vm.I)
}

func TestRND(t *testing.T) {
	vm := newTestVM(t)

	vm.random = &ScriptedSource{Bytes: []byte{0xA5, 0xFF}}

	assert.NoError(t, execute(t, vm, 0xC20F))
	assert.Equal(t, byte(0x05), vm.V[2])

	assert.NoError(t, execute(t, vm, 0xC2F0))
	assert.Equal(t, byte(0xF0), vm.V[2])

	assert.NoError(t, execute(t, vm, 0xC200))
	assert.Equal(t, byte(0x00), vm.V[2])
}

func TestTimerRegisters(t *testing.T) {
	vm := newTestVM(t)
	vm.V[1] = 42

	assert.NoError(t, execute(t, vm, 0xF115))
	assert.NoError(t, execute(t, vm, 0xF118))
	assert.Equal(t, byte(42), vm.DT)
	assert.Equal(t, byte(42), vm.ST)
	assert.True(t, vm.SoundActive())

	vm.DT = 7
	assert.NoError(t, execute(t, vm, 0xF207))
	assert.Equal(t, byte(7), vm.V[2])
}

func TestAddI(t *testing.T) {
	vm := newTestVM(t)
	vm.I = 0x100
	vm.V[3] = 0x20
	vm.V[0xF] = 0x33

	assert.NoError(t, execute(t, vm, 0xF31E))
	assert.Equal(t, uint16(0x120), vm.I)

	// wraps at 12 bits and never touches VF
	vm.I = 0xFF0
	assert.NoError(t, execute(t, vm, 0xF31E))
	assert.Equal(t, uint16(0x010), vm.I)
	assert.Equal(t, byte(0x33), vm.V[0xF])
}

func TestLoadFont(t *testing.T) {
	vm := newTestVM(t)

	for digit := byte(0); digit < 16; digit++ {
		vm.V[6] = digit
		assert.NoError(t, execute(t, vm, 0xF629))
		assert.Equal(t, FontBase+uint16(digit)*FontHeight, vm.I)
	}

	// only the low nibble selects a digit
	vm.V[6] = 0x1A
	assert.NoError(t, execute(t, vm, 0xF629))
	assert.Equal(t, FontBase+uint16(0xA)*FontHeight, vm.I)
}

func TestBCD(t *testing.T) {
	tests := []struct {
		value  byte
		digits [3]byte
	}{
		{value: 123, digits: [3]byte{1, 2, 3}},
		{value: 0, digits: [3]byte{0, 0, 0}},
		{value: 9, digits: [3]byte{0, 0, 9}},
		{value: 80, digits: [3]byte{0, 8, 0}},
		{value: 255, digits: [3]byte{2, 5, 5}},
	}

	for _, tt := range tests {
		vm := newTestVM(t)
		vm.I = 0x300
		vm.V[4] = tt.value

		assert.NoError(t, execute(t, vm, 0xF433))
		assert.Equal(t, tt.digits[0], vm.Memory[0x300])
		assert.Equal(t, tt.digits[1], vm.Memory[0x301])
		assert.Equal(t, tt.digits[2], vm.Memory[0x302])
		assert.Equal(t, uint16(0x300), vm.I)
	}
}

func TestSaveLoadRegisters(t *testing.T) {
	vm := newTestVM(t)
	vm.I = 0x400
	vm.V[0] = 1
	vm.V[1] = 2
	vm.V[2] = 3
	vm.V[3] = 4

	assert.NoError(t, execute(t, vm, 0xF255))
	assert.Equal(t, byte(1), vm.Memory[0x400])
	assert.Equal(t, byte(3), vm.Memory[0x402])

	// only V0..V2 were stored
	assert.Equal(t, byte(0), vm.Memory[0x403])

	vm.V = [16]byte{}

	assert.NoError(t, execute(t, vm, 0xF265))
	assert.Equal(t, byte(1), vm.V[0])
	assert.Equal(t, byte(2), vm.V[1])
	assert.Equal(t, byte(3), vm.V[2])
	assert.Equal(t, byte(0), vm.V[3])

	// I is left unchanged
	assert.Equal(t, uint16(0x400), vm.I)
}

func TestSaveRegistersWrap(t *testing.T) {
	vm := newTestVM(t)
	vm.I = 0xFFF
	vm.V[0] = 0x11
	vm.V[1] = 0x22

	assert.NoError(t, execute(t, vm, 0xF155))
	assert.Equal(t, byte(0x11), vm.Memory[0xFFF])
	assert.Equal(t, byte(0x22), vm.Memory[0x000])
}

func TestDRW(t *testing.T) {
	vm := newTestVM(t)

	// digit 0 at <0,0>
	vm.I = FontBase
	assert.NoError(t, execute(t, vm, 0xD015))
	assert.Equal(t, byte(0), vm.V[0xF])
	assert.True(t, vm.Display.Pixel(0, 0))
	assert.True(t, vm.Display.Pixel(3, 0))
	assert.False(t, vm.Display.Pixel(4, 0))
	assert.True(t, vm.Display.Pixel(0, 1))
	assert.False(t, vm.Display.Pixel(1, 1))

	// drawing it again erases it
	assert.NoError(t, execute(t, vm, 0xD015))
	assert.Equal(t, byte(1), vm.V[0xF])
	assert.Equal(t, [Width * Height]bool{}, vm.Display.Pixels())
}

func TestDRWWrap(t *testing.T) {
	vm := newTestVM(t)
	vm.I = 0x300
	vm.Memory[0x300] = 0xFF
	vm.Memory[0x301] = 0x80
	vm.V[1] = 62
	vm.V[2] = 31

	assert.NoError(t, execute(t, vm, 0xD122))
	assert.Equal(t, byte(0), vm.V[0xF])

	assert.True(t, vm.Display.Pixel(62, 31))
	assert.True(t, vm.Display.Pixel(63, 31))
	assert.True(t, vm.Display.Pixel(0, 31))
	assert.True(t, vm.Display.Pixel(5, 31))
	assert.False(t, vm.Display.Pixel(6, 31))
	assert.True(t, vm.Display.Pixel(62, 0))
	assert.False(t, vm.Display.Pixel(63, 0))

	// coordinates larger than the screen wrap too
	vm.Display.Clear()
	vm.V[1] = 64 + 3
	vm.V[2] = 32 + 4

	assert.NoError(t, execute(t, vm, 0xD121))
	assert.True(t, vm.Display.Pixel(3, 4))
}

func TestDRWCollisionPartial(t *testing.T) {
	vm := newTestVM(t)
	vm.I = 0x300
	vm.Memory[0x300] = 0x80

	assert.NoError(t, execute(t, vm, 0xD011))

	// overlap a single lit pixel
	vm.Memory[0x300] = 0xC0
	assert.NoError(t, execute(t, vm, 0xD011))
	assert.Equal(t, byte(1), vm.V[0xF])
	assert.False(t, vm.Display.Pixel(0, 0))
	assert.True(t, vm.Display.Pixel(1, 0))
}

func TestDRWZeroHeight(t *testing.T) {
	vm := newTestVM(t)
	vm.V[0xF] = 1

	assert.NoError(t, execute(t, vm, 0xD010))
	assert.Equal(t, byte(0), vm.V[0xF])
	assert.Equal(t, [Width * Height]bool{}, vm.Display.Pixels())
}
