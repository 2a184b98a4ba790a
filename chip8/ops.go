package chip8

import "github.com/retroenv/retrogolib/log"

/// Clear the video display memory.
///
func (vm *CHIP_8) cls(_ Instruction) {
	vm.Display.Clear()
}

/// system call an RCA 1802 program at address in ROM. There is no
/// 1802 to run it on, so it does nothing.
///
func (vm *CHIP_8) sys(_ Instruction) {}

/// call a subroutine at address.
///
func (vm *CHIP_8) call(i Instruction) error {
	if vm.SP >= StackSize-1 {
		return ErrStackOverflow
	}

	// pre-increment, slot 0 is never used
	vm.SP++

	// push program counter onto stack
	vm.Stack[vm.SP] = vm.PC

	// jump to address
	vm.PC = i.NNN()

	return nil
}

/// return from subroutine.
///
func (vm *CHIP_8) ret(_ Instruction) error {
	if vm.SP == 0 {
		return ErrStackUnderflow
	}

	// restore program counter
	vm.PC = vm.Stack[vm.SP]

	// post-decrement
	vm.SP--

	return nil
}

/// jump to address.
///
func (vm *CHIP_8) jump(i Instruction) {
	vm.PC = i.NNN()
}

/// jump to address + v0.
///
func (vm *CHIP_8) jumpV0(i Instruction) {
	vm.PC = (i.NNN() + uint16(vm.V[0])) & AddressMask
}

/// skip next instruction if vx == n.
///
func (vm *CHIP_8) skipIf(i Instruction) {
	if vm.V[i.X()] == i.KK() {
		vm.skip()
	}
}

/// skip next instruction if vx != n.
///
func (vm *CHIP_8) skipIfNot(i Instruction) {
	if vm.V[i.X()] != i.KK() {
		vm.skip()
	}
}

/// skip next instruction if vx == vy.
///
func (vm *CHIP_8) skipIfXY(i Instruction) {
	if vm.V[i.X()] == vm.V[i.Y()] {
		vm.skip()
	}
}

/// skip next instruction if vx != vy.
///
func (vm *CHIP_8) skipIfNotXY(i Instruction) {
	if vm.V[i.X()] != vm.V[i.Y()] {
		vm.skip()
	}
}

/// skip next instruction if key(vx) is pressed.
///
func (vm *CHIP_8) skipIfPressed(i Instruction) {
	if vm.Keypad.Pressed(vm.V[i.X()] & 0xF) {
		vm.skip()
	}
}

/// skip next instruction if key(vx) is not pressed.
///
func (vm *CHIP_8) skipIfNotPressed(i Instruction) {
	if !vm.Keypad.Pressed(vm.V[i.X()] & 0xF) {
		vm.skip()
	}
}

/// load n into vx.
///
func (vm *CHIP_8) loadX(i Instruction) {
	vm.V[i.X()] = i.KK()
}

/// load y into vx.
///
func (vm *CHIP_8) loadXY(i Instruction) {
	vm.V[i.X()] = vm.V[i.Y()]
}

/// load delay timer into vx.
///
func (vm *CHIP_8) loadXDT(i Instruction) {
	vm.V[i.X()] = vm.DT
}

/// load vx into delay timer.
///
func (vm *CHIP_8) loadDTX(i Instruction) {
	vm.DT = vm.V[i.X()]
}

/// load vx into sound timer.
///
func (vm *CHIP_8) loadSTX(i Instruction) {
	vm.ST = vm.V[i.X()]
}

/// load vx with next key hit. This suspends the machine until the
/// keypad reports a new key press.
///
func (vm *CHIP_8) loadXK(i Instruction) {
	vm.waitReg = i.X()
	vm.state = WaitingForKey

	// only presses from now on count
	vm.Keypad.clearLatch()

	vm.logger.Debug("Waiting for key", log.Hex("pc", vm.PC-2), log.Hex("register", i.X()))
}

/// load address register.
///
func (vm *CHIP_8) loadI(i Instruction) {
	vm.I = i.NNN()
}

/// load address with BCD of vx.
///
func (vm *CHIP_8) loadB(i Instruction) {
	n := uint16(vm.V[i.X()])
	b := uint16(0)

	// perform 8 shifts
	for bit := uint(0); bit < 8; bit++ {
		if (b>>0)&0xF >= 5 {
			b += 3
		}
		if (b>>4)&0xF >= 5 {
			b += 3 << 4
		}
		if (b>>8)&0xF >= 5 {
			b += 3 << 8
		}

		// apply shift, pull next bit
		b = (b << 1) | (n >> (7 - bit) & 1)
	}

	// write to memory
	vm.Memory.Write(vm.I+0, byte(b>>8)&0xF)
	vm.Memory.Write(vm.I+1, byte(b>>4)&0xF)
	vm.Memory.Write(vm.I+2, byte(b>>0)&0xF)
}

/// load font sprite for vx into I.
///
func (vm *CHIP_8) loadF(i Instruction) {
	vm.I = FontBase + uint16(vm.V[i.X()]&0xF)*FontHeight
}

/// or vx with vy into vx.
///
func (vm *CHIP_8) or(i Instruction) {
	vm.V[i.X()] |= vm.V[i.Y()]
}

/// and vx with vy into vx.
///
func (vm *CHIP_8) and(i Instruction) {
	vm.V[i.X()] &= vm.V[i.Y()]
}

/// xor vx with vy into vx.
///
func (vm *CHIP_8) xor(i Instruction) {
	vm.V[i.X()] ^= vm.V[i.Y()]
}

/// shl vx 1 bit, set carry to MSB of vx before shift.
///
func (vm *CHIP_8) shl(i Instruction) {
	v := vm.V[i.X()]

	vm.V[i.X()] = v << 1
	vm.V[0xF] = v >> 7
}

/// shr vx 1 bit, set carry to LSB of vx before shift.
///
func (vm *CHIP_8) shr(i Instruction) {
	v := vm.V[i.X()]

	vm.V[i.X()] = v >> 1
	vm.V[0xF] = v & 1
}

/// add n to vx.
///
func (vm *CHIP_8) addX(i Instruction) {
	vm.V[i.X()] += i.KK()
}

/// add vy to vx and set carry.
///
func (vm *CHIP_8) addXY(i Instruction) {
	sum := uint16(vm.V[i.X()]) + uint16(vm.V[i.Y()])

	vm.V[i.X()] = byte(sum)
	vm.V[0xF] = flag(sum > 0xFF)
}

/// add vx to i, wrapping at 12 bits. VF is left alone.
///
func (vm *CHIP_8) addIX(i Instruction) {
	vm.I = (vm.I + uint16(vm.V[i.X()])) & AddressMask
}

/// subtract vy from vx, set carry if no borrow.
///
func (vm *CHIP_8) subXY(i Instruction) {
	x, y := vm.V[i.X()], vm.V[i.Y()]

	vm.V[i.X()] = x - y
	vm.V[0xF] = flag(x > y)
}

/// subtract vx from vy and store in vx, set carry if no borrow.
///
func (vm *CHIP_8) subYX(i Instruction) {
	x, y := vm.V[i.X()], vm.V[i.Y()]

	vm.V[i.X()] = y - x
	vm.V[0xF] = flag(y > x)
}

/// load a random number & n into vx.
///
func (vm *CHIP_8) rnd(i Instruction) {
	vm.V[i.X()] = vm.random.Byte() & i.KK()
}

/// draw a sprite at I to video memory at vx, vy.
///
func (vm *CHIP_8) drw(i Instruction) {
	sprite := make([]byte, i.N())

	// the sprite may wrap around the end of memory
	for n := range sprite {
		sprite[n] = vm.Memory.Read(vm.I + uint16(n))
	}

	// set carry flag if any collision occurred
	vm.V[0xF] = flag(vm.Display.draw(vm.V[i.X()], vm.V[i.Y()], sprite))
}

/// save registers v0..vx to I.
///
func (vm *CHIP_8) saveRegs(i Instruction) {
	for n := uint16(0); n <= uint16(i.X()); n++ {
		vm.Memory.Write(vm.I+n, vm.V[n])
	}
}

/// load registers v0..vx from I.
///
func (vm *CHIP_8) loadRegs(i Instruction) {
	for n := uint16(0); n <= uint16(i.X()); n++ {
		vm.V[n] = vm.Memory.Read(vm.I + n)
	}
}

func flag(b bool) byte {
	if b {
		return 1
	}

	return 0
}

func (vm *CHIP_8) skip() {
	vm.PC = (vm.PC + 2) & AddressMask
}
