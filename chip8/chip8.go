package chip8

import (
	"fmt"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"
)

/// StackSize is the number of stack slots. Slot 0 is never written, so
/// subroutines may nest 15 deep.
///
const StackSize = 16

/// RunState is the execution state of the machine.
///
type RunState int

const (
	/// Running fetches and executes an instruction every step.
	///
	Running RunState = iota

	/// WaitingForKey is entered by LD Vx, K. No instructions are
	/// fetched until a key is pressed.
	///
	WaitingForKey

	/// Halted is entered after a fatal error. Only Reset leaves it.
	///
	Halted
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	case WaitingForKey:
		return "waiting for key"
	case Halted:
		return "halted"
	}

	return fmt.Sprintf("RunState(%d)", int(s))
}

/// CHIP_8 virtual machine emulator.
///
type CHIP_8 struct {
	/// ROM memory for CHIP-8. This holds the font as well as the
	/// program. It is a pristine state upon being loaded that Memory
	/// can be reset back to.
	///
	ROM Memory

	/// Memory addressable by CHIP-8. The first 512 bytes are reserved
	/// for the interpreter and font sprites.
	///
	Memory Memory

	/// Display is the 64x32 video memory.
	///
	Display Display

	/// Keypad holds the current state for the 16-key pad keys.
	///
	Keypad Keypad

	/// PC is the program counter. All programs begin at 0x200.
	///
	PC uint16

	/// SP is the stack pointer. It points at the most recently pushed
	/// slot, 0 when the stack is empty.
	///
	SP uint16

	/// Stack holds return addresses.
	///
	Stack [StackSize]uint16

	/// I is the address register.
	///
	I uint16

	/// V are the 16 virtual registers. VF doubles as the flag register.
	///
	V [16]byte

	/// The delay and sound timer registers. Both count down at 60 Hz.
	///
	DT byte
	ST byte

	/// Cycles is how many instructions have been executed since reset.
	///
	Cycles int64

	/// Speed is the number of instructions executed per frame.
	///
	Speed int

	state   RunState
	waitReg byte
	err     error

	breakpoints map[uint16]struct{}
	brk         bool

	// set when a frame stopped at a breakpoint, cleared by the next step
	resuming bool

	// time not yet consumed by Process
	elapsed time.Duration

	random RandomSource
	logger *log.Logger
}

/// New returns a reset CHIP-8 virtual machine with no program loaded.
///
func New(cfg Config) (*CHIP_8, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	vm := &CHIP_8{
		Speed:       cfg.Speed,
		random:      cfg.Random,
		logger:      cfg.Logger,
		breakpoints: make(map[uint16]struct{}),
	}

	if vm.random == nil {
		vm.random = NewRandomSource(time.Now().UnixNano())
	}

	if vm.logger == nil {
		vm.logger = log.NewWithConfig(log.DefaultConfig())
	}

	// install the font
	vm.ROM.reset()

	// reset the VM memory
	vm.Reset()

	return vm, nil
}

/// Load a ROM from a byte array and return a new CHIP-8 virtual machine.
///
func LoadROM(program []byte, cfg Config) (*CHIP_8, error) {
	vm, err := New(cfg)
	if err != nil {
		return nil, err
	}

	if err := vm.Load(program); err != nil {
		return nil, err
	}

	return vm, nil
}

/// Load a ROM file and return a new CHIP-8 virtual machine.
///
func LoadFile(file string, cfg Config) (*CHIP_8, error) {
	program, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}

	return LoadROM(program, cfg)
}

/// Load replaces the program in ROM and resets the machine.
///
func (vm *CHIP_8) Load(program []byte) error {
	rom := vm.ROM

	// clear out any previous program
	copy(rom[ProgramBase:], make([]byte, MemorySize-ProgramBase))

	if err := rom.Load(ProgramBase, program); err != nil {
		return err
	}

	vm.ROM = rom
	vm.Reset()

	vm.logger.Debug("Program loaded", log.Int("size", len(program)))
	return nil
}

/// LoadAt copies data into ROM at address, leaving the rest of the
/// program alone, and resets the machine.
///
func (vm *CHIP_8) LoadAt(address uint16, data []byte) error {
	if err := vm.ROM.Load(address, data); err != nil {
		return err
	}

	vm.Reset()
	return nil
}

/// Reset the CHIP-8 virtual machine memory.
///
func (vm *CHIP_8) Reset() {
	vm.Memory = vm.ROM

	// reset video memory and keys
	vm.Display.Clear()
	vm.Keypad = Keypad{}

	// reset program counter and stack pointer
	vm.PC = ProgramBase
	vm.SP = 0
	vm.Stack = [StackSize]uint16{}

	// reset address and virtual registers
	vm.I = 0
	vm.V = [16]byte{}

	// reset timer registers
	vm.DT = 0
	vm.ST = 0

	// reset the cycles executed and any pending frame time
	vm.Cycles = 0
	vm.elapsed = 0

	// running, no error
	vm.state = Running
	vm.err = nil
	vm.brk = false
	vm.resuming = false

	vm.logger.Debug("Machine reset")
}

/// State returns the current execution state.
///
func (vm *CHIP_8) State() RunState {
	return vm.state
}

/// Err returns the fatal error that halted the machine, if any.
///
func (vm *CHIP_8) Err() error {
	return vm.err
}

/// PressKey emulates a CHIP-8 key being pressed.
///
func (vm *CHIP_8) PressKey(key byte) {
	vm.Keypad.Press(key)
}

/// ReleaseKey emulates a CHIP-8 key being released.
///
func (vm *CHIP_8) ReleaseKey(key byte) {
	vm.Keypad.Release(key)
}

/// IncSpeed doubles the number of instructions run per frame.
///
func (vm *CHIP_8) IncSpeed() {
	if vm.Speed *= 2; vm.Speed > MaxSpeed {
		vm.Speed = MaxSpeed
	}

	vm.logger.Info("Speed changed", log.Int("instructions_per_frame", vm.Speed))
}

/// DecSpeed halves the number of instructions run per frame.
///
func (vm *CHIP_8) DecSpeed() {
	if vm.Speed /= 2; vm.Speed < MinSpeed {
		vm.Speed = MinSpeed
	}

	vm.logger.Info("Speed changed", log.Int("instructions_per_frame", vm.Speed))
}

/// ToggleBreakpoint sets or clears a breakpoint at address.
///
func (vm *CHIP_8) ToggleBreakpoint(address uint16) bool {
	if _, ok := vm.breakpoints[address]; ok {
		delete(vm.breakpoints, address)
		return false
	}

	vm.breakpoints[address] = struct{}{}
	return true
}

/// HasBreakpoint returns true if there's a breakpoint at address.
///
func (vm *CHIP_8) HasBreakpoint(address uint16) bool {
	_, ok := vm.breakpoints[address]
	return ok
}

/// Break returns true if the last frame stopped at a breakpoint.
///
func (vm *CHIP_8) Break() bool {
	return vm.brk
}

/// Frame runs one 60 Hz frame: up to Speed instructions followed by a
/// single timer tick. The frame ends early when the machine starts
/// waiting for a key, hits a breakpoint, or fails.
///
func (vm *CHIP_8) Frame() error {
	vm.brk = false

	for n := 0; n < vm.Speed; n++ {
		// the breakpoint that stopped the last frame is stepped over once
		if !vm.resuming && vm.state == Running && vm.HasBreakpoint(vm.PC) {
			vm.brk = true
			vm.resuming = true
			break
		}

		if err := vm.Step(); err != nil {
			return err
		}

		// nothing more can happen until the host presses a key
		if vm.state == WaitingForKey {
			break
		}
	}

	vm.Tick()
	return nil
}

/// Step the CHIP-8 virtual machine a single instruction.
///
func (vm *CHIP_8) Step() error {
	switch vm.state {
	case Halted:
		return vm.err
	case WaitingForKey:
		vm.resume()
		return nil
	}

	pc := vm.PC
	vm.resuming = false

	// fetch the next instruction
	inst := vm.fetch()

	op, ok := Decode(inst)
	if !ok {
		return vm.halt(&UnknownOpcodeError{Opcode: inst, PC: pc}, pc, inst)
	}

	if err := op.exec(vm, inst); err != nil {
		return vm.halt(fmt.Errorf("%s at %04X: %w", op.Name, pc, err), pc, inst)
	}

	// increment the cycle count
	vm.Cycles++

	return nil
}

/// Fetch the next 16-bit instruction to execute.
///
func (vm *CHIP_8) fetch() Instruction {
	i := vm.PC

	// advance the program counter
	vm.PC = (vm.PC + 2) & AddressMask

	// return the 16-bit instruction
	return Instruction(vm.Memory.ReadWord(i))
}

/// Leave the wait state if a key was pressed since LD Vx, K.
///
func (vm *CHIP_8) resume() {
	key, ok := vm.Keypad.takeLatched()
	if !ok {
		return
	}

	vm.V[vm.waitReg] = key
	vm.state = Running

	vm.logger.Debug("Key pressed", log.Hex("key", key))
}

/// Latch a fatal error. The machine won't run again until reset.
///
func (vm *CHIP_8) halt(err error, pc uint16, inst Instruction) error {
	vm.err = err
	vm.state = Halted

	vm.logger.Error("Machine halted",
		log.Hex("pc", pc),
		log.Hex("opcode", uint16(inst)),
		log.Err(err))

	return err
}
