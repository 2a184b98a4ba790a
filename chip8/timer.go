package chip8

import "time"

const (
	/// TimerHz is the rate both timers count down at.
	///
	TimerHz = 60

	/// FrameDuration is the wall-clock length of one timer tick.
	///
	FrameDuration = time.Second / TimerHz

	/// MaxCatchUpFrames limits how many frames Process will run to catch
	/// up after the host stalls.
	///
	MaxCatchUpFrames = 6
)

/// Tick counts both timers down once, stopping at zero.
///
func (vm *CHIP_8) Tick() {
	if vm.DT > 0 {
		vm.DT--
	}

	if vm.ST > 0 {
		vm.ST--
	}
}

/// DelayTimer returns the current delay timer value.
///
func (vm *CHIP_8) DelayTimer() byte {
	return vm.DT
}

/// SoundTimer returns the current sound timer value.
///
func (vm *CHIP_8) SoundTimer() byte {
	return vm.ST
}

/// SoundActive is true while the buzzer should sound.
///
func (vm *CHIP_8) SoundActive() bool {
	return vm.ST > 0
}

/// Process runs as many whole frames as fit in the time elapsed since
/// the last call, carrying the remainder over to the next call.
///
func (vm *CHIP_8) Process(elapsed time.Duration) error {
	vm.elapsed += elapsed

	for frames := 0; vm.elapsed >= FrameDuration; frames++ {
		if frames == MaxCatchUpFrames {
			vm.elapsed = 0
			break
		}

		vm.elapsed -= FrameDuration

		if err := vm.Frame(); err != nil {
			return err
		}

		// give the debugger a chance to look at things
		if vm.brk {
			vm.elapsed = 0
			break
		}
	}

	return nil
}
