package chip8

import "math/bits"

/// Keypad holds the state of the 16-key hex pad. The host writes it
/// between steps; the machine only reads it.
///
type Keypad struct {
	keys [16]bool

	// bit n is set when key n went from released to pressed
	latched uint16
}

/// Press marks a key as held down.
///
func (k *Keypad) Press(key byte) {
	k.Set(key, true)
}

/// Release marks a key as released.
///
func (k *Keypad) Release(key byte) {
	k.Set(key, false)
}

/// Set the state of a key. Keys outside 0-F are ignored.
///
func (k *Keypad) Set(key byte, down bool) {
	if key >= 16 {
		return
	}

	if down && !k.keys[key] {
		k.latched |= 1 << key
	}

	k.keys[key] = down
}

/// Pressed returns true if the key is held down.
///
func (k *Keypad) Pressed(key byte) bool {
	return key < 16 && k.keys[key]
}

/// State returns a copy of all 16 keys.
///
func (k *Keypad) State() [16]bool {
	return k.keys
}

/// Forget all key transitions seen so far.
///
func (k *Keypad) clearLatch() {
	k.latched = 0
}

/// Consume the lowest key that was pressed since the latch was cleared.
///
func (k *Keypad) takeLatched() (byte, bool) {
	if k.latched == 0 {
		return 0, false
	}

	key := byte(bits.TrailingZeros16(k.latched))

	k.latched = 0
	return key, true
}
