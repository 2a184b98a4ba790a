package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypad(t *testing.T) {
	var k Keypad

	k.Press(0x3)
	k.Set(0xF, true)

	assert.True(t, k.Pressed(0x3))
	assert.True(t, k.Pressed(0xF))
	assert.False(t, k.Pressed(0x4))

	k.Release(0x3)
	assert.False(t, k.Pressed(0x3))

	state := k.State()
	assert.False(t, state[0x3])
	assert.True(t, state[0xF])

	// keys outside the pad are ignored
	k.Press(0x10)
	assert.False(t, k.Pressed(0x10))
}

func TestKeypadLatch(t *testing.T) {
	var k Keypad

	_, ok := k.takeLatched()
	assert.False(t, ok)

	k.Press(0x9)
	k.Press(0x4)

	// holding a key down doesn't latch it again
	k.Press(0x4)

	key, ok := k.takeLatched()
	assert.True(t, ok)
	assert.Equal(t, byte(0x4), key)

	// taking a key clears the latch
	_, ok = k.takeLatched()
	assert.False(t, ok)

	k.Press(0x4)
	_, ok = k.takeLatched()
	assert.False(t, ok)

	k.Release(0x4)
	k.Press(0x4)
	k.clearLatch()
	_, ok = k.takeLatched()
	assert.False(t, ok)
}
