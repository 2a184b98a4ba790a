package chip8

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisplayDraw(t *testing.T) {
	var d Display

	assert.False(t, d.draw(1, 2, []byte{0xA0}))
	assert.True(t, d.Pixel(1, 2))
	assert.False(t, d.Pixel(2, 2))
	assert.True(t, d.Pixel(3, 2))

	pixels := d.Pixels()
	assert.True(t, pixels[2*Width+1])
	assert.True(t, pixels[2*Width+3])

	// erasing a pixel is a collision
	assert.True(t, d.draw(3, 2, []byte{0x80}))
	assert.False(t, d.Pixel(3, 2))
	assert.True(t, d.Pixel(1, 2))
}

func TestDisplayPixelWraps(t *testing.T) {
	var d Display

	d.draw(0, 0, []byte{0x80})

	assert.True(t, d.Pixel(Width, Height))
	assert.True(t, d.Pixel(-Width, 0))
	assert.False(t, d.Pixel(-1, 0))
}

func TestDisplayClear(t *testing.T) {
	var d Display

	d.draw(60, 30, []byte{0xFF, 0xFF, 0xFF})
	d.Clear()

	assert.Equal(t, [Width * Height]bool{}, d.Pixels())
}

func TestDisplayString(t *testing.T) {
	var d Display

	d.draw(0, 0, []byte{0xC0})
	d.draw(63, 31, []byte{0x80})

	rows := strings.Split(strings.TrimSuffix(d.String(), "\n"), "\n")
	assert.Len(t, rows, Height)

	assert.Equal(t, "##"+strings.Repeat(".", Width-2), rows[0])
	assert.Equal(t, strings.Repeat(".", Width), rows[1])
	assert.Equal(t, strings.Repeat(".", Width-1)+"#", rows[Height-1])
}
