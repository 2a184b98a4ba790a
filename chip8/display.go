package chip8

import "strings"

const (
	/// Width of the display in pixels.
	///
	Width = 64

	/// Height of the display in pixels.
	///
	Height = 32
)

/// Display is the 64x32 monochrome frame buffer. Pixels are stored row
/// major, pixel <x,y> is at index y*Width+x. Only CLS and DRW write to it.
///
type Display struct {
	pixels [Width * Height]bool
}

/// Pixel returns whether the pixel at <x,y> is lit. Coordinates wrap.
///
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[wrap(y, Height)*Width+wrap(x, Width)]
}

/// Pixels returns a copy of the frame buffer.
///
func (d *Display) Pixels() [Width * Height]bool {
	return d.pixels
}

/// Clear turns every pixel off.
///
func (d *Display) Clear() {
	d.pixels = [Width * Height]bool{}
}

/// XOR a sprite onto the display at <x,y>. Each byte is a row, MSB is
/// the left-most pixel. Pixels past the edges wrap around. Returns true
/// if any lit pixel was turned off.
///
func (d *Display) draw(x, y byte, sprite []byte) bool {
	collision := false

	for row, bits := range sprite {
		py := wrap(int(y)+row, Height)

		for col := 0; col < 8; col++ {
			if bits&(0x80>>uint(col)) == 0 {
				continue
			}

			p := &d.pixels[py*Width+wrap(int(x)+col, Width)]

			// was a pixel turned off?
			if *p {
				collision = true
			}

			*p = !*p
		}
	}

	return collision
}

/// String renders the display one line per row, '#' for lit pixels.
///
func (d *Display) String() string {
	var sb strings.Builder

	sb.Grow((Width + 1) * Height)

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if d.pixels[y*Width+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}

		sb.WriteByte('\n')
	}

	return sb.String()
}

func wrap(n, size int) int {
	n %= size
	if n < 0 {
		n += size
	}

	return n
}
