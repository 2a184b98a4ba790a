package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

const (
	/// Size of a single glyph in the font bitmap and the distance
	/// between two characters drawn.
	///
	GlyphWidth   = 5
	GlyphHeight  = 7
	GlyphAdvance = 7
)

var (
	/// Texture containing a predefined font for debugging, etc. Text
	/// isn't drawn when the bitmap is missing.
	///
	Font *sdl.Texture
)

/// InitFont loads the bitmap surface with font on it.
///
func InitFont(path string) error {
	surface, err := sdl.LoadBMP(path)
	if err != nil {
		return err
	}
	defer surface.Free()

	// get the magenta color
	mask := sdl.MapRGB(surface.Format, 255, 0, 255)

	// set the mask color key
	if err := surface.SetColorKey(true, mask); err != nil {
		return err
	}

	// create the texture
	Font, err = Renderer.CreateTextureFromSurface(surface)
	return err
}

/// DrawText using the loaded font.
///
func DrawText(s string, x, y int32) {
	if Font == nil {
		return
	}

	src := sdl.Rect{W: GlyphWidth, H: GlyphHeight}
	dst := sdl.Rect{
		X: x,
		Y: y,
		W: GlyphWidth,
		H: GlyphHeight,
	}

	// loop over all the characters in the string
	for _, c := range s {
		if col, ok := glyph(c); ok {
			src.X = col * (GlyphWidth + 1)

			// draw the character to the renderer
			Renderer.Copy(Font, &src, &dst)
		}

		// advance
		dst.X += GlyphAdvance
	}
}

/// The bitmap has one column per printable character from '!' through
/// ']'. Lower case letters are drawn with the upper case glyphs.
///
func glyph(c rune) (int32, bool) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}

	if c > ' ' && c < '^' {
		return c - '!', true
	}

	return 0, false
}

/// TextColumns is how many characters fit in width pixels.
///
func TextColumns(width int32) int {
	return int(width / GlyphAdvance)
}

/// Clip shortens s to fit n columns, marking it with "...".
///
func Clip(s string, n int) string {
	if len(s) <= n {
		return s
	}

	if n <= 3 {
		return s[:n]
	}

	return s[:n-3] + "..."
}
