package main

import (
	"github.com/massung/CHIP-8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Screen is the render target holding the CHIP-8 display at 1:1.
	///
	Screen *sdl.Texture
)

/// InitScreen creates the render target for the CHIP-8 video memory.
///
func InitScreen() (err error) {
	Screen, err = Renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.Width, chip8.Height)
	return err
}

/// RefreshScreen with the CHIP-8 video memory.
///
func RefreshScreen() {
	if err := Renderer.SetRenderTarget(Screen); err != nil {
		return
	}

	// the background color for the screen
	Renderer.SetDrawColor(143, 145, 133, 255)
	Renderer.Clear()

	// set the pixel color
	Renderer.SetDrawColor(17, 29, 43, 255)

	pixels := VM.Display.Pixels()

	// draw all the lit pixels
	for p, lit := range pixels {
		if lit {
			Renderer.DrawPoint(int32(p%chip8.Width), int32(p/chip8.Width))
		}
	}

	// restore the render target
	Renderer.SetRenderTarget(nil)
}

/// CopyScreen stretches the render target onto the window.
///
func CopyScreen(dst sdl.Rect) {
	src := sdl.Rect{
		W: chip8.Width,
		H: chip8.Height,
	}

	Renderer.Copy(Screen, &src, &dst)
}
