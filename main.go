package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/massung/CHIP-8/chip8"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// The CHIP-8 virtual machine.
	///
	VM *chip8.CHIP_8

	/// The SDL Window and Renderer.
	///
	Window   *sdl.Window
	Renderer *sdl.Renderer

	/// Logger for the host and the virtual machine.
	///
	Logger *log.Logger
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := ParseFlags(os.Args[1:])
	if err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage()
			os.Exit(1)
		}

		CreateLogger(false, false).Fatal(err.Error())
	}

	if opts.Term {
		// anything but errors would scribble over the display
		logger := CreateLogger(opts.Debug, !opts.Debug)

		if err := RunTerminal(app.Context(), opts, logger); err != nil {
			logger.Error("Emulation stopped", log.Err(err))
			os.Exit(1)
		}
		return
	}

	if err := InitDebug(); err != nil {
		CreateLogger(false, false).Fatal(err.Error())
	}

	Logger = CreateLogger(opts.Debug, opts.Quiet)

	if err := Run(opts); err != nil {
		// the log pane is gone, report on the real console
		fmt.Fprintln(Console, err)
		os.Exit(1)
	}
}

/// Run the SDL emulator until the window is closed.
///
func Run(opts Options) error {
	cfg, err := MachineConfig(opts, Logger)
	if err != nil {
		return err
	}

	if VM, err = chip8.New(cfg); err != nil {
		return err
	}

	// pick a program when none was given
	if opts.ROM == "" {
		if opts.ROM, err = Browse(); err != nil {
			if errors.Is(err, dialog.ErrCancelled) {
				return nil
			}
			return err
		}
	}

	if err := Load(opts.ROM, opts.Asm); err != nil {
		return err
	}

	// initialize SDL
	if err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return err
	}
	defer sdl.Quit()

	ui := NewLayout(int32(opts.Scale))

	// create the main window and renderer
	if Window, Renderer, err = sdl.CreateWindowAndRenderer(ui.Width, ui.Height, sdl.WINDOW_SHOWN); err != nil {
		return err
	}
	defer Window.Destroy()

	// set the icon
	if icon, err := sdl.LoadBMP("data/chip_8.bmp"); err == nil {
		mask := sdl.MapRGB(icon.Format, 255, 0, 255)

		// create the mask color key and set the icon
		icon.SetColorKey(true, mask)
		Window.SetIcon(icon)
		icon.Free()
	}

	Window.SetTitle("CHIP-8")

	// initialize subsystems
	if err := InitScreen(); err != nil {
		return err
	}

	if err := InitFont("font.bmp"); err != nil {
		Logger.Warn("Debug text disabled", log.Err(err))
	}

	buzzer, err := OpenBuzzer()
	if err != nil {
		Logger.Warn("Sound disabled", log.Err(err))
	} else {
		defer buzzer.Close()
	}

	Log.Log("Press H for help")

	// refresh rate
	video := time.NewTicker(chip8.FrameDuration)
	defer video.Stop()

	last := time.Now()

	// loop until window closed or user quit
	for ProcessEvents() {
		now := <-video.C

		if !Paused {
			if err := VM.Process(now.Sub(last)); err != nil {
				Halt()
			} else if VM.Break() {
				Paused = true

				Log.Log(VM.Disassemble(VM.PC), "- break")
			}
		}

		last = now

		if buzzer != nil {
			buzzer.Update(!Paused && VM.SoundActive())
		}

		Refresh(ui)
	}

	return nil
}

/// Browse opens a native dialog to pick a program.
///
func Browse() (string, error) {
	return dialog.File().
		Filter("CHIP-8 ROMs", "ch8", "c8").
		Filter("CHIP-8 assembly", "asm", "c8s").
		Title("Load CHIP-8 program").
		Load()
}

/// Load a program from disk into the virtual machine.
///
func Load(path string, asm bool) error {
	program, err := LoadProgram(path, asm)
	if err != nil {
		return err
	}

	if err := VM.Load(program); err != nil {
		return err
	}

	Logger.Info("Loaded program", log.String("file", path), log.Int("size", len(program)))
	return nil
}

/// LoadDialog picks and loads a new program while running.
///
func LoadDialog() {
	path, err := Browse()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			Logger.Error("Opening file failed", log.Err(err))
		}
		return
	}

	if err := Load(path, false); err != nil {
		Logger.Error("Loading program failed", log.Err(err))
		return
	}

	Paused = false
}

/// Layout holds where each pane of the window is drawn.
///
type Layout struct {
	Width, Height int32

	Screen    sdl.Rect
	Assembly  sdl.Rect
	Registers sdl.Rect
	Log       sdl.Rect
}

/// NewLayout sizes the window around a screen of the given pixel scale.
///
func NewLayout(scale int32) Layout {
	const (
		margin = 8
		border = 2
	)

	screen := sdl.Rect{X: margin + border, Y: margin + border, W: chip8.Width * scale, H: chip8.Height * scale}

	l := Layout{
		Screen:    screen,
		Assembly:  sdl.Rect{X: screen.X + screen.W + margin + border, Y: margin, W: 204, H: 162},
		Registers: sdl.Rect{X: margin, Y: screen.Y + screen.H + margin, W: 146, H: 164},
	}

	// the assembly pane is never shorter than the screen
	if l.Assembly.H < screen.H+border {
		l.Assembly.H = screen.H + border
	}

	l.Log = sdl.Rect{
		X: l.Registers.X + l.Registers.W + margin,
		Y: l.Registers.Y,
		W: l.Assembly.X + l.Assembly.W - (l.Registers.X + l.Registers.W + margin),
		H: l.Registers.H,
	}

	l.Width = l.Assembly.X + l.Assembly.W + margin
	l.Height = l.Registers.Y + l.Registers.H + margin

	return l
}

/// Refresh redraws the whole window.
///
func Refresh(ui Layout) {
	Renderer.SetDrawColor(32, 42, 53, 255)
	Renderer.Clear()

	// frame various portions of the app
	Frame(sdl.Rect{X: ui.Screen.X - 2, Y: ui.Screen.Y - 2, W: ui.Screen.W + 2, H: ui.Screen.H + 2})
	Frame(ui.Assembly)
	Frame(ui.Registers)
	Frame(ui.Log)

	// update the video screen and copy it
	RefreshScreen()
	CopyScreen(ui.Screen)

	// debug assembly, virtual registers and log
	DebugAssembly(ui.Assembly.X+6, ui.Assembly.Y+6)
	DebugRegisters(ui.Registers.X+4, ui.Registers.Y+4)
	DebugLog(ui.Log.X+4, ui.Log.Y+4, ui.Log.W-8)

	// show the new frame
	Renderer.Present()
}

/// Frame draws a beveled border around r.
///
func Frame(r sdl.Rect) {
	x, y, w, h := r.X, r.Y, r.W, r.H

	Renderer.SetDrawColor(0, 0, 0, 255)
	Renderer.DrawLine(x, y, x+w, y)
	Renderer.DrawLine(x, y, x, y+h)

	// highlight
	Renderer.SetDrawColor(95, 112, 120, 255)
	Renderer.DrawLine(x+w, y, x+w, y+h)
	Renderer.DrawLine(x, y+h, x+w, y+h)
}
