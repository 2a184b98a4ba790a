package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/massung/CHIP-8/chip8"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// KeyHoldFrames is how long a typed key stays pressed. Terminals only
// report key presses, never releases.
const KeyHoldFrames = 6

// TermKeyMap maps typed characters to keypad keys, using the same
// layout as the window.
var TermKeyMap = map[byte]byte{
	'x': 0x0,
	'1': 0x1,
	'2': 0x2,
	'3': 0x3,
	'q': 0x4,
	'w': 0x5,
	'e': 0x6,
	'a': 0x7,
	's': 0x8,
	'd': 0x9,
	'z': 0xA,
	'c': 0xB,
	'4': 0xC,
	'r': 0xD,
	'f': 0xE,
	'v': 0xF,
}

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1B
)

// Terminal draws a virtual machine on an ANSI terminal and feeds it
// typed keys.
type Terminal struct {
	vm  *chip8.CHIP_8
	out io.Writer

	// frames left until each key is released
	held [16]int

	sounding bool
}

// NewTerminal creates a terminal front end writing to out.
func NewTerminal(vm *chip8.CHIP_8, out io.Writer) *Terminal {
	return &Terminal{
		vm:  vm,
		out: out,
	}
}

// RunTerminal runs a program in the terminal until it fails, the user
// quits or ctx is cancelled.
func RunTerminal(ctx context.Context, opts Options, logger *log.Logger) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("terminal mode needs an interactive terminal")
	}

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && (w < chip8.Width || h < chip8.Height/2+1) {
		logger.Warn("Terminal is too small for the display", log.Int("width", w), log.Int("height", h))
	}

	program, err := LoadProgram(opts.ROM, opts.Asm)
	if err != nil {
		return err
	}

	cfg, err := MachineConfig(opts, logger)
	if err != nil {
		return err
	}

	vm, err := chip8.LoadROM(program, cfg)
	if err != nil {
		return err
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, old)
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan byte, 16)
	go readKeys(ctx, os.Stdin, keys)

	t := NewTerminal(vm, os.Stdout)

	// clear the screen and hide the cursor
	fmt.Fprint(t.out, "\x1b[2J\x1b[?25l")
	defer fmt.Fprint(t.out, "\x1b[?25h\r\n")

	ticker := time.NewTicker(chip8.FrameDuration)
	defer ticker.Stop()

	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case b, ok := <-keys:
			if !ok || !t.Key(b) {
				return nil
			}
		case now := <-ticker.C:
			t.Tick()

			if err := vm.Process(now.Sub(last)); err != nil {
				return err
			}
			last = now

			t.Draw()
		}
	}
}

// Key handles a typed byte. Returns false if it quits.
func (t *Terminal) Key(b byte) bool {
	if b == keyCtrlC || b == keyEscape {
		return false
	}

	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}

	if key, ok := TermKeyMap[b]; ok {
		t.vm.PressKey(key)
		t.held[key] = KeyHoldFrames
	}

	return true
}

// Tick releases keys that have been held long enough.
func (t *Terminal) Tick() {
	for key, n := range t.held {
		if n == 0 {
			continue
		}

		if t.held[key]--; t.held[key] == 0 {
			t.vm.ReleaseKey(byte(key))
		}
	}
}

// Draw the display and a status line, ringing the bell when the sound
// timer starts.
func (t *Terminal) Draw() {
	var sb strings.Builder

	sb.WriteString("\x1b[H")
	sb.WriteString(RenderHalfBlocks(&t.vm.Display))
	sb.WriteString("\r\n")
	sb.WriteString(fmt.Sprintf("PC %04X  I %04X  DT %02X  ST %02X  %-15s  ESC quits\x1b[K",
		t.vm.PC, t.vm.I, t.vm.DelayTimer(), t.vm.SoundTimer(), t.vm.State()))

	sounding := t.vm.SoundActive()
	if sounding && !t.sounding {
		sb.WriteByte('\a')
	}
	t.sounding = sounding

	fmt.Fprint(t.out, sb.String())
}

// RenderHalfBlocks draws two display rows per line of text.
func RenderHalfBlocks(d *chip8.Display) string {
	var sb strings.Builder

	for y := 0; y < chip8.Height; y += 2 {
		if y > 0 {
			sb.WriteString("\r\n")
		}

		for x := 0; x < chip8.Width; x++ {
			top, bottom := d.Pixel(x, y), d.Pixel(x, y+1)

			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
	}

	return sb.String()
}

// readKeys forwards bytes read from r until it fails or ctx is done. A
// Read that is already blocked only returns once input arrives.
func readKeys(ctx context.Context, r io.Reader, keys chan<- byte) {
	defer close(keys)

	buf := make([]byte, 16)

	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case keys <- b:
			case <-ctx.Done():
				return
			}
		}

		if err != nil || ctx.Err() != nil {
			return
		}
	}
}
