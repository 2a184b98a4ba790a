package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/massung/CHIP-8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

/// LogLines is the number of log lines shown in the log pane.
///
const LogLines = 15

var (
	/// True if pausing emulation (single stepping).
	///
	Paused bool

	/// Current debug window address.
	///
	Address uint16

	/// Log shown in the log pane.
	///
	Log = NewLog()

	/// Redirected stdout text.
	///
	LogChan chan string

	/// Console is the original stdout, before it was redirected.
	///
	Console = os.Stdout
)

/// InitDebug redirects stdout and stderr into the log pane. Must be
/// called before any loggers are created.
///
func InitDebug() error {
	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	LogChan = make(chan string, 64)

	// redirect output
	os.Stdout = w
	os.Stderr = w

	// spawn a process to capture it
	go func() {
		scanner := bufio.NewScanner(r)

		for scanner.Scan() {
			LogChan <- scanner.Text()
		}
	}()

	return nil
}

/// DebugHelp shows the help text in the log.
///
func DebugHelp() {
	Log.Logln("Virtual keys:")
	Log.Log("  1-2-3-4")
	Log.Log("  Q-W-E-R")
	Log.Log("  A-S-D-F")
	Log.Log("  Z-X-C-V")
	Log.Logln("Emulation keys:")
	Log.Log("  ESC      - Quit")
	Log.Log("  BS       - Reset (+CTRL paused)")
	Log.Log("  F3       - Load program")
	Log.Log("  SPACE/F5 - Pause")
	Log.Log("  F6/F10   - Step")
	Log.Log("  F9       - Breakpoint")
	Log.Log("  [ ]      - Speed")
	Log.Log("  PG UP/DN - Scroll log")
	Log.Log("  H/F1     - Help")
}

/// Halt pauses emulation after the machine failed.
///
func Halt() {
	Paused = true

	Log.Logln("Emulation paused, press BS to reset")
}

/// DebugAssembly renders the disassembled instructions around the
/// CHIP-8 program counter.
///
func DebugAssembly(x, y int32) {
	const lines = 16

	if Address > VM.PC || Address+lines*2 <= VM.PC+2 || (Address^VM.PC)&1 == 1 {
		Address = 0

		// show the previous instruction as well
		if VM.PC >= 2 {
			Address = VM.PC - 2
		}
	}

	// keep the window inside memory
	if Address > chip8.MemorySize-lines*2 {
		Address = chip8.MemorySize - lines*2
	}

	// show the disassembled instructions
	for i := uint16(0); i < lines; i++ {
		addr := Address + i*2
		line := y + int32(i)*10

		if addr == VM.PC {
			if Paused {
				Renderer.SetDrawColor(176, 32, 57, 255)
			} else {
				Renderer.SetDrawColor(57, 102, 176, 255)
			}

			// highlight the current instruction
			Renderer.FillRect(&sdl.Rect{
				X: x - 2,
				Y: line - 2,
				W: 200,
				H: 10,
			})
		}

		if VM.HasBreakpoint(addr) {
			DrawText("*", x, line)
		}

		DrawText(VM.Disassemble(addr), x+GlyphAdvance, line)
	}
}

/// DebugRegisters shows the current value of all the CHIP-8 registers.
///
func DebugRegisters(x, y int32) {
	for i := 0; i < 16; i++ {
		DrawText(fmt.Sprintf("V%X - #%02X", i, VM.V[i]), x, y+int32(i)*10)
	}

	// shift over for the other registers
	x += 70

	DrawText(fmt.Sprintf("PC - #%04X", VM.PC), x, y)
	DrawText(fmt.Sprintf("SP - #%02X", VM.SP), x, y+10)
	DrawText(fmt.Sprintf("I  - #%04X", VM.I), x, y+30)
	DrawText(fmt.Sprintf("DT - #%02X", VM.DelayTimer()), x, y+50)
	DrawText(fmt.Sprintf("ST - #%02X", VM.SoundTimer()), x, y+60)

	// execution state
	DrawText(fmt.Sprintf("IPF - %d", VM.Speed), x, y+80)
	DrawText(Clip(VM.State().String(), 10), x, y+100)
	DrawText(fmt.Sprintf("%d", VM.Cycles), x, y+110)
}

/// DebugLog shows the log text (after pulling in any new text).
///
func DebugLog(x, y, w int32) {
	for pending := true; pending; {
		select {
		case text := <-LogChan:
			Log.Log(text)
		default:
			pending = false
		}
	}

	cols := TextColumns(w)

	for _, line := range Log.Window(LogLines) {
		DrawText(Clip(line, cols), x, y)

		// advance to the next line
		y += 10
	}
}
