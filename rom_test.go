package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/massung/CHIP-8/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestIsSource(t *testing.T) {
	assert.True(t, IsSource("pong.asm"))
	assert.True(t, IsSource("dir/PONG.C8S"))
	assert.True(t, IsSource("x.s"))
	assert.False(t, IsSource("pong.ch8"))
	assert.False(t, IsSource("games/PONG"))
}

func TestLoadProgram(t *testing.T) {
	rom := writeFile(t, "test.ch8", []byte{0x00, 0xE0, 0x12, 0x02})

	program, err := LoadProgram(rom, false)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xE0, 0x12, 0x02}, program)
}

func TestLoadProgramSource(t *testing.T) {
	src := writeFile(t, "test.asm", []byte("CLS\n.LOOP JP LOOP\n"))

	program, err := LoadProgram(src, false)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xE0, 0x12, 0x02}, program)

	// forced by the flag
	src = writeFile(t, "test.txt", []byte("RET"))

	program, err = LoadProgram(src, true)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xEE}, program)
}

func TestLoadProgramErrors(t *testing.T) {
	_, err := LoadProgram(filepath.Join(t.TempDir(), "missing.ch8"), false)
	assert.ErrorContains(t, err, "reading program")

	src := writeFile(t, "bad.asm", []byte("CLS\nLD V0, V1, V2\n"))

	_, err = LoadProgram(src, false)
	assert.ErrorContains(t, err, "assembling bad.asm: line 2 - illegal instruction")

	var asmErr *chip8.AsmError
	assert.True(t, errors.As(err, &asmErr))
	assert.Equal(t, 2, asmErr.Line)
}
