package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMemory(t *testing.T) {
	var m Memory

	m.reset()
	assert.Equal(t, font[:], m[FontBase:FontBase+len(font)])

	m.Write(0xFFF, 0x12)
	m.Write(0x1000, 0x34)
	assert.Equal(t, byte(0x12), m.Read(0xFFF))
	assert.Equal(t, byte(0x34), m.Read(0x000))

	// words straddle the end of memory
	assert.Equal(t, uint16(0x1234), m.ReadWord(0xFFF))

	assert.NoError(t, m.Load(ProgramBase, []byte{0xAB, 0xCD}))
	assert.Equal(t, uint16(0xABCD), m.ReadWord(ProgramBase))
	assert.NoError(t, m.Load(0xFFE, []byte{0x01, 0x02}))
	assert.NoError(t, m.Load(0xFFF, nil))

	assert.ErrorContains(t, m.Load(0x000, []byte{0x01}), "reserved address 0000")
	assert.ErrorContains(t, m.Load(0xFFF, []byte{0x01, 0x02}), "free memory: 1")
	assert.ErrorContains(t, m.Load(0x1000, nil), "free memory: 0")

	m.reset()
	assert.Equal(t, byte(0), m[ProgramBase])
}
