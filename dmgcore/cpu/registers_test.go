package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagHelpers(t *testing.T) {
	c := newTestCPU()

	c.setFlag(FlagZero)
	assert.True(t, c.isSet(FlagZero))
	assert.Equal(t, uint8(0x80), c.f)

	c.resetFlag(FlagZero)
	assert.False(t, c.isSet(FlagZero))

	c.setFlagIf(FlagCarry, true)
	assert.True(t, c.isSet(FlagCarry))
	c.setFlagIf(FlagCarry, false)
	assert.False(t, c.isSet(FlagCarry))
}

func TestRegisterPairs(t *testing.T) {
	c := newTestCPU()

	c.setBC(0xABCD)
	assert.Equal(t, uint8(0xAB), c.b)
	assert.Equal(t, uint8(0xCD), c.c)
	assert.Equal(t, uint16(0xABCD), c.getBC())

	c.setAF(0x1234)
	assert.Equal(t, uint8(0x12), c.a)
	assert.Equal(t, uint8(0x30), c.f, "low nibble of F is always zero")
}

func TestHLIncDec(t *testing.T) {
	c := newTestCPU()
	c.setHL(0x1000)

	got := c.hli()
	assert.Equal(t, uint16(0x1000), got)
	assert.Equal(t, uint16(0x1001), c.getHL())

	got = c.hld()
	assert.Equal(t, uint16(0x1001), got)
	assert.Equal(t, uint16(0x1000), c.getHL())
}

func TestR8Accessors(t *testing.T) {
	c := newTestCPU()
	c.setHL(0xC000)

	c.setR8(regB, 0x11)
	assert.Equal(t, uint8(0x11), c.getR8(regB))

	c.setR8(regHLInd, 0x42)
	assert.Equal(t, uint8(0x42), c.mem.Read(0xC000))
	assert.Equal(t, uint8(0x42), c.getR8(regHLInd))
}

func TestR16Groups(t *testing.T) {
	c := newTestCPU()

	c.setR16Group1(pairSP, 0xFFF0)
	assert.Equal(t, uint16(0xFFF0), c.sp)
	assert.Equal(t, uint16(0xFFF0), c.getR16Group1(pairSP))

	c.setAF(0x5030)
	assert.Equal(t, uint16(0x5030), c.getR16Group2(3))
}
