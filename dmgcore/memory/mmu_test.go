package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mharlton/dmgcore/dmgcore/addr"
)

func newTestMMU(t *testing.T) *MMU {
	t.Helper()
	rom := validROM("MMUTEST", cartTypeROMOnly, 0x00, 0x00)
	h, err := ParseHeader(rom, false)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	return New(h, rom)
}

func TestMMUWRAMRoundTrip(t *testing.T) {
	m := newTestMMU(t)

	m.Write(0xC010, 0x42)

	assert.Equal(t, byte(0x42), m.Read(0xC010))
}

func TestMMUEchoRAMAliasesWRAM(t *testing.T) {
	m := newTestMMU(t)

	m.Write(0xC123, 0x77)

	assert.Equal(t, byte(0x77), m.Read(0xE123), "0xE000-0xFDFF mirrors 0xC000-0xDDFF")

	m.Write(0xE456, 0x88)
	assert.Equal(t, byte(0x88), m.Read(0xC456))
}

func TestMMUHRAMRoundTrip(t *testing.T) {
	m := newTestMMU(t)

	m.Write(0xFF90, 0x11)

	assert.Equal(t, byte(0x11), m.Read(0xFF90))
}

func TestMMUUnusableRegionReadsZeroAndDropsWrites(t *testing.T) {
	m := newTestMMU(t)

	m.Write(0xFEA0, 0x99)

	assert.Equal(t, byte(0), m.Read(0xFEA0))
}

func TestMMUIFReadBackSetsTopThreeBits(t *testing.T) {
	m := newTestMMU(t)

	m.Write(addr.IF, 0x00)

	assert.Equal(t, byte(0xE0), m.Read(addr.IF))
}

func TestMMUIFWriteMasksToFiveBits(t *testing.T) {
	m := newTestMMU(t)

	m.Write(addr.IF, 0xFF)

	assert.Equal(t, byte(0x1F), m.IFRegister())
	assert.Equal(t, byte(0xFF), m.Read(addr.IF))
}

func TestMMUIERegisterIsNotMasked(t *testing.T) {
	m := newTestMMU(t)

	m.Write(addr.IE, 0xFF)

	assert.Equal(t, byte(0xFF), m.IERegister())
}

func TestMMURequestInterruptSetsIFBit(t *testing.T) {
	m := newTestMMU(t)

	m.RequestInterrupt(addr.TimerInterrupt)

	assert.Equal(t, byte(addr.TimerInterrupt), m.IFRegister())
}

func TestMMUDMACopiesFromSourceIntoOAM(t *testing.T) {
	m := newTestMMU(t)
	for i := uint16(0); i < 160; i++ {
		m.Write(0xC000+i, byte(i))
	}

	m.Write(addr.DMA, 0xC0)

	for i := uint16(0); i < 160; i++ {
		assert.Equal(t, byte(i), m.Read(0xFE00+i))
	}
}

func TestMMUStepDrainsJoypadPendingIntoIF(t *testing.T) {
	m := newTestMMU(t)
	m.Write(addr.P1, 0x20) // select d-pad row

	m.PressKey(JoypadRight)
	m.Step(1)

	assert.NotEqual(t, byte(0), m.IFRegister()&byte(addr.JoypadInterrupt))
}

func TestMMUStepDrainsTimerOverflowIntoIF(t *testing.T) {
	m := newTestMMU(t)
	m.timer.tima = 0xFF
	m.timer.tma = 0x00
	m.timer.overflow = 4 // 4 clocks left

	m.Step(4) // lands the reload, arms reloading
	m.Step(1) // surfaces pending at the top of this call

	assert.NotEqual(t, byte(0), m.IFRegister()&byte(addr.TimerInterrupt))
}

func TestMMUReadWordIsLittleEndian(t *testing.T) {
	m := newTestMMU(t)
	m.Write(0xC000, 0xCD)
	m.Write(0xC001, 0xAB)

	assert.Equal(t, uint16(0xABCD), m.ReadWord(0xC000))
}

func TestMMUWriteWordIsLittleEndian(t *testing.T) {
	m := newTestMMU(t)

	m.WriteWord(0xC000, 0xABCD)

	assert.Equal(t, byte(0xCD), m.Read(0xC000))
	assert.Equal(t, byte(0xAB), m.Read(0xC001))
}

func TestMMUBatteryRAMNilWithoutMBC(t *testing.T) {
	m := newTestMMU(t)

	assert.False(t, m.HasBattery())
	assert.Nil(t, m.BatteryRAM())
}

func TestMMUPostConstructionLCDCDefault(t *testing.T) {
	m := newTestMMU(t)

	assert.Equal(t, byte(0x91), m.Read(addr.LCDC))
}
