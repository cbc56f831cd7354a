package dmgcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// minimalROM builds the smallest cartridge image New can parse: ROM-only,
// no RAM, title left blank. The header checksum is deliberately wrong;
// callers pass skipChecksum=true unless they're exercising the checksum gate.
func minimalROM() []byte {
	rom := make([]byte, 0x8000)
	rom[0x147] = 0x00 // ROM only
	rom[0x148] = 0x00 // 2 banks
	rom[0x149] = 0x00 // no RAM
	return rom
}

func TestNewRejectsBadChecksumByDefault(t *testing.T) {
	_, err := New(minimalROM(), false)

	assert.Error(t, err)
}

func TestNewAcceptsBadChecksumWhenSkipped(t *testing.T) {
	e, err := New(minimalROM(), true)

	assert.NoError(t, err)
	assert.NotNil(t, e)
}

func TestNewRejectsTruncatedROM(t *testing.T) {
	_, err := New(make([]byte, 8), true)

	assert.Error(t, err)
}

func TestScreenIsFullFrameSized(t *testing.T) {
	e, err := New(minimalROM(), true)
	assert.NoError(t, err)

	assert.Len(t, e.Screen(), 160*144*3)
}

func TestRunFrameAdvancesFrameCount(t *testing.T) {
	e, err := New(minimalROM(), true)
	assert.NoError(t, err)

	e.RunFrame()

	assert.Equal(t, uint64(1), e.frameCount)
}

func TestPressAndReleaseKeyRejectsUnknownName(t *testing.T) {
	e, err := New(minimalROM(), true)
	assert.NoError(t, err)

	assert.Error(t, e.PressKey("nonexistent"))
	assert.Error(t, e.ReleaseKey("nonexistent"))
}

func TestPressKnownKeySucceeds(t *testing.T) {
	e, err := New(minimalROM(), true)
	assert.NoError(t, err)

	assert.NoError(t, e.PressKey("a"))
	assert.NoError(t, e.ReleaseKey("a"))
}

func TestHeaderReflectsParsedCartridge(t *testing.T) {
	rom := minimalROM()
	copy(rom[0x134:], "HELLO")
	e, err := New(rom, true)
	assert.NoError(t, err)

	assert.Equal(t, "HELLO", e.Header().Title)
	assert.False(t, e.HasBattery())
	assert.Nil(t, e.BatteryRAM())
}
