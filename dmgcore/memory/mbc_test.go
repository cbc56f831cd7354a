package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fillBanked(size int) []byte {
	rom := make([]byte, size)
	for bank := 0; bank*0x4000 < size; bank++ {
		for i := 0; i < 0x4000; i++ {
			rom[bank*0x4000+i] = byte(bank)
		}
	}
	return rom
}

func TestMBC1BankSwitching(t *testing.T) {
	rom := fillBanked(8 * 0x4000) // 8 banks, well under the 512KiB upper-bits threshold
	mbc := NewMBC1(rom, 0, false)

	assert.Equal(t, byte(0), mbc.ReadROM(0x0000), "bank 0 always mapped at 0x0000-0x3FFF")

	mbc.WriteROM(0x2000, 3)
	assert.Equal(t, byte(3), mbc.ReadROM(0x4000))

	mbc.WriteROM(0x2000, 0) // bank 0 coerces to bank 1
	assert.Equal(t, byte(1), mbc.ReadROM(0x4000))
}

func TestMBC1RAMEnableGate(t *testing.T) {
	rom := fillBanked(2 * 0x4000)
	mbc := NewMBC1(rom, 1, false)

	mbc.WriteRAM(0xA000, 0x42)
	assert.Equal(t, byte(0xFF), mbc.ReadRAM(0xA000), "disabled RAM reads open bus")

	mbc.WriteROM(0x0000, 0x0A)
	mbc.WriteRAM(0xA000, 0x42)
	assert.Equal(t, byte(0x42), mbc.ReadRAM(0xA000))
}

func TestMBC1UpperBitsExtendLargeROMBank(t *testing.T) {
	rom := fillBanked(128 * 0x4000) // 2MiB, past the 512KiB threshold
	mbc := NewMBC1(rom, 0, false)

	mbc.WriteROM(0x2000, 0x01) // low 5 bits of bank
	mbc.WriteROM(0x4000, 0x02) // upper bits = 2 -> bank 0x41 = 65

	assert.Equal(t, byte(0x41), mbc.ReadROM(0x4000))
}

func TestMBC5NineBitBank(t *testing.T) {
	rom := fillBanked(512 * 0x4000)
	mbc := NewMBC5(rom, 0, false)

	mbc.WriteROM(0x2000, 0xFF) // low 8 bits
	mbc.WriteROM(0x3000, 0x01) // bit 8

	assert.Equal(t, byte(0xFF), mbc.ReadROM(0x4000))
}

func TestMBC5RAMBanking(t *testing.T) {
	rom := fillBanked(2 * 0x4000)
	mbc := NewMBC5(rom, 4, true)

	mbc.WriteROM(0x0000, 0x0A)
	mbc.WriteROM(0x4000, 0x02)
	mbc.WriteRAM(0xA000, 0x99)

	assert.Equal(t, byte(0x99), mbc.ReadRAM(0xA000))
	assert.True(t, mbc.HasBattery())
}

func TestNoMBCIdentityMap(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x100] = 0xAB
	mbc := NewNoMBC(rom)

	assert.Equal(t, byte(0xAB), mbc.ReadROM(0x100))
	assert.Equal(t, byte(0), mbc.ReadRAM(0xA000))
	assert.Nil(t, mbc.RAM())
}
