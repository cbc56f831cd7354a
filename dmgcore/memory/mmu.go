// Package memory implements the DMG address-space router, its
// memory-bank-controller family, and the small MMIO peripherals (timer,
// joypad, serial stub) that live behind it.
package memory

import (
	"fmt"

	"github.com/mharlton/dmgcore/dmgcore/addr"
	"github.com/mharlton/dmgcore/dmgcore/video"
)

// mmioDefaults are written into the IO page right after construction,
// matching the register state real hardware is left in once the boot ROM
// hands off control.
var mmioDefaults = map[uint16]byte{
	0xFF05: 0x00, 0xFF06: 0x00, 0xFF07: 0x00,
	0xFF10: 0x80, 0xFF11: 0xBF, 0xFF12: 0xF3, 0xFF14: 0xBF,
	0xFF16: 0x3F, 0xFF17: 0x00, 0xFF19: 0xBF, 0xFF1A: 0x7F,
	0xFF1B: 0xFF, 0xFF1C: 0x9F, 0xFF1E: 0xFF, 0xFF20: 0xFF,
	0xFF21: 0x00, 0xFF22: 0x00, 0xFF23: 0xBF, 0xFF24: 0x77,
	0xFF25: 0xF3, 0xFF26: 0xF1,
	0xFF40: 0x91, 0xFF42: 0x00, 0xFF43: 0x00, 0xFF45: 0x00,
	0xFF47: 0xFC, 0xFF48: 0xFF, 0xFF49: 0xFF, 0xFF4A: 0x00, 0xFF4B: 0x00,
}

// MMU is the single read/write entry point into the 64KiB DMG address
// space. It owns every peripheral outright (MBC, PPU, timer, joypad,
// serial) and is the only component that ever touches IF; peripherals
// surface requests through a pending bit the router drains in Step.
type MMU struct {
	header Header
	mbc    MBC

	ppu    *video.PPU
	timer  *Timer
	joypad *Joypad
	serial *Serial

	wram [0x2000]byte
	hram [0x7F]byte

	ifReg byte
	ieReg byte

	soundStub [0xFF40 - 0xFF10]byte
}

// New builds an MMU around a parsed header and its backing ROM bytes.
func New(h Header, rom []byte) *MMU {
	m := &MMU{
		header: h,
		mbc:    NewMBC(h, rom),
		ppu:    video.NewPPU(),
		timer:  NewTimer(),
		joypad: NewJoypad(),
		serial: NewSerial(),
	}
	for address, value := range mmioDefaults {
		m.writeRaw(address, value)
	}
	return m
}

func (m *MMU) Header() Header   { return m.header }
func (m *MMU) PPU() *video.PPU  { return m.ppu }
func (m *MMU) HasBattery() bool { return m.mbc.HasBattery() }
func (m *MMU) BatteryRAM() []byte { return m.mbc.RAM() }

func (m *MMU) Read(address uint16) byte {
	switch {
	case address <= 0x7FFF:
		return m.mbc.ReadROM(address)
	case address <= 0x9FFF:
		return m.ppu.ReadVRAM(address)
	case address <= 0xBFFF:
		return m.mbc.ReadRAM(address)
	case address <= 0xDFFF:
		return m.wram[address-0xC000]
	case address <= 0xFDFF:
		return m.Read(address - 0x2000)
	case address <= 0xFE9F:
		return m.ppu.ReadOAM(address)
	case address <= 0xFEFF:
		return 0
	case address <= 0xFFFF:
		return m.readIO(address)
	default:
		panic(fmt.Sprintf("memory: read at unmapped address 0x%04X", address))
	}
}

func (m *MMU) Write(address uint16, value byte) {
	switch {
	case address <= 0x7FFF:
		m.mbc.WriteROM(address, value)
	case address <= 0x9FFF:
		m.ppu.WriteVRAM(address, value)
	case address <= 0xBFFF:
		m.mbc.WriteRAM(address, value)
	case address <= 0xDFFF:
		m.wram[address-0xC000] = value
	case address <= 0xFDFF:
		m.Write(address-0x2000, value)
	case address <= 0xFE9F:
		m.ppu.WriteOAM(address, value)
	case address <= 0xFEFF:
		// unusable region, writes dropped
	case address <= 0xFFFF:
		m.writeIO(address, value)
	default:
		panic(fmt.Sprintf("memory: write at unmapped address 0x%04X", address))
	}
}

// writeRaw seeds the post-construction MMIO defaults into their owning
// components through writeIO, so each write has its normal side effects
// (LCDC's 0x91, for instance, switches the PPU on).
func (m *MMU) writeRaw(address uint16, value byte) {
	m.writeIO(address, value)
}

func (m *MMU) readIO(address uint16) byte {
	switch {
	case address == addr.P1:
		return m.joypad.Read()
	case address == addr.SB || address == addr.SC:
		return m.serial.Read(address)
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		return m.timer.Read(address)
	case address == addr.IF:
		return m.ifReg | 0xE0
	case address == addr.IE:
		return m.ieReg
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		return m.soundStub[address-addr.AudioStart]
	case address == addr.LCDC, address == addr.STAT, address == addr.SCY, address == addr.SCX,
		address == addr.LY, address == addr.LYC, address == addr.BGP, address == addr.OBP0,
		address == addr.OBP1, address == addr.WY, address == addr.WX:
		return m.ppu.ReadReg(address)
	case address == addr.DMA:
		return 0xFF
	case address == addr.VBK, address == addr.SVBK:
		return 0xFF
	case address >= 0xFF80 && address <= 0xFFFE:
		return m.hram[address-0xFF80]
	default:
		return 0xFF
	}
}

func (m *MMU) writeIO(address uint16, value byte) {
	switch {
	case address == addr.P1:
		m.joypad.WriteSelect(value)
	case address == addr.SB || address == addr.SC:
		m.serial.Write(address, value)
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		m.timer.Write(address, value)
	case address == addr.IF:
		m.ifReg = value & 0x1F
	case address == addr.IE:
		m.ieReg = value
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		m.soundStub[address-addr.AudioStart] = value
	case address == addr.LCDC, address == addr.STAT, address == addr.SCY, address == addr.SCX,
		address == addr.LY, address == addr.LYC, address == addr.BGP, address == addr.OBP0,
		address == addr.OBP1, address == addr.WY, address == addr.WX:
		m.ppu.WriteReg(address, value)
	case address == addr.DMA:
		m.runDMA(value)
	case address == addr.VBK, address == addr.SVBK:
		// CGB stubs, ignored on DMG
	case address >= 0xFF80 && address <= 0xFFFE:
		m.hram[address-0xFF80] = value
	default:
		// unmapped IO register, write dropped
	}
}

// runDMA copies 160 bytes from (value<<8) into OAM via the same router used
// by the CPU, modeled as instantaneous per the spec's DMA contract.
func (m *MMU) runDMA(value byte) {
	source := uint16(value) << 8
	for i := uint16(0); i < 160; i++ {
		m.Write(0xFE00+i, m.Read(source+i))
	}
}

func (m *MMU) ReadWord(address uint16) uint16 {
	low := m.Read(address)
	high := m.Read(address + 1)
	return uint16(high)<<8 | uint16(low)
}

func (m *MMU) WriteWord(address uint16, value uint16) {
	m.Write(address, byte(value))
	m.Write(address+1, byte(value>>8))
}

func (m *MMU) IERegister() byte { return m.ieReg }
func (m *MMU) IFRegister() byte { return m.ifReg }
func (m *MMU) SetIF(value byte) { m.ifReg = value & 0x1F }

// RequestInterrupt ORs i into IF directly, without the five-bit mask that
// IF writes get. Neither the CPU nor the peripherals call it; they go
// through SetIF and the pending bits drained in Step.
func (m *MMU) RequestInterrupt(i addr.Interrupt) {
	m.ifReg |= uint8(i)
}

// Step advances every cycle-driven peripheral by cycles clock-cycles,
// draining each one's pending interrupt bits into IF exactly once.
func (m *MMU) Step(cycles int) {
	if m.joypad.ClearPending() {
		m.ifReg |= uint8(addr.JoypadInterrupt)
	}

	m.timer.Step(cycles)
	if m.timer.ClearPending() {
		m.ifReg |= uint8(addr.TimerInterrupt)
	}

	m.ppu.Step(cycles)
	if p := m.ppu.ClearPending(); p != 0 {
		if p&0x01 != 0 {
			m.ifReg |= uint8(addr.VBlankInterrupt)
		}
		if p&0x02 != 0 {
			m.ifReg |= uint8(addr.LCDSTATInterrupt)
		}
	}

	if m.serial.ClearPending() {
		m.ifReg |= uint8(addr.SerialInterrupt)
	}
}

func (m *MMU) PressKey(key JoypadKey)   { m.joypad.Press(key) }
func (m *MMU) ReleaseKey(key JoypadKey) { m.joypad.Release(key) }
