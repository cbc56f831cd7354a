package video

import (
	"github.com/mharlton/dmgcore/dmgcore/addr"
	"github.com/mharlton/dmgcore/dmgcore/bit"
)

// Mode identifies the PPU's current scanline phase; the numeric values match
// STAT bits 1-0 so setMode can write them back directly.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAM    Mode = 2
	ModeVRAM   Mode = 3
)

const (
	oamCycles    = 80
	vramCycles   = 172
	hblankCycles = 204
	scanlineCycles = oamCycles + vramCycles + hblankCycles // 456
	lastLine     = 153
)

// STAT bit positions.
const (
	statLYCInterrupt    = 6
	statOAMInterrupt    = 5
	statVBlankInterrupt = 4
	statHBlankInterrupt = 3
	statLYCCoincidence  = 2
)

// LCDC bit positions.
const (
	lcdcEnable         = 7
	lcdcWindowTileMap  = 6
	lcdcWindowEnable   = 5
	lcdcBGWindowTiles  = 4
	lcdcBGTileMap      = 3
	lcdcObjSize        = 2
	lcdcObjEnable      = 1
	lcdcBGEnable       = 0
)

// Interrupt bits the PPU can raise, mirroring addr.Interrupt without
// importing the memory package (PPU never references its owner).
const (
	pendingVBlank  uint8 = 1 << 0
	pendingLCDStat uint8 = 1 << 1
)

// PPU owns VRAM, OAM, every LCD register, and the framebuffer outright: it
// has no reference back to the bus. Interrupts it raises accumulate in a
// pending bitmask that the memory router drains every step, the same
// pattern used by the timer and joypad.
type PPU struct {
	vram [0x2000]byte
	oam  [160]byte

	lcdc, stat, scy, scx, ly, lyc, wy, wx byte
	bgp, obp0, obp1                       Palette

	mode  Mode
	clock int

	windowTriggered bool
	windowLine      int // -1 means "not yet started this frame"

	bgColorIndex [Width]byte // BG/window source color index (0-3) for sprite priority
	priority     spritePriority

	fb *FrameBuffer

	pending uint8
}

func NewPPU() *PPU {
	p := &PPU{
		fb:         NewFrameBuffer(),
		mode:       ModeVBlank,
		ly:         144,
		windowLine: -1,
	}
	return p
}

func (p *PPU) FrameBuffer() *FrameBuffer { return p.fb }

func (p *PPU) ReadVRAM(address uint16) byte { return p.vram[address-0x8000] }
func (p *PPU) WriteVRAM(address uint16, value byte) { p.vram[address-0x8000] = value }

func (p *PPU) ReadOAM(address uint16) byte { return p.oam[address-0xFE00] }
func (p *PPU) WriteOAM(address uint16, value byte) { p.oam[address-0xFE00] = value }

// enabled reports whether LCDC bit 7 (LCD power) is set.
func (p *PPU) enabled() bool { return bit.IsSet(lcdcEnable, p.lcdc) }

func (p *PPU) ReadReg(address uint16) byte {
	switch address {
	case addr.LCDC:
		return p.lcdc
	case addr.STAT:
		return 0x80 | p.stat
	case addr.SCY:
		return p.scy
	case addr.SCX:
		return p.scx
	case addr.LY:
		return p.ly
	case addr.LYC:
		return p.lyc
	case addr.BGP:
		return byte(p.bgp)
	case addr.OBP0:
		return byte(p.obp0)
	case addr.OBP1:
		return byte(p.obp1)
	case addr.WY:
		return p.wy
	case addr.WX:
		return p.wx
	default:
		return 0xFF
	}
}

func (p *PPU) WriteReg(address uint16, value byte) {
	switch address {
	case addr.LCDC:
		wasOn := p.enabled()
		p.lcdc = value
		if !wasOn && p.enabled() {
			p.onEnable()
		} else if wasOn && !p.enabled() {
			p.onDisable()
		}
	case addr.STAT:
		p.stat = (p.stat & 0x07) | (value & 0x78)
	case addr.SCY:
		p.scy = value
	case addr.SCX:
		p.scx = value
	case addr.LY:
		// read-only on hardware
	case addr.LYC:
		p.lyc = value
		p.compareLYC()
	case addr.BGP:
		p.bgp = Palette(value)
	case addr.OBP0:
		p.obp0 = Palette(value)
	case addr.OBP1:
		p.obp1 = Palette(value)
	case addr.WY:
		p.wy = value
	case addr.WX:
		p.wx = value
	}
}

func (p *PPU) onDisable() {
	p.mode = ModeHBlank
	p.ly = 0
	p.clock = 0
	p.fb.Clear(255)
}

func (p *PPU) onEnable() {
	p.mode = ModeVBlank
	p.clock = 4
	p.ly = 0
}

// Step advances the PPU by cycles clock-cycles (4 per CPU machine cycle).
func (p *PPU) Step(cycles int) {
	if !p.enabled() {
		return
	}

	remaining := cycles
	for remaining > 0 {
		consumed := p.stepOnce(remaining)
		remaining -= consumed
	}
}

// stepOnce advances at most to the next mode boundary and returns how many
// cycles it consumed, so Step can loop for spans crossing several modes.
func (p *PPU) stepOnce(budget int) int {
	switch p.mode {
	case ModeOAM:
		return p.advance(budget, oamCycles, p.enterVRAM)
	case ModeVRAM:
		return p.advance(budget, vramCycles, p.enterHBlank)
	case ModeHBlank:
		return p.advance(budget, hblankCycles, p.enterAfterHBlank)
	case ModeVBlank:
		return p.advance(budget, scanlineCycles, p.enterAfterVBlankLine)
	default:
		return budget
	}
}

func (p *PPU) advance(budget, duration int, onExit func()) int {
	need := duration - p.clock
	if budget < need {
		p.clock += budget
		return budget
	}
	p.clock = 0
	onExit()
	return need
}

func (p *PPU) enterVRAM() {
	p.setMode(ModeVRAM)
	p.renderScanline()
}

func (p *PPU) enterHBlank() {
	p.setMode(ModeHBlank)
}

func (p *PPU) enterAfterHBlank() {
	p.setLY(p.ly + 1)
	if p.ly == 144 {
		p.setMode(ModeVBlank)
		p.pending |= pendingVBlank
		if bit.IsSet(statVBlankInterrupt, p.stat) {
			p.pending |= pendingLCDStat
		}
		return
	}
	p.enterOAM()
}

func (p *PPU) enterAfterVBlankLine() {
	if p.ly == lastLine {
		p.setLY(0)
		p.enterOAM()
		return
	}
	p.setLY(p.ly + 1)
}

func (p *PPU) enterOAM() {
	p.setMode(ModeOAM)
	if bit.IsSet(statOAMInterrupt, p.stat) {
		p.pending |= pendingLCDStat
	}
	if bit.IsSet(lcdcWindowEnable, p.lcdc) && p.ly == p.wy {
		p.windowTriggered = true
		p.windowLine = -1
	}
}

func (p *PPU) setMode(mode Mode) {
	p.mode = mode
	p.stat = (p.stat &^ 0x03) | byte(mode)
	if mode == ModeHBlank && bit.IsSet(statHBlankInterrupt, p.stat) {
		p.pending |= pendingLCDStat
	}
}

func (p *PPU) setLY(line byte) {
	p.ly = line
	p.compareLYC()
	if line == 0 {
		p.windowTriggered = false
	}
}

func (p *PPU) compareLYC() {
	if p.ly == p.lyc {
		p.stat = bit.Set(statLYCCoincidence, p.stat)
		if bit.IsSet(statLYCInterrupt, p.stat) {
			p.pending |= pendingLCDStat
		}
	} else {
		p.stat = bit.Reset(statLYCCoincidence, p.stat)
	}
}

// Pending returns the accumulated interrupt bitmask (pendingVBlank /
// pendingLCDStat), translated by the caller into IF bits.
func (p *PPU) Pending() uint8 { return p.pending }

func (p *PPU) ClearPending() uint8 {
	v := p.pending
	p.pending = 0
	return v
}
