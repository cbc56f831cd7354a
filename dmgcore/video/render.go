package video

import "github.com/mharlton/dmgcore/dmgcore/bit"

// renderScanline draws background, window, then sprites for the current LY
// into the framebuffer, following the fetch/compare rules of the DMG PPU.
func (p *PPU) renderScanline() {
	line := int(p.ly)

	for x := 0; x < Width; x++ {
		p.bgColorIndex[x] = 0
	}

	if bit.IsSet(lcdcBGEnable, p.lcdc) {
		p.renderBackgroundAndWindow(line)
	} else {
		shade := p.bgp.Shade(0)
		for x := 0; x < Width; x++ {
			p.fb.SetPixel(x, line, shade)
		}
	}

	if bit.IsSet(lcdcObjEnable, p.lcdc) {
		p.renderSprites(line)
	}
}

func (p *PPU) renderBackgroundAndWindow(line int) {
	windowEnabled := bit.IsSet(lcdcWindowEnable, p.lcdc) && p.windowTriggered
	signedTiles := !bit.IsSet(lcdcBGWindowTiles, p.lcdc)

	windowDrawnThisLine := false

	for x := 0; x < Width; x++ {
		useWindow := windowEnabled && int(p.wx) <= 166 && x-int(p.wx)+7 >= 0

		var tileMapBase uint16
		var tileX, tileY, pixelX, pixelY int

		if useWindow && !windowDrawnThisLine {
			p.windowLine++
			windowDrawnThisLine = true
		}

		if useWindow {
			winX := x - (int(p.wx) - 7)
			tileMapBase = windowTileMapBase(p.lcdc)
			tileX = winX / 8
			tileY = p.windowLine / 8
			pixelX = winX % 8
			pixelY = p.windowLine % 8
		} else {
			scrolledX := (x + int(p.scx)) & 0xFF
			scrolledY := (line + int(p.scy)) & 0xFF
			tileMapBase = bgTileMapBase(p.lcdc)
			tileX = scrolledX / 8
			tileY = scrolledY / 8
			pixelX = scrolledX % 8
			pixelY = scrolledY % 8
		}

		tileIndexAddr := tileMapBase + uint16(tileY*32+tileX)
		tileIndex := p.ReadVRAM(tileIndexAddr)

		tileAddr := tileDataAddr(p.lcdc, signedTiles, tileIndex) + uint16(pixelY*2)
		low := p.ReadVRAM(tileAddr)
		high := p.ReadVRAM(tileAddr + 1)

		bitIdx := uint8(7 - pixelX)
		colorIndex := colorFromBits(low, high, bitIdx)

		p.bgColorIndex[x] = colorIndex
		p.fb.SetPixel(x, line, p.bgp.Shade(colorIndex))
	}
}

func windowTileMapBase(lcdc byte) uint16 {
	if bit.IsSet(lcdcWindowTileMap, lcdc) {
		return 0x9C00
	}
	return 0x9800
}

func bgTileMapBase(lcdc byte) uint16 {
	if bit.IsSet(lcdcBGTileMap, lcdc) {
		return 0x9C00
	}
	return 0x9800
}

// tileDataAddr resolves a tile index to its base VRAM address per LCDC bit 4:
// unsigned indexing from 0x8000, or signed indexing from 0x9000.
func tileDataAddr(lcdc byte, signed bool, index uint8) uint16 {
	if !signed {
		return 0x8000 + uint16(index)*16
	}
	return uint16(int(0x9000) + int(int8(index))*16)
}

func colorFromBits(low, high byte, bitIdx uint8) byte {
	var c byte
	if bit.IsSet(bitIdx, low) {
		c |= 1
	}
	if bit.IsSet(bitIdx, high) {
		c |= 2
	}
	return c
}

func (p *PPU) renderSprites(line int) {
	tall := bit.IsSet(lcdcObjSize, p.lcdc)
	height := 8
	if tall {
		height = 16
	}

	var entries []oamEntry
	var indices []int8

	for i := 0; i < 40 && len(entries) < 10; i++ {
		base := uint16(i * 4)
		y := int(p.oam[base]) - 16
		if line < y || line >= y+height {
			continue
		}
		entries = append(entries, oamEntry{
			y:     p.oam[base],
			x:     p.oam[base+1],
			tile:  p.oam[base+2],
			flags: p.oam[base+3],
		})
		indices = append(indices, int8(i))
	}

	p.priority.reset()
	for i, e := range entries {
		x := int(e.x) - 8
		for px := 0; px < 8; px++ {
			p.priority.tryClaim(x+px, indices[i], int16(x))
		}
	}

	for i, e := range entries {
		x := int(e.x) - 8
		y := int(e.y) - 16

		rowInSprite := line - y
		if e.flags&oamFlagFlipY != 0 {
			rowInSprite = height - 1 - rowInSprite
		}

		tile := e.tile
		if height == 16 {
			tile &^= 0x01
		}
		tileAddr := 0x8000 + uint16(tile)*16 + uint16(rowInSprite*2)
		low := p.ReadVRAM(tileAddr)
		high := p.ReadVRAM(tileAddr + 1)

		palette := p.obp0
		if e.flags&oamFlagPalette != 0 {
			palette = p.obp1
		}
		behindBG := e.flags&oamFlagPriority != 0

		for px := 0; px < 8; px++ {
			screenX := x + px
			if screenX < 0 || screenX >= Width {
				continue
			}
			if int(p.priority.ownerAt(screenX)) != int(indices[i]) {
				continue
			}

			bitIdx := uint8(px)
			if e.flags&oamFlagFlipX == 0 {
				bitIdx = uint8(7 - px)
			}
			colorIndex := colorFromBits(low, high, bitIdx)
			if colorIndex == 0 {
				continue
			}
			if behindBG && p.bgp.Shade(p.bgColorIndex[screenX]) != 255 {
				continue
			}

			p.fb.SetPixel(screenX, line, palette.Shade(colorIndex))
		}
	}
}
