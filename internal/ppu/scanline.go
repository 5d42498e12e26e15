package ppu

import "github.com/mjansson/gbcore/internal/display"

// shades maps a 2-bit palette-remapped color ID to a grayscale sample,
// lightest first, per spec.md §4.6 step 3's palette remap.
var shades = [4]byte{255, 192, 95, 0}

// renderScanline fills row LY of fb with the background per spec.md §4.6.
// Grounded on the tile-sampling math in FabianRolfMatthiasNoll-GameBoyEmulator's
// internal/ppu/scanline.go, stripped of its FIFO fetcher and window/sprite
// layers down to the direct per-pixel lookup this core's scope asks for.
func (p *PPU) renderScanline(bus Bus, fb *display.Frame) {
	row := int(p.LY) * display.Width
	for x := 0; x < display.Width; x++ {
		fb[row+x] = 0xFF
	}
	if p.LCDC&0x01 == 0 {
		return
	}

	mapBase := uint16(0x9800)
	if p.LCDC&0x08 != 0 {
		mapBase = 0x9C00
	}
	unsignedTiles := p.LCDC&0x10 != 0

	bgY := int(p.SCY) + int(p.LY)
	bgY &= 0xFF
	tileY := (bgY / 8) % 32

	for x := 0; x < display.Width; x++ {
		bgX := (int(p.SCX) + x) & 0xFF
		tileX := (bgX / 8) % 32

		tileID := bus.Read(mapBase + uint16(tileY*32+tileX))

		var tileAddr uint16
		if unsignedTiles {
			tileAddr = 0x8000 + uint16(tileID)*16
		} else {
			tileAddr = uint16(int32(0x9000) + int32(int8(tileID))*16)
		}

		rowBase := tileAddr + uint16(bgY&7)*2
		lo := bus.Read(rowBase)
		hi := bus.Read(rowBase + 1)

		bit := uint(7 - (bgX & 7))
		colorID := ((hi>>bit)&1)<<1 | (lo>>bit)&1

		shade := (p.BGP >> (colorID * 2)) & 0x3
		fb[row+x] = shades[shade]
	}
}
