// Package ppu implements the pixel-processing unit's mode state machine: a
// clock driven by T-cycle credits handed it after every CPU instruction,
// transitioning OAM-search -> Drawing -> HBlank within a scan-line and into
// VBlank for ten scan-lines out of every 154. It renders one background
// scan-line per HBlank entry and raises VBlank at line 144.
//
// Grounded on the mode-sequencing loop in FabianRolfMatthiasNoll-GameBoyEmulator's
// internal/ppu/ppu.go, trimmed of its FIFO pixel-fetcher (internal/ppu/fetcher.go)
// and sprite/window compositing in favour of the direct per-pixel background
// sampling this core's scope calls for.
package ppu

import (
	"github.com/mjansson/gbcore/internal/display"
	"github.com/mjansson/gbcore/internal/interrupt"
)

// Mode is one of the four PPU states.
type Mode byte

const (
	HBlank Mode = iota
	VBlank
	OAMSearch
	Drawing
)

// Bus is the slice of bus behavior the PPU needs: tile data and tile-map
// bytes (owned by the bus's VRAM region) and interrupt injection.
type Bus interface {
	Read(addr uint16) byte
	RequestInterrupt(line interrupt.Line)
}

const (
	lcdcDefault   = 0x80
	lineTCycles   = 456
	oamEndDot     = 80
	drawingEndDot = 252
	linesPerFrame = 154
	visibleLines  = 144
)

// PPU owns the LCD control/status registers (the "LCD record") and the mode
// state machine. It does not own VRAM or OAM; those live on the bus and are
// reached through the Bus parameter passed to Tick.
type PPU struct {
	LCDC byte
	SCY  byte
	SCX  byte
	LY   byte
	LYC  byte
	BGP  byte
	WY   byte
	WX   byte

	mode       Mode
	lineClock  uint32
	FrameReady bool
}

// New returns a PPU in its post-reset state: display on, everything else off,
// LY=0, mode 2 (OAM search), per spec.md's default LCDC=0x80.
func New() *PPU {
	return &PPU{LCDC: lcdcDefault, mode: OAMSearch}
}

func (p *PPU) Mode() Mode { return p.mode }

// ReadReg handles the LCD block's register window, 0xFF40-0xFF4B.
func (p *PPU) ReadReg(addr uint16) byte {
	switch addr {
	case 0xFF40:
		return p.LCDC
	case 0xFF42:
		return p.SCY
	case 0xFF43:
		return p.SCX
	case 0xFF44:
		return p.LY
	case 0xFF45:
		return p.LYC
	case 0xFF47:
		return p.BGP
	case 0xFF4A:
		return p.WY
	case 0xFF4B:
		return p.WX
	default:
		return 0xFF
	}
}

// WriteReg handles writes into the same window. Writing LCDC with bit 7
// clear turns the display off and resets LY (and the mode clock with it),
// per spec.md §4 and §4.6.
func (p *PPU) WriteReg(addr uint16, value byte) {
	switch addr {
	case 0xFF40:
		p.LCDC = value
		if value&0x80 == 0 {
			p.LY = 0
			p.lineClock = 0
			p.mode = HBlank
		}
	case 0xFF42:
		p.SCY = value
	case 0xFF43:
		p.SCX = value
	case 0xFF44:
		// LY is read-only on real hardware; writes are ignored.
	case 0xFF45:
		p.LYC = value
	case 0xFF47:
		p.BGP = value
	case 0xFF4A:
		p.WY = value
	case 0xFF4B:
		p.WX = value
	}
}

func (p *PPU) lcdEnabled() bool { return p.LCDC&0x80 != 0 }

// Tick credits t_cycles T-cycles to the scan-line clock, in chunks of at
// most 80 per inner step, per spec.md §4.6.
func (p *PPU) Tick(bus Bus, fb *display.Frame, tCycles int) {
	if !p.lcdEnabled() {
		return
	}
	for tCycles > 0 {
		step := tCycles
		if step > oamEndDot {
			step = oamEndDot
		}
		tCycles -= step
		p.lineClock += uint32(step)
		for p.lineClock >= lineTCycles {
			p.lineClock -= lineTCycles
			p.LY = byte((int(p.LY) + 1) % linesPerFrame)
		}
		p.updateMode(bus, fb)
	}
}

func (p *PPU) computeMode() Mode {
	if p.LY >= visibleLines {
		return VBlank
	}
	switch {
	case p.lineClock <= oamEndDot:
		return OAMSearch
	case p.lineClock <= drawingEndDot:
		return Drawing
	default:
		return HBlank
	}
}

func (p *PPU) updateMode(bus Bus, fb *display.Frame) {
	next := p.computeMode()
	if next == p.mode {
		return
	}
	p.mode = next
	switch next {
	case HBlank:
		if p.LY < visibleLines {
			p.renderScanline(bus, fb)
		}
	case VBlank:
		bus.RequestInterrupt(interrupt.VBlank)
		p.FrameReady = true
	}
}
