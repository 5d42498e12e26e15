// Package interrupt models the DMG's interrupt enable/request bitfields and
// dispatch priority, shared by the bus (memory-mapped IE/IF) and the CPU
// (which polls it once per tick).
package interrupt

// Line identifies one of the five interrupt sources, in dispatch-priority
// order (lowest value wins when several are pending simultaneously).
type Line byte

const (
	VBlank Line = iota
	LCDStat
	Timer
	Serial
	Joypad
)

// Vector returns the fixed dispatch address for a line.
func (l Line) Vector() uint16 { return 0x40 + uint16(l)*8 }

// validMask covers the five lines the DMG actually implements; the upper
// three bits of IE/IF are unused but read back as written.
const validMask byte = 0x1F

// Controller holds the IE (enabled) and IF (requested) bitfields. It has no
// notion of memory addresses; the bus maps 0xFFFF/0xFF0F onto it.
type Controller struct {
	enabled   byte
	requested byte
}

// Enabled returns the raw IE byte (bits 5-7 are whatever was last written).
func (c *Controller) Enabled() byte { return c.enabled }

// SetEnabled writes the full IE byte.
func (c *Controller) SetEnabled(v byte) { c.enabled = v }

// Requested returns the raw IF byte (bits 5-7 are whatever was last written).
func (c *Controller) Requested() byte { return c.requested }

// SetRequested writes IF; only bits 0..4 are meaningful on real hardware, but
// the bus is responsible for masking per spec — the controller stores the
// full byte it's given so reads echo it back.
func (c *Controller) SetRequested(v byte) { c.requested = v }

// Request raises a line's IF bit. Called by the PPU (VBlank) and,
// in a fuller system, the timer/serial/joypad.
func (c *Controller) Request(l Line) { c.requested |= 1 << uint(l) }

// Clear lowers a line's IF bit, used once a dispatch has been accepted.
func (c *Controller) Clear(l Line) { c.requested &^= 1 << uint(l) }

// Pending returns the enabled-and-requested bits, masked to the five real
// lines — zero means nothing to dispatch.
func (c *Controller) Pending() byte {
	return c.enabled & c.requested & validMask
}

// Next returns the highest-priority pending line and true, or false if
// nothing is pending.
func (c *Controller) Next() (Line, bool) {
	p := c.Pending()
	if p == 0 {
		return 0, false
	}
	for bit := Line(0); bit < 5; bit++ {
		if p&(1<<uint(bit)) != 0 {
			return bit, true
		}
	}
	return 0, false
}
