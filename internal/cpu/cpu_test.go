package cpu

import (
	"testing"

	"github.com/mjansson/gbcore/internal/decode"
	"github.com/mjansson/gbcore/internal/interrupt"
)

// testBus is a flat 64 KiB address space plus an interrupt controller,
// enough to drive the CPU without the real bus package's region decoding.
type testBus struct {
	mem [0x10000]byte
	ic  interrupt.Controller
}

func newTestBus() *testBus { return &testBus{} }

func (b *testBus) Read(addr uint16) byte     { return b.mem[addr] }
func (b *testBus) Write(addr uint16, v byte) { b.mem[addr] = v }
func (b *testBus) Fetch4(pc uint16) [4]byte {
	return [4]byte{b.mem[pc], b.mem[pc+1], b.mem[pc+2], b.mem[pc+3]}
}
func (b *testBus) Push16(sp, word uint16) uint16 {
	sp--
	b.mem[sp] = byte(word >> 8)
	sp--
	b.mem[sp] = byte(word)
	return sp
}
func (b *testBus) Pop16(sp uint16) (uint16, uint16) {
	lo := b.mem[sp]
	sp++
	hi := b.mem[sp]
	sp++
	return uint16(hi)<<8 | uint16(lo), sp
}
func (b *testBus) Interrupts() *interrupt.Controller { return &b.ic }

func TestScenarioLoadImmediateThenStoreToMemory(t *testing.T) {
	b := newTestBus()
	copy(b.mem[0x0100:], []byte{0x3E, 0x42, 0xEA, 0x00, 0xC0, 0x00})
	c := New(b)
	c.SetPC(0x0100)

	c.Tick()
	if c.PC != 0x0102 || c.A != 0x42 {
		t.Fatalf("after LD A,0x42: PC=%#04x A=%#02x, want PC=0x0102 A=0x42", c.PC, c.A)
	}

	c.Tick()
	if c.PC != 0x0105 {
		t.Fatalf("after LD (0xC000),A: PC=%#04x, want 0x0105", c.PC)
	}
	if b.mem[0xC000] != 0x42 || c.A != 0x42 {
		t.Fatalf("mem[0xC000]=%#02x A=%#02x, want both 0x42", b.mem[0xC000], c.A)
	}
}

func TestScenarioAddAWithHalfCarryNoFullCarry(t *testing.T) {
	b := newTestBus()
	b.mem[0x0100] = 0x87 // ADD A,A
	c := New(b)
	c.SetPC(0x0100)
	c.A = 0x3A
	c.F = 0

	c.Tick()

	if c.A != 0x74 {
		t.Fatalf("A = %#02x, want 0x74", c.A)
	}
	// 0x3A&0xF + 0x3A&0xF = 0xA + 0xA = 0x14 > 0xF: half-carry sets.
	if c.flag(flagZ) || c.flag(flagN) || !c.flag(flagH) || c.flag(flagC) {
		t.Fatalf("F = %#02x, want Z=0 N=0 H=1 C=0", c.F)
	}
}

func TestScenarioCallPushesReturnAddressAndJumps(t *testing.T) {
	b := newTestBus()
	copy(b.mem[0x0100:], []byte{0xCD, 0x34, 0x12})
	c := New(b)
	c.SetPC(0x0100)
	c.SP = 0xFFFE

	c.Tick()

	if c.SP != 0xFFFC {
		t.Fatalf("SP = %#04x, want 0xFFFC", c.SP)
	}
	if b.mem[0xFFFD] != 0x01 || b.mem[0xFFFC] != 0x03 {
		t.Fatalf("pushed return address bytes = %#02x,%#02x, want 0x01,0x03", b.mem[0xFFFD], b.mem[0xFFFC])
	}
	if c.PC != 0x1234 {
		t.Fatalf("PC = %#04x, want 0x1234", c.PC)
	}
}

func TestAddAFlagLawZeroPlusX(t *testing.T) {
	for _, x := range []byte{0x00, 0x01, 0x0F, 0x10, 0xFF} {
		c := New(newTestBus())
		c.A = 0
		c.F = 0
		c.applyAlu(decode.AluAdd, x)
		wantZ := x == 0
		if c.flag(flagZ) != wantZ {
			t.Fatalf("x=%#02x: Z=%v, want %v", x, c.flag(flagZ), wantZ)
		}
		if c.flag(flagC) {
			t.Fatalf("x=%#02x: C set, want clear", x)
		}
		wantH := x&0xF > 0xF
		if c.flag(flagH) != wantH {
			t.Fatalf("x=%#02x: H=%v, want %v", x, c.flag(flagH), wantH)
		}
	}
}

func TestAddAFlagLawOverflow(t *testing.T) {
	c := New(newTestBus())
	c.A = 0xFF
	c.F = 0
	c.applyAlu(decode.AluAdd, 1)

	if c.A != 0 || !c.flag(flagZ) || !c.flag(flagC) || !c.flag(flagH) || c.flag(flagN) {
		t.Fatalf("A=%#02x F=%#02x, want A=0 Z=1 C=1 H=1 N=0", c.A, c.F)
	}
}

func TestHLIIncrementsAndHLDDecrements(t *testing.T) {
	b := newTestBus()
	copy(b.mem[0x0100:], []byte{0x2A, 0x3A}) // LD A,(HLI); LD A,(HLD)
	c := New(b)
	c.SetPC(0x0100)
	c.setHL(0xC000)

	c.Tick()
	if c.getHL() != 0xC001 {
		t.Fatalf("HL = %#04x after HLI, want 0xC001", c.getHL())
	}

	c.Tick()
	if c.getHL() != 0xC000 {
		t.Fatalf("HL = %#04x after HLD, want 0xC000", c.getHL())
	}
}

func TestInterruptPriorityPicksLowestBit(t *testing.T) {
	b := newTestBus()
	b.ic.SetEnabled(0x03)
	b.ic.SetRequested(0x03) // both VBlank and LCD-STAT pending
	c := New(b)
	c.IME = true
	c.SP = 0xFFFE
	c.PC = 0x0150

	cycles := c.Tick()

	if cycles != interruptDispatchCycles {
		t.Fatalf("cycles = %d, want %d", cycles, interruptDispatchCycles)
	}
	if c.PC != interrupt.VBlank.Vector() {
		t.Fatalf("PC = %#04x, want VBlank vector %#04x", c.PC, interrupt.VBlank.Vector())
	}
	if b.ic.Requested()&0x01 != 0 {
		t.Fatalf("VBlank bit still set in IF")
	}
	if b.ic.Requested()&0x02 == 0 {
		t.Fatalf("LCD-STAT bit was cleared, want it left pending")
	}
	if c.IME {
		t.Fatalf("IME still set after dispatch")
	}
}

func TestHaltedCPUWakesWithoutDispatchWhenIMEFalse(t *testing.T) {
	b := newTestBus()
	b.ic.SetEnabled(0x01)
	b.ic.SetRequested(0x01)
	c := New(b)
	c.Halted = true
	c.IME = false
	c.PC = 0x0200

	c.Tick()

	if c.Halted {
		t.Fatalf("CPU still halted after a pending enabled interrupt")
	}
	if c.PC != 0x0201 {
		t.Fatalf("PC = %#04x, want 0x0201 (woke and executed NOP, no interrupt dispatch)", c.PC)
	}
}

func TestPopAFMasksLowNibbleOfF(t *testing.T) {
	b := newTestBus()
	b.mem[0x0100] = 0xF1 // POP AF
	c := New(b)
	c.SetPC(0x0100)
	c.SP = b.Push16(0xFFFE, 0x1234)

	c.Tick()

	if c.F != 0x30 {
		t.Fatalf("F = %#02x, want 0x30 (low nibble of 0x34 masked off)", c.F)
	}
	if c.A != 0x12 {
		t.Fatalf("A = %#02x, want 0x12", c.A)
	}
}
