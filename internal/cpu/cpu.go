// Package cpu implements the Sharp LR35902-compatible interpreter: registers,
// flags, the fetch-decode-execute loop, and interrupt dispatch. Execute
// switches on decode.Instruction's Op discriminant instead of the teacher's
// 256-arm opcode switch, per spec.md §9's redesign note.
//
// Grounded on the register layout, pure ALU-with-flags helper style, and
// push/pop stack handling of FabianRolfMatthiasNoll-GameBoyEmulator's
// internal/cpu/cpu.go, restructured around internal/decode's instruction
// model and internal/interrupt's controller.
package cpu

import (
	"github.com/mjansson/gbcore/internal/decode"
	"github.com/mjansson/gbcore/internal/interrupt"
)

// Bus is the slice of bus behavior the CPU needs to run.
type Bus interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
	Fetch4(pc uint16) [4]byte
	Push16(sp uint16, word uint16) uint16
	Pop16(sp uint16) (uint16, uint16)
	Interrupts() *interrupt.Controller
}

const interruptDispatchCycles uint32 = 5

// CPU holds the eight 8-bit general registers (paired as BC/DE/HL plus A/F),
// SP/PC, and the two runtime flags spec.md §3 calls out: Halted and IME.
type CPU struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte

	SP uint16
	PC uint16

	IME     bool
	Halted  bool
	Stopped bool

	bus Bus
}

// New returns a CPU wired to bus, in the spec's post-reset state: all
// registers zero, SP=0xFFFE, PC=0x0100, halted=false, ime=false.
func New(b Bus) *CPU {
	return &CPU{bus: b, SP: 0xFFFE, PC: 0x0100}
}

// SetPC overrides the program counter, for tests and boot stubs that want to
// start execution somewhere other than 0x0100.
func (c *CPU) SetPC(pc uint16) { c.PC = pc }

// Tick executes the interrupt-dispatch/halt/fetch-decode-execute contract of
// spec.md §4.2 and returns the consumed M-cycle count.
func (c *CPU) Tick() uint32 {
	if cycles, dispatched := c.serviceInterrupt(); dispatched {
		return cycles
	}
	if c.Halted {
		return 1
	}

	buf := c.bus.Fetch4(c.PC)
	inst, err := decode.Decode(buf[:], c.PC)
	if err != nil {
		panic(err)
	}
	c.PC += uint16(inst.ByteLen)

	actionTaken := c.execute(inst)
	return inst.Cycles(actionTaken)
}

// serviceInterrupt implements spec.md §4.4. A halted CPU with no interrupt
// pending stays halted; one that is pending but IME is false wakes without
// dispatching (the halt-bug edge case itself is explicitly out of scope,
// per spec.md §1 and §9).
func (c *CPU) serviceInterrupt() (uint32, bool) {
	ic := c.bus.Interrupts()
	pending := ic.Pending()
	if pending == 0 {
		return 0, false
	}
	if c.Halted {
		c.Halted = false
	}
	if !c.IME {
		return 0, false
	}

	c.IME = false
	line, ok := ic.Next()
	if !ok {
		return 0, false
	}
	ic.Clear(line)
	c.SP = c.bus.Push16(c.SP, c.PC)
	c.PC = line.Vector()
	return interruptDispatchCycles, true
}
