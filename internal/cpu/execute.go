package cpu

import "github.com/mjansson/gbcore/internal/decode"

// execute runs one decoded instruction and reports whether a conditional
// branch/call/return actually branched, for Instruction.Cycles' actionTaken
// parameter. Non-conditional instructions return false, which Cycles ignores.
func (c *CPU) execute(in decode.Instruction) bool {
	switch in.Op {
	case decode.OpNop:
		// no-op

	case decode.OpStop:
		// STOP consumes and ignores its second byte at decode time; per
		// spec.md §9 this core does not model the low-power path beyond
		// surfacing the terminal flag to the driver.
		c.Stopped = true

	case decode.OpHalt:
		c.Halted = true

	case decode.OpLdR8R8:
		c.setReg8(in.Dst, c.reg8(in.Src))

	case decode.OpLdR8Imm8:
		c.setReg8(in.Dst, in.Imm8)

	case decode.OpLdR16Imm16:
		c.setReg16(in.R16, in.Imm16)

	case decode.OpLdIndirectImm16SP:
		c.bus.Write(in.Imm16, byte(c.SP))
		c.bus.Write(in.Imm16+1, byte(c.SP>>8))

	case decode.OpLdR16IndirectA:
		c.bus.Write(c.indirectAddr(in.R16Ind), c.A)

	case decode.OpLdAR16Indirect:
		c.A = c.bus.Read(c.indirectAddr(in.R16Ind))

	case decode.OpIncR16:
		c.setReg16(in.R16, c.reg16(in.R16)+1)

	case decode.OpDecR16:
		c.setReg16(in.R16, c.reg16(in.R16)-1)

	case decode.OpIncR8:
		v, z, h := inc8(c.reg8(in.Dst))
		c.setReg8(in.Dst, v)
		c.setFlags(z, false, h, c.flag(flagC))

	case decode.OpDecR8:
		v, z, h := dec8(c.reg8(in.Dst))
		c.setReg8(in.Dst, v)
		c.setFlags(z, true, h, c.flag(flagC))

	case decode.OpAddHLR16:
		hl := c.getHL()
		rr := c.reg16(in.R16)
		sum := uint32(hl) + uint32(rr)
		c.setHL(uint16(sum))
		h := (hl&0x0FFF)+(rr&0x0FFF) > 0x0FFF
		c.setFlags(c.flag(flagZ), false, h, sum > 0xFFFF)

	case decode.OpJrImm:
		c.PC = relJump(c.PC, in.Rel)

	case decode.OpJrCond:
		if c.condition(in.Cond) {
			c.PC = relJump(c.PC, in.Rel)
			return true
		}

	case decode.OpAccFlag:
		c.applyAccFlag(in.AccFlag)

	case decode.OpAluR8:
		c.applyAlu(in.Alu, c.reg8(in.Src))

	case decode.OpAluImm8:
		c.applyAlu(in.Alu, in.Imm8)

	case decode.OpJpImm16:
		c.PC = in.Imm16

	case decode.OpJpCond:
		if c.condition(in.Cond) {
			c.PC = in.Imm16
			return true
		}

	case decode.OpJpHL:
		c.PC = c.getHL()

	case decode.OpCallImm16:
		c.SP = c.bus.Push16(c.SP, c.PC)
		c.PC = in.Imm16

	case decode.OpCallCond:
		if c.condition(in.Cond) {
			c.SP = c.bus.Push16(c.SP, c.PC)
			c.PC = in.Imm16
			return true
		}

	case decode.OpRet:
		c.PC, c.SP = c.bus.Pop16(c.SP)

	case decode.OpRetCond:
		if c.condition(in.Cond) {
			c.PC, c.SP = c.bus.Pop16(c.SP)
			return true
		}

	case decode.OpReti:
		c.PC, c.SP = c.bus.Pop16(c.SP)
		c.IME = true

	case decode.OpRst:
		c.SP = c.bus.Push16(c.SP, c.PC)
		c.PC = uint16(in.Vector)

	case decode.OpPush:
		c.SP = c.bus.Push16(c.SP, c.reg16Stack(in.R16Stack))

	case decode.OpPop:
		v, sp := c.bus.Pop16(c.SP)
		c.SP = sp
		c.setReg16Stack(in.R16Stack, v)

	case decode.OpLdhWriteA:
		c.bus.Write(0xFF00+uint16(in.Imm8), c.A)

	case decode.OpLdhReadA:
		c.A = c.bus.Read(0xFF00 + uint16(in.Imm8))

	case decode.OpLdCWriteA:
		c.bus.Write(0xFF00+uint16(c.C), c.A)

	case decode.OpLdCReadA:
		c.A = c.bus.Read(0xFF00 + uint16(c.C))

	case decode.OpLdIndirectImm16A:
		c.bus.Write(in.Imm16, c.A)

	case decode.OpLdAIndirectImm16:
		c.A = c.bus.Read(in.Imm16)

	case decode.OpLdSPHL:
		c.SP = c.getHL()

	case decode.OpLdHLSPRel:
		result, h, cy := addSPRel(c.SP, in.Rel)
		c.setHL(result)
		c.setFlags(false, false, h, cy)

	case decode.OpAddSPRel:
		result, h, cy := addSPRel(c.SP, in.Rel)
		c.SP = result
		c.setFlags(false, false, h, cy)

	case decode.OpDi:
		c.IME = false

	case decode.OpEi:
		// Spec-sanctioned simplification: set IME immediately rather than
		// after the following instruction (spec.md §4.4).
		c.IME = true

	case decode.OpCBBitwise:
		c.setReg8(in.Dst, c.applyBitwise(in.Bitwise, c.reg8(in.Dst)))

	case decode.OpCBBit:
		v := c.reg8(in.Dst)
		bit := v&(1<<in.Bit) != 0
		c.F = c.F&flagC | flagH
		if !bit {
			c.F |= flagZ
		}

	case decode.OpCBRes:
		c.setReg8(in.Dst, c.reg8(in.Dst)&^(1<<in.Bit))

	case decode.OpCBSet:
		c.setReg8(in.Dst, c.reg8(in.Dst)|(1<<in.Bit))
	}
	return false
}

// indirectAddr returns the (rr) address for the A<->(rr) load family,
// applying HL's post-increment/post-decrement per spec.md §3.
func (c *CPU) indirectAddr(r decode.Reg16Indirect) uint16 {
	switch r {
	case decode.IndBC:
		return c.getBC()
	case decode.IndDE:
		return c.getDE()
	case decode.IndHLI:
		addr := c.getHL()
		c.setHL(addr + 1)
		return addr
	default: // IndHLD
		addr := c.getHL()
		c.setHL(addr - 1)
		return addr
	}
}

// relJump adds a signed 8-bit offset to pc, which has already been advanced
// past the instruction's bytes, per spec.md §4.2 and §9.
func relJump(pc uint16, rel int8) uint16 {
	return uint16(int32(pc) + int32(rel))
}

// addSPRel implements the shared arithmetic behind ADD SP,r8 and
// LD HL,SP+r8: the offset is sign-extended to 16 bits and added to SP, with
// H/C computed from the low byte of SP plus the offset as an unsigned byte
// (spec.md §4.2).
func addSPRel(sp uint16, rel int8) (result uint16, h, cy bool) {
	offset := uint16(int16(rel))
	result = sp + offset
	lowSP := byte(sp)
	lowOffset := byte(rel)
	h = (lowSP&0xF)+(lowOffset&0xF) > 0xF
	cy = uint16(lowSP)+uint16(lowOffset) > 0xFF
	return result, h, cy
}
