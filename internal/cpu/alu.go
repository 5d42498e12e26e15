package cpu

import "github.com/mjansson/gbcore/internal/decode"

// Each ALU helper is a pure function of its operands (plus carry-in where the
// spec calls for one) returning the result and the four flag bits, matching
// the flag table in spec.md §4.2. applyAlu dispatches by decode.AluOp and
// both mutates A and sets F, except for CP, where it sets F only.

func add8(a, x byte) (res byte, z, n, h, cy bool) {
	r := uint16(a) + uint16(x)
	res = byte(r)
	return res, res == 0, false, (a&0xF)+(x&0xF) > 0xF, r > 0xFF
}

func adc8(a, x byte, carryIn bool) (res byte, z, n, h, cy bool) {
	ci := byte(0)
	if carryIn {
		ci = 1
	}
	r := uint16(a) + uint16(x) + uint16(ci)
	res = byte(r)
	return res, res == 0, false, (a&0xF)+(x&0xF)+ci > 0xF, r > 0xFF
}

func sub8(a, x byte) (res byte, z, n, h, cy bool) {
	res = a - x
	return res, res == 0, true, (a & 0xF) < (x & 0xF), a < x
}

func sbc8(a, x byte, carryIn bool) (res byte, z, n, h, cy bool) {
	ci := byte(0)
	if carryIn {
		ci = 1
	}
	res = a - x - ci
	h = int(a&0xF)-int(x&0xF)-int(ci) < 0
	cy = int(a)-int(x)-int(ci) < 0
	return res, res == 0, true, h, cy
}

func and8(a, x byte) (res byte, z, n, h, cy bool) {
	res = a & x
	return res, res == 0, false, true, false
}

func xor8(a, x byte) (res byte, z, n, h, cy bool) {
	res = a ^ x
	return res, res == 0, false, false, false
}

func or8(a, x byte) (res byte, z, n, h, cy bool) {
	res = a | x
	return res, res == 0, false, false, false
}

// applyAlu executes one AluOp against A and op, storing the result into A
// (except for Cp, which only sets flags) and updating F.
func (c *CPU) applyAlu(op decode.AluOp, operand byte) {
	carryIn := c.flag(flagC)
	var res byte
	var z, n, h, cy bool
	switch op {
	case decode.AluAdd:
		res, z, n, h, cy = add8(c.A, operand)
	case decode.AluAdc:
		res, z, n, h, cy = adc8(c.A, operand, carryIn)
	case decode.AluSub:
		res, z, n, h, cy = sub8(c.A, operand)
	case decode.AluSbc:
		res, z, n, h, cy = sbc8(c.A, operand, carryIn)
	case decode.AluAnd:
		res, z, n, h, cy = and8(c.A, operand)
	case decode.AluXor:
		res, z, n, h, cy = xor8(c.A, operand)
	case decode.AluOr:
		res, z, n, h, cy = or8(c.A, operand)
	case decode.AluCp:
		_, z, n, h, cy = sub8(c.A, operand)
		c.setFlags(z, n, h, cy)
		return
	}
	c.A = res
	c.setFlags(z, n, h, cy)
}

// inc8/dec8 compute the target-register half-carry rule from spec.md §9's
// open-question resolution: based on the operand's own low nibble, not A's.
func inc8(v byte) (res byte, z, h bool) {
	res = v + 1
	return res, res == 0, v&0xF+1 > 0xF
}

func dec8(v byte) (res byte, z, h bool) {
	res = v - 1
	return res, res == 0, v&0xF == 0
}

func (c *CPU) applyBitwise(op decode.BitwiseOp, v byte) byte {
	carryIn := byte(0)
	if c.flag(flagC) {
		carryIn = 1
	}
	var res byte
	var cy bool
	switch op {
	case decode.BitRlc:
		cy = v&0x80 != 0
		res = v<<1 | v>>7
	case decode.BitRrc:
		cy = v&0x01 != 0
		res = v>>1 | v<<7
	case decode.BitRl:
		cy = v&0x80 != 0
		res = v<<1 | carryIn
	case decode.BitRr:
		cy = v&0x01 != 0
		res = v>>1 | carryIn<<7
	case decode.BitSla:
		cy = v&0x80 != 0
		res = v << 1
	case decode.BitSra:
		cy = v&0x01 != 0
		res = v&0x80 | v>>1
	case decode.BitSwap:
		res = v<<4 | v>>4
		c.setFlags(res == 0, false, false, false)
		return res
	case decode.BitSrl:
		cy = v&0x01 != 0
		res = v >> 1
	}
	c.setFlags(res == 0, false, false, cy)
	return res
}

// applyAccFlag implements the eight single-byte accumulator/flag ops, using
// the real-hardware rule (not the generic rotate path) for the four rotates:
// the A-suffixed rotates always clear Z, per spec.md §9's open question.
func (c *CPU) applyAccFlag(op decode.AccFlagOp) {
	switch op {
	case decode.AccRlca:
		cy := c.A&0x80 != 0
		c.A = c.A<<1 | c.A>>7
		c.setFlags(false, false, false, cy)
	case decode.AccRrca:
		cy := c.A&0x01 != 0
		c.A = c.A>>1 | c.A<<7
		c.setFlags(false, false, false, cy)
	case decode.AccRla:
		carryIn := byte(0)
		if c.flag(flagC) {
			carryIn = 1
		}
		cy := c.A&0x80 != 0
		c.A = c.A<<1 | carryIn
		c.setFlags(false, false, false, cy)
	case decode.AccRra:
		carryIn := byte(0)
		if c.flag(flagC) {
			carryIn = 1
		}
		cy := c.A&0x01 != 0
		c.A = c.A>>1 | carryIn<<7
		c.setFlags(false, false, false, cy)
	case decode.AccDaa:
		c.daa()
	case decode.AccCpl:
		c.A = ^c.A
		c.F = c.F&(flagZ|flagC) | flagN | flagH
	case decode.AccScf:
		c.F = c.F&flagZ | flagC
	case decode.AccCcf:
		newC := !c.flag(flagC)
		c.F = c.F & flagZ
		if newC {
			c.F |= flagC
		}
	}
}

// daa implements the BCD adjustment table from spec.md §4.2, driven by the
// flags left over from the preceding add/subtract rather than derived from A
// alone (spec.md §9's redesign note).
func (c *CPU) daa() {
	adjust := byte(0)
	cy := c.flag(flagC)
	if !c.flag(flagN) {
		if c.flag(flagH) || c.A&0xF > 0x9 {
			adjust |= 0x06
		}
		if cy || c.A > 0x99 {
			adjust |= 0x60
			cy = true
		}
		c.A += adjust
	} else {
		if c.flag(flagH) {
			adjust |= 0x06
		}
		if cy {
			adjust |= 0x60
		}
		c.A -= adjust
	}
	c.setFlags(c.A == 0, c.flag(flagN), false, cy)
}
