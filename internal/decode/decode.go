package decode

// Decode consumes 1-3 bytes from buf (which must hold at least 4 bytes — the
// CPU always supplies 4 so CB-prefixed reads never need a bounds check) and
// returns the instruction at buf[0] plus, via Instruction.ByteLen, how many
// bytes it consumed. pc is only used to annotate IllegalOpcode errors.
//
// Dispatch follows the classic LR35902 bit-slice grouping: op splits into
// p3 = op[7:6], p2 = op[5:3], p1 = op[2:0]. See the per-block comments below;
// they mirror the structure of spec.md §4.1 and of
// other_examples/ac189e20_thelolagemann-gomeboy__internal-cpu-decode.go.go's
// instr>>6&0x3 / instr>>3&0x7 dispatch, but terminate in a data value instead
// of executing inline.
func Decode(buf []byte, pc uint16) (Instruction, error) {
	op := buf[0]
	p3 := op >> 6 & 0x3
	p2 := op >> 3 & 0x7
	p1 := op & 0x7

	switch p3 {
	case 0:
		return decodeBlock00(op, p1, p2, buf, pc)
	case 1:
		return decodeBlock01(op, p1, p2, pc)
	case 2:
		return Instruction{Op: OpAluR8, Alu: AluOp(p2), Src: Reg8(p1), ByteLen: 1}, nil
	default:
		return decodeBlock11(op, p1, p2, buf, pc)
	}
}

func imm16(buf []byte) uint16 {
	return uint16(buf[1]) | uint16(buf[2])<<8
}

func decodeBlock00(op, p1, p2 byte, buf []byte, pc uint16) (Instruction, error) {
	switch p1 {
	case 0:
		switch {
		case p2 == 0: // NOP
			return Instruction{Op: OpNop, ByteLen: 1}, nil
		case p2 == 1: // LD (a16),SP
			return Instruction{Op: OpLdIndirectImm16SP, Imm16: imm16(buf), ByteLen: 3}, nil
		case p2 == 2: // STOP — consumes and ignores a second byte
			return Instruction{Op: OpStop, ByteLen: 2}, nil
		case p2 == 3: // JR r8
			return Instruction{Op: OpJrImm, Rel: int8(buf[1]), ByteLen: 2}, nil
		default: // JR cc,r8 ; p2 = 4..7
			return Instruction{Op: OpJrCond, Cond: Condition(p2 - 4), Rel: int8(buf[1]), ByteLen: 2}, nil
		}
	case 1:
		q := Reg16(p2 >> 1)
		if p2&1 == 0 { // LD rr,u16
			return Instruction{Op: OpLdR16Imm16, R16: q, Imm16: imm16(buf), ByteLen: 3}, nil
		}
		// ADD HL,rr
		return Instruction{Op: OpAddHLR16, R16: q, ByteLen: 1}, nil
	case 2:
		rr := Reg16Indirect(p2 >> 1)
		if p2&1 == 0 { // LD (rr),A
			return Instruction{Op: OpLdR16IndirectA, R16Ind: rr, ByteLen: 1}, nil
		}
		// LD A,(rr)
		return Instruction{Op: OpLdAR16Indirect, R16Ind: rr, ByteLen: 1}, nil
	case 3:
		q := Reg16(p2 >> 1)
		if p2&1 == 0 {
			return Instruction{Op: OpIncR16, R16: q, ByteLen: 1}, nil
		}
		return Instruction{Op: OpDecR16, R16: q, ByteLen: 1}, nil
	case 4: // INC r
		r := Reg8(p2)
		return Instruction{Op: OpIncR8, Dst: r, ByteLen: 1}, nil
	case 5: // DEC r
		r := Reg8(p2)
		return Instruction{Op: OpDecR8, Dst: r, ByteLen: 1}, nil
	case 6: // LD r,u8
		r := Reg8(p2)
		return Instruction{Op: OpLdR8Imm8, Dst: r, Imm8: buf[1], ByteLen: 2}, nil
	default: // p1 == 7: accumulator/flag group
		return Instruction{Op: OpAccFlag, AccFlag: AccFlagOp(p2), ByteLen: 1}, nil
	}
}

func decodeBlock01(op, p1, p2 byte, pc uint16) (Instruction, error) {
	if p2 == 6 && p1 == 6 {
		// LD (HL),(HL) collides with HALT; HALT wins (earlier match arm, per spec).
		return Instruction{Op: OpHalt, ByteLen: 1}, nil
	}
	return Instruction{Op: OpLdR8R8, Dst: Reg8(p2), Src: Reg8(p1), ByteLen: 1}, nil
}

var illegalBlock11 = map[byte]bool{
	0xD3: true, 0xDB: true, 0xDD: true,
	0xE3: true, 0xE4: true, 0xEB: true, 0xEC: true, 0xED: true,
	0xF4: true, 0xFC: true, 0xFD: true,
}

func decodeBlock11(op, p1, p2 byte, buf []byte, pc uint16) (Instruction, error) {
	if illegalBlock11[op] {
		return Instruction{}, &IllegalOpcode{Byte: op, PC: pc}
	}

	switch p1 {
	case 0:
		switch p2 {
		case 0, 1, 2, 3: // RET cc
			return Instruction{Op: OpRetCond, Cond: Condition(p2), ByteLen: 1}, nil
		case 4: // LDH (a8),A
			return Instruction{Op: OpLdhWriteA, Imm8: buf[1], ByteLen: 2}, nil
		case 5: // ADD SP,r8
			return Instruction{Op: OpAddSPRel, Rel: int8(buf[1]), ByteLen: 2}, nil
		case 6: // LDH A,(a8)
			return Instruction{Op: OpLdhReadA, Imm8: buf[1], ByteLen: 2}, nil
		default: // LD HL,SP+r8
			return Instruction{Op: OpLdHLSPRel, Rel: int8(buf[1]), ByteLen: 2}, nil
		}
	case 1:
		if p2%2 == 0 { // POP rr
			return Instruction{Op: OpPop, R16Stack: Reg16Stack(p2 >> 1), ByteLen: 1}, nil
		}
		switch p2 {
		case 1: // RET
			return Instruction{Op: OpRet, ByteLen: 1}, nil
		case 3: // RETI
			return Instruction{Op: OpReti, ByteLen: 1}, nil
		case 5: // JP HL
			return Instruction{Op: OpJpHL, ByteLen: 1}, nil
		default: // 7: LD SP,HL
			return Instruction{Op: OpLdSPHL, ByteLen: 1}, nil
		}
	case 2:
		switch p2 {
		case 0, 1, 2, 3: // JP cc,a16
			return Instruction{Op: OpJpCond, Cond: Condition(p2), Imm16: imm16(buf), ByteLen: 3}, nil
		case 4: // LD (C),A
			return Instruction{Op: OpLdCWriteA, ByteLen: 1}, nil
		case 5: // LD (a16),A
			return Instruction{Op: OpLdIndirectImm16A, Imm16: imm16(buf), ByteLen: 3}, nil
		case 6: // LD A,(C)
			return Instruction{Op: OpLdCReadA, ByteLen: 1}, nil
		default: // LD A,(a16)
			return Instruction{Op: OpLdAIndirectImm16, Imm16: imm16(buf), ByteLen: 3}, nil
		}
	case 3:
		switch p2 {
		case 0: // JP a16
			return Instruction{Op: OpJpImm16, Imm16: imm16(buf), ByteLen: 3}, nil
		case 1: // CB prefix
			return decodeCB(buf[1])
		case 6: // DI
			return Instruction{Op: OpDi, ByteLen: 1}, nil
		default: // 7: EI
			return Instruction{Op: OpEi, ByteLen: 1}, nil
		}
	case 4: // CALL cc,a16 ; p2 4..7 already filtered out as illegal above
		return Instruction{Op: OpCallCond, Cond: Condition(p2), Imm16: imm16(buf), ByteLen: 3}, nil
	case 5:
		if p2%2 == 0 { // PUSH rr
			return Instruction{Op: OpPush, R16Stack: Reg16Stack(p2 >> 1), ByteLen: 1}, nil
		}
		// p2 == 1: CALL a16 (3,5,7 already filtered as illegal above)
		return Instruction{Op: OpCallImm16, Imm16: imm16(buf), ByteLen: 3}, nil
	case 6: // ALU A,u8
		return Instruction{Op: OpAluImm8, Alu: AluOp(p2), Imm8: buf[1], ByteLen: 2}, nil
	default: // p1 == 7: RST
		return Instruction{Op: OpRst, Vector: p2 << 3, ByteLen: 1}, nil
	}
}

// decodeCB decodes the byte following a 0xCB prefix. The two-byte length
// (prefix + this byte) is folded into the returned instruction's ByteLen.
func decodeCB(cb byte) (Instruction, error) {
	p3 := cb >> 6 & 0x3
	p2 := cb >> 3 & 0x7
	p1 := cb & 0x7
	r := Reg8(p1)

	switch p3 {
	case 0:
		return Instruction{Op: OpCBBitwise, Bitwise: BitwiseOp(p2), Dst: r, ByteLen: 2}, nil
	case 1:
		return Instruction{Op: OpCBBit, Bit: p2, Dst: r, ByteLen: 2}, nil
	case 2:
		return Instruction{Op: OpCBRes, Bit: p2, Dst: r, ByteLen: 2}, nil
	default:
		return Instruction{Op: OpCBSet, Bit: p2, Dst: r, ByteLen: 2}, nil
	}
}
