package decode

import "fmt"

func (r Reg8) String() string {
	switch r {
	case RegB:
		return "B"
	case RegC:
		return "C"
	case RegD:
		return "D"
	case RegE:
		return "E"
	case RegH:
		return "H"
	case RegL:
		return "L"
	case RegHLIndirect:
		return "(HL)"
	default:
		return "A"
	}
}

func (r Reg16) String() string {
	return [...]string{"BC", "DE", "HL", "SP"}[r]
}

func (r Reg16Stack) String() string {
	return [...]string{"BC", "DE", "HL", "AF"}[r]
}

func (r Reg16Indirect) String() string {
	return [...]string{"(BC)", "(DE)", "(HL+)", "(HL-)"}[r]
}

func (c Condition) String() string {
	return [...]string{"NZ", "Z", "NC", "C"}[c]
}

func (a AluOp) String() string {
	return [...]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}[a]
}

func (b BitwiseOp) String() string {
	return [...]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}[b]
}

func (a AccFlagOp) String() string {
	return [...]string{"RLCA", "RRCA", "RLA", "RRA", "DAA", "CPL", "SCF", "CCF"}[a]
}

// String renders a Game-Boy-style disassembly line, used by cmd/gbcore's
// trace output and interactive debugger (grounded in cmd/cpurunner/main.go's
// trace print format from the teacher repo).
func (in Instruction) String() string {
	switch in.Op {
	case OpNop:
		return "NOP"
	case OpStop:
		return "STOP"
	case OpHalt:
		return "HALT"
	case OpLdR8R8:
		return fmt.Sprintf("LD %s,%s", in.Dst, in.Src)
	case OpLdR8Imm8:
		return fmt.Sprintf("LD %s,%#02x", in.Dst, in.Imm8)
	case OpLdR16Imm16:
		return fmt.Sprintf("LD %s,%#04x", in.R16, in.Imm16)
	case OpLdIndirectImm16SP:
		return fmt.Sprintf("LD (%#04x),SP", in.Imm16)
	case OpLdR16IndirectA:
		return fmt.Sprintf("LD %s,A", in.R16Ind)
	case OpLdAR16Indirect:
		return fmt.Sprintf("LD A,%s", in.R16Ind)
	case OpIncR16:
		return fmt.Sprintf("INC %s", in.R16)
	case OpDecR16:
		return fmt.Sprintf("DEC %s", in.R16)
	case OpIncR8:
		return fmt.Sprintf("INC %s", in.Dst)
	case OpDecR8:
		return fmt.Sprintf("DEC %s", in.Dst)
	case OpAddHLR16:
		return fmt.Sprintf("ADD HL,%s", in.R16)
	case OpJrImm:
		return fmt.Sprintf("JR %d", in.Rel)
	case OpJrCond:
		return fmt.Sprintf("JR %s,%d", in.Cond, in.Rel)
	case OpAccFlag:
		return in.AccFlag.String()
	case OpAluR8:
		return fmt.Sprintf("%s A,%s", in.Alu, in.Src)
	case OpAluImm8:
		return fmt.Sprintf("%s A,%#02x", in.Alu, in.Imm8)
	case OpJpImm16:
		return fmt.Sprintf("JP %#04x", in.Imm16)
	case OpJpCond:
		return fmt.Sprintf("JP %s,%#04x", in.Cond, in.Imm16)
	case OpJpHL:
		return "JP HL"
	case OpCallImm16:
		return fmt.Sprintf("CALL %#04x", in.Imm16)
	case OpCallCond:
		return fmt.Sprintf("CALL %s,%#04x", in.Cond, in.Imm16)
	case OpRet:
		return "RET"
	case OpRetCond:
		return fmt.Sprintf("RET %s", in.Cond)
	case OpReti:
		return "RETI"
	case OpRst:
		return fmt.Sprintf("RST %#02x", in.Vector)
	case OpPush:
		return fmt.Sprintf("PUSH %s", in.R16Stack)
	case OpPop:
		return fmt.Sprintf("POP %s", in.R16Stack)
	case OpLdhWriteA:
		return fmt.Sprintf("LDH (%#02x),A", in.Imm8)
	case OpLdhReadA:
		return fmt.Sprintf("LDH A,(%#02x)", in.Imm8)
	case OpLdCWriteA:
		return "LD (C),A"
	case OpLdCReadA:
		return "LD A,(C)"
	case OpLdIndirectImm16A:
		return fmt.Sprintf("LD (%#04x),A", in.Imm16)
	case OpLdAIndirectImm16:
		return fmt.Sprintf("LD A,(%#04x)", in.Imm16)
	case OpLdSPHL:
		return "LD SP,HL"
	case OpLdHLSPRel:
		return fmt.Sprintf("LD HL,SP%+d", in.Rel)
	case OpAddSPRel:
		return fmt.Sprintf("ADD SP,%d", in.Rel)
	case OpDi:
		return "DI"
	case OpEi:
		return "EI"
	case OpCBBitwise:
		return fmt.Sprintf("%s %s", in.Bitwise, in.Dst)
	case OpCBBit:
		return fmt.Sprintf("BIT %d,%s", in.Bit, in.Dst)
	case OpCBRes:
		return fmt.Sprintf("RES %d,%s", in.Bit, in.Dst)
	case OpCBSet:
		return fmt.Sprintf("SET %d,%s", in.Bit, in.Dst)
	default:
		return "???"
	}
}
