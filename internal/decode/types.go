// Package decode implements the Sharp LR35902 instruction set as a closed
// algebraic type plus a pure decoder, and the per-opcode M-cycle cost table.
//
// This replaces the teacher's 256-arm opcode switch (internal/cpu/cpu.go in
// the source this package is grounded on) with the bit-sliced dispatch the
// spec's redesign notes call for: every opcode byte splits into p3 = bits
// 7:6, p2 = bits 5:3, p1 = bits 2:0, and decoding proceeds by examining those
// fields rather than matching 256 literal byte values.
package decode

// Reg8 selects one of the eight 3-bit register-field encodings used
// throughout the opcode map. HLIndirect stands in for "memory at HL" in
// slot 6 — callers dereference through the bus rather than a register file.
type Reg8 uint8

const (
	RegB Reg8 = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegHLIndirect
	RegA
)

// Reg16 selects one of the four register pairs used by 16-bit loads and
// arithmetic (ADD HL,rr; INC/DEC rr; LD rr,u16).
type Reg16 uint8

const (
	Reg16BC Reg16 = iota
	Reg16DE
	Reg16HL
	Reg16SP
)

// Reg16Stack selects one of the four pairs used by PUSH/POP, where the
// fourth slot is AF instead of SP.
type Reg16Stack uint8

const (
	StackBC Reg16Stack = iota
	StackDE
	StackHL
	StackAF
)

// Reg16Indirect selects the addressing mode used by the A<->(rr) load
// family. HLI/HLD carry their own post-increment/post-decrement semantics.
type Reg16Indirect uint8

const (
	IndBC Reg16Indirect = iota
	IndDE
	IndHLI
	IndHLD
)

// Condition selects one of the four branch conditions.
type Condition uint8

const (
	CondNZ Condition = iota
	CondZ
	CondNC
	CondC
)

// AluOp names the eight accumulator operations of opcode block 10 and their
// u8-immediate counterparts in block 11.
type AluOp uint8

const (
	AluAdd AluOp = iota
	AluAdc
	AluSub
	AluSbc
	AluAnd
	AluXor
	AluOr
	AluCp
)

// BitwiseOp names the eight CB-prefixed rotate/shift/swap operations.
type BitwiseOp uint8

const (
	BitRlc BitwiseOp = iota
	BitRrc
	BitRl
	BitRr
	BitSla
	BitSra
	BitSwap
	BitSrl
)

// AccFlagOp names the eight single-byte accumulator/flag instructions that
// share the bit-7 group of opcode block 00 (0x07,0x0F,0x17,0x1F,0x27,0x2F,
// 0x37,0x3F).
type AccFlagOp uint8

const (
	AccRlca AccFlagOp = iota
	AccRrca
	AccRla
	AccRra
	AccDaa
	AccCpl
	AccScf
	AccCcf
)

// Op is the instruction's shape — which fields of Instruction are live is
// determined entirely by Op, giving Go's nearest equivalent of a closed sum
// type: one struct, one discriminant, the rest is convention enforced by
// this package alone.
type Op uint8

const (
	OpNop Op = iota
	OpStop
	OpHalt
	OpLdR8R8
	OpLdR8Imm8
	OpLdR16Imm16
	OpLdIndirectImm16SP // LD (a16),SP
	OpLdR16IndirectA    // LD (rr),A — store, rr from Reg16Indirect
	OpLdAR16Indirect    // LD A,(rr) — load
	OpIncR16
	OpDecR16
	OpIncR8
	OpDecR8
	OpAddHLR16
	OpJrImm
	OpJrCond
	OpAccFlag
	OpAluR8
	OpAluImm8
	OpJpImm16
	OpJpCond
	OpJpHL
	OpCallImm16
	OpCallCond
	OpRet
	OpRetCond
	OpReti
	OpRst
	OpPush
	OpPop
	OpLdhWriteA        // LDH (a8),A
	OpLdhReadA         // LDH A,(a8)
	OpLdCWriteA        // LD (C),A
	OpLdCReadA         // LD A,(C)
	OpLdIndirectImm16A // LD (a16),A
	OpLdAIndirectImm16 // LD A,(a16)
	OpLdSPHL
	OpLdHLSPRel
	OpAddSPRel
	OpDi
	OpEi
	OpCBBitwise
	OpCBBit
	OpCBRes
	OpCBSet
)

// Instruction is the decoded form of one opcode. Exactly one Op's worth of
// the fields below is meaningful for any given value; which ones is fixed by
// Op and documented per-field.
type Instruction struct {
	Op Op

	Dst, Src Reg8 // OpLdR8R8 (dst,src); OpIncR8/OpDecR8/OpAluR8 (Dst or Src as the single operand)
	R16      Reg16
	R16Stack Reg16Stack
	R16Ind   Reg16Indirect
	Cond     Condition
	Alu      AluOp
	Bitwise  BitwiseOp
	AccFlag  AccFlagOp
	Imm8     byte
	Imm16    uint16
	Rel      int8
	Bit      uint8 // 0..7, for OpCBBit/OpCBRes/OpCBSet
	Vector   byte  // RST target, one of 0x00,0x08,...,0x38

	ByteLen byte // 1..3, total bytes including the opcode (and CB prefix byte)
}
