package decode

import "testing"

func TestDecodeBitB(t *testing.T) {
	in, err := Decode([]byte{0xCB, 0x40, 0x00, 0x00}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Op != OpCBBit || in.Bit != 0 || in.Dst != RegB {
		t.Fatalf("got %+v, want BIT 0,B", in)
	}
	if in.ByteLen != 2 {
		t.Fatalf("ByteLen got %d want 2", in.ByteLen)
	}
	if c := in.Cycles(false); c != 2 {
		t.Fatalf("cycles got %d want 2", c)
	}
}

func TestDecodeJpImm16(t *testing.T) {
	in, err := Decode([]byte{0xC3, 0xAD, 0xDE, 0x00}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Op != OpJpImm16 || in.Imm16 != 0xDEAD {
		t.Fatalf("got %+v, want JP 0xDEAD", in)
	}
	if in.ByteLen != 3 {
		t.Fatalf("ByteLen got %d want 3", in.ByteLen)
	}
	if c := in.Cycles(false); c != 4 {
		t.Fatalf("cycles got %d want 4", c)
	}
}

func TestDecodeHaltNotLdHLHL(t *testing.T) {
	in, err := Decode([]byte{0x76, 0, 0, 0}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Op != OpHalt {
		t.Fatalf("0x76 must decode as HALT, got %+v", in)
	}
}

func TestDecodeIllegalOpcode(t *testing.T) {
	for _, b := range []byte{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD} {
		_, err := Decode([]byte{b, 0, 0, 0}, 0x100)
		if err == nil {
			t.Fatalf("opcode %#02x should be illegal", b)
		}
		var illegal *IllegalOpcode
		if !asIllegal(err, &illegal) {
			t.Fatalf("opcode %#02x: error is not *IllegalOpcode: %v", b, err)
		}
		if illegal.Byte != b || illegal.PC != 0x100 {
			t.Fatalf("opcode %#02x: got %+v", b, illegal)
		}
	}
}

func asIllegal(err error, target **IllegalOpcode) bool {
	if e, ok := err.(*IllegalOpcode); ok {
		*target = e
		return true
	}
	return false
}

func TestDecodeExhaustiveByteLenAndLegalOpcodes(t *testing.T) {
	illegal := map[byte]bool{
		0xD3: true, 0xDB: true, 0xDD: true,
		0xE3: true, 0xE4: true, 0xEB: true, 0xEC: true, 0xED: true,
		0xF4: true, 0xFC: true, 0xFD: true,
	}
	for b := 0; b < 256; b++ {
		op := byte(b)
		buf := []byte{op, 0, 0, 0}
		in, err := Decode(buf, 0)
		if illegal[op] {
			if err == nil {
				t.Fatalf("opcode %#02x expected illegal", op)
			}
			continue
		}
		if err != nil {
			t.Fatalf("opcode %#02x: unexpected error %v", op, err)
		}
		if in.ByteLen < 1 || in.ByteLen > 3 {
			t.Fatalf("opcode %#02x: ByteLen out of range: %d", op, in.ByteLen)
		}
		if c := in.Cycles(false); c < 1 || c > 6 {
			t.Fatalf("opcode %#02x: Cycles(false) out of range: %d", op, c)
		}
		if c := in.Cycles(true); c < in.Cycles(false) {
			t.Fatalf("opcode %#02x: Cycles(true) < Cycles(false)", op)
		}
	}
}

func TestDecodeConditionalCostsEqualWhenNonConditional(t *testing.T) {
	in, err := Decode([]byte{0x00, 0, 0, 0}, 0) // NOP
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Cycles(true) != in.Cycles(false) {
		t.Fatalf("NOP cost must not depend on actionTaken")
	}
}

func TestDecodeCBExhaustive(t *testing.T) {
	for b := 0; b < 256; b++ {
		buf := []byte{0xCB, byte(b), 0, 0}
		in, err := Decode(buf, 0)
		if err != nil {
			t.Fatalf("CB %#02x: unexpected error %v", b, err)
		}
		if in.ByteLen != 2 {
			t.Fatalf("CB %#02x: ByteLen got %d want 2", b, in.ByteLen)
		}
	}
}
