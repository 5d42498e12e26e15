package bus

import "testing"

func TestROMReadsBackRawBytes(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x0150] = 0x42
	b := New(rom)

	if got := b.Read(0x0150); got != 0x42 {
		t.Fatalf("Read(0x0150) = %#02x, want 0x42", got)
	}
}

func TestROMWritesAreIgnored(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0] = 0x11
	b := New(rom)

	b.Write(0x0000, 0x99)

	if got := b.Read(0x0000); got != 0x11 {
		t.Fatalf("ROM byte changed after write: got %#02x, want 0x11", got)
	}
}

func TestEchoRAMAliasesWRAM(t *testing.T) {
	b := New(make([]byte, 0x8000))

	b.Write(0xC010, 0x7A)
	if got := b.Read(0xE010); got != 0x7A {
		t.Fatalf("echo read = %#02x, want 0x7A", got)
	}

	b.Write(0xE020, 0x55)
	if got := b.Read(0xC020); got != 0x55 {
		t.Fatalf("wram read after echo write = %#02x, want 0x55", got)
	}
}

func TestProhibitedRegionWritesIgnoredReadsFF(t *testing.T) {
	b := New(make([]byte, 0x8000))
	b.Write(0xFEA5, 0x12)
	if got := b.Read(0xFEA5); got != 0xFF {
		t.Fatalf("prohibited read = %#02x, want 0xFF", got)
	}
}

func TestIEAndIFDelegateToInterruptController(t *testing.T) {
	b := New(make([]byte, 0x8000))

	b.Write(0xFFFF, 0x1F)
	if got := b.Read(0xFFFF); got != 0x1F {
		t.Fatalf("IE read = %#02x, want 0x1F", got)
	}

	b.Write(0xFF0F, 0xFF)
	if got := b.Read(0xFF0F); got != 0xFF {
		t.Fatalf("IF read = %#02x, want 0xFF (top bits set and 0x1F low)", got)
	}
	if b.Interrupts().Requested() != 0x1F {
		t.Fatalf("IF should only retain bits 0-4, got %#02x", b.Interrupts().Requested())
	}
}

func TestSerialLineBufferFlushesOnNewline(t *testing.T) {
	b := New(make([]byte, 0x8000))
	var got string
	b.SetSerialSink(func(line string) { got = line })

	for _, c := range []byte("ok\n") {
		b.Write(serialDataAddr, c)
	}

	if got != "ok\n" {
		t.Fatalf("serial sink got %q, want %q", got, "ok\n")
	}
}

func TestStackLawRoundTrips(t *testing.T) {
	b := New(make([]byte, 0x8000))
	sp := uint16(0xFFFE)

	sp = b.Push16(sp, 0x1234)
	var got uint16
	got, sp = b.Pop16(sp)

	if got != 0x1234 {
		t.Fatalf("popped %#04x, want 0x1234", got)
	}
	if sp != 0xFFFE {
		t.Fatalf("sp = %#04x after round trip, want 0xFFFE", sp)
	}
}

func TestPush16ByteOrder(t *testing.T) {
	b := New(make([]byte, 0x8000))
	sp := b.Push16(0xFFFE, 0x0134)

	if sp != 0xFFFC {
		t.Fatalf("sp = %#04x, want 0xFFFC", sp)
	}
	if got := b.Read(0xFFFD); got != 0x01 {
		t.Fatalf("high byte at sp-1 = %#02x, want 0x01", got)
	}
	if got := b.Read(0xFFFC); got != 0x34 {
		t.Fatalf("low byte at sp-2 = %#02x, want 0x34", got)
	}
}

func TestFetch4ReadsFourBytes(t *testing.T) {
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], []byte{0xC3, 0xAD, 0xDE, 0x00})
	b := New(rom)

	got := b.Fetch4(0x0100)
	if got != [4]byte{0xC3, 0xAD, 0xDE, 0x00} {
		t.Fatalf("Fetch4 = %v, want [0xC3 0xAD 0xDE 0x00]", got)
	}
}

func TestSaveLoadStateRoundTrips(t *testing.T) {
	b := New(make([]byte, 0x8000))
	b.Write(0xC000, 0xAB)
	b.Write(0xFF47, 0xE4)
	b.Write(0xFFFF, 0x1F)

	snap := b.SaveState()

	b2 := New(make([]byte, 0x8000))
	b2.LoadState(snap)

	if got := b2.Read(0xC000); got != 0xAB {
		t.Fatalf("WRAM not restored: got %#02x, want 0xAB", got)
	}
	if got := b2.Read(0xFF47); got != 0xE4 {
		t.Fatalf("BGP not restored: got %#02x, want 0xE4", got)
	}
	if got := b2.Read(0xFFFF); got != 0x1F {
		t.Fatalf("IE not restored: got %#02x, want 0x1F", got)
	}
}
