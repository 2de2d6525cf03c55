package vxt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Parity flag round-trip: parity(b) must equal the XOR-reduction of
// b's eight bits, inverted (even population count -> true).
func TestParityTable(t *testing.T) {
	cases := []struct {
		b    byte
		want bool
	}{
		{0x00, true},  // zero bits set: even
		{0x01, false}, // one bit set: odd
		{0x03, true},  // two bits set: even
		{0xFF, true},  // eight bits set: even
		{0x07, false}, // three bits set: odd
	}
	for _, c := range cases {
		if got := parity(c.b); got != c.want {
			t.Errorf("parity(%#02x) = %v, want %v", c.b, got, c.want)
		}
	}
}

// Word read/write invariant: ReadWord/WriteWord compose from the
// byte-level accessors low-byte-first.
func TestWordReadWriteInvariant(t *testing.T) {
	sys, _ := newTestSystem(Tier8086)
	bus := sys.Bus

	bus.WriteWord(0x500, 0xBEEF)
	if lo, hi := bus.ReadByte(0x500), bus.ReadByte(0x501); lo != 0xEF || hi != 0xBE {
		t.Fatalf("bytes after WriteWord = %#02x,%#02x, want EF,BE", lo, hi)
	}
	if got := bus.ReadWord(0x500); got != 0xBEEF {
		t.Fatalf("ReadWord = %#04x, want 0xBEEF", got)
	}

	bus.WriteByte(0x600, 0x34)
	bus.WriteByte(0x601, 0x12)
	if got := bus.ReadWord(0x600); got != 0x1234 {
		t.Fatalf("ReadWord over manual bytes = %#04x, want 0x1234", got)
	}
}

// Real-mode segment-load invariant: for every selector, resolved_base
// == selector<<4 and resolved_limit == 0xFFFF.
func TestRealModeSegmentLoadInvariant(t *testing.T) {
	sys, _ := newTestSystem(Tier8086)
	cpu := sys.CPU

	for _, selector := range []uint16{0x0000, 0x0001, 0x1000, 0x7000, 0xF000, 0xFFFF} {
		if err := cpu.LoadSegment(segRegDS, selector, sys); err != nil {
			t.Fatalf("LoadSegment(%#04x) error: %v", selector, err)
		}
		d := cpu.descriptors.ds
		if d.Base != uint32(selector)<<4 {
			t.Errorf("selector %#04x: base = %#06x, want %#06x", selector, d.Base, uint32(selector)<<4)
		}
		if d.Limit != 0xFFFF {
			t.Errorf("selector %#04x: limit = %#04x, want 0xFFFF", selector, d.Limit)
		}
	}
}

// Protected-mode accessed-bit invariant: a load sets the accessed bit
// both in the source descriptor and in the resolved descriptor, and a
// reload after the bit was cleared in memory sets it again.
func TestProtectedModeAccessedBitInvariant(t *testing.T) {
	sys, ram := newTestSystem(Tier8086)
	cpu := sys.CPU
	sys.ProtectedMode = true
	cpu.GDTR = TableReg{Base: 0x2000, Limit: 0xFFFF}

	// One descriptor at selector index 1 (GDT offset 8): a writable
	// data segment, base 0x3000, limit 0xFFFF, present, accessed=0.
	const entry = 0x2000 + 8
	ram.WriteByte(entry+0, 0xFF) // limit lo
	ram.WriteByte(entry+1, 0xFF) // limit hi
	ram.WriteByte(entry+2, 0x00) // base lo
	ram.WriteByte(entry+3, 0x30) // base mid
	ram.WriteByte(entry+4, 0x00) // unused
	ram.WriteByte(entry+5, 0x92) // present, data, writable, accessed=0
	ram.WriteByte(entry+6, 0x00)
	ram.WriteByte(entry+7, 0x00) // base hi

	const selector = 1 << 3

	if err := cpu.LoadSegment(segRegDS, selector, sys); err != nil {
		t.Fatalf("first load: %v", err)
	}
	accessByte := ram.ReadByte(entry + 5)
	if accessByte&0x1 == 0 {
		t.Fatalf("accessed bit not set after first load")
	}
	if !cpu.descriptors.ds.Accessed {
		t.Fatalf("descriptor.Accessed not set after first load")
	}

	// Clear the accessed bit in the backing store and reload the same
	// selector: the write-back is gated on the access byte read from
	// memory at each load, so the loader finds the bit clear again.
	ram.WriteByte(entry+5, 0x92) // clear the byte in backing store again
	if err := cpu.LoadSegment(segRegDS, selector, sys); err != nil {
		t.Fatalf("second load: %v", err)
	}
	// The loader re-reads from memory each time, so accessed does get
	// re-derived from the (now-cleared) byte and set again; what must
	// hold is that a *single* load never double-writes the bit.
	if cpu.descriptors.ds.Accessed != true {
		t.Fatalf("descriptor.Accessed not set after second load")
	}
}

// Register-file snapshot equivalence: go-cmp is used to compare whole
// Registers values, the way an end-to-end test compares a post-state
// snapshot against an expected one in a single assertion.
func TestADDRegisterSnapshot(t *testing.T) {
	sys, ram := newTestSystem(Tier8086)
	cpu := sys.CPU
	cpu.CS, cpu.IP = 0, 0x100
	cpu.AX = 0x7FFF
	cpu.BX = 1

	ram.WriteByte(0x100, 0x01) // ADD Ev,Gv
	ram.WriteByte(0x101, 0xD8) // mod=11 reg=BX(011) rm=AX(000)

	before := cpu.Registers
	cpu.Step(sys)
	after := cpu.Registers

	want := before
	want.AX = 0x8000
	want.IP = 0x102
	want.Flags = after.Flags // flags are checked by the dedicated flag test, not here

	if diff := cmp.Diff(want, after); diff != "" {
		t.Errorf("register snapshot mismatch (-want +got):\n%s", diff)
	}
}
