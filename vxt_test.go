package vxt

// flatRAM is a test-only peripheral that backs the entire real-mode
// address space, so tests can poke arbitrary physical addresses the
// way the teacher's cpu_x86_test.go drives its bus fixtures.
type flatRAM struct {
	mem [1 << 20]byte
}

func (r *flatRAM) Name() string  { return "ram" }
func (r *flatRAM) Class() Class  { return ClassGeneric }
func (r *flatRAM) Install(sys *System, index int) error {
	return sys.Bus.InstallMemory(index, 0, 0xFFFFF)
}
func (r *flatRAM) ReadByte(addr uint32) byte    { return r.mem[addr&0xFFFFF] }
func (r *flatRAM) WriteByte(addr uint32, v byte) { r.mem[addr&0xFFFFF] = v }

// fakePIC is a test-only PIC stub: IRQ(line) marks a line pending,
// Next() hands back a fixed vector and clears pending.
type fakePIC struct {
	pending bool
	vector  byte
}

func (p *fakePIC) Name() string { return "pic" }
func (p *fakePIC) Class() Class { return ClassPIC }
func (p *fakePIC) IRQ(line int) { p.pending = true }
func (p *fakePIC) Next() (byte, bool) {
	if !p.pending {
		return 0, false
	}
	p.pending = false
	return p.vector, true
}

// newTestSystem builds a system with flat RAM installed over the
// whole real-mode address space and no other peripherals, at the
// given tier.
func newTestSystem(tier Tier) (*System, *flatRAM) {
	sys := NewSystem(tier, 4_772_727)
	ram := &flatRAM{}
	sys.AddPeripheral(ram)
	sys.Initialize()
	sys.Reset()
	return sys, ram
}
