package vxt

import "testing"

// IRQ servicing boundary: with IF=1 and a PIC line pending, the
// in-flight instruction retires to completion before the pending IRQ
// is serviced at the next instruction boundary, leaving an IRET-able
// frame at the ISR entry with IF and TF clear.
func TestIRQServicingBoundary(t *testing.T) {
	sys, ram := newTestSystem(Tier8086)
	cpu := sys.CPU
	pic := &fakePIC{}
	sys.AddPeripheral(pic)
	sys.Initialize()

	cpu.CS, cpu.IP = 0, 0x100
	cpu.AX, cpu.BX = 1, 2
	cpu.setFlag(FlagI, true)

	ram.WriteByte(0x100, 0x01) // ADD Ev,Gv
	ram.WriteByte(0x101, 0xD8) // mod=11 reg=BX(011) rm=AX(000)

	cpu.Step(sys) // the arithmetic instruction retires, no IRQ pending yet

	if cpu.AX != 3 {
		t.Fatalf("AX = %d, want 3 (instruction must retire first)", cpu.AX)
	}
	if cpu.IP != 0x102 {
		t.Fatalf("IP = %#04x, want 0x102 after the instruction retires", cpu.IP)
	}

	pic.vector = 0x08
	pic.pending = true
	sys.Bus.WriteWord(0x08*4, 0x9000)   // vector 8 -> IP
	sys.Bus.WriteWord(0x08*4+2, 0x7000) // vector 8 -> CS

	cpu.Step(sys) // serviced at the next instruction boundary

	if cpu.CS != 0x7000 || cpu.IP != 0x9000 {
		t.Fatalf("CS:IP after IRQ = %04X:%04X, want 7000:9000", cpu.CS, cpu.IP)
	}
	if cpu.flagSet(FlagI) {
		t.Error("IF still set inside the ISR")
	}
	if cpu.flagSet(FlagT) {
		t.Error("TF still set inside the ISR")
	}

	stackIP := sys.Bus.ReadWord(uint32(cpu.SS)<<4 + uint32(cpu.SP))
	if stackIP != 0x102 {
		t.Fatalf("IP pushed on stack = %#04x, want 0x102 (after the retired instruction)", stackIP)
	}
}
