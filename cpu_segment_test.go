package vxt

import "testing"

// Segment-override DS->SS for [BP]: with DS=0x1000, SS=0x2000, BP=0x10,
// MOV AL,[BP] must read through SS (physical 0x20010), not DS.
func TestSegmentOverrideDSToSS(t *testing.T) {
	sys, ram := newTestSystem(Tier8086)
	cpu := sys.CPU
	cpu.CS, cpu.IP = 0, 0x100
	cpu.DS = 0x1000
	cpu.SS = 0x2000
	cpu.BP = 0x10

	ram.WriteByte(0x20010, 0x42)
	ram.WriteByte(0x10010, 0xFF)

	ram.WriteByte(0x100, 0x8A) // MOV Gb,Eb
	ram.WriteByte(0x101, 0x46) // mod=01 reg=AL(000) rm=BP(110)
	ram.WriteByte(0x102, 0x00) // disp8 = 0

	cpu.Step(sys)

	if al := byte(cpu.AX); al != 0x42 {
		t.Fatalf("AL = %#02x, want 0x42 (SS-based)", al)
	}
}

// Real-mode segment math: CS=0xF000, IP=0xFFF0 (the reset vector); the
// first code fetch must read physical 0xFFFF0.
func TestRealModeSegmentMath(t *testing.T) {
	sys, ram := newTestSystem(Tier8086)
	cpu := sys.CPU
	cpu.Reset()

	if cpu.CS != 0xF000 || cpu.IP != 0xFFF0 {
		t.Fatalf("reset vector = %04X:%04X, want F000:FFF0", cpu.CS, cpu.IP)
	}

	ram.WriteByte(0xFFFF0, 0x90) // NOP
	cpu.Step(sys)

	if cpu.IP != 0xFFF1 {
		t.Fatalf("IP after fetch = %#04x, want 0xFFF1", cpu.IP)
	}
}
