package vxt

import "testing"

// ADD flag behaviour: AX=0x7FFF, BX=1; ADD AX,BX yields AX=0x8000 with
// O=1, S=1, Z=0, C=0, A=1, P=1.
func TestADDFlagBehaviour(t *testing.T) {
	sys, ram := newTestSystem(Tier8086)
	cpu := sys.CPU
	cpu.CS, cpu.IP = 0, 0x100
	cpu.AX = 0x7FFF
	cpu.BX = 1

	ram.WriteByte(0x100, 0x01) // ADD Ev,Gv
	ram.WriteByte(0x101, 0xD8) // mod=11 reg=BX(011) rm=AX(000)

	cpu.Step(sys)

	if cpu.AX != 0x8000 {
		t.Fatalf("AX = %#04x, want 0x8000", cpu.AX)
	}
	checks := []struct {
		name string
		mask uint16
		want bool
	}{
		{"O", FlagO, true},
		{"S", FlagS, true},
		{"Z", FlagZ, false},
		{"C", FlagC, false},
		{"A", FlagA, true},
		{"P", FlagP, true},
	}
	for _, c := range checks {
		if got := cpu.flagSet(c.mask); got != c.want {
			t.Errorf("flag %s = %v, want %v", c.name, got, c.want)
		}
	}
}
