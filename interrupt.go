// interrupt.go - interrupt & exception path

package vxt

// CallInt delivers interrupt/exception vector n: pushes flags, CS, IP,
// loads new CS:IP from the IVT (real mode) or the IDT gate (protected
// mode), clears TF, clears IF (in protected mode only for an interrupt
// gate), and marks the prefetch queue dirty.
func (c *CPU) CallInt(sys *System, n byte) {
	c.push16(c.Flags)
	c.push16(c.CS)
	c.push16(c.IP)

	if sys == nil || !sys.ProtectedMode {
		vectorAddr := uint32(n) * 4
		newIP := c.bus.ReadWord(vectorAddr)
		newCS := c.bus.ReadWord(vectorAddr + 2)
		c.IP = newIP
		c.CS = newCS
		c.setFlag(FlagI, false)
	} else {
		c.callGate(sys, n)
	}

	c.setFlag(FlagT, false)
	c.prefetch.invalidate()

	if n == 0x28 {
		c.int28 = true
	}
}

// callGate follows an IDT gate descriptor in protected mode. Segment-
// level only: the gate supplies a new CS:IP, and its type determines
// whether it additionally clears IF (interrupt gate) or not (trap
// gate); no privilege-level enforcement beyond the field decode.
func (c *CPU) callGate(sys *System, n byte) {
	entry := c.IDTR.Base + uint32(n)*8
	offLo := c.bus.ReadByte(entry)
	offHi := c.bus.ReadByte(entry + 1)
	selLo := c.bus.ReadByte(entry + 2)
	selHi := c.bus.ReadByte(entry + 3)
	accessByte := c.bus.ReadByte(entry + 5)
	offHi2 := c.bus.ReadByte(entry + 6)
	offHi3 := c.bus.ReadByte(entry + 7)

	newIP := uint16(offLo) | uint16(offHi)<<8
	newCS := uint16(selLo) | uint16(selHi)<<8
	_ = offHi2
	_ = offHi3

	c.IP = newIP
	c.CS = newCS

	isInterruptGate := accessByte&0x1 == 0 // type bit 0 clear => interrupt gate
	if isInterruptGate {
		c.setFlag(FlagI, false)
	}
}

// RaiseException delivers a CPU-originated exception. For faults that
// must be re-executed (divide error, descriptor-limit #GP), the
// caller restores CS:IP to the instruction start before calling this.
func (c *CPU) RaiseException(sys *System, vector byte) {
	c.CallInt(sys, vector)
}

// HLT parks the CPU at one cycle per step until an IRQ or reset.
func (c *CPU) HLT() { c.halted = true }

// DeliverNMI injects an external interrupt without gating on IF.
func (c *CPU) DeliverNMI(sys *System) {
	c.halted = false
	c.CallInt(sys, ExcNMI)
}

// pollIRQ checks whether a maskable IRQ is pending and IF is set; if
// so it asks the PIC for the vector and services it. Returns true if
// an interrupt was delivered.
func (c *CPU) pollIRQ(sys *System) bool {
	if !c.flagSet(FlagI) {
		return false
	}
	pic, ok := sys.Bus.PIC()
	if !ok {
		return false
	}
	vector, pending := pic.Next()
	if !pending {
		return false
	}
	c.halted = false
	c.CallInt(sys, vector)
	return true
}

// checkSingleStepTrap delivers INT 1 if TF was set at the start of the
// instruction and the instruction itself did not just set TF (the
// MOV-to-segment-register and POP-SS "defer one instruction" rule is
// handled by the caller not calling this immediately after those ops).
func (c *CPU) checkSingleStepTrap(sys *System) {
	if c.trap && !c.prevTrapSet {
		c.CallInt(sys, ExcDebug)
	}
}
