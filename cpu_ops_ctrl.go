// cpu_ops_ctrl.go - control transfer, flags, interrupt-related opcodes

package vxt

func (c *CPU) jumpRel8() {
	disp := int8(c.fetchImm8())
	c.IP = uint16(int16(c.IP) + int16(disp))
	c.prefetch.invalidate()
}

func (c *CPU) jumpRel16() {
	disp := int16(c.fetchImm16())
	c.IP = uint16(int16(c.IP) + disp)
	c.prefetch.invalidate()
}

// condJump builds one of the 0x70-0x7F Jcc opcodes from a flag test.
func condJump(test func(c *CPU) bool) func(c *CPU, sys *System) {
	return func(c *CPU, sys *System) {
		taken := test(c)
		disp := int8(c.fetchImm8())
		if taken {
			c.IP = uint16(int16(c.IP) + int16(disp))
			c.prefetch.invalidate()
		}
	}
}

func testO(c *CPU) bool  { return c.flagSet(FlagO) }
func testNO(c *CPU) bool { return !c.flagSet(FlagO) }
func testC(c *CPU) bool  { return c.flagSet(FlagC) }
func testNC(c *CPU) bool { return !c.flagSet(FlagC) }
func testZ(c *CPU) bool  { return c.flagSet(FlagZ) }
func testNZ(c *CPU) bool { return !c.flagSet(FlagZ) }
func testBE(c *CPU) bool { return c.flagSet(FlagC) || c.flagSet(FlagZ) }
func testA(c *CPU) bool  { return !c.flagSet(FlagC) && !c.flagSet(FlagZ) }
func testS(c *CPU) bool  { return c.flagSet(FlagS) }
func testNS(c *CPU) bool { return !c.flagSet(FlagS) }
func testP(c *CPU) bool  { return c.flagSet(FlagP) }
func testNP(c *CPU) bool { return !c.flagSet(FlagP) }
func testL(c *CPU) bool  { return c.flagSet(FlagS) != c.flagSet(FlagO) }
func testGE(c *CPU) bool { return c.flagSet(FlagS) == c.flagSet(FlagO) }
func testLE(c *CPU) bool { return c.flagSet(FlagZ) || (c.flagSet(FlagS) != c.flagSet(FlagO)) }
func testG(c *CPU) bool  { return !c.flagSet(FlagZ) && (c.flagSet(FlagS) == c.flagSet(FlagO)) }

func opJmpRel8(c *CPU, sys *System)  { c.jumpRel8() }
func opJmpRel16(c *CPU, sys *System) { c.jumpRel16() }

func opJmpFar(c *CPU, sys *System) {
	newIP := c.fetchImm16()
	newCS := c.fetchImm16()
	c.IP = newIP
	c.LoadSegment(segRegCS, newCS, sys)
	c.prefetch.invalidate()
}

func opCallRel16(c *CPU, sys *System) {
	disp := int16(c.fetchImm16())
	ret := c.IP
	c.IP = uint16(int16(c.IP) + disp)
	c.push16(ret)
	c.prefetch.invalidate()
}

func opCallFar(c *CPU, sys *System) {
	newIP := c.fetchImm16()
	newCS := c.fetchImm16()
	c.push16(c.CS)
	c.push16(c.IP)
	c.IP = newIP
	c.LoadSegment(segRegCS, newCS, sys)
	c.prefetch.invalidate()
}

func opRetNear(c *CPU, sys *System) {
	c.IP = c.pop16()
	c.prefetch.invalidate()
}

func opRetNearImm(c *CPU, sys *System) {
	n := c.fetchImm16()
	c.IP = c.pop16()
	c.SP += n
	c.prefetch.invalidate()
}

func opRetFar(c *CPU, sys *System) {
	newIP := c.pop16()
	newCS := c.pop16()
	c.IP = newIP
	c.LoadSegment(segRegCS, newCS, sys)
	c.prefetch.invalidate()
}

func opRetFarImm(c *CPU, sys *System) {
	n := c.fetchImm16()
	newIP := c.pop16()
	newCS := c.pop16()
	c.IP = newIP
	c.LoadSegment(segRegCS, newCS, sys)
	c.SP += n
	c.prefetch.invalidate()
}

func opLoop(c *CPU, sys *System) {
	disp := int8(c.fetchImm8())
	c.CX--
	if c.CX != 0 {
		c.IP = uint16(int16(c.IP) + int16(disp))
		c.prefetch.invalidate()
	}
}

func opLoopE(c *CPU, sys *System) {
	disp := int8(c.fetchImm8())
	c.CX--
	if c.CX != 0 && c.flagSet(FlagZ) {
		c.IP = uint16(int16(c.IP) + int16(disp))
		c.prefetch.invalidate()
	}
}

func opLoopNE(c *CPU, sys *System) {
	disp := int8(c.fetchImm8())
	c.CX--
	if c.CX != 0 && !c.flagSet(FlagZ) {
		c.IP = uint16(int16(c.IP) + int16(disp))
		c.prefetch.invalidate()
	}
}

func opJcxz(c *CPU, sys *System) {
	disp := int8(c.fetchImm8())
	if c.CX == 0 {
		c.IP = uint16(int16(c.IP) + int16(disp))
		c.prefetch.invalidate()
	}
}

func opInt3(c *CPU, sys *System) { c.CallInt(sys, ExcBreakpoint) }
func opIntImm8(c *CPU, sys *System) {
	n := c.fetchImm8()
	c.CallInt(sys, n)
}
func opInto(c *CPU, sys *System) {
	if c.flagSet(FlagO) {
		c.CallInt(sys, ExcOverflow)
	}
}

func opIret(c *CPU, sys *System) {
	c.IP = c.pop16()
	c.CS = c.pop16()
	c.Flags = c.pop16()&0x0FD5 | flagsReservedOn | flagsReservedSet
	c.prefetch.invalidate()
}

func opHlt(c *CPU, sys *System) { c.HLT() }

func opCmc(c *CPU, sys *System) { c.setFlag(FlagC, !c.flagSet(FlagC)) }
func opClc(c *CPU, sys *System) { c.setFlag(FlagC, false) }
func opStc(c *CPU, sys *System) { c.setFlag(FlagC, true) }
func opCli(c *CPU, sys *System) { c.setFlag(FlagI, false) }
func opSti(c *CPU, sys *System) { c.setFlag(FlagI, true) }
func opCld(c *CPU, sys *System) { c.setFlag(FlagD, false) }
func opStd(c *CPU, sys *System) { c.setFlag(FlagD, true) }

func opInAlImm8(c *CPU, sys *System) {
	port := uint16(c.fetchImm8())
	c.AX = c.AX&0xFF00 | uint16(c.bus.In(port))
}
func opInAxImm8(c *CPU, sys *System) {
	port := uint16(c.fetchImm8())
	c.AX = uint16(c.bus.In(port)) | uint16(c.bus.In(port+1))<<8
}
func opOutImm8Al(c *CPU, sys *System) {
	port := uint16(c.fetchImm8())
	c.bus.Out(port, byte(c.AX))
}
func opOutImm8Ax(c *CPU, sys *System) {
	port := uint16(c.fetchImm8())
	c.bus.Out(port, byte(c.AX))
	c.bus.Out(port+1, byte(c.AX>>8))
}
func opInAlDx(c *CPU, sys *System)  { c.AX = c.AX&0xFF00 | uint16(c.bus.In(c.DX)) }
func opInAxDx(c *CPU, sys *System)  { c.AX = uint16(c.bus.In(c.DX)) | uint16(c.bus.In(c.DX+1))<<8 }
func opOutDxAl(c *CPU, sys *System) { c.bus.Out(c.DX, byte(c.AX)) }
func opOutDxAx(c *CPU, sys *System) {
	c.bus.Out(c.DX, byte(c.AX))
	c.bus.Out(c.DX+1, byte(c.AX>>8))
}
