// cpu_ops_v20.go - NEC V20 / 80186-class extensions

package vxt

func opPusha(c *CPU, sys *System) {
	sp := c.SP
	c.push16(c.AX)
	c.push16(c.BX)
	c.push16(c.CX)
	c.push16(c.DX)
	c.push16(sp)
	c.push16(c.BP)
	c.push16(c.SI)
	c.push16(c.DI)
}

func opPopa(c *CPU, sys *System) {
	c.DI = c.pop16()
	c.SI = c.pop16()
	c.BP = c.pop16()
	c.pop16() // discard saved SP
	c.DX = c.pop16()
	c.CX = c.pop16()
	c.BX = c.pop16()
	c.AX = c.pop16()
}

func opEnter(c *CPU, sys *System) {
	frameSize := c.fetchImm16()
	nestLevel := c.fetchImm8() & 0x1F
	c.push16(c.BP)
	frameTemp := c.SP
	bp := c.BP
	for i := byte(1); i < nestLevel; i++ {
		bp -= 2
		c.push16(c.bus.ReadWord(c.linear(c.SS, bp)))
	}
	if nestLevel > 0 {
		c.push16(frameTemp)
	}
	c.BP = frameTemp
	c.SP -= frameSize
}

func opLeave(c *CPU, sys *System) {
	c.SP = c.BP
	c.BP = c.pop16()
}

func opBound(c *CPU, sys *System) {
	idx := int16(c.regRead16(c.addrMode.reg))
	lo := int16(c.bus.ReadWord(c.effectiveLinearAddress()))
	hi := int16(c.bus.ReadWord(c.effectiveLinearAddress() + 2))
	if idx < lo || idx > hi {
		c.CS, c.IP = c.faultCS, c.faultIP
		c.RaiseException(sys, ExcBoundRange)
	}
}

func opImulR16EvIv(c *CPU, sys *System) {
	v := int32(int16(c.readRM16()))
	imm := int32(int16(c.fetchImm16()))
	r := v * imm
	c.regWrite16(c.addrMode.reg, uint16(r))
	ext := r>>16 == 0 || r>>16 == -1
	c.setFlag(FlagC, !ext)
	c.setFlag(FlagO, !ext)
}

func opImulR16EvIb(c *CPU, sys *System) {
	v := int32(int16(c.readRM16()))
	imm := int32(int16(int8(c.fetchImm8())))
	r := v * imm
	c.regWrite16(c.addrMode.reg, uint16(r))
	ext := r>>16 == 0 || r>>16 == -1
	c.setFlag(FlagC, !ext)
	c.setFlag(FlagO, !ext)
}
