// cpu_ops_data.go - data movement: MOV/PUSH/POP/XCHG/LEA/LxS/XLAT

package vxt

func opMovRM8Reg(c *CPU, sys *System) { c.writeRM8(c.regRead8(c.addrMode.reg)) }
func opMovRegRM8(c *CPU, sys *System) { c.regWrite8(c.addrMode.reg, c.readRM8()) }
func opMovRM16Reg(c *CPU, sys *System) { c.writeRM16(c.regRead16(c.addrMode.reg)) }
func opMovRegRM16(c *CPU, sys *System) { c.regWrite16(c.addrMode.reg, c.readRM16()) }

func opMovRMSreg(c *CPU, sys *System) { c.writeRM16(c.segRegRead(c.addrMode.reg)) }
func opMovSregRM(c *CPU, sys *System) {
	v := c.readRM16()
	c.loadSegByIndex(c.addrMode.reg, v, sys)
}

func (c *CPU) loadSegByIndex(n byte, v uint16, sys *System) {
	switch n & 0x3 {
	case 0:
		c.LoadSegment(segRegES, v, sys)
	case 1:
		c.LoadSegment(segRegCS, v, sys)
	case 2:
		c.LoadSegment(segRegSS, v, sys)
	default:
		c.LoadSegment(segRegDS, v, sys)
	}
}

func opMovAlImm8(c *CPU, sys *System)  { c.AX = c.AX&0xFF00 | uint16(c.fetchImm8()) }
func opMovAxImm16(c *CPU, sys *System) { c.AX = c.fetchImm16() }

// opMovRegImm8/16 cover the 0xB0-0xBF block via a closure captured at
// table-build time for which register the opcode names.
func opMovRegImm8(reg byte) func(c *CPU, sys *System) {
	return func(c *CPU, sys *System) { c.regWrite8(reg, c.fetchImm8()) }
}

func opMovRegImm16(reg byte) func(c *CPU, sys *System) {
	return func(c *CPU, sys *System) { c.regWrite16(reg, c.fetchImm16()) }
}

func opMovRM8Imm8(c *CPU, sys *System)   { c.writeRM8(c.fetchImm8()) }
func opMovRM16Imm16(c *CPU, sys *System) { c.writeRM16(c.fetchImm16()) }

// opMovAlMoffs/opMovAxMoffs/opMovMoffsAl/opMovMoffsAx cover the direct
// memory-offset MOV forms using the default segment.
func opMovAlMoffs(c *CPU, sys *System) {
	off := c.fetchImm16()
	c.AX = c.AX&0xFF00 | uint16(c.bus.ReadByte(c.linear(c.moffsSeg(), off)))
}
func opMovAxMoffs(c *CPU, sys *System) {
	off := c.fetchImm16()
	c.AX = c.bus.ReadWord(c.linear(c.moffsSeg(), off))
}
func opMovMoffsAl(c *CPU, sys *System) {
	off := c.fetchImm16()
	c.bus.WriteByte(c.linear(c.moffsSeg(), off), byte(c.AX))
}
func opMovMoffsAx(c *CPU, sys *System) {
	off := c.fetchImm16()
	c.bus.WriteWord(c.linear(c.moffsSeg(), off), c.AX)
}

func (c *CPU) moffsSeg() uint16 {
	if c.override != segNone {
		return c.segValue(c.override)
	}
	return c.DS
}

func opPushRM16(c *CPU, sys *System) { c.push16(c.readRM16()) }
func opPopRM16(c *CPU, sys *System)  { c.writeRM16(c.pop16()) }

func opPushReg(reg byte) func(c *CPU, sys *System) {
	return func(c *CPU, sys *System) {
		if reg == 4 { // SP: the PUSH-SP erratum
			c.push16(c.pushSPValue())
			return
		}
		c.push16(c.regRead16(reg))
	}
}

func opPopReg(reg byte) func(c *CPU, sys *System) {
	return func(c *CPU, sys *System) { c.regWrite16(reg, c.pop16()) }
}

func opPushSreg(s seg) func(c *CPU, sys *System) {
	return func(c *CPU, sys *System) { c.push16(c.segRegOf(s)) }
}
func opPopSreg(s seg) func(c *CPU, sys *System) {
	return func(c *CPU, sys *System) { c.loadSegByIndex(segIndexOf(s), c.pop16(), sys) }
}

func (c *CPU) segRegOf(s seg) uint16 {
	switch s {
	case segRegES:
		return c.ES
	case segRegCS:
		return c.CS
	case segRegSS:
		return c.SS
	default:
		return c.DS
	}
}

func segIndexOf(s seg) byte {
	switch s {
	case segRegES:
		return 0
	case segRegCS:
		return 1
	case segRegSS:
		return 2
	default:
		return 3
	}
}

func opPushF(c *CPU, sys *System) { c.push16(c.Flags) }
func opPopF(c *CPU, sys *System)  { c.Flags = c.pop16()&0x0FD5 | flagsReservedOn | flagsReservedSet }

func opXchgRM8Reg(c *CPU, sys *System) {
	a, b := c.readRM8(), c.regRead8(c.addrMode.reg)
	c.writeRM8(b)
	c.regWrite8(c.addrMode.reg, a)
}
func opXchgRM16Reg(c *CPU, sys *System) {
	a, b := c.readRM16(), c.regRead16(c.addrMode.reg)
	c.writeRM16(b)
	c.regWrite16(c.addrMode.reg, a)
}

func opXchgAxReg(reg byte) func(c *CPU, sys *System) {
	return func(c *CPU, sys *System) {
		a := c.AX
		c.AX = c.regRead16(reg)
		c.regWrite16(reg, a)
	}
}

func opLea(c *CPU, sys *System) {
	c.regWrite16(c.addrMode.reg, c.effectiveAddress16())
}

func opLds(c *CPU, sys *System) {
	off := c.effectiveLinearAddress()
	v := c.bus.ReadWord(off)
	seg := c.bus.ReadWord(off + 2)
	c.regWrite16(c.addrMode.reg, v)
	c.LoadSegment(segRegDS, seg, sys)
}

func opLes(c *CPU, sys *System) {
	off := c.effectiveLinearAddress()
	v := c.bus.ReadWord(off)
	seg := c.bus.ReadWord(off + 2)
	c.regWrite16(c.addrMode.reg, v)
	c.LoadSegment(segRegES, seg, sys)
}

func opXlat(c *CPU, sys *System) {
	addr := c.linear(c.moffsSeg(), c.BX+uint16(byte(c.AX)))
	c.AX = c.AX&0xFF00 | uint16(c.bus.ReadByte(addr))
}

func opLahf(c *CPU, sys *System) { c.AX = c.AX&0x00FF | uint16(byte(c.Flags))<<8 }
func opSahf(c *CPU, sys *System) {
	c.Flags = c.Flags&0xFF00 | uint16(byte(c.AX>>8))&0xD5 | flagsReservedOn
}

func opNop(c *CPU, sys *System) {}
