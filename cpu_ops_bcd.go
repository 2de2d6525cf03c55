// cpu_ops_bcd.go - DAA/DAS/AAA/AAS/AAM/AAD

package vxt

func opDaa(c *CPU, sys *System) {
	al := byte(c.AX)
	oldAL, oldCF := al, c.flagSet(FlagC)
	cf := false
	if al&0x0F > 9 || c.flagSet(FlagA) {
		al += 6
		cf = oldCF || al < oldAL || (oldAL&0x0F+6) > 0x0F
		c.setFlag(FlagA, true)
	} else {
		c.setFlag(FlagA, false)
	}
	if oldAL > 0x99 || oldCF {
		al += 0x60
		cf = true
	}
	c.setFlag(FlagC, cf)
	c.setFlag(FlagZ, al == 0)
	c.setFlag(FlagS, al&0x80 != 0)
	c.setFlag(FlagP, parity(al))
	c.AX = c.AX&0xFF00 | uint16(al)
}

func opDas(c *CPU, sys *System) {
	al := byte(c.AX)
	oldAL, oldCF := al, c.flagSet(FlagC)
	cf := false
	if al&0x0F > 9 || c.flagSet(FlagA) {
		cf = oldCF || al < 6
		al -= 6
		c.setFlag(FlagA, true)
	} else {
		c.setFlag(FlagA, false)
	}
	if oldAL > 0x99 || oldCF {
		al -= 0x60
		cf = true
	}
	c.setFlag(FlagC, cf)
	c.setFlag(FlagZ, al == 0)
	c.setFlag(FlagS, al&0x80 != 0)
	c.setFlag(FlagP, parity(al))
	c.AX = c.AX&0xFF00 | uint16(al)
}

func opAaa(c *CPU, sys *System) {
	al, ah := byte(c.AX), byte(c.AX>>8)
	if al&0x0F > 9 || c.flagSet(FlagA) {
		al += 6
		ah += 1
		c.setFlag(FlagA, true)
		c.setFlag(FlagC, true)
	} else {
		c.setFlag(FlagA, false)
		c.setFlag(FlagC, false)
	}
	al &= 0x0F
	c.AX = uint16(ah)<<8 | uint16(al)
}

func opAas(c *CPU, sys *System) {
	al, ah := byte(c.AX), byte(c.AX>>8)
	if al&0x0F > 9 || c.flagSet(FlagA) {
		al -= 6
		ah -= 1
		c.setFlag(FlagA, true)
		c.setFlag(FlagC, true)
	} else {
		c.setFlag(FlagA, false)
		c.setFlag(FlagC, false)
	}
	al &= 0x0F
	c.AX = uint16(ah)<<8 | uint16(al)
}

func opAam(c *CPU, sys *System) {
	base := c.fetchImm8()
	if base == 0 {
		c.faultDivide(sys)
		return
	}
	al := byte(c.AX)
	ah := al / base
	al = al % base
	c.AX = uint16(ah)<<8 | uint16(al)
	c.setFlag(FlagZ, al == 0)
	c.setFlag(FlagS, al&0x80 != 0)
	c.setFlag(FlagP, parity(al))
}

func opAad(c *CPU, sys *System) {
	base := c.fetchImm8()
	al, ah := byte(c.AX), byte(c.AX>>8)
	result := ah*base + al
	c.AX = uint16(result)
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagS, result&0x80 != 0)
	c.setFlag(FlagP, parity(result))
}
