// cpu_stack.go - stack push/pop helpers shared by executors and the interrupt path

package vxt

func (c *CPU) push16(v uint16) {
	c.SP -= 2
	c.bus.WriteWord(c.linear(c.SS, c.SP), v)
}

func (c *CPU) pop16() uint16 {
	v := c.bus.ReadWord(c.linear(c.SS, c.SP))
	c.SP += 2
	return v
}

// pushSPValue implements the PUSH SP erratum: on 8086 the value
// pushed is SP's value before the decrement; on V20/286 it is the
// decremented value (§4.9).
func (c *CPU) pushSPValue() uint16 {
	if c.tier == Tier8086 {
		return c.SP
	}
	return c.SP - 2
}
