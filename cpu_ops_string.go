// cpu_ops_string.go - MOVS/CMPS/STOS/LODS/SCAS with REP/REPE/REPNE

package vxt

func (c *CPU) stringStep() int16 {
	if c.flagSet(FlagD) {
		return -1
	}
	return 1
}

// repLoop drives a REP-prefixed string primitive. It executes one
// iteration at a time, testing CX and (for CMPS/SCAS) ZF between
// iterations, and breaks out to service a pending maskable IRQ with
// CS:IP restored to the REP prefix so the instruction resumes
// correctly afterward, per §4.9 and seed scenario-adjacent invariants
// in §8.
func (c *CPU) repLoop(sys *System, zfTest int, body func()) {
	if c.rep == repNone {
		body()
		return
	}
	for c.CX != 0 {
		body()
		c.CX--
		if zfTest == 1 && !c.flagSet(FlagZ) { // REPE: stop when ZF clears
			break
		}
		if zfTest == 2 && c.flagSet(FlagZ) { // REPNE: stop when ZF sets
			break
		}
		if c.CX == 0 {
			break
		}
		if pic, ok := sys.Bus.PIC(); ok && c.flagSet(FlagI) {
			if vector, pending := pic.Next(); pending {
				c.IP = c.prefixStartIP
				c.CallInt(sys, vector)
				return
			}
		}
	}
}

func opMovsb(c *CPU, sys *System) {
	c.repLoop(sys, 0, func() {
		v := c.bus.ReadByte(c.linear(c.moffsSeg(), c.SI))
		c.bus.WriteByte(c.linear(c.ES, c.DI), v)
		step := c.stringStep()
		c.SI = uint16(int16(c.SI) + step)
		c.DI = uint16(int16(c.DI) + step)
	})
}

func opMovsw(c *CPU, sys *System) {
	c.repLoop(sys, 0, func() {
		v := c.bus.ReadWord(c.linear(c.moffsSeg(), c.SI))
		c.bus.WriteWord(c.linear(c.ES, c.DI), v)
		step := c.stringStep() * 2
		c.SI = uint16(int16(c.SI) + step)
		c.DI = uint16(int16(c.DI) + step)
	})
}

func opStosb(c *CPU, sys *System) {
	c.repLoop(sys, 0, func() {
		c.bus.WriteByte(c.linear(c.ES, c.DI), byte(c.AX))
		c.DI = uint16(int16(c.DI) + c.stringStep())
	})
}

func opStosw(c *CPU, sys *System) {
	c.repLoop(sys, 0, func() {
		c.bus.WriteWord(c.linear(c.ES, c.DI), c.AX)
		c.DI = uint16(int16(c.DI) + c.stringStep()*2)
	})
}

func opLodsb(c *CPU, sys *System) {
	c.repLoop(sys, 0, func() {
		c.AX = c.AX&0xFF00 | uint16(c.bus.ReadByte(c.linear(c.moffsSeg(), c.SI)))
		c.SI = uint16(int16(c.SI) + c.stringStep())
	})
}

func opLodsw(c *CPU, sys *System) {
	c.repLoop(sys, 0, func() {
		c.AX = c.bus.ReadWord(c.linear(c.moffsSeg(), c.SI))
		c.SI = uint16(int16(c.SI) + c.stringStep()*2)
	})
}

func (c *CPU) cmpsZFTest() int {
	if c.rep == repE {
		return 1
	}
	if c.rep == repNE {
		return 2
	}
	return 0
}

func opCmpsb(c *CPU, sys *System) {
	c.repLoop(sys, c.cmpsZFTest(), func() {
		a := c.bus.ReadByte(c.linear(c.moffsSeg(), c.SI))
		b := c.bus.ReadByte(c.linear(c.ES, c.DI))
		c.alu8(aluCmp, a, b)
		step := c.stringStep()
		c.SI = uint16(int16(c.SI) + step)
		c.DI = uint16(int16(c.DI) + step)
	})
}

func opCmpsw(c *CPU, sys *System) {
	c.repLoop(sys, c.cmpsZFTest(), func() {
		a := c.bus.ReadWord(c.linear(c.moffsSeg(), c.SI))
		b := c.bus.ReadWord(c.linear(c.ES, c.DI))
		c.alu16(aluCmp, a, b)
		step := c.stringStep() * 2
		c.SI = uint16(int16(c.SI) + step)
		c.DI = uint16(int16(c.DI) + step)
	})
}

func opScasb(c *CPU, sys *System) {
	c.repLoop(sys, c.cmpsZFTest(), func() {
		b := c.bus.ReadByte(c.linear(c.ES, c.DI))
		c.alu8(aluCmp, byte(c.AX), b)
		c.DI = uint16(int16(c.DI) + c.stringStep())
	})
}

func opScasw(c *CPU, sys *System) {
	c.repLoop(sys, c.cmpsZFTest(), func() {
		w := c.bus.ReadWord(c.linear(c.ES, c.DI))
		c.alu16(aluCmp, c.AX, w)
		c.DI = uint16(int16(c.DI) + c.stringStep()*2)
	})
}

func opIns8(c *CPU, sys *System) {
	c.repLoop(sys, 0, func() {
		v := c.bus.In(c.DX)
		c.bus.WriteByte(c.linear(c.ES, c.DI), v)
		c.DI = uint16(int16(c.DI) + c.stringStep())
	})
}

func opIns16(c *CPU, sys *System) {
	c.repLoop(sys, 0, func() {
		lo := c.bus.In(c.DX)
		hi := c.bus.In(c.DX)
		c.bus.WriteWord(c.linear(c.ES, c.DI), uint16(lo)|uint16(hi)<<8)
		c.DI = uint16(int16(c.DI) + c.stringStep()*2)
	})
}

func opOuts8(c *CPU, sys *System) {
	c.repLoop(sys, 0, func() {
		v := c.bus.ReadByte(c.linear(c.moffsSeg(), c.SI))
		c.bus.Out(c.DX, v)
		c.SI = uint16(int16(c.SI) + c.stringStep())
	})
}

func opOuts16(c *CPU, sys *System) {
	c.repLoop(sys, 0, func() {
		v := c.bus.ReadWord(c.linear(c.moffsSeg(), c.SI))
		c.bus.Out(c.DX, byte(v))
		c.bus.Out(c.DX, byte(v>>8))
		c.SI = uint16(int16(c.SI) + c.stringStep()*2)
	})
}
