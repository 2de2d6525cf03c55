// cpu_optable.go - opcode table population

package vxt

func initBaseOps() {
	kinds := [8]aluKind{aluAdd, aluOr, aluAdc, aluSbb, aluAnd, aluSub, aluXor, aluCmp}
	names := [8]string{"ADD", "OR", "ADC", "SBB", "AND", "SUB", "XOR", "CMP"}
	for i := 0; i < 8; i++ {
		base := byte(i * 8)
		k := kinds[i]
		defOp(&opcodeTable, base+0, names[i]+" Eb,Gb", true, 3, Tier8086, aluDirectEbGb(k))
		defOp(&opcodeTable, base+1, names[i]+" Ev,Gv", true, 3, Tier8086, aluDirectEvGv(k))
		defOp(&opcodeTable, base+2, names[i]+" Gb,Eb", true, 3, Tier8086, aluDirectGbEb(k))
		defOp(&opcodeTable, base+3, names[i]+" Gv,Ev", true, 3, Tier8086, aluDirectGvEv(k))
		defOp(&opcodeTable, base+4, names[i]+" AL,Ib", false, 4, Tier8086, aluDirectAlIb(k))
		defOp(&opcodeTable, base+5, names[i]+" eAX,Iv", false, 4, Tier8086, aluDirectAxIv(k))
	}
	// Segment-override and lock/rep prefixes (0x26/0x2E/0x36/0x3E/0xF0/0xF2/0xF3)
	// are consumed directly in Step()'s prefix loop, not via the table.

	defOp(&opcodeTable, 0x27, "DAA", false, 4, Tier8086, opDaa)
	defOp(&opcodeTable, 0x2F, "DAS", false, 4, Tier8086, opDas)
	defOp(&opcodeTable, 0x37, "AAA", false, 4, Tier8086, opAaa)
	defOp(&opcodeTable, 0x3F, "AAS", false, 4, Tier8086, opAas)

	for r := byte(0); r < 8; r++ {
		defOp(&opcodeTable, 0x40+r, "INC reg", false, 2, Tier8086, opIncReg(r))
		defOp(&opcodeTable, 0x48+r, "DEC reg", false, 2, Tier8086, opDecReg(r))
		defOp(&opcodeTable, 0x50+r, "PUSH reg", false, 11, Tier8086, opPushReg(r))
		defOp(&opcodeTable, 0x58+r, "POP reg", false, 8, Tier8086, opPopReg(r))
		defOp(&opcodeTable, 0xB0+r, "MOV reg8,Ib", false, 4, Tier8086, opMovRegImm8(r))
		defOp(&opcodeTable, 0xB8+r, "MOV reg16,Iv", false, 4, Tier8086, opMovRegImm16(r))
		defOp(&opcodeTable, 0x90+r, "XCHG AX,reg", false, 3, Tier8086, opXchgAxReg(r))
	}

	defOp(&opcodeTable, 0x60, "PUSHA", false, 19, TierV20, opPusha)
	defOp(&opcodeTable, 0x61, "POPA", false, 19, TierV20, opPopa)
	defOp(&opcodeTable, 0x62, "BOUND Gv,Ma", true, 13, TierV20, opBound)

	defOp(&opcodeTable, 0x68, "PUSH Iv", false, 11, TierV20, func(c *CPU, sys *System) { c.push16(c.fetchImm16()) })
	defOp(&opcodeTable, 0x69, "IMUL Gv,Ev,Iv", true, 21, TierV20, opImulR16EvIv)
	defOp(&opcodeTable, 0x6A, "PUSH Ib", false, 11, TierV20, func(c *CPU, sys *System) {
		c.push16(uint16(int16(int8(c.fetchImm8()))))
	})
	defOp(&opcodeTable, 0x6B, "IMUL Gv,Ev,Ib", true, 21, TierV20, opImulR16EvIb)
	defOp(&opcodeTable, 0x6C, "INSB", false, 5, TierV20, opIns8)
	defOp(&opcodeTable, 0x6D, "INSW", false, 5, TierV20, opIns16)
	defOp(&opcodeTable, 0x6E, "OUTSB", false, 5, TierV20, opOuts8)
	defOp(&opcodeTable, 0x6F, "OUTSW", false, 5, TierV20, opOuts16)

	jcc := [16]func(c *CPU) bool{testO, testNO, testC, testNC, testZ, testNZ, testBE, testA,
		testS, testNS, testP, testNP, testL, testGE, testLE, testG}
	for i, t := range jcc {
		defOp(&opcodeTable, byte(0x70+i), "Jcc", false, 4, Tier8086, condJump(t))
	}

	defOp(&opcodeTable, 0x80, "Grp1 Eb,Ib", true, 4, Tier8086, opGroup1Eb)
	defOp(&opcodeTable, 0x81, "Grp1 Ev,Iv", true, 4, Tier8086, opGroup1Ev)
	defOp(&opcodeTable, 0x82, "Grp1 Eb,Ib", true, 4, Tier8086, opGroup1Eb)
	defOp(&opcodeTable, 0x83, "Grp1 Ev,Ib", true, 4, Tier8086, opGroup1EvIb)

	defOp(&opcodeTable, 0x84, "TEST Eb,Gb", true, 3, Tier8086, opTestRM8Reg)
	defOp(&opcodeTable, 0x85, "TEST Ev,Gv", true, 3, Tier8086, opTestRM16Reg)
	defOp(&opcodeTable, 0x86, "XCHG Eb,Gb", true, 4, Tier8086, opXchgRM8Reg)
	defOp(&opcodeTable, 0x87, "XCHG Ev,Gv", true, 4, Tier8086, opXchgRM16Reg)
	defOp(&opcodeTable, 0x88, "MOV Eb,Gb", true, 2, Tier8086, opMovRM8Reg)
	defOp(&opcodeTable, 0x89, "MOV Ev,Gv", true, 2, Tier8086, opMovRM16Reg)
	defOp(&opcodeTable, 0x8A, "MOV Gb,Eb", true, 2, Tier8086, opMovRegRM8)
	defOp(&opcodeTable, 0x8B, "MOV Gv,Ev", true, 2, Tier8086, opMovRegRM16)
	defOp(&opcodeTable, 0x8C, "MOV Ev,Sreg", true, 2, Tier8086, opMovRMSreg)
	defOp(&opcodeTable, 0x8D, "LEA Gv,M", true, 2, Tier8086, opLea)
	defOp(&opcodeTable, 0x8E, "MOV Sreg,Ev", true, 2, Tier8086, opMovSregRM)
	defOp(&opcodeTable, 0x8F, "POP Ev", true, 8, Tier8086, opPopRM16)

	defOp(&opcodeTable, 0x98, "CBW", false, 2, Tier8086, func(c *CPU, sys *System) {
		c.AX = uint16(int16(int8(byte(c.AX))))
	})
	defOp(&opcodeTable, 0x99, "CWD", false, 5, Tier8086, func(c *CPU, sys *System) {
		if int16(c.AX) < 0 {
			c.DX = 0xFFFF
		} else {
			c.DX = 0
		}
	})
	defOp(&opcodeTable, 0x9A, "CALL ptr16:16", false, 28, Tier8086, opCallFar)
	defOp(&opcodeTable, 0x9B, "WAIT", false, 4, Tier8086, opNop)
	defOp(&opcodeTable, 0x9C, "PUSHF", false, 10, Tier8086, opPushF)
	defOp(&opcodeTable, 0x9D, "POPF", false, 8, Tier8086, opPopF)
	defOp(&opcodeTable, 0x9E, "SAHF", false, 4, Tier8086, opSahf)
	defOp(&opcodeTable, 0x9F, "LAHF", false, 4, Tier8086, opLahf)

	defOp(&opcodeTable, 0xA0, "MOV AL,moffs8", false, 10, Tier8086, opMovAlMoffs)
	defOp(&opcodeTable, 0xA1, "MOV AX,moffs16", false, 10, Tier8086, opMovAxMoffs)
	defOp(&opcodeTable, 0xA2, "MOV moffs8,AL", false, 10, Tier8086, opMovMoffsAl)
	defOp(&opcodeTable, 0xA3, "MOV moffs16,AX", false, 10, Tier8086, opMovMoffsAx)
	defOp(&opcodeTable, 0xA4, "MOVSB", false, 18, Tier8086, opMovsb)
	defOp(&opcodeTable, 0xA5, "MOVSW", false, 18, Tier8086, opMovsw)
	defOp(&opcodeTable, 0xA6, "CMPSB", false, 22, Tier8086, opCmpsb)
	defOp(&opcodeTable, 0xA7, "CMPSW", false, 22, Tier8086, opCmpsw)
	defOp(&opcodeTable, 0xA8, "TEST AL,Ib", false, 4, Tier8086, opTestAlImm8)
	defOp(&opcodeTable, 0xA9, "TEST AX,Iv", false, 4, Tier8086, opTestAxImm16)
	defOp(&opcodeTable, 0xAA, "STOSB", false, 11, Tier8086, opStosb)
	defOp(&opcodeTable, 0xAB, "STOSW", false, 11, Tier8086, opStosw)
	defOp(&opcodeTable, 0xAC, "LODSB", false, 12, Tier8086, opLodsb)
	defOp(&opcodeTable, 0xAD, "LODSW", false, 12, Tier8086, opLodsw)
	defOp(&opcodeTable, 0xAE, "SCASB", false, 15, Tier8086, opScasb)
	defOp(&opcodeTable, 0xAF, "SCASW", false, 15, Tier8086, opScasw)

	defOp(&opcodeTable, 0xC0, "Grp2 Eb,Ib", true, 5, TierV20, opGroup2EbImm)
	defOp(&opcodeTable, 0xC1, "Grp2 Ev,Ib", true, 5, TierV20, opGroup2EvImm)
	defOp(&opcodeTable, 0xC2, "RET Iv", false, 16, Tier8086, opRetNearImm)
	defOp(&opcodeTable, 0xC3, "RET", false, 8, Tier8086, opRetNear)
	defOp(&opcodeTable, 0xC4, "LES Gv,Mp", true, 16, Tier8086, opLes)
	defOp(&opcodeTable, 0xC5, "LDS Gv,Mp", true, 16, Tier8086, opLds)
	defOp(&opcodeTable, 0xC6, "MOV Eb,Ib", true, 4, Tier8086, opMovRM8Imm8)
	defOp(&opcodeTable, 0xC7, "MOV Ev,Iv", true, 4, Tier8086, opMovRM16Imm16)
	defOp(&opcodeTable, 0xC8, "ENTER Iw,Ib", false, 15, TierV20, opEnter)
	defOp(&opcodeTable, 0xC9, "LEAVE", false, 5, TierV20, opLeave)
	defOp(&opcodeTable, 0xCA, "RETF Iv", false, 17, Tier8086, opRetFarImm)
	defOp(&opcodeTable, 0xCB, "RETF", false, 18, Tier8086, opRetFar)
	defOp(&opcodeTable, 0xCC, "INT3", false, 52, Tier8086, opInt3)
	defOp(&opcodeTable, 0xCD, "INT Ib", false, 51, Tier8086, opIntImm8)
	defOp(&opcodeTable, 0xCE, "INTO", false, 53, Tier8086, opInto)
	defOp(&opcodeTable, 0xCF, "IRET", false, 24, Tier8086, opIret)

	defOp(&opcodeTable, 0xD0, "Grp2 Eb,1", true, 2, Tier8086, opGroup2Eb1)
	defOp(&opcodeTable, 0xD1, "Grp2 Ev,1", true, 2, Tier8086, opGroup2Ev1)
	defOp(&opcodeTable, 0xD2, "Grp2 Eb,CL", true, 8, Tier8086, opGroup2EbCL)
	defOp(&opcodeTable, 0xD3, "Grp2 Ev,CL", true, 8, Tier8086, opGroup2EvCL)
	defOp(&opcodeTable, 0xD4, "AAM", false, 83, Tier8086, opAam)
	defOp(&opcodeTable, 0xD5, "AAD", false, 60, Tier8086, opAad)
	defOp(&opcodeTable, 0xD7, "XLAT", false, 11, Tier8086, opXlat)
	// x87 escapes: the ModR/M operand is decoded, then the instruction
	// faults with coprocessor-not-available at its own CS:IP.
	for op := 0xD8; op <= 0xDF; op++ {
		defOp(&opcodeTable, byte(op), "ESC", true, 2, Tier8086, func(c *CPU, sys *System) {
			c.CS, c.IP = c.faultCS, c.faultIP
			c.RaiseException(sys, ExcDeviceNotAvail)
		})
	}

	defOp(&opcodeTable, 0xE0, "LOOPNE", false, 5, Tier8086, opLoopNE)
	defOp(&opcodeTable, 0xE1, "LOOPE", false, 5, Tier8086, opLoopE)
	defOp(&opcodeTable, 0xE2, "LOOP", false, 5, Tier8086, opLoop)
	defOp(&opcodeTable, 0xE3, "JCXZ", false, 6, Tier8086, opJcxz)
	defOp(&opcodeTable, 0xE4, "IN AL,Ib", false, 10, Tier8086, opInAlImm8)
	defOp(&opcodeTable, 0xE5, "IN AX,Ib", false, 10, Tier8086, opInAxImm8)
	defOp(&opcodeTable, 0xE6, "OUT Ib,AL", false, 10, Tier8086, opOutImm8Al)
	defOp(&opcodeTable, 0xE7, "OUT Ib,AX", false, 10, Tier8086, opOutImm8Ax)
	defOp(&opcodeTable, 0xE8, "CALL Jv", false, 19, Tier8086, opCallRel16)
	defOp(&opcodeTable, 0xE9, "JMP Jv", false, 15, Tier8086, opJmpRel16)
	defOp(&opcodeTable, 0xEA, "JMP ptr16:16", false, 15, Tier8086, opJmpFar)
	defOp(&opcodeTable, 0xEB, "JMP Jb", false, 15, Tier8086, opJmpRel8)
	defOp(&opcodeTable, 0xEC, "IN AL,DX", false, 8, Tier8086, opInAlDx)
	defOp(&opcodeTable, 0xED, "IN AX,DX", false, 8, Tier8086, opInAxDx)
	defOp(&opcodeTable, 0xEE, "OUT DX,AL", false, 8, Tier8086, opOutDxAl)
	defOp(&opcodeTable, 0xEF, "OUT DX,AX", false, 8, Tier8086, opOutDxAx)

	defOp(&opcodeTable, 0xF4, "HLT", false, 2, Tier8086, opHlt)
	defOp(&opcodeTable, 0xF5, "CMC", false, 2, Tier8086, opCmc)
	defOp(&opcodeTable, 0xF6, "Grp3 Eb", true, 3, Tier8086, opGroup3Eb)
	defOp(&opcodeTable, 0xF7, "Grp3 Ev", true, 3, Tier8086, opGroup3Ev)
	defOp(&opcodeTable, 0xF8, "CLC", false, 2, Tier8086, opClc)
	defOp(&opcodeTable, 0xF9, "STC", false, 2, Tier8086, opStc)
	defOp(&opcodeTable, 0xFA, "CLI", false, 2, Tier8086, opCli)
	defOp(&opcodeTable, 0xFB, "STI", false, 2, Tier8086, opSti)
	defOp(&opcodeTable, 0xFC, "CLD", false, 2, Tier8086, opCld)
	defOp(&opcodeTable, 0xFD, "STD", false, 2, Tier8086, opStd)
	defOp(&opcodeTable, 0xFE, "Grp5 Eb", true, 2, Tier8086, opGroup5Eb)
	defOp(&opcodeTable, 0xFF, "Grp5 Ev", true, 2, Tier8086, opGroup5Ev)

	pushSreg := []struct {
		op byte
		s  seg
	}{{0x06, segRegES}, {0x0E, segRegCS}, {0x16, segRegSS}, {0x1E, segRegDS}}
	popSreg := []struct {
		op byte
		s  seg
	}{{0x07, segRegES}, {0x17, segRegSS}, {0x1F, segRegDS}}
	for _, e := range pushSreg {
		defOp(&opcodeTable, e.op, "PUSH Sreg", false, 10, Tier8086, opPushSreg(e.s))
	}
	for _, e := range popSreg {
		defOp(&opcodeTable, e.op, "POP Sreg", false, 8, Tier8086, opPopSreg(e.s))
	}

	defOp(&opcodeTable, 0x0F, "2-byte escape", false, 0, Tier80286, nil)
}

func initExtendedOps() {
	defOp(&ext0FTable, 0x00, "Grp6", true, 11, Tier80286, op0FGrp6)
	defOp(&ext0FTable, 0x01, "Grp7", true, 11, Tier80286, op0FGrp7)
	defOp(&ext0FTable, 0x02, "LAR Gv,Ew", true, 14, Tier80286, opLar)
	defOp(&ext0FTable, 0x03, "LSL Gv,Ew", true, 14, Tier80286, opLsl)
	defOp(&ext0FTable, 0x06, "CLTS", false, 2, Tier80286, opClts)
}

// op0FGrp6 dispatches SLDT/STR/LLDT/LTR/VERR/VERW by ModR/M's reg field.
func op0FGrp6(c *CPU, sys *System) {
	switch c.addrMode.reg {
	case 0:
		opSldt(c, sys)
	case 1:
		opStr(c, sys)
	case 2:
		opLldt(c, sys)
	case 3:
		opLtr(c, sys)
	case 4:
		opVerr(c, sys)
	case 5:
		opVerw(c, sys)
	}
}

// op0FGrp7 dispatches SGDT/SIDT/LGDT/LIDT/SMSW/LMSW by ModR/M's reg field.
func op0FGrp7(c *CPU, sys *System) {
	switch c.addrMode.reg {
	case 0:
		opSgdt(c, sys)
	case 1:
		opSidt(c, sys)
	case 2:
		opLgdt(c, sys)
	case 3:
		opLidt(c, sys)
	case 4:
		opSmsw(c, sys)
	case 6:
		opLmsw(c, sys)
	}
}

func opSgdt(c *CPU, sys *System) {
	addr := c.effectiveLinearAddress()
	c.bus.WriteWord(addr, c.GDTR.Limit)
	c.bus.WriteByte(addr+2, byte(c.GDTR.Base))
	c.bus.WriteByte(addr+3, byte(c.GDTR.Base>>8))
	c.bus.WriteByte(addr+4, byte(c.GDTR.Base>>16))
}

func opSidt(c *CPU, sys *System) {
	addr := c.effectiveLinearAddress()
	c.bus.WriteWord(addr, c.IDTR.Limit)
	c.bus.WriteByte(addr+2, byte(c.IDTR.Base))
	c.bus.WriteByte(addr+3, byte(c.IDTR.Base>>8))
	c.bus.WriteByte(addr+4, byte(c.IDTR.Base>>16))
}
