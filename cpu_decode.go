// cpu_decode.go - opcode table, ModR/M decode, effective address, dispatcher

package vxt

import "encoding/binary"

// opcodeEntry describes one byte of the 256-entry opcode table: its
// mnemonic, whether ModR/M follows, its static base cycle cost, the
// architecture tier that gates it, and its executor.
type opcodeEntry struct {
	mnemonic string
	hasModRM bool
	cycles   int
	tier     Tier
	exec     func(c *CPU, sys *System)
}

const invalidTier = Tier(99)

var opcodeTable [256]opcodeEntry
var ext0FTable [256]opcodeEntry

func defOp(table *[256]opcodeEntry, opcode byte, mnemonic string, hasModRM bool, cycles int, tier Tier, exec func(c *CPU, sys *System)) {
	table[opcode] = opcodeEntry{mnemonic: mnemonic, hasModRM: hasModRM, cycles: cycles, tier: tier, exec: exec}
}

func undefinedOpcode(c *CPU, sys *System) {
	c.invalidOpGen = true
	startCS, startIP := c.faultCS, c.faultIP
	c.CS, c.IP = startCS, startIP
	c.RaiseException(sys, ExcInvalidOpcode)
}

func init() {
	for i := range opcodeTable {
		opcodeTable[i] = opcodeEntry{mnemonic: "??", cycles: 2, tier: Tier8086, exec: undefinedOpcode}
	}
	for i := range ext0FTable {
		ext0FTable[i] = opcodeEntry{mnemonic: "??", cycles: 2, tier: Tier80286, exec: undefinedOpcode}
	}
	initBaseOps()
	initExtendedOps()
}

// decodeModRM reads the ModR/M byte (and, where applicable, a
// trailing displacement) and fills c.addrMode. Whether rm names an 8-
// or 16-bit register when mod==3 is decided by the executor's choice of
// readRM8/readRM16, not recorded in the addressMode itself.
func (c *CPU) decodeModRM() {
	b := c.fetchCodeByte()
	mod := b >> 6
	reg := (b >> 3) & 0x7
	rm := b & 0x7

	a := addressMode{mod: mod, reg: reg, rm: rm}
	if mod == 3 {
		c.addrMode = a
		return
	}
	a.isMemory = true
	switch {
	case mod == 0 && rm == 6:
		lo := c.fetchCodeByte()
		hi := c.fetchCodeByte()
		a.disp = uint16(lo) | uint16(hi)<<8
	case mod == 1:
		d := c.fetchCodeByte()
		a.disp = uint16(int16(int8(d)))
	case mod == 2:
		lo := c.fetchCodeByte()
		hi := c.fetchCodeByte()
		a.disp = uint16(lo) | uint16(hi)<<8
	}
	c.addrMode = a
}

// effectiveAddress16 computes the 16-bit offset per the rm formula
// table in §4.8: [BX+SI], [BX+DI], [BP+SI], [BP+DI], [SI], [DI],
// [BP]/disp16, [BX].
func (c *CPU) effectiveAddress16() uint16 {
	a := c.addrMode
	if a.mod == 0 && a.rm == 6 {
		return a.disp
	}
	var base uint16
	switch a.rm {
	case 0:
		base = c.BX + c.SI
	case 1:
		base = c.BX + c.DI
	case 2:
		base = c.BP + c.SI
	case 3:
		base = c.BP + c.DI
	case 4:
		base = c.SI
	case 5:
		base = c.DI
	case 6:
		base = c.BP
	case 7:
		base = c.BX
	}
	return base + a.disp
}

// effectiveLinearAddress applies the default-segment rule (SS for
// BP-based references, unless a segment override is active) on top of
// the 16-bit offset.
func (c *CPU) effectiveLinearAddress() uint32 {
	seg := c.defaultSeg()
	return c.linear(seg, c.effectiveAddress16())
}

func (c *CPU) regRead8(n byte) byte {
	switch n {
	case 0:
		return byte(c.AX)
	case 1:
		return byte(c.CX)
	case 2:
		return byte(c.DX)
	case 3:
		return byte(c.BX)
	case 4:
		return byte(c.AX >> 8)
	case 5:
		return byte(c.CX >> 8)
	case 6:
		return byte(c.DX >> 8)
	case 7:
		return byte(c.BX >> 8)
	}
	return 0
}

func (c *CPU) regWrite8(n byte, v byte) {
	switch n {
	case 0:
		c.AX = c.AX&0xFF00 | uint16(v)
	case 1:
		c.CX = c.CX&0xFF00 | uint16(v)
	case 2:
		c.DX = c.DX&0xFF00 | uint16(v)
	case 3:
		c.BX = c.BX&0xFF00 | uint16(v)
	case 4:
		c.AX = c.AX&0x00FF | uint16(v)<<8
	case 5:
		c.CX = c.CX&0x00FF | uint16(v)<<8
	case 6:
		c.DX = c.DX&0x00FF | uint16(v)<<8
	case 7:
		c.BX = c.BX&0x00FF | uint16(v)<<8
	}
}

func (c *CPU) regRead16(n byte) uint16 {
	switch n {
	case 0:
		return c.AX
	case 1:
		return c.CX
	case 2:
		return c.DX
	case 3:
		return c.BX
	case 4:
		return c.SP
	case 5:
		return c.BP
	case 6:
		return c.SI
	case 7:
		return c.DI
	}
	return 0
}

func (c *CPU) regWrite16(n byte, v uint16) {
	switch n {
	case 0:
		c.AX = v
	case 1:
		c.CX = v
	case 2:
		c.DX = v
	case 3:
		c.BX = v
	case 4:
		c.SP = v
	case 5:
		c.BP = v
	case 6:
		c.SI = v
	case 7:
		c.DI = v
	}
}

func (c *CPU) segRegRead(n byte) uint16 {
	switch n & 0x3 {
	case 0:
		return c.ES
	case 1:
		return c.CS
	case 2:
		return c.SS
	default:
		return c.DS
	}
}

func (c *CPU) readRM8() byte {
	if c.addrMode.isMemory {
		return c.bus.ReadByte(c.effectiveLinearAddress())
	}
	return c.regRead8(c.addrMode.rm)
}

func (c *CPU) writeRM8(v byte) {
	if c.addrMode.isMemory {
		c.bus.WriteByte(c.effectiveLinearAddress(), v)
		return
	}
	c.regWrite8(c.addrMode.rm, v)
}

func (c *CPU) readRM16() uint16 {
	if c.addrMode.isMemory {
		return c.bus.ReadWord(c.effectiveLinearAddress())
	}
	return c.regRead16(c.addrMode.rm)
}

func (c *CPU) writeRM16(v uint16) {
	if c.addrMode.isMemory {
		c.bus.WriteWord(c.effectiveLinearAddress(), v)
		return
	}
	c.regWrite16(c.addrMode.rm, v)
}

func (c *CPU) fetchImm8() byte  { return c.fetchCodeByte() }
func (c *CPU) fetchImm16() uint16 {
	lo := c.fetchCodeByte()
	hi := c.fetchCodeByte()
	return binary.LittleEndian.Uint16([]byte{lo, hi})
}

// Step does one of three things: if IF is set and a maskable IRQ is
// pending, it services the IRQ and returns 0 without executing an
// instruction; otherwise, if halted, it consumes one cycle; otherwise
// it decodes and executes exactly one instruction and returns the
// cycles charged to it.
func (c *CPU) Step(sys *System) int {
	c.prevTrapSet = c.trap
	c.trap = c.flagSet(FlagT)

	// A segment-register MOV/POP in the previous instruction opens an
	// interrupt shadow: the maskable-IRQ poll is skipped exactly once
	// (§4.9/§4.10), so MOV SS,x / MOV SP,y can't be split by an IRQ.
	if c.inhibitIRQ {
		c.inhibitIRQ = false
	} else if c.pollIRQ(sys) {
		return 0
	}
	if c.halted {
		return 1
	}

	if sys.Validator != nil {
		sys.Validator.Begin(c.Registers)
	}

	c.busTransfers = 0
	c.rep = repNone
	c.override = segNone
	c.faultCS, c.faultIP = c.CS, c.IP
	c.prefixStartIP = c.IP

	cycles := 0
	deferTrapCheck := false

prefixLoop:
	for {
		op := c.fetchCodeByte()
		switch op {
		case 0x26:
			c.override = segES
			cycles += 2
			continue prefixLoop
		case 0x2E:
			c.override = segCS
			cycles += 2
			continue prefixLoop
		case 0x36:
			c.override = segSS
			cycles += 2
			continue prefixLoop
		case 0x3E:
			c.override = segDS
			cycles += 2
			continue prefixLoop
		case 0xF0:
			// LOCK: the core has no other bus master to arbitrate
			// against, so it is consumed as a no-op.
			cycles += 2
			continue prefixLoop
		case 0xF2:
			c.rep = repNE
			cycles += 2
			continue prefixLoop
		case 0xF3:
			c.rep = repE
			cycles += 2
			continue prefixLoop
		default:
			c.opcode = op
			break prefixLoop
		}
	}

	entry := &opcodeTable[c.opcode]
	if c.opcode == 0x0F && c.tier >= Tier80286 {
		sub := c.fetchCodeByte()
		entry = &ext0FTable[sub]
	}

	if entry.tier > c.tier {
		undefinedOpcode(c, sys)
		cycles += entry.cycles
		c.endInstruction()
		return cycles
	}

	if entry.hasModRM {
		c.decodeModRM()
	}

	// MOV/POP to a segment register inhibits interrupt recognition
	// (both the single-step trap and the maskable-IRQ poll) until
	// after the following instruction (§4.9).
	if c.opcode == 0x8E || c.opcode == 0x07 || c.opcode == 0x17 || c.opcode == 0x1F {
		deferTrapCheck = true
		c.inhibitIRQ = true
	}

	entry.exec(c, sys)
	cycles += entry.cycles

	c.endInstruction()
	if c.PrefetchEnabled && c.busTransfers < cycles/2 {
		c.refillPrefetch()
	}
	if !deferTrapCheck {
		c.checkSingleStepTrap(sys)
	}

	if sys.Validator != nil {
		sys.Validator.End(InstrEvent{Mnemonic: entry.mnemonic, Opcode: c.opcode, HasModRM: entry.hasModRM, Cycles: cycles, Registers: c.Registers})
	}

	c.cycles += uint64(cycles)
	return cycles
}
