// cpu_ops_286.go - 80286 segment-level protected-mode additions

package vxt

// MSW bits relevant at the segment-decode level this core implements;
// there is no paging MMU and no privilege-level enforcement beyond
// descriptor field decoding.
const (
	mswPE = 1 << 0 // protection enable
	mswTS = 1 << 3 // task switched
)

func opLmsw(c *CPU, sys *System) {
	v := c.readRM16()
	sys.MSW = sys.MSW&^0xF | v&0xF
	sys.ProtectedMode = sys.MSW&mswPE != 0
}

func opSmsw(c *CPU, sys *System) { c.writeRM16(sys.MSW) }

func opClts(c *CPU, sys *System) { sys.MSW &^= mswTS }

func opLgdt(c *CPU, sys *System) {
	addr := c.effectiveLinearAddress()
	limit := c.bus.ReadWord(addr)
	base := uint32(c.bus.ReadByte(addr+2)) | uint32(c.bus.ReadByte(addr+3))<<8 |
		uint32(c.bus.ReadByte(addr+4))<<16
	c.GDTR = TableReg{Base: base, Limit: limit}
}

func opLidt(c *CPU, sys *System) {
	addr := c.effectiveLinearAddress()
	limit := c.bus.ReadWord(addr)
	base := uint32(c.bus.ReadByte(addr+2)) | uint32(c.bus.ReadByte(addr+3))<<8 |
		uint32(c.bus.ReadByte(addr+4))<<16
	c.IDTR = TableReg{Base: base, Limit: limit}
}

func opLldt(c *CPU, sys *System) { c.LDTR = c.readRM16() }
func opSldt(c *CPU, sys *System) { c.writeRM16(c.LDTR) }
func opLtr(c *CPU, sys *System)  { c.TR = c.readRM16() }
func opStr(c *CPU, sys *System)  { c.writeRM16(c.TR) }

// descAccessByte fetches the access byte (offset 5) of the GDT/LDT
// entry named by selector, for LAR/LSL/VERR/VERW.
func (c *CPU) descAccessByte(selector uint16) (byte, uint16, bool) {
	ti := selector & 0x4
	index := uint32(selector>>3) * 8
	var tableBase uint32
	var tableLimit uint16
	if ti != 0 {
		tableBase, tableLimit = uint32(c.LDTR)<<4, 0xFFFF
	} else {
		tableBase, tableLimit = c.GDTR.Base, c.GDTR.Limit
	}
	if index+7 > uint32(tableLimit) {
		return 0, 0, false
	}
	access := c.bus.ReadByte(tableBase + index + 5)
	limLo := c.bus.ReadByte(tableBase + index)
	limHi := c.bus.ReadByte(tableBase + index + 1)
	return access, uint16(limLo) | uint16(limHi)<<8, true
}

func opLar(c *CPU, sys *System) {
	sel := c.readRM16()
	access, _, ok := c.descAccessByte(sel)
	if !ok {
		c.setFlag(FlagZ, false)
		return
	}
	c.regWrite16(c.addrMode.reg, uint16(access)<<8)
	c.setFlag(FlagZ, true)
}

func opLsl(c *CPU, sys *System) {
	sel := c.readRM16()
	_, limit, ok := c.descAccessByte(sel)
	if !ok {
		c.setFlag(FlagZ, false)
		return
	}
	c.regWrite16(c.addrMode.reg, limit)
	c.setFlag(FlagZ, true)
}

func opVerr(c *CPU, sys *System) {
	sel := c.readRM16()
	access, _, ok := c.descAccessByte(sel)
	c.setFlag(FlagZ, ok && access&0x80 != 0)
}

func opVerw(c *CPU, sys *System) {
	sel := c.readRM16()
	access, _, ok := c.descAccessByte(sel)
	// Writable data segments only: system bit set, type bit 3 (code)
	// clear, type bit 1 (write) set.
	c.setFlag(FlagZ, ok && access&0x80 != 0 && access&0x10 != 0 && access&0x8 == 0 && access&0x2 != 0)
}
