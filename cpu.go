// cpu.go - register file, flags word, CPU state bundle

package vxt

// Flag bit positions at their canonical 8086 locations within the
// 16-bit flags word.
const (
	FlagC = 1 << 0
	FlagP = 1 << 2
	FlagA = 1 << 4
	FlagZ = 1 << 6
	FlagS = 1 << 7
	FlagT = 1 << 8
	FlagI = 1 << 9
	FlagD = 1 << 10
	FlagO = 1 << 11

	// flagsReservedOn are bits that always read as set; flagsReservedSet
	// is the upper nibble, which follows the 8086 convention of reading
	// as 1s.
	flagsReservedOn  = 1 << 1
	flagsReservedSet = 0xF000
)

// Tier gates which opcode families are available to the decoder.
type Tier int

const (
	Tier8086 Tier = iota
	TierV20
	Tier80286
)

// TableReg is a descriptor-table pointer: a linear base and a limit.
type TableReg struct {
	Base  uint32
	Limit uint16
}

// Registers is the architectural register file, exported for the
// monitor table and validator snapshots.
type Registers struct {
	AX, BX, CX, DX uint16
	SP, BP, SI, DI uint16
	CS, SS, DS, ES uint16
	IP             uint16
	Flags          uint16
	TR, LDTR       uint16
	GDTR, IDTR     TableReg
}

// repMode is the active REP-family prefix, if any.
type repMode int

const (
	repNone repMode = iota
	repE            // REPE/REPZ
	repNE           // REPNE/REPNZ
)

// segOverride names the active segment-override prefix, if any.
type segOverride int

const (
	segNone segOverride = iota
	segES
	segCS
	segSS
	segDS
)

// addressMode is the decoded ModR/M state.
type addressMode struct {
	mod  byte
	reg  byte
	rm   byte
	disp uint16
	// isMemory is false when mod==3 (rm names a register, not memory).
	isMemory bool
}

// CPU is the 8088/V20/80286-tier core: registers plus the transient
// state a single Step() call threads through decode and execution.
type CPU struct {
	Registers

	tier Tier
	bus  *Bus

	// transient per-instruction decode state
	opcode   byte
	rep      repMode
	override segOverride
	addrMode addressMode

	prefetch        prefetchQueue
	PrefetchEnabled bool

	descriptors segDescriptors

	cycles       uint64 // running lifetime cycle counter
	busTransfers int    // bus transfers charged to the current instruction

	halted       bool
	trap         bool // TF was set at the start of the current instruction
	prevTrapSet  bool // previous instruction itself set TF
	int28        bool
	invalidOpGen bool // #UD raised during the current step() call
	inhibitIRQ   bool // set by a segment-register MOV/POP; skips the next Step's IRQ poll

	picIndex int // cached peripheral index of the PIC, 0 if none

	faultCS, faultIP uint16 // instruction-start CS:IP, restored on re-executed faults
	prefixStartIP    uint16 // IP at the start of the REP/override prefix run

	Tracer    Tracer
	Validator Validator
}

// NewCPU constructs a CPU bound to bus, at the given emulated tier.
func NewCPU(bus *Bus, tier Tier) *CPU {
	c := &CPU{tier: tier, bus: bus}
	c.Reset()
	return c
}

// Reset restores the CPU to the power-on/reset state: CS:IP at the
// reset vector F000:FFF0, flags with only the reserved bits set, the
// prefetch queue empty and not halted. Idempotent.
func (c *CPU) Reset() {
	c.Registers = Registers{
		CS:    0xF000,
		IP:    0xFFF0,
		Flags: flagsReservedOn | flagsReservedSet,
	}
	c.opcode = 0
	c.rep = repNone
	c.override = segNone
	c.addrMode = addressMode{}
	c.prefetch.reset()
	c.busTransfers = 0
	c.halted = false
	c.trap = false
	c.prevTrapSet = false
	c.int28 = false
	c.invalidOpGen = false
	c.inhibitIRQ = false
}

// Tier reports the emulated CPU tier.
func (c *CPU) Tier() Tier { return c.tier }

// Halted reports whether the CPU is parked by HLT.
func (c *CPU) Halted() bool { return c.halted }

func (c *CPU) flagSet(mask uint16) bool { return c.Flags&mask != 0 }

func (c *CPU) setFlag(mask uint16, v bool) {
	if v {
		c.Flags |= mask
	} else {
		c.Flags &^= mask
	}
}

// defaultSeg resolves the effective segment register for a memory
// reference given the decoded address mode and any override prefix,
// applying the SS-for-BP default per §4.8.
func (c *CPU) defaultSeg() uint16 {
	if c.override != segNone {
		return c.segValue(c.override)
	}
	if c.addrMode.usesBP() {
		return c.SS
	}
	return c.DS
}

func (c *CPU) segValue(s segOverride) uint16 {
	switch s {
	case segES:
		return c.ES
	case segCS:
		return c.CS
	case segSS:
		return c.SS
	case segDS:
		return c.DS
	default:
		return c.DS
	}
}

// usesBP reports whether the decoded rm formula is BP-based: the
// register-indirect forms [BP+SI]/[BP+DI]/[BP] (mod 1/2 with rm==6),
// per the effective-address table in §4.8.
func (a addressMode) usesBP() bool {
	if !a.isMemory {
		return false
	}
	switch a.rm {
	case 2, 3: // [BP+SI], [BP+DI]
		return true
	case 6: // [BP] when mod != 0 (mod==0,rm==6 is disp16, not BP-based)
		return a.mod != 0
	}
	return false
}
