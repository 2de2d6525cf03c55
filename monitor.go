// monitor.go - monitor table and disassembly helper

package vxt

import (
	"fmt"

	"golang.org/x/arch/x86/x86asm"
)

// SizeTag names the width of a monitored value.
type SizeTag int

const (
	SizeByte SizeTag = iota
	SizeWord
	SizeDword
	SizeQword
)

// FormatTag names how a front-end should render a monitored value.
type FormatTag int

const (
	FormatHex FormatTag = iota
	FormatDecimal
	FormatBinary
	FormatReal
)

// MonitorEntry is one row of the introspection surface: which owner
// (a peripheral name, or "CPU"), a label, a reader for the live value,
// a size tag and a format tag. Pure metadata; read-only from the
// core's perspective after install.
type MonitorEntry struct {
	Owner  string
	Label  string
	Read   func() uint64
	Size   SizeTag
	Format FormatTag
}

// monitorTable is the read-only-after-install registration surface
// described in §4.4.
type monitorTable struct {
	entries []MonitorEntry
}

func newMonitorTable() *monitorTable { return &monitorTable{} }

// Register adds an entry. Peripherals call this during Install; the
// core pre-registers the architectural registers itself.
func (m *monitorTable) Register(e MonitorEntry) {
	m.entries = append(m.entries, e)
}

// Entries returns the full table for front-end debuggers.
func (m *monitorTable) Entries() []MonitorEntry {
	out := make([]MonitorEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// registerCPU pre-registers the architectural registers, matching
// debug_cpu_x86.go's GetRegisters() register-dump shape in the
// teacher, generalized to this table's (owner,label,reader) record.
func (m *monitorTable) registerCPU(c *CPU) {
	reg16 := func(label string, get func() uint16) {
		m.Register(MonitorEntry{Owner: "CPU", Label: label, Size: SizeWord, Format: FormatHex,
			Read: func() uint64 { return uint64(get()) }})
	}
	reg16("AX", func() uint16 { return c.AX })
	reg16("BX", func() uint16 { return c.BX })
	reg16("CX", func() uint16 { return c.CX })
	reg16("DX", func() uint16 { return c.DX })
	reg16("SP", func() uint16 { return c.SP })
	reg16("BP", func() uint16 { return c.BP })
	reg16("SI", func() uint16 { return c.SI })
	reg16("DI", func() uint16 { return c.DI })
	reg16("CS", func() uint16 { return c.CS })
	reg16("SS", func() uint16 { return c.SS })
	reg16("DS", func() uint16 { return c.DS })
	reg16("ES", func() uint16 { return c.ES })
	reg16("IP", func() uint16 { return c.IP })
	reg16("FLAGS", func() uint16 { return c.Flags })
}

// Disassemble decodes one real-mode (16-bit) instruction at the head
// of code, returning a human-readable line. Built on x86asm rather
// than the core's own opcode table: disassembly and execution are
// independent concerns, and x86asm already covers 8086/80286
// encodings correctly.
func Disassemble(code []byte, linearAddr uint32) (string, int, error) {
	inst, err := x86asm.Decode(code, 16)
	if err != nil {
		return "", 0, err
	}
	return fmt.Sprintf("%05X: %s", linearAddr, x86asm.GNUSyntax(inst, uint64(linearAddr), nil)), inst.Len, nil
}
