// bus.go - memory map, I/O map, A20 gate, extended memory

package vxt

import "encoding/binary"

const (
	paragraphSize = 16
	paragraphs    = 0x10000 // 65,536 paragraphs cover the 20-bit space
	ioPorts       = 0x10000
	realModeLimit = 1 << 20 // 1 MiB
	maxExtMemory  = 16 << 20
)

// onTransfer is called once per bus transaction, after the dummy/peripheral
// dispatch, to update the CPU's bus-transfer counter and notify the
// validator. Wired by System at construction so the bus itself never
// needs a back-reference to the CPU.
type onTransfer func(addr uint32, value byte, isWrite bool)

// Bus maps a 20-bit address to one of up to 255 peripherals and a
// 16-bit I/O port to one of up to 255 peripherals, dispatching byte
// reads/writes and owning optional extended memory directly.
type Bus struct {
	reg *registry

	memMap [paragraphs]byte // paragraph -> peripheral index
	ioMap  [ioPorts]byte    // port -> peripheral index

	a20    bool // true: A20 enabled (address passes through unmasked)
	extMem []byte

	onTransfer onTransfer
	logger     Logger
}

// NewBus constructs an empty bus: every paragraph and port routed to
// the dummy peripheral, A20 enabled, and no extended memory.
func NewBus() *Bus {
	return &Bus{
		reg:    newRegistry(),
		a20:    true,
		logger: discardLogger{},
	}
}

// SetExtendedMemory configures 0-16 MiB of memory above the 1 MiB
// real-mode boundary.
func (b *Bus) SetExtendedMemory(size int) {
	if size < 0 {
		size = 0
	}
	if size > maxExtMemory {
		size = maxExtMemory
	}
	b.extMem = make([]byte, size)
}

// SetA20 sets the A20 gate. When false, bit 20 of every incoming
// address is masked to zero.
func (b *Bus) SetA20(enabled bool) { b.a20 = enabled }

func (b *Bus) maskA20(addr uint32) uint32 {
	if !b.a20 {
		addr &^= 1 << 20
	}
	return addr
}

// InstallPort claims a single I/O port for peripheral index idx. The
// last installer for a given port wins.
func (b *Bus) InstallPort(idx int, port uint16) {
	b.ioMap[port] = byte(idx)
}

// InstallPortRange claims a contiguous I/O range [first, last].
func (b *Bus) InstallPortRange(idx int, first, last uint16) {
	for p := uint32(first); p <= uint32(last); p++ {
		b.ioMap[uint16(p)] = byte(idx)
	}
}

// InstallMemory claims a contiguous paragraph-aligned memory range,
// given as byte addresses. Misalignment at either end is a hard error.
func (b *Bus) InstallMemory(idx int, startAddr, endAddr uint32) error {
	if startAddr%paragraphSize != 0 || (endAddr+1)%paragraphSize != 0 {
		return ErrMisalignedInstall
	}
	first := startAddr / paragraphSize
	last := endAddr / paragraphSize
	for p := first; p <= last; p++ {
		b.memMap[p] = byte(idx)
	}
	return nil
}

// ReadByte resolves addr through the A20 mask, extended memory, or the
// peripheral named by the memory map, in that order.
func (b *Bus) ReadByte(addr uint32) byte {
	addr = b.maskA20(addr)
	if addr >= realModeLimit {
		if ext := addr - realModeLimit; int(ext) < len(b.extMem) {
			v := b.extMem[ext]
			b.notify(addr, v, false)
			return v
		}
		b.notify(addr, 0xFF, false)
		return 0xFF
	}
	idx := b.memMap[addr/paragraphSize]
	p := b.reg.At(int(idx))
	var v byte
	if mio, ok := p.(MemIO); ok {
		v = mio.ReadByte(addr)
	} else {
		v = 0xFF
	}
	if idx == 0 {
		b.logger.Debug("unmapped memory read", "addr", addr)
	}
	b.notify(addr, v, false)
	return v
}

// WriteByte is ReadByte's write counterpart.
func (b *Bus) WriteByte(addr uint32, v byte) {
	addr = b.maskA20(addr)
	if addr >= realModeLimit {
		if ext := addr - realModeLimit; int(ext) < len(b.extMem) {
			b.extMem[ext] = v
		}
		b.notify(addr, v, true)
		return
	}
	idx := b.memMap[addr/paragraphSize]
	p := b.reg.At(int(idx))
	if mio, ok := p.(MemIO); ok {
		mio.WriteByte(addr, v)
	}
	if idx == 0 {
		b.logger.Debug("unmapped memory write", "addr", addr, "value", v)
	}
	b.notify(addr, v, true)
}

// ReadWord reads the low byte first, matching the word-access
// invariant in §8.
func (b *Bus) ReadWord(addr uint32) uint16 {
	lo := b.ReadByte(addr)
	hi := b.ReadByte(addr + 1)
	return binary.LittleEndian.Uint16([]byte{lo, hi})
}

// WriteWord writes the low byte then the high byte.
func (b *Bus) WriteWord(addr uint32, v uint16) {
	b.WriteByte(addr, byte(v))
	b.WriteByte(addr+1, byte(v>>8))
}

// In reads an I/O port through the peripheral named by the I/O map.
func (b *Bus) In(port uint16) byte {
	idx := b.ioMap[port]
	p := b.reg.At(int(idx))
	var v byte
	if pio, ok := p.(PortIO); ok {
		v = pio.In(port)
	} else {
		v = 0xFF
	}
	if idx == 0 {
		b.logger.Debug("unmapped port read", "port", port)
	}
	b.notify(uint32(port), v, false)
	return v
}

// Out writes an I/O port through the peripheral named by the I/O map.
func (b *Bus) Out(port uint16, v byte) {
	idx := b.ioMap[port]
	p := b.reg.At(int(idx))
	if pio, ok := p.(PortIO); ok {
		pio.Out(port, v)
	}
	if idx == 0 {
		b.logger.Debug("unmapped port write", "port", port, "value", v)
	}
	b.notify(uint32(port), v, true)
}

func (b *Bus) notify(addr uint32, v byte, isWrite bool) {
	if b.onTransfer != nil {
		b.onTransfer(addr, v, isWrite)
	}
}

// PIC looks up the installed PIC peripheral, if any.
func (b *Bus) PIC() (PICController, bool) {
	p, _ := b.reg.ByClass(ClassPIC)
	if p == nil {
		return nil, false
	}
	pic, ok := p.(PICController)
	return pic, ok
}

// DMA looks up the installed DMA controller, if any.
func (b *Bus) DMA() (DMAController, bool) {
	p, _ := b.reg.ByClass(ClassDMA)
	if p == nil {
		return nil, false
	}
	dma, ok := p.(DMAController)
	return dma, ok
}
