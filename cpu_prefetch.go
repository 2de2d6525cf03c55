// cpu_prefetch.go - six-byte code prefetch queue

package vxt

const prefetchSize = 6

// prefetchQueue is the CPU's on-chip buffer of upcoming instruction
// bytes. Exclusively owned by the CPU; invalidated (never drained) by
// any control-flow change.
type prefetchQueue struct {
	buf   [prefetchSize]byte
	count int
	dirty bool
}

func (q *prefetchQueue) reset() {
	q.count = 0
	q.dirty = false
}

// invalidate marks the queue dirty; it is consumed at the end of the
// current instruction (see CPU.endInstruction).
func (q *prefetchQueue) invalidate() { q.dirty = true }

// pop returns the head byte and true if the queue is non-empty.
func (q *prefetchQueue) pop() (byte, bool) {
	if q.count == 0 {
		return 0, false
	}
	b := q.buf[0]
	copy(q.buf[:q.count-1], q.buf[1:q.count])
	q.count--
	return b, true
}

// push appends a byte fetched directly from the bus during a refill.
func (q *prefetchQueue) push(b byte) {
	if q.count >= prefetchSize {
		return
	}
	q.buf[q.count] = b
	q.count++
}

// fetchCodeByte returns the next instruction byte: popped from the
// queue if non-empty, otherwise read through the bus at CS:IP. IP
// always advances.
func (c *CPU) fetchCodeByte() byte {
	var b byte
	if c.PrefetchEnabled {
		if v, ok := c.prefetch.pop(); ok {
			b = v
		} else {
			b = c.bus.ReadByte(c.linear(c.CS, c.IP))
		}
	} else {
		b = c.bus.ReadByte(c.linear(c.CS, c.IP))
	}
	if c.Tracer != nil {
		c.Tracer.Trace(nil, c.linear(c.CS, c.IP), b)
	}
	c.IP++
	return b
}

// linear computes the real-mode physical address seg:off -> (seg<<4)+off.
func (c *CPU) linear(seg, off uint16) uint32 {
	return (uint32(seg) << 4) + uint32(off)
}

// refillPrefetch tops up the queue from direct bus reads at
// CS:(IP+queue_length), per the optional cycle-accurate refill policy
// in §4.5. Never required for correctness.
func (c *CPU) refillPrefetch() {
	if !c.PrefetchEnabled {
		return
	}
	for c.prefetch.count < prefetchSize {
		addr := c.linear(c.CS, c.IP+uint16(c.prefetch.count))
		c.prefetch.push(c.bus.ReadByte(addr))
	}
}

// endInstruction consumes a dirty prefetch queue by flushing it, as
// the final step of executing one instruction.
func (c *CPU) endInstruction() {
	if c.prefetch.dirty {
		c.prefetch.count = 0
		c.prefetch.dirty = false
	}
}
