// system.go - system state bundle and lifecycle

package vxt

// System bundles the CPU, the bus, the timer wheel, the monitor
// table, and the injected front-end handles into the single state
// machine a step call advances.
type System struct {
	CPU     *CPU
	Bus     *Bus
	Timers  *timerWheel
	Monitor *monitorTable

	FrequencyHz uint64

	// ProtectedMode gates whether segment loads resolve through the
	// real-mode shift-4 loader or the GDT/LDT descriptor path. This is
	// segment-level protected mode only: no paging, no privilege-level
	// enforcement beyond descriptor field decoding.
	ProtectedMode bool
	MSW           uint16

	Logger    Logger
	Validator Validator

	installed bool
}

// NewSystem constructs an empty system at the given CPU tier and
// frequency, with the dummy peripheral already occupying index 0.
func NewSystem(tier Tier, frequencyHz uint64) *System {
	bus := NewBus()
	cpu := NewCPU(bus, tier)
	sys := &System{
		CPU:         cpu,
		Bus:         bus,
		Timers:      newTimerWheel(bus.reg, frequencyHz),
		Monitor:     newMonitorTable(),
		FrequencyHz: frequencyHz,
		Logger:      discardLogger{},
	}
	bus.onTransfer = sys.onBusTransfer
	sys.Monitor.registerCPU(cpu)
	return sys
}

// SetLogger installs the front-end's logging sink on System, where a
// Validator given the System can reach it, and on the bus, which writes
// its unmapped-access debug lines to it. The core itself logs nothing
// at ERROR level.
func (sys *System) SetLogger(l Logger) {
	if l == nil {
		l = discardLogger{}
	}
	sys.Logger = l
	sys.Bus.logger = l
}

// SetValidator installs the optional lock-step observer.
func (sys *System) SetValidator(v Validator) {
	sys.Validator = v
	sys.CPU.Validator = v
}

// AddPeripheral assigns the next sequential index to p (starting at 1)
// and appends it to the registry. Install is run separately by
// Initialize so every peripheral is present before any of them runs.
func (sys *System) AddPeripheral(p Peripheral) (int, error) {
	idx, err := sys.Bus.reg.Add(p)
	if err != nil {
		return 0, err
	}
	if pic, ok := p.(PICController); ok && p.Class() == ClassPIC {
		_ = pic
		sys.CPU.picIndex = idx
	}
	return idx, nil
}

// Initialize runs Install on every peripheral in assignment order,
// giving each the chance to register into the bus, timers, and
// monitor table, per the lifecycle in §3.
func (sys *System) Initialize() error {
	for _, e := range sys.Bus.reg.allIndexed() {
		if inst, ok := e.p.(Installer); ok {
			if err := inst.Install(sys, e.idx); err != nil {
				return err
			}
		}
	}
	sys.installed = true
	return nil
}

// Reset returns the CPU and every peripheral implementing Resetter to
// a known state. Idempotent; may be invoked before any step.
func (sys *System) Reset() {
	sys.CPU.Reset()
	for _, p := range sys.Bus.reg.all() {
		if r, ok := p.(Resetter); ok {
			r.Reset()
		}
	}
}

// Destroy releases peripheral resources in reverse install order.
func (sys *System) Destroy() {
	all := sys.Bus.reg.all()
	for i := len(all) - 1; i >= 0; i-- {
		if d, ok := all[i].(Destroyer); ok {
			d.Destroy()
		}
	}
	if sys.Validator != nil {
		sys.Validator.Destroy()
	}
}

// onBusTransfer bumps the CPU's per-instruction bus-transfer counter
// and notifies the validator, wired into Bus at construction so Bus
// never needs a back-reference to System.
func (sys *System) onBusTransfer(addr uint32, value byte, isWrite bool) {
	sys.CPU.busTransfers++
	if sys.Validator == nil {
		return
	}
	if isWrite {
		sys.Validator.Write(addr, value)
	} else {
		sys.Validator.Read(addr, value)
	}
}

// PIC returns the installed PIC peripheral, or ErrNoPIC.
func (sys *System) PIC() (PICController, error) {
	pic, ok := sys.Bus.PIC()
	if !ok {
		return nil, ErrNoPIC
	}
	return pic, nil
}

// DMA returns the installed DMA controller, or ErrNoDMA.
func (sys *System) DMA() (DMAController, error) {
	dma, ok := sys.Bus.DMA()
	if !ok {
		return nil, ErrNoDMA
	}
	return dma, nil
}
