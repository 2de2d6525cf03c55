// log.go - injected logger, tracer and validator handles

package vxt

import "log/slog"

// Logger is the front-end's free-form logging sink, installed with
// System.SetLogger. Until one is installed, System and Bus use a logger
// that discards every call.
type Logger interface {
	Debug(msg string, args ...any)
	Error(msg string, args ...any)
}

// slogLogger adapts a *slog.Logger to Logger; NewSlogLogger builds one.
type slogLogger struct{ l *slog.Logger }

// NewSlogLogger wraps an existing *slog.Logger as a vxt Logger.
func NewSlogLogger(l *slog.Logger) Logger { return &slogLogger{l: l} }

func (s *slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

// discardLogger is the default logger of NewSystem and NewBus: every
// call is a no-op.
type discardLogger struct{}

func (discardLogger) Debug(string, ...any) {}
func (discardLogger) Error(string, ...any) {}

// Tracer is called for every opcode byte the CPU consumes from the
// prefetch stream, before it is dispatched.
type Tracer interface {
	Trace(sys *System, ipLinear uint32, opcodeByte byte)
}

// InstrEvent carries the state a Validator's End hook observes after
// an instruction retires.
type InstrEvent struct {
	Mnemonic  string
	Opcode    byte
	HasModRM  bool
	Cycles    int
	Registers Registers
}

// Validator is the optional lock-step observer described in the
// front-end callback contract. Every method is called synchronously
// from the stepping thread; implementations must not block.
type Validator interface {
	Initialize(sys *System) error
	Destroy()
	Begin(regs Registers)
	End(ev InstrEvent)
	Read(addr uint32, value byte)
	Write(addr uint32, value byte)
	Discard()
}
