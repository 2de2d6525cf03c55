// errors.go - system error taxonomy

package vxt

import "github.com/pkg/errors"

// Sentinel errors mirroring the system error taxonomy. Callers use
// errors.Is against these; peripheral-private failures use UserError.
var (
	ErrInvalidVersion          = errors.New("vxt: invalid version")
	ErrInvalidRegisterPacking  = errors.New("vxt: invalid register packing")
	ErrUserTermination         = errors.New("vxt: user termination")
	ErrNoPIC                   = errors.New("vxt: no PIC installed")
	ErrNoDMA                   = errors.New("vxt: no DMA controller installed")
	ErrPeripheralTableOverflow = errors.New("vxt: peripheral table overflow")
	ErrTimerTableOverflow      = errors.New("vxt: timer table overflow")
	ErrMisalignedInstall       = errors.New("vxt: memory install not paragraph-aligned")
)

// UserError wraps a peripheral-private error code, opaque to the core.
type UserError struct {
	Code int
	Err  error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "vxt: user error"
}

func (e *UserError) Unwrap() error { return e.Err }

// NewUserError wraps an arbitrary peripheral failure as a UserError,
// with a stack attached at the point it crosses into the core.
func NewUserError(code int, cause error) error {
	return &UserError{Code: code, Err: errors.WithStack(cause)}
}
