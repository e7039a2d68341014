package wave

import (
	"errors"
	"fmt"
)

// Configuration errors. All of them are fatal at setup time.
var (
	ErrInvalidGrid        = errors.New("invalid grid")
	ErrInvalidWaveFactor  = errors.New("wave factor outside stable range")
	ErrInvalidDamping     = errors.New("damping must be in (0, 1]")
	ErrInvalidSeed        = errors.New("initial heights do not match grid")
	ErrWorkGroupMismatch  = errors.New("grid not divisible by work-group size")
	ErrUnknownEdgePolicy  = errors.New("unknown edge policy")
	ErrSimulationFailed   = errors.New("simulation session failed")
	ErrSimulationClosed   = errors.New("simulation closed")
	ErrUnknownBuffer      = errors.New("unknown buffer handle")
	ErrBufferSizeMismatch = errors.New("buffer size mismatch")
)

// KernelError reports a kernel that failed to build, with the compiler log.
type KernelError struct {
	Kernel string
	Log    string
}

func (e *KernelError) Error() string {
	return fmt.Sprintf("building kernel %s: %s", e.Kernel, e.Log)
}
