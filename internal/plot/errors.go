package plot

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction is returned when a Model cannot be built.
	ErrConstruction = errors.New("plot: invalid surface model")
	// ErrClockUnavailable is returned when the high-resolution counter cannot be read.
	ErrClockUnavailable = errors.New("plot: high-resolution clock unavailable")
	// ErrDraw is the class of all DrawError values.
	ErrDraw = errors.New("plot: draw failed")
	// ErrNotReady is returned by Driver.Frame outside the Ready state.
	ErrNotReady = errors.New("plot: driver not ready")
)

// SampleError reports a grid sample whose function value is not finite.
type SampleError struct {
	Row, Col int
	X, Y, Z  float64
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("plot: non-finite sample f(%g, %g) = %g at [%d][%d]", e.X, e.Y, e.Z, e.Row, e.Col)
}

func (e *SampleError) Unwrap() error { return ErrConstruction }

// DrawError is returned by a Surface that failed to begin or end a frame.
// It matches both ErrDraw and the underlying cause with errors.Is.
type DrawError struct {
	Op  string
	Err error
}

func (e *DrawError) Error() string {
	if e.Err == nil {
		return "plot: " + e.Op + " failed"
	}
	return fmt.Sprintf("plot: %s: %v", e.Op, e.Err)
}

func (e *DrawError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDraw}
	}
	return []error{ErrDraw, e.Err}
}
