package fractal

import (
	"errors"
	"fmt"

	"github.com/gogpu/fractal/internal/parallel"
)

var (
	// ErrUnknownMode is returned by ParseMode for names outside the mode set.
	ErrUnknownMode = errors.New("fractal: unknown mode")

	// ErrInvalidViewport is returned for a viewport with a non-positive or
	// non-finite zoom, or a non-finite offset.
	ErrInvalidViewport = errors.New("fractal: invalid viewport")

	// ErrInvalidSize is returned for raster dimensions that are not positive.
	ErrInvalidSize = errors.New("fractal: invalid raster size")
)

// BandError reports a band that failed during a render pass.
// The raster of a failed pass is incomplete and must not be displayed.
type BandError struct {
	// Y0 and Y1 are the rows [Y0, Y1) of the failed band.
	Y0, Y1 int

	// Cause is the underlying failure.
	Cause error
}

// Error implements the error interface.
func (e *BandError) Error() string {
	return fmt.Sprintf("fractal: render band [%d,%d): %v", e.Y0, e.Y1, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *BandError) Unwrap() error {
	return e.Cause
}

// bandError converts a parallel failure into a *BandError when it came
// from a panicking band. Other errors are returned unchanged.
func bandError(err error) error {
	var pe *parallel.PanicError
	if errors.As(err, &pe) {
		return &BandError{Y0: pe.Band.Y0, Y1: pe.Band.Y1, Cause: err}
	}
	return err
}
