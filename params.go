package halftone

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for contract violations at the halftone boundary.
var (
	// ErrInvalidGridSize is returned when the grid size is not a positive finite number.
	ErrInvalidGridSize = errors.New("halftone: grid size must be positive and finite")

	// ErrInvalidRotation is returned when the rotation is NaN or infinite.
	ErrInvalidRotation = errors.New("halftone: rotation must be finite")

	// ErrInvalidResolution is returned when the output resolution is not positive.
	ErrInvalidResolution = errors.New("halftone: resolution must be positive")
)

// DefaultGridSize is the dot cell size used by DefaultParams, in pixels.
const DefaultGridSize = 20

// Params holds the caller-controlled halftone parameters.
// They may change every frame; the shading functions only read them.
type Params struct {
	// Enabled turns the effect on. When false the source passes through.
	Enabled bool

	// GridSize is the distance between neighboring dot centers, in pixels.
	GridSize float64

	// RotationDegrees is added to every layer's screen angle.
	RotationDegrees float64
}

// DefaultParams returns enabled parameters with a 20 pixel grid and no
// extra rotation.
func DefaultParams() Params {
	return Params{
		Enabled:  true,
		GridSize: DefaultGridSize,
	}
}

// Validate reports whether the parameters satisfy the input contract.
// A disabled effect still requires valid values so a caller can toggle
// Enabled without revalidating.
func (p Params) Validate() error {
	if math.IsNaN(p.GridSize) || math.IsInf(p.GridSize, 0) || p.GridSize <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidGridSize, p.GridSize)
	}
	if math.IsNaN(p.RotationDegrees) || math.IsInf(p.RotationDegrees, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidRotation, p.RotationDegrees)
	}
	return nil
}

// validateResolution checks that both output dimensions are positive and finite.
func validateResolution(w, h float64) error {
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return fmt.Errorf("%w: got %vx%v", ErrInvalidResolution, w, h)
	}
	return nil
}
