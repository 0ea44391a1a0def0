package halftone

import (
	"math"
	"time"

	"github.com/gogpu/gg"
)

// Animation drives the grid size and rotation from elapsed time.
//
// The grid size oscillates between MinGridSize and the smaller screen
// dimension divided by MaxGridDivisor; the whole screen rotates at a
// constant rate. Animation holds no clock: callers pass the elapsed time.
type Animation struct {
	// MinGridSize is the smallest grid size, in pixels.
	MinGridSize float64

	// MaxGridDivisor sets the largest grid size as min(width, height)/MaxGridDivisor.
	MaxGridDivisor float64

	// OscillationSpeed is the angular frequency of the grid size, in radians per second.
	OscillationSpeed float64

	// RotationSpeed is the rotation rate, in radians per second.
	RotationSpeed float64
}

// DefaultAnimation returns the animation used by the background scene.
func DefaultAnimation() Animation {
	return Animation{
		MinGridSize:      2,
		MaxGridDivisor:   32,
		OscillationSpeed: 0.5,
		RotationSpeed:    0.1,
	}
}

// Params returns the enabled parameters at elapsed time t.
func (a Animation) Params(t time.Duration, resolution gg.Point) Params {
	sec := t.Seconds()

	maxSize := math.Min(resolution.X, resolution.Y) / a.MaxGridDivisor
	oscillation := math.Sin(sec*a.OscillationSpeed)*0.5 + 0.5

	return Params{
		Enabled:         true,
		GridSize:        oscillation*(maxSize-a.MinGridSize) + a.MinGridSize,
		RotationDegrees: degrees(sec * a.RotationSpeed),
	}
}
