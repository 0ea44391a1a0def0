// Package color converts lighting results between linear light and sRGB.
//
// Lighting is accumulated in linear space and encoded to sRGB only when a
// face color is handed to the rasterizer.
package color

import (
	"math"

	"github.com/gogpu/gg"
)

// Linear is a color in linear-light RGB. Components may exceed 1 before
// encoding.
type Linear struct {
	R, G, B float64
}

// Gray returns a neutral linear color with all components set to v.
func Gray(v float64) Linear {
	return Linear{R: v, G: v, B: v}
}

// Mul multiplies two colors component-wise, as when light hits an albedo.
func (c Linear) Mul(o Linear) Linear {
	return Linear{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B}
}

// Scale multiplies every component by s.
func (c Linear) Scale(s float64) Linear {
	return Linear{R: c.R * s, G: c.G * s, B: c.B * s}
}

// Add sums two colors.
func (c Linear) Add(o Linear) Linear {
	return Linear{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// SRGB clamps the color to [0,1] and encodes it as an opaque sRGB color.
func (c Linear) SRGB() gg.RGBA {
	return gg.RGBA{
		R: LinearToSRGB(c.R),
		G: LinearToSRGB(c.G),
		B: LinearToSRGB(c.B),
		A: 1,
	}
}

// SRGBToLinear converts an sRGB component to linear (EOTF).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
func SRGBToLinear(s float64) float64 {
	s = clamp01(s)
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a linear component to sRGB (OETF).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
func LinearToSRGB(l float64) float64 {
	l = clamp01(l)
	if l <= 0.0031308 {
		return l * 12.92
	}
	if l == 1 {
		// 1.055 - 0.055 rounds to just below 1.
		return 1
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
