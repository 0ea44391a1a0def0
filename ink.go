package halftone

import (
	"image/color"
	"math"
)

// Epsilon floors the max-channel denominator in RGBToInk and sets the
// threshold at which a color is treated as pure black.
const Epsilon = 1e-6

// RGB represents an opaque color with red, green and blue components.
// Each component is in the range [0, 1].
type RGB struct {
	R, G, B float64
}

// Ink represents subtractive ink coverage: cyan, magenta, yellow and black.
// Each component is in the range [0, 1].
//
// Ink is also used as a 4-vector for one-hot layer masks and for
// accumulating layer contributions.
type Ink struct {
	C, M, Y, K float64
}

// Common ink masks. Each selects exactly one channel.
var (
	MaskCyan    = Ink{C: 1}
	MaskMagenta = Ink{M: 1}
	MaskYellow  = Ink{Y: 1}
	MaskBlack   = Ink{K: 1}
)

// pureBlack is the coverage returned for near-black input.
var pureBlack = Ink{K: 1}

// RGBToInk converts an RGB color to ink coverage.
//
// Black is extracted as k = 1 - max(r, g, b) and the colored inks are
// expressed relative to the brightest channel. When k reaches 1 within
// Epsilon the result is exactly (0, 0, 0, 1): pure black carries no
// colored ink.
func RGBToInk(rgb RGB) Ink {
	maxRGB := math.Max(rgb.R, math.Max(rgb.G, rgb.B))
	k := 1 - maxRGB

	denom := math.Max(maxRGB, Epsilon)
	normal := Ink{
		C: clamp01((maxRGB - rgb.R) / denom),
		M: clamp01((maxRGB - rgb.G) / denom),
		Y: clamp01((maxRGB - rgb.B) / denom),
		K: k,
	}
	return selectInk(normal, pureBlack, k >= 1-Epsilon)
}

// InkToRGB converts ink coverage back to an RGB color.
// Inputs are expected in [0, 1]; no clamping is performed.
func InkToRGB(ink Ink) RGB {
	oneMinusK := 1 - ink.K
	return RGB{
		R: (1 - ink.C) * oneMinusK,
		G: (1 - ink.M) * oneMinusK,
		B: (1 - ink.Y) * oneMinusK,
	}
}

// selectInk returns b when cond is set, a otherwise.
func selectInk(a, b Ink, cond bool) Ink {
	if cond {
		return b
	}
	return a
}

// Add returns the component-wise sum of two ink vectors.
func (i Ink) Add(o Ink) Ink {
	return Ink{C: i.C + o.C, M: i.M + o.M, Y: i.Y + o.Y, K: i.K + o.K}
}

// Scale multiplies every component by s.
func (i Ink) Scale(s float64) Ink {
	return Ink{C: i.C * s, M: i.M * s, Y: i.Y * s, K: i.K * s}
}

// Dot returns the 4-component dot product. With a one-hot mask this
// selects a single channel.
func (i Ink) Dot(mask Ink) float64 {
	return i.C*mask.C + i.M*mask.M + i.Y*mask.Y + i.K*mask.K
}

// Lerp performs linear interpolation between two colors.
func (c RGB) Lerp(other RGB, t float64) RGB {
	return RGB{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

// Clamp restricts every component to [0, 1].
func (c RGB) Clamp() RGB {
	return RGB{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

// Color converts RGB to the standard color.Color interface.
func (c RGB) Color() color.Color {
	return color.NRGBA{
		R: uint8(math.Round(clamp01(c.R) * 255)),
		G: uint8(math.Round(clamp01(c.G) * 255)),
		B: uint8(math.Round(clamp01(c.B) * 255)),
		A: 255,
	}
}

// FromColor converts a standard color.Color to RGB, dropping alpha.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
	}
}

// clamp01 restricts a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
