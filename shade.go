package halftone

import (
	"github.com/gogpu/gg"
)

// Shader composites halftone layers for one frame.
//
// A Shader is immutable after creation and safe for concurrent use; build
// a new one whenever the parameters or the resolution change.
type Shader struct {
	params     Params
	resolution gg.Point
	screens    []Screen
}

// NewShader validates the frame parameters and prepares one Screen per
// layer. With no layers given, DefaultLayers are used.
func NewShader(p Params, resolution gg.Point, layers ...Layer) (*Shader, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := validateResolution(resolution.X, resolution.Y); err != nil {
		return nil, err
	}
	if len(layers) == 0 {
		layers = DefaultLayers[:]
	}

	screens := make([]Screen, len(layers))
	for i, l := range layers {
		screens[i] = NewScreen(l, p, resolution)
	}
	return &Shader{params: p, resolution: resolution, screens: screens}, nil
}

// Params returns the parameters the shader was built with.
func (s *Shader) Params() Params {
	return s.params
}

// Screens returns the prepared layers in compositing order.
func (s *Shader) Screens() []Screen {
	return s.screens
}

// Shade returns the output color at the screen coordinate.
//
// When the effect is disabled the source color at the pixel is returned
// unchanged. Otherwise the layer contributions are summed and converted
// back to RGB. The result is not clamped.
func (s *Shader) Shade(src Sampler, coord gg.Point) RGB {
	if !s.params.Enabled {
		return src.Sample(coord.X/s.resolution.X, coord.Y/s.resolution.Y)
	}
	return InkToRGB(s.Ink(src, coord))
}

// Ink returns the summed layer contributions at the screen coordinate,
// regardless of whether the effect is enabled.
func (s *Shader) Ink(src Sampler, coord gg.Point) Ink {
	var total Ink
	for i := range s.screens {
		total = total.Add(s.screens[i].Contribution(src, coord))
	}
	return total
}

// Shade evaluates the halftone effect for a single pixel with the default
// layers. It does not validate its inputs: GridSize must be positive and
// resolution non-zero. Callers shading whole frames should build a
// Shader once instead.
func Shade(src Sampler, resolution, coord gg.Point, p Params) RGB {
	if !p.Enabled {
		return src.Sample(coord.X/resolution.X, coord.Y/resolution.Y)
	}
	var total Ink
	for _, l := range DefaultLayers {
		total = total.Add(NewScreen(l, p, resolution).Contribution(src, coord))
	}
	return InkToRGB(total)
}
