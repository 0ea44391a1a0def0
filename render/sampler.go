// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/halftone"
)

// Filter selects how a PixmapSampler reconstructs colors between texels.
type Filter uint8

const (
	// FilterNearest returns the texel containing the sample point.
	FilterNearest Filter = iota

	// FilterBilinear blends the four texels around the sample point.
	FilterBilinear
)

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterBilinear:
		return "bilinear"
	default:
		return fmt.Sprintf("Filter(%d)", uint8(f))
	}
}

// ParseFilter parses a filter name as returned by Filter.String.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest":
		return FilterNearest, nil
	case "bilinear", "linear":
		return FilterBilinear, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
}

// PixmapSampler reads a pixmap as a halftone.Sampler.
//
// Texel centers sit at ((x+0.5)/width, (y+0.5)/height) and coordinates
// outside [0, 1] are clamped to the edge. Premultiplied texels are
// divided by their alpha, so a translucent source keeps its hue and
// lightness; the alpha itself is not sampled.
type PixmapSampler struct {
	data   []uint8
	width  int
	height int
	filter Filter
}

// NewPixmapSampler returns a sampler over pm.
// The pixmap must not be modified while the sampler is in use.
func NewPixmapSampler(pm *gg.Pixmap, filter Filter) *PixmapSampler {
	return &PixmapSampler{
		data:   pm.Data(),
		width:  pm.Width(),
		height: pm.Height(),
		filter: filter,
	}
}

// Sample returns the source color at normalized coordinate (u, v).
func (s *PixmapSampler) Sample(u, v float64) halftone.RGB {
	if s.filter == FilterBilinear {
		return s.bilinear(u, v)
	}
	x := clampInt(int(math.Floor(u*float64(s.width))), s.width-1)
	y := clampInt(int(math.Floor(v*float64(s.height))), s.height-1)
	return s.texel(x, y)
}

func (s *PixmapSampler) bilinear(u, v float64) halftone.RGB {
	fx := u*float64(s.width) - 0.5
	fy := v*float64(s.height) - 0.5
	x0f, y0f := math.Floor(fx), math.Floor(fy)
	tx, ty := fx-x0f, fy-y0f

	x0 := clampInt(int(x0f), s.width-1)
	x1 := clampInt(int(x0f)+1, s.width-1)
	y0 := clampInt(int(y0f), s.height-1)
	y1 := clampInt(int(y0f)+1, s.height-1)

	top := s.texel(x0, y0).Lerp(s.texel(x1, y0), tx)
	bottom := s.texel(x0, y1).Lerp(s.texel(x1, y1), tx)
	return top.Lerp(bottom, ty)
}

// texel returns the straight-alpha color of one pixel. Pixmaps hold
// premultiplied RGBA; fully transparent pixels read as black.
func (s *PixmapSampler) texel(x, y int) halftone.RGB {
	i := (y*s.width + x) * 4
	a := s.data[i+3]
	switch a {
	case 0:
		return halftone.RGB{}
	case 255:
		return halftone.RGB{
			R: float64(s.data[i+0]) / 255,
			G: float64(s.data[i+1]) / 255,
			B: float64(s.data[i+2]) / 255,
		}
	}
	alpha := float64(a)
	return halftone.RGB{
		R: float64(s.data[i+0]) / alpha,
		G: float64(s.data[i+1]) / alpha,
		B: float64(s.data[i+2]) / alpha,
	}.Clamp()
}

// clampInt restricts v to [0, hi].
func clampInt(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

// Ensure PixmapSampler implements halftone.Sampler.
var _ halftone.Sampler = (*PixmapSampler)(nil)
