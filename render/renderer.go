// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/gg"
	"github.com/gogpu/halftone"
	"github.com/gogpu/halftone/internal/parallel"
)

// defaultMinBandRows keeps bands large enough that dispatch overhead stays
// small next to the shading work.
const defaultMinBandRows = 8

// Option configures a Renderer during creation.
//
// Example:
//
//	r := render.NewRenderer(
//	    render.WithWorkers(4),
//	    render.WithFilter(render.FilterBilinear),
//	)
type Option func(*options)

type options struct {
	workers     int
	filter      Filter
	minBandRows int
}

func defaultOptions() options {
	return options{
		workers:     0, // GOMAXPROCS
		filter:      FilterNearest,
		minBandRows: defaultMinBandRows,
	}
}

// WithWorkers sets the number of shading goroutines.
// Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithFilter sets how the source image is sampled at cell centers.
func WithFilter(f Filter) Option {
	return func(o *options) {
		o.filter = f
	}
}

// WithMinBandRows sets the minimum number of rows per work item.
func WithMinBandRows(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.minBandRows = n
		}
	}
}

// Renderer shades whole frames on a worker pool.
//
// A Renderer handles one frame at a time. A Render call that arrives while
// another is still running returns ErrBusy without touching the target,
// the same way an animation loop drops a frame when it falls behind.
//
// Renderer is safe for concurrent use.
type Renderer struct {
	pool        *parallel.WorkerPool
	filter      Filter
	minBandRows int

	busy   atomic.Bool
	frames atomic.Uint64
}

// NewRenderer creates a renderer and starts its workers.
// Call Close to stop them.
func NewRenderer(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		pool:        parallel.NewWorkerPool(o.workers),
		filter:      o.filter,
		minBandRows: o.minBandRows,
	}
}

// Workers returns the number of shading goroutines.
func (r *Renderer) Workers() int {
	return r.pool.Workers()
}

// Filter returns the source sampling filter.
func (r *Renderer) Filter() Filter {
	return r.filter
}

// Frames returns the number of frames rendered successfully.
func (r *Renderer) Frames() uint64 {
	return r.frames.Load()
}

// Close stops the worker pool. Close is safe to call multiple times.
func (r *Renderer) Close() {
	r.pool.Close()
}

// Render writes one frame of src, filtered with p, into dst.
//
// When p.Enabled is false the source bytes are copied to dst unchanged.
// Otherwise every pixel is shaded at its center, split across the worker
// pool by row bands. src and dst must have the same dimensions and must
// not share memory.
//
// Cancellation is observed between bands: a cancelled frame returns the
// context's error and leaves dst partially written.
func (r *Renderer) Render(ctx context.Context, dst Target, src *gg.Pixmap, p halftone.Params) error {
	if !r.busy.CompareAndSwap(false, true) {
		slogger().Warn("render: frame skipped, previous frame still shading")
		return ErrBusy
	}
	defer r.busy.Store(false)

	if !r.pool.IsRunning() {
		return ErrClosed
	}
	order, err := checkFrame(dst, src)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if !p.Enabled {
		copyFrame(dst, src, order)
		r.frames.Add(1)
		return nil
	}

	width, height := src.Width(), src.Height()
	shader, err := halftone.NewShader(p, gg.Pt(float64(width), float64(height)))
	if err != nil {
		return err
	}
	sampler := NewPixmapSampler(src, r.filter)
	bands := parallel.BandsFor(height, r.pool.Workers(), r.minBandRows)

	slogger().Debug("render: dispatch frame",
		"width", width, "height", height,
		"bands", len(bands), "workers", r.pool.Workers(),
		"grid", p.GridSize, "rotation", p.RotationDegrees,
		"filter", r.filter.String())

	pix, stride := dst.Pixels(), dst.Stride()
	work := make([]func(), len(bands))
	for i, band := range bands {
		work[i] = func() {
			shadeBand(shader, sampler, pix, stride, width, band, order)
		}
	}

	if err := r.pool.ExecuteContext(ctx, work); err != nil {
		if errors.Is(err, parallel.ErrClosed) {
			return ErrClosed
		}
		return fmt.Errorf("render: frame interrupted: %w", err)
	}
	r.frames.Add(1)
	return nil
}

// checkFrame validates the source and target pair and returns the
// target's byte layout.
func checkFrame(dst Target, src *gg.Pixmap) (pixelOrder, error) {
	if src == nil {
		return pixelOrder{}, ErrNilSource
	}
	if dst == nil {
		return pixelOrder{}, ErrNilTarget
	}

	width, height := src.Width(), src.Height()
	if dst.Width() != width || dst.Height() != height {
		return pixelOrder{}, &DimensionMismatchError{
			Source: image.Pt(width, height),
			Target: image.Pt(dst.Width(), dst.Height()),
		}
	}
	if width <= 0 || height <= 0 {
		return pixelOrder{}, fmt.Errorf("%w: got %dx%d", halftone.ErrInvalidResolution, width, height)
	}

	order, ok := channelOrder(dst.Format())
	if !ok {
		return pixelOrder{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, dst.Format())
	}

	pix := dst.Pixels()
	if pix == nil {
		return pixelOrder{}, ErrNoPixels
	}
	if need := (height-1)*dst.Stride() + width*4; dst.Stride() < width*4 || len(pix) < need {
		return pixelOrder{}, fmt.Errorf("%w: have %d bytes, stride %d", ErrShortBuffer, len(pix), dst.Stride())
	}
	if overlaps(pix, src.Data()) {
		return pixelOrder{}, ErrAliased
	}
	return order, nil
}

// overlaps reports whether a and b share any bytes of memory.
func overlaps(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a))) //nolint:gosec // address comparison only
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b))) //nolint:gosec // address comparison only
	return a0 < b0+uintptr(len(b)) && b0 < a0+uintptr(len(a))
}

// copyFrame copies src into dst unchanged apart from channel order.
func copyFrame(dst Target, src *gg.Pixmap, order pixelOrder) {
	width, height := src.Width(), src.Height()
	pix, stride := dst.Pixels(), dst.Stride()
	data := src.Data()
	rowBytes := width * 4

	for y := range height {
		in := data[y*rowBytes : (y+1)*rowBytes]
		out := pix[y*stride : y*stride+rowBytes]
		if order.r == 0 {
			copy(out, in)
			continue
		}
		for i := 0; i < rowBytes; i += 4 {
			out[i+order.r] = in[i+0]
			out[i+order.g] = in[i+1]
			out[i+order.b] = in[i+2]
			out[i+3] = in[i+3]
		}
	}
}

// shadeBand shades the rows of one band into pix.
func shadeBand(s *halftone.Shader, src halftone.Sampler, pix []byte, stride, width int, band parallel.Band, order pixelOrder) {
	for y := band.Y0; y < band.Y1; y++ {
		row := pix[y*stride : y*stride+width*4]
		cy := float64(y) + 0.5
		for x := range width {
			c := s.Shade(src, gg.Pt(float64(x)+0.5, cy)).Clamp()
			i := x * 4
			row[i+order.r] = quantize(c.R)
			row[i+order.g] = quantize(c.G)
			row[i+order.b] = quantize(c.B)
			row[i+3] = 255
		}
	}
}

// quantize rounds a channel in [0, 1] to the nearest 8-bit value.
func quantize(v float64) uint8 {
	return uint8(math.Round(v * 255))
}

func slogger() *slog.Logger { return halftone.Logger() }
