// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/halftone"
)

// gradientPixmap fills a pixmap with a deterministic pattern, including
// non-opaque alpha values so copies can be checked byte for byte.
func gradientPixmap(w, h int) *gg.Pixmap {
	pm := gg.NewPixmap(w, h)
	d := pm.Data()
	for y := range h {
		for x := range w {
			i := (y*w + x) * 4
			d[i+0] = uint8(x * 255 / max(w-1, 1))
			d[i+1] = uint8(y * 255 / max(h-1, 1))
			d[i+2] = uint8((x*7 + y*13) % 256)
			d[i+3] = uint8(200 + (x+y)%56)
		}
	}
	return pm
}

func uniformPixmap(w, h int, r, g, b uint8) *gg.Pixmap {
	pm := gg.NewPixmap(w, h)
	d := pm.Data()
	for i := 0; i < len(d); i += 4 {
		d[i], d[i+1], d[i+2], d[i+3] = r, g, b, 255
	}
	return pm
}

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	r := NewRenderer(opts...)
	t.Cleanup(r.Close)
	return r
}

func TestRenderer_Options(t *testing.T) {
	r := newTestRenderer(t, WithWorkers(3), WithFilter(FilterBilinear), WithMinBandRows(16))
	if r.Workers() != 3 {
		t.Errorf("Workers() = %d, want 3", r.Workers())
	}
	if r.Filter() != FilterBilinear {
		t.Errorf("Filter() = %v, want bilinear", r.Filter())
	}
	if r.minBandRows != 16 {
		t.Errorf("minBandRows = %d, want 16", r.minBandRows)
	}

	// Non-positive minimums are ignored.
	r2 := newTestRenderer(t, WithMinBandRows(0))
	if r2.minBandRows != defaultMinBandRows {
		t.Errorf("minBandRows = %d, want default %d", r2.minBandRows, defaultMinBandRows)
	}
}

func TestRenderer_Bypass(t *testing.T) {
	r := newTestRenderer(t, WithWorkers(2))
	src := gradientPixmap(37, 23)
	dst := NewPixmapTarget(37, 23)

	p := halftone.Params{Enabled: false, GridSize: 9, RotationDegrees: 30}
	if err := r.Render(context.Background(), dst, src, p); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if !bytes.Equal(dst.Pixels(), src.Data()) {
		t.Error("disabled Render did not copy the source byte for byte")
	}
}

// bgraTarget reports BGRA channel order over a padded buffer.
type bgraTarget struct {
	w, h, stride int
	pix          []byte
}

func newBGRATarget(w, h int) *bgraTarget {
	stride := w*4 + 8
	return &bgraTarget{w: w, h: h, stride: stride, pix: make([]byte, stride*h)}
}

func (t *bgraTarget) Width() int                     { return t.w }
func (t *bgraTarget) Height() int                    { return t.h }
func (t *bgraTarget) Format() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (t *bgraTarget) Pixels() []byte                 { return t.pix }
func (t *bgraTarget) Stride() int                    { return t.stride }

func TestRenderer_BypassBGRA(t *testing.T) {
	r := newTestRenderer(t)
	src := gradientPixmap(11, 5)
	dst := newBGRATarget(11, 5)

	if err := r.Render(context.Background(), dst, src, halftone.Params{GridSize: 4}); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	for y := range 5 {
		for x := range 11 {
			in := src.Data()[(y*11+x)*4:]
			out := dst.pix[y*dst.stride+x*4:]
			if out[0] != in[2] || out[1] != in[1] || out[2] != in[0] || out[3] != in[3] {
				t.Fatalf("pixel (%d,%d) = %v, want BGRA of %v", x, y, out[:4], in[:4])
			}
		}
	}
}

func TestRenderer_MatchesShader(t *testing.T) {
	const w, h = 64, 48
	p := halftone.Params{Enabled: true, GridSize: 7, RotationDegrees: 12}

	src := uniformPixmap(w, h, 200, 90, 30)
	color := halftone.RGB{R: 200.0 / 255, G: 90.0 / 255, B: 30.0 / 255}

	shader, err := halftone.NewShader(p, gg.Pt(w, h))
	if err != nil {
		t.Fatalf("NewShader() = %v", err)
	}

	r := newTestRenderer(t, WithWorkers(4))
	dst := NewPixmapTarget(w, h)
	if err := r.Render(context.Background(), dst, src, p); err != nil {
		t.Fatalf("Render() = %v", err)
	}

	pix := dst.Pixels()
	for y := range h {
		for x := range w {
			want := shader.Shade(halftone.Uniform(color), gg.Pt(float64(x)+0.5, float64(y)+0.5)).Clamp()
			i := (y*w + x) * 4
			got := pix[i : i+4]
			wantBytes := []byte{
				uint8(math.Round(want.R * 255)),
				uint8(math.Round(want.G * 255)),
				uint8(math.Round(want.B * 255)),
				255,
			}
			if !bytes.Equal(got, wantBytes) {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, wantBytes)
			}
		}
	}
}

func TestRenderer_WorkerCountIndependent(t *testing.T) {
	const w, h = 90, 70
	src := gradientPixmap(w, h)
	p := halftone.Params{Enabled: true, GridSize: 6, RotationDegrees: -25}

	var frames [][]byte
	for _, workers := range []int{1, 3, 8} {
		r := newTestRenderer(t, WithWorkers(workers), WithMinBandRows(1))
		dst := NewPixmapTarget(w, h)
		if err := r.Render(context.Background(), dst, src, p); err != nil {
			t.Fatalf("workers=%d: Render() = %v", workers, err)
		}
		frames = append(frames, dst.Pixels())
	}
	for i := 1; i < len(frames); i++ {
		if !bytes.Equal(frames[0], frames[i]) {
			t.Errorf("frame %d differs from single-worker frame", i)
		}
	}
}

func TestRenderer_OpaqueOutput(t *testing.T) {
	const w, h = 40, 30
	r := newTestRenderer(t)
	dst := NewPixmapTarget(w, h)
	if err := r.Render(context.Background(), dst, gradientPixmap(w, h), halftone.DefaultParams()); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	pix := dst.Pixels()
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 255 {
			t.Fatalf("alpha at byte %d = %d, want 255", i, pix[i])
		}
	}
	if r.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", r.Frames())
	}
}

// fakeTarget lets tests report arbitrary formats and buffers.
type fakeTarget struct {
	w, h, stride int
	format       gputypes.TextureFormat
	pix          []byte
}

func (t *fakeTarget) Width() int                     { return t.w }
func (t *fakeTarget) Height() int                    { return t.h }
func (t *fakeTarget) Format() gputypes.TextureFormat { return t.format }
func (t *fakeTarget) Pixels() []byte                 { return t.pix }
func (t *fakeTarget) Stride() int                    { return t.stride }

func TestRenderer_Errors(t *testing.T) {
	src := gradientPixmap(8, 8)
	ok := halftone.DefaultParams()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		dst  Target
		src  *gg.Pixmap
		p    halftone.Params
		want error
	}{
		{"nil source", context.Background(), NewPixmapTarget(8, 8), nil, ok, ErrNilSource},
		{"nil target", context.Background(), nil, src, ok, ErrNilTarget},
		{"empty frame", context.Background(), NewPixmapTarget(0, 0), gg.NewPixmap(0, 0), ok, halftone.ErrInvalidResolution},
		{"bad grid", context.Background(), NewPixmapTarget(8, 8), src, halftone.Params{Enabled: true}, halftone.ErrInvalidGridSize},
		{"bad grid while disabled", context.Background(), NewPixmapTarget(8, 8), src, halftone.Params{GridSize: -1}, halftone.ErrInvalidGridSize},
		{"bad rotation", context.Background(), NewPixmapTarget(8, 8), src, halftone.Params{Enabled: true, GridSize: 3, RotationDegrees: math.NaN()}, halftone.ErrInvalidRotation},
		{"cancelled", cancelled, NewPixmapTarget(8, 8), src, ok, context.Canceled},
		{"aliased", context.Background(), NewPixmapTargetFrom(src), src, ok, ErrAliased},
		{"unsupported format", context.Background(), &fakeTarget{w: 8, h: 8, stride: 8, format: gputypes.TextureFormatR8Unorm, pix: make([]byte, 64)}, src, ok, ErrUnsupportedFormat},
		{"no pixels", context.Background(), &fakeTarget{w: 8, h: 8, format: gputypes.TextureFormatRGBA8Unorm}, src, ok, ErrNoPixels},
		{"short buffer", context.Background(), &fakeTarget{w: 8, h: 8, stride: 32, format: gputypes.TextureFormatRGBA8Unorm, pix: make([]byte, 100)}, src, ok, ErrShortBuffer},
		{"narrow stride", context.Background(), &fakeTarget{w: 8, h: 8, stride: 16, format: gputypes.TextureFormatRGBA8Unorm, pix: make([]byte, 256)}, src, ok, ErrShortBuffer},
	}

	r := newTestRenderer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Render(tt.ctx, tt.dst, tt.src, tt.p)
			if !errors.Is(err, tt.want) {
				t.Errorf("Render() error = %v, want %v", err, tt.want)
			}
		})
	}
	if r.Frames() != 0 {
		t.Errorf("Frames() = %d after failed renders, want 0", r.Frames())
	}
}

func TestRenderer_DimensionMismatch(t *testing.T) {
	r := newTestRenderer(t)
	err := r.Render(context.Background(), NewPixmapTarget(10, 20), gradientPixmap(10, 21), halftone.DefaultParams())

	var dm *DimensionMismatchError
	if !errors.As(err, &dm) {
		t.Fatalf("Render() error = %v, want *DimensionMismatchError", err)
	}
	if dm.Source.Y != 21 || dm.Target.Y != 20 {
		t.Errorf("DimensionMismatchError = %+v", dm)
	}
}

func TestRenderer_Closed(t *testing.T) {
	r := NewRenderer(WithWorkers(2))
	r.Close()
	r.Close()

	err := r.Render(context.Background(), NewPixmapTarget(4, 4), gradientPixmap(4, 4), halftone.DefaultParams())
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Render() after Close = %v, want ErrClosed", err)
	}
}

// closingTarget closes the renderer the first time its pixels are read,
// after Render has already checked that the renderer is open.
type closingTarget struct {
	*PixmapTarget
	r    *Renderer
	once sync.Once
}

func (t *closingTarget) Pixels() []byte {
	t.once.Do(t.r.Close)
	return t.PixmapTarget.Pixels()
}

func TestRenderer_ClosedMidFrame(t *testing.T) {
	r := NewRenderer(WithWorkers(2))
	dst := &closingTarget{PixmapTarget: NewPixmapTarget(8, 8), r: r}

	err := r.Render(context.Background(), dst, gradientPixmap(8, 8), halftone.DefaultParams())
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Render() closed mid-frame = %v, want ErrClosed", err)
	}
	if r.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0 for a frame that was never shaded", r.Frames())
	}
}

func TestOverlaps(t *testing.T) {
	buf := make([]byte, 64)
	tests := []struct {
		name string
		a, b []byte
		want bool
	}{
		{"same slice", buf, buf, true},
		{"sub-slice", buf, buf[20:30], true},
		{"partial", buf[0:40], buf[32:64], true},
		{"reversed partial", buf[32:64], buf[0:40], true},
		{"adjacent", buf[0:32], buf[32:64], false},
		{"separate arrays", buf, make([]byte, 64), false},
		{"empty", buf[10:10], buf, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

// gatedTarget blocks inside the first Width call until released, holding
// the renderer mid-frame.
type gatedTarget struct {
	*PixmapTarget
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (t *gatedTarget) Width() int {
	t.once.Do(func() {
		close(t.entered)
		<-t.release
	})
	return t.PixmapTarget.Width()
}

func TestRenderer_Busy(t *testing.T) {
	r := newTestRenderer(t)
	src := gradientPixmap(16, 16)
	gated := &gatedTarget{
		PixmapTarget: NewPixmapTarget(16, 16),
		entered:      make(chan struct{}),
		release:      make(chan struct{}),
	}

	done := make(chan error, 1)
	go func() {
		done <- r.Render(context.Background(), gated, src, halftone.DefaultParams())
	}()
	<-gated.entered

	err := r.Render(context.Background(), NewPixmapTarget(16, 16), src, halftone.DefaultParams())
	if !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent Render() = %v, want ErrBusy", err)
	}

	close(gated.release)
	if err := <-done; err != nil {
		t.Fatalf("first Render() = %v", err)
	}

	// The renderer accepts frames again once the first one finishes.
	if err := r.Render(context.Background(), NewPixmapTarget(16, 16), src, halftone.DefaultParams()); err != nil {
		t.Errorf("Render() after busy frame = %v", err)
	}
	if r.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", r.Frames())
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{1, 255},
		{0.5, 128},
		{127.4 / 255, 127},
		{127.6 / 255, 128},
	}
	for _, tt := range tests {
		if got := quantize(tt.in); got != tt.want {
			t.Errorf("quantize(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func BenchmarkRenderer_Render(b *testing.B) {
	r := NewRenderer()
	defer r.Close()

	src := gradientPixmap(640, 360)
	dst := NewPixmapTarget(640, 360)
	p := halftone.DefaultParams()
	ctx := context.Background()

	b.ReportAllocs()
	for b.Loop() {
		if err := r.Render(ctx, dst, src, p); err != nil {
			b.Fatal(err)
		}
	}
}
