// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
)

// Target defines where a rendered frame goes.
//
// Targets expose CPU-addressable 8-bit pixels. Both RGBA and BGRA channel
// orders are accepted; Format reports which one the target uses.
type Target interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// Pixels returns direct access to pixel data.
	// Each pixel is 4 bytes in the channel order given by Format.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	// It may exceed Width * 4 when rows are padded.
	Stride() int
}

// PixmapTarget is a render target backed by a *gg.Pixmap.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	renderer.Render(ctx, target, src, params)
//	target.Pixmap().SavePNG("out.png")
type PixmapTarget struct {
	pm *gg.Pixmap
}

// NewPixmapTarget creates a target with a new pixmap.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{pm: gg.NewPixmap(width, height)}
}

// NewPixmapTargetFrom wraps an existing pixmap as a render target.
// The pixmap is used directly without copying.
func NewPixmapTargetFrom(pm *gg.Pixmap) *PixmapTarget {
	return &PixmapTarget{pm: pm}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.pm.Width()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.pm.Height()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.pm.Data()
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.pm.Width() * 4
}

// Pixmap returns the underlying pixmap.
// The returned pixmap shares memory with the target.
func (t *PixmapTarget) Pixmap() *gg.Pixmap {
	return t.pm
}

// Ensure PixmapTarget implements Target.
var _ Target = (*PixmapTarget)(nil)

// ImageTarget is a render target backed by an *image.RGBA, which may be
// a sub-image of a larger buffer.
type ImageTarget struct {
	img *image.RGBA
}

// NewImageTarget wraps img as a render target.
// The image is used directly without copying.
func NewImageTarget(img *image.RGBA) *ImageTarget {
	return &ImageTarget{img: img}
}

// Width returns the target width in pixels.
func (t *ImageTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *ImageTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *ImageTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns the pixel data starting at the image's top-left pixel.
func (t *ImageTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *ImageTarget) Stride() int {
	return t.img.Stride
}

// Image returns the underlying image.
func (t *ImageTarget) Image() *image.RGBA {
	return t.img
}

// Ensure ImageTarget implements Target.
var _ Target = (*ImageTarget)(nil)

// pixelOrder holds the byte offsets of red, green and blue within a pixel.
type pixelOrder struct {
	r, g, b int
}

// channelOrder returns the byte layout for f, and false for formats the
// renderer cannot write.
func channelOrder(f gputypes.TextureFormat) (pixelOrder, bool) {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return pixelOrder{r: 0, g: 1, b: 2}, true
	case gputypes.TextureFormatBGRA8Unorm:
		return pixelOrder{r: 2, g: 1, b: 0}, true
	default:
		return pixelOrder{}, false
	}
}
