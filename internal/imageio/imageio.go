// Package imageio loads and saves the images the halftone CLI works on.
//
// Decoding registers PNG, JPEG, GIF, BMP, TIFF and WebP. Encoding picks
// the format from the file extension: PNG, JPEG, BMP or TIFF.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// DefaultJPEGQuality is the quality used when saving JPEG files.
const DefaultJPEGQuality = 92

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when a file extension has no encoder.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// Load reads and decodes the image at path into a pixmap.
func Load(path string) (*gg.Pixmap, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	pm, _, err := Decode(f)
	return pm, err
}

// LoadBytes decodes an in-memory image, auto-detecting the format.
func LoadBytes(data []byte) (*gg.Pixmap, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	pm, _, err := Decode(bytes.NewReader(data))
	return pm, err
}

// Decode decodes an image from r, auto-detecting the format.
// It returns the pixmap and the format name.
func Decode(r io.Reader) (*gg.Pixmap, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("imageio: decode: %w", err)
	}
	return FromImage(img), format, nil
}

// FromImage converts any image to a pixmap anchored at (0, 0).
func FromImage(img image.Image) *gg.Pixmap {
	b := img.Bounds()
	pm := gg.NewPixmap(b.Dx(), b.Dy())

	if rgba, ok := img.(*image.RGBA); ok {
		rowBytes := b.Dx() * 4
		for y := range b.Dy() {
			src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+rowBytes]
			copy(pm.Data()[y*rowBytes:], src)
		}
		return pm
	}

	dst := &image.RGBA{
		Pix:    pm.Data(),
		Stride: b.Dx() * 4,
		Rect:   image.Rect(0, 0, b.Dx(), b.Dy()),
	}
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return pm
}

// toImage wraps the pixmap's pixels as an image without copying.
func toImage(pm *gg.Pixmap) *image.RGBA {
	return &image.RGBA{
		Pix:    pm.Data(),
		Stride: pm.Width() * 4,
		Rect:   image.Rect(0, 0, pm.Width(), pm.Height()),
	}
}

// FormatFor returns the encoder name for a file path's extension.
func FormatFor(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	case ".bmp":
		return "bmp", nil
	case ".tif", ".tiff":
		return "tiff", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Encode writes pm to w in the named format.
func Encode(w io.Writer, pm *gg.Pixmap, format string) error {
	img := toImage(pm)
	var err error
	switch format {
	case "png":
		err = png.Encode(w, img)
	case "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: DefaultJPEGQuality})
	case "bmp":
		err = bmp.Encode(w, img)
	case "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", format, err)
	}
	return nil
}

// Save encodes pm to path, choosing the format from the extension.
func Save(path string, pm *gg.Pixmap) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}
	if err := Encode(f, pm, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Fit scales pm down to fit within maxW×maxH, preserving its aspect
// ratio. A non-positive bound leaves that axis unconstrained. Images that
// already fit are returned as is.
func Fit(pm *gg.Pixmap, maxW, maxH int) *gg.Pixmap {
	w, h := pm.Width(), pm.Height()
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && h > maxH {
		scale = min(scale, float64(maxH)/float64(h))
	}
	if scale >= 1 {
		return pm
	}

	nw := max(1, int(float64(w)*scale+0.5))
	nh := max(1, int(float64(h)*scale+0.5))
	out := gg.NewPixmap(nw, nh)
	dst := toImage(out)
	draw.CatmullRom.Scale(dst, dst.Rect, toImage(pm), image.Rect(0, 0, w, h), draw.Src, nil)
	return out
}
