// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"
)

// Sentinel errors for the render package.
var (
	// ErrBusy is returned when Render is called while a previous frame on
	// the same Renderer is still being shaded. The new frame is skipped.
	ErrBusy = errors.New("render: previous frame still in progress")

	// ErrClosed is returned by Render after Close.
	ErrClosed = errors.New("render: renderer is closed")

	// ErrNilSource is returned when the source pixmap is nil.
	ErrNilSource = errors.New("render: nil source")

	// ErrNilTarget is returned when the target is nil.
	ErrNilTarget = errors.New("render: nil target")

	// ErrNoPixels is returned for targets without CPU-accessible pixels.
	ErrNoPixels = errors.New("render: target does not support CPU access")

	// ErrUnsupportedFormat is returned for targets whose pixel format is
	// not 8-bit RGBA or BGRA.
	ErrUnsupportedFormat = errors.New("render: unsupported target format")

	// ErrShortBuffer is returned when the target's pixel slice is smaller
	// than its reported dimensions and stride require.
	ErrShortBuffer = errors.New("render: target buffer too small")

	// ErrAliased is returned when the target writes into the source pixels.
	ErrAliased = errors.New("render: target shares memory with source")

	// ErrUnknownFilter is returned by ParseFilter.
	ErrUnknownFilter = errors.New("render: unknown filter")
)

// DimensionMismatchError is returned when the source and target sizes differ.
type DimensionMismatchError struct {
	Source image.Point
	Target image.Point
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("render: source is %dx%d but target is %dx%d",
		e.Source.X, e.Source.Y, e.Target.X, e.Target.Y)
}
