// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
)

// Presentation errors.
var (
	// ErrNilDrawContext is returned when Present is given no draw context.
	ErrNilDrawContext = errors.New("render: nil draw context")

	// ErrNoTextureCreator is returned when the host cannot create textures.
	ErrNoTextureCreator = errors.New("render: draw context has no texture creator")

	// ErrNotTexture is returned when the host's texture creator returns
	// no texture and no error.
	ErrNotTexture = errors.New("render: host returned no texture")
)

// textureDestroyer matches the Destroy method of host textures.
type textureDestroyer interface {
	Destroy()
}

// Presenter shows rendered frames in a host window.
//
// The first frame creates a GPU texture through the host's texture creator;
// later frames of the same size upload into it. A size change recreates
// the texture.
//
// Example:
//
//	var p render.Presenter
//	app.OnDraw(func(dc *gogpu.Context) {
//	    _ = r.Render(ctx, target, scene.Frame(t), params)
//	    _ = p.Present(dc.AsTextureDrawer(), target.Pixmap())
//	})
//
// Presenter is NOT safe for concurrent use.
type Presenter struct {
	texture gpucontext.Texture
	width   int
	height  int
}

// Present uploads frame and draws it at the top-left corner of dc.
func (p *Presenter) Present(dc gpucontext.TextureDrawer, frame *gg.Pixmap) error {
	if dc == nil {
		return ErrNilDrawContext
	}
	if frame == nil {
		return ErrNilSource
	}

	data := frame.Data()
	if p.texture != nil && (p.width != frame.Width() || p.height != frame.Height()) {
		p.Release()
	}

	if p.texture == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrNoTextureCreator
		}
		tex, err := creator.NewTextureFromRGBA(frame.Width(), frame.Height(), data)
		if err != nil {
			return fmt.Errorf("render: create texture: %w", err)
		}
		gpuTex, ok := any(tex).(gpucontext.Texture)
		if !ok {
			return ErrNotTexture
		}
		p.texture = gpuTex
		p.width, p.height = frame.Width(), frame.Height()
	} else if updater, ok := p.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(data); err != nil {
			return fmt.Errorf("render: texture update failed: %w", err)
		}
	}

	return dc.DrawTexture(p.texture, 0, 0)
}

// Release destroys the host texture, if any.
func (p *Presenter) Release() {
	if p.texture == nil {
		return
	}
	if d, ok := p.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	p.texture = nil
	p.width, p.height = 0, 0
}
