// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render applies the halftone effect to whole frames.
//
// The halftone package evaluates one pixel at a time. This package owns
// everything around that: pixel buffers, source sampling, parallel
// dispatch over row bands, output quantization, and handing the finished
// frame to a GPU host for display.
//
// # Core Types
//
//   - Target: where a frame is written (PixmapTarget, ImageTarget)
//   - PixmapSampler: reads a *gg.Pixmap as a halftone.Sampler
//   - Renderer: shades frames on a work-stealing worker pool
//   - Presenter: uploads frames to a host-provided GPU texture
//
// # Usage
//
//	r := render.NewRenderer(render.WithWorkers(8))
//	defer r.Close()
//
//	dst := render.NewPixmapTarget(src.Width(), src.Height())
//	if err := r.Render(ctx, dst, src, halftone.DefaultParams()); err != nil {
//	    return err
//	}
//	_ = dst.Pixmap().SavePNG("out.png")
//
// # Pixel Conventions
//
// Pixel (x, y) is shaded at its center (x+0.5, y+0.5). Output channels are
// rounded to the nearest 8-bit value and alpha is always opaque. Source
// pixmaps are premultiplied; the sampler un-premultiplies before ink
// separation. When the effect is disabled the source bytes are copied
// unchanged.
//
// # Architecture
//
//	         Render(ctx, dst, src, params)
//	                      │
//	       ┌──────────────┴──────────────┐
//	       │ disabled                    │ enabled
//	       ▼                             ▼
//	  byte copy                 halftone.NewShader
//	                                     │
//	                       parallel.BandsFor(height)
//	                                     │
//	                 ┌─────────┬─────────┼─────────┐
//	                 ▼         ▼         ▼         ▼
//	               band      band      band      band   (WorkerPool)
//	                 │         │         │         │
//	                 └─────────┴────┬────┴─────────┘
//	                                ▼
//	                          Target pixels
package render
