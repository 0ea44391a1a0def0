// Package halftone implements a CMYK halftone print effect as a pure
// per-pixel function.
//
// # Overview
//
// Each output pixel is shaded independently. The source color is split
// into four ink separations (cyan, magenta, yellow and black). Each
// separation is screened on its own hexagonal dot grid, rotated to the
// traditional angle for that ink (15°, 75°, 30° and 45°). The dots are
// then recombined into RGB.
//
// # Quick Start
//
//	import "github.com/gogpu/halftone"
//
//	params := halftone.DefaultParams()
//	params.GridSize = 12
//
//	shader, err := halftone.NewShader(params, gg.Pt(800, 600))
//	if err != nil {
//	    return err
//	}
//
//	// For every pixel center of the frame:
//	c := shader.Shade(src, gg.Pt(x+0.5, y+0.5))
//
// The render sub-package drives a Shader over a whole [gg.Pixmap] in
// parallel, and the shader sub-package carries the same algorithm as WGSL
// for GPU hosts.
//
// # Components
//
//   - Color conversion: [RGBToInk], [InkToRGB]
//   - Hex tiling: [CoordToHex]
//   - Layer engine: [Layer], [Screen], [DotRadius]
//   - Compositing: [Shader], [Shade]
//   - Parameters: [Params], [Animation]
//
// # Coordinate System
//
// Screen coordinates are in pixels with the origin at the top-left corner
// and Y increasing downward. Pixel centers sit at half-integer
// coordinates. Samplers receive the coordinate divided by the resolution.
//
// # Purity
//
// Nothing in this package keeps state between pixels or frames. Time-driven
// parameters come from [Animation.Params], which takes the elapsed time as
// an argument.
package halftone
