package halftone

import (
	"math"

	"github.com/gogpu/gg"
)

// Layer describes one ink separation: the screen angle its dot grid is
// rotated by and the one-hot mask selecting its channel.
type Layer struct {
	Name         string
	AngleDegrees float64
	Mask         Ink
}

// DefaultLayers are the four traditional screen angles, in compositing order.
var DefaultLayers = [4]Layer{
	{Name: "cyan", AngleDegrees: 15, Mask: MaskCyan},
	{Name: "magenta", AngleDegrees: 75, Mask: MaskMagenta},
	{Name: "yellow", AngleDegrees: 30, Mask: MaskYellow},
	{Name: "black", AngleDegrees: 45, Mask: MaskBlack},
}

// Screen is a layer bound to one frame's parameters and resolution.
// It holds the precomputed grid transforms; evaluating it is pure and
// safe for concurrent use.
type Screen struct {
	layer      Layer
	gridSize   float64
	resolution gg.Point

	// transform maps screen coordinates into the rotated grid space,
	// centered on the middle of the screen.
	transform gg.Matrix
	// inverse maps grid space back to screen coordinates.
	inverse gg.Matrix
	// unrotate maps grid-space offsets back to screen orientation.
	unrotate gg.Matrix
}

// NewScreen prepares layer for a frame of the given resolution.
// Parameters are not validated; see NewShader.
func NewScreen(layer Layer, p Params, resolution gg.Point) Screen {
	theta := radians(layer.AngleDegrees) + radians(p.RotationDegrees)

	rotate := gg.Rotate(theta)
	unrotate := gg.Rotate(-theta)
	center := resolution.Mul(0.5)

	return Screen{
		layer:      layer,
		gridSize:   p.GridSize,
		resolution: resolution,
		transform:  rotate.Multiply(gg.Translate(-center.X, -center.Y)),
		inverse:    gg.Translate(center.X, center.Y).Multiply(unrotate),
		unrotate:   unrotate,
	}
}

// Layer returns the layer this screen renders.
func (s Screen) Layer() Layer {
	return s.layer
}

// Locate returns the hex cell containing the screen coordinate, in grid space.
func (s Screen) Locate(coord gg.Point) HexCell {
	return CoordToHex(s.transform.TransformPoint(coord), s.gridSize)
}

// CellCenter returns the screen-space center of the cell containing coord.
// This is the point the cell's color is sampled from.
func (s Screen) CellCenter(coord gg.Point) gg.Point {
	return s.inverse.TransformPoint(s.Locate(coord).ID)
}

// Contribution returns this layer's ink at the screen coordinate.
//
// The source is sampled once at the center of the containing cell, so all
// pixels of a dot agree on its size. The result is the layer mask inside
// the dot, zero outside, with a smooth transition two pixels wide
// straddling the dot edge.
func (s Screen) Contribution(src Sampler, coord gg.Point) Ink {
	cell := s.Locate(coord)

	center := s.inverse.TransformPoint(cell.ID)
	uv := gg.Pt(center.X/s.resolution.X, center.Y/s.resolution.Y)
	ink := RGBToInk(src.Sample(uv.X, uv.Y))

	coverage := clamp01(ink.Dot(s.layer.Mask))
	radius := DotRadius(s.gridSize, coverage)

	edge := s.unrotate.TransformVector(cell.Offset).Length() - radius
	fade := Smoothstep(-1, 1, edge)

	return s.layer.Mask.Scale(1 - fade)
}

// DotRadius returns the radius of a dot with the given ink coverage.
// Dot area is proportional to coverage; full coverage yields a dot that
// touches its six neighbors.
func DotRadius(gridSize, coverage float64) float64 {
	return gridSize * 0.5 * math.Sqrt(coverage)
}

// Smoothstep performs Hermite interpolation between 0 and 1 as x moves
// from edge0 to edge1, clamping outside that range.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// radians converts degrees to radians.
func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// degrees converts radians to degrees.
func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
