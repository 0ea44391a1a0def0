package halftone

import (
	"math"

	"github.com/gogpu/gg"
)

// sqrt3 is the height-to-width ratio of one rectangular sub-lattice period.
var sqrt3 = math.Sqrt(3)

// HexCell locates a point within the hexagonal tiling.
type HexCell struct {
	// Offset is the point's position relative to the center of its cell.
	Offset gg.Point

	// ID is the center of the cell in grid space. Every point inside the
	// same cell shares the same ID.
	ID gg.Point
}

// CoordToHex finds the hexagonal cell containing coord.
//
// The hex grid is built from two interleaved rectangular lattices with
// period (1, √3)·cellHeight, one with centers at whole periods and one
// offset by half a period. The point belongs to whichever lattice has the
// nearer center; ties go to the whole-period lattice. Neighboring cell
// centers are exactly cellHeight apart.
//
// cellHeight must be positive.
func CoordToHex(coord gg.Point, cellHeight float64) HexCell {
	period := gg.Pt(1, sqrt3).Mul(cellHeight)
	half := period.Mul(0.5)

	a := modPoint(coord, period).Sub(half)
	b := modPoint(coord.Sub(half), period).Sub(half)

	gv := a
	if b.LengthSquared() <= a.LengthSquared() {
		gv = b
	}
	return HexCell{Offset: gv, ID: coord.Sub(gv)}
}

// HexNeighbors returns the centers of the six cells adjacent to the cell
// centered at id, counter-clockwise starting from +X.
func HexNeighbors(id gg.Point, cellHeight float64) [6]gg.Point {
	var n [6]gg.Point
	for i := range n {
		angle := float64(i) * math.Pi / 3
		n[i] = id.Add(gg.Pt(math.Cos(angle), math.Sin(angle)).Mul(cellHeight))
	}
	return n
}

// modPoint applies the floored modulo component-wise.
func modPoint(p, period gg.Point) gg.Point {
	return gg.Pt(floorMod(p.X, period.X), floorMod(p.Y, period.Y))
}

// floorMod returns x - y*floor(x/y). Unlike math.Mod the result has the
// sign of y, so negative coordinates wrap into [0, y).
func floorMod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}
