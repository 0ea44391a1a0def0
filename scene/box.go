package scene

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/halftone"
	"github.com/gogpu/halftone/internal/color"
)

// nearPlane is the closest distance to the camera that is still drawn.
const nearPlane = 0.1

// Box is a cube centered on the origin, lit by an ambient light and one
// directional light.
//
// The zero value is not usable; start from NewBox and adjust fields.
type Box struct {
	// Width and Height are the frame size in pixels.
	Width, Height int

	// FieldOfView is the camera's vertical field of view in degrees.
	FieldOfView float64

	// CameraDistance is the camera position on +Z. The camera looks at
	// the origin.
	CameraDistance float64

	// Size is the cube edge length.
	Size float64

	// Albedo is the surface color in linear light.
	Albedo color.Linear

	// Background fills pixels the cube does not cover.
	Background gg.RGBA

	// Ambient is the intensity of the uniform ambient light.
	Ambient float64

	// Sun is the intensity of the directional light.
	Sun float64

	// SunPosition is where the directional light shines from, toward the
	// origin.
	SunPosition Vec3

	// Spin is the angular velocity around the X, Y and Z axes in radians
	// per second.
	Spin Vec3
}

// NewBox returns the default demo scene: a white unit cube, a 30° camera
// five units away, ambient light 2 and a unit-intensity light from
// (10, 10, 10).
func NewBox(width, height int) *Box {
	return &Box{
		Width:          width,
		Height:         height,
		FieldOfView:    30,
		CameraDistance: 5,
		Size:           1,
		Albedo:         color.Gray(1),
		Background:     gg.Black,
		Ambient:        2,
		Sun:            1,
		SunPosition:    V3(10, 10, 10),
		Spin:           V3(0.3, 0.5, 0),
	}
}

// Face is one visible cube face after projection.
type Face struct {
	// Corners are the projected corners in screen pixels, in winding order.
	Corners [4]gg.Point

	// Normal is the rotated outward face normal.
	Normal Vec3

	// Depth is the distance from the camera to the face center.
	Depth float64

	// Color is the shaded face color.
	Color gg.RGBA
}

// cubeFace describes an axis-aligned face of a unit cube by its outward
// normal and two in-plane axes.
type cubeFace struct {
	normal, u, v Vec3
}

var cubeFaces = [6]cubeFace{
	{normal: V3(1, 0, 0), u: V3(0, 0, -1), v: V3(0, 1, 0)},
	{normal: V3(-1, 0, 0), u: V3(0, 0, 1), v: V3(0, 1, 0)},
	{normal: V3(0, 1, 0), u: V3(1, 0, 0), v: V3(0, 0, -1)},
	{normal: V3(0, -1, 0), u: V3(1, 0, 0), v: V3(0, 0, 1)},
	{normal: V3(0, 0, 1), u: V3(1, 0, 0), v: V3(0, 1, 0)},
	{normal: V3(0, 0, -1), u: V3(-1, 0, 0), v: V3(0, 1, 0)},
}

// orientation returns the cube's rotation at time t.
func (b *Box) orientation(t time.Duration) mat3 {
	s := t.Seconds()
	return rotateZ(b.Spin.Z * s).mul(rotateY(b.Spin.Y * s)).mul(rotateX(b.Spin.X * s))
}

// focal returns the camera focal length in pixels.
func (b *Box) focal() float64 {
	return float64(b.Height) / 2 / math.Tan(b.FieldOfView*math.Pi/360)
}

// Project maps a world-space point to screen pixels. It reports false
// for points behind the near plane.
func (b *Box) Project(p Vec3) (gg.Point, bool) {
	dz := b.CameraDistance - p.Z
	if dz < nearPlane {
		return gg.Point{}, false
	}
	f := b.focal()
	return gg.Pt(
		float64(b.Width)/2+f*p.X/dz,
		float64(b.Height)/2-f*p.Y/dz,
	), true
}

// Faces returns the faces visible at time t, farthest first.
func (b *Box) Faces(t time.Duration) []Face {
	rot := b.orientation(t)
	camera := V3(0, 0, b.CameraDistance)
	light := b.SunPosition.Normalize()
	half := b.Size / 2

	faces := make([]Face, 0, 3)
	for _, cf := range cubeFaces {
		normal := rot.apply(cf.normal)
		center := rot.apply(cf.normal.Mul(half))
		if normal.Dot(camera.Sub(center)) <= 0 {
			continue
		}

		face := Face{Normal: normal, Depth: camera.Sub(center).Length()}
		visible := true
		for i, c := range [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			corner := cf.normal.Add(cf.u.Mul(c[0])).Add(cf.v.Mul(c[1])).Mul(half)
			p, ok := b.Project(rot.apply(corner))
			if !ok {
				visible = false
				break
			}
			face.Corners[i] = p
		}
		if !visible {
			continue
		}
		face.Color = b.shade(normal, light)
		faces = append(faces, face)
	}

	slices.SortStableFunc(faces, func(x, y Face) int {
		return cmp.Compare(y.Depth, x.Depth)
	})
	return faces
}

// shade returns the diffuse color of a surface with the given normal.
func (b *Box) shade(normal, light Vec3) gg.RGBA {
	irradiance := b.Ambient + b.Sun*math.Max(0, normal.Dot(light))
	return b.Albedo.Scale(irradiance / math.Pi).SRGB()
}

// Draw paints the scene at time t into dc, which should be Width×Height.
func (b *Box) Draw(dc *gg.Context, t time.Duration) error {
	dc.ClearWithColor(b.Background)
	for _, f := range b.Faces(t) {
		dc.MoveTo(f.Corners[0].X, f.Corners[0].Y)
		for _, p := range f.Corners[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		dc.SetRGBA(f.Color.R, f.Color.G, f.Color.B, f.Color.A)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

// Frame renders the scene at time t into a new pixmap.
func (b *Box) Frame(t time.Duration) *gg.Pixmap {
	pm := gg.NewPixmap(b.Width, b.Height)
	dc := gg.NewContext(b.Width, b.Height, gg.WithPixmap(pm))
	defer func() { _ = dc.Close() }()

	if err := b.Draw(dc, t); err != nil {
		halftone.Logger().Warn("scene: draw failed", "t", t, "err", err)
	}
	return pm
}
