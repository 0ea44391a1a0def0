package scene

import "math"

// Vec3 is a 3D vector in world space. The camera looks down -Z with +Y up.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is a convenience constructor for Vec3.
func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3    { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3    { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Length() float64    { return math.Sqrt(v.Dot(v)) }
func (v Vec3) IsZero() bool       { return v.X == 0 && v.Y == 0 && v.Z == 0 }
func (v Vec3) Neg() Vec3          { return Vec3{-v.X, -v.Y, -v.Z} }
func (v Vec3) Approx(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

// Normalize returns the unit vector in the direction of v, or the zero
// vector if v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// mat3 is a row-major 3x3 rotation matrix.
type mat3 [9]float64

func identity3() mat3 {
	return mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

func rotateX(rad float64) mat3 {
	s, c := math.Sincos(rad)
	return mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

func rotateY(rad float64) mat3 {
	s, c := math.Sincos(rad)
	return mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

func rotateZ(rad float64) mat3 {
	s, c := math.Sincos(rad)
	return mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// mul returns m·o, which applies o first.
func (m mat3) mul(o mat3) mat3 {
	var out mat3
	for row := range 3 {
		for col := range 3 {
			out[row*3+col] = m[row*3+0]*o[0*3+col] +
				m[row*3+1]*o[1*3+col] +
				m[row*3+2]*o[2*3+col]
		}
	}
	return out
}

func (m mat3) apply(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		Z: m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}
