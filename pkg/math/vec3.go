package math

import "math"

// Vec3 is a 3D vector as stored in mesh buffers.
type Vec3 struct {
	X, Y, Z float32
}

// UnitZ is the up vector of a flat terrain.
var UnitZ = Vec3{0, 0, 1}

// F64 widens v for accumulation.
func (v Vec3) F64() Vec3d {
	return Vec3d{float64(v.X), float64(v.Y), float64(v.Z)}
}

// Min returns the component-wise minimum.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{min(v.X, other.X), min(v.Y, other.Y), min(v.Z, other.Z)}
}

// Max returns the component-wise maximum.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{max(v.X, other.X), max(v.Y, other.Y), max(v.Z, other.Z)}
}

// Vec3d is a double precision 3D vector.
type Vec3d struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3d) Add(other Vec3d) Vec3d {
	return Vec3d{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3d) Sub(other Vec3d) Vec3d {
	return Vec3d{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Cross returns the cross product.
func (v Vec3d) Cross(other Vec3d) Vec3d {
	return Vec3d{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3d) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// TryNormalize returns v scaled to unit length and rounded to float32. It
// reports false and returns the zero vector when the magnitude is not above
// eps or is not finite.
func (v Vec3d) TryNormalize(eps float64) (Vec3, bool) {
	l := v.Length()
	if l <= eps || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec3{}, false
	}
	return Vec3{float32(v.X / l), float32(v.Y / l), float32(v.Z / l)}, true
}
