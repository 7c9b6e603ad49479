// Package math provides the small vector and rectangle types used by the
// terrain generator.
package math

import "math"

// Vec2 is a 2D vector. Terrain code uses it for the XY plane of the grid.
type Vec2 struct {
	X, Y float32
}

// FromAngle returns the point on the unit circle at theta radians.
func FromAngle(theta float64) Vec2 {
	return Vec2{float32(math.Cos(theta)), float32(math.Sin(theta))}
}
