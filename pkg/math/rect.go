package math

import "math"

// Rect is an axis-aligned rectangle in the XY plane.
type Rect struct {
	MinX, MaxX float32
	MinY, MaxY float32
}

// Valid reports whether the rectangle is finite and has positive area.
func (r Rect) Valid() bool {
	for _, c := range [4]float32{r.MinX, r.MaxX, r.MinY, r.MaxY} {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return r.MinX < r.MaxX && r.MinY < r.MaxY
}

// Lerp maps (u, v) in [0,1]² onto the rectangle.
// The interpolation runs in float64 so lattice points land exactly on the
// corners when u or v is 0 or 1.
func (r Rect) Lerp(u, v float64) Vec2 {
	x := float64(r.MinX) + u*(float64(r.MaxX)-float64(r.MinX))
	y := float64(r.MinY) + v*(float64(r.MaxY)-float64(r.MinY))
	return Vec2{float32(x), float32(y)}
}
