package terrain

import (
	stdmath "math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/faultmesh/pkg/math"
)

// Fault is one cutting draw of the fault algorithm: a point P inside the
// terrain bounds and a point N on the unit circle.
type Fault struct {
	P math.Vec2
	N math.Vec2
}

// Side returns dot(v - P, N - P) evaluated in float64.
// Positive values are raised, negative values lowered, zero is left alone.
func (f Fault) Side(v math.Vec2) float64 {
	px, py := float64(f.P.X), float64(f.P.Y)
	return (float64(v.X)-px)*(float64(f.N.X)-px) + (float64(v.Y)-py)*(float64(f.N.Y)-py)
}

// FaultSource produces the sequence of faults applied to a terrain.
type FaultSource interface {
	Next(bounds math.Rect) Fault
}

// RandomFaults draws faults from a seeded pseudo-random stream.
// Each draw consumes three values in order: P.X, P.Y and the angle of N.
type RandomFaults struct {
	rng *rand.Rand
}

// NewRandomFaults returns a fault source seeded with seed.
func NewRandomFaults(seed int64) *RandomFaults {
	return &RandomFaults{rng: rand.New(rand.NewSource(seed))}
}

// Next draws a point uniformly inside bounds and an angle uniformly in [0, 2π).
func (r *RandomFaults) Next(bounds math.Rect) Fault {
	u := r.rng.Float64()
	v := r.rng.Float64()
	theta := 2 * stdmath.Pi * r.rng.Float64()
	return Fault{
		P: bounds.Lerp(u, v),
		N: math.FromAngle(theta),
	}
}

// FaultList replays a fixed list of faults, wrapping around at the end.
type FaultList struct {
	Faults []Fault
	next   int
}

// Next returns the next fault in the list. An empty list yields the zero Fault.
func (l *FaultList) Next(math.Rect) Fault {
	if len(l.Faults) == 0 {
		return Fault{}
	}
	f := l.Faults[l.next%len(l.Faults)]
	l.next++
	return f
}

// FaultStats counts per-vertex outcomes summed over all iterations.
type FaultStats struct {
	Iterations int
	Raised     int
	Lowered    int
	Untouched  int
}

func (s *FaultStats) merge(o FaultStats) {
	s.Iterations += o.Iterations
	s.Raised += o.Raised
	s.Lowered += o.Lowered
	s.Untouched += o.Untouched
}

// FaultDisplacer runs the iterative fault algorithm over a height field.
type FaultDisplacer struct {
	Delta      float32
	Iterations int
	Log        *zap.Logger
}

// Displace applies Iterations faults drawn from src. Iterations run strictly
// in order because every iteration builds on the elevations of the previous one.
func (d FaultDisplacer) Displace(bounds math.Rect, plane Plane, heights *HeightField, src FaultSource) FaultStats {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	var stats FaultStats
	for k := 0; k < d.Iterations; k++ {
		f := src.Next(bounds)
		stats.merge(ApplyFault(plane, heights, f, d.Delta))
	}

	log.Debug("fault displacement done",
		zap.Int("iterations", stats.Iterations),
		zap.Float32("delta", d.Delta),
		zap.Int("raised", stats.Raised),
		zap.Int("lowered", stats.Lowered),
		zap.Int("untouched", stats.Untouched))
	return stats
}

// ApplyFault runs a single fault iteration: every vertex strictly on the
// positive side of f moves up by delta, every vertex strictly on the negative
// side moves down by delta.
func ApplyFault(plane Plane, heights *HeightField, f Fault, delta float32) FaultStats {
	if plane.Len() != heights.Len() {
		panic("terrain: plane and height field belong to different grids")
	}

	stats := FaultStats{Iterations: 1}
	for idx := 0; idx < plane.Len(); idx++ {
		side := f.Side(plane.At(idx))
		switch {
		case side > 0:
			heights.add(idx, delta)
			stats.Raised++
		case side < 0:
			heights.add(idx, -delta)
			stats.Lowered++
		default:
			stats.Untouched++
		}
	}
	return stats
}
