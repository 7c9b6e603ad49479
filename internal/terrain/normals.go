package terrain

import (
	"go.uber.org/zap"

	"github.com/Faultbox/faultmesh/pkg/math"
)

// DegenerateEpsilon is the accumulated normal magnitude at or below which a
// vertex normal is considered undefined.
const DegenerateEpsilon = 1e-12

// Surface is the read-only view of positions and topology used for normal
// estimation.
type Surface interface {
	NumVertices() int
	Position(idx int) math.Vec3
	Triangles() []Triangle
}

// NormalStats reports the outcome of a normal estimation pass.
type NormalStats struct {
	Vertices   int
	Degenerate int
}

// NormalEstimator computes smooth area-weighted vertex normals.
type NormalEstimator struct {
	Log *zap.Logger
}

// Estimate recomputes every normal in normals from scratch. Each triangle adds
// its unnormalized face normal cross(v2-v1, v3-v1) to its three vertices, so
// larger faces weigh more. Sums are kept in float64. Vertices whose sum
// vanishes get (0, 0, 1).
func (e NormalEstimator) Estimate(s Surface, normals *NormalField) NormalStats {
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	if s.NumVertices() != normals.Len() {
		panic("terrain: surface and normal field belong to different grids")
	}

	acc := make([]math.Vec3d, normals.Len())
	for _, tri := range s.Triangles() {
		v1 := s.Position(int(tri[0])).F64()
		v2 := s.Position(int(tri[1])).F64()
		v3 := s.Position(int(tri[2])).F64()
		face := v2.Sub(v1).Cross(v3.Sub(v1))
		for _, idx := range tri {
			acc[idx] = acc[idx].Add(face)
		}
	}

	stats := NormalStats{Vertices: normals.Len()}
	for i, sum := range acc {
		n, ok := sum.TryNormalize(DegenerateEpsilon)
		if !ok {
			n = math.UnitZ
			stats.Degenerate++
		}
		normals.n[i] = n
	}

	if stats.Degenerate > 0 {
		log.Warn("repaired degenerate vertex normals",
			zap.Int("degenerate", stats.Degenerate),
			zap.Int("vertices", stats.Vertices))
	}
	return stats
}

// FaceNormal returns the unit normal of tri, or the zero vector for a
// zero-area triangle.
func FaceNormal(s Surface, tri Triangle) math.Vec3 {
	v1 := s.Position(int(tri[0])).F64()
	v2 := s.Position(int(tri[1])).F64()
	v3 := s.Position(int(tri[2])).F64()
	n, _ := v2.Sub(v1).Cross(v3.Sub(v1)).TryNormalize(0)
	return n
}
