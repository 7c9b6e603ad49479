package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/faultmesh/pkg/math"
)

func TestBuildEdges(t *testing.T) {
	edges := BuildEdges([]uint32{0, 1, 2, 1, 3, 2})
	assert.Equal(t, []uint32{
		0, 1, 1, 2, 2, 0,
		1, 3, 3, 2, 2, 1,
	}, edges)
	assert.Empty(t, BuildEdges(nil))
}

func TestBuffersLayout(t *testing.T) {
	for div := 1; div <= 9; div++ {
		g := buildTestGrid(t, div, unitSquare)
		b := g.Buffers()

		n, m := (div+1)*(div+1), 2*div*div
		assert.Len(t, b.Positions, 3*n)
		assert.Len(t, b.Normals, 3*n)
		assert.Len(t, b.Triangles, 3*m)
		assert.Len(t, b.Edges, 6*m)
		assert.Equal(t, 2*len(b.Triangles), len(b.Edges))
		assert.Equal(t, n, b.NumVertices())
		assert.Equal(t, m, b.NumFaces())
	}
}

func TestBuffersMatchGrid(t *testing.T) {
	g := displacedGrid(t, 4, 3)
	NormalEstimator{}.Estimate(g, g.Normals())
	b := g.Buffers()

	for i := 0; i < g.NumVertices(); i++ {
		assert.Equal(t, g.Position(i), b.Position(i))
		assert.Equal(t, g.Normals().At(i), b.Normal(i))
	}
	for f, tri := range g.Triangles() {
		assert.Equal(t, tri[:], b.Triangles[3*f:3*f+3])
	}
}

func TestBuffersAreSnapshot(t *testing.T) {
	g := buildTestGrid(t, 1, unitSquare)
	b := g.Buffers()
	ApplyFault(g.Plane(), g.Heights(), Fault{N: math.Vec2{X: 1}}, 1)

	assert.Equal(t, float32(0), b.Position(1).Z)
	assert.Equal(t, float32(1), g.Position(1).Z)
}

func TestBuffersBounds(t *testing.T) {
	g := buildTestGrid(t, 1, math.Rect{MinX: 2, MaxX: 4, MinY: -1, MaxY: 0})
	ApplyFault(g.Plane(), g.Heights(), Fault{P: math.Vec2{X: 3}, N: math.Vec2{X: 4}}, 0.5)

	bounds := g.Buffers().Bounds()
	assert.Equal(t, math.Vec3{X: 2, Y: -1, Z: -0.5}, bounds.Min)
	assert.Equal(t, math.Vec3{X: 4, Y: 0, Z: 0.5}, bounds.Max)

	require.Equal(t, Bounds{}, (&MeshBuffers{}).Bounds())
}
