package terrain

import (
	"fmt"

	"github.com/Faultbox/faultmesh/pkg/math"
)

// Plane is the read-only XY channel of a grid.
type Plane struct {
	xy []math.Vec2
}

// Len returns the number of vertices.
func (p Plane) Len() int {
	return len(p.xy)
}

// At returns the XY position of vertex idx.
func (p Plane) At(idx int) math.Vec2 {
	return p.xy[idx]
}

// HeightField is the Z channel of a grid. The fault displacer is its only writer.
type HeightField struct {
	z []float32
}

// Len returns the number of vertices.
func (h *HeightField) Len() int {
	return len(h.z)
}

// At returns the elevation of vertex idx.
func (h *HeightField) At(idx int) float32 {
	return h.z[idx]
}

// Values returns a copy of all elevations in vertex order.
func (h *HeightField) Values() []float32 {
	out := make([]float32, len(h.z))
	copy(out, h.z)
	return out
}

// Range returns the lowest and highest elevation.
func (h *HeightField) Range() (lo, hi float32) {
	if len(h.z) == 0 {
		return 0, 0
	}
	lo, hi = h.z[0], h.z[0]
	for _, z := range h.z[1:] {
		lo = min(lo, z)
		hi = max(hi, z)
	}
	return lo, hi
}

func (h *HeightField) add(idx int, d float32) {
	h.z[idx] += d
}

// NormalField is the per-vertex normal channel of a grid.
// The normal estimator is its only writer.
type NormalField struct {
	n []math.Vec3
}

// Len returns the number of vertices.
func (f *NormalField) Len() int {
	return len(f.n)
}

// At returns the normal of vertex idx.
func (f *NormalField) At(idx int) math.Vec3 {
	return f.n[idx]
}

func (f *NormalField) fill(v math.Vec3) {
	for i := range f.n {
		f.n[i] = v
	}
}

func newNormalField(n int) *NormalField {
	f := &NormalField{n: make([]math.Vec3, n)}
	f.fill(math.UnitZ)
	return f
}

// Grid is the terrain being generated: an immutable lattice with its plane and
// topology, plus the mutable height and normal channels.
type Grid struct {
	lattice   Lattice
	plane     Plane
	heights   *HeightField
	normals   *NormalField
	triangles []Triangle
}

// BuildGrid lays out a flat grid over the lattice.
// All elevations start at 0 and all normals at (0, 0, 1).
func BuildGrid(lat Lattice) (*Grid, error) {
	if err := lat.Validate(); err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}

	n := lat.NumVertices()
	xy := make([]math.Vec2, 0, n)
	for i := 0; i <= lat.Div; i++ {
		for j := 0; j <= lat.Div; j++ {
			xy = append(xy, lat.Point(i, j))
		}
	}

	triangles := make([]Triangle, 0, lat.NumFaces())
	for i := 0; i < lat.Div; i++ {
		for j := 0; j < lat.Div; j++ {
			cell := lat.Cell(i, j)
			triangles = append(triangles, cell[0], cell[1])
		}
	}

	return &Grid{
		lattice:   lat,
		plane:     Plane{xy: xy},
		heights:   &HeightField{z: make([]float32, n)},
		normals:   newNormalField(n),
		triangles: triangles,
	}, nil
}

// Lattice returns the lattice the grid was built from.
func (g *Grid) Lattice() Lattice {
	return g.lattice
}

// Plane returns the XY channel.
func (g *Grid) Plane() Plane {
	return g.plane
}

// Heights returns the Z channel.
func (g *Grid) Heights() *HeightField {
	return g.heights
}

// Normals returns the normal channel.
func (g *Grid) Normals() *NormalField {
	return g.normals
}

// Triangles returns the grid topology. Callers must not modify it.
func (g *Grid) Triangles() []Triangle {
	return g.triangles
}

// NumVertices returns the vertex count.
func (g *Grid) NumVertices() int {
	return g.plane.Len()
}

// NumFaces returns the triangle count.
func (g *Grid) NumFaces() int {
	return len(g.triangles)
}

// Position returns the full 3D position of vertex idx.
func (g *Grid) Position(idx int) math.Vec3 {
	p := g.plane.At(idx)
	return math.Vec3{X: p.X, Y: p.Y, Z: g.heights.At(idx)}
}

// PositionAt returns the position of vertex (i, j).
func (g *Grid) PositionAt(i, j int) math.Vec3 {
	return g.Position(g.lattice.Index(i, j))
}

// NormalAt returns the normal of vertex (i, j).
func (g *Grid) NormalAt(i, j int) math.Vec3 {
	return g.normals.At(g.lattice.Index(i, j))
}
