package terrain

import "github.com/Faultbox/faultmesh/pkg/math"

// MeshBuffers holds flat vertex and index arrays ready for GPU upload.
type MeshBuffers struct {
	Positions []float32 // x, y, z per vertex
	Normals   []float32 // nx, ny, nz per vertex
	Triangles []uint32  // 3 indices per face
	Edges     []uint32  // 6 indices per face, for wireframe line drawing
}

// NumVertices returns the vertex count.
func (m *MeshBuffers) NumVertices() int {
	return len(m.Positions) / 3
}

// NumFaces returns the triangle count.
func (m *MeshBuffers) NumFaces() int {
	return len(m.Triangles) / 3
}

// Position returns vertex idx as a vector.
func (m *MeshBuffers) Position(idx int) math.Vec3 {
	return math.Vec3{X: m.Positions[3*idx], Y: m.Positions[3*idx+1], Z: m.Positions[3*idx+2]}
}

// Normal returns the normal of vertex idx.
func (m *MeshBuffers) Normal(idx int) math.Vec3 {
	return math.Vec3{X: m.Normals[3*idx], Y: m.Normals[3*idx+1], Z: m.Normals[3*idx+2]}
}

// Bounds returns the bounding box of all positions.
func (m *MeshBuffers) Bounds() Bounds {
	if m.NumVertices() == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Position(0), Max: m.Position(0)}
	for i := 1; i < m.NumVertices(); i++ {
		p := m.Position(i)
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// BuildEdges expands a triangle index list into line pairs: (a,b), (b,c), (c,a)
// per triangle. Shared edges are emitted once per adjacent triangle.
func BuildEdges(tris []uint32) []uint32 {
	edges := make([]uint32, 0, 2*len(tris))
	for f := 0; f+2 < len(tris); f += 3 {
		a, b, c := tris[f], tris[f+1], tris[f+2]
		edges = append(edges, a, b, b, c, c, a)
	}
	return edges
}

// FlattenTriangles converts a triangle list into a flat index buffer.
func FlattenTriangles(tris []Triangle) []uint32 {
	out := make([]uint32, 0, 3*len(tris))
	for _, t := range tris {
		out = append(out, t[0], t[1], t[2])
	}
	return out
}

// Buffers snapshots the grid into flat buffers.
func (g *Grid) Buffers() *MeshBuffers {
	n := g.NumVertices()
	positions := make([]float32, 0, 3*n)
	normals := make([]float32, 0, 3*n)
	for i := 0; i < n; i++ {
		p := g.Position(i)
		nv := g.normals.At(i)
		positions = append(positions, p.X, p.Y, p.Z)
		normals = append(normals, nv.X, nv.Y, nv.Z)
	}

	tris := FlattenTriangles(g.triangles)
	return &MeshBuffers{
		Positions: positions,
		Normals:   normals,
		Triangles: tris,
		Edges:     BuildEdges(tris),
	}
}
