package terrain

import (
	"fmt"

	"github.com/Faultbox/faultmesh/pkg/math"
)

// Lattice describes a regular (Div+1)x(Div+1) vertex lattice spanning Bounds.
// Vertex (i, j) is row i (Y axis) and column j (X axis), stored row-major.
type Lattice struct {
	Div    int
	Bounds math.Rect
}

// NewLattice returns a validated lattice.
func NewLattice(div int, bounds math.Rect) (Lattice, error) {
	l := Lattice{Div: div, Bounds: bounds}
	if err := l.Validate(); err != nil {
		return Lattice{}, err
	}
	return l, nil
}

// Validate checks the lattice preconditions.
func (l Lattice) Validate() error {
	if l.Div < 1 || l.Div > MaxDivisions {
		return fmt.Errorf("%w: %d (must be in [1, %d])", ErrInvalidDivisions, l.Div, MaxDivisions)
	}
	if !l.Bounds.Valid() {
		b := l.Bounds
		return fmt.Errorf("%w: x=[%g, %g] y=[%g, %g]", ErrDegenerateBounds, b.MinX, b.MaxX, b.MinY, b.MaxY)
	}
	return nil
}

// Stride returns the number of vertices per row.
func (l Lattice) Stride() int {
	return l.Div + 1
}

// NumVertices returns (Div+1)².
func (l Lattice) NumVertices() int {
	return l.Stride() * l.Stride()
}

// NumFaces returns 2*Div².
func (l Lattice) NumFaces() int {
	return 2 * l.Div * l.Div
}

// Index returns the flat index of vertex (i, j).
// Panics if (i, j) is outside the lattice.
func (l Lattice) Index(i, j int) int {
	s := l.Stride()
	if i < 0 || j < 0 || i >= s || j >= s {
		panic(fmt.Sprintf("terrain: vertex (%d, %d) out of range for %dx%d lattice", i, j, s, s))
	}
	return i*s + j
}

// RowCol is the inverse of Index.
func (l Lattice) RowCol(idx int) (i, j int) {
	if idx < 0 || idx >= l.NumVertices() {
		panic(fmt.Sprintf("terrain: vertex index %d out of range [0, %d)", idx, l.NumVertices()))
	}
	s := l.Stride()
	return idx / s, idx % s
}

// Point returns the XY position of vertex (i, j).
func (l Lattice) Point(i, j int) math.Vec2 {
	l.Index(i, j)
	return l.Bounds.Lerp(float64(j)/float64(l.Div), float64(i)/float64(l.Div))
}

// Cell returns the two triangles covering cell (i, j).
// Corners: bl=(i,j), br=(i,j+1), tl=(i+1,j), tr=(i+1,j+1).
// Both triangles wind counter-clockwise: (bl, br, tl) and (br, tr, tl).
func (l Lattice) Cell(i, j int) [2]Triangle {
	if i < 0 || j < 0 || i >= l.Div || j >= l.Div {
		panic(fmt.Sprintf("terrain: cell (%d, %d) out of range for %dx%d cells", i, j, l.Div, l.Div))
	}
	bl := uint32(l.Index(i, j))
	br := uint32(l.Index(i, j+1))
	tl := uint32(l.Index(i+1, j))
	tr := uint32(l.Index(i+1, j+1))
	return [2]Triangle{
		{bl, br, tl},
		{br, tr, tl},
	}
}
