// Package terrain builds fault-displaced terrain meshes.
//
// Generation runs in fixed stages over a single Grid: the lattice is laid out
// flat, the fault algorithm perturbs the height channel, and smooth normals
// are estimated from the final positions. The result is exposed as flat
// buffers ready for GPU upload.
package terrain

import (
	"errors"

	"github.com/Faultbox/faultmesh/pkg/math"
)

// Precondition errors.
var (
	ErrInvalidDivisions   = errors.New("invalid grid divisions")
	ErrDegenerateBounds   = errors.New("degenerate bounding rectangle")
	ErrNegativeIterations = errors.New("negative fault iterations")
	ErrInvalidDelta       = errors.New("invalid fault delta")
)

// MaxDivisions keeps the vertex count addressable by uint32 indices.
const MaxDivisions = 65534

// Triangle holds three vertex indices in counter-clockwise order seen from +Z.
type Triangle [3]uint32

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}
