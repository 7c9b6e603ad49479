package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteOBJ writes a triangle mesh as Wavefront OBJ text with per-vertex
// normals. Faces reference each vertex's own normal ("f a//a b//b c//c").
func WriteOBJ(w io.Writer, positions, normals []float32, triangles []uint32) error {
	if len(positions)%3 != 0 || len(triangles)%3 != 0 {
		return fmt.Errorf("%w: buffer lengths not multiples of 3", ErrInvalidTMBMesh)
	}
	if len(normals) != 0 && len(normals) != len(positions) {
		return fmt.Errorf("%w: %d normals for %d positions", ErrInvalidTMBMesh, len(normals), len(positions))
	}

	bw := bufio.NewWriterSize(w, 64*1024)
	fmt.Fprintf(bw, "# faultmesh terrain\n# vertices %d\n# faces %d\n",
		len(positions)/3, len(triangles)/3)

	var line []byte
	writeVec := func(prefix string, v []float32) {
		line = append(line[:0], prefix...)
		for k, c := range v {
			if k > 0 {
				line = append(line, ' ')
			}
			line = strconv.AppendFloat(line, float64(c), 'g', -1, 32)
		}
		line = append(line, '\n')
		bw.Write(line)
	}

	for i := 0; i < len(positions); i += 3 {
		writeVec("v ", positions[i:i+3])
	}
	for i := 0; i < len(normals); i += 3 {
		writeVec("vn ", normals[i:i+3])
	}

	withNormals := len(normals) != 0
	for f := 0; f < len(triangles); f += 3 {
		line = append(line[:0], 'f')
		for _, idx := range triangles[f : f+3] {
			// OBJ indices are 1-based
			ref := strconv.FormatUint(uint64(idx)+1, 10)
			line = append(line, ' ')
			line = append(line, ref...)
			if withNormals {
				line = append(line, "//"...)
				line = append(line, ref...)
			}
		}
		line = append(line, '\n')
		bw.Write(line)
	}

	return bw.Flush()
}
