package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/faultmesh/internal/config"
	"github.com/Faultbox/faultmesh/internal/terrain"
	"github.com/Faultbox/faultmesh/pkg/formats"
)

// toTMB packs a generated terrain into the binary mesh format.
func toTMB(t *terrain.Terrain, compressed bool) *formats.TMB {
	b := t.Params.Bounds
	return &formats.TMB{
		Compressed: compressed,
		Div:        uint32(t.Params.Div),
		Bounds:     [4]float32{b.MinX, b.MaxX, b.MinY, b.MaxY},
		Positions:  t.Buffers.Positions,
		Normals:    t.Buffers.Normals,
		Triangles:  t.Buffers.Triangles,
		Edges:      t.Buffers.Edges,
	}
}

// writeMesh writes t in the configured format and returns the file size.
func writeMesh(out config.OutputConfig, t *terrain.Terrain) (int64, error) {
	switch out.Format {
	case config.FormatTMB:
		compressed := out.Compression == config.CompressionZstd
		if err := formats.WriteTMBFile(out.Path, toTMB(t, compressed)); err != nil {
			return 0, err
		}
	case config.FormatOBJ:
		if err := writeOBJFile(out.Path, t.Buffers); err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("unknown output format %q", out.Format)
	}

	st, err := os.Stat(out.Path)
	if err != nil {
		return 0, err
	}
	return st.Size(), nil
}

func writeOBJFile(path string, b *terrain.MeshBuffers) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := formats.WriteOBJ(f, b.Positions, b.Normals, b.Triangles); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
