package formats

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

// createTestTMB returns a single quad split into two triangles.
func createTestTMB(compressed bool) *TMB {
	tris := []uint32{0, 1, 2, 1, 3, 2}
	return &TMB{
		Compressed: compressed,
		Div:        1,
		Bounds:     [4]float32{-1, 1, -1, 1},
		Positions: []float32{
			-1, -1, -0.5,
			1, -1, 0.5,
			-1, 1, -0.5,
			1, 1, 0.5,
		},
		Normals: []float32{
			0, 0, 1,
			0, 0, 1,
			0, 0, 1,
			0, 0, 1,
		},
		Triangles: tris,
		Edges:     []uint32{0, 1, 1, 2, 2, 0, 1, 3, 3, 2, 2, 1},
	}
}

func encodeTMB(t *testing.T, tmb *TMB) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteTMB(&buf, tmb); err != nil {
		t.Fatalf("WriteTMB failed: %v", err)
	}
	return buf.Bytes()
}

func TestTMBRoundTrip(t *testing.T) {
	for _, compressed := range []bool{false, true} {
		want := createTestTMB(compressed)
		got, err := ParseTMB(encodeTMB(t, want))
		if err != nil {
			t.Fatalf("compressed=%v: ParseTMB failed: %v", compressed, err)
		}

		if got.Version != CurrentTMBVersion {
			t.Errorf("expected version %s, got %s", CurrentTMBVersion, got.Version)
		}
		if got.Compressed != compressed {
			t.Errorf("expected compressed=%v, got %v", compressed, got.Compressed)
		}
		if got.Div != 1 || got.Bounds != want.Bounds {
			t.Errorf("header mismatch: div=%d bounds=%v", got.Div, got.Bounds)
		}
		if !reflect.DeepEqual(got.Positions, want.Positions) {
			t.Errorf("positions mismatch: %v", got.Positions)
		}
		if !reflect.DeepEqual(got.Normals, want.Normals) {
			t.Errorf("normals mismatch: %v", got.Normals)
		}
		if !reflect.DeepEqual(got.Triangles, want.Triangles) {
			t.Errorf("triangles mismatch: %v", got.Triangles)
		}
		if !reflect.DeepEqual(got.Edges, want.Edges) {
			t.Errorf("edges mismatch: %v", got.Edges)
		}
	}
}

func TestTMBHeader(t *testing.T) {
	data := encodeTMB(t, createTestTMB(true))
	if string(data[:4]) != "FTMB" {
		t.Errorf("expected magic FTMB, got %q", data[:4])
	}
	if data[4] != 1 || data[5] != 0 {
		t.Errorf("expected version 1.0, got %d.%d", data[4], data[5])
	}
	if data[6]&tmbFlagZstd == 0 {
		t.Error("expected zstd flag to be set")
	}
}

func TestTMBCompressionShrinksFlatMesh(t *testing.T) {
	tmb := createTestTMB(false)
	// Repeat the quad to get a payload worth compressing.
	for i := 0; i < 500; i++ {
		tmb.Positions = append(tmb.Positions, 0, 0, 0)
		tmb.Normals = append(tmb.Normals, 0, 0, 1)
	}
	raw := encodeTMB(t, tmb)
	tmb.Compressed = true
	packed := encodeTMB(t, tmb)

	if len(packed) >= len(raw) {
		t.Errorf("expected compressed size < %d, got %d", len(raw), len(packed))
	}
}

func TestParseTMB_InvalidMagic(t *testing.T) {
	data := encodeTMB(t, createTestTMB(false))
	copy(data, "GRAT")

	if _, err := ParseTMB(data); !errors.Is(err, ErrInvalidTMBMagic) {
		t.Errorf("expected ErrInvalidTMBMagic, got %v", err)
	}
}

func TestParseTMB_UnsupportedVersion(t *testing.T) {
	data := encodeTMB(t, createTestTMB(false))
	data[4] = 9

	if _, err := ParseTMB(data); !errors.Is(err, ErrUnsupportedTMBVersion) {
		t.Errorf("expected ErrUnsupportedTMBVersion, got %v", err)
	}
}

func TestParseTMB_Truncated(t *testing.T) {
	data := encodeTMB(t, createTestTMB(false))

	for _, n := range []int{0, 5, tmbHeaderSize + 4, len(data) - 1} {
		if _, err := ParseTMB(data[:n]); !errors.Is(err, ErrTruncatedTMBData) {
			t.Errorf("len %d: expected ErrTruncatedTMBData, got %v", n, err)
		}
	}
}

func TestParseTMB_CorruptCompressed(t *testing.T) {
	data := encodeTMB(t, createTestTMB(true))
	for i := tmbHeaderSize; i < len(data); i++ {
		data[i] ^= 0xFF
	}

	if _, err := ParseTMB(data); err == nil {
		t.Error("expected error for corrupt zstd payload")
	}
}

func TestWriteTMB_RejectsBadIndex(t *testing.T) {
	tmb := createTestTMB(false)
	tmb.Triangles[4] = 10

	var buf bytes.Buffer
	if err := WriteTMB(&buf, tmb); !errors.Is(err, ErrInvalidTMBMesh) {
		t.Errorf("expected ErrInvalidTMBMesh, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written for an invalid mesh")
	}
}

func TestWriteTMB_RejectsEdgeMismatch(t *testing.T) {
	tmb := createTestTMB(false)
	tmb.Edges = tmb.Edges[:6]

	if err := WriteTMB(&bytes.Buffer{}, tmb); !errors.Is(err, ErrInvalidTMBMesh) {
		t.Errorf("expected ErrInvalidTMBMesh, got %v", err)
	}
}

func TestTMBFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "terrain.tmb")
	if err := WriteTMBFile(path, createTestTMB(true)); err != nil {
		t.Fatalf("WriteTMBFile failed: %v", err)
	}

	tmb, err := ParseTMBFile(path)
	if err != nil {
		t.Fatalf("ParseTMBFile failed: %v", err)
	}
	if tmb.NumVertices() != 4 || tmb.NumFaces() != 2 {
		t.Errorf("expected 4 vertices and 2 faces, got %d and %d", tmb.NumVertices(), tmb.NumFaces())
	}

	if _, err := ParseTMBFile(filepath.Join(t.TempDir(), "missing.tmb")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTMBHeightRange(t *testing.T) {
	lo, hi := createTestTMB(false).HeightRange()
	if lo != -0.5 || hi != 0.5 {
		t.Errorf("expected range [-0.5, 0.5], got [%g, %g]", lo, hi)
	}

	lo, hi = (&TMB{}).HeightRange()
	if lo != 0 || hi != 0 {
		t.Errorf("expected empty range, got [%g, %g]", lo, hi)
	}
}
