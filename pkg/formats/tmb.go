package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// TMB format errors.
var (
	ErrInvalidTMBMagic       = errors.New("invalid TMB magic: expected 'FTMB'")
	ErrUnsupportedTMBVersion = errors.New("unsupported TMB version")
	ErrTruncatedTMBData      = errors.New("truncated TMB data")
	ErrInvalidTMBMesh        = errors.New("inconsistent TMB mesh")
)

const (
	tmbMagic      = "FTMB"
	tmbHeaderSize = 7 // magic + major + minor + flags

	tmbFlagZstd = 1 << 0

	// maxTMBPayload caps decompressed payloads at 1 GiB.
	maxTMBPayload = 1 << 30
)

// TMBVersion represents the TMB file version.
type TMBVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v TMBVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentTMBVersion is the version written by WriteTMB.
var CurrentTMBVersion = TMBVersion{Major: 1, Minor: 0}

// TMB is a terrain mesh binary: the flat buffers of a generated terrain plus
// the grid it was built from.
//
// Layout (little-endian):
//
//	"FTMB" major minor flags
//	payload, zstd-compressed when flags&1 is set:
//	  div u32, minX maxX minY maxY f32, vertexCount u32, faceCount u32
//	  positions f32[3n], normals f32[3n], triangles u32[3m], edges u32[6m]
type TMB struct {
	Version    TMBVersion
	Compressed bool

	Div    uint32
	Bounds [4]float32 // minX, maxX, minY, maxY

	Positions []float32
	Normals   []float32
	Triangles []uint32
	Edges     []uint32
}

type tmbCounts struct {
	Div         uint32
	Bounds      [4]float32
	VertexCount uint32
	FaceCount   uint32
}

// NumVertices returns the vertex count.
func (t *TMB) NumVertices() int {
	return len(t.Positions) / 3
}

// NumFaces returns the triangle count.
func (t *TMB) NumFaces() int {
	return len(t.Triangles) / 3
}

// HeightRange returns the minimum and maximum Z of all vertices.
func (t *TMB) HeightRange() (lo, hi float32) {
	if t.NumVertices() == 0 {
		return 0, 0
	}
	lo, hi = t.Positions[2], t.Positions[2]
	for i := 5; i < len(t.Positions); i += 3 {
		lo = min(lo, t.Positions[i])
		hi = max(hi, t.Positions[i])
	}
	return lo, hi
}

func (t *TMB) validate() error {
	n, m := t.NumVertices(), t.NumFaces()
	switch {
	case len(t.Positions) != 3*n || len(t.Triangles) != 3*m:
		return fmt.Errorf("%w: buffer lengths not multiples of 3", ErrInvalidTMBMesh)
	case len(t.Normals) != len(t.Positions):
		return fmt.Errorf("%w: %d normals for %d positions", ErrInvalidTMBMesh, len(t.Normals), len(t.Positions))
	case len(t.Edges) != 2*len(t.Triangles):
		return fmt.Errorf("%w: %d edge indices for %d triangle indices", ErrInvalidTMBMesh, len(t.Edges), len(t.Triangles))
	}
	for _, buf := range [][]uint32{t.Triangles, t.Edges} {
		for i, idx := range buf {
			if int(idx) >= n {
				return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrInvalidTMBMesh, idx, i, n)
			}
		}
	}
	return nil
}

// WriteTMB encodes t to w. The payload is zstd-compressed when t.Compressed is set.
func WriteTMB(w io.Writer, t *TMB) error {
	if err := t.validate(); err != nil {
		return err
	}

	var flags uint8
	if t.Compressed {
		flags |= tmbFlagZstd
	}
	header := []byte{tmbMagic[0], tmbMagic[1], tmbMagic[2], tmbMagic[3],
		CurrentTMBVersion.Major, CurrentTMBVersion.Minor, flags}
	if _, err := w.Write(header); err != nil {
		return err
	}

	if !t.Compressed {
		bw := bufio.NewWriterSize(w, 256*1024)
		if err := writeTMBPayload(bw, t); err != nil {
			return err
		}
		return bw.Flush()
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)
	if err := writeTMBPayload(bw, t); err != nil {
		enc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func writeTMBPayload(w io.Writer, t *TMB) error {
	counts := tmbCounts{
		Div:         t.Div,
		Bounds:      t.Bounds,
		VertexCount: uint32(t.NumVertices()),
		FaceCount:   uint32(t.NumFaces()),
	}
	for _, v := range []any{counts, t.Positions, t.Normals, t.Triangles, t.Edges} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("writing TMB payload: %w", err)
		}
	}
	return nil
}

// WriteTMBFile writes t to path, creating parent directories as needed.
func WriteTMBFile(path string, t *TMB) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := WriteTMB(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ParseTMB parses a TMB file from raw bytes.
func ParseTMB(data []byte) (*TMB, error) {
	if len(data) < tmbHeaderSize {
		return nil, ErrTruncatedTMBData
	}
	if string(data[0:4]) != tmbMagic {
		return nil, ErrInvalidTMBMagic
	}

	version := TMBVersion{Major: data[4], Minor: data[5]}
	if version.Major != CurrentTMBVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTMBVersion, version)
	}
	flags := data[6]

	payload := data[tmbHeaderSize:]
	if flags&tmbFlagZstd != 0 {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxTMBPayload))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		payload, err = dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("decompressing TMB payload: %w", err)
		}
	}

	t, err := parseTMBPayload(payload)
	if err != nil {
		return nil, err
	}
	t.Version = version
	t.Compressed = flags&tmbFlagZstd != 0
	return t, nil
}

func parseTMBPayload(payload []byte) (*TMB, error) {
	r := bytes.NewReader(payload)

	var counts tmbCounts
	if err := binary.Read(r, binary.LittleEndian, &counts); err != nil {
		return nil, fmt.Errorf("%w: reading counts", ErrTruncatedTMBData)
	}

	// 3n positions + 3n normals + 3m triangles + 6m edges, 4 bytes each
	n, m := int64(counts.VertexCount), int64(counts.FaceCount)
	if need := 4 * (6*n + 9*m); need > int64(r.Len()) {
		return nil, fmt.Errorf("%w: need %d bytes for %d vertices and %d faces, have %d",
			ErrTruncatedTMBData, need, n, m, r.Len())
	}

	t := &TMB{
		Div:       counts.Div,
		Bounds:    counts.Bounds,
		Positions: make([]float32, 3*n),
		Normals:   make([]float32, 3*n),
		Triangles: make([]uint32, 3*m),
		Edges:     make([]uint32, 6*m),
	}
	for _, v := range []any{t.Positions, t.Normals, t.Triangles, t.Edges} {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("%w: reading buffers", ErrTruncatedTMBData)
		}
	}

	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseTMBFile parses a TMB file from disk.
func ParseTMBFile(path string) (*TMB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading TMB file: %w", err)
	}
	return ParseTMB(data)
}
