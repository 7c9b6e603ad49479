package formats

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteOBJ(t *testing.T) {
	tmb := createTestTMB(false)

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, tmb.Positions, tmb.Normals, tmb.Triangles); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	var v, vn, f []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		switch {
		case strings.HasPrefix(line, "v "):
			v = append(v, line)
		case strings.HasPrefix(line, "vn "):
			vn = append(vn, line)
		case strings.HasPrefix(line, "f "):
			f = append(f, line)
		}
	}

	if len(v) != 4 || len(vn) != 4 || len(f) != 2 {
		t.Fatalf("expected 4 v, 4 vn, 2 f lines, got %d, %d, %d", len(v), len(vn), len(f))
	}
	if v[1] != "v 1 -1 0.5" {
		t.Errorf("unexpected vertex line %q", v[1])
	}
	if vn[0] != "vn 0 0 1" {
		t.Errorf("unexpected normal line %q", vn[0])
	}
	if f[0] != "f 1//1 2//2 3//3" {
		t.Errorf("unexpected face line %q", f[0])
	}
	if f[1] != "f 2//2 4//4 3//3" {
		t.Errorf("unexpected face line %q", f[1])
	}
}

func TestWriteOBJWithoutNormals(t *testing.T) {
	tmb := createTestTMB(false)

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, tmb.Positions, nil, tmb.Triangles); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}
	if strings.Contains(buf.String(), "vn ") || strings.Contains(buf.String(), "//") {
		t.Error("expected no normal references without normals")
	}
	if !strings.Contains(buf.String(), "f 1 2 3\n") {
		t.Errorf("expected plain face line, got:\n%s", buf.String())
	}
}

func TestWriteOBJMismatchedNormals(t *testing.T) {
	tmb := createTestTMB(false)
	if err := WriteOBJ(&bytes.Buffer{}, tmb.Positions, tmb.Normals[:3], tmb.Triangles); err == nil {
		t.Error("expected error for mismatched normals")
	}
}
