package meshio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hpinc/go3mf"
	"github.com/philipparndt/gothread/pkg/geometry"
	"github.com/philipparndt/gothread/pkg/mesh"
)

const epsilon = 1e-6

func cube() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices: []geometry.Vector3{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0.123456789, Y: 1, Z: 1},
		},
		Faces: []mesh.Face{
			{0, 3, 2}, {0, 2, 1},
			{4, 5, 6}, {4, 6, 7},
			{0, 1, 5}, {0, 5, 4},
			{1, 2, 6}, {1, 6, 5},
			{2, 3, 7}, {2, 7, 6},
			{3, 0, 4}, {3, 4, 7},
		},
	}
}

func assertSameMesh(t *testing.T, expected, actual *mesh.Mesh) {
	t.Helper()
	if actual.VertexCount() != expected.VertexCount() || actual.FaceCount() != expected.FaceCount() {
		t.Fatalf("expected %d/%d vertices/faces, got %d/%d",
			expected.VertexCount(), expected.FaceCount(), actual.VertexCount(), actual.FaceCount())
	}
	for i, v := range expected.Vertices {
		if v.Distance(actual.Vertices[i]) > epsilon {
			t.Errorf("vertex %d: expected %v, got %v", i, v, actual.Vertices[i])
		}
	}
	for i, f := range expected.Faces {
		if len(actual.Faces[i]) != len(f) {
			t.Errorf("face %d: expected %v, got %v", i, f, actual.Faces[i])
			continue
		}
		for k := range f {
			if actual.Faces[i][k] != f[k] {
				t.Errorf("face %d: expected %v, got %v", i, f, actual.Faces[i])
				break
			}
		}
	}
}

func TestOBJRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, cube()); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	if lines[7] != "v 0.12345679 1.00000000 1.00000000" {
		t.Errorf("unexpected vertex line %q", lines[7])
	}
	if lines[8] != "f 1 4 3" {
		t.Errorf("unexpected face line %q", lines[8])
	}

	m, err := ReadOBJ(&buf)
	if err != nil {
		t.Fatalf("ReadOBJ failed: %v", err)
	}
	assertSameMesh(t, cube(), m)
}

func TestReadOBJVariants(t *testing.T) {
	src := "# comment\nv 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//1 3//1\nf -3 -2 -1\n"
	m, err := ReadOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadOBJ failed: %v", err)
	}
	if m.FaceCount() != 2 {
		t.Fatalf("expected 2 faces, got %d", m.FaceCount())
	}
	for _, f := range m.Faces {
		if f[0] != 0 || f[1] != 1 || f[2] != 2 {
			t.Errorf("expected face [0 1 2], got %v", f)
		}
	}

	if _, err := ReadOBJ(strings.NewReader("v 0 0 0\nf 1 2 3\n")); err == nil {
		t.Error("expected error for out of range face index")
	}
	if _, err := ReadOBJ(strings.NewReader("v 0 0\n")); err == nil {
		t.Error("expected error for short vertex")
	}
}

func TestOFFRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOFF(&buf, cube()); err != nil {
		t.Fatalf("WriteOFF failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "OFF\n8 12 0\n") {
		t.Errorf("unexpected OFF header %q", buf.String()[:12])
	}
	if !strings.Contains(buf.String(), "\n3 0 3 2\n") {
		t.Error("expected 0-based face line with vertex count prefix")
	}

	m, err := ReadOFF(&buf)
	if err != nil {
		t.Fatalf("ReadOFF failed: %v", err)
	}
	assertSameMesh(t, cube(), m)
}

func TestReadOFFErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing header", "3 1 0\n0 0 0\n"},
		{"truncated vertices", "OFF\n3 1 0\n0 0 0\n"},
		{"bad face count", "OFF\n3 1 0\n0 0 0\n1 0 0\n0 1 0\n4 0 1 2\n"},
		{"index out of range", "OFF\n3 1 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1 5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadOFF(strings.NewReader(tt.src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
	}{
		{"a.stl", FormatSTL},
		{"A.STL", FormatSTL},
		{"dir/b.off", FormatOFF},
		{"c.obj", FormatOBJ},
		{"d.3mf", Format3MF},
		{"e.txt", FormatOBJ},
		{"noext", FormatOBJ},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.expected {
			t.Errorf("FormatFromPath(%q): expected %v, got %v", tt.path, tt.expected, got)
		}
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"cube.obj", "cube.off", "cube.unknown"} {
		path := filepath.Join(dir, name)
		if err := Export(path, cube()); err != nil {
			t.Fatalf("Export(%s) failed: %v", name, err)
		}
		m, err := Import(path)
		if err != nil {
			t.Fatalf("Import(%s) failed: %v", name, err)
		}
		assertSameMesh(t, cube(), m)
	}

	path := filepath.Join(dir, "cube.stl")
	if err := Export(path, cube()); err != nil {
		t.Fatalf("Export(stl) failed: %v", err)
	}
	m, err := Import(path)
	if err != nil {
		t.Fatalf("Import(stl) failed: %v", err)
	}
	if m.FaceCount() != 12 || m.VertexCount() != 36 {
		t.Errorf("expected 12 faces and 36 vertices, got %d and %d", m.FaceCount(), m.VertexCount())
	}
}

func TestExportAllContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "missing", "cube.stl")
	good := filepath.Join(dir, "cube.off")

	err := ExportAll([]string{bad, good}, cube())
	if err == nil {
		t.Fatal("expected error for unwritable target")
	}

	var exportErr *ExportError
	if !errors.As(err, &exportErr) {
		t.Fatalf("expected ExportError, got %T", err)
	}
	if exportErr.Path != bad {
		t.Errorf("expected failing path %s, got %s", bad, exportErr.Path)
	}
	if _, statErr := os.Stat(good); statErr != nil {
		t.Errorf("expected %s to be written: %v", good, statErr)
	}
}

func TestWrite3MF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.3mf")
	if err := Export(path, cube()); err != nil {
		t.Fatalf("Export(3mf) failed: %v", err)
	}

	r, err := go3mf.OpenReader(path)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer r.Close()

	var model go3mf.Model
	if err := r.Decode(&model); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(model.Resources.Objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(model.Resources.Objects))
	}
	obj := model.Resources.Objects[0]
	if len(obj.Mesh.Vertices.Vertex) != 8 || len(obj.Mesh.Triangles.Triangle) != 12 {
		t.Errorf("expected 8 vertices and 12 triangles, got %d and %d",
			len(obj.Mesh.Vertices.Vertex), len(obj.Mesh.Triangles.Triangle))
	}
}

func TestWriteRejectsInvalidMesh(t *testing.T) {
	m := cube()
	m.Faces = append(m.Faces, mesh.Face{0, 1})
	if err := WriteOBJ(&bytes.Buffer{}, m); err == nil {
		t.Error("WriteOBJ: expected error")
	}
	if err := WriteOFF(&bytes.Buffer{}, m); err == nil {
		t.Error("WriteOFF: expected error")
	}
	if err := Write3MF(filepath.Join(t.TempDir(), "x.3mf"), m); err == nil {
		t.Error("Write3MF: expected error")
	}
}
