package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/gothread/pkg/geometry"
	"github.com/philipparndt/gothread/pkg/mesh"
)

// WriteOBJ writes m as Wavefront OBJ: one "v x y z" line per vertex with
// eight decimals, then one "f" line per face with 1-based indices.
func WriteOBJ(w io.Writer, m *mesh.Mesh) error {
	if err := m.CheckIndices(); err != nil {
		return fmt.Errorf("invalid mesh: %w", err)
	}

	bw := bufio.NewWriter(w)
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %.8f %.8f %.8f\n", v.X, v.Y, v.Z)
	}
	for _, f := range m.Faces {
		bw.WriteString("f")
		for _, idx := range f {
			bw.WriteByte(' ')
			bw.WriteString(strconv.Itoa(idx + 1))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write OBJ: %w", err)
	}
	return nil
}

// ReadOBJ reads vertices and faces from OBJ. Only "v" and "f" records are
// interpreted; face entries may carry "/vt/vn" suffixes and negative
// (relative) indices.
func ReadOBJ(r io.Reader) (*mesh.Mesh, error) {
	m := &mesh.Mesh{}
	scanner := bufio.NewScanner(r)

	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			v, err := parseVertex(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			m.Vertices = append(m.Vertices, v)

		case "f":
			face := make(mesh.Face, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := strconv.Atoi(strings.SplitN(ref, "/", 2)[0])
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid face index %q", line, ref)
				}
				switch {
				case idx > 0:
					idx--
				case idx < 0:
					idx += len(m.Vertices)
				default:
					return nil, fmt.Errorf("line %d: face index 0", line)
				}
				face = append(face, idx)
			}
			m.Faces = append(m.Faces, face)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}
	if err := m.CheckIndices(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseVertex(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", f, err)
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}
