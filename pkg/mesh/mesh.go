// Package mesh sweeps thread profiles into closed triangle meshes.
package mesh

import (
	"errors"
	"fmt"

	"github.com/philipparndt/gothread/pkg/geometry"
)

// ErrDegenerateGeometry is returned when the sweep inputs cannot produce a
// closed solid: too few profile points, rings or steps per revolution.
var ErrDegenerateGeometry = errors.New("degenerate sweep geometry")

// Face is an ordered list of vertex indices. Sweeps only emit triangles;
// longer faces are polygons waiting for fan triangulation.
type Face []int

// Mesh is an indexed triangle mesh. A vertex is identified by its position
// in Vertices.
type Mesh struct {
	Vertices []geometry.Vector3
	Faces    []Face
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// Triangle returns face i as a geometry triangle with its winding normal.
// Faces with more than three indices use their first three.
func (m *Mesh) Triangle(i int) geometry.Triangle {
	f := m.Faces[i]
	return geometry.TriangleFromVertices(m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]])
}

// Transform replaces every vertex by fn(vertex).
func (m *Mesh) Transform(fn func(geometry.Vector3) geometry.Vector3) {
	for i, v := range m.Vertices {
		m.Vertices[i] = fn(v)
	}
}

// BoundingBox returns the box around all vertices
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	return geometry.BoundingBoxOf(m.Vertices)
}

// CheckIndices verifies every face has at least three indices inside
// [0, VertexCount).
func (m *Mesh) CheckIndices() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		if len(f) < 3 {
			return fmt.Errorf("face %d has %d indices", i, len(f))
		}
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d references vertex %d of %d", i, idx, n)
			}
		}
	}
	return nil
}

// ZMajor maps a mesh swept along X onto the Z axis.
func ZMajor(v geometry.Vector3) geometry.Vector3 {
	return geometry.Vector3{X: v.Z, Y: -v.Y, Z: v.X}
}
