package stl

import (
	"github.com/philipparndt/gothread/pkg/geometry"
	"github.com/philipparndt/gothread/pkg/mesh"
)

// Model is an STL triangle soup: every facet carries its own vertices.
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// FromMesh expands an indexed mesh into facets with winding normals.
func FromMesh(name string, m *mesh.Mesh) *Model {
	model := &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0, m.FaceCount()),
	}
	for i := range m.Faces {
		model.AddTriangle(m.Triangle(i))
	}
	return model
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// Mesh converts the facets to an indexed mesh without merging shared
// vertices, three vertices per facet.
func (m *Model) Mesh() *mesh.Mesh {
	out := &mesh.Mesh{
		Vertices: make([]geometry.Vector3, 0, 3*len(m.Triangles)),
		Faces:    make([]mesh.Face, 0, len(m.Triangles)),
	}
	for _, t := range m.Triangles {
		i := len(out.Vertices)
		out.Vertices = append(out.Vertices, t.V1, t.V2, t.V3)
		out.Faces = append(out.Faces, mesh.Face{i, i + 1, i + 2})
	}
	return out
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}
