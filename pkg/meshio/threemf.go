package meshio

import (
	"fmt"

	"github.com/hpinc/go3mf"
	"github.com/philipparndt/gothread/pkg/mesh"
)

// Write3MF packs m as the single object of a 3MF package in millimetres.
// Faces with more than three indices are fan triangulated.
func Write3MF(path string, m *mesh.Mesh) error {
	model, err := threeMFModel(m)
	if err != nil {
		return err
	}

	w, err := go3mf.CreateWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := w.Encode(model); err != nil {
		w.Close()
		return fmt.Errorf("failed to encode 3MF: %w", err)
	}
	return w.Close()
}

func threeMFModel(m *mesh.Mesh) (*go3mf.Model, error) {
	if err := m.CheckIndices(); err != nil {
		return nil, fmt.Errorf("invalid mesh: %w", err)
	}

	obj := &go3mf.Mesh{}
	obj.Vertices.Vertex = make([]go3mf.Point3D, len(m.Vertices))
	for i, v := range m.Vertices {
		obj.Vertices.Vertex[i] = go3mf.Point3D{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	for _, f := range m.Faces {
		for k := 1; k+1 < len(f); k++ {
			obj.Triangles.Triangle = append(obj.Triangles.Triangle, go3mf.Triangle{
				V1: uint32(f[0]),
				V2: uint32(f[k]),
				V3: uint32(f[k+1]),
			})
		}
	}

	model := &go3mf.Model{Units: go3mf.UnitMillimeter}
	model.Resources.Objects = append(model.Resources.Objects, &go3mf.Object{
		ID:   1,
		Name: "thread",
		Type: go3mf.ObjectTypeModel,
		Mesh: obj,
	})
	model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: 1})
	return model, nil
}
