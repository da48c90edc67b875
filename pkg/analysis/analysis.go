// Package analysis computes statistics of generated or imported meshes.
package analysis

import (
	"fmt"
	"sort"

	"github.com/philipparndt/gothread/pkg/geometry"
	"github.com/philipparndt/gothread/pkg/mesh"
	"gonum.org/v1/gonum/floats"
)

// Edge is an undirected mesh edge, A < B.
type Edge struct {
	A, B   int
	Length float64
	// Uses counts the faces the edge borders. A closed two-manifold has
	// exactly two per edge.
	Uses int
}

// Report contains various measurements of a mesh
type Report struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64
	SurfaceArea   float64
	VertexCount   int
	TriangleCount int
	EdgeCount     int
	// BoundaryEdges are used by a single face, NonManifoldEdges by more
	// than two. Both are zero for a watertight solid.
	BoundaryEdges    int
	NonManifoldEdges int
	MinEdgeLength    float64
	MaxEdgeLength    float64
	AvgEdgeLength    float64
	Edges            []Edge
}

// Closed reports whether every edge borders exactly two faces.
func (r *Report) Closed() bool {
	return r.EdgeCount > 0 && r.BoundaryEdges == 0 && r.NonManifoldEdges == 0
}

// Analyze measures m. Faces with more than three indices are measured as
// triangle fans. The volume is signed: positive for outward winding.
func Analyze(m *mesh.Mesh) (*Report, error) {
	if err := m.CheckIndices(); err != nil {
		return nil, fmt.Errorf("invalid mesh: %w", err)
	}

	result := &Report{
		BoundingBox: m.BoundingBox(),
		VertexCount: m.VertexCount(),
	}
	result.Dimensions = result.BoundingBox.Size()

	index := make(map[[2]int]int)
	addEdge := func(a, b int) {
		key := [2]int{min(a, b), max(a, b)}
		if i, ok := index[key]; ok {
			result.Edges[i].Uses++
			return
		}
		index[key] = len(result.Edges)
		result.Edges = append(result.Edges, Edge{
			A:      key[0],
			B:      key[1],
			Length: m.Vertices[a].Distance(m.Vertices[b]),
			Uses:   1,
		})
	}

	for _, f := range m.Faces {
		for k := 1; k+1 < len(f); k++ {
			t := geometry.TriangleFromVertices(m.Vertices[f[0]], m.Vertices[f[k]], m.Vertices[f[k+1]])
			result.SurfaceArea += t.Area()
			result.Volume += t.SignedVolume()
			result.TriangleCount++
		}
		for k := range f {
			addEdge(f[k], f[(k+1)%len(f)])
		}
	}

	result.EdgeCount = len(result.Edges)
	for _, e := range result.Edges {
		switch {
		case e.Uses == 1:
			result.BoundaryEdges++
		case e.Uses > 2:
			result.NonManifoldEdges++
		}
	}

	if result.EdgeCount > 0 {
		lengths := make([]float64, result.EdgeCount)
		for i, e := range result.Edges {
			lengths[i] = e.Length
		}
		result.MinEdgeLength = floats.Min(lengths)
		result.MaxEdgeLength = floats.Max(lengths)
		result.AvgEdgeLength = floats.Sum(lengths) / float64(len(lengths))
	}

	return result, nil
}

// LongestEdges returns the N longest edges
func (r *Report) LongestEdges(count int) []Edge {
	return sortedEdges(r.Edges, count, func(a, b Edge) bool { return a.Length > b.Length })
}

// ShortestEdges returns the N shortest edges
func (r *Report) ShortestEdges(count int) []Edge {
	return sortedEdges(r.Edges, count, func(a, b Edge) bool { return a.Length < b.Length })
}

func sortedEdges(all []Edge, count int, less func(a, b Edge) bool) []Edge {
	edges := make([]Edge, len(all))
	copy(edges, all)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
