package mesh

import (
	"fmt"

	"github.com/philipparndt/gothread/pkg/geometry"
)

// RingStart returns the index of the first vertex of ring.
func RingStart(ring, skip int) int {
	return ring * skip
}

// RingCount returns how many complete rings vertexCount vertices hold.
func RingCount(vertexCount, skip int) int {
	return vertexCount / skip
}

// RevolutionVertexCount returns the number of vertices swept in one full turn.
func RevolutionVertexCount(stepsPerRevolution, skip int) int {
	return stepsPerRevolution * skip
}

// FarHalfRevolutionIndex returns the first vertex of the ring half a turn
// after the ring starting at start, rounded down to a ring boundary.
func FarHalfRevolutionIndex(start, revolutionVertices, skip int) int {
	i := start + revolutionVertices/2
	return i - i%skip
}

// NearHalfRevolutionIndex returns the vertex half a turn (rounded down to
// whole steps) after start, at the same profile position.
func NearHalfRevolutionIndex(start, stepsPerRevolution, skip int) int {
	return start + stepsPerRevolution/2*skip
}

// RevolveSolid sweeps profile like Revolve and closes the result.
//
// A helical sweep of a single thread period does not close on itself: the
// right end of every ring lines up with the left end of the ring one turn
// later, one pitch further along the axis. The seam between them is bridged
// with a quad strip, and both open ends of the tube are closed with fans
// that run half a turn on either side of the seam. stepCount must cover at
// least two full revolutions.
func RevolveSolid(profile []geometry.Vector2, stepCount int, stepAxial, stepAngle float64, stepsPerRevolution int) (*Mesh, error) {
	if stepsPerRevolution < 2 {
		return nil, fmt.Errorf("%w: %d steps per revolution", ErrDegenerateGeometry, stepsPerRevolution)
	}
	if stepCount < 2*stepsPerRevolution {
		return nil, fmt.Errorf("%w: %d steps do not cover two revolutions of %d steps", ErrDegenerateGeometry, stepCount, stepsPerRevolution)
	}

	m, err := Revolve(profile, stepCount, stepAxial, stepAngle)
	if err != nil {
		return nil, err
	}

	skip := len(profile)
	rev := RevolutionVertexCount(stepsPerRevolution, skip)

	m.Faces = append(m.Faces, seamBridge(len(m.Vertices), skip, rev)...)
	m.Faces = append(m.Faces, farCap(len(m.Vertices), skip, rev)...)
	m.Faces = append(m.Faces, nearCap(skip, rev, stepsPerRevolution)...)
	return m, nil
}

// seamBridge joins the first profile point of every ring to the last
// profile point of the ring one revolution later.
func seamBridge(n, skip, rev int) []Face {
	return QuadStrip(
		Stride(0, n, skip),
		Stride(skip-1+rev, n, skip),
	)
}

// farCap closes the end of the tube. It starts one ring before the last
// full revolution so it lines up with the seam bridge, fans the first and
// second half turn of first profile points separately and stitches the
// last ring in between.
func farCap(n, skip, rev int) []Face {
	i0 := n - rev - skip
	i1 := FarHalfRevolutionIndex(i0, rev, skip)

	last := RingStart(RingCount(n, skip)-1, skip)
	stitch := make([]int, 0, skip+2)
	stitch = append(stitch, i1)
	stitch = append(stitch, Stride(last, n, 1)...)
	stitch = append(stitch, i0)

	faces := PolygonFan(Stride(i0, i1+skip, skip))
	faces = append(faces, PolygonFan(Stride(i1, n, skip))...)
	return append(faces, PolygonFan(stitch)...)
}

// nearCap mirrors farCap at the start of the tube along the last profile
// points of the first revolution, walked in reverse for outward normals.
func nearCap(skip, rev, stepsPerRevolution int) []Face {
	i0 := skip - 1
	i1 := NearHalfRevolutionIndex(i0, stepsPerRevolution, skip)

	ring := make([]int, 0, skip+1)
	ring = append(ring, rev+skip-1)
	ring = append(ring, Stride(0, skip, 1)...)
	stitch := append([]int{i1}, Reversed(ring)...)

	faces := PolygonFan(Reversed(Stride(i0, i1+skip, skip)))
	faces = append(faces, PolygonFan(Reversed(Stride(i1, rev+skip, skip)))...)
	return append(faces, PolygonFan(stitch)...)
}
