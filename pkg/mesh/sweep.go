package mesh

import (
	"fmt"
	"math"

	"github.com/philipparndt/gothread/pkg/geometry"
)

// Revolve sweeps profile helically around the X axis.
//
// Ring 0 is the profile itself in the XY plane. Each further ring is the
// profile rotated by another stepAngle around X and moved stepAxial along
// it, and is joined to the previous ring with a quad strip. Only the tube
// surface is produced; the profile ends stay open.
func Revolve(profile []geometry.Vector2, stepCount int, stepAxial, stepAngle float64) (*Mesh, error) {
	skip := len(profile)
	if skip < 2 {
		return nil, fmt.Errorf("%w: profile has %d points", ErrDegenerateGeometry, skip)
	}
	if stepCount < 1 {
		return nil, fmt.Errorf("%w: step count %d", ErrDegenerateGeometry, stepCount)
	}

	m := &Mesh{
		Vertices: make([]geometry.Vector3, 0, stepCount*skip),
		Faces:    make([]Face, 0, 2*(stepCount-1)*(skip-1)),
	}
	m.Vertices = appendRing(m.Vertices, profile, 0, 1, 0)

	angle, pos := 0.0, 0.0
	for i := 1; i < stepCount; i++ {
		angle = math.Mod(angle+stepAngle, 2*math.Pi)
		pos += stepAxial
		m.Vertices = appendRing(m.Vertices, profile, pos, math.Cos(angle), math.Sin(angle))

		prev := RingStart(i-1, skip)
		cur := RingStart(i, skip)
		m.Faces = append(m.Faces, QuadStrip(Stride(prev, prev+skip, 1), Stride(cur, cur+skip, 1))...)
	}
	return m, nil
}

// appendRing appends the profile rotated by (c, s) around X and moved by dx.
func appendRing(dst []geometry.Vector3, profile []geometry.Vector2, dx, c, s float64) []geometry.Vector3 {
	for _, p := range profile {
		dst = append(dst, geometry.Vector3{X: p.X + dx, Y: c * p.Y, Z: s * p.Y})
	}
	return dst
}
