package mesh

// QuadStrip connects two index paths of equal length with two triangles per
// step: (b0, a0, a1) and (b0, a1, b1). The diagonal is fixed so every strip
// of a sweep winds the same way. Extra indices on the longer path are
// ignored.
func QuadStrip(a, b []int) []Face {
	n := min(len(a), len(b))
	if n < 2 {
		return nil
	}
	faces := make([]Face, 0, 2*(n-1))
	for k := 0; k+1 < n; k++ {
		a0, a1 := a[k], a[k+1]
		b0, b1 := b[k], b[k+1]
		faces = append(faces, Face{b0, a0, a1}, Face{b0, a1, b1})
	}
	return faces
}

// PolygonFan triangulates a polygon by keeping its first index and walking
// the rest: (v0, v1, v2), (v0, v2, v3), ... The boundary must already be in
// the wanted winding order.
func PolygonFan(polygon []int) []Face {
	if len(polygon) < 3 {
		return nil
	}
	v0 := polygon[0]
	faces := make([]Face, 0, len(polygon)-2)
	for k := 2; k < len(polygon); k++ {
		faces = append(faces, Face{v0, polygon[k-1], polygon[k]})
	}
	return faces
}

// Stride returns from, from+step, ... for values below to.
func Stride(from, to, step int) []int {
	if step <= 0 || from >= to {
		return nil
	}
	out := make([]int, 0, (to-from+step-1)/step)
	for i := from; i < to; i += step {
		out = append(out, i)
	}
	return out
}

// Reversed returns a reversed copy of indices.
func Reversed(indices []int) []int {
	out := make([]int, len(indices))
	for i, idx := range indices {
		out[len(indices)-1-i] = idx
	}
	return out
}
