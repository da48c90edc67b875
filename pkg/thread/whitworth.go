package thread

import (
	"fmt"
	"math"

	"github.com/philipparndt/gothread/pkg/geometry"
)

const (
	// whitworthDepth is the thread depth as a fraction of the pitch.
	whitworthDepth = 0.640327
	// whitworthRadius is the crest and root radius as a fraction of the pitch.
	whitworthRadius = 0.137329
)

// WhitworthProfile returns one full period of a Whitworth thread (55 degree
// flanks, rounded crest and root).
//
// The period runs from the middle of the right groove over the crest to the
// middle of the left groove. The groove arc is built once around x = -P/2
// and split: its right half stays there, its left half moves one pitch to
// the right so the profile ends meet across the seam of the sweep.
func WhitworthProfile(spec Spec) (Profile, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	d, p := spec.MajorDiameter, spec.Pitch
	minor := spec.MinorDiameter
	if minor == 0 {
		minor = d - 2*whitworthDepth*p
	}

	depth := (d - minor) / 2
	// Whitworth truncates H/6 at crest and root, so depth = 2H/3.
	h := 1.5 * depth
	alpha := math.Atan(2 * h / p)
	r := whitworthRadius * p

	apex := d/2 + h/6
	root := apex - h
	centerOffset := r / math.Cos(alpha)

	tip := geometry.MakeArc(
		geometry.NewVector2(0, apex-centerOffset),
		r, math.Pi/2-alpha, 2*alpha, spec.SegmentLength)
	groove := geometry.MakeArc(
		geometry.NewVector2(-p/2, root+centerOffset),
		r, alpha-math.Pi/2, -2*alpha, spec.SegmentLength)

	leading, trailing := splitGroove(groove)

	points := make([]geometry.Vector2, 0, len(groove)+len(tip))
	for _, v := range trailing {
		points = append(points, geometry.NewVector2(v.X+p, v.Y))
	}
	points = append(points, tip...)
	points = append(points, leading...)

	offY := spec.offsetSign() * (spec.ToleranceRadial + spec.ToleranceAxial*math.Tan(alpha))
	for i := range points {
		points[i].Y += offY
	}

	return checkedProfile(len(groove)+len(tip), points...)
}

// splitGroove splits a right-to-left groove arc at n/2. The leading part
// keeps the first n/2 points, the trailing part gets the rest including the
// middle point of an odd count.
func splitGroove(groove []geometry.Vector2) (leading, trailing []geometry.Vector2) {
	half := len(groove) / 2
	return groove[:half], groove[half:]
}

func degenerate(expected, got int) error {
	return fmt.Errorf("%w: expected %d profile points, got %d", ErrDegenerateGeometry, expected, got)
}
