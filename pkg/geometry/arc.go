package geometry

import "math"

// MakeArc tessellates a circular arc in the profile plane.
//
// The arc starts at angleStart (radians, counter-clockwise from +X) and
// sweeps angleDelta, which may be negative. The number of segments is
// floor(|radius*angleDelta| / maxSegmentLength) but at least one, and the
// result holds segments+1 points including both end points.
func MakeArc(center Vector2, radius, angleStart, angleDelta, maxSegmentLength float64) []Vector2 {
	segments := 1
	if maxSegmentLength > 0 {
		segments = max(1, int(math.Abs(radius*angleDelta)/maxSegmentLength))
	}
	inc := angleDelta / float64(segments)

	points := make([]Vector2, 0, segments+1)
	for i := 0; i <= segments; i++ {
		angle := angleStart + inc*float64(i)
		points = append(points, Vector2{
			X: center.X + math.Cos(angle)*radius,
			Y: center.Y + math.Sin(angle)*radius,
		})
	}
	return points
}
