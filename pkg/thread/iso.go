package thread

import (
	"fmt"
	"math"

	"github.com/philipparndt/gothread/pkg/geometry"
)

// isoClipMargin keeps the clipped internal flank strictly inside the
// half period so neighbouring teeth never touch.
const isoClipMargin = 1e-6

// ISOProfile returns the tooth of an ISO metric thread (60 degree flanks).
//
// The nominal tooth has a flat crest of width P/8 and flanks running down
// to x = +-3P/8. Manufacturing clearance is applied as an axial and a radial
// offset, negative for bolts and positive for nuts. A bolt whose axial
// offset eats the whole crest flat becomes a sharp three point tooth; every
// other case yields four points.
func ISOProfile(spec Spec) (Profile, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	d, p := spec.MajorDiameter, spec.Pitch

	h := math.Sqrt(3) / 2 * p
	yp := d/2 - h/2

	x1 := 3.0 / 8.0 * p
	x2 := 1.0 / 16.0 * p
	y0 := -1.0/4.0*h + yp
	y1 := 3.0/8.0*h + yp

	sign := spec.offsetSign()
	offX := sign * spec.ToleranceAxial
	offY := sign * spec.ToleranceRadial

	if offX < -x2 {
		// The crest flat is gone; push the surplus into the radial offset
		// along the flank slope.
		offY = math.Min(offY, math.Tan(math.Pi/3)*(offX+x2))
		offX = -x2
		x1 += offX
		x2 = 0
		y0 += offY
		y1 += offY
		return checkedProfile(3,
			geometry.NewVector2(x1, y0),
			geometry.NewVector2(x2, y1),
			geometry.NewVector2(-x1, y0),
		)
	}

	x1 += offX
	x2 += offX
	maxX := p/2 - isoClipMargin
	if x1 > maxX {
		dy := (x1 - maxX) * math.Tan(math.Pi/3)
		if spec.OnClip != nil {
			spec.OnClip(Clip{X1: x1, MaxX: maxX, DY: dy})
		}
		y0 += dy
		x1 = maxX
	}
	if x2 >= x1 || y0 >= y1 {
		return nil, fmt.Errorf("%w: axial tolerance %v folds the crest over the root (x1=%v, x2=%v)",
			ErrDegenerateGeometry, spec.ToleranceAxial, x1, x2)
	}
	y0 += offY
	y1 += offY
	return checkedProfile(4,
		geometry.NewVector2(x1, y0),
		geometry.NewVector2(x2, y1),
		geometry.NewVector2(-x2, y1),
		geometry.NewVector2(-x1, y0),
	)
}

// checkedProfile validates points, that the construction produced the
// expected count and that X strictly decreases from point to point.
func checkedProfile(expected int, points ...geometry.Vector2) (Profile, error) {
	profile, err := NewProfile(points)
	if err != nil {
		return nil, err
	}
	if len(profile) != expected {
		return nil, degenerate(expected, len(profile))
	}
	for i := 1; i < len(profile); i++ {
		if profile[i].X >= profile[i-1].X {
			return nil, fmt.Errorf("%w: profile folds back at point %d (%v after %v)",
				ErrDegenerateGeometry, i, profile[i], profile[i-1])
		}
	}
	if lo, _ := profile.RadiusRange(); lo <= 0 {
		return nil, fmt.Errorf("%w: profile reaches the axis (min radius %v)", ErrDegenerateGeometry, lo)
	}
	return profile, nil
}
