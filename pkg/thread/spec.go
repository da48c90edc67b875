// Package thread builds the 2D cross-section of a screw thread.
//
// A profile lies in the XY plane with X along the screw axis and Y the
// distance from it. Points are ordered right to left so that sweeping the
// profile around the X axis produces outward facing triangles.
package thread

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidParameter is returned for non-positive or non-finite inputs.
	ErrInvalidParameter = errors.New("invalid thread parameter")
	// ErrUnknownPreset is returned when a preset name is not in the table.
	ErrUnknownPreset = errors.New("unknown thread preset")
	// ErrDegenerateGeometry is returned when a profile collapses below the
	// point count its construction promises.
	ErrDegenerateGeometry = errors.New("degenerate thread geometry")
)

// Standard selects the profile construction.
type Standard int

const (
	ISOMetric Standard = iota
	Whitworth
)

func (s Standard) String() string {
	switch s {
	case ISOMetric:
		return "iso-metric"
	case Whitworth:
		return "whitworth"
	default:
		return fmt.Sprintf("Standard(%d)", int(s))
	}
}

// ParseStandard maps a name as printed by String back to a Standard.
func ParseStandard(name string) (Standard, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "iso", "iso-metric", "metric":
		return ISOMetric, nil
	case "whitworth", "bsw":
		return Whitworth, nil
	}
	return 0, fmt.Errorf("%w: standard %q", ErrInvalidParameter, name)
}

// Clip describes the internal-thread root clipping applied by ISOProfile.
type Clip struct {
	X1, MaxX, DY float64
}

// Spec holds the physical thread parameters. All lengths are in
// millimetres.
type Spec struct {
	Standard      Standard
	MajorDiameter float64
	Pitch         float64
	// MinorDiameter is only used by Whitworth. Zero selects the standard
	// depth of 0.640327 * Pitch.
	MinorDiameter float64
	// Internal selects a nut thread (positive offset) instead of a bolt
	// thread (negative offset).
	Internal        bool
	ToleranceAxial  float64
	ToleranceRadial float64
	// SegmentLength bounds the length of tessellated arc segments.
	SegmentLength float64

	// OnClip, when set, is called if the internal thread root was clipped.
	OnClip func(Clip)
}

// Validate checks the parameters before any geometry is built.
func (s Spec) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"major diameter", s.MajorDiameter},
		{"pitch", s.Pitch},
	}
	if s.Standard == Whitworth {
		checks = append(checks, struct {
			name  string
			value float64
		}{"segment length", s.SegmentLength})
	}
	for _, c := range checks {
		if !(c.value > 0) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidParameter, c.name, c.value)
		}
	}
	if math.IsNaN(s.ToleranceAxial) || math.IsNaN(s.ToleranceRadial) {
		return fmt.Errorf("%w: tolerance is NaN", ErrInvalidParameter)
	}
	if s.Standard == Whitworth && s.MinorDiameter != 0 && !(s.MinorDiameter > 0 && s.MinorDiameter < s.MajorDiameter) {
		return fmt.Errorf("%w: minor diameter %v must lie in (0, %v)", ErrInvalidParameter, s.MinorDiameter, s.MajorDiameter)
	}
	return nil
}

// offsetSign is +1 for nut threads and -1 for bolt threads.
func (s Spec) offsetSign() float64 {
	if s.Internal {
		return 1
	}
	return -1
}

// Generate builds the profile for spec and returns it with the thread pitch.
func Generate(spec Spec) (Profile, float64, error) {
	if err := spec.Validate(); err != nil {
		return nil, 0, err
	}

	var (
		profile Profile
		err     error
	)
	switch spec.Standard {
	case ISOMetric:
		profile, err = ISOProfile(spec)
	case Whitworth:
		profile, err = WhitworthProfile(spec)
	default:
		return nil, 0, fmt.Errorf("%w: unsupported standard %v", ErrInvalidParameter, spec.Standard)
	}
	if err != nil {
		return nil, 0, err
	}
	return profile, spec.Pitch, nil
}
