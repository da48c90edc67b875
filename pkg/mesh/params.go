package mesh

import (
	"fmt"
	"math"
)

const (
	// MinStepsPerRevolution keeps coarse settings from collapsing the helix.
	MinStepsPerRevolution = 16
	// MaxStepsPerRevolution bounds the mesh size for very fine settings.
	MaxStepsPerRevolution = 5000
	// extraRevolutions guarantees complete end caps regardless of the
	// fractional remainder of length/pitch.
	extraRevolutions = 2
)

// SweepParams are the derived inputs of RevolveSolid.
type SweepParams struct {
	StepsPerRevolution int
	StepAngle          float64
	StepAxial          float64
	Revolutions        int
	StepCount          int
}

// NewSweepParams derives the sweep from the thread pitch and length, the
// largest profile radius and the maximum segment length.
func NewSweepParams(pitch, threadLength, maxRadius, segmentLength float64) (SweepParams, error) {
	for _, in := range []struct {
		name  string
		value float64
	}{
		{"pitch", pitch},
		{"thread length", threadLength},
		{"profile radius", maxRadius},
		{"segment length", segmentLength},
	} {
		if !(in.value > 0) || math.IsInf(in.value, 0) {
			return SweepParams{}, fmt.Errorf("%w: %s must be positive, got %v", ErrDegenerateGeometry, in.name, in.value)
		}
	}

	steps := math.Ceil(2 * math.Pi * maxRadius / segmentLength)
	steps = math.Min(steps, MaxStepsPerRevolution)
	steps = math.Max(steps, MinStepsPerRevolution)
	spr := int(steps)

	revolutions := int(math.Ceil(threadLength/pitch)) + extraRevolutions

	p := SweepParams{
		StepsPerRevolution: spr,
		StepAngle:          2 * math.Pi / float64(spr),
		StepAxial:          pitch / float64(spr),
		Revolutions:        revolutions,
		StepCount:          revolutions * spr,
	}
	if p.StepCount < 2*spr {
		return SweepParams{}, fmt.Errorf("%w: step count %d", ErrDegenerateGeometry, p.StepCount)
	}
	return p, nil
}

