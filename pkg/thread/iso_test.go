package thread

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-4

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestISOProfileNominal(t *testing.T) {
	profile, pitch, err := Generate(Spec{MajorDiameter: 3.0, Pitch: 0.5})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if pitch != 0.5 {
		t.Errorf("pitch: expected 0.5, got %v", pitch)
	}
	if len(profile) != 4 {
		t.Fatalf("expected 4 points, got %d", len(profile))
	}

	// H = sqrt(3)/2 * P = 0.4330, pitch line at D/2 - H/2. With 60 degree
	// flanks this puts the root at 1.17524 and the crest at 1.44587; figures
	// of 1.3919 / 1.6129 for this size do not fit that flank angle.
	const (
		x1 = 0.1875
		x2 = 0.03125
		y0 = 1.17524
		y1 = 1.44587
	)
	expected := [][2]float64{{x1, y0}, {x2, y1}, {-x2, y1}, {-x1, y0}}
	for i, e := range expected {
		if !almostEqual(profile[i].X, e[0], eps) || !almostEqual(profile[i].Y, e[1], eps) {
			t.Errorf("point %d: expected (%v, %v), got %v", i, e[0], e[1], profile[i])
		}
	}

	// Flanks keep the 60 degree thread angle.
	slope := (profile[1].Y - profile[0].Y) / (profile[0].X - profile[1].X)
	if !almostEqual(slope, math.Sqrt(3), 1e-9) {
		t.Errorf("flank slope: expected sqrt(3), got %v", slope)
	}
}

func TestISOProfileSharpExternal(t *testing.T) {
	profile, err := ISOProfile(Spec{
		MajorDiameter:   3.0,
		Pitch:           0.5,
		ToleranceAxial:  0.05,
		ToleranceRadial: 0.02,
	})
	if err != nil {
		t.Fatalf("ISOProfile failed: %v", err)
	}
	if len(profile) != 3 {
		t.Fatalf("expected sharp 3 point profile, got %d points", len(profile))
	}

	// Surplus axial offset becomes a radial offset of tan(60)*(0.03125-0.05).
	if !almostEqual(profile[0].X, 0.15625, eps) || !almostEqual(profile[0].Y, 1.14276, eps) {
		t.Errorf("root point: got %v", profile[0])
	}
	if profile[1].X != 0 || !almostEqual(profile[1].Y, 1.41340, eps) {
		t.Errorf("tip point: got %v", profile[1])
	}
	if profile[2].X != -profile[0].X || profile[2].Y != profile[0].Y {
		t.Errorf("profile not symmetric: %v vs %v", profile[0], profile[2])
	}
}

func TestISOProfileInternalClip(t *testing.T) {
	var clip *Clip
	profile, err := ISOProfile(Spec{
		MajorDiameter:  3.0,
		Pitch:          0.5,
		Internal:       true,
		ToleranceAxial: 0.1,
		OnClip:         func(c Clip) { clip = &c },
	})
	if err != nil {
		t.Fatalf("ISOProfile failed: %v", err)
	}
	if clip == nil {
		t.Fatal("expected clip callback")
	}
	if len(profile) != 4 {
		t.Fatalf("expected 4 points, got %d", len(profile))
	}
	if profile[0].X >= 0.25 || !almostEqual(profile[0].X, 0.25, 1e-5) {
		t.Errorf("x1 not clipped below P/2: %v", profile[0].X)
	}
	if !almostEqual(profile[0].Y, 1.24019, eps) {
		t.Errorf("y0 after clip: expected 1.24019, got %v", profile[0].Y)
	}
	if !almostEqual(clip.DY, 1.24019-1.17524, eps) {
		t.Errorf("clip dy: got %v", clip.DY)
	}
}

func TestISOProfilePointCountStable(t *testing.T) {
	tests := []struct {
		name     string
		internal bool
		minTol   float64
		maxTol   float64
		expected int
	}{
		{"external inside crest", false, 0, 0.031, 4},
		{"external past crest", false, 0.0313, 0.2, 3},
		{"internal", true, 0, 0.2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i <= 20; i++ {
				tol := tt.minTol + (tt.maxTol-tt.minTol)*float64(i)/20
				for _, radial := range []float64{0, 0.05, 0.15} {
					profile, err := ISOProfile(Spec{
						MajorDiameter:   3.0,
						Pitch:           0.5,
						Internal:        tt.internal,
						ToleranceAxial:  tol,
						ToleranceRadial: radial,
					})
					if err != nil {
						t.Fatalf("tol %v: %v", tol, err)
					}
					if len(profile) != tt.expected {
						t.Errorf("tol %v radial %v: expected %d points, got %d", tol, radial, tt.expected, len(profile))
					}
				}
			}
		})
	}
}

func TestISOProfileInternalFoldRejected(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{"axial tolerance wider than the crest gap", Spec{MajorDiameter: 2, Pitch: 0.25, Internal: true, ToleranceAxial: 0.2}},
		{"m2-fine at default clearance", Spec{MajorDiameter: 2, Pitch: 0.25, Internal: true, ToleranceAxial: 0.12, ToleranceRadial: 0.15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := ISOProfile(tt.spec)
			if !errors.Is(err, ErrDegenerateGeometry) {
				t.Errorf("expected ErrDegenerateGeometry, got %v (profile %v)", err, profile)
			}
		})
	}
}

func TestISOProfileInternalToleranceSweep(t *testing.T) {
	table := DefaultTable()
	for _, p := range table.List(true) {
		if p.Standard != ISOMetric {
			continue
		}
		for _, tol := range []float64{0, 0.05, 0.12, 0.2, 0.4} {
			spec, err := table.Spec(p.Name, Spec{Internal: true, ToleranceAxial: tol, ToleranceRadial: 0.15})
			if err != nil {
				t.Fatalf("%s: %v", p.Name, err)
			}

			profile, err := ISOProfile(spec)
			folds := p.Pitch/16+tol >= p.Pitch/2-isoClipMargin
			if folds {
				if !errors.Is(err, ErrDegenerateGeometry) {
					t.Errorf("%s tol %v: expected ErrDegenerateGeometry, got %v", p.Name, tol, err)
				}
				continue
			}
			if err != nil {
				t.Errorf("%s tol %v: %v", p.Name, tol, err)
				continue
			}

			for i := 1; i < len(profile); i++ {
				if profile[i].X >= profile[i-1].X {
					t.Errorf("%s tol %v: point %d not left of point %d: %v", p.Name, tol, i, i-1, profile)
				}
			}
			if profile[0].Y >= profile[1].Y {
				t.Errorf("%s tol %v: root %v not below crest %v", p.Name, tol, profile[0].Y, profile[1].Y)
			}
		}
	}
}

func TestISOProfileRightToLeft(t *testing.T) {
	profile, err := ISOProfile(Spec{MajorDiameter: 8, Pitch: 1.25, Internal: true, ToleranceAxial: 0.12, ToleranceRadial: 0.15})
	if err != nil {
		t.Fatalf("ISOProfile failed: %v", err)
	}
	for i := 1; i < len(profile); i++ {
		if profile[i].X >= profile[i-1].X {
			t.Errorf("point %d not left of point %d: %v, %v", i, i-1, profile[i], profile[i-1])
		}
	}
}

func TestGenerateInvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{"zero pitch", Spec{MajorDiameter: 3}},
		{"negative diameter", Spec{MajorDiameter: -3, Pitch: 0.5}},
		{"NaN pitch", Spec{MajorDiameter: 3, Pitch: math.NaN()}},
		{"whitworth without segment length", Spec{Standard: Whitworth, MajorDiameter: 6.35, Pitch: 1.27}},
		{"whitworth minor above major", Spec{Standard: Whitworth, MajorDiameter: 6.35, Pitch: 1.27, SegmentLength: 0.1, MinorDiameter: 7}},
		{"unknown standard", Spec{Standard: Standard(7), MajorDiameter: 3, Pitch: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Generate(tt.spec)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestGenerateDegenerate(t *testing.T) {
	// A radial clearance larger than the radius pushes the tooth through the axis.
	_, _, err := Generate(Spec{MajorDiameter: 1, Pitch: 0.25, ToleranceRadial: 2})
	if !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("expected ErrDegenerateGeometry, got %v", err)
	}
}

func TestParseStandard(t *testing.T) {
	for name, expected := range map[string]Standard{
		"":          ISOMetric,
		"ISO":       ISOMetric,
		"whitworth": Whitworth,
		"BSW":       Whitworth,
	} {
		got, err := ParseStandard(name)
		if err != nil || got != expected {
			t.Errorf("ParseStandard(%q): expected %v, got %v (%v)", name, expected, got, err)
		}
	}
	if _, err := ParseStandard("acme"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for acme, got %v", err)
	}
}
