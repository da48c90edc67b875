// Package config holds the generation parameters as the user supplies
// them, with segment length and tolerances in micrometres, and converts
// them to a millimetre thread.Spec.
package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/philipparndt/gothread/pkg/thread"
)

// Defaults used when neither flags nor a parameter file set a value.
const (
	DefaultLength        = 15.0  // mm
	DefaultSegmentLength = 200.0 // um
	DefaultToleranceX    = 120.0 // um
	DefaultToleranceY    = 150.0 // um
)

const micrometre = 1.0 / 1000

// Params are the inputs of one generation run.
type Params struct {
	// Preset selects diameter, pitch and standard from the preset table.
	// When empty, Diameter and Pitch are used.
	Preset   string  `toml:"preset"`
	Diameter float64 `toml:"diameter"`
	Pitch    float64 `toml:"pitch"`
	// Whitworth selects the rounded 55 degree profile for explicit
	// diameter/pitch. Presets carry their own standard.
	Whitworth     bool    `toml:"whitworth"`
	MinorDiameter float64 `toml:"minor_diameter"`

	Length        float64 `toml:"length"`         // mm
	SegmentLength float64 `toml:"segment_length"` // um
	Internal      bool    `toml:"internal"`
	ToleranceX    float64 `toml:"tolerance_x"` // um
	ToleranceY    float64 `toml:"tolerance_y"` // um
	ZMajor        bool    `toml:"z_major"`

	Outputs  []string `toml:"outputs"`
	Output2D string   `toml:"output_2d"`
	Plot2D   string   `toml:"plot_2d"`
	Preview  string   `toml:"preview"`
}

// Defaults returns the parameters of a run without any overrides.
func Defaults() Params {
	return Params{
		Length:        DefaultLength,
		SegmentLength: DefaultSegmentLength,
		ToleranceX:    DefaultToleranceX,
		ToleranceY:    DefaultToleranceY,
	}
}

// LoadFile decodes a TOML parameter file on top of base. Keys missing from
// the file keep their base value; unknown keys are an error.
func LoadFile(path string, base Params) (Params, error) {
	p := base
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return Params{}, fmt.Errorf("failed to read parameter file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Params{}, fmt.Errorf("%w: unknown keys in %s: %s", thread.ErrInvalidParameter, path, strings.Join(keys, ", "))
	}
	return p, nil
}

// Validate checks the parameters that do not depend on the preset table.
func (p Params) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %v", thread.ErrInvalidParameter, name, v))
		}
	}

	positive("length", p.Length)
	positive("segment length", p.SegmentLength)
	if p.Preset == "" {
		positive("diameter", p.Diameter)
		positive("pitch", p.Pitch)
	}
	for _, tol := range []struct {
		name  string
		value float64
	}{{"tolerance x", p.ToleranceX}, {"tolerance y", p.ToleranceY}} {
		if math.IsNaN(tol.value) || math.IsInf(tol.value, 0) {
			errs = append(errs, fmt.Errorf("%w: %s must be finite, got %v", thread.ErrInvalidParameter, tol.name, tol.value))
		}
	}
	if p.MinorDiameter < 0 {
		errs = append(errs, fmt.Errorf("%w: minor diameter must not be negative, got %v", thread.ErrInvalidParameter, p.MinorDiameter))
	}

	return errors.Join(errs...)
}

// Spec resolves the thread parameters in millimetres. A preset overrides
// diameter, pitch and standard.
func (p Params) Spec(presets *thread.Table) (thread.Spec, error) {
	if err := p.Validate(); err != nil {
		return thread.Spec{}, err
	}

	spec := thread.Spec{
		Standard:        thread.ISOMetric,
		MajorDiameter:   p.Diameter,
		Pitch:           p.Pitch,
		MinorDiameter:   p.MinorDiameter,
		Internal:        p.Internal,
		ToleranceAxial:  p.ToleranceX * micrometre,
		ToleranceRadial: p.ToleranceY * micrometre,
		SegmentLength:   p.SegmentLength * micrometre,
	}
	if p.Whitworth {
		spec.Standard = thread.Whitworth
	}

	if p.Preset != "" {
		if presets == nil {
			return thread.Spec{}, fmt.Errorf("%w: %q (no preset table)", thread.ErrUnknownPreset, p.Preset)
		}
		var err error
		if spec, err = presets.Spec(p.Preset, spec); err != nil {
			return thread.Spec{}, err
		}
	}

	if err := spec.Validate(); err != nil {
		return thread.Spec{}, err
	}
	return spec, nil
}

// SegmentLengthMM returns the maximum segment length in millimetres.
func (p Params) SegmentLengthMM() float64 {
	return p.SegmentLength * micrometre
}
