// Package generator runs the thread pipeline: parameters to profile, profile
// to swept solid, solid to mesh files.
package generator

import (
	"fmt"

	"github.com/philipparndt/gothread/internal/config"
	"github.com/philipparndt/gothread/pkg/mesh"
	"github.com/philipparndt/gothread/pkg/meshio"
	"github.com/philipparndt/gothread/pkg/thread"
	"github.com/rs/zerolog"
)

// Generator builds thread meshes. The zero value has no presets and
// discards log output.
type Generator struct {
	Presets *thread.Table
	Logger  zerolog.Logger
}

// New returns a generator with the given presets and logger.
func New(presets *thread.Table, logger zerolog.Logger) *Generator {
	return &Generator{Presets: presets, Logger: logger}
}

// Result is the output of one generation run.
type Result struct {
	Mesh *mesh.Mesh
	// Profile is the cross-section as generated, before centring.
	Profile thread.Profile
	Pitch   float64
	Sweep   mesh.SweepParams
}

// Generate builds the closed thread mesh for params. Parameters are
// validated before any geometry is built. The 2D dump and plot named in
// params are written on the way; mesh outputs are not, see Export.
func (g *Generator) Generate(params config.Params) (*Result, error) {
	spec, err := params.Spec(g.Presets)
	if err != nil {
		return nil, err
	}
	spec.OnClip = func(c thread.Clip) {
		g.Logger.Info().
			Float64("x1", c.X1).
			Float64("max_x", c.MaxX).
			Float64("dy", c.DY).
			Msg("Clipping internal thread root")
	}

	g.Logger.Info().
		Str("standard", spec.Standard.String()).
		Float64("major_diameter", spec.MajorDiameter).
		Float64("pitch", spec.Pitch).
		Bool("internal", spec.Internal).
		Float64("tolerance_x", spec.ToleranceAxial).
		Float64("tolerance_y", spec.ToleranceRadial).
		Msg("Thread parameters")

	profile, pitch, err := thread.Generate(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile: %w", err)
	}

	if params.Output2D != "" {
		g.Logger.Info().Str("path", params.Output2D).Msg("Dumping 2D vertices")
		if err := thread.WriteProfileFile(params.Output2D, profile); err != nil {
			return nil, err
		}
	}
	if params.Plot2D != "" {
		g.Logger.Info().Str("path", params.Plot2D).Msg("Plotting 2D profile")
		title := fmt.Sprintf("%s %.2f x %.2f", spec.Standard, spec.MajorDiameter, pitch)
		if err := thread.PlotProfile(params.Plot2D, profile, title); err != nil {
			return nil, err
		}
	}

	centred := profile.Translated(-(pitch + params.Length/2))
	minY, maxY := centred.RadiusRange()

	sweep, err := mesh.NewSweepParams(pitch, params.Length, maxY, params.SegmentLengthMM())
	if err != nil {
		return nil, err
	}

	g.Logger.Info().
		Float64("segment_length", params.SegmentLengthMM()).
		Float64("min_y", minY).
		Float64("max_y", maxY).
		Int("revolutions", sweep.Revolutions).
		Int("steps_per_revolution", sweep.StepsPerRevolution).
		Msg("Sweep")

	m, err := mesh.RevolveSolid(centred, sweep.StepCount, sweep.StepAxial, sweep.StepAngle, sweep.StepsPerRevolution)
	if err != nil {
		return nil, fmt.Errorf("failed to sweep profile: %w", err)
	}

	if params.ZMajor {
		m.Transform(mesh.ZMajor)
	}

	g.Logger.Info().
		Int("vertices", m.VertexCount()).
		Int("facets", m.FaceCount()).
		Msg("Mesh generated")

	return &Result{
		Mesh:    m,
		Profile: profile,
		Pitch:   pitch,
		Sweep:   sweep,
	}, nil
}

// Export writes the result to every path in params.Outputs. All targets
// are attempted; failures are joined.
func (g *Generator) Export(params config.Params, result *Result) error {
	if len(params.Outputs) == 0 {
		g.Logger.Warn().Msg("No output files")
		return nil
	}
	for _, path := range params.Outputs {
		g.Logger.Info().
			Str("path", path).
			Str("format", meshio.FormatFromPath(path).String()).
			Msg("Output")
	}
	return meshio.ExportAll(params.Outputs, result.Mesh)
}

// Run generates and exports in one step.
func (g *Generator) Run(params config.Params) (*Result, error) {
	result, err := g.Generate(params)
	if err != nil {
		return nil, err
	}
	if err := g.Export(params, result); err != nil {
		return result, err
	}
	return result, nil
}
