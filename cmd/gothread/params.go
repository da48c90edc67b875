package main

import (
	"fmt"
	"strings"

	"github.com/philipparndt/gothread/internal/config"
	"github.com/spf13/cobra"
)

// generateFlags are shared by the generate and view commands
type generateFlags struct {
	preset        string
	diameter      float64
	pitch         float64
	whitworth     bool
	minorDiameter float64
	length        float64
	segmentLength float64
	internal      bool
	toleranceX    float64
	toleranceY    float64
	zMajor        bool
	output2D      string
	plot2D        string
	preview       string
	configFile    string
	watch         bool
}

func (f *generateFlags) register(cmd *cobra.Command) {
	defaults := config.Defaults()
	flags := cmd.Flags()

	flags.StringVarP(&f.preset, "preset", "t", "", `Preset name, e.g. m3 or bsw-1/4 ("list" or "list-all" prints the table)`)
	flags.Float64VarP(&f.diameter, "diameter", "d", 0, "Major diameter in mm, used without --preset")
	flags.Float64VarP(&f.pitch, "pitch", "p", 0, "Thread pitch in mm, used without --preset")
	flags.BoolVarP(&f.whitworth, "whitworth", "w", false, "Use the Whitworth profile for --diameter/--pitch")
	flags.Float64Var(&f.minorDiameter, "minor-diameter", 0, "Whitworth minor diameter in mm (default: standard depth)")
	flags.Float64VarP(&f.length, "length", "l", defaults.Length, "Usable thread length in mm (the mesh is slightly longer)")
	flags.Float64VarP(&f.segmentLength, "segment-length", "s", defaults.SegmentLength, "Maximum segment length in micrometres, controls the vertex count")
	flags.BoolVarP(&f.internal, "internal", "i", false, "Internal thread (nut, to be subtracted) instead of external (bolt)")
	flags.Float64VarP(&f.toleranceX, "tolerance-x", "x", defaults.ToleranceX, "Tolerance along the screw axis in micrometres")
	flags.Float64VarP(&f.toleranceY, "tolerance-y", "y", defaults.ToleranceY, "Tolerance along the diameter in micrometres")
	flags.BoolVarP(&f.zMajor, "z-major", "z", false, "Orient the thread along Z instead of X")
	flags.StringVarP(&f.output2D, "output-2d", "2", "", "Write the 2D profile vertices to this file")
	flags.StringVar(&f.plot2D, "plot-2d", "", "Plot the 2D profile to this image (.png, .svg, .pdf)")
	flags.StringVar(&f.preview, "preview", "", "Render a shaded PNG preview of the mesh")
	flags.StringVarP(&f.configFile, "config", "c", "", "TOML parameter file; flags given explicitly override it")
	flags.BoolVar(&f.watch, "watch", false, "Regenerate whenever the parameter file changes")
}

// params merges defaults, the parameter file and the explicitly set flags,
// in that order. Positional arguments replace the file's outputs.
func (f *generateFlags) params(cmd *cobra.Command, outputs []string) (config.Params, error) {
	p := config.Defaults()
	if f.configFile != "" {
		var err error
		if p, err = config.LoadFile(f.configFile, p); err != nil {
			return config.Params{}, err
		}
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if f.configFile == "" || flags.Changed(name) {
			apply()
		}
	}
	set("preset", func() { p.Preset = f.preset })
	set("diameter", func() { p.Diameter = f.diameter })
	set("pitch", func() { p.Pitch = f.pitch })
	set("whitworth", func() { p.Whitworth = f.whitworth })
	set("minor-diameter", func() { p.MinorDiameter = f.minorDiameter })
	set("length", func() { p.Length = f.length })
	set("segment-length", func() { p.SegmentLength = f.segmentLength })
	set("internal", func() { p.Internal = f.internal })
	set("tolerance-x", func() { p.ToleranceX = f.toleranceX })
	set("tolerance-y", func() { p.ToleranceY = f.toleranceY })
	set("z-major", func() { p.ZMajor = f.zMajor })
	set("output-2d", func() { p.Output2D = f.output2D })
	set("plot-2d", func() { p.Plot2D = f.plot2D })
	set("preview", func() { p.Preview = f.preview })

	if len(outputs) > 0 || f.configFile == "" {
		p.Outputs = outputs
	}

	if f.watch && f.configFile == "" {
		return config.Params{}, fmt.Errorf("--watch needs a parameter file (--config)")
	}
	return p, nil
}

// presetListing reports whether a preset name asks for the preset table
// instead of a thread, and whether fine pitches should be listed too.
func presetListing(preset string) (list, all bool) {
	name := strings.ToLower(preset)
	return strings.Contains(name, "list"), strings.Contains(name, "all")
}
