package thread

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotProfile draws the profile polyline to path. The image format follows
// the file suffix (.png, .svg, .pdf, ...).
func PlotProfile(path string, profile Profile, title string) error {
	if len(profile) == 0 {
		return fmt.Errorf("%w: empty profile", ErrDegenerateGeometry)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "axial [mm]"
	p.Y.Label.Text = "radial [mm]"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(profile))
	for i, v := range profile {
		pts[i].X = v.X
		pts[i].Y = v.Y
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("failed to build profile plot: %w", err)
	}
	p.Add(line, points)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save profile plot: %w", err)
	}
	return nil
}
