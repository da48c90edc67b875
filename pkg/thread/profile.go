package thread

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/philipparndt/gothread/pkg/geometry"
)

// Profile is one period of a thread cross-section, ordered right to left.
type Profile []geometry.Vector2

// NewProfile validates points and returns them as a Profile. It needs at
// least two finite points.
func NewProfile(points []geometry.Vector2) (Profile, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: profile needs at least 2 points, got %d", ErrDegenerateGeometry, len(points))
	}
	for i, p := range points {
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: profile point %d is not finite: %v", ErrDegenerateGeometry, i, p)
		}
	}
	return Profile(points), nil
}

// RadiusRange returns the smallest and largest distance from the axis.
func (p Profile) RadiusRange() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range p {
		lo = math.Min(lo, v.Y)
		hi = math.Max(hi, v.Y)
	}
	return lo, hi
}

// Translated returns a copy shifted along the axis by dx.
func (p Profile) Translated(dx float64) Profile {
	out := make(Profile, len(p))
	for i, v := range p {
		out[i] = geometry.Vector2{X: v.X + dx, Y: v.Y}
	}
	return out
}

// WriteTo writes one "x y" line per point with 10 decimal places.
func (p Profile) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, v := range p {
		n, err := fmt.Fprintf(w, "%.10f %.10f\n", v.X, v.Y)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteProfileFile dumps the profile as plain text to path.
func WriteProfileFile(path string, p Profile) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create profile dump: %w", err)
	}
	defer file.Close()

	bw := bufio.NewWriter(file)
	if _, err := p.WriteTo(bw); err != nil {
		return fmt.Errorf("failed to write profile dump: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write profile dump: %w", err)
	}
	return file.Close()
}
