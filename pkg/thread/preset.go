package thread

import (
	"fmt"
	"sort"
	"strings"
)

// Preset names a standard thread size.
type Preset struct {
	Name     string
	Standard Standard
	Diameter float64 // major diameter [mm]
	Pitch    float64 // [mm]
	// Fine marks fine and extra fine pitch variants, hidden from short listings.
	Fine bool
}

// Table is a read-only preset lookup. Build it once with NewTable and pass
// it to whatever needs it.
type Table struct {
	byName map[string]Preset
	order  []string
}

// NewTable indexes presets by lower-cased name. Later duplicates replace
// earlier ones but keep the original position.
func NewTable(presets ...Preset) *Table {
	t := &Table{byName: make(map[string]Preset, len(presets))}
	for _, p := range presets {
		key := strings.ToLower(p.Name)
		if _, exists := t.byName[key]; !exists {
			t.order = append(t.order, key)
		}
		t.byName[key] = p
	}
	return t
}

// Lookup finds a preset by case-insensitive name.
func (t *Table) Lookup(name string) (Preset, error) {
	p, ok := t.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// List returns presets in table order. Fine variants are included only
// when all is set.
func (t *Table) List(all bool) []Preset {
	out := make([]Preset, 0, len(t.order))
	for _, key := range t.order {
		p := t.byName[key]
		if p.Fine && !all {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Names returns the sorted preset names.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.byName))
	for _, p := range t.byName {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of presets.
func (t *Table) Len() int {
	return len(t.order)
}

// Spec fills diameter, pitch and standard of base from the named preset.
// Tolerances, direction and tessellation are taken from base.
func (t *Table) Spec(name string, base Spec) (Spec, error) {
	p, err := t.Lookup(name)
	if err != nil {
		return Spec{}, err
	}
	base.Standard = p.Standard
	base.MajorDiameter = p.Diameter
	base.Pitch = p.Pitch
	base.MinorDiameter = 0
	return base, nil
}

// DefaultTable returns the ISO metric coarse/fine sizes M2 to M64 and the
// British Standard Whitworth sizes 1/8" to 1".
func DefaultTable() *Table {
	presets := make([]Preset, 0, len(isoMetricSizes)+len(bswSizes))
	for _, s := range isoMetricSizes {
		presets = append(presets, Preset{
			Name:     s.name,
			Standard: ISOMetric,
			Diameter: s.diameter,
			Pitch:    s.pitch,
			Fine:     strings.Contains(s.name, "fine"),
		})
	}
	for _, s := range bswSizes {
		presets = append(presets, Preset{
			Name:     s.name,
			Standard: Whitworth,
			Diameter: s.inches * mmPerInch,
			Pitch:    mmPerInch / s.tpi,
		})
	}
	return NewTable(presets...)
}

const mmPerInch = 25.4

var isoMetricSizes = []struct {
	name            string
	diameter, pitch float64
}{
	{"m2", 2.0, 0.40},
	{"m2-fine", 2.0, 0.25},
	{"m2.5", 2.5, 0.45},
	{"m2.5-fine", 2.5, 0.35},
	{"m3", 3.0, 0.50},
	{"m3-fine", 3.0, 0.35},
	{"m4", 4.0, 0.50},
	{"m4-fine", 4.0, 0.35},
	{"m5", 5.0, 0.80},
	{"m5-fine", 5.0, 0.50},
	{"m6", 6.0, 1.00},
	{"m6-fine", 6.0, 0.75},
	{"m8", 8.0, 1.00},
	{"m8-fine", 8.0, 0.75},
	{"m10", 10, 1.50},
	{"m10-fine", 10, 1.25},
	{"m10-finer", 10, 1.00},
	{"m12", 12, 1.75},
	{"m12-fine", 12, 1.50},
	{"m12-finer", 12, 1.25},
	{"m14", 14, 2.00},
	{"m14-fine", 14, 1.50},
	{"m16", 16, 2.00},
	{"m16-fine", 16, 1.50},
	{"m18", 18, 2.50},
	{"m18-fine", 18, 2.00},
	{"m18-finer", 18, 1.50},
	{"m20", 20, 2.50},
	{"m20-fine", 20, 2.00},
	{"m20-finer", 20, 1.50},
	{"m22", 22, 2.50},
	{"m22-fine", 22, 2.00},
	{"m22-finer", 22, 1.50},
	{"m24", 24, 3.00},
	{"m24-fine", 24, 2.00},
	{"m27", 27, 3.00},
	{"m27-fine", 27, 2.00},
	{"m30", 30, 3.50},
	{"m30-fine", 30, 2.00},
	{"m33", 33, 3.50},
	{"m33-fine", 33, 2.00},
	{"m36", 36, 4.00},
	{"m36-fine", 36, 3.00},
	{"m39", 39, 4.00},
	{"m39-fine", 39, 3.00},
	{"m42", 42, 4.50},
	{"m42-fine", 42, 3.00},
	{"m45", 45, 4.50},
	{"m45-fine", 45, 3.00},
	{"m48", 48, 5.00},
	{"m48-fine", 48, 3.00},
	{"m52", 52, 5.00},
	{"m52-fine", 52, 4.00},
	{"m56", 56, 5.50},
	{"m56-fine", 56, 4.00},
	{"m60", 60, 5.50},
	{"m60-fine", 60, 4.00},
	{"m64", 64, 6.00},
	{"m64-fine", 64, 4.00},
}

// British Standard Whitworth (BS 84), threads per inch.
var bswSizes = []struct {
	name        string
	inches, tpi float64
}{
	{"bsw-1/8", 0.125, 40},
	{"bsw-3/16", 0.1875, 24},
	{"bsw-1/4", 0.25, 20},
	{"bsw-5/16", 0.3125, 18},
	{"bsw-3/8", 0.375, 16},
	{"bsw-7/16", 0.4375, 14},
	{"bsw-1/2", 0.5, 12},
	{"bsw-5/8", 0.625, 11},
	{"bsw-3/4", 0.75, 10},
	{"bsw-7/8", 0.875, 9},
	{"bsw-1", 1.0, 8},
}
