package thread

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultTableLookup(t *testing.T) {
	table := DefaultTable()

	p, err := table.Lookup("M3")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if p.Diameter != 3.0 || p.Pitch != 0.5 || p.Standard != ISOMetric || p.Fine {
		t.Errorf("unexpected m3 preset: %+v", p)
	}

	p, err = table.Lookup(" bsw-1/4 ")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if p.Standard != Whitworth || math.Abs(p.Diameter-6.35) > 1e-12 || math.Abs(p.Pitch-1.27) > 1e-12 {
		t.Errorf("unexpected bsw-1/4 preset: %+v", p)
	}

	if _, err := table.Lookup("m7"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestTableList(t *testing.T) {
	table := DefaultTable()

	coarse := table.List(false)
	all := table.List(true)
	if len(all) != table.Len() {
		t.Errorf("List(true): expected %d presets, got %d", table.Len(), len(all))
	}
	if len(coarse) >= len(all) {
		t.Errorf("coarse listing should hide fine variants: %d vs %d", len(coarse), len(all))
	}
	for _, p := range coarse {
		if p.Fine {
			t.Errorf("fine preset %s in coarse listing", p.Name)
		}
	}
	if coarse[0].Name != "m2" {
		t.Errorf("table order not kept, first preset %s", coarse[0].Name)
	}
}

func TestTableSpec(t *testing.T) {
	table := NewTable(
		Preset{Name: "A", Diameter: 4, Pitch: 0.7},
		Preset{Name: "a", Diameter: 5, Pitch: 0.8},
	)
	if table.Len() != 1 {
		t.Fatalf("duplicate names should collapse, got %d", table.Len())
	}

	base := Spec{Internal: true, ToleranceAxial: 0.1, MinorDiameter: 3}
	spec, err := table.Spec("A", base)
	if err != nil {
		t.Fatalf("Spec failed: %v", err)
	}
	if spec.MajorDiameter != 5 || spec.Pitch != 0.8 || !spec.Internal || spec.ToleranceAxial != 0.1 || spec.MinorDiameter != 0 {
		t.Errorf("unexpected spec: %+v", spec)
	}
}

func TestDefaultTableGenerates(t *testing.T) {
	table := DefaultTable()
	for _, p := range table.List(true) {
		spec, err := table.Spec(p.Name, Spec{SegmentLength: 0.2, ToleranceAxial: 0.12, ToleranceRadial: 0.15})
		if err != nil {
			t.Fatalf("%s: %v", p.Name, err)
		}
		if _, _, err := Generate(spec); err != nil {
			t.Errorf("%s: %v", p.Name, err)
		}
	}
}
