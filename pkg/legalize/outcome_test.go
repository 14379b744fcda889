package legalize

import (
	"testing"

	"github.com/mbecker/rowlegal/pkg/design"
)

func TestOutcomeRoundTrip(t *testing.T) {
	d := &design.Design{
		Name:     "demo",
		Grid:     10,
		Boundary: design.Boundary{XMin: -100, YMin: -100, XMax: 200, YMax: 200},
		Cells: []design.Cell{
			{ID: "a", X: 0, Y: 0, Width: 10, Height: 10},
			{ID: "b", X: 5, Y: 0, Width: 10, Height: 10},
		},
	}
	res := runDesign(t, d, Options{})
	o := res.Export(d.Name)

	data, err := MarshalOutcome(o)
	if err != nil {
		t.Fatalf("MarshalOutcome() error: %v", err)
	}
	got, err := UnmarshalOutcome(data)
	if err != nil {
		t.Fatalf("UnmarshalOutcome() error: %v", err)
	}

	if got.Name != "demo" || got.Grid != 10 {
		t.Errorf("header = %q/%v", got.Name, got.Grid)
	}
	if len(got.Cells) != 2 {
		t.Fatalf("len(Cells) = %d, want 2", len(got.Cells))
	}
	if got.Cells[0].ID != "a" || got.Cells[0].X != -5 {
		t.Errorf("Cells[0] = %+v", got.Cells[0])
	}
	if got.Cells[0].OrigX != 0 || got.Cells[0].Status != "legal" {
		t.Errorf("Cells[0] = %+v", got.Cells[0])
	}
	if got.Report.MaxCellID != "a" || got.Report.MaxDistance != 5 {
		t.Errorf("Report = %+v", got.Report)
	}
}

func TestUnmarshalOutcomeInvalid(t *testing.T) {
	if _, err := UnmarshalOutcome([]byte("{")); err == nil {
		t.Error("UnmarshalOutcome() of malformed JSON should fail")
	}
}
