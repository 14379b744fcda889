package render

import (
	"strings"
	"testing"

	"github.com/mbecker/rowlegal/pkg/design"
	"github.com/mbecker/rowlegal/pkg/legalize"
)

func testOutcome() *legalize.Outcome {
	return &legalize.Outcome{
		Name: "test_block",
		Grid: 10,
		Boundary: design.Boundary{
			XMin: 0, YMin: 0, XMax: 100, YMax: 50,
		},
		Cells: []legalize.CellOutcome{
			{ID: "a", X: 0, Y: 0, OrigX: 5, OrigY: 0, Width: 10, Height: 10, Status: "legal"},
			{ID: "b", X: 10, Y: 0, OrigX: 10, OrigY: 0, Width: 10, Height: 10, Status: "legal"},
			{ID: "dead", X: 40, Y: 0, OrigX: 40, OrigY: 0, Width: 10, Height: 10, Status: "deadlocked"},
		},
	}
}

func TestSVGStructure(t *testing.T) {
	svg, err := SVG(testOutcome(), Options{Width: 400})
	if err != nil {
		t.Fatalf("SVG error: %v", err)
	}

	s := string(svg)
	if !strings.HasPrefix(s, "<svg") {
		t.Error("output should start with <svg")
	}
	if !strings.HasSuffix(strings.TrimSpace(s), "</svg>") {
		t.Error("output should end with </svg>")
	}
	if !strings.Contains(s, "test_block — input") {
		t.Error("missing before-panel title")
	}
	if !strings.Contains(s, "test_block — legalized") {
		t.Error("missing after-panel title")
	}
	// Every cell appears in both panels.
	if got := strings.Count(s, ">a</text>"); got != 2 {
		t.Errorf("cell a labeled %d times, want 2", got)
	}
}

func TestSVGStatusColors(t *testing.T) {
	svg, err := SVG(testOutcome(), Options{Width: 400})
	if err != nil {
		t.Fatalf("SVG error: %v", err)
	}

	s := string(svg)
	if !strings.Contains(s, colorDeadlocked) {
		t.Error("deadlocked cell should use the deadlocked fill")
	}
	if !strings.Contains(s, colorMoved) {
		t.Error("moved cell should use the moved fill")
	}
}

func TestSVGGridAndArrows(t *testing.T) {
	plain, err := SVG(testOutcome(), Options{Width: 400})
	if err != nil {
		t.Fatalf("SVG error: %v", err)
	}
	full, err := SVG(testOutcome(), Options{Width: 400, ShowGrid: true, Arrows: true})
	if err != nil {
		t.Fatalf("SVG error: %v", err)
	}

	if strings.Contains(string(plain), "stroke-dasharray") {
		t.Error("grid lines rendered without ShowGrid")
	}
	if !strings.Contains(string(full), "stroke-dasharray") {
		t.Error("ShowGrid should render dashed row lines")
	}
	if strings.Contains(string(plain), "arrowhead") {
		t.Error("arrows rendered without Arrows")
	}
	// Only cell "a" moved, so exactly one arrow line plus the marker def.
	if got := strings.Count(string(full), "marker-end"); got != 1 {
		t.Errorf("arrow count = %d, want 1", got)
	}
}

func TestSVGDegenerateBoundary(t *testing.T) {
	o := testOutcome()
	o.Boundary.XMax = o.Boundary.XMin
	if _, err := SVG(o, Options{}); err == nil {
		t.Error("degenerate boundary should error")
	}
}

func TestEscape(t *testing.T) {
	if got := escape("a<b&c>d"); got != "a&lt;b&amp;c&gt;d" {
		t.Errorf("escape = %q", got)
	}
}
