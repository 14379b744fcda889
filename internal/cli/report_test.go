package cli

import (
	"strings"
	"testing"

	"github.com/mbecker/rowlegal/pkg/legalize"
)

func TestRenderReportNoMoves(t *testing.T) {
	out := renderReport(&legalize.Outcome{
		Report: legalize.Report{
			Movements: []legalize.Movement{{ID: "a"}},
			Passes:    1,
		},
	})
	if !strings.Contains(out, "already legal") {
		t.Errorf("expected already-legal message, got:\n%s", out)
	}
}

func TestRenderReportMovedCells(t *testing.T) {
	out := renderReport(&legalize.Outcome{
		Report: legalize.Report{
			Movements: []legalize.Movement{
				{ID: "a", DX: 5, Distance: 5},
				{ID: "b"},
			},
			MaxDistance:   5,
			MaxCellID:     "a",
			TotalDistance: 5,
			Passes:        2,
			Moves:         1,
		},
	})

	if !strings.Contains(out, "a") {
		t.Errorf("expected moved cell in table, got:\n%s", out)
	}
	if strings.Contains(out, "already legal") {
		t.Errorf("unexpected already-legal message with moved cells")
	}
	if !strings.Contains(out, "max displacement") {
		t.Errorf("expected max displacement summary, got:\n%s", out)
	}
}

func TestRenderReportAnomalies(t *testing.T) {
	out := renderReport(&legalize.Outcome{
		Report: legalize.Report{
			Movements:  []legalize.Movement{{ID: "a", DX: 2, Distance: 2}},
			Deadlocked: []string{"d1"},
			Unresolved: []string{"u1", "u2"},
			Excluded:   []string{"x1"},
			Capped:     true,
			Passes:     100,
		},
	})

	for _, want := range []string{"d1", "u1, u2", "x1", "pass cap"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in report, got:\n%s", want, out)
		}
	}
}
