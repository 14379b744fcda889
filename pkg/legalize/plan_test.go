package legalize

import (
	"testing"

	"github.com/mbecker/rowlegal/pkg/design"
)

func TestPlanMovePicksSmallestShift(t *testing.T) {
	l := detectLayout(t,
		design.Cell{ID: "a", X: 0, Y: 0, Width: 10, Height: 10},
		design.Cell{ID: "b", X: 5, Y: 0, Width: 10, Height: 10},
	)

	a, _ := l.Cell("a")
	move, ok := PlanMove(l, a, Detect(l, a))
	if !ok {
		t.Fatal("PlanMove() ok = false")
	}
	// Clearing b by moving left costs 5; right costs 15; vertical costs a
	// full row. Left wins.
	if move.Dir != Left || move.Dist != 5 {
		t.Errorf("move = %+v, want left by 5", move)
	}
	if move.X != -5 || move.Y != 0 {
		t.Errorf("target = (%v, %v), want (-5, 0)", move.X, move.Y)
	}
}

func TestPlanMoveClearsAllConflicts(t *testing.T) {
	// a overlaps both b and c; the chosen shift must clear both at once,
	// so the per-direction requirement is the max of the per-conflict
	// shifts.
	l := detectLayout(t,
		design.Cell{ID: "a", X: 0, Y: 0, Width: 30, Height: 100},
		design.Cell{ID: "b", X: 25, Y: 0, Width: 10, Height: 100},
		design.Cell{ID: "c", X: 15, Y: 0, Width: 10, Height: 100},
	)

	a, _ := l.Cell("a")
	move, ok := PlanMove(l, a, Detect(l, a))
	if !ok {
		t.Fatal("PlanMove() ok = false")
	}
	// Left must clear c (shift 30-15=15), not just b (shift 30-25=5).
	if move.Dir != Left || move.Dist != 15 {
		t.Errorf("move = %+v, want left by 15", move)
	}
}

func TestPlanMoveTieBreakPrefersLeft(t *testing.T) {
	// b is centered inside a wider cell a, so clearing left and right cost
	// the same; the fixed priority picks left.
	l := detectLayout(t,
		design.Cell{ID: "a", X: 0, Y: 0, Width: 30, Height: 100},
		design.Cell{ID: "b", X: 10, Y: 0, Width: 10, Height: 100},
	)

	b, _ := l.Cell("b")
	move, ok := PlanMove(l, b, Detect(l, b))
	if !ok {
		t.Fatal("PlanMove() ok = false")
	}
	if move.Dir != Left {
		t.Errorf("Dir = %v, want left on tie", move.Dir)
	}
	if move.Dist != 20 {
		t.Errorf("Dist = %v, want 20", move.Dist)
	}
}

func TestPlanMoveRespectsBoundary(t *testing.T) {
	// a sits against the left boundary edge, so clearing left is not
	// available even though it would be the cheaper shift.
	d := &design.Design{
		Grid:     10,
		Boundary: design.Boundary{XMin: 0, YMin: 0, XMax: 100, YMax: 10},
		Cells: []design.Cell{
			{ID: "a", X: 0, Y: 0, Width: 10, Height: 10},
			{ID: "b", X: 5, Y: 0, Width: 10, Height: 10},
		},
	}
	l, err := NewLayout(d)
	if err != nil {
		t.Fatalf("NewLayout() error: %v", err)
	}

	a, _ := l.Cell("a")
	move, ok := PlanMove(l, a, Detect(l, a))
	if !ok {
		t.Fatal("PlanMove() ok = false")
	}
	if move.Dir != Right || move.Dist != 15 {
		t.Errorf("move = %+v, want right by 15", move)
	}
}

func TestPlanMoveVerticalResnaps(t *testing.T) {
	// The only open space is the row above; the vertical target must land
	// exactly on a grid line.
	d := &design.Design{
		Grid:     10,
		Boundary: design.Boundary{XMin: 0, YMin: 0, XMax: 20, YMax: 100},
		Cells: []design.Cell{
			{ID: "a", X: 0, Y: 0, Width: 20, Height: 8},
			{ID: "b", X: 0, Y: 0, Width: 20, Height: 8},
		},
	}
	l, err := NewLayout(d)
	if err != nil {
		t.Fatalf("NewLayout() error: %v", err)
	}

	a, _ := l.Cell("a")
	move, ok := PlanMove(l, a, Detect(l, a))
	if !ok {
		t.Fatal("PlanMove() ok = false")
	}
	if move.Dir != Up {
		t.Fatalf("Dir = %v, want up", move.Dir)
	}
	if move.Y != 10 {
		t.Errorf("target y = %v, want snapped to 10", move.Y)
	}
}

func TestPlanMovePincerHasNoMove(t *testing.T) {
	// a fills the full boundary width and overlaps b; no horizontal shift
	// stays in bounds and the boundary is a single row, so no vertical
	// escape exists either.
	d := &design.Design{
		Grid:     10,
		Boundary: design.Boundary{XMin: 0, YMin: 0, XMax: 20, YMax: 10},
		Cells: []design.Cell{
			{ID: "a", X: 0, Y: 0, Width: 20, Height: 10},
			{ID: "b", X: 5, Y: 0, Width: 10, Height: 10},
		},
	}
	l, err := NewLayout(d)
	if err != nil {
		t.Fatalf("NewLayout() error: %v", err)
	}

	a, _ := l.Cell("a")
	if _, ok := PlanMove(l, a, Detect(l, a)); ok {
		t.Error("PlanMove() ok = true, want no feasible direction")
	}
}
