package legalize

import (
	"math"

	"github.com/mbecker/rowlegal/pkg/geom"
)

// Direction is a single-axis displacement direction.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// directionOrder is the fixed tie-break priority for equal-magnitude
// displacements. The rule is deterministic so identical inputs always
// legalize identically.
var directionOrder = [...]Direction{Left, Right, Up, Down}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	}
	return "down"
}

// Move is a planned single-axis displacement. X and Y are the resulting
// position; vertical moves are already re-snapped to the row grid, so Dist
// is the actual travel along the axis rather than the raw clearing shift.
type Move struct {
	Dir  Direction
	Dist float64
	X, Y float64
}

// PlanMove computes, for each of the four directions, the minimal
// single-axis shift that clears every conflict simultaneously (the maximum
// of the per-conflict shifts), discards directions that would push the cell
// outside the block boundary, and returns the move with the smallest
// travel. Ties break by the fixed priority left > right > up > down.
//
// ok is false when no direction clears all conflicts — a boundary+cell
// pincer can leave no valid single-axis move. The cell is then left in
// place to be retried on a later pass.
func PlanMove(l *Layout, p *Placement, conflicts []Conflict) (Move, bool) {
	c := p.Rect()

	required := [4]float64{}
	for _, cf := range conflicts {
		for _, dir := range directionOrder {
			required[dir] = math.Max(required[dir], clearingShift(dir, c, cf))
		}
	}

	best := Move{Dist: math.Inf(1)}
	ok := false
	for _, dir := range directionOrder {
		m, feasible := resolveTarget(l, p, dir, required[dir])
		if !feasible {
			continue
		}
		if m.Dist < best.Dist {
			best = m
			ok = true
		}
	}
	return best, ok
}

// clearingShift returns the minimal shift in dir that clears one conflict,
// or +Inf when no shift in that direction can.
func clearingShift(dir Direction, c geom.Rect, cf Conflict) float64 {
	if cf.Boundary {
		return boundaryShift(dir, c, cf.Rect)
	}
	o := cf.Rect
	switch dir {
	case Left:
		return c.MaxX - o.MinX
	case Right:
		return o.MaxX - c.MinX
	case Up:
		return o.MaxY - c.MinY
	default: // Down
		return c.MaxY - o.MinY
	}
}

// boundaryShift returns the shift bringing the cell back inside the
// boundary when moving only in dir. A violation on the other axis, or on
// both sides of the same axis, cannot be fixed by a single-axis move.
func boundaryShift(dir Direction, c, b geom.Rect) float64 {
	inf := math.Inf(1)
	xLow := c.MinX < b.MinX
	xHigh := c.MaxX > b.MaxX
	yLow := c.MinY < b.MinY
	yHigh := c.MaxY > b.MaxY

	switch dir {
	case Left:
		if xHigh && !xLow && !yLow && !yHigh {
			return c.MaxX - b.MaxX
		}
	case Right:
		if xLow && !xHigh && !yLow && !yHigh {
			return b.MinX - c.MinX
		}
	case Up:
		if yLow && !yHigh && !xLow && !xHigh {
			return b.MinY - c.MinY
		}
	case Down:
		if yHigh && !yLow && !xLow && !xHigh {
			return c.MaxY - b.MaxY
		}
	}
	return inf
}

// resolveTarget turns a raw clearing shift into a concrete target position.
// Vertical targets are re-snapped to the row grid; a snapped move that goes
// nowhere, or any move leaving the boundary, is infeasible.
func resolveTarget(l *Layout, p *Placement, dir Direction, shift float64) (Move, bool) {
	if math.IsInf(shift, 1) || shift <= 0 {
		return Move{}, false
	}

	x, y := p.X, p.Y
	switch dir {
	case Left:
		x -= shift
	case Right:
		x += shift
	case Up:
		y = Snap(p.Y+shift, l.Grid)
	case Down:
		y = Snap(p.Y-shift, l.Grid)
	}

	dist := abs(x-p.X) + abs(y-p.Y)
	if dist == 0 {
		return Move{}, false
	}

	target := geom.Rect{MinX: x, MinY: y, MaxX: x + p.Width, MaxY: y + p.Height}
	if !l.Boundary.Contains(target) {
		return Move{}, false
	}

	return Move{Dir: dir, Dist: dist, X: x, Y: y}, true
}
