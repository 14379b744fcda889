// Package legalize implements the placement legalization engine: row
// snapping, boundary filtering, overlap detection, displacement planning,
// and the iterative conflict resolver.
//
// The engine operates on a Layout, a mutable set of cell placements owned
// exclusively by one Run call. Processing is strictly sequential and
// ordered by cell ID, so identical inputs always produce identical outputs.
package legalize

import (
	"cmp"
	"slices"

	"github.com/mbecker/rowlegal/pkg/design"
	"github.com/mbecker/rowlegal/pkg/geom"
)

// Status describes a placement's state at the end of a run.
type Status int

const (
	// StatusLegal means the cell satisfies all placement constraints.
	StatusLegal Status = iota

	// StatusUnresolved means the cell still conflicts and no single-axis
	// move could clear it within the pass budget.
	StatusUnresolved

	// StatusDeadlocked means the cell oscillated between previously
	// visited positions and was reverted to its original position. It may
	// still conflict; deadlocked cells are reported, never hidden.
	StatusDeadlocked
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusUnresolved:
		return "unresolved"
	case StatusDeadlocked:
		return "deadlocked"
	default:
		return "legal"
	}
}

// historyDepth bounds the per-cell position history used for oscillation
// detection. Only short-cycle oscillation needs detecting, so a small ring
// suffices.
const historyDepth = 8

// positionRing is a fixed-size ring buffer of visited positions.
type positionRing struct {
	buf  [historyDepth][2]float64
	n    int
	next int
}

func (r *positionRing) push(x, y float64) {
	r.buf[r.next] = [2]float64{x, y}
	r.next = (r.next + 1) % historyDepth
	if r.n < historyDepth {
		r.n++
	}
}

func (r *positionRing) contains(x, y float64) bool {
	for i := 0; i < r.n; i++ {
		if r.buf[i][0] == x && r.buf[i][1] == y {
			return true
		}
	}
	return false
}

// Placement is the mutable state of one in-bounds cell during resolution.
// OrigX/OrigY capture the position after snapping but before any resolver
// move; displacement and deadlock reverts are measured against them.
type Placement struct {
	ID            string
	Width, Height float64
	OrigX, OrigY  float64
	X, Y          float64
	Status        Status

	history positionRing
}

// Rect returns the placement's current rectangle.
func (p *Placement) Rect() geom.Rect {
	return geom.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Displacement returns the Manhattan distance from the original position.
// Moves are axis-aligned, so this is exactly the travel applied.
func (p *Placement) Displacement() float64 {
	return abs(p.X-p.OrigX) + abs(p.Y-p.OrigY)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Layout is the shared mutable placement state for one legalization run.
// The cell set is fixed after construction: out-of-bounds cells are
// excluded once and never revisited, and no cell is destroyed during
// resolution.
type Layout struct {
	Grid     float64
	Boundary geom.Rect

	// Cells holds all in-bounds placements in ascending ID order.
	Cells []*Placement

	// Excluded lists cells that were outside the block boundary, in
	// ascending ID order. They take no further part in processing.
	Excluded []string

	byID map[string]*Placement
}

// NewLayout builds a layout from a validated design: every cell is snapped
// to the row grid, then classified against the block boundary. Cells not
// strictly inside the boundary are excluded, not clipped or nudged.
func NewLayout(d *design.Design) (*Layout, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	l := &Layout{
		Grid:     d.Grid,
		Boundary: d.Boundary.Rect(),
		byID:     make(map[string]*Placement, len(d.Cells)),
	}

	for _, c := range d.Cells {
		y := Snap(c.Y, d.Grid)
		r := geom.NewRect(c.X, y, c.Width, c.Height)
		if Classify(r, l.Boundary) == Outside {
			l.Excluded = append(l.Excluded, c.ID)
			continue
		}
		p := &Placement{
			ID:    c.ID,
			Width: c.Width, Height: c.Height,
			OrigX: c.X, OrigY: y,
			X: c.X, Y: y,
		}
		p.history.push(p.X, p.Y)
		l.Cells = append(l.Cells, p)
		l.byID[c.ID] = p
	}

	slices.SortFunc(l.Cells, func(a, b *Placement) int { return cmp.Compare(a.ID, b.ID) })
	slices.Sort(l.Excluded)
	return l, nil
}

// Cell returns the placement with the given ID, if present.
func (l *Layout) Cell(id string) (*Placement, bool) {
	p, ok := l.byID[id]
	return p, ok
}
