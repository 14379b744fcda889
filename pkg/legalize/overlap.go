package legalize

import "github.com/mbecker/rowlegal/pkg/geom"

// BoundaryID identifies the block boundary in conflict reports.
// Cell IDs containing whitespace are rejected at validation, so this
// sentinel can never collide with a real cell.
const BoundaryID = "<boundary>"

// Conflict describes one overlap violating the placement rules: either a
// positive-area intersection with another cell, or a portion of the cell
// lying outside the block boundary.
type Conflict struct {
	// OtherID is the conflicting cell's ID, or BoundaryID.
	OtherID string

	// Rect is the conflicting rectangle: the other cell's rectangle, or
	// the block boundary for boundary conflicts.
	Rect geom.Rect

	// Overlap is the offending region. For cell conflicts it is the
	// intersection; for boundary conflicts it is the bounding box of the
	// part of the cell outside the boundary.
	Overlap geom.Rect

	// Boundary marks a conflict against the block boundary.
	Boundary bool
}

// Detect returns all conflicts of p against the current layout and the
// block boundary, in the layout's fixed cell order. Touching rectangles
// (zero-area intersection) are not conflicts.
//
// Detect is stateless: it reads the layout as it is now and caches nothing,
// so it can be called repeatedly while the layout mutates.
func Detect(l *Layout, p *Placement) []Conflict {
	var conflicts []Conflict
	r := p.Rect()

	for _, other := range l.Cells {
		if other.ID == p.ID {
			continue
		}
		or := other.Rect()
		if overlap, ok := r.Intersect(or); ok {
			conflicts = append(conflicts, Conflict{
				OtherID: other.ID,
				Rect:    or,
				Overlap: overlap,
			})
		}
	}

	if !l.Boundary.Contains(r) {
		conflicts = append(conflicts, Conflict{
			OtherID:  BoundaryID,
			Rect:     l.Boundary,
			Overlap:  overhang(r, l.Boundary),
			Boundary: true,
		})
	}

	return conflicts
}

// overhang returns the bounding box of the part of cell outside boundary.
// A violation on one axis spans the full cell extent on the other axis.
func overhang(cell, boundary geom.Rect) geom.Rect {
	out := cell
	xLow := cell.MinX < boundary.MinX
	xHigh := cell.MaxX > boundary.MaxX
	yLow := cell.MinY < boundary.MinY
	yHigh := cell.MaxY > boundary.MaxY

	if (xLow || xHigh) && !(xLow && xHigh) && !yLow && !yHigh {
		if xLow {
			out.MaxX = boundary.MinX
		} else {
			out.MinX = boundary.MaxX
		}
		return out
	}
	if (yLow || yHigh) && !(yLow && yHigh) && !xLow && !xHigh {
		if yLow {
			out.MaxY = boundary.MinY
		} else {
			out.MinY = boundary.MaxY
		}
		return out
	}
	// Violations on both axes or both sides: the bounding box degenerates
	// to the whole cell.
	return out
}
