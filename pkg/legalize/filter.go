package legalize

import "github.com/mbecker/rowlegal/pkg/geom"

// Classification is the result of checking a cell against the block boundary.
type Classification int

const (
	// Inside means the whole cell rectangle lies within the boundary.
	// Edges may coincide with the boundary.
	Inside Classification = iota

	// Outside means some part of the cell lies beyond the boundary.
	Outside
)

// Classify checks a cell rectangle against the block boundary.
// Strict containment is required for Inside: a cell that partially
// overlaps the boundary is Outside and is excluded from legalization
// entirely rather than clipped or nudged back in.
func Classify(cell, boundary geom.Rect) Classification {
	if boundary.Contains(cell) {
		return Inside
	}
	return Outside
}
