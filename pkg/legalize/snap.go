package legalize

import "math"

// Snap returns the multiple of grid nearest to y.
// Ties are broken toward the lower grid line: Snap(10, 20) == 0.
// The rule is fixed because it feeds every downstream overlap computation;
// callers must validate grid > 0 before snapping.
func Snap(y, grid float64) float64 {
	return math.Ceil(y/grid-0.5) * grid
}
