// Package design defines the input model for a legalization run: the block
// boundary, the placement row grid, and the standard cells to place.
//
// Designs are loaded from TOML manifests (the human-authored format) or JSON
// (the machine interchange format) and validated before any processing. A
// validated Design is immutable input; the legalizer never mutates it.
package design

import (
	"github.com/mbecker/rowlegal/pkg/errors"
	"github.com/mbecker/rowlegal/pkg/geom"
)

// Cell is a rectangular standard cell. X and Y locate the lower-left corner.
type Cell struct {
	ID     string  `json:"id" toml:"id"`
	X      float64 `json:"x" toml:"x"`
	Y      float64 `json:"y" toml:"y"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Rect returns the cell's rectangle.
func (c Cell) Rect() geom.Rect {
	return geom.NewRect(c.X, c.Y, c.Width, c.Height)
}

// Boundary is the rectangular legal placement region of the block.
type Boundary struct {
	XMin float64 `json:"x_min" toml:"x_min"`
	YMin float64 `json:"y_min" toml:"y_min"`
	XMax float64 `json:"x_max" toml:"x_max"`
	YMax float64 `json:"y_max" toml:"y_max"`
}

// Rect returns the boundary's rectangle.
func (b Boundary) Rect() geom.Rect {
	return geom.Rect{MinX: b.XMin, MinY: b.YMin, MaxX: b.XMax, MaxY: b.YMax}
}

// Design is a complete legalization input.
type Design struct {
	Name     string   `json:"name,omitempty" toml:"name"`
	Grid     float64  `json:"grid" toml:"grid"`
	Boundary Boundary `json:"boundary" toml:"boundary"`
	Cells    []Cell   `json:"cells" toml:"cell"`
}

// Validate checks the design's configuration before any processing.
// Failures here are configuration errors: they are surfaced to the caller
// immediately and nothing is retried.
func (d *Design) Validate() error {
	if err := errors.ValidateGrid(d.Grid); err != nil {
		return err
	}
	if d.Boundary.XMin >= d.Boundary.XMax {
		return errors.New(errors.ErrCodeInvalidBoundary,
			"boundary x_min (%g) must be less than x_max (%g)", d.Boundary.XMin, d.Boundary.XMax)
	}
	if d.Boundary.YMin >= d.Boundary.YMax {
		return errors.New(errors.ErrCodeInvalidBoundary,
			"boundary y_min (%g) must be less than y_max (%g)", d.Boundary.YMin, d.Boundary.YMax)
	}

	seen := make(map[string]bool, len(d.Cells))
	for _, c := range d.Cells {
		if err := errors.ValidateCellID(c.ID); err != nil {
			return err
		}
		if seen[c.ID] {
			return errors.New(errors.ErrCodeInvalidCell, "duplicate cell id %q", c.ID)
		}
		seen[c.ID] = true
		if c.Width <= 0 || c.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidCell,
				"cell %q must have positive dimensions, got %gx%g", c.ID, c.Width, c.Height)
		}
	}
	return nil
}
