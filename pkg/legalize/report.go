package legalize

// Movement is one cell's displacement between its original and final
// position. Distance is the Manhattan distance; moves are axis-aligned, so
// it equals the total travel applied.
type Movement struct {
	ID       string  `json:"id"`
	DX       float64 `json:"dx"`
	DY       float64 `json:"dy"`
	Distance float64 `json:"distance"`
}

// Report summarizes a legalization run. It is a read-only value object
// built from the final layout; every anomaly of the run (deadlocked cells,
// cells unresolved at the pass cap, excluded cells) appears here.
type Report struct {
	Movements []Movement `json:"movements"`

	// MaxDistance is the largest per-cell displacement, achieved by MaxCellID.
	MaxDistance float64 `json:"max_distance"`
	MaxCellID   string  `json:"max_cell_id,omitempty"`

	TotalDistance float64 `json:"total_distance"`

	Deadlocked []string `json:"deadlocked,omitempty"`
	Unresolved []string `json:"unresolved,omitempty"`
	Excluded   []string `json:"excluded,omitempty"`

	Passes int  `json:"passes"`
	Moves  int  `json:"moves"`
	Capped bool `json:"capped,omitempty"`
}

// Clean reports whether every in-bounds cell ended up legal.
func (r *Report) Clean() bool {
	return len(r.Deadlocked) == 0 && len(r.Unresolved) == 0
}

// BuildReport computes per-cell movements and aggregates from the final
// layout. Movements follow the layout's ascending ID order, so reports are
// deterministic and the first maximum wins on equal distances.
func BuildReport(l *Layout, passes, moves int, capped bool) *Report {
	r := &Report{
		Movements: make([]Movement, len(l.Cells)),
		Excluded:  append([]string(nil), l.Excluded...),
		Passes:    passes,
		Moves:     moves,
		Capped:    capped,
	}

	for i, p := range l.Cells {
		d := p.Displacement()
		r.Movements[i] = Movement{
			ID:       p.ID,
			DX:       p.X - p.OrigX,
			DY:       p.Y - p.OrigY,
			Distance: d,
		}
		r.TotalDistance += d
		if d > r.MaxDistance {
			r.MaxDistance = d
			r.MaxCellID = p.ID
		}

		switch p.Status {
		case StatusDeadlocked:
			r.Deadlocked = append(r.Deadlocked, p.ID)
		case StatusUnresolved:
			r.Unresolved = append(r.Unresolved, p.ID)
		}
	}
	return r
}
