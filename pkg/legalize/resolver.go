package legalize

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/mbecker/rowlegal/pkg/design"
)

// DefaultMaxPasses bounds the resolving loop. Pathological geometry can
// oscillate forever; the cap turns that into a reported partial result.
const DefaultMaxPasses = 100

// Options configures a legalization run.
type Options struct {
	// MaxPasses is the hard cap on resolving passes. Zero means
	// DefaultMaxPasses.
	MaxPasses int

	// Trace records a snapshot of every pass for step-through inspection.
	Trace bool

	// Logger receives per-pass debug output. Nil discards it.
	Logger *log.Logger
}

// PassCell is one cell's state within a trace snapshot.
type PassCell struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Status string  `json:"status"`
	Moved  bool    `json:"moved"`
}

// PassSnapshot records the layout state after one resolving pass.
type PassSnapshot struct {
	Pass      int        `json:"pass"`
	Conflicts int        `json:"conflicts"`
	Moves     int        `json:"moves"`
	Cells     []PassCell `json:"cells"`
}

// Result is the outcome of one legalization run.
type Result struct {
	Layout *Layout
	Report *Report

	// Trace holds per-pass snapshots when Options.Trace was set.
	Trace []PassSnapshot
}

// Run legalizes a design: cells are snapped to the row grid, out-of-bounds
// cells are excluded, and remaining overlaps are resolved iteratively with
// minimal displacement.
//
// Run fails fast on configuration errors (invalid grid, boundary, or
// cells). Everything after that degrades gracefully: cells that cannot be
// legalized are reported as unresolved or deadlocked in the result rather
// than aborting the run, since a mostly-legal placement is more useful
// than none.
func Run(d *design.Design, opts Options) (*Result, error) {
	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	l, err := NewLayout(d)
	if err != nil {
		return nil, err
	}

	res := &Result{Layout: l}
	moves := 0
	passes := 0
	capped := false

	for {
		if passes == maxPasses {
			capped = true
			break
		}
		passes++

		passMoves, conflicts := resolvePass(l)
		moves += passMoves
		logger.Debug("resolving pass complete",
			"pass", passes, "conflicts", conflicts, "moves", passMoves)

		if opts.Trace {
			res.Trace = append(res.Trace, snapshotPass(l, passes, conflicts, passMoves))
		}

		// A pass that scanned every cell without finding a conflict is the
		// terminal state.
		if conflicts == 0 {
			break
		}
	}

	markUnresolved(l)
	res.Report = BuildReport(l, passes, moves, capped)
	return res, nil
}

// resolvePass runs one resolving pass over all cells in ascending ID
// order. Moves are strictly sequential: each move mutates the layout that
// the next cell's conflict check reads. It returns the number of moves
// applied and the number of cells that had conflicts when scanned.
func resolvePass(l *Layout) (moves, conflicted int) {
	for _, p := range l.Cells {
		if p.Status == StatusDeadlocked {
			continue
		}

		conflicts := Detect(l, p)
		if len(conflicts) == 0 {
			p.Status = StatusLegal
			continue
		}
		conflicted++

		move, ok := PlanMove(l, p, conflicts)
		if !ok {
			// No single-axis move clears everything (boundary+cell
			// pincer). Retry next pass once neighbours have moved.
			p.Status = StatusUnresolved
			continue
		}

		if p.history.contains(move.X, move.Y) {
			// Oscillation: the cell is revisiting a position. Revert to
			// its original position and freeze it there.
			p.X, p.Y = p.OrigX, p.OrigY
			p.Status = StatusDeadlocked
			continue
		}

		p.X, p.Y = move.X, move.Y
		p.history.push(p.X, p.Y)
		p.Status = StatusLegal
		moves++
	}
	return moves, conflicted
}

// markUnresolved downgrades every non-deadlocked cell that still conflicts
// after the loop ended, so the final report never hides a violation.
func markUnresolved(l *Layout) {
	for _, p := range l.Cells {
		if p.Status == StatusDeadlocked {
			continue
		}
		if len(Detect(l, p)) > 0 {
			p.Status = StatusUnresolved
		} else {
			p.Status = StatusLegal
		}
	}
}

func snapshotPass(l *Layout, pass, conflicts, passMoves int) PassSnapshot {
	snap := PassSnapshot{
		Pass:      pass,
		Conflicts: conflicts,
		Moves:     passMoves,
		Cells:     make([]PassCell, len(l.Cells)),
	}
	for i, p := range l.Cells {
		snap.Cells[i] = PassCell{
			ID:     p.ID,
			X:      p.X,
			Y:      p.Y,
			Status: p.Status.String(),
			Moved:  p.X != p.OrigX || p.Y != p.OrigY,
		}
	}
	return snap
}
