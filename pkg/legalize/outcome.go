package legalize

import (
	"encoding/json"
	"io"
	"os"

	"github.com/mbecker/rowlegal/pkg/design"
	"github.com/mbecker/rowlegal/pkg/errors"
)

// CellOutcome is the serialized final state of one cell.
type CellOutcome struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	OrigX  float64 `json:"orig_x"`
	OrigY  float64 `json:"orig_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Status string  `json:"status"`
}

// Outcome is the serializable result of a legalization run: the final
// placement plus the movement report. It round-trips through JSON for
// caching, the plot/serve commands, and the run archive.
type Outcome struct {
	Name     string          `json:"name,omitempty"`
	Grid     float64         `json:"grid"`
	Boundary design.Boundary `json:"boundary"`
	Cells    []CellOutcome   `json:"cells"`
	Report   Report          `json:"report"`
	Trace    []PassSnapshot  `json:"trace,omitempty"`
}

// Export converts a run result into its serializable form.
func (r *Result) Export(name string) *Outcome {
	l := r.Layout
	o := &Outcome{
		Name: name,
		Grid: l.Grid,
		Boundary: design.Boundary{
			XMin: l.Boundary.MinX, YMin: l.Boundary.MinY,
			XMax: l.Boundary.MaxX, YMax: l.Boundary.MaxY,
		},
		Cells:  make([]CellOutcome, len(l.Cells)),
		Report: *r.Report,
		Trace:  r.Trace,
	}
	for i, p := range l.Cells {
		o.Cells[i] = CellOutcome{
			ID: p.ID,
			X:  p.X, Y: p.Y,
			OrigX: p.OrigX, OrigY: p.OrigY,
			Width: p.Width, Height: p.Height,
			Status: p.Status.String(),
		}
	}
	return o
}

// MarshalOutcome returns the JSON encoding of an outcome.
func MarshalOutcome(o *Outcome) ([]byte, error) {
	return json.Marshal(o)
}

// UnmarshalOutcome decodes an outcome from JSON.
func UnmarshalOutcome(data []byte) (*Outcome, error) {
	var o Outcome
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode outcome")
	}
	return &o, nil
}

// WriteOutcome encodes an outcome as indented JSON to w.
func WriteOutcome(o *Outcome, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode outcome")
	}
	return nil
}

// ReadOutcomeFile loads an outcome from a JSON file at path.
func ReadOutcomeFile(path string) (*Outcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	return UnmarshalOutcome(data)
}
