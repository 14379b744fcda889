package viewer

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mbecker/rowlegal/pkg/design"
	"github.com/mbecker/rowlegal/pkg/legalize"
	"github.com/mbecker/rowlegal/pkg/render"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	outcome := &legalize.Outcome{
		Name: "test_block",
		Grid: 10,
		Boundary: design.Boundary{
			XMin: 0, YMin: 0, XMax: 100, YMax: 50,
		},
		Cells: []legalize.CellOutcome{
			{ID: "a", X: 0, Y: 0, OrigX: 5, OrigY: 0, Width: 10, Height: 10, Status: "legal"},
		},
		Report: legalize.Report{Passes: 2, Moves: 1, MaxDistance: 5},
	}
	s, err := New(outcome, render.Options{Width: 400}, log.NewWithOptions(io.Discard, log.Options{}))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return s
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	h := testServer(t).Handler()
	rec := get(t, h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "test_block") {
		t.Error("index should name the design")
	}
	if !strings.Contains(body, "/diff.svg") {
		t.Error("index should embed the diff")
	}
}

func TestDiff(t *testing.T) {
	h := testServer(t).Handler()
	rec := get(t, h, "/diff.svg")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<svg") {
		t.Error("diff should be SVG")
	}
}

func TestReport(t *testing.T) {
	h := testServer(t).Handler()
	rec := get(t, h, "/report.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var outcome legalize.Outcome
	if err := json.Unmarshal(rec.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if outcome.Name != "test_block" || outcome.Report.Passes != 2 {
		t.Errorf("report = %+v", outcome)
	}
}

func TestHealth(t *testing.T) {
	h := testServer(t).Handler()
	rec := get(t, h, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestNotFound(t *testing.T) {
	h := testServer(t).Handler()
	rec := get(t, h, "/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
