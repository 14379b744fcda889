// Package viewer serves a legalization outcome over HTTP.
//
// The server exposes a small read-only surface: an HTML index that embeds
// the rendered diff, the diff itself as SVG, and the raw report as JSON.
// It exists so a run can be inspected in a browser without exporting files.
package viewer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mbecker/rowlegal/pkg/legalize"
	"github.com/mbecker/rowlegal/pkg/observability"
	"github.com/mbecker/rowlegal/pkg/render"
)

// Server serves a single legalization outcome.
type Server struct {
	outcome *legalize.Outcome
	opts    render.Options
	logger  *log.Logger

	// svg is rendered once at startup; the outcome never changes.
	svg []byte
}

// New creates a viewer for the given outcome.
func New(outcome *legalize.Outcome, opts render.Options, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	svg, err := render.SVG(outcome, opts)
	if err != nil {
		return nil, fmt.Errorf("render diff: %w", err)
	}
	return &Server{
		outcome: outcome,
		opts:    opts,
		logger:  logger,
		svg:     svg,
	}, nil
}

// Handler returns the HTTP handler for the viewer.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.handleIndex)
	r.Get("/diff.svg", s.handleDiff)
	r.Get("/report.json", s.handleReport)
	r.Get("/healthz", s.handleHealth)

	return r
}

// ListenAndServe runs the viewer until ctx-independent server shutdown.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("viewer listening", "addr", addr, "design", s.outcome.Name)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// observe reports requests to the server hooks and the logger.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", duration)
	})
}

const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s — rowlegal</title>
<style>
  body { font-family: monospace; margin: 2rem; color: #334155; }
  img { max-width: 100%%; border: 1px solid #cbd5e1; }
  .stats { margin-bottom: 1rem; }
</style>
</head>
<body>
<h1>%s</h1>
<div class="stats">passes: %d · moves: %d · max displacement: %.2f · <a href="/report.json">report.json</a> · <a href="/diff.svg">diff.svg</a></div>
<img src="/diff.svg" alt="placement diff">
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	name := s.outcome.Name
	if name == "" {
		name = "design"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexPage, name, name,
		s.outcome.Report.Passes,
		s.outcome.Report.Moves,
		s.outcome.Report.MaxDistance)
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(s.svg)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.outcome); err != nil {
		s.logger.Error("encode report", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
