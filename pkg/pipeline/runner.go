package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mbecker/rowlegal/pkg/cache"
	"github.com/mbecker/rowlegal/pkg/design"
	"github.com/mbecker/rowlegal/pkg/legalize"
	"github.com/mbecker/rowlegal/pkg/observability"
	"github.com/mbecker/rowlegal/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → legalize → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	observability.Pipeline().OnParseStart(ctx, opts.ManifestName)
	d, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		observability.Pipeline().OnParseComplete(ctx, opts.ManifestName, 0, time.Since(parseStart), err)
		return nil, fmt.Errorf("parse: %w", err)
	}
	observability.Pipeline().OnParseComplete(ctx, d.Name, len(d.Cells), time.Since(parseStart), nil)
	result.Design = d
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.CellCount = len(d.Cells)
	result.CacheInfo.ParseHit = parseHit

	// Compute design hash for cache keys and server responses
	if designData, err := design.Marshal(d); err == nil {
		result.DesignHash = cache.Hash(designData)
	}

	r.Logger.Info("parsed design",
		"name", d.Name,
		"cells", len(d.Cells),
		"duration", result.Stats.ParseTime)

	// Stage 2: Legalize
	legalizeStart := time.Now()
	observability.Pipeline().OnLegalizeStart(ctx, d.Name, len(d.Cells))
	outcome, legalizeHit, err := r.LegalizeWithCacheInfo(ctx, d, opts)
	if err != nil {
		observability.Pipeline().OnLegalizeComplete(ctx, d.Name, 0, time.Since(legalizeStart), err)
		return nil, fmt.Errorf("legalize: %w", err)
	}
	observability.Pipeline().OnLegalizeComplete(ctx, d.Name, outcome.Report.Passes, time.Since(legalizeStart), nil)
	result.Outcome = outcome
	result.Stats.LegalizeTime = time.Since(legalizeStart)
	result.Stats.Passes = outcome.Report.Passes
	result.Stats.Moves = outcome.Report.Moves
	result.CacheInfo.LegalizeHit = legalizeHit

	r.Logger.Info("legalized design",
		"passes", outcome.Report.Passes,
		"moves", outcome.Report.Moves,
		"clean", outcome.Report.Clean(),
		"duration", result.Stats.LegalizeTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, outcome, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo parses the manifest with caching and returns cache hit info.
//
// The cache stores the validated design keyed by the raw manifest hash, so a
// byte-identical manifest skips the decode and validation work.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (*design.Design, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.DesignKey(cache.Hash(opts.Manifest))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			d, err := design.Unmarshal(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "design")
				return d, true, nil // Cache hit
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "design")

	// Parse
	d, err := design.Import(opts.Manifest, opts.ManifestName)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := design.Marshal(d); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDesign)
		observability.Cache().OnCacheSet(ctx, "design", len(data))
	}

	return d, false, nil // Cache miss
}

// Parse is a convenience wrapper that discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (*design.Design, error) {
	d, _, err := r.ParseWithCacheInfo(ctx, opts)
	return d, err
}

// LegalizeWithCacheInfo runs the resolver with caching and returns cache hit info.
func (r *Runner) LegalizeWithCacheInfo(ctx context.Context, d *design.Design, opts Options) (*legalize.Outcome, bool, error) {
	opts.SetLegalizeDefaults()
	r.applyLogger(&opts)

	// Compute cache key from the canonical design encoding
	designData, err := design.Marshal(d)
	if err != nil {
		return nil, false, fmt.Errorf("serialize design for cache key: %w", err)
	}
	cacheKey := r.Keyer.ResultKey(cache.Hash(designData), opts.ResultKeyOpts())

	// Try cache first
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := legalize.UnmarshalOutcome(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "result")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, "result")

	// Legalize
	res, err := legalize.Run(d, legalize.Options{
		MaxPasses: opts.MaxPasses,
		Trace:     opts.Trace,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, false, err
	}
	outcome := res.Export(d.Name)

	// Cache the result
	if data, err := legalize.MarshalOutcome(outcome); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLResult)
		observability.Cache().OnCacheSet(ctx, "result", len(data))
	}

	return outcome, false, nil // Cache miss
}

// Legalize is a convenience wrapper that discards the cache hit info.
func (r *Runner) Legalize(ctx context.Context, d *design.Design, opts Options) (*legalize.Outcome, error) {
	outcome, _, err := r.LegalizeWithCacheInfo(ctx, d, opts)
	return outcome, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, outcome *legalize.Outcome, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from outcome data
	outcomeData, err := legalize.MarshalOutcome(outcome)
	if err != nil {
		return nil, false, fmt.Errorf("serialize outcome for cache key: %w", err)
	}
	outcomeHash := cache.Hash(outcomeData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(outcomeHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	rendered, err := renderFormats(ctx, outcome, outcomeData, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(outcomeHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, outcome *legalize.Outcome, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, outcome, opts)
	return artifacts, err
}

// renderFormats produces every requested format. SVG is the base artifact;
// PNG and PDF are converted from it, and JSON is the outcome itself.
func renderFormats(ctx context.Context, outcome *legalize.Outcome, outcomeData []byte, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	var svg []byte
	needSVG := false
	for _, f := range opts.Formats {
		if f == FormatSVG || f == FormatPNG || f == FormatPDF {
			needSVG = true
		}
	}
	if needSVG {
		data, err := render.SVG(outcome, render.Options{
			Width:    opts.Width,
			ShowGrid: opts.ShowGrid,
			Arrows:   opts.Arrows,
		})
		if err != nil {
			return nil, fmt.Errorf("render svg: %w", err)
		}
		svg = data
	}

	for _, f := range opts.Formats {
		switch f {
		case FormatSVG:
			artifacts[f] = svg
		case FormatPNG:
			data, err := render.ToPNG(ctx, svg)
			if err != nil {
				return nil, fmt.Errorf("convert png: %w", err)
			}
			artifacts[f] = data
		case FormatPDF:
			data, err := render.ToPDF(ctx, svg)
			if err != nil {
				return nil, fmt.Errorf("convert pdf: %w", err)
			}
			artifacts[f] = data
		case FormatJSON:
			artifacts[f] = outcomeData
		}
	}

	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
