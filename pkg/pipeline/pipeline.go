// Package pipeline provides the core legalization pipeline for Rowlegal.
//
// This package implements the complete parse → legalize → render pipeline
// that can be used by CLI, server, and archive components. By centralizing
// this logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read and validate a design manifest (TOML or JSON)
//  2. Legalize: Snap cells to rows and resolve overlaps
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Manifest: manifestBytes,
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mbecker/rowlegal/pkg/cache"
	"github.com/mbecker/rowlegal/pkg/design"
	"github.com/mbecker/rowlegal/pkg/legalize"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultMaxPasses caps the number of resolution passes. Designs with
	// genuinely unplaceable cells terminate here with a partial result.
	DefaultMaxPasses = legalize.DefaultMaxPasses

	// DefaultWidth is the default rendered panel width in pixels.
	DefaultWidth = 800.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the legalization pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Parse options
	Manifest     []byte `json:"manifest,omitempty"`
	ManifestName string `json:"manifest_name,omitempty"` // Filename, used for format sniffing
	Refresh      bool   `json:"refresh,omitempty"`

	// Legalize options
	MaxPasses int  `json:"max_passes,omitempty"`
	Trace     bool `json:"trace,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Width    float64  `json:"width,omitempty"`
	ShowGrid bool     `json:"show_grid,omitempty"`
	Arrows   bool     `json:"arrows,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Design is the parsed and validated input design.
	Design *design.Design

	// DesignHash is the content hash of the canonical design encoding.
	DesignHash string

	// Outcome is the serializable legalization outcome.
	Outcome *legalize.Outcome

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CellCount    int
	Passes       int
	Moves        int
	ParseTime    time.Duration
	LegalizeTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit    bool // Whether the parsed design came from cache
	LegalizeHit bool // Whether the legalization result came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetLegalizeDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if len(o.Manifest) == 0 {
		return fmt.Errorf("manifest is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLegalizeDefaults sets default values for legalization.
func (o *Options) SetLegalizeDefaults() {
	if o.MaxPasses == 0 {
		o.MaxPasses = DefaultMaxPasses
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// ResultKeyOpts returns cache key options for legalization.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		MaxPasses: o.MaxPasses,
		Trace:     o.Trace,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Width:    o.Width,
		ShowGrid: o.ShowGrid,
		Arrows:   o.Arrows,
	}
}
