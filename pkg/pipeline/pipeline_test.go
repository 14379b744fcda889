package pipeline

import (
	"context"
	"testing"

	"github.com/mbecker/rowlegal/pkg/cache"
)

const testManifest = `
name = "test_block"
grid = 10.0

[boundary]
x_min = 0.0
y_min = 0.0
x_max = 100.0
y_max = 50.0

[[cell]]
id = "a"
x = 5.0
y = 0.0
width = 10.0
height = 10.0

[[cell]]
id = "b"
x = 10.0
y = 0.0
width = 10.0
height = 10.0
`

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"svg", "png", "pdf", "json"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	if err := ValidateFormat("gif"); err == nil {
		t.Error("ValidateFormat(gif) should fail")
	}
	if err := ValidateFormats([]string{"svg", "bmp"}); err == nil {
		t.Error("ValidateFormats with invalid entry should fail")
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Manifest: []byte(testManifest)}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	if opts.MaxPasses != DefaultMaxPasses {
		t.Errorf("MaxPasses = %d, want %d", opts.MaxPasses, DefaultMaxPasses)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width = %v, want %v", opts.Width, DefaultWidth)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsMissingManifest(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("empty manifest should fail validation")
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Manifest: []byte(testManifest),
		Formats:  []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Design == nil || result.Design.Name != "test_block" {
		t.Fatalf("Design = %+v", result.Design)
	}
	if result.DesignHash == "" {
		t.Error("DesignHash should be set")
	}
	if result.Outcome == nil || !result.Outcome.Report.Clean() {
		t.Errorf("expected clean outcome, got %+v", result.Outcome)
	}
	if len(result.Artifacts[FormatSVG]) == 0 {
		t.Error("missing svg artifact")
	}
	if len(result.Artifacts[FormatJSON]) == 0 {
		t.Error("missing json artifact")
	}
	if result.Stats.CellCount != 2 {
		t.Errorf("CellCount = %d, want 2", result.Stats.CellCount)
	}
	if result.CacheInfo.ParseHit || result.CacheInfo.LegalizeHit || result.CacheInfo.RenderHit {
		t.Error("NullCache should never report a hit")
	}
}

func TestExecuteCacheHits(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{
		Manifest: []byte(testManifest),
		Formats:  []string{FormatJSON},
	}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.ParseHit || first.CacheInfo.LegalizeHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss on all stages")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.ParseHit || !second.CacheInfo.LegalizeHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit on all stages, got %+v", second.CacheInfo)
	}
	if second.DesignHash != first.DesignHash {
		t.Error("design hash should be stable across runs")
	}

	// Refresh bypasses the parse and legalize caches.
	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("third Execute error: %v", err)
	}
	if third.CacheInfo.ParseHit || third.CacheInfo.LegalizeHit {
		t.Errorf("refresh run should recompute, got %+v", third.CacheInfo)
	}
}

func TestExecuteInvalidManifest(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	_, err := r.Execute(context.Background(), Options{
		Manifest: []byte(`name = "broken"` + "\ngrid = -1.0\n"),
	})
	if err == nil {
		t.Error("invalid manifest should fail")
	}
}

func TestLegalizeStage(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	ctx := context.Background()
	d, err := r.Parse(ctx, Options{Manifest: []byte(testManifest)})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	outcome, err := r.Legalize(ctx, d, Options{MaxPasses: 5})
	if err != nil {
		t.Fatalf("Legalize error: %v", err)
	}
	if len(outcome.Cells) != 2 {
		t.Errorf("outcome cells = %d, want 2", len(outcome.Cells))
	}
	if !outcome.Report.Clean() {
		t.Errorf("expected clean report, got %+v", outcome.Report)
	}
}
