package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbecker/rowlegal/pkg/legalize"
	"github.com/mbecker/rowlegal/pkg/pipeline"
)

// legalizeOpts holds the command-line flags for the legalize command.
type legalizeOpts struct {
	output     string // output file path or base path
	formatsStr string // comma-separated output formats
	maxPasses  int    // resolver pass cap
	width      float64
	showGrid   bool
	arrows     bool
	noCache    bool
	refresh    bool
	quiet      bool // suppress the movement table
}

// legalizeCommand creates the legalize command, the main entry point of the
// tool: parse a design, resolve overlaps, and write the rendered diff.
func (c *CLI) legalizeCommand() *cobra.Command {
	opts := legalizeOpts{
		width:  pipeline.DefaultWidth,
		arrows: true,
	}

	cmd := &cobra.Command{
		Use:   "legalize [design-file]",
		Short: "Legalize a standard-cell placement",
		Long: `Legalize a standard-cell placement.

Reads a design manifest (TOML or JSON), snaps every cell to the row grid,
excludes cells outside the block boundary, and iteratively resolves rectangle
overlaps with minimal displacement. The result is written as a before/after
diff (SVG by default) plus a movement summary.

Cells that cannot be legalized (oscillation deadlocks, or cells still in
conflict at the pass cap) are reported, never silently dropped.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLegalize(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().IntVar(&opts.maxPasses, "max-passes", pipeline.DefaultMaxPasses, "maximum resolving passes before reporting a partial result")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "panel width in pixels")
	cmd.Flags().BoolVar(&opts.showGrid, "grid", false, "draw placement row lines")
	cmd.Flags().BoolVar(&opts.arrows, "arrows", opts.arrows, "draw displacement arrows for moved cells")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache and recompute")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress the movement table")

	return cmd
}

// runLegalize executes the full parse → legalize → render pipeline for a
// design file and writes the requested artifacts.
func (c *CLI) runLegalize(ctx context.Context, input string, opts *legalizeOpts) error {
	manifest, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read design %s: %w", input, err)
	}

	formats := parseFormats(opts.formatsStr)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Legalizing %s...", input))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Manifest:     manifest,
		ManifestName: input,
		Refresh:      opts.refresh,
		MaxPasses:    opts.maxPasses,
		Formats:      formats,
		Width:        opts.width,
		ShowGrid:     opts.showGrid,
		Arrows:       opts.arrows,
		Logger:       c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Legalization failed")
		return err
	}
	spinner.Stop()

	rep := result.Outcome.Report
	if rep.Clean() {
		printSuccess("Legalized %s", displayName(result.Outcome.Name, input))
	} else {
		printWarning("Legalized %s with violations", displayName(result.Outcome.Name, input))
	}
	printStats(result.Stats.CellCount, rep.Passes, rep.Moves, result.CacheInfo.LegalizeHit)

	if !opts.quiet {
		printNewline()
		fmt.Print(renderReport(result.Outcome))
	}

	printNewline()
	if err := writeArtifacts(result.Artifacts, formats, input, opts.output); err != nil {
		return err
	}

	printNewline()
	printNextStep("Inspect in the browser", fmt.Sprintf("rowlegal serve %s", input))
	return nil
}

// displayName prefers the design's own name over the file path.
func displayName(name, input string) string {
	if name != "" {
		return name
	}
	return input
}

// writeArtifacts writes each rendered format to its derived output path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(output, input, format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method, making os.Stdout
// usable where an io.WriteCloser is expected.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path, or stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeOutcomeTo writes an outcome as indented JSON to path or stdout.
func writeOutcomeTo(o *legalize.Outcome, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return legalize.WriteOutcome(o, out)
}
