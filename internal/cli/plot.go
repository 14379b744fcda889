package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbecker/rowlegal/pkg/legalize"
	"github.com/mbecker/rowlegal/pkg/pipeline"
)

// plotOpts holds the command-line flags for the plot command.
type plotOpts struct {
	output     string
	formatsStr string
	width      float64
	showGrid   bool
	arrows     bool
	noCache    bool
}

// plotCommand creates the plot command for rendering from a saved outcome.
func (c *CLI) plotCommand() *cobra.Command {
	opts := plotOpts{
		width:  pipeline.DefaultWidth,
		arrows: true,
	}

	cmd := &cobra.Command{
		Use:   "plot [outcome.json]",
		Short: "Render a before/after diff from a saved outcome",
		Long: `Render a before/after diff from a saved outcome.

The plot command takes an outcome JSON file (produced by 'legalize -f json'
or 'check -o') and renders it to SVG, PNG, or PDF. The outcome contains all
positions, so this step is purely about rendering — the resolver does not
run again.

Use 'legalize' as a shortcut to go directly from a design file to a diff.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlot(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "panel width in pixels")
	cmd.Flags().BoolVar(&opts.showGrid, "grid", false, "draw placement row lines")
	cmd.Flags().BoolVar(&opts.arrows, "arrows", opts.arrows, "draw displacement arrows for moved cells")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runPlot loads the outcome and renders it.
func (c *CLI) runPlot(ctx context.Context, input string, opts *plotOpts) error {
	outcome, err := legalize.ReadOutcomeFile(input)
	if err != nil {
		return fmt.Errorf("load outcome %s: %w", input, err)
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

	spinner := newSpinnerWithContext(ctx, "Rendering diff...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, outcome, pipeline.Options{
		Formats:  formats,
		Width:    opts.width,
		ShowGrid: opts.showGrid,
		Arrows:   opts.arrows,
		Logger:   c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("plot: %w", err)
	}
	spinner.Stop()

	printSuccess("Rendered %s", displayName(outcome.Name, input))
	printStats(len(outcome.Cells), outcome.Report.Passes, outcome.Report.Moves, cacheHit)
	printNewline()
	return writeArtifacts(artifacts, formats, input, opts.output)
}
