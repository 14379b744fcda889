package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbecker/rowlegal/pkg/pipeline"
	"github.com/mbecker/rowlegal/pkg/render"
	"github.com/mbecker/rowlegal/pkg/viewer"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	maxPasses int
	width     float64
	showGrid  bool
	arrows    bool
	noCache   bool
	refresh   bool
}

// serveCommand creates the serve command: legalize a design and expose the
// diff over a local HTTP viewer.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:   "localhost:8731",
		width:  pipeline.DefaultWidth,
		arrows: true,
	}

	cmd := &cobra.Command{
		Use:   "serve [design-file]",
		Short: "Legalize a placement and serve the diff over HTTP",
		Long: `Legalize a placement and serve the diff over HTTP.

Runs the resolver once, then serves the before/after diff and the movement
report from a local HTTP server until interrupted. Endpoints:

  GET /            HTML index embedding the diff
  GET /diff.svg    the rendered diff
  GET /report.json the full outcome as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().IntVar(&opts.maxPasses, "max-passes", pipeline.DefaultMaxPasses, "maximum resolving passes before reporting a partial result")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "panel width in pixels")
	cmd.Flags().BoolVar(&opts.showGrid, "grid", true, "draw placement row lines")
	cmd.Flags().BoolVar(&opts.arrows, "arrows", opts.arrows, "draw displacement arrows for moved cells")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache and recompute")

	return cmd
}

// runServe legalizes the design and blocks serving the viewer until the
// context is cancelled or the server fails.
func (c *CLI) runServe(ctx context.Context, input string, opts *serveOpts) error {
	manifest, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read design %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Manifest:     manifest,
		ManifestName: input,
		Refresh:      opts.refresh,
		MaxPasses:    opts.maxPasses,
		Logger:       c.Logger,
	}

	d, err := runner.Parse(ctx, pipeOpts)
	if err != nil {
		return err
	}
	outcome, err := runner.Legalize(ctx, d, pipeOpts)
	if err != nil {
		return err
	}

	srv, err := viewer.New(outcome, render.Options{
		Width:    opts.width,
		ShowGrid: opts.showGrid,
		Arrows:   opts.arrows,
	}, c.Logger)
	if err != nil {
		return err
	}

	printSuccess("Legalized %s", displayName(outcome.Name, input))
	printStats(len(outcome.Cells), outcome.Report.Passes, outcome.Report.Moves, false)
	printInfo("Serving on http://%s (ctrl+c to stop)", opts.addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(opts.addr)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
