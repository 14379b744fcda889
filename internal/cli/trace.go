package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mbecker/rowlegal/pkg/pipeline"
)

// traceOpts holds the command-line flags for the trace command.
type traceOpts struct {
	maxPasses int
	noCache   bool
	refresh   bool
}

// traceCommand creates the trace command: an interactive pass-by-pass view
// of the resolver.
func (c *CLI) traceCommand() *cobra.Command {
	opts := traceOpts{}

	cmd := &cobra.Command{
		Use:   "trace [design-file]",
		Short: "Step through the resolver pass by pass",
		Long: `Step through the resolver pass by pass.

Runs legalization with pass recording enabled and opens an interactive view
of the layout after every resolving pass: which cells were in conflict, which
moved, and when a cell was frozen as deadlocked. Use the arrow keys to step
between passes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTrace(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().IntVar(&opts.maxPasses, "max-passes", pipeline.DefaultMaxPasses, "maximum resolving passes before reporting a partial result")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache and recompute")

	return cmd
}

// runTrace legalizes with tracing enabled and opens the pass stepper.
func (c *CLI) runTrace(ctx context.Context, input string, opts *traceOpts) error {
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
		Trace:        true,
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

	if len(outcome.Trace) == 0 {
		printInfo("Nothing to trace: the resolver finished without a recorded pass")
		return nil
	}

	model := NewTraceModel(outcome)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("trace view: %w", err)
	}

	printNewline()
	fmt.Print(renderReport(outcome))
	return nil
}
