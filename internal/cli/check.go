package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mbecker/rowlegal/pkg/pipeline"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	maxPasses int
	strict    bool // non-zero exit when violations remain
	noCache   bool
	refresh   bool
	output    string // optional outcome JSON path
}

// checkCommand creates the check command: legalize without rendering, report
// only. Useful in scripts and CI where the diff image is not needed.
func (c *CLI) checkCommand() *cobra.Command {
	opts := checkOpts{}

	cmd := &cobra.Command{
		Use:   "check [design-file]",
		Short: "Legalize a placement and report violations without rendering",
		Long: `Legalize a placement and report violations without rendering.

Runs the resolver and prints the movement summary. With --strict the command
exits non-zero when any cell ends up deadlocked or unresolved, which makes it
usable as a CI gate on placement quality.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().IntVar(&opts.maxPasses, "max-passes", pipeline.DefaultMaxPasses, "maximum resolving passes before reporting a partial result")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit non-zero when violations remain")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache and recompute")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the outcome as JSON to this path")

	return cmd
}

// runCheck parses and legalizes the design, then prints the report.
func (c *CLI) runCheck(ctx context.Context, input string, opts *checkOpts) error {
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

	prog := newProgress(c.Logger)
	d, err := runner.Parse(ctx, pipeOpts)
	if err != nil {
		return err
	}
	outcome, err := runner.Legalize(ctx, d, pipeOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Checked %d cells in %d passes", len(outcome.Cells), outcome.Report.Passes))

	printNewline()
	fmt.Print(renderReport(outcome))

	if opts.output != "" {
		if err := writeOutcomeTo(outcome, opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	}

	if opts.strict && !outcome.Report.Clean() {
		var parts []string
		if n := len(outcome.Report.Deadlocked); n > 0 {
			parts = append(parts, fmt.Sprintf("%d deadlocked", n))
		}
		if n := len(outcome.Report.Unresolved); n > 0 {
			parts = append(parts, fmt.Sprintf("%d unresolved", n))
		}
		return fmt.Errorf("placement has violations: %s", strings.Join(parts, ", "))
	}
	return nil
}
