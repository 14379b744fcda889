package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mbecker/rowlegal/pkg/archive"
	"github.com/mbecker/rowlegal/pkg/cache"
	"github.com/mbecker/rowlegal/pkg/design"
	"github.com/mbecker/rowlegal/pkg/pipeline"
)

// archiveCommand creates the archive command group for managing stored runs.
func (c *CLI) archiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Manage archived legalization runs",
		Long: `Manage archived legalization runs.

The archive stores completed runs (design hash, options, full outcome) in
MongoDB so they can be listed, inspected, and re-rendered later without
re-running the resolver. Set MONGO_URI to enable it, e.g.:

  export MONGO_URI=mongodb://localhost:27017`,
	}

	cmd.AddCommand(c.archiveSaveCommand())
	cmd.AddCommand(c.archiveListCommand())
	cmd.AddCommand(c.archiveShowCommand())
	cmd.AddCommand(c.archiveDeleteCommand())

	return cmd
}

// newArchiveStore connects to the archive backend. The CLI only supports the
// durable MongoDB backend; the in-memory store would not outlive the process.
func newArchiveStore(ctx context.Context) (archive.Store, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return nil, fmt.Errorf("archive requires MONGO_URI to be set")
	}
	return archive.NewMongoStore(ctx, uri)
}

// archiveSaveCommand creates the "archive save" subcommand.
func (c *CLI) archiveSaveCommand() *cobra.Command {
	var (
		maxPasses int
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "save [design-file]",
		Short: "Legalize a design and archive the run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input := args[0]

			manifest, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read design %s: %w", input, err)
			}

			store, err := newArchiveStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			pipeOpts := pipeline.Options{
				Manifest:     manifest,
				ManifestName: input,
				MaxPasses:    maxPasses,
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

			designData, err := design.Marshal(d)
			if err != nil {
				return fmt.Errorf("serialize design: %w", err)
			}
			rec := archive.NewRecord(displayName(outcome.Name, input), cache.Hash(designData), maxPasses, outcome)
			if err := store.Put(ctx, rec); err != nil {
				return fmt.Errorf("archive run: %w", err)
			}

			printSuccess("Archived run %s", rec.ID)
			printStats(len(outcome.Cells), outcome.Report.Passes, outcome.Report.Moves, false)
			printNextStep("Inspect it", fmt.Sprintf("rowlegal archive show %s", rec.ID))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxPasses, "max-passes", pipeline.DefaultMaxPasses, "maximum resolving passes before reporting a partial result")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// archiveListCommand creates the "archive list" subcommand.
func (c *CLI) archiveListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := newArchiveStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			records, err := store.List(ctx, limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(records) == 0 {
				printInfo("Archive is empty")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				clean := iconSuccess
				if !rec.Outcome.Report.Clean() {
					clean = iconWarning
				}
				rows = append(rows, []string{
					rec.ID,
					rec.Name,
					fmt.Sprintf("%d", len(rec.Outcome.Cells)),
					fmt.Sprintf("%d", rec.Outcome.Report.Passes),
					clean,
					rec.CreatedAt.Format("2006-01-02 15:04"),
				})
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("ID", "Design", "Cells", "Passes", "Clean", "Created").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					return lipgloss.NewStyle().Foreground(colorWhite)
				})
			fmt.Println(t.Render())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", archive.DefaultListLimit, "maximum runs to list")

	return cmd
}

// archiveShowCommand creates the "archive show" subcommand.
func (c *CLI) archiveShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show an archived run's movement report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := newArchiveStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			rec, err := store.Get(ctx, args[0])
			if errors.Is(err, archive.ErrNotFound) {
				return fmt.Errorf("run %s not found", args[0])
			}
			if err != nil {
				return fmt.Errorf("load run: %w", err)
			}

			if asJSON {
				return writeOutcomeTo(rec.Outcome, "")
			}

			printInfo("%s · %s · %s", rec.ID, rec.Name, rec.CreatedAt.Format("2006-01-02 15:04"))
			printNewline()
			fmt.Print(renderReport(rec.Outcome))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full outcome as JSON")

	return cmd
}

// archiveDeleteCommand creates the "archive delete" subcommand.
func (c *CLI) archiveDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [run-id]",
		Short: "Delete an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := newArchiveStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			if err := store.Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("delete run: %w", err)
			}
			printSuccess("Deleted run %s", args[0])
			return nil
		},
	}
}
