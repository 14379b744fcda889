package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mbecker/rowlegal/pkg/legalize"
)

// renderReport formats a movement report as a styled table plus summary
// lines. Only moved cells get table rows; an idempotent run prints a single
// line instead.
func renderReport(o *legalize.Outcome) string {
	var b strings.Builder
	rep := o.Report

	var moved []legalize.Movement
	for _, m := range rep.Movements {
		if m.Distance > 0 {
			moved = append(moved, m)
		}
	}

	if len(moved) == 0 {
		b.WriteString(StyleSuccess.Render("placement already legal, no cells moved"))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(moved))
		for _, m := range moved {
			rows = append(rows, []string{
				m.ID,
				fmt.Sprintf("%+.2f", m.DX),
				fmt.Sprintf("%+.2f", m.DY),
				fmt.Sprintf("%.2f", m.Distance),
			})
		}

		headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers("Cell", "ΔX", "ΔY", "Distance").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return headerStyle
				}
				if row >= 0 && row < len(moved) && moved[row].ID == rep.MaxCellID {
					return StyleHighlight
				}
				return lipgloss.NewStyle().Foreground(colorWhite)
			})
		b.WriteString(t.Render())
		b.WriteString("\n")

		b.WriteString(StyleDim.Render(fmt.Sprintf("max displacement %.2f (%s) · total %.2f",
			rep.MaxDistance, rep.MaxCellID, rep.TotalDistance)))
		b.WriteString("\n")
	}

	if len(rep.Excluded) > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("excluded (out of bounds): %s",
			strings.Join(rep.Excluded, ", "))))
		b.WriteString("\n")
	}
	if len(rep.Deadlocked) > 0 {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("deadlocked: %s",
			strings.Join(rep.Deadlocked, ", "))))
		b.WriteString("\n")
	}
	if len(rep.Unresolved) > 0 {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("unresolved: %s",
			strings.Join(rep.Unresolved, ", "))))
		b.WriteString("\n")
	}
	if rep.Capped {
		b.WriteString(StyleError.Render(fmt.Sprintf("pass cap reached after %d passes", rep.Passes)))
		b.WriteString("\n")
	}

	return b.String()
}
