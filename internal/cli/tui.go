package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mbecker/rowlegal/pkg/legalize"
)

// =============================================================================
// TraceModel - Interactive pass stepper
// =============================================================================

// TraceModel is the bubbletea model for stepping through resolver passes.
type TraceModel struct {
	Outcome *legalize.Outcome
	Cursor  int // index into Outcome.Trace
	Height  int // visible cell rows per pass
	Offset  int // scroll offset within the cell list
}

// NewTraceModel creates a pass stepper positioned on the first pass.
func NewTraceModel(o *legalize.Outcome) TraceModel {
	return TraceModel{
		Outcome: o,
		Height:  15,
	}
}

func (m TraceModel) Init() tea.Cmd {
	return nil
}

func (m TraceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "right", "l":
			if m.Cursor < len(m.Outcome.Trace)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = len(m.Outcome.Trace) - 1
		case "up", "k":
			if m.Offset > 0 {
				m.Offset--
			}
		case "down", "j":
			snap := m.Outcome.Trace[m.Cursor]
			if m.Offset < len(snap.Cells)-m.Height {
				m.Offset++
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TraceModel) View() string {
	var b strings.Builder

	name := m.Outcome.Name
	if name == "" {
		name = "design"
	}
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Resolver trace — %s", name)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ step passes  ↑/↓ scroll cells  q quit"))
	b.WriteString("\n\n")

	snap := m.Outcome.Trace[m.Cursor]
	b.WriteString(StyleHighlight.Render(fmt.Sprintf("pass %d/%d", snap.Pass, len(m.Outcome.Trace))))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  ·  %d conflicts  ·  %d moves", snap.Conflicts, snap.Moves)))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(snap.Cells) {
		end = len(snap.Cells)
	}
	offset := m.Offset
	if offset > end {
		offset = end
	}

	visible := snap.Cells[offset:end]
	rows := make([][]string, 0, len(visible))
	for _, cell := range visible {
		moved := ""
		if cell.Moved {
			moved = iconArrow
		}
		rows = append(rows, []string{
			cell.ID,
			fmt.Sprintf("%.2f", cell.X),
			fmt.Sprintf("%.2f", cell.Y),
			cell.Status,
			moved,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Cell", "X", "Y", "Status", "Moved").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= 0 && row < len(visible) {
				switch visible[row].Status {
				case "deadlocked":
					return StyleError
				case "unresolved":
					return StyleWarning
				}
				if visible[row].Moved {
					return StyleHighlight
				}
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	if len(snap.Cells) > m.Height {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  cells %d–%d of %d", offset+1, end, len(snap.Cells))))
		b.WriteString("\n")
	}

	return b.String()
}
