package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/iw2rmb/wizard/markup"
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))
	modifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	readOnlyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
)

func (m Model) statusView() string {
	parts := []string{m.pathLabel()}
	if m.session.Saved {
		parts = append(parts, "saved")
	} else {
		parts = append(parts, modifiedStyle.Render("modified"))
	}
	if m.session.ReadOnly {
		parts = append(parts, readOnlyStyle.Render("RO"))
	}
	parts = append(parts, countsLabel(m.pass.stats.Counts))
	if m.message != "" {
		parts = append(parts, m.message)
	}

	line := " " + strings.Join(parts, " │ ")
	if m.width > 0 {
		line = ansi.Truncate(line, m.width, "…")
		return statusStyle.Width(m.width).Render(line)
	}
	return statusStyle.Render(line)
}

func (m Model) pathLabel() string {
	if m.session.Path == "" {
		return "[no file]"
	}
	return m.session.Path
}

func countsLabel(counts map[markup.Kind]int) string {
	kinds := markup.Kinds()
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s %d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

func (m Model) promptView() string {
	text := fmt.Sprintf("Save and open %s in the browser? (y/n)", m.pathLabel())
	width := m.width
	if width <= 0 {
		width = 80
	}
	return promptStyle.Render(wordwrap.String(text, width))
}
