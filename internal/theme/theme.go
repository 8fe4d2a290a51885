// Package theme maps classified span kinds to terminal styles and adapts the
// classifier to the editor's Highlighter interface.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/wizard/internal/config"
	"github.com/iw2rmb/wizard/markup"
)

// Theme holds one style per span kind.
type Theme struct {
	Tag     lipgloss.Style
	Doctype lipgloss.Style
	Comment lipgloss.Style
	String  lipgloss.Style
}

// New builds a Theme from configured colors. Empty colors use the defaults.
func New(cfg config.ThemeConfig) Theme {
	def := config.Defaults().Theme
	return Theme{
		Tag:     lipgloss.NewStyle().Foreground(color(cfg.Tag, def.Tag)).Bold(cfg.Bold),
		Doctype: lipgloss.NewStyle().Foreground(color(cfg.Doctype, def.Doctype)).Bold(cfg.Bold),
		Comment: lipgloss.NewStyle().Foreground(color(cfg.Comment, def.Comment)),
		String:  lipgloss.NewStyle().Foreground(color(cfg.String, def.String)),
	}
}

// Default returns the built-in theme.
func Default() Theme {
	return New(config.Defaults().Theme)
}

func color(val, def string) lipgloss.Color {
	if val == "" {
		return lipgloss.Color(def)
	}
	return lipgloss.Color(val)
}

// Style returns the style for k.
func (t Theme) Style(k markup.Kind) lipgloss.Style {
	switch k {
	case markup.Doctype:
		return t.Doctype
	case markup.Comment:
		return t.Comment
	case markup.String:
		return t.String
	default:
		return t.Tag
	}
}
