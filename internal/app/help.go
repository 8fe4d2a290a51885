package app

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# wizard

Tags, doctypes, comments and quoted strings are colored after every edit.

| Key | Action |
|-----|--------|
| ctrl+s | save |
| f5 | save and open in the browser |
| ctrl+r | toggle read-only |
| ctrl+z / ctrl+y | undo / redo |
| f1 | toggle this help |
| ctrl+q | quit |

Press any key to close.
`

// noMarginStyle removes document margins from the base style.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// helpView renders the key reference with glamour, re-rendering only when
// the width changes.
type helpView struct {
	style    string
	width    int
	rendered string
}

func newHelpView(style string) *helpView {
	return &helpView{style: style}
}

func (h *helpView) View(width int) string {
	if width <= 0 {
		width = 80
	}
	if h.rendered != "" && h.width == width {
		return h.rendered
	}
	h.width = width
	h.rendered = renderMarkdown(helpMarkdown, h.style, width)
	return h.rendered
}

// renderMarkdown falls back to the raw source when glamour fails.
func renderMarkdown(md, style string, width int) string {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
