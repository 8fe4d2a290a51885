package editor

import (
	"sort"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

type HighlightSpan struct {
	// StartCol and EndCol are rune indices in the line text, half-open
	// [StartCol, EndCol).
	StartCol int
	EndCol   int
	Style    lipgloss.Style
}

// Highlighter decorates a whole document.
//
// Highlight receives the complete current text and returns the spans of each
// line, indexed by 0-based row. It is called once per text change and its
// result replaces every previously applied decoration. On error the document
// renders undecorated.
type Highlighter interface {
	Highlight(text string) ([][]HighlightSpan, error)
}

// HighlighterFunc adapts a function to the Highlighter interface.
type HighlighterFunc func(text string) ([][]HighlightSpan, error)

func (f HighlighterFunc) Highlight(text string) ([][]HighlightSpan, error) { return f(text) }

// refreshHighlights discards the current decorations and re-runs the
// highlighter over the full text.
func (m *Model) refreshHighlights() {
	m.highlights = nil
	if m.cfg.Highlighter == nil || m.buf == nil {
		return
	}

	perLine, err := m.cfg.Highlighter.Highlight(m.buf.Text())
	if err != nil {
		return
	}

	out := make([][]HighlightSpan, m.buf.LineCount())
	for row := range out {
		if row >= len(perLine) {
			break
		}
		out[row] = normalizeHighlightSpans(perLine[row], utf8.RuneCountInString(m.buf.Line(row)))
	}
	m.highlights = out
}

func normalizeHighlightSpans(spans []HighlightSpan, lineLen int) []HighlightSpan {
	if len(spans) == 0 {
		return nil
	}
	lineLen = maxInt(lineLen, 0)

	out := make([]HighlightSpan, 0, len(spans))
	for _, sp := range spans {
		start := clampInt(sp.StartCol, 0, lineLen)
		end := clampInt(sp.EndCol, 0, lineLen)
		if end < start {
			start, end = end, start
		}
		if start == end {
			continue
		}
		out = append(out, HighlightSpan{StartCol: start, EndCol: end, Style: sp.Style})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartCol != out[j].StartCol {
			return out[i].StartCol < out[j].StartCol
		}
		return out[i].EndCol < out[j].EndCol
	})

	// Overlapping spans are dropped; the earliest one wins.
	merged := make([]HighlightSpan, 0, len(out))
	for _, sp := range out {
		if n := len(merged); n > 0 && sp.StartCol < merged[n-1].EndCol {
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
