package editor

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const tabWidth = 4

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}

	n := m.buf.LineCount()
	cursor := m.buf.Cursor()
	digits := 0
	if m.cfg.ShowLineNums {
		digits = gutterDigits(n)
	}

	left := m.xOffset
	right := int(^uint(0) >> 1)
	if w := m.contentWidth(); w > 0 {
		right = left + w
	}

	out := make([]string, 0, n)
	for row := 0; row < n; row++ {
		var sb strings.Builder
		if m.cfg.ShowLineNums {
			numStyle := m.cfg.Style.LineNum
			if m.focused && row == cursor.Row {
				numStyle = m.cfg.Style.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digits, row+1)))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}

		var highlights []HighlightSpan
		if row < len(m.highlights) {
			highlights = m.highlights[row]
		}
		cursorCol := -1
		if m.focused && row == cursor.Row {
			cursorCol = cursor.Col
		}
		sb.WriteString(renderLine(m.cfg.Style, m.buf.Line(row), highlights, cursorCol, left, right))
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

// renderLine renders the cells [left, right) of line. Consecutive runes that
// share a style are rendered as one run. cursorCol < 0 hides the cursor.
func renderLine(st Style, line string, highlights []HighlightSpan, cursorCol, left, right int) string {
	const (
		keyText   = -1
		keyCursor = -2
	)

	var sb, run strings.Builder
	runKey := keyText
	flush := func() {
		if run.Len() == 0 {
			return
		}
		style := st.Text
		switch {
		case runKey == keyCursor:
			style = st.Cursor
		case runKey >= 0:
			style = highlights[runKey].Style.Inherit(st.Text)
		}
		sb.WriteString(style.Render(run.String()))
		run.Reset()
	}

	cell, col, hi := 0, 0, 0
	for _, r := range line {
		text, w := displayRune(r)
		start := cell
		cell += w
		c := col
		col++
		if start < left || cell > right {
			continue
		}

		k := keyText
		for hi < len(highlights) && highlights[hi].EndCol <= c {
			hi++
		}
		if hi < len(highlights) && highlights[hi].StartCol <= c {
			k = hi
		}
		if c == cursorCol {
			k = keyCursor
		}
		if k != runKey || k == keyCursor {
			flush()
			runKey = k
		}
		run.WriteString(text)
	}
	flush()

	// Cursor at EOL is rendered as a 1-cell placeholder space.
	if cursorCol == col && cell >= left && cell < right {
		sb.WriteString(st.Cursor.Render(" "))
	}
	return sb.String()
}

func displayRune(r rune) (string, int) {
	if r == '\t' {
		return strings.Repeat(" ", tabWidth), tabWidth
	}
	return string(r), runewidth.RuneWidth(r)
}

// cellOffset returns the terminal cell at which rune column col of line starts.
func cellOffset(line string, col int) int {
	cell, i := 0, 0
	for _, r := range line {
		if i >= col {
			break
		}
		_, w := displayRune(r)
		cell += w
		i++
	}
	return cell
}

func (m *Model) gutterWidth() int {
	if !m.cfg.ShowLineNums || m.buf == nil {
		return 0
	}
	return gutterDigits(m.buf.LineCount()) + 1
}

// contentWidth is the number of text cells per row, or 0 when the width is
// not known yet.
func (m *Model) contentWidth() int {
	if m.viewport.Width <= 0 {
		return 0
	}
	return maxInt(m.viewport.Width-m.gutterWidth(), 1)
}

func gutterDigits(lineCount int) int {
	return len(fmt.Sprint(maxInt(lineCount, 1)))
}
