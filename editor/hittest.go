package editor

import (
	"unicode/utf8"

	"github.com/iw2rmb/wizard/buffer"
)

// screenToDocPos maps viewport-local mouse coordinates to a document position.
//
// Coordinates are in terminal cells relative to the viewport: (0,0) is the
// top-left of the visible region, gutter included. Gutter clicks map to
// column 0; a click on the right half of a wide rune lands after it.
func (m *Model) screenToDocPos(x, y int) buffer.Pos {
	if m.buf == nil {
		return buffer.Pos{}
	}
	row := clampInt(m.viewport.YOffset+y, 0, m.buf.LineCount()-1)

	visualX := x - m.gutterWidth()
	if visualX < 0 {
		return buffer.Pos{Row: row}
	}
	return buffer.Pos{Row: row, Col: colForCell(m.buf.Line(row), visualX+m.xOffset)}
}

// colForCell returns the rune column whose cells contain cell, or the line
// length when cell is past the end.
func colForCell(line string, cell int) int {
	start, col := 0, 0
	for _, r := range line {
		_, w := displayRune(r)
		if cell < start+w {
			if w > 1 && cell-start >= (w+1)/2 {
				return col + 1
			}
			return col
		}
		start += w
		col++
	}
	return col
}

// docToScreenPos maps a document position to viewport-local coordinates.
// ok is false when the position is scrolled out of view.
func (m *Model) docToScreenPos(pos buffer.Pos) (x int, y int, ok bool) {
	if m.buf == nil {
		return 0, 0, false
	}
	pos = buffer.ClampPos(pos, m.buf.LineCount(), func(row int) int {
		return utf8.RuneCountInString(m.buf.Line(row))
	})
	y = pos.Row - m.viewport.YOffset
	x = cellOffset(m.buf.Line(pos.Row), pos.Col) - m.xOffset + m.gutterWidth()

	if y < 0 || (m.viewport.Height > 0 && y >= m.viewport.Height) {
		return x, y, false
	}
	if x < m.gutterWidth() || (m.viewport.Width > 0 && x >= m.viewport.Width) {
		return x, y, false
	}
	return x, y, true
}

// CursorScreenPos returns the cursor cell relative to the editor's top-left
// corner. ok is false when the cursor is scrolled out of view.
func (m Model) CursorScreenPos() (x, y int, ok bool) {
	if m.buf == nil {
		return 0, 0, false
	}
	return m.docToScreenPos(m.buf.Cursor())
}
