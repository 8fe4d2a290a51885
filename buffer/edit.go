package buffer

import (
	"strings"

	"github.com/iw2rmb/wizard/internal/grapheme"
)

// InsertText inserts text at the cursor. text may contain '\n'.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		return
	}
	prev := b.snapshot()
	b.cursor = b.replaceRange(b.cursor, b.cursor, s)
	b.bumpText()
	b.recordUndo(prev)
}

func (b *Buffer) InsertRune(r rune) {
	b.InsertText(string(r))
}

// InsertNewline inserts a line break at the cursor.
func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

// DeleteBackward applies backspace semantics. Within a line it removes the
// whole grapheme cluster before the cursor; at column 0 it joins the line with
// the previous one.
func (b *Buffer) DeleteBackward() {
	row, col := b.cursor.Row, b.cursor.Col
	if row == 0 && col == 0 {
		return
	}

	start := Pos{Row: row - 1, Col: b.lineLen(row - 1)}
	if col > 0 {
		start = Pos{Row: row, Col: col - grapheme.LastLen(b.lines[row][:col])}
	}
	b.delete(start, b.cursor)
}

// DeleteForward applies delete-key semantics: it removes the grapheme cluster
// after the cursor, or joins the next line at the end of a line.
func (b *Buffer) DeleteForward() {
	row, col := b.cursor.Row, b.cursor.Col
	lastRow := len(b.lines) - 1
	if row == lastRow && col == len(b.lines[lastRow]) {
		return
	}

	end := Pos{Row: row + 1, Col: 0}
	if col < len(b.lines[row]) {
		end = Pos{Row: row, Col: col + grapheme.FirstLen(b.lines[row][col:])}
	}
	b.delete(b.cursor, end)
}

func (b *Buffer) delete(start, end Pos) {
	prev := b.snapshot()
	b.cursor = b.replaceRange(start, end, "")
	b.bumpText()
	b.recordUndo(prev)
}

// replaceRange replaces [start, end) with text and returns the position just
// after the inserted text. start must not be after end.
func (b *Buffer) replaceRange(start, end Pos, text string) Pos {
	start, end = b.clampPos(start), b.clampPos(end)

	prefix := append([]rune(nil), b.lines[start.Row][:start.Col]...)
	suffix := append([]rune(nil), b.lines[end.Row][end.Col:]...)

	parts := strings.Split(text, "\n")
	repl := make([][]rune, 0, len(parts))
	for i, p := range parts {
		var line []rune
		if i == 0 {
			line = append(line, prefix...)
		}
		line = append(line, []rune(p)...)
		repl = append(repl, line)
	}
	last := len(repl) - 1
	next := Pos{Row: start.Row + last, Col: len(repl[last])}
	repl[last] = append(repl[last], suffix...)

	out := make([][]rune, 0, len(b.lines)-(end.Row-start.Row)+last)
	out = append(out, b.lines[:start.Row]...)
	out = append(out, repl...)
	out = append(out, b.lines[end.Row+1:]...)
	b.lines = out
	return next
}
