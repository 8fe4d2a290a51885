package buffer

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start
	DirEnd  // line end
)

// Move moves the cursor one rune left/right (wrapping across lines), one line
// up/down (keeping the column where possible), or to the line start/end.
func (b *Buffer) Move(dir MoveDir) {
	b.SetCursor(b.moveCursor(b.cursor, dir))
}

func (b *Buffer) moveCursor(p Pos, dir MoveDir) Pos {
	switch dir {
	case DirLeft:
		if p.Col > 0 {
			return Pos{Row: p.Row, Col: p.Col - 1}
		}
		if p.Row > 0 {
			return Pos{Row: p.Row - 1, Col: b.lineLen(p.Row - 1)}
		}
	case DirRight:
		if p.Col < b.lineLen(p.Row) {
			return Pos{Row: p.Row, Col: p.Col + 1}
		}
		if p.Row < len(b.lines)-1 {
			return Pos{Row: p.Row + 1}
		}
	case DirUp:
		if p.Row > 0 {
			return b.clampPos(Pos{Row: p.Row - 1, Col: p.Col})
		}
		return Pos{}
	case DirDown:
		if p.Row < len(b.lines)-1 {
			return b.clampPos(Pos{Row: p.Row + 1, Col: p.Col})
		}
		return Pos{Row: p.Row, Col: b.lineLen(p.Row)}
	case DirHome:
		return Pos{Row: p.Row}
	case DirEnd:
		return Pos{Row: p.Row, Col: b.lineLen(p.Row)}
	}
	return p
}
