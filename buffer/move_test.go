package buffer

import "testing"

func TestMove(t *testing.T) {
	cases := []struct {
		name string
		from Pos
		dir  MoveDir
		want Pos
	}{
		{"left within line", Pos{1, 2}, DirLeft, Pos{1, 1}},
		{"left wraps to previous line end", Pos{1, 0}, DirLeft, Pos{0, 5}},
		{"left at doc start", Pos{0, 0}, DirLeft, Pos{0, 0}},
		{"right within line", Pos{0, 0}, DirRight, Pos{0, 1}},
		{"right wraps to next line", Pos{0, 5}, DirRight, Pos{1, 0}},
		{"right at doc end", Pos{2, 3}, DirRight, Pos{2, 3}},
		{"up clamps column", Pos{1, 2}, DirUp, Pos{0, 2}},
		{"up on first line goes home", Pos{0, 3}, DirUp, Pos{0, 0}},
		{"down clamps column", Pos{0, 5}, DirDown, Pos{1, 2}},
		{"down on last line goes to end", Pos{2, 1}, DirDown, Pos{2, 3}},
		{"home", Pos{0, 4}, DirHome, Pos{0, 0}},
		{"end", Pos{0, 1}, DirEnd, Pos{0, 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New("hello\nab\nxyz", Options{})
			b.SetCursor(tc.from)
			b.Move(tc.dir)
			if got := b.Cursor(); got != tc.want {
				t.Fatalf("cursor: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMove_NoChangeKeepsVersion(t *testing.T) {
	b := New("x", Options{})
	b.Move(DirLeft)
	if b.Version() != 0 {
		t.Fatalf("version: got %d, want 0", b.Version())
	}
}
