package watcher

import (
	"fmt"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Summary counts the characters a reload inserted and deleted.
type Summary struct {
	Inserted int
	Deleted  int
}

func (s Summary) Changed() bool { return s.Inserted > 0 || s.Deleted > 0 }

func (s Summary) String() string {
	return fmt.Sprintf("+%d/-%d", s.Inserted, s.Deleted)
}

// Diff summarizes the change from before to after.
func Diff(before, after string) Summary {
	if before == after {
		return Summary{}
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var s Summary
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			s.Inserted += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			s.Deleted += utf8.RuneCountInString(d.Text)
		}
	}
	return s
}
