// Package grapheme measures user-perceived characters in rune slices.
package grapheme

import "github.com/rivo/uniseg"

// FirstLen returns the rune length of the first grapheme cluster of line, or
// 0 for an empty line.
func FirstLen(line []rune) int {
	if len(line) == 0 {
		return 0
	}
	g := uniseg.NewGraphemes(string(line))
	if !g.Next() {
		return 1
	}
	return len(g.Runes())
}

// LastLen returns the rune length of the final grapheme cluster of line, or
// 0 for an empty line.
func LastLen(line []rune) int {
	if len(line) == 0 {
		return 0
	}
	n := 1
	g := uniseg.NewGraphemes(string(line))
	for g.Next() {
		n = len(g.Runes())
	}
	return n
}
