package markup

// LineSpan is a span projected onto one line: rune columns [StartCol, EndCol).
type LineSpan struct {
	Kind     Kind
	StartCol int
	EndCol   int
}

// ByLine projects spans onto the lines of text. The result has one entry per
// '\n'-separated line; entry i holds the spans of line i+1 in column order.
func ByLine(text string, spans []Span) [][]LineSpan {
	lens := lineLengths(text)
	out := make([][]LineSpan, len(lens))
	for _, sp := range spans {
		for line := sp.Start.Line; line <= sp.End.Line; line++ {
			idx := line - 1
			if idx < 0 || idx >= len(out) {
				continue
			}
			start, end := 0, lens[idx]
			if line == sp.Start.Line {
				start = sp.Start.Column
			}
			if line == sp.End.Line {
				end = sp.End.Column
			}
			if end <= start {
				continue
			}
			out[idx] = append(out[idx], LineSpan{Kind: sp.Kind, StartCol: start, EndCol: end})
		}
	}
	return out
}

func lineLengths(text string) []int {
	lens := []int{0}
	for _, r := range text {
		if r == '\n' {
			lens = append(lens, 0)
			continue
		}
		lens[len(lens)-1]++
	}
	return lens
}
