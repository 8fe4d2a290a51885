package markup

import "fmt"

// Kind labels a classified span.
type Kind uint8

const (
	Tag Kind = iota
	Doctype
	Comment
	String
)

var kindNames = [...]string{
	Tag:     "tag",
	Doctype: "doctype",
	Comment: "comment",
	String:  "string",
}

// Kinds lists every Kind in declaration order.
func Kinds() []Kind { return []Kind{Tag, Doctype, Comment, String} }

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("markup: unknown kind %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("markup: unknown kind %q", string(b))
}

// Pos addresses a character in the document.
//
// Line is 1-based, Column is the 0-based rune index within the line and Offset
// is the 0-based byte offset from the start of the text.
type Pos struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
	Offset int `json:"offset" yaml:"offset"`
}

// Compare orders positions by (Line, Column).
func (p Pos) Compare(q Pos) int {
	switch {
	case p.Line < q.Line:
		return -1
	case p.Line > q.Line:
		return 1
	case p.Column < q.Column:
		return -1
	case p.Column > q.Column:
		return 1
	}
	return 0
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Span is a classified half-open range [Start, End) of the document.
type Span struct {
	Kind  Kind `json:"kind" yaml:"kind"`
	Start Pos  `json:"start" yaml:"start"`
	End   Pos  `json:"end" yaml:"end"`
}

// Text returns the slice of text covered by s. text must be the document the
// span was produced from.
func (s Span) Text(text string) string {
	if s.Start.Offset < 0 || s.End.Offset > len(text) || s.Start.Offset > s.End.Offset {
		return ""
	}
	return text[s.Start.Offset:s.End.Offset]
}

// Contains reports whether p falls inside s.
func (s Span) Contains(p Pos) bool {
	return s.Start.Compare(p) <= 0 && p.Compare(s.End) < 0
}

func (s Span) String() string { return fmt.Sprintf("%s[%s-%s)", s.Kind, s.Start, s.End) }

// Count tallies spans by kind.
func Count(spans []Span) map[Kind]int {
	out := make(map[Kind]int, len(kindNames))
	for _, sp := range spans {
		out[sp.Kind]++
	}
	return out
}
