package markup

import (
	"strings"
	"unicode/utf8"
)

// blockState is the embedded-language context of a pass.
type blockState uint8

const (
	stateNormal blockState = iota
	stateStyle
	stateScript
)

// Classify runs one classification pass over text and returns its spans in
// document order.
//
// At each position the pass tries, in order: a tag token ('<' through the
// nearest '>' on the same line), a quoted string ('"' or '\'' through the next
// matching quote on the same line), a newline, and finally a single rune.
// Inside a style or script block only the closing block tags are emitted and
// quoted strings are not recognized.
func Classify(text string) []Span {
	s := newScanner(text)
	s.run()
	return s.spans
}

type scanner struct {
	text  string
	state blockState
	pos   Pos
	spans []Span

	gt           nextIndex
	nl           nextIndex
	dquote       nextIndex
	squote       nextIndex
	commentClose nextIndex
}

func newScanner(text string) *scanner {
	return &scanner{
		text:         text,
		pos:          Pos{Line: 1},
		gt:           newNextIndex(">"),
		nl:           newNextIndex("\n"),
		dquote:       newNextIndex(`"`),
		squote:       newNextIndex("'"),
		commentClose: newNextIndex("-->"),
	}
}

func (s *scanner) run() {
	for s.pos.Offset < len(s.text) {
		if n := s.tagLen(); n > 0 {
			s.tag(s.text[s.pos.Offset : s.pos.Offset+n])
			continue
		}
		if s.state == stateNormal {
			if n := s.stringLen(); n > 0 {
				s.emit(String, n)
				continue
			}
		}
		if s.text[s.pos.Offset] == '\n' {
			s.pos.Offset++
			s.pos.Line++
			s.pos.Column = 0
			continue
		}
		_, size := utf8.DecodeRuneInString(s.text[s.pos.Offset:])
		s.pos.Offset += size
		s.pos.Column++
	}
}

// tagLen returns the byte length of the tag token at the cursor, or 0.
func (s *scanner) tagLen() int {
	i := s.pos.Offset
	if s.text[i] != '<' {
		return 0
	}
	return s.closedOnLine(&s.gt, i)
}

// stringLen returns the byte length of the quoted run at the cursor, or 0.
func (s *scanner) stringLen() int {
	i := s.pos.Offset
	switch s.text[i] {
	case '"':
		return s.closedOnLine(&s.dquote, i)
	case '\'':
		return s.closedOnLine(&s.squote, i)
	}
	return 0
}

// closedOnLine returns the length of text[i:] up to and including the next
// occurrence tracked by idx, provided it lies on the current line.
func (s *scanner) closedOnLine(idx *nextIndex, i int) int {
	end := idx.after(s.text, i+1)
	if end < 0 || end > s.lineEnd(i+1) {
		return 0
	}
	return end + 1 - i
}

// lineEnd returns the offset of the newline ending the line that contains
// from, or len(text) on the last line.
func (s *scanner) lineEnd(from int) int {
	if nl := s.nl.after(s.text, from); nl >= 0 {
		return nl
	}
	return len(s.text)
}

func (s *scanner) tag(tok string) {
	if s.closeBlock(tok) {
		s.emit(Tag, len(tok))
		return
	}
	if s.state != stateNormal {
		s.advance(tok)
		return
	}
	s.emit(s.label(tok), len(tok))
	s.openBlock(tok)
}

func (s *scanner) label(tok string) Kind {
	switch {
	case strings.HasPrefix(tok, "<!--") && s.commentClosed():
		return Comment
	case hasPrefixFold(tok, "<!doctype"):
		return Doctype
	}
	return Tag
}

// commentClosed reports whether a "-->" follows the "<!--" at the cursor on
// the same line.
func (s *scanner) commentClosed() bool {
	from := s.pos.Offset + len("<!--")
	end := s.commentClose.after(s.text, from)
	return end >= 0 && end < s.lineEnd(from)
}

func (s *scanner) openBlock(tok string) {
	switch {
	case strings.HasPrefix(tok, "<style"):
		s.state = stateStyle
	case strings.HasPrefix(tok, "<script"):
		s.state = stateScript
	}
}

// closeBlock reports whether tok is a closing style or script tag and leaves
// the matching block if the pass is inside one.
func (s *scanner) closeBlock(tok string) bool {
	switch {
	case strings.HasPrefix(tok, "</style"):
		if s.state == stateStyle {
			s.state = stateNormal
		}
		return true
	case strings.HasPrefix(tok, "</script"):
		if s.state == stateScript {
			s.state = stateNormal
		}
		return true
	}
	return false
}

func (s *scanner) emit(kind Kind, n int) {
	start := s.pos
	s.advance(s.text[s.pos.Offset : s.pos.Offset+n])
	s.spans = append(s.spans, Span{Kind: kind, Start: start, End: s.pos})
}

// advance moves the cursor over tok, which never contains a newline.
func (s *scanner) advance(tok string) {
	s.pos.Offset += len(tok)
	s.pos.Column += utf8.RuneCountInString(tok)
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// nextIndex memoizes the next occurrence of sep at or after a position.
// Queries with non-decreasing positions reuse the previous search, so a whole
// pass stays linear in the text length.
type nextIndex struct {
	sep  string
	from int
	at   int
}

func newNextIndex(sep string) nextIndex {
	return nextIndex{sep: sep, from: -1, at: -1}
}

// after returns the offset of the first sep at or after pos, or -1.
func (n *nextIndex) after(text string, pos int) int {
	if n.from >= 0 && pos >= n.from && (n.at < 0 || n.at >= pos) {
		return n.at
	}
	n.from = pos
	n.at = -1
	if pos > len(text) {
		return -1
	}
	if i := strings.Index(text[pos:], n.sep); i >= 0 {
		n.at = pos + i
	}
	return n.at
}
