package markup

import (
	"reflect"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

var fragments = []string{
	"<", ">", "'", `"`, "\n", " ", "a", "é", "=",
	"<!--", "-->", "<!DOCTYPE", "<!doctype html>",
	"<style>", "</style>", "<script>", "</script>", "<p>", "</p>",
}

func genMarkup() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		parts := rapid.SliceOfN(rapid.SampledFrom(fragments), 0, 40).Draw(t, "parts")
		return strings.Join(parts, "")
	})
}

type failer interface {
	Fatalf(format string, args ...any)
}

// posAt recomputes the line/column of a byte offset from scratch.
func posAt(text string, off int) Pos {
	p := Pos{Line: 1}
	for _, r := range text[:off] {
		if r == '\n' {
			p.Line++
			p.Column = 0
			continue
		}
		p.Column++
	}
	p.Offset = off
	return p
}

func checkSpans(t failer, text string, spans []Span) {
	prevEnd := Pos{Line: 1}
	for i, s := range spans {
		if s.Start.Offset < 0 || s.End.Offset > len(text) || s.Start.Offset >= s.End.Offset {
			t.Fatalf("span %d %v: bad offsets for text of %d bytes", i, s, len(text))
		}
		if s.Start != posAt(text, s.Start.Offset) || s.End != posAt(text, s.End.Offset) {
			t.Fatalf("span %d %v: positions disagree with offsets", i, s)
		}
		if s.Start.Compare(prevEnd) < 0 {
			t.Fatalf("span %d %v overlaps or precedes previous end %v", i, s, prevEnd)
		}
		prevEnd = s.End

		body := s.Text(text)
		if strings.Contains(body, "\n") {
			t.Fatalf("span %d %v crosses a line: %q", i, s, body)
		}
		switch s.Kind {
		case Tag, Doctype, Comment:
			if body[0] != '<' || body[len(body)-1] != '>' {
				t.Fatalf("span %d %v: %q is not a tag token", i, s, body)
			}
		case String:
			if len(body) < 2 || body[0] != body[len(body)-1] || (body[0] != '"' && body[0] != '\'') {
				t.Fatalf("span %d %v: %q is not a quoted run", i, s, body)
			}
		}
	}
}

func TestClassify_Property_DisjointSortedAndWellFormed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := genMarkup().Draw(t, "text")
		checkSpans(t, text, Classify(text))
	})
}

func TestClassify_Property_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := genMarkup().Draw(t, "text")
		if a, b := Classify(text), Classify(text); !reflect.DeepEqual(a, b) {
			t.Fatalf("two passes differ:\n%v\n%v", a, b)
		}
	})
}

func TestClassify_Property_ArbitraryStrings(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.String().Draw(t, "text")
		checkSpans(t, text, Classify(text))
	})
}

func FuzzClassify(f *testing.F) {
	for _, seed := range []string{
		"",
		"<!-- hi -->",
		"<!DOCTYPE html>",
		"<div>text</div>",
		"<style>a{color:'red'}</style>",
		`a='b' <img alt="x">`,
		"<script>\n'x' < y\n</script>'z'",
		"\xff<\xfe>",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, text string) {
		// Invalid UTF-8 bytes advance one column each, like range over a string.
		checkSpans(t, text, Classify(text))
	})
}
