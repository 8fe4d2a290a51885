package markup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestByLine(t *testing.T) {
	text := "<p>\n\n  'x' <b>"
	got := ByLine(text, Classify(text))
	want := [][]LineSpan{
		{{Kind: Tag, StartCol: 0, EndCol: 3}},
		nil,
		{{Kind: String, StartCol: 2, EndCol: 5}, {Kind: Tag, StartCol: 6, EndCol: 9}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestByLine_SplitsMultilineSpans(t *testing.T) {
	text := "ab\ncde\nf"
	spans := []Span{sp(Comment, 1, 1, 1, 3, 1, 8)}
	got := ByLine(text, spans)
	want := [][]LineSpan{
		{{Kind: Comment, StartCol: 1, EndCol: 2}},
		{{Kind: Comment, StartCol: 0, EndCol: 3}},
		{{Kind: Comment, StartCol: 0, EndCol: 1}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestByLine_EmptyText(t *testing.T) {
	got := ByLine("", nil)
	if len(got) != 1 || got[0] != nil {
		t.Fatalf("ByLine(\"\"): got %v, want one empty line", got)
	}
}

func TestKind_TextRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		b, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", k, err)
		}
		var got Kind
		if err := got.UnmarshalText(b); err != nil || got != k {
			t.Fatalf("UnmarshalText(%q): got %v, %v; want %v", b, got, err, k)
		}
	}
	var k Kind
	if err := k.UnmarshalText([]byte("bogus")); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if _, err := Kind(42).MarshalText(); err == nil {
		t.Fatalf("expected error marshaling unknown kind")
	}
}

func TestSpan_Contains(t *testing.T) {
	s := one(Tag, 2, 5)
	for col, want := range map[int]bool{1: false, 2: true, 4: true, 5: false} {
		if got := s.Contains(Pos{Line: 1, Column: col}); got != want {
			t.Fatalf("Contains(col %d): got %v, want %v", col, got, want)
		}
	}
}
