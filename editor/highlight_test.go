package editor

import (
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/wizard/buffer"
)

func testRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	r.SetHasDarkBackground(true)
	return r
}

func TestHighlighting_CalledWithFullTextOncePerTextChange(t *testing.T) {
	var calls []string
	h := HighlighterFunc(func(text string) ([][]HighlightSpan, error) {
		calls = append(calls, text)
		return nil, nil
	})

	m := New(Config{Text: "a\nb", Highlighter: h})
	if len(calls) != 1 || calls[0] != "a\nb" {
		t.Fatalf("initial calls: got %q", calls)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if len(calls) != 1 {
		t.Fatalf("cursor movement re-highlighted: %q", calls)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if len(calls) != 2 || calls[1] != "a\nxb" {
		t.Fatalf("calls after typing: got %q, want full text %q", calls, "a\nxb")
	}
	_ = m
}

func TestHighlighting_ErrorFallsBackToPlainText(t *testing.T) {
	r := testRenderer()
	st := Style{Text: r.NewStyle()}

	m := New(Config{
		Text:  "abcd",
		Style: st,
		Highlighter: HighlighterFunc(func(string) ([][]HighlightSpan, error) {
			return [][]HighlightSpan{{{StartCol: 1, EndCol: 3, Style: r.NewStyle().Underline(true)}}}, errors.New("boom")
		}),
	})
	m = m.SetSize(10, 1)
	m = m.Blur()

	got := m.renderContent()
	want := st.Text.Render("abcd")
	if got != want {
		t.Fatalf("unexpected render with highlighter error:\n got: %q\nwant: %q", got, want)
	}
}

func TestHighlighting_AppliesSpansToLineText(t *testing.T) {
	r := testRenderer()
	textStyle := r.NewStyle()
	hlStyle := r.NewStyle().Underline(true)
	st := Style{Text: textStyle}

	m := New(Config{
		Text:  "abcd",
		Style: st,
		Highlighter: HighlighterFunc(func(string) ([][]HighlightSpan, error) {
			return [][]HighlightSpan{{{StartCol: 1, EndCol: 3, Style: hlStyle}}}, nil
		}),
	})
	m = m.SetSize(10, 1)
	m = m.Blur()

	got := m.renderContent()
	want := textStyle.Render("a") + hlStyle.Inherit(textStyle).Render("bc") + textStyle.Render("d")
	if got != want {
		t.Fatalf("unexpected highlighted render:\n got: %q\nwant: %q", got, want)
	}
}

func TestHighlighting_ReplacesPreviousDecorations(t *testing.T) {
	r := testRenderer()
	textStyle := r.NewStyle()
	hlStyle := r.NewStyle().Bold(true)

	// Decorate the first line only while the document is a single line.
	h := HighlighterFunc(func(text string) ([][]HighlightSpan, error) {
		if text == "ab" {
			return [][]HighlightSpan{{{StartCol: 0, EndCol: 2, Style: hlStyle}}}, nil
		}
		return nil, nil
	})
	m := New(Config{Text: "ab", Style: Style{Text: textStyle}, Highlighter: h})
	m = m.Blur()
	if got, want := m.renderContent(), hlStyle.Inherit(textStyle).Render("ab"); got != want {
		t.Fatalf("initial render: got %q, want %q", got, want)
	}

	m.buf.SetCursor(buffer.Pos{Row: 0, Col: 2})
	m.buf.InsertNewline()
	m, _ = m.Update(struct{}{})

	want := textStyle.Render("ab") + "\n"
	if got := m.renderContent(); got != want {
		t.Fatalf("stale decorations after edit:\n got: %q\nwant: %q", got, want)
	}
}

func TestNormalizeHighlightSpans(t *testing.T) {
	spans := []HighlightSpan{
		{StartCol: 5, EndCol: 9},
		{StartCol: 3, EndCol: 1},
		{StartCol: 2, EndCol: 4},
		{StartCol: 7, EndCol: 7},
		{StartCol: -4, EndCol: 0},
	}
	got := normalizeHighlightSpans(spans, 8)

	want := [][2]int{{1, 3}, {5, 8}}
	if len(got) != len(want) {
		t.Fatalf("spans: got %+v, want %v", got, want)
	}
	for i, sp := range got {
		if sp.StartCol != want[i][0] || sp.EndCol != want[i][1] {
			t.Fatalf("span %d: got [%d,%d), want %v", i, sp.StartCol, sp.EndCol, want[i])
		}
	}
}
