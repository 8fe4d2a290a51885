package theme

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/iw2rmb/wizard/editor"
	"github.com/iw2rmb/wizard/internal/log"
	"github.com/iw2rmb/wizard/internal/tracing"
	"github.com/iw2rmb/wizard/markup"
)

// Stats summarizes one classification pass.
type Stats struct {
	TextBytes int
	Lines     int
	Spans     int
	Counts    map[markup.Kind]int
	Elapsed   time.Duration
}

// Highlighter runs a full classification pass per text change and styles
// the result. It implements editor.Highlighter.
type Highlighter struct {
	theme  Theme
	tracer trace.Tracer
	onPass func(Stats)
}

var _ editor.Highlighter = (*Highlighter)(nil)

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithTracer records every pass as a span on tr.
func WithTracer(tr trace.Tracer) Option {
	return func(h *Highlighter) {
		if tr != nil {
			h.tracer = tr
		}
	}
}

// WithOnPass registers a callback invoked after every pass.
func WithOnPass(fn func(Stats)) Option {
	return func(h *Highlighter) { h.onPass = fn }
}

func NewHighlighter(th Theme, opts ...Option) *Highlighter {
	h := &Highlighter{
		theme:  th,
		tracer: noop.NewTracerProvider().Tracer("noop"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Highlight classifies text and returns the styled spans of each line.
// Classification is total, so the error is always nil.
func (h *Highlighter) Highlight(text string) ([][]editor.HighlightSpan, error) {
	_, span := h.tracer.Start(context.Background(), tracing.SpanClassifyPass)
	defer span.End()

	start := time.Now()
	spans := markup.Classify(text)
	elapsed := time.Since(start)

	stats := Stats{
		TextBytes: len(text),
		Lines:     strings.Count(text, "\n") + 1,
		Spans:     len(spans),
		Counts:    markup.Count(spans),
		Elapsed:   elapsed,
	}

	attrs := []attribute.KeyValue{
		attribute.Int(tracing.AttrTextBytes, stats.TextBytes),
		attribute.Int(tracing.AttrTextLines, stats.Lines),
		attribute.Int(tracing.AttrSpanCount, stats.Spans),
	}
	for _, k := range markup.Kinds() {
		attrs = append(attrs, attribute.Int(tracing.AttrSpanPrefix+k.String(), stats.Counts[k]))
	}
	span.SetAttributes(attrs...)

	log.Debug(log.CatClassify, "pass", "bytes", stats.TextBytes, "spans", stats.Spans, "elapsed", elapsed)
	if h.onPass != nil {
		h.onPass(stats)
	}

	perLine := markup.ByLine(text, spans)
	out := make([][]editor.HighlightSpan, len(perLine))
	for i, line := range perLine {
		if len(line) == 0 {
			continue
		}
		row := make([]editor.HighlightSpan, 0, len(line))
		for _, ls := range line {
			row = append(row, editor.HighlightSpan{
				StartCol: ls.StartCol,
				EndCol:   ls.EndCol,
				Style:    h.theme.Style(ls.Kind),
			})
		}
		out[i] = row
	}
	return out, nil
}
