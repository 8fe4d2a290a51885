package tracing

// Span names.
const (
	SpanClassifyPass = "markup.classify"
	SpanFetch        = "fetch.document"
	SpanSave         = "session.save"
)

// Span attribute keys.
const (
	AttrTextBytes   = "text.bytes"
	AttrTextLines   = "text.lines"
	AttrSpanCount   = "spans.count"
	AttrSpanPrefix  = "spans." // followed by the kind name, e.g. spans.tag
	AttrSessionID   = "session.id"
	AttrPath        = "document.path"
	AttrURL         = "document.url"
	AttrCacheHit    = "cache.hit"
	AttrErrorReason = "error.message"
)
