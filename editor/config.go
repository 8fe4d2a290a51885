package editor

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// Rendering options.
	ShowLineNums bool
	Style        Style

	// KeyMap defaults to DefaultKeyMap() when left zero.
	KeyMap KeyMap

	// ReadOnly rejects every mutating key and reports ReadOnlyBlockedMsg.
	ReadOnly bool

	// Forwarded to buffer.Options.
	HistoryLimit int

	// Highlighter decorates the document. nil renders plain text.
	Highlighter Highlighter

	// OnChange is called after every change of the document text.
	OnChange func(ChangeEvent)
}
