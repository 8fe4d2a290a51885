package editor

import "github.com/iw2rmb/wizard/buffer"

// ChangeEvent describes the document after a text change.
type ChangeEvent struct {
	Version     uint64
	TextVersion uint64
	Cursor      buffer.Pos

	// Complete current text, never a diff.
	Text string
}

// ReadOnlyBlockedMsg is emitted when a mutating key is pressed while the
// editor is read-only.
type ReadOnlyBlockedMsg struct {
	Key string
}

func buildChangeEvent(b *buffer.Buffer) ChangeEvent {
	return ChangeEvent{
		Version:     b.Version(),
		TextVersion: b.TextVersion(),
		Cursor:      b.Cursor(),
		Text:        b.Text(),
	}
}
