// Package editor provides a Bubble Tea text editor component backed by the
// buffer package.
//
// The component handles key input, viewport scrolling and rendering. Hosts
// plug in a document-level Highlighter, which is re-run with the complete text
// after every text change, and an OnChange callback that observes the same
// changes.
package editor
