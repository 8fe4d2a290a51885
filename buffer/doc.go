// Package buffer implements the pure, rune-accurate document model behind the
// wizard editor.
//
// Coordinates are 0-based (Row, Col) in runes. The markup classifier uses
// 1-based lines; the editor converts at the seam.
//
// Text is stored as runes, so invalid UTF-8 bytes become U+FFFD and are
// written back that way.
package buffer
