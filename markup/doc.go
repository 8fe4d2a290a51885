// Package markup classifies HTML text into highlight spans.
//
// Classify runs one full left-to-right pass over the document and returns
// disjoint Tag, Doctype, Comment and String spans in document order. The pass
// tracks whether it is inside an embedded <style> or <script> block and
// suppresses markup-level classification there, except for the closing tags.
//
// Lines are 1-based, columns are 0-based rune indices. Every pass starts from
// scratch; nothing is retained between calls.
package markup
