// Package buffer implements the pure, rune-accurate document model behind the
// editor surface.
//
// Coordinates are 0-based (Row, Col) in runes. Flat offsets count runes, with
// each line break counted as a single rune.
// Ranges are half-open selections in document coordinates: [Start, End).
package buffer
