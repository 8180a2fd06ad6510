// Package flow turns a recorded execution trace into editor decorations.
//
// A trace is an ordered list of steps, one per executed source line. Lines in
// steps are 1-based; everything produced by this package (arrows, annotation
// keys) is 0-based, matching editor rows.
package flow
