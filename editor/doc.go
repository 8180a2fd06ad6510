// Package editor provides a Bubble Tea text editor component backed by the
// buffer package.
//
// Besides input handling and viewport behavior, the editor exposes the
// decoration hooks a host needs to overlay analysis results: syntax
// highlighting, text marks, view-only virtual text, line-end widgets, and a
// jump-arrow gutter lane. Text and cursor changes are reported through
// Config callbacks.
package editor
