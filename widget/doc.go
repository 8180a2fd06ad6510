// Package widget is the editor widget a binding drives: an editing Surface
// that outlives any single connection, and an Instance that attaches to it,
// talks to the service over a remote.Conn, and exposes the text, offset and
// decoration operations the binding needs.
package widget
