package editor

import "github.com/iw2rmb/flowedit/buffer"

// ChangeEvent reports an effective text change.
type ChangeEvent struct {
	Version uint64
	Source  buffer.ChangeSource
	Cursor  buffer.Pos

	// Text is the full document after the change.
	Text string
}

// CursorEvent reports a cursor move.
type CursorEvent struct {
	Cursor buffer.Pos
	// Offset is the cursor as a flat rune offset.
	Offset int
}

func buildChangeEvent(b *buffer.Buffer) ChangeEvent {
	ev := ChangeEvent{
		Version: b.Version(),
		Cursor:  b.Cursor(),
		Text:    b.Text(),
	}
	if ch, ok := b.LastChange(); ok {
		ev.Source = ch.Source
	}
	return ev
}

func buildCursorEvent(b *buffer.Buffer) CursorEvent {
	return CursorEvent{Cursor: b.Cursor(), Offset: b.CursorOffset()}
}
