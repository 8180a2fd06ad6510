package binding

import (
	"github.com/iw2rmb/flowedit/buffer"
	"github.com/iw2rmb/flowedit/flow"
	"github.com/iw2rmb/flowedit/remote"
)

// Props is the external configuration of a binding.
type Props struct {
	InitialText   string
	InitialCached bool
	ServiceURL    string
	Language      remote.Language
	ServerOptions remote.ServerOptions

	HighlightedRange *HighlightRange
	ExecutionFlow    []flow.Step
}

// Location is one end of a highlighted range: either a position or a flat
// rune offset into the document.
type Location struct {
	pos      buffer.Pos
	offset   int
	isOffset bool
}

func At(p buffer.Pos) Location { return Location{pos: p} }

func AtOffset(off int) Location { return Location{offset: off, isOffset: true} }

func (l Location) resolve(w Widget) buffer.Pos {
	if l.isOffset {
		return w.PosFromOffset(l.offset)
	}
	return l.pos
}

type HighlightRange struct {
	Start Location
	End   Location
}

// Handlers receive notifications relayed from the widget. Nil fields are
// skipped.
type Handlers struct {
	SlowUpdateWait   func()
	SlowUpdateResult func(remote.SlowUpdate)
	ConnectionChange func(remote.ConnectionState)
	// TextChange receives an accessor; the text is read only when called.
	TextChange  func(text func() string)
	ServerError func(message string)
	CursorMove  func(offset func() int)
}
