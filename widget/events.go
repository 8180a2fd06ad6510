package widget

import "github.com/iw2rmb/flowedit/remote"

// Events receives notifications from an Instance. Nil fields are skipped.
// All callbacks run on the Bubble Tea update goroutine.
type Events struct {
	SlowUpdateWait   func()
	SlowUpdateResult func(remote.SlowUpdate)
	ConnectionChange func(remote.ConnectionState)
	TextChange       func()
	ServerError      func(message string)
	CursorActivity   func()
}

func (e Events) slowUpdateWait() {
	if e.SlowUpdateWait != nil {
		e.SlowUpdateWait()
	}
}

func (e Events) slowUpdateResult(r remote.SlowUpdate) {
	if e.SlowUpdateResult != nil {
		e.SlowUpdateResult(r)
	}
}

func (e Events) connectionChange(s remote.ConnectionState) {
	if e.ConnectionChange != nil {
		e.ConnectionChange(s)
	}
}

func (e Events) textChange() {
	if e.TextChange != nil {
		e.TextChange()
	}
}

func (e Events) serverError(msg string) {
	if e.ServerError != nil {
		e.ServerError(msg)
	}
}

func (e Events) cursorActivity() {
	if e.CursorActivity != nil {
		e.CursorActivity()
	}
}
