package widget

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/flowedit/editor"
)

// Surface is the editing surface an Instance renders into. It is created by
// the host and can be reused by a replacement Instance after the previous
// one was destroyed with KeepSurface.
type Surface struct {
	ed    editor.Model
	hooks *hooks

	attached bool
	released bool
}

// hooks routes editor callbacks to whichever Instance is attached.
type hooks struct {
	onChange func(editor.ChangeEvent)
	onCursor func(editor.CursorEvent)
}

// NewSurface creates a surface. Callbacks already set on cfg still run
// before the attached instance sees the event.
func NewSurface(cfg editor.Config) *Surface {
	h := &hooks{}
	userChange, userCursor := cfg.OnChange, cfg.OnCursorMove
	cfg.OnChange = func(ev editor.ChangeEvent) {
		if userChange != nil {
			userChange(ev)
		}
		if h.onChange != nil {
			h.onChange(ev)
		}
	}
	cfg.OnCursorMove = func(ev editor.CursorEvent) {
		if userCursor != nil {
			userCursor(ev)
		}
		if h.onCursor != nil {
			h.onCursor(ev)
		}
	}
	return &Surface{ed: editor.New(cfg), hooks: h}
}

// Editor returns the underlying editor model. Decorations created through
// it share state with the surface.
func (s *Surface) Editor() editor.Model { return s.ed }

func (s *Surface) Attached() bool { return s.attached }

// Released reports whether an Instance destroyed without KeepSurface tore
// the surface down.
func (s *Surface) Released() bool { return s.released }

func (s *Surface) SetSize(width, height int) { s.ed = s.ed.SetSize(width, height) }

func (s *Surface) Focus() { s.ed = s.ed.Focus() }

func (s *Surface) Blur() { s.ed = s.ed.Blur() }

func (s *Surface) View() string {
	if s.released {
		return ""
	}
	return s.ed.View()
}

func (s *Surface) update(msg tea.Msg) tea.Cmd {
	if s.released {
		return nil
	}
	var cmd tea.Cmd
	s.ed, cmd = s.ed.Update(msg)
	return cmd
}

func (s *Surface) attach(onChange func(editor.ChangeEvent), onCursor func(editor.CursorEvent)) {
	s.hooks.onChange = onChange
	s.hooks.onCursor = onCursor
	s.attached = true
	s.released = false
}

func (s *Surface) detach() {
	s.hooks.onChange = nil
	s.hooks.onCursor = nil
	s.attached = false
}

func (s *Surface) release() {
	s.detach()
	s.ed = s.ed.SetText("")
	s.released = true
}
