package binding

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/flowedit/buffer"
	"github.com/iw2rmb/flowedit/editor"
	"github.com/iw2rmb/flowedit/remote"
	"github.com/iw2rmb/flowedit/widget"
)

// Widget is the editor widget API the binding drives. *widget.Instance
// implements it.
type Widget interface {
	Text() string
	SetText(text string) tea.Cmd
	SetLanguage(l remote.Language) tea.Cmd
	SetServerOptions(o remote.ServerOptions) tea.Cmd

	Connect() tea.Cmd
	ConnectRequested() bool
	Destroy(opts widget.DestroyOptions)

	PosFromOffset(off int) buffer.Pos
	OffsetFromPos(p buffer.Pos) int
	CursorOffset() int

	MarkText(r buffer.Range, styleKey string) widget.Handle
	AddLineWidget(row int, w editor.LineWidget) widget.Handle
	SetJumpArrows(arrows []editor.JumpArrow)

	Update(msg tea.Msg) tea.Cmd
	View() string
}

// WidgetFactory creates a widget on surface.
type WidgetFactory func(surface *widget.Surface, opts widget.Options, events widget.Events) (Widget, tea.Cmd)

// NewInstance is the default WidgetFactory.
func NewInstance(surface *widget.Surface, opts widget.Options, events widget.Events) (Widget, tea.Cmd) {
	return widget.New(surface, opts, events)
}

// Host owns the layout the surface lives in.
type Host interface {
	// Detach removes surface from the layout. It is called once, after the
	// widget was released.
	Detach(surface *widget.Surface)
}

var _ Widget = (*widget.Instance)(nil)
