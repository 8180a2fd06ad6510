package widget

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/flowedit/buffer"
	"github.com/iw2rmb/flowedit/editor"
	"github.com/iw2rmb/flowedit/internal/log"
	"github.com/iw2rmb/flowedit/remote"
)

const connectTimeout = 10 * time.Second

var lastInstanceID atomic.Uint64

// Options configures a new Instance.
type Options struct {
	ServiceURL    string
	Language      remote.Language
	ServerOptions remote.ServerOptions
	InitialText   string

	// Cached defers connecting until the first local edit or an explicit
	// Connect.
	Cached bool

	// Dial defaults to remote.Dial.
	Dial DialFunc
}

// DestroyOptions controls teardown.
type DestroyOptions struct {
	// KeepSurface leaves the surface usable for a replacement Instance.
	KeepSurface bool
}

// Handle is a decoration that can be removed.
type Handle interface {
	Clear()
}

// Instance is one live editor widget on a Surface.
type Instance struct {
	id      uint64
	surface *Surface
	opts    Options
	events  Events
	logger  *slog.Logger

	conn             Conn
	state            remote.ConnectionState
	connectRequested bool
	destroyed        bool

	// pending collects commands raised from editor callbacks during Update.
	pending []tea.Cmd
}

// New attaches a new Instance to surface and loads opts.InitialText.
//
// Unless opts.Cached is set, the returned command starts connecting.
func New(surface *Surface, opts Options, events Events) (*Instance, tea.Cmd) {
	if opts.Dial == nil {
		opts.Dial = dialRemote
	}
	i := &Instance{
		id:      lastInstanceID.Add(1),
		surface: surface,
		opts:    opts,
		events:  events,
		state:   remote.StateClosed,
	}
	i.logger = log.With("instance", i.id, "url", opts.ServiceURL)

	surface.attach(nil, nil)
	surface.ed = surface.ed.SetText(opts.InitialText)
	surface.attach(i.onEditorChange, i.onEditorCursor)

	if opts.Cached {
		i.logger.Debug("connect deferred until first edit")
		return i, nil
	}
	return i, i.Connect()
}

func (i *Instance) ID() uint64 { return i.id }

func (i *Instance) Surface() *Surface { return i.surface }

func (i *Instance) ServiceURL() string { return i.opts.ServiceURL }

func (i *Instance) State() remote.ConnectionState { return i.state }

// ConnectRequested reports whether Connect has run. A cached instance
// reports false until its first edit.
func (i *Instance) ConnectRequested() bool { return i.connectRequested }

func (i *Instance) Destroyed() bool { return i.destroyed }

func (i *Instance) Text() string { return i.surface.ed.Text() }

// SetText replaces the document. It is not treated as a user edit.
func (i *Instance) SetText(text string) tea.Cmd {
	if i.destroyed {
		return nil
	}
	i.surface.ed = i.surface.ed.SetText(text)
	return i.drain()
}

func (i *Instance) Language() remote.Language { return i.opts.Language }

func (i *Instance) SetLanguage(l remote.Language) tea.Cmd {
	if i.destroyed || l == i.opts.Language {
		return nil
	}
	i.opts.Language = l
	i.sendOptions()
	return nil
}

func (i *Instance) ServerOptions() remote.ServerOptions { return i.opts.ServerOptions }

func (i *Instance) SetServerOptions(o remote.ServerOptions) tea.Cmd {
	if i.destroyed || o == i.opts.ServerOptions {
		return nil
	}
	i.opts.ServerOptions = o
	i.sendOptions()
	return nil
}

// Connect starts connecting. Calling it again, or after Destroy, does
// nothing.
func (i *Instance) Connect() tea.Cmd {
	if i.destroyed || i.connectRequested {
		return nil
	}
	i.connectRequested = true
	i.setState(remote.StateConnecting)
	i.logger.Info("connecting")

	dial, url := i.opts.Dial, i.opts.ServiceURL
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		conn, err := dial(ctx, url)
		return connectedMsg{owner: i, conn: conn, err: err}
	}
}

// Destroy closes the connection and removes this instance's decorations.
// Without KeepSurface the surface is released as well.
func (i *Instance) Destroy(opts DestroyOptions) {
	if i.destroyed {
		return
	}
	i.destroyed = true
	i.pending = nil
	if i.conn != nil {
		_ = i.conn.Close()
		i.conn = nil
	}
	i.state = remote.StateClosed

	i.surface.ed.ClearAllDecorations()
	if opts.KeepSurface {
		i.surface.detach()
	} else {
		i.surface.release()
	}
	i.logger.Info("destroyed", "keep_surface", opts.KeepSurface)
}

// PosFromOffset converts a rune offset, clamped to the document.
func (i *Instance) PosFromOffset(off int) buffer.Pos {
	p, _ := i.surface.ed.Buffer().PosFromOffset(off, buffer.OffsetClamp)
	return p
}

// OffsetFromPos converts a position, clamped to the document.
func (i *Instance) OffsetFromPos(p buffer.Pos) int {
	off, _ := i.surface.ed.Buffer().OffsetFromPos(p, buffer.OffsetClamp)
	return off
}

func (i *Instance) CursorOffset() int { return i.surface.ed.Buffer().CursorOffset() }

func (i *Instance) MarkText(r buffer.Range, styleKey string) Handle {
	return i.surface.ed.MarkText(r, styleKey)
}

func (i *Instance) AddLineWidget(row int, w editor.LineWidget) Handle {
	return i.surface.ed.AddLineWidget(row, w)
}

func (i *Instance) SetJumpArrows(arrows []editor.JumpArrow) {
	i.surface.ed.SetJumpArrows(arrows)
}

func (i *Instance) View() string { return i.surface.View() }

// Update handles UI input for the surface and this instance's transport
// messages. Transport messages of a destroyed instance are reaped by their
// owner; those of other live instances are ignored.
func (i *Instance) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case connectedMsg:
		if msg.owner != i {
			msg.owner.reap(msg)
			return nil
		}
		return i.handleConnected(msg)
	case inboxMsg:
		if msg.owner != i {
			return nil
		}
		return i.handleInbox(msg)
	}

	if i.destroyed {
		return nil
	}
	cmd := i.surface.update(msg)
	return tea.Batch(cmd, i.drain())
}

func (i *Instance) drain() tea.Cmd {
	if len(i.pending) == 0 {
		return nil
	}
	cmds := i.pending
	i.pending = nil
	return tea.Batch(cmds...)
}

func (i *Instance) onEditorChange(ev editor.ChangeEvent) {
	if i.destroyed {
		return
	}
	if ev.Source == buffer.ChangeSourceLocal && !i.connectRequested {
		i.logger.Debug("first edit, connecting")
		i.pending = append(i.pending, i.Connect())
	}
	i.sendText(ev.Text)
	i.events.textChange()
}

func (i *Instance) onEditorCursor(editor.CursorEvent) {
	if i.destroyed {
		return
	}
	i.events.cursorActivity()
}

func (i *Instance) setState(s remote.ConnectionState) {
	if i.state == s {
		return
	}
	i.state = s
	i.events.connectionChange(s)
}

func (i *Instance) send(msg remote.Message) bool {
	if i.conn == nil {
		return false
	}
	if err := i.conn.Send(msg); err != nil {
		i.logger.Warn("send failed", "type", msg.Type, "err", err)
		return false
	}
	return true
}

func (i *Instance) sendText(text string) {
	if i.send(remote.TextMessage(text)) {
		i.requestSlowUpdate()
	}
}

func (i *Instance) sendOptions() {
	if i.send(remote.OptionsMessage(i.opts.Language, i.opts.ServerOptions)) {
		i.requestSlowUpdate()
	}
}

func (i *Instance) requestSlowUpdate() {
	if i.send(remote.SlowUpdateRequest()) {
		i.events.slowUpdateWait()
	}
}
