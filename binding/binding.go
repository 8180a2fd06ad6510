package binding

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/flowedit/buffer"
	"github.com/iw2rmb/flowedit/editor"
	"github.com/iw2rmb/flowedit/flow"
	"github.com/iw2rmb/flowedit/internal/log"
	"github.com/iw2rmb/flowedit/remote"
	"github.com/iw2rmb/flowedit/widget"
)

// Options configures collaborators. Zero values select the defaults.
type Options struct {
	NewWidget WidgetFactory
	Dial      widget.DialFunc
}

// Binding owns exactly one live widget on a surface.
type Binding struct {
	surface  *widget.Surface
	host     Host
	handlers Handlers
	opts     Options

	props Props
	w     Widget

	highlight widget.Handle
	bookmarks []widget.Handle

	destroyed bool
}

// New creates the widget with props.InitialText and draws the initial
// highlight and flow. The returned command connects unless
// props.InitialCached is set.
func New(surface *widget.Surface, host Host, props Props, handlers Handlers, opts Options) (*Binding, tea.Cmd) {
	if opts.NewWidget == nil {
		opts.NewWidget = NewInstance
	}
	b := &Binding{
		surface:  surface,
		host:     host,
		handlers: handlers,
		opts:     opts,
		props:    props,
	}
	cmd := b.create(props.InitialText, props.InitialCached)
	return b, cmd
}

func (b *Binding) Props() Props { return b.props }

func (b *Binding) Widget() Widget { return b.w }

func (b *Binding) Surface() *widget.Surface { return b.surface }

func (b *Binding) create(text string, cached bool) tea.Cmd {
	w, cmd := b.opts.NewWidget(b.surface, widget.Options{
		ServiceURL:    b.props.ServiceURL,
		Language:      b.props.Language,
		ServerOptions: b.props.ServerOptions,
		InitialText:   text,
		Cached:        cached,
		Dial:          b.opts.Dial,
	}, b.widgetEvents())
	b.w = w
	b.highlight = nil
	b.bookmarks = nil
	b.renderHighlight()
	b.renderFlow()
	return cmd
}

func (b *Binding) widgetEvents() widget.Events {
	h := b.handlers
	ev := widget.Events{
		SlowUpdateWait:   h.SlowUpdateWait,
		SlowUpdateResult: h.SlowUpdateResult,
		ConnectionChange: h.ConnectionChange,
		ServerError:      h.ServerError,
	}
	if h.TextChange != nil {
		ev.TextChange = func() { h.TextChange(b.text) }
	}
	if h.CursorMove != nil {
		ev.CursorActivity = func() { h.CursorMove(b.cursorOffset) }
	}
	return ev
}

func (b *Binding) text() string {
	if b.w == nil {
		return ""
	}
	return b.w.Text()
}

func (b *Binding) cursorOffset() int {
	if b.w == nil {
		return 0
	}
	return b.w.CursorOffset()
}

// SetInitialText replaces the whole document when text differs from the
// previous value.
func (b *Binding) SetInitialText(text string) tea.Cmd {
	if b.destroyed || text == b.props.InitialText {
		return nil
	}
	b.props.InitialText = text
	return b.w.SetText(text)
}

// SetServiceURL replaces the widget with one bound to url on the same
// surface. The replacement keeps the current text and connects at once.
func (b *Binding) SetServiceURL(url string) tea.Cmd {
	if b.destroyed || url == b.props.ServiceURL {
		return nil
	}
	log.Info("service endpoint changed, recreating widget", "from", b.props.ServiceURL, "to", url)
	b.props.ServiceURL = url

	text := b.w.Text()
	b.w.Destroy(widget.DestroyOptions{KeepSurface: true})
	return b.create(text, false)
}

// SetLanguage updates the live widget. A widget still waiting for its first
// edit connects now.
func (b *Binding) SetLanguage(l remote.Language) tea.Cmd {
	if b.destroyed || l == b.props.Language {
		return nil
	}
	b.props.Language = l
	return tea.Batch(b.w.SetLanguage(l), b.promote())
}

// SetServerOptions updates the live widget. A widget still waiting for its
// first edit connects now.
func (b *Binding) SetServerOptions(o remote.ServerOptions) tea.Cmd {
	if b.destroyed || o == b.props.ServerOptions {
		return nil
	}
	b.props.ServerOptions = o
	return tea.Batch(b.w.SetServerOptions(o), b.promote())
}

func (b *Binding) promote() tea.Cmd {
	if b.w.ConnectRequested() {
		return nil
	}
	log.Debug("configuration changed before first edit, connecting")
	return b.w.Connect()
}

// SetHighlightedRange clears the previous highlight and draws r. A nil r
// leaves nothing highlighted.
func (b *Binding) SetHighlightedRange(r *HighlightRange) {
	if b.destroyed {
		return
	}
	b.props.HighlightedRange = r
	b.renderHighlight()
}

func (b *Binding) renderHighlight() {
	if b.highlight != nil {
		b.highlight.Clear()
		b.highlight = nil
	}
	r := b.props.HighlightedRange
	if r == nil {
		return
	}
	b.highlight = b.w.MarkText(buffer.Range{
		Start: r.Start.resolve(b.w),
		End:   r.End.resolve(b.w),
	}, StyleKeyHighlight)
}

// SetExecutionFlow replaces the jump arrows and end-of-line annotations
// with those derived from steps. Previous annotations are always cleared
// first, including for an empty steps.
func (b *Binding) SetExecutionFlow(steps []flow.Step) {
	if b.destroyed {
		return
	}
	b.props.ExecutionFlow = steps
	b.renderFlow()
}

func (b *Binding) renderFlow() {
	for _, h := range b.bookmarks {
		h.Clear()
	}
	b.bookmarks = nil

	plan := flow.Render(b.props.ExecutionFlow)

	var arrows []editor.JumpArrow
	for _, a := range plan.Arrows {
		arrows = append(arrows, editor.JumpArrow{FromRow: a.FromLine, ToRow: a.ToLine, Exceptional: a.Exceptional})
	}
	b.w.SetJumpArrows(arrows)

	for _, line := range plan.Lines() {
		b.bookmarks = append(b.bookmarks, b.w.AddLineWidget(line, annotationWidget(plan.Annotations[line])))
	}
}

func annotationWidget(a flow.LineAnnotation) editor.LineWidget {
	var segs []editor.WidgetSegment
	if a.HasNotes {
		segs = append(segs, editor.WidgetSegment{Text: a.Notes, StyleKey: StyleKeyNotes})
	}
	if a.HasException {
		if len(segs) > 0 {
			segs = append(segs, editor.WidgetSegment{Text: " "})
		}
		segs = append(segs, editor.WidgetSegment{Text: a.Exception, StyleKey: StyleKeyException})
	}
	return editor.LineWidget{Segments: segs}
}

// Destroy releases the widget while keeping its surface in place, then
// detaches the surface from the host. Calling it twice does nothing.
func (b *Binding) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.w.Destroy(widget.DestroyOptions{KeepSurface: true})
	b.highlight = nil
	b.bookmarks = nil
	if b.host != nil {
		b.host.Detach(b.surface)
	}
}

// Update forwards UI input and transport messages to the widget. A
// destroyed widget still reaps connections that finish dialing late.
func (b *Binding) Update(msg tea.Msg) tea.Cmd {
	return b.w.Update(msg)
}

func (b *Binding) View() string {
	if b.destroyed {
		return ""
	}
	return b.w.View()
}
