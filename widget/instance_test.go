package widget

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/flowedit/buffer"
	"github.com/iw2rmb/flowedit/editor"
	"github.com/iw2rmb/flowedit/remote"
)

type fakeConn struct {
	sent   []remote.Message
	inbox  chan remote.Message
	err    error
	closed int
}

func newFakeConn() *fakeConn { return &fakeConn{inbox: make(chan remote.Message, 8)} }

func (c *fakeConn) Send(msg remote.Message) error {
	if c.closed > 0 {
		return remote.ErrClosed
	}
	c.sent = append(c.sent, msg)
	return nil
}
func (c *fakeConn) Inbox() <-chan remote.Message { return c.inbox }
func (c *fakeConn) Err() error                   { return c.err }
func (c *fakeConn) Close() error                 { c.closed++; return nil }

func (c *fakeConn) types() []remote.MessageType {
	out := make([]remote.MessageType, 0, len(c.sent))
	for _, m := range c.sent {
		out = append(out, m.Type)
	}
	return out
}

type recorder struct {
	states  []remote.ConnectionState
	errors  []string
	waits   int
	results []remote.SlowUpdate
	texts   int
	cursors int
}

func (r *recorder) events() Events {
	return Events{
		SlowUpdateWait:   func() { r.waits++ },
		SlowUpdateResult: func(su remote.SlowUpdate) { r.results = append(r.results, su) },
		ConnectionChange: func(s remote.ConnectionState) { r.states = append(r.states, s) },
		TextChange:       func() { r.texts++ },
		ServerError:      func(msg string) { r.errors = append(r.errors, msg) },
		CursorActivity:   func() { r.cursors++ },
	}
}

func dialTo(conn *fakeConn, dials *int) DialFunc {
	return func(ctx context.Context, url string) (Conn, error) {
		*dials++
		return conn, nil
	}
}

// runCmd executes cmd and any batched commands, returning the messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func deliver(t *testing.T, i *Instance, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	var next []tea.Cmd
	for _, msg := range runCmd(cmd) {
		next = append(next, i.Update(msg))
	}
	return tea.Batch(next...)
}

func sameTypes(a, b []remote.MessageType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNew_ConnectsImmediately(t *testing.T) {
	conn := newFakeConn()
	dials := 0
	rec := &recorder{}
	s := NewSurface(editor.Config{})

	i, cmd := New(s, Options{
		ServiceURL:  "ws://svc",
		Language:    remote.CSharp,
		InitialText: "class C {}",
		Dial:        dialTo(conn, &dials),
	}, rec.events())
	if cmd == nil {
		t.Fatalf("New returned nil connect command")
	}
	if !i.ConnectRequested() || i.State() != remote.StateConnecting {
		t.Fatalf("state=%v requested=%v, want connecting", i.State(), i.ConnectRequested())
	}

	deliver(t, i, cmd)
	if dials != 1 {
		t.Fatalf("dials=%d, want 1", dials)
	}
	if i.State() != remote.StateOpen {
		t.Fatalf("state=%v, want open", i.State())
	}
	want := []remote.MessageType{remote.TypeOptions, remote.TypeText, remote.TypeSlowUpdate}
	if got := conn.types(); !sameTypes(got, want) {
		t.Fatalf("sent=%v, want %v", got, want)
	}
	if conn.sent[1].Text != "class C {}" {
		t.Fatalf("sent text=%q", conn.sent[1].Text)
	}
	if conn.sent[0].Language != remote.CSharp {
		t.Fatalf("sent language=%q", conn.sent[0].Language)
	}
	if rec.waits != 1 {
		t.Fatalf("slow update waits=%d, want 1", rec.waits)
	}
	wantStates := []remote.ConnectionState{remote.StateConnecting, remote.StateOpen}
	if len(rec.states) != 2 || rec.states[0] != wantStates[0] || rec.states[1] != wantStates[1] {
		t.Fatalf("states=%v, want %v", rec.states, wantStates)
	}
	if i.Connect() != nil {
		t.Fatalf("second Connect returned a command")
	}
}

func TestNew_CachedConnectsOnFirstLocalEdit(t *testing.T) {
	conn := newFakeConn()
	dials := 0
	rec := &recorder{}
	s := NewSurface(editor.Config{})

	i, cmd := New(s, Options{ServiceURL: "ws://svc", Cached: true, Dial: dialTo(conn, &dials)}, rec.events())
	if cmd != nil {
		t.Fatalf("cached New returned a command")
	}

	if cmd := i.SetText("host text"); cmd != nil {
		t.Fatalf("host SetText returned a command")
	}
	if i.ConnectRequested() {
		t.Fatalf("host SetText triggered connect")
	}
	if rec.texts != 1 {
		t.Fatalf("text changes=%d, want 1", rec.texts)
	}

	cmd = i.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if !i.ConnectRequested() {
		t.Fatalf("local edit did not request connect")
	}
	deliver(t, i, cmd)
	if dials != 1 || i.State() != remote.StateOpen {
		t.Fatalf("dials=%d state=%v, want 1 open", dials, i.State())
	}
	if got := conn.sent[1].Text; got != "xhost text" {
		t.Fatalf("sent text=%q, want %q", got, "xhost text")
	}

	// Further edits stream text instead of reconnecting.
	cmd = i.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	for _, msg := range runCmd(cmd) {
		if _, ok := msg.(connectedMsg); ok {
			t.Fatalf("second edit reconnected")
		}
	}
	last := conn.sent[len(conn.sent)-2]
	if last.Type != remote.TypeText || last.Text != "xyhost text" {
		t.Fatalf("last text message=%+v", last)
	}
	if rec.cursors == 0 {
		t.Fatalf("cursor activity not reported")
	}
}

func TestInstance_InboxEvents(t *testing.T) {
	conn := newFakeConn()
	dials := 0
	rec := &recorder{}
	i, cmd := New(NewSurface(editor.Config{}), Options{Dial: dialTo(conn, &dials)}, rec.events())
	listen := deliver(t, i, cmd)

	conn.inbox <- remote.Message{Type: remote.TypeSlowUpdate, X: []byte(`{"a":1}`)}
	listen = deliver(t, i, listen)
	if len(rec.results) != 1 || string(rec.results[0].X) != `{"a":1}` {
		t.Fatalf("results=%+v", rec.results)
	}

	conn.inbox <- remote.Message{Type: remote.TypeError, Message: "compiler crashed"}
	listen = deliver(t, i, listen)
	if len(rec.errors) != 1 || rec.errors[0] != "compiler crashed" {
		t.Fatalf("errors=%v", rec.errors)
	}

	conn.err = errors.New("read: boom")
	close(conn.inbox)
	if next := deliver(t, i, listen); next != nil {
		t.Fatalf("listen continued after inbox closed")
	}
	if i.State() != remote.StateError {
		t.Fatalf("state=%v, want error", i.State())
	}
	if rec.errors[len(rec.errors)-1] != "read: boom" {
		t.Fatalf("errors=%v", rec.errors)
	}
}

func TestInstance_DialErrorSurfacesAsEvents(t *testing.T) {
	rec := &recorder{}
	dial := func(ctx context.Context, url string) (Conn, error) {
		return nil, errors.New("dial ws://svc: refused")
	}
	i, cmd := New(NewSurface(editor.Config{}), Options{ServiceURL: "ws://svc", Dial: dial}, rec.events())
	deliver(t, i, cmd)

	if i.State() != remote.StateError {
		t.Fatalf("state=%v, want error", i.State())
	}
	if len(rec.errors) != 1 || rec.errors[0] != "dial ws://svc: refused" {
		t.Fatalf("errors=%v", rec.errors)
	}
	if i.Connect() != nil {
		t.Fatalf("Connect after failure returned a command")
	}
}

func TestInstance_SetLanguageAndOptions(t *testing.T) {
	conn := newFakeConn()
	dials := 0
	i, cmd := New(NewSurface(editor.Config{}), Options{Language: remote.CSharp, Dial: dialTo(conn, &dials)}, Events{})

	// Before the connection opens, changes are only recorded.
	i.SetLanguage(remote.FSharp)
	deliver(t, i, cmd)
	if got := conn.sent[0].Language; got != remote.FSharp {
		t.Fatalf("initial options language=%q, want F#", got)
	}

	conn.sent = nil
	i.SetLanguage(remote.FSharp)
	if len(conn.sent) != 0 {
		t.Fatalf("unchanged language sent %v", conn.types())
	}
	i.SetServerOptions(remote.ServerOptions{Optimize: remote.OptimizeDebug, Target: "IL"})
	want := []remote.MessageType{remote.TypeOptions, remote.TypeSlowUpdate}
	if got := conn.types(); !sameTypes(got, want) {
		t.Fatalf("sent=%v, want %v", got, want)
	}
	if got := conn.sent[0].Options.Target; got != "IL" {
		t.Fatalf("target=%q, want IL", got)
	}
}

func TestInstance_DestroyKeepSurface(t *testing.T) {
	conn := newFakeConn()
	dials := 0
	s := NewSurface(editor.Config{})
	i, cmd := New(s, Options{InitialText: "a\nb", Dial: dialTo(conn, &dials)}, Events{})
	deliver(t, i, cmd)

	i.MarkText(buffer.Range{End: buffer.Pos{Col: 1}}, "")
	i.AddLineWidget(1, editor.LineWidget{Segments: []editor.WidgetSegment{{Text: "n"}}})
	i.SetJumpArrows([]editor.JumpArrow{{FromRow: 0, ToRow: 1}})

	i.Destroy(DestroyOptions{KeepSurface: true})
	i.Destroy(DestroyOptions{KeepSurface: true})

	if conn.closed != 1 {
		t.Fatalf("conn closed %d times, want 1", conn.closed)
	}
	if s.Released() || s.Attached() {
		t.Fatalf("surface released=%v attached=%v, want kept and detached", s.Released(), s.Attached())
	}
	if got := s.Editor().LineWidgetCount(); got != 0 {
		t.Fatalf("line widgets after destroy=%d", got)
	}
	if got := len(s.Editor().JumpArrows()); got != 0 {
		t.Fatalf("arrows after destroy=%d", got)
	}
	if s.Editor().Text() != "a\nb" {
		t.Fatalf("surface text=%q", s.Editor().Text())
	}
	if i.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}) != nil || s.Editor().Text() != "a\nb" {
		t.Fatalf("destroyed instance still edits")
	}

	// A replacement reuses the surface.
	j, _ := New(s, Options{InitialText: "c", Cached: true}, Events{})
	if !s.Attached() || j.Text() != "c" {
		t.Fatalf("replacement not attached, text=%q", j.Text())
	}
}

func TestInstance_StaleConnectIsClosed(t *testing.T) {
	conn := newFakeConn()
	dials := 0
	s := NewSurface(editor.Config{})
	old, cmd := New(s, Options{Dial: dialTo(conn, &dials)}, Events{})

	// The dial finishes after the instance was replaced.
	msgs := runCmd(cmd)
	old.Destroy(DestroyOptions{KeepSurface: true})
	repl, _ := New(s, Options{Cached: true}, Events{})
	for _, msg := range msgs {
		repl.Update(msg)
	}

	if conn.closed != 1 {
		t.Fatalf("stale conn closed %d times, want 1", conn.closed)
	}
	if repl.State() != remote.StateClosed {
		t.Fatalf("replacement state=%v, want closed", repl.State())
	}
	if len(conn.sent) != 0 {
		t.Fatalf("stale conn used: %v", conn.types())
	}
}

func TestInstance_DestroyReleasesSurface(t *testing.T) {
	s := NewSurface(editor.Config{})
	i, _ := New(s, Options{InitialText: "abc", Cached: true}, Events{})
	i.Destroy(DestroyOptions{})
	if !s.Released() || s.View() != "" {
		t.Fatalf("surface not released")
	}
}

func TestInstance_OffsetConversion(t *testing.T) {
	i, _ := New(NewSurface(editor.Config{}), Options{InitialText: "ab\ncd", Cached: true}, Events{})

	cases := []struct {
		off  int
		want buffer.Pos
	}{
		{0, buffer.Pos{}},
		{3, buffer.Pos{Row: 1}},
		{5, buffer.Pos{Row: 1, Col: 2}},
		{-4, buffer.Pos{}},
		{99, buffer.Pos{Row: 1, Col: 2}},
	}
	for _, c := range cases {
		if got := i.PosFromOffset(c.off); got != c.want {
			t.Fatalf("PosFromOffset(%d)=%v, want %v", c.off, got, c.want)
		}
	}
	if got := i.OffsetFromPos(buffer.Pos{Row: 1, Col: 1}); got != 4 {
		t.Fatalf("OffsetFromPos=%d, want 4", got)
	}
}
