package editor

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/flowedit/buffer"
)

func TestMarkText_StylesRangeUntilCleared(t *testing.T) {
	r := newTestRenderer()
	st := Style{Text: r.NewStyle(), Mark: r.NewStyle().Bold(true)}
	m := New(Config{Text: "abcd", Style: st}).Blur()

	mk := m.MarkText(buffer.Range{Start: buffer.Pos{Col: 3}, End: buffer.Pos{Col: 1}}, "")
	got, ok := mk.Find()
	if want := (buffer.Range{Start: buffer.Pos{Col: 1}, End: buffer.Pos{Col: 3}}); !ok || got != want {
		t.Fatalf("Find: got %v,%v want %v,true", got, ok, want)
	}

	marked := st.Mark.Inherit(st.Text)
	want := st.Text.Render("a") + marked.Render("b") + marked.Render("c") + st.Text.Render("d")
	if got := m.renderContent(); got != want {
		t.Fatalf("marked render:\n got: %q\nwant: %q", got, want)
	}

	mk.Clear()
	mk.Clear()
	if _, ok := mk.Find(); ok {
		t.Fatalf("Find after Clear: got ok, want !ok")
	}
	want = st.Text.Render("a") + st.Text.Render("b") + st.Text.Render("c") + st.Text.Render("d")
	if got := m.renderContent(); got != want {
		t.Fatalf("render after Clear:\n got: %q\nwant: %q", got, want)
	}
}

func TestMarkText_KeyedStyleAndMultiRow(t *testing.T) {
	r := newTestRenderer()
	under := r.NewStyle().Underline(true)
	st := Style{Text: r.NewStyle(), Mark: r.NewStyle()}
	m := New(Config{
		Text:  "ab\ncd",
		Style: st,
		StyleForKey: func(key string) (lipgloss.Style, bool) {
			if key == "hl" {
				return under, true
			}
			return lipgloss.Style{}, false
		},
	}).Blur()

	m.MarkText(buffer.Range{Start: buffer.Pos{Row: 0, Col: 1}, End: buffer.Pos{Row: 1, Col: 1}}, "hl")

	marked := under.Inherit(st.Mark).Inherit(st.Text)
	want := st.Text.Render("a") + marked.Render("b") + "\n" + marked.Render("c") + st.Text.Render("d")
	if got := m.renderContent(); got != want {
		t.Fatalf("multi-row mark render:\n got: %q\nwant: %q", got, want)
	}
}

func TestMarkText_ClampsToDocument(t *testing.T) {
	m := New(Config{Text: "ab"})
	mk := m.MarkText(buffer.Range{Start: buffer.Pos{Row: 0, Col: 1}, End: buffer.Pos{Row: 5, Col: 9}}, "")
	got, _ := mk.Find()
	if want := (buffer.Range{Start: buffer.Pos{Col: 1}, End: buffer.Pos{Col: 2}}); got != want {
		t.Fatalf("clamped range: got %v, want %v", got, want)
	}
}

func TestClearAllDecorations(t *testing.T) {
	m := New(Config{Text: "ab\ncd"})
	mk := m.MarkText(buffer.Range{End: buffer.Pos{Col: 1}}, "")
	w := m.AddLineWidget(1, LineWidget{Segments: []WidgetSegment{{Text: "x"}}})
	m.SetJumpArrows([]JumpArrow{{FromRow: 0, ToRow: 1}})

	m.ClearAllDecorations()

	if _, ok := mk.Find(); ok {
		t.Fatalf("mark survived ClearAllDecorations")
	}
	if _, ok := w.Row(); ok {
		t.Fatalf("widget survived ClearAllDecorations")
	}
	if got := len(m.JumpArrows()); got != 0 {
		t.Fatalf("arrows after clear: got %d, want 0", got)
	}
}
