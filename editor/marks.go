package editor

import "github.com/iw2rmb/flowedit/buffer"

// TextMark is a handle to a styled document range created by MarkText.
type TextMark struct {
	deco *decorations
	id   uint64
}

// MarkText styles r with the style resolved for styleKey (or Style.Mark).
//
// Marks are anchored to document coordinates and are not adjusted by later
// edits.
func (m Model) MarkText(r buffer.Range, styleKey string) *TextMark {
	r = buffer.NormalizeRange(r)
	if m.buf != nil {
		r = buffer.NormalizeRange(buffer.ClampRange(r, m.buf.LineCount(), func(row int) int {
			return len([]rune(m.buf.Line(row)))
		}))
	}
	id := m.deco.allocID()
	m.deco.marks[id] = markEntry{id: id, r: r, styleKey: styleKey}
	m.deco.touch()
	return &TextMark{deco: m.deco, id: id}
}

// Clear removes the mark. Clearing twice is a no-op.
func (t *TextMark) Clear() {
	if t == nil || t.deco == nil {
		return
	}
	if _, ok := t.deco.marks[t.id]; ok {
		delete(t.deco.marks, t.id)
		t.deco.touch()
	}
	t.deco = nil
}

// Find returns the marked range while the mark is alive.
func (t *TextMark) Find() (buffer.Range, bool) {
	if t == nil || t.deco == nil {
		return buffer.Range{}, false
	}
	e, ok := t.deco.marks[t.id]
	return e.r, ok
}

func (m *Model) markSpans(row int, lineLen int) []HighlightSpan {
	var spans []HighlightSpan
	for _, e := range m.deco.marksOnRow(row) {
		r := e.r
		start, end := 0, lineLen
		if r.Start.Row == row {
			start = r.Start.Col
		}
		if r.End.Row == row {
			end = r.End.Col
		}
		spans = append(spans, HighlightSpan{
			StartCol: start,
			EndCol:   end,
			Style:    m.styleFor(e.styleKey, m.cfg.Style.Mark),
		})
	}
	return spans
}
