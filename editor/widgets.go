package editor

// WidgetSegment is one styled chunk of a line widget.
type WidgetSegment struct {
	Text     string
	StyleKey string
}

// LineWidget is view-only text rendered after the end of a line.
type LineWidget struct {
	Segments []WidgetSegment
}

// LineWidgetMark is a handle to a widget placed with AddLineWidget.
type LineWidgetMark struct {
	deco *decorations
	id   uint64
}

// AddLineWidget places w after the end of row. Several widgets on one row
// render in insertion order.
func (m Model) AddLineWidget(row int, w LineWidget) *LineWidgetMark {
	if m.buf != nil {
		row = clampInt(row, 0, m.buf.LineCount()-1)
	}
	segs := make([]WidgetSegment, 0, len(w.Segments))
	for _, s := range w.Segments {
		s.Text = sanitizeSingleLine(s.Text)
		if s.Text == "" {
			continue
		}
		segs = append(segs, s)
	}
	id := m.deco.allocID()
	m.deco.widgets[id] = widgetEntry{id: id, row: row, widget: LineWidget{Segments: segs}}
	m.deco.touch()
	return &LineWidgetMark{deco: m.deco, id: id}
}

// Clear removes the widget. Clearing twice is a no-op.
func (w *LineWidgetMark) Clear() {
	if w == nil || w.deco == nil {
		return
	}
	if _, ok := w.deco.widgets[w.id]; ok {
		delete(w.deco.widgets, w.id)
		w.deco.touch()
	}
	w.deco = nil
}

// Row returns the widget's row while it is alive.
func (w *LineWidgetMark) Row() (int, bool) {
	if w == nil || w.deco == nil {
		return 0, false
	}
	e, ok := w.deco.widgets[w.id]
	return e.row, ok
}

// LineWidgetCount returns the number of live line widgets.
func (m Model) LineWidgetCount() int { return len(m.deco.widgets) }
