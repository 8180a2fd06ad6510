package editor

import (
	"sort"

	"github.com/iw2rmb/flowedit/buffer"
)

// decorations is shared by all copies of a Model so handles stay valid
// across Bubble Tea value updates.
type decorations struct {
	version uint64
	nextID  uint64

	marks   map[uint64]markEntry
	widgets map[uint64]widgetEntry
	arrows  []JumpArrow
}

type markEntry struct {
	id       uint64
	r        buffer.Range
	styleKey string
}

type widgetEntry struct {
	id     uint64
	row    int
	widget LineWidget
}

func newDecorations() *decorations {
	return &decorations{
		marks:   make(map[uint64]markEntry),
		widgets: make(map[uint64]widgetEntry),
	}
}

func (d *decorations) touch() { d.version++ }

func (d *decorations) allocID() uint64 {
	d.nextID++
	return d.nextID
}

// clear drops every decoration. Existing handles become inert.
func (d *decorations) clear() {
	if len(d.marks) == 0 && len(d.widgets) == 0 && len(d.arrows) == 0 {
		return
	}
	d.marks = make(map[uint64]markEntry)
	d.widgets = make(map[uint64]widgetEntry)
	d.arrows = nil
	d.touch()
}

func (d *decorations) marksOnRow(row int) []markEntry {
	var out []markEntry
	for _, e := range d.marks {
		if e.r.ContainsRow(row) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (d *decorations) widgetsOnRow(row int) []widgetEntry {
	var out []widgetEntry
	for _, e := range d.widgets {
		if e.row == row {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// ClearAllDecorations removes marks, line widgets, and jump arrows.
func (m Model) ClearAllDecorations() { m.deco.clear() }
