package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/flowedit/buffer"
	"github.com/iw2rmb/flowedit/internal/grapheme"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	prevY := m.viewport.YOffset
	m.viewport, cmd = m.viewport.Update(msg)
	if m.viewport.YOffset != prevY {
		// Highlighting only covers visible rows.
		m.rebuildContent()
	}

	if !m.focused || m.buf == nil {
		return m, cmd
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, cmd
	}
	if !m.mouseInBounds(msg.X, msg.Y) {
		return m, cmd
	}

	row := clampInt(m.viewport.YOffset+msg.Y, 0, m.buf.LineCount()-1)
	col := m.colAtCell(row, msg.X-m.gutterWidth()+m.xOffset)
	m.buf.SetCursor(buffer.Pos{Row: row, Col: col})
	return m, cmd
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

// colAtCell maps a visual cell on row to the rune column under it. Clicks
// in the gutter land on column 0; clicks past the end land on the line end.
func (m Model) colAtCell(row, cell int) int {
	if cell <= 0 {
		return 0
	}
	col := 0
	visual := 0
	for _, cluster := range grapheme.Split(m.buf.Line(row)) {
		w := grapheme.CellWidth(cluster, visual, m.cfg.TabWidth)
		if cell < visual+w {
			return col
		}
		visual += w
		col += len([]rune(cluster))
	}
	return col
}
