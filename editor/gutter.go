package editor

import (
	"fmt"
	"strings"
)

// lineNumWidth is the width of the line-number column including its
// trailing space, or 0 when line numbers are hidden.
func (m Model) lineNumWidth() int {
	if !m.cfg.ShowLineNums {
		return 0
	}
	return gutterDigits(m.buf.LineCount()) + 1
}

// laneWidth is 0 while no jump arrows are set.
func (m Model) laneWidth() int {
	if len(m.deco.arrows) == 0 {
		return 0
	}
	return arrowLaneWidth
}

func (m Model) gutterWidth() int { return m.lineNumWidth() + m.laneWidth() }

// contentWidth is the number of cells left for text, or 0 when the width is
// unknown (no clipping).
func (m Model) contentWidth() int {
	if m.viewport.Width <= 0 {
		return 0
	}
	return max(m.viewport.Width-m.gutterWidth(), 1)
}

func gutterDigits(lineCount int) int {
	return len(fmt.Sprintf("%d", max(lineCount, 1)))
}

func (m Model) renderGutter(row int, lane []laneCell) string {
	var sb strings.Builder
	if w := m.lineNumWidth(); w > 0 {
		style := m.cfg.Style.LineNum
		if m.focused && row == m.buf.Cursor().Row {
			style = m.cfg.Style.LineNumActive
		}
		sb.WriteString(style.Render(fmt.Sprintf("%*d ", w-1, row+1)))
	}
	if m.laneWidth() > 0 {
		cell := laneCell{glyph: strings.Repeat(" ", arrowLaneWidth)}
		if row < len(lane) {
			cell = lane[row]
		}
		style := m.cfg.Style.Arrow
		if cell.exceptional {
			style = m.cfg.Style.ArrowExceptional
		}
		sb.WriteString(style.Render(cell.glyph))
	}
	return sb.String()
}
