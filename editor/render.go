package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iw2rmb/flowedit/internal/grapheme"
)

// cell is one drawable unit of a rendered row.
type cell struct {
	text  string
	width int
	style lipgloss.Style
}

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}

	rows := m.buf.LineCount()
	lane := arrowLane(m.deco.arrows, rows)

	visStart, visEnd := 0, rows
	if h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize(); h > 0 {
		visStart = clampInt(m.viewport.YOffset, 0, rows)
		visEnd = min(visStart+h, rows)
	}

	out := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		highlight := row >= visStart && row < visEnd
		out = append(out, m.renderGutter(row, lane)+m.renderLine(row, highlight))
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderLine(row int, highlight bool) string {
	line := m.buf.Line(row)
	lineLen := len([]rune(line))
	cursor := m.buf.Cursor()
	hasCursor := m.focused && cursor.Row == row

	cursorCol := -1
	if hasCursor {
		cursorCol = cursor.Col
	}

	var hl []HighlightSpan
	if highlight && m.cfg.Highlighter != nil {
		spans, err := m.cfg.Highlighter.HighlightLine(LineContext{
			Row:       row,
			Text:      line,
			CursorCol: cursorCol,
			HasCursor: hasCursor,
		})
		if err == nil {
			hl = normalizeHighlightSpans(spans, lineLen)
		}
	}
	marks := normalizeHighlightSpans(m.markSpans(row, lineLen), lineLen)

	var vt VirtualText
	if m.cfg.VirtualTextProvider != nil {
		vt = normalizeVirtualText(m.cfg.VirtualTextProvider(VirtualTextContext{
			Row:        row,
			LineText:   line,
			CursorCol:  cursorCol,
			HasCursor:  hasCursor,
			DocVersion: m.buf.Version(),
		}), lineLen)
	}

	selStart, selEnd := -1, -1
	if sel, ok := m.buf.Selection(); ok && sel.ContainsRow(row) {
		selStart, selEnd = 0, lineLen
		if sel.Start.Row == row {
			selStart = sel.Start.Col
		}
		if sel.End.Row == row {
			selEnd = sel.End.Col
		}
	}

	base := m.cfg.Style.Text
	var cells []cell
	visual := 0
	push := func(text string, style lipgloss.Style) {
		for _, c := range grapheme.Split(text) {
			w := grapheme.CellWidth(c, visual, m.cfg.TabWidth)
			if c == "\t" {
				c = strings.Repeat(" ", w)
			}
			cells = append(cells, cell{text: c, width: w, style: style})
			visual += w
		}
	}

	insIdx := 0
	pushVirtual := func(col int) {
		for insIdx < len(vt.Insertions) && vt.Insertions[insIdx].Col == col {
			in := vt.Insertions[insIdx]
			push(in.Text, m.styleFor(in.StyleKey, m.cfg.Style.VirtualOverlay))
			insIdx++
		}
	}

	col := 0
	for _, cluster := range grapheme.Split(line) {
		pushVirtual(col)
		n := len([]rune(cluster))

		style := base
		if sp, ok := styleAt(hl, col); ok {
			style = sp.Inherit(base)
		}
		if sp, ok := styleAt(marks, col); ok {
			style = sp.Inherit(style)
		}
		if col >= selStart && col < selEnd {
			style = m.cfg.Style.Selection.Inherit(style)
		}
		if cursorCol >= col && cursorCol < col+n {
			style = m.cfg.Style.Cursor.Inherit(style)
		}
		push(cluster, style)
		col += n
	}
	pushVirtual(lineLen)

	if cursorCol >= lineLen {
		push(" ", m.cfg.Style.Cursor.Inherit(base))
	}

	for _, e := range m.deco.widgetsOnRow(row) {
		if len(e.widget.Segments) == 0 {
			continue
		}
		push(" ", base)
		for _, seg := range e.widget.Segments {
			push(seg.Text, m.styleFor(seg.StyleKey, m.cfg.Style.LineWidget))
		}
	}

	return m.clipCells(cells)
}

// clipCells draws the cells visible in [xOffset, xOffset+contentWidth).
// Wide clusters cut by either edge are replaced with spaces.
func (m *Model) clipCells(cells []cell) string {
	left := max(m.xOffset, 0)
	right := -1
	if w := m.contentWidth(); w > 0 {
		right = left + w
	}

	var sb strings.Builder
	visual := 0
	for _, c := range cells {
		start, end := visual, visual+c.width
		visual = end
		if end <= left {
			continue
		}
		if right >= 0 && start >= right {
			break
		}
		if start < left || (right >= 0 && end > right) {
			lo := max(start, left)
			hi := end
			if right >= 0 {
				hi = min(end, right)
			}
			sb.WriteString(c.style.Render(strings.Repeat(" ", hi-lo)))
			continue
		}
		sb.WriteString(c.style.Render(c.text))
	}
	return sb.String()
}

// RowText returns the plain text of row as rendered, without styles or
// gutter. It is intended for tests and screen readers.
func (m Model) RowText(row int) string {
	if m.buf == nil || row < 0 || row >= m.buf.LineCount() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(m.buf.Line(row))
	for _, e := range m.deco.widgetsOnRow(row) {
		if len(e.widget.Segments) == 0 {
			continue
		}
		sb.WriteByte(' ')
		for _, seg := range e.widget.Segments {
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}
