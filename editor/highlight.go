package editor

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type HighlightSpan struct {
	// StartCol and EndCol are rune indices in the line text, half-open
	// [StartCol, EndCol).
	StartCol int
	EndCol   int
	Style    lipgloss.Style
}

type LineContext struct {
	Row  int
	Text string

	// CursorCol is the rune index within Text if the cursor is on this row;
	// otherwise -1.
	CursorCol int
	HasCursor bool
}

// Highlighter styles one line at a time. It is called only for rows inside
// the viewport. Errors fall back to plain text for that line.
type Highlighter interface {
	HighlightLine(ctx LineContext) ([]HighlightSpan, error)
}

// HighlighterFunc adapts a function to Highlighter.
type HighlighterFunc func(ctx LineContext) ([]HighlightSpan, error)

func (f HighlighterFunc) HighlightLine(ctx LineContext) ([]HighlightSpan, error) { return f(ctx) }

// normalizeHighlightSpans clamps spans to the line and drops empty ones.
// Earlier spans win where spans overlap.
func normalizeHighlightSpans(spans []HighlightSpan, lineLen int) []HighlightSpan {
	if len(spans) == 0 {
		return nil
	}
	lineLen = max(lineLen, 0)

	out := make([]HighlightSpan, 0, len(spans))
	for _, sp := range spans {
		start := clampInt(sp.StartCol, 0, lineLen)
		end := clampInt(sp.EndCol, 0, lineLen)
		if end < start {
			start, end = end, start
		}
		if start == end {
			continue
		}
		out = append(out, HighlightSpan{StartCol: start, EndCol: end, Style: sp.Style})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartCol < out[j].StartCol })
	return out
}

// styleAt returns the first span covering col.
func styleAt(spans []HighlightSpan, col int) (lipgloss.Style, bool) {
	for _, sp := range spans {
		if col >= sp.StartCol && col < sp.EndCol {
			return sp.Style, true
		}
	}
	return lipgloss.Style{}, false
}
