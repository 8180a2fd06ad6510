package editor

import (
	"sort"
	"strings"
)

// VirtualInsertion inserts view-only text at a rune column within a single
// logical line.
type VirtualInsertion struct {
	Col      int
	Text     string
	StyleKey string
}

type VirtualText struct {
	Insertions []VirtualInsertion
}

type VirtualTextContext struct {
	Row      int
	LineText string

	CursorCol int // rune index in the line
	HasCursor bool

	// Useful for caching.
	DocVersion uint64
}

type VirtualTextProvider func(ctx VirtualTextContext) VirtualText

func normalizeVirtualText(vt VirtualText, lineLen int) VirtualText {
	if len(vt.Insertions) == 0 {
		return vt
	}
	lineLen = max(lineLen, 0)

	ins := make([]VirtualInsertion, 0, len(vt.Insertions))
	for _, in := range vt.Insertions {
		text := sanitizeSingleLine(in.Text)
		if text == "" {
			continue
		}
		ins = append(ins, VirtualInsertion{Col: clampInt(in.Col, 0, lineLen), Text: text, StyleKey: in.StyleKey})
	}
	sort.SliceStable(ins, func(i, j int) bool { return ins[i].Col < ins[j].Col })
	vt.Insertions = ins
	return vt
}

// sanitizeSingleLine drops line breaks; view-only text is always one line.
func sanitizeSingleLine(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", "")
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
