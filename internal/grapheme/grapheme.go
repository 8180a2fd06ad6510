// Package grapheme provides grapheme-cluster and terminal-cell helpers used
// when rendering view-only text.
package grapheme

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// CellWidth returns the terminal-cell width of one cluster drawn at visualCol.
// Tabs advance to the next multiple of tabWidth.
func CellWidth(cluster string, visualCol, tabWidth int) int {
	if cluster == "\t" {
		if tabWidth <= 0 {
			tabWidth = 4
		}
		return tabWidth - visualCol%tabWidth
	}
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = uniseg.StringWidth(cluster)
	}
	return max(w, 0)
}

// Width returns the terminal-cell width of text drawn from column 0.
func Width(text string, tabWidth int) int {
	w := 0
	for _, c := range Split(text) {
		w += CellWidth(c, w, tabWidth)
	}
	return w
}

// Truncate cuts text to at most cells terminal cells without splitting a
// cluster.
func Truncate(text string, cells int) string {
	if cells <= 0 {
		return ""
	}
	var sb strings.Builder
	used := 0
	for _, c := range Split(text) {
		w := CellWidth(c, used, 0)
		if used+w > cells {
			break
		}
		sb.WriteString(c)
		used += w
	}
	return sb.String()
}
