package binding

import "github.com/charmbracelet/lipgloss"

// Style keys used for decorations. Hosts resolve them through
// editor.Config.StyleForKey.
const (
	StyleKeyHighlight = "highlight"
	StyleKeyNotes     = "flow-notes"
	StyleKeyException = "flow-exception"
)

// StyleForKey resolves the binding's decoration style keys.
func StyleForKey(key string) (lipgloss.Style, bool) {
	switch key {
	case StyleKeyHighlight:
		return lipgloss.NewStyle().Background(lipgloss.Color("24")), true
	case StyleKeyNotes:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("108")).Italic(true), true
	case StyleKeyException:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true), true
	default:
		return lipgloss.Style{}, false
	}
}
