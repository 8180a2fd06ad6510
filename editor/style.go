package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	// Mark is the base style for text marks.
	Mark lipgloss.Style
	// VirtualOverlay is the base style for virtual insertions.
	VirtualOverlay lipgloss.Style
	// LineWidget is the base style for line-end widget segments.
	LineWidget lipgloss.Style

	Arrow            lipgloss.Style
	ArrowExceptional lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:           gutter,
		LineNum:          gutter,
		LineNumActive:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:             lipgloss.NewStyle(),
		Selection:        lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:           lipgloss.NewStyle().Reverse(true),
		Mark:             lipgloss.NewStyle().Background(lipgloss.Color("58")),
		VirtualOverlay:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		LineWidget:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Arrow:            lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		ArrowExceptional: lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
	}
}
