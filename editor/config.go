package editor

import "github.com/charmbracelet/lipgloss"

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// ReadOnly disables all mutating key handling. Hosts can still call SetText.
	ReadOnly bool

	// Rendering options.
	ShowLineNums bool
	TabWidth     int // default: 4
	Style        Style

	// StyleForKey resolves keyed styles used by marks, virtual insertions and
	// line widget segments. Unknown keys fall back to the matching base style.
	StyleForKey func(key string) (lipgloss.Style, bool)

	// KeyMap defaults to DefaultKeyMap when left empty.
	KeyMap    KeyMap
	Clipboard Clipboard

	// Forwarded to buffer.Options.
	HistoryLimit int

	Highlighter         Highlighter
	VirtualTextProvider VirtualTextProvider

	// OnChange is called after every effective text change.
	OnChange func(ChangeEvent)
	// OnCursorMove is called after the cursor position changes.
	OnCursorMove func(CursorEvent)
}

func normalizeConfig(cfg Config) Config {
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = 4
	}
	if len(cfg.KeyMap.Left.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	return cfg
}

func (m Model) styleFor(key string, base lipgloss.Style) lipgloss.Style {
	if key != "" && m.cfg.StyleForKey != nil {
		if keyed, ok := m.cfg.StyleForKey(key); ok {
			return keyed.Inherit(base)
		}
	}
	return base
}
