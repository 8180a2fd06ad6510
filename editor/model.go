package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/flowedit/buffer"
	"github.com/iw2rmb/flowedit/internal/grapheme"
)

// Model is a Bubble Tea component that renders and interacts with a buffer.
type Model struct {
	cfg  Config
	buf  *buffer.Buffer
	deco *decorations

	focused bool

	viewport viewport.Model
	xOffset  int

	lastBufVersion  uint64
	lastTextVersion uint64
	lastCursor      buffer.Pos
	lastDecoVersion uint64
}

func New(cfg Config) Model {
	cfg = normalizeConfig(cfg)
	m := Model{
		cfg:      cfg,
		buf:      buffer.New(cfg.Text, buffer.Options{HistoryLimit: cfg.HistoryLimit}),
		deco:     newDecorations(),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.lastBufVersion = m.buf.Version()
	m.lastTextVersion = m.buf.TextVersion()
	m.lastCursor = m.buf.Cursor()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

func (m Model) Text() string { return m.buf.Text() }

// SetText replaces the whole document. Change callbacks fire with
// buffer.ChangeSourceHost.
func (m Model) SetText(text string) Model {
	m.buf.SetText(text)
	m.sync()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	m.viewport.Width = max(width, 0)
	m.viewport.Height = max(height, 0)
	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Width() int { return m.viewport.Width }

func (m Model) Height() int { return m.viewport.Height }

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	}
	// Hosts may also mutate the buffer or decorations directly.
	m.sync()
	return m, cmd
}

// Refresh re-renders after host-side buffer or decoration changes.
func (m Model) Refresh() Model {
	m.sync()
	return m
}

func (m Model) View() string {
	if m.stale() {
		m.rebuildContent()
	}
	return m.viewport.View()
}

func (m Model) stale() bool {
	return m.buf.Version() != m.lastBufVersion || m.deco.version != m.lastDecoVersion
}

// sync fires change callbacks and re-renders when the buffer or decorations
// moved since the last sync.
func (m *Model) sync() {
	ver := m.buf.Version()
	textVer := m.buf.TextVersion()
	cur := m.buf.Cursor()
	if ver == m.lastBufVersion && m.deco.version == m.lastDecoVersion {
		return
	}

	textChanged := textVer != m.lastTextVersion
	cursorChanged := cur != m.lastCursor
	m.lastBufVersion = ver
	m.lastTextVersion = textVer
	m.lastCursor = cur

	m.rebuildContent()
	if cursorChanged {
		m.followCursor()
	}

	if textChanged && m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.buf))
	}
	if cursorChanged && m.cfg.OnCursorMove != nil {
		m.cfg.OnCursorMove(buildCursorEvent(m.buf))
	}
}

func (m *Model) rebuildContent() {
	m.lastDecoVersion = m.deco.version
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	cur := m.buf.Cursor()
	prevY, prevX := m.viewport.YOffset, m.xOffset

	if h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize(); h > 0 {
		y := m.viewport.YOffset
		switch {
		case cur.Row < y:
			m.viewport.SetYOffset(cur.Row)
		case cur.Row >= y+h:
			m.viewport.SetYOffset(cur.Row - h + 1)
		}
	}

	if w := m.contentWidth(); w > 0 {
		line := []rune(m.buf.Line(cur.Row))
		cell := grapheme.Width(string(line[:min(cur.Col, len(line))]), m.cfg.TabWidth)
		switch {
		case cell < m.xOffset:
			m.xOffset = cell
		case cell >= m.xOffset+w:
			m.xOffset = cell - w + 1
		}
	}

	if m.viewport.YOffset != prevY || m.xOffset != prevX {
		m.rebuildContent()
	}
}
