package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/flowedit/binding"
	"github.com/iw2rmb/flowedit/editor"
	"github.com/iw2rmb/flowedit/flow"
	"github.com/iw2rmb/flowedit/internal/config"
	"github.com/iw2rmb/flowedit/internal/log"
	"github.com/iw2rmb/flowedit/remote"
	"github.com/iw2rmb/flowedit/widget"
)

type appKeys struct {
	Save     key.Binding
	Flow     key.Binding
	Language key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultAppKeys() appKeys {
	return appKeys{
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Flow:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "toggle flow")),
		Language: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "next language")),
		Help:     key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

func (k appKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Help, k.Quit}
}

func (k appKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Save, k.Flow, k.Language}, {k.Help, k.Quit}}
}

var _ help.KeyMap = appKeys{}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Background(lipgloss.Color("236"))
)

// app is the interactive editor: one binding plus a status line.
type app struct {
	path  string
	saved string

	binding *binding.Binding
	surface *widget.Surface
	steps   []flow.Step
	showing bool

	keys    appKeys
	help    help.Model
	spinner spinner.Model
	ticking bool

	waiting     bool
	state       remote.ConnectionState
	diagnostics int
	cursor      int
	dirty       bool
	message     string
	failed      bool
	detached    bool

	width   int
	height  int
	initCmd tea.Cmd
}

type appOptions struct {
	Path      string
	Text      string
	Config    *config.Config
	Steps     []flow.Step
	Highlight *binding.HighlightRange
	Clipboard editor.Clipboard
	Binding   binding.Options
}

func newApp(opts appOptions) *app {
	cfg := opts.Config
	a := &app{
		path:    opts.Path,
		saved:   opts.Text,
		steps:   opts.Steps,
		showing: true,
		keys:    defaultAppKeys(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		state:   remote.StateClosed,
	}
	a.surface = widget.NewSurface(editor.Config{
		ShowLineNums: cfg.Editor.LineNumbers,
		TabWidth:     cfg.Editor.TabWidth,
		HistoryLimit: cfg.Editor.HistoryLimit,
		Style:        editor.DefaultStyle(),
		StyleForKey:  binding.StyleForKey,
		Clipboard:    opts.Clipboard,
	})
	a.surface.Focus()

	a.binding, a.initCmd = binding.New(a.surface, a, binding.Props{
		InitialText:      opts.Text,
		InitialCached:    cfg.Cached,
		ServiceURL:       cfg.ServiceURL,
		Language:         cfg.Language,
		ServerOptions:    cfg.ServerOptions,
		HighlightedRange: opts.Highlight,
		ExecutionFlow:    opts.Steps,
	}, a.handlers(), opts.Binding)
	return a
}

func (a *app) handlers() binding.Handlers {
	return binding.Handlers{
		SlowUpdateWait: func() { a.waiting = true },
		SlowUpdateResult: func(u remote.SlowUpdate) {
			a.waiting = false
			a.diagnostics = len(u.Diagnostics)
		},
		ConnectionChange: func(s remote.ConnectionState) {
			a.state = s
			if s != remote.StateOpen {
				a.waiting = false
			}
		},
		TextChange: func(text func() string) {
			a.dirty = text() != a.saved
		},
		ServerError: func(msg string) {
			log.Warn("service error", "message", msg)
			a.setMessage(msg, true)
		},
		CursorMove: func(offset func() int) { a.cursor = offset() },
	}
}

// Detach implements binding.Host.
func (a *app) Detach(*widget.Surface) { a.detached = true }

func (a *app) setMessage(msg string, failed bool) {
	a.message, a.failed = msg, failed
}

func (a *app) Init() tea.Cmd { return a.initCmd }

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		a.layout()
		return a, nil

	case spinner.TickMsg:
		if !a.waiting {
			a.ticking = false
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.binding.Destroy()
			return a, tea.Quit
		case key.Matches(msg, a.keys.Save):
			a.save()
			return a, nil
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			a.layout()
			return a, nil
		case key.Matches(msg, a.keys.Flow):
			a.toggleFlow()
			return a, nil
		case key.Matches(msg, a.keys.Language):
			return a, a.tick(a.binding.SetLanguage(nextLanguage(a.binding.Props().Language)))
		}
	}
	return a, a.tick(a.binding.Update(msg))
}

// layout gives the editor whatever the status line and help leave over.
func (a *app) layout() {
	if a.width == 0 {
		return
	}
	reserved := 1
	if a.help.ShowAll {
		reserved += lipgloss.Height(a.help.View(a.keys))
	}
	a.surface.SetSize(a.width, max(a.height-reserved, 1))
}

// tick starts the spinner once a slow update is pending.
func (a *app) tick(cmd tea.Cmd) tea.Cmd {
	if !a.waiting || a.ticking {
		return cmd
	}
	a.ticking = true
	return tea.Batch(cmd, a.spinner.Tick)
}

func (a *app) save() {
	if a.path == "" {
		a.setMessage("no file to save to", true)
		return
	}
	text := a.binding.Widget().Text()
	if err := os.WriteFile(a.path, []byte(text), 0o644); err != nil {
		log.Error("save failed", "path", a.path, "error", err)
		a.setMessage(fmt.Sprintf("save: %v", err), true)
		return
	}
	a.saved = text
	a.dirty = false
	a.setMessage("saved "+a.path, false)
}

func (a *app) toggleFlow() {
	a.showing = !a.showing
	if a.showing {
		a.binding.SetExecutionFlow(a.steps)
		return
	}
	a.binding.SetExecutionFlow(nil)
}

func nextLanguage(l remote.Language) remote.Language {
	all := remote.Languages()
	for i, candidate := range all {
		if candidate == l {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func (a *app) View() string {
	if a.detached {
		return ""
	}
	return a.binding.View() + "\n" + a.statusLine()
}

func (a *app) statusLine() string {
	var parts []string
	if a.waiting {
		parts = append(parts, a.spinner.View()+"analyzing")
	}
	name := a.path
	if name == "" {
		name = "[scratch]"
	}
	if a.dirty {
		name += " *"
	}
	parts = append(parts, name, string(a.binding.Props().Language), a.state.String())
	if a.diagnostics > 0 {
		parts = append(parts, fmt.Sprintf("%d diagnostics", a.diagnostics))
	}
	parts = append(parts, fmt.Sprintf("@%d", a.cursor))

	line := statusStyle.Render(" " + strings.Join(parts, " · ") + " ")
	if a.message != "" {
		style := statusStyle
		if a.failed {
			style = errorStyle
		}
		line += style.Render(" " + a.message + " ")
	}
	if a.help.ShowAll {
		return line + "\n" + a.help.View(a.keys)
	}
	return line + " " + a.help.View(a.keys)
}
