package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iw2rmb/flowedit/binding"
	"github.com/iw2rmb/flowedit/internal/config"
	"github.com/iw2rmb/flowedit/internal/log"
	"github.com/iw2rmb/flowedit/remote"
)

var (
	openURL       string
	openLanguage  string
	openOptimize  string
	openTarget    string
	openNoCache   bool
	openCached    bool
	openFlow      string
	openHighlight string
	openLogFile   string
)

var openCmd = &cobra.Command{
	Use:   "open [file]",
	Short: "Edit a file against the execution service",
	Long: `Open a file in the terminal editor. Edits are sent to the configured
service; diagnostics and connection state show in the status line.

With --flow, the recorded execution trace is drawn over the code: jump
arrows in the gutter and notes or exceptions at the end of lines.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runOpen,
}

func init() {
	f := openCmd.Flags()
	f.StringVar(&openURL, "url", "", "Service WebSocket URL (overrides config)")
	f.StringVar(&openLanguage, "language", "", "Language: csharp, vb, fsharp or il")
	f.StringVar(&openOptimize, "optimize", "", "Server optimization: release or debug")
	f.StringVar(&openTarget, "target", "", "Server target")
	f.BoolVar(&openNoCache, "no-cache", false, "Ask the server to bypass its cache")
	f.BoolVar(&openCached, "cached", false, "Connect only after the first edit")
	f.StringVar(&openFlow, "flow", "", "Execution trace (JSON) to draw over the code")
	f.StringVar(&openHighlight, "highlight", "", "Highlight a range of rune offsets, as start:end")
	f.StringVar(&openLogFile, "log-file", "", "Write logs to this file")
}

func runOpen(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("open needs an interactive terminal")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := applyOpenFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	closeLog, err := initFileLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := appOptions{Config: cfg, Clipboard: systemClipboard{}}
	if len(args) == 1 {
		opts.Path = args[0]
		data, err := os.ReadFile(opts.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Info("new file", "path", opts.Path)
		case err != nil:
			return fmt.Errorf("reading %s: %w", opts.Path, err)
		default:
			opts.Text = string(data)
		}
	}
	if openFlow != "" {
		if opts.Steps, err = loadTrace(openFlow); err != nil {
			return err
		}
	}
	if openHighlight != "" {
		if opts.Highlight, err = parseHighlight(openHighlight); err != nil {
			return err
		}
	}

	log.Info("starting editor", "url", cfg.ServiceURL, "language", cfg.Language, "cached", cfg.Cached)
	p := tea.NewProgram(newApp(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func applyOpenFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("url") {
		cfg.ServiceURL = openURL
	}
	if f.Changed("language") {
		l, err := remote.ParseLanguage(openLanguage)
		if err != nil {
			return err
		}
		cfg.Language = l
	}
	if f.Changed("optimize") {
		cfg.ServerOptions.Optimize = openOptimize
	}
	if f.Changed("target") {
		cfg.ServerOptions.Target = openTarget
	}
	if f.Changed("no-cache") {
		cfg.ServerOptions.NoCache = openNoCache
	}
	if f.Changed("cached") {
		cfg.Cached = openCached
	}
	if f.Changed("log-file") {
		cfg.LogFile = openLogFile
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return nil
}

// initFileLog points logging at cfg.LogFile, or discards it. The terminal
// belongs to the editor.
func initFileLog(cfg *config.Config) (func(), error) {
	if cfg.LogFile == "" {
		log.Init(cfg.LogLevel, io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.Init(cfg.LogLevel, f)
	return func() { f.Close() }, nil
}

func parseHighlight(s string) (*binding.HighlightRange, error) {
	from, to, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("highlight %q: want start:end", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return nil, fmt.Errorf("highlight start: %w", err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return nil, fmt.Errorf("highlight end: %w", err)
	}
	if start < 0 || end < start {
		return nil, fmt.Errorf("highlight %q: want 0 <= start <= end", s)
	}
	return &binding.HighlightRange{Start: binding.AtOffset(start), End: binding.AtOffset(end)}, nil
}

