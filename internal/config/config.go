package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/flowedit/remote"
)

// Config is the top-level configuration structure.
type Config struct {
	ServiceURL    string               `yaml:"service_url"`
	Language      remote.Language      `yaml:"language"`
	ServerOptions remote.ServerOptions `yaml:"server_options"`
	// Cached defers connecting until the first edit.
	Cached   bool         `yaml:"cached"`
	Editor   EditorConfig `yaml:"editor"`
	LogLevel string       `yaml:"log_level"`
	LogFile  string       `yaml:"log_file"`
}

type EditorConfig struct {
	TabWidth     int  `yaml:"tab_width"`
	LineNumbers  bool `yaml:"line_numbers"`
	HistoryLimit int  `yaml:"history_limit"`
}

// Validate checks that required fields are present and well-formed.
func (c *Config) Validate() error {
	if c.ServiceURL == "" {
		return fmt.Errorf("service_url is required")
	}
	u, err := url.Parse(c.ServiceURL)
	if err != nil {
		return fmt.Errorf("service_url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("service_url must use ws or wss, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("service_url has no host")
	}
	if _, err := remote.ParseLanguage(string(c.Language)); err != nil {
		return fmt.Errorf("language: %w", err)
	}
	switch c.ServerOptions.Optimize {
	case remote.OptimizeRelease, remote.OptimizeDebug:
	default:
		return fmt.Errorf("server_options.optimize must be %q or %q, got %q",
			remote.OptimizeRelease, remote.OptimizeDebug, c.ServerOptions.Optimize)
	}
	if c.Editor.TabWidth < 0 {
		return fmt.Errorf("editor.tab_width must not be negative")
	}
	return nil
}

// Load resolves config from defaults → user → project → explicit file.
// An explicit path that does not exist is an error.
func Load(explicit string) (*Config, error) {
	cfg := defaults()

	// user-level config
	home, err := os.UserHomeDir()
	if err == nil {
		userPath := filepath.Join(home, ".flowedit", "config.yaml")
		if err := mergeFile(cfg, userPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	// project-level config
	projectPath := filepath.Join(".flowedit", "config.yaml")
	if err := mergeFile(cfg, projectPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if explicit != "" {
		if err := mergeFile(cfg, explicit); err != nil {
			return nil, fmt.Errorf("loading %s: %w", explicit, err)
		}
	}

	return cfg, nil
}

func mergeFile(dst *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return err
	}
	// Short ids ("csharp") are stored as display names.
	if l, err := remote.ParseLanguage(string(dst.Language)); err == nil {
		dst.Language = l
	}
	return nil
}

func defaults() *Config {
	return &Config{
		ServiceURL:    "ws://localhost:5000/mirrorsharp",
		Language:      remote.CSharp,
		ServerOptions: remote.DefaultServerOptions(),
		Editor: EditorConfig{
			TabWidth:     4,
			LineNumbers:  true,
			HistoryLimit: 1000,
		},
		LogLevel: "info",
	}
}
