package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iw2rmb/flowedit/remote"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()
	if cfg.Language != remote.CSharp {
		t.Errorf("expected language C#, got %q", cfg.Language)
	}
	if cfg.ServerOptions.Optimize != remote.OptimizeRelease {
		t.Errorf("expected optimize release, got %q", cfg.ServerOptions.Optimize)
	}
	if cfg.Editor.TabWidth != 4 {
		t.Errorf("expected tab width 4, got %d", cfg.Editor.TabWidth)
	}
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty url", func(c *Config) { c.ServiceURL = "" }, "service_url is required"},
		{"http url", func(c *Config) { c.ServiceURL = "http://x" }, "ws or wss"},
		{"no host", func(c *Config) { c.ServiceURL = "ws:///path" }, "no host"},
		{"language", func(c *Config) { c.Language = "Python" }, "unknown language"},
		{"optimize", func(c *Config) { c.ServerOptions.Optimize = "fast" }, "optimize"},
		{"tab width", func(c *Config) { c.Editor.TabWidth = -1 }, "tab_width"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := defaults()
			tc.mutate(c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Validate()=%v, want error containing %q", err, tc.want)
			}
		})
	}

	cfg.ServiceURL = "wss://svc.example/ws"
	cfg.Language = remote.IL
	if err := cfg.Validate(); err != nil {
		t.Fatalf("wss config should be valid: %v", err)
	}
}

func TestMergeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`log_level: debug
language: fsharp
server_options:
  optimize: debug
  no_cache: true
editor:
  line_numbers: false
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := defaults()
	if err := mergeFile(cfg, path); err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected 'debug', got %q", cfg.LogLevel)
	}
	if cfg.Language != remote.FSharp {
		t.Errorf("expected language F#, got %q", cfg.Language)
	}
	if cfg.ServerOptions.Optimize != remote.OptimizeDebug || !cfg.ServerOptions.NoCache {
		t.Errorf("unexpected server options %+v", cfg.ServerOptions)
	}
	if cfg.ServerOptions.Target != "C#" {
		t.Errorf("expected target kept from defaults, got %q", cfg.ServerOptions.Target)
	}
	if cfg.Editor.LineNumbers || cfg.Editor.TabWidth != 4 {
		t.Errorf("unexpected editor config %+v", cfg.Editor)
	}
}

func TestMergeFileNotExist(t *testing.T) {
	cfg := defaults()
	err := mergeFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil || !os.IsNotExist(err) {
		t.Errorf("expected os.IsNotExist error, got %v", err)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "explicit.yaml")
	if err := os.WriteFile(path, []byte("service_url: wss://explicit/ws\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServiceURL != "wss://explicit/ws" {
		t.Errorf("expected explicit url, got %q", cfg.ServiceURL)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected error for missing explicit file")
	}
}

func TestLoad_ProjectOverridesUser(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	project := t.TempDir()
	chdir(t, project)

	write := func(dir, content string) {
		t.Helper()
		if err := os.MkdirAll(filepath.Join(dir, ".flowedit"), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, ".flowedit", "config.yaml"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write(home, "log_level: warn\nlanguage: vb\n")
	write(project, "log_level: error\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("expected project log level, got %q", cfg.LogLevel)
	}
	if cfg.Language != remote.VisualBasic {
		t.Errorf("expected user language, got %q", cfg.Language)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
