package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() should validate, got %v", err)
	}
	if cfg.Display.TickRate != 60 {
		t.Errorf("expected tick rate 60, got %d", cfg.Display.TickRate)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML should parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded YAML = %+v, expected %+v", cfg, Default())
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "display:\n  tick_rate: 30\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Display.TickRate != 30 {
		t.Errorf("tick rate = %d, expected 30", cfg.Display.TickRate)
	}
	if cfg.Display.CellWidth != 8 {
		t.Errorf("unset keys should keep defaults, cell width = %d", cfg.Display.CellWidth)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, expected debug", cfg.Log.Level)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml"), nil); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("display: [not, a, map"), 0o600)
	if _, err := Load(bad, nil); err == nil {
		t.Error("expected error for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("display:\n  tick_rate: 0\n"), 0o600)
	_, err := Load(invalid, nil)
	if err == nil || !strings.Contains(err.Error(), "tick_rate") {
		t.Errorf("expected tick_rate validation error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"zero cell width", func(c *Config) { c.Display.CellWidth = 0 }, false},
		{"negative cell height", func(c *Config) { c.Display.CellHeight = -1 }, false},
		{"zero base font", func(c *Config) { c.Overlay.BaseFont = 0 }, false},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"upper-case level", func(c *Config) { c.Log.Level = "WARN" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, expected ok=%v", err, tc.ok)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Overlay.Color = "#FFFFFF"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	loaded, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded != cfg {
		t.Errorf("loaded = %+v, expected %+v", loaded, cfg)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandHome("~/.whimsy/sessions.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if got != filepath.Join(home, ".whimsy", "sessions.db") {
		t.Errorf("ExpandHome() = %q", got)
	}

	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path should be unchanged, got %q", got)
	}
}

func TestLoadSkipsInvalidSearchPathFiles(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Invalid user config, valid local config
	userDir := filepath.Join(home, ".whimsy")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	userPath := filepath.Join(userDir, "config.yaml")
	if err := os.WriteFile(userPath, []byte("display:\n  tick_rate: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "whimsy.yaml"), []byte("display:\n  tick_rate: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var skipped []string
	cfg, err := Load("", func(path string, err error) {
		skipped = append(skipped, path)
		if !strings.Contains(err.Error(), "tick_rate") {
			t.Errorf("warning error = %v, want tick_rate mentioned", err)
		}
	})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Display.TickRate != 30 {
		t.Errorf("tick rate = %d, want 30 from ./configs", cfg.Display.TickRate)
	}
	if len(skipped) != 1 || skipped[0] != userPath {
		t.Errorf("skipped = %v, want [%s]", skipped, userPath)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "whimsy.yaml"), []byte("log:\n  level: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	warnings := 0
	cfg, err := Load("", func(string, error) { warnings++ })
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if warnings != 1 {
		t.Errorf("warnings = %d, want 1", warnings)
	}
}
