package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxOverlays != 8 || cfg.QuitKeys != "C-g" {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overkey.toml")
	data := `
max_overlays = 4
quit_keys = "Esc"
log_level = "debug"

[lighter]
style = "tag"

[chains]
set_key = ["by-symbol"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxOverlays != 4 {
		t.Errorf("MaxOverlays = %d, want 4", cfg.MaxOverlays)
	}
	if cfg.QuitKeys != "Esc" {
		t.Errorf("QuitKeys = %q, want Esc", cfg.QuitKeys)
	}
	if cfg.Lighter.Style != "tag" {
		t.Errorf("Lighter.Style = %q, want tag", cfg.Lighter.Style)
	}
	if len(cfg.Chains.SetKey) != 1 || cfg.Chains.SetKey[0] != "by-symbol" {
		t.Errorf("Chains.SetKey = %v, want [by-symbol]", cfg.Chains.SetKey)
	}
	// Untouched sections keep their defaults.
	if cfg.MacroEndKeys != "C-e" {
		t.Errorf("MacroEndKeys = %q, want default C-e", cfg.MacroEndKeys)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad quit keys", func(c *Config) { c.QuitKeys = "" }},
		{"bad macro end keys", func(c *Config) { c.MacroEndKeys = "<C-" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad lighter style", func(c *Config) { c.Lighter.Style = "sparkly" }},
		{"bad strategy", func(c *Config) { c.Chains.SetKey = []string{"by-guessing"} }},
		{"negative overlays", func(c *Config) { c.MaxOverlays = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestQuitSequenceParses(t *testing.T) {
	cfg := DefaultConfig()
	seq, err := cfg.QuitSequence()
	if err != nil {
		t.Fatalf("QuitSequence() error = %v", err)
	}
	if seq.Describe() != "C-g" {
		t.Errorf("QuitSequence() = %q, want C-g", seq.Describe())
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overkey.toml")
	if err := os.WriteFile(path, []byte("max_overlays = 8\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	reloaded := make(chan Config, 1)
	w, err := Watch(path, func(cfg Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}, nil)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("max_overlays = 3\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.MaxOverlays != 3 {
			t.Errorf("reloaded MaxOverlays = %d, want 3", cfg.MaxOverlays)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
