package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/overkey/internal/input/key"
	"github.com/dshills/overkey/internal/input/obtain"
	"github.com/dshills/overkey/internal/lighter"
)

// LighterConfig selects the status indicator style.
type LighterConfig struct {
	Style  string `toml:"style"`
	Static string `toml:"static"`
}

// ChainsConfig orders the acquisition strategies per bind variant.
type ChainsConfig struct {
	BindCommand []string `toml:"bind_command"`
	BindKmacro  []string `toml:"bind_kmacro"`
	SetKey      []string `toml:"set_key"`
}

// Config is the full configuration surface.
type Config struct {
	// MaxOverlays bounds the overlay pool.
	MaxOverlays int `toml:"max_overlays"`

	// QuitKeys is the global quit shortcut, in canonical key syntax.
	QuitKeys string `toml:"quit_keys"`

	// MacroEndKeys ends nested captures and by-read-key accumulation.
	MacroEndKeys string `toml:"macro_end_keys"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// MacrosPath overrides where recorded macros persist. Empty uses
	// the default under the user config directory.
	MacrosPath string `toml:"macros_path"`

	Lighter LighterConfig `toml:"lighter"`
	Chains  ChainsConfig  `toml:"chains"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		MaxOverlays:  8,
		QuitKeys:     "C-g",
		MacroEndKeys: "C-e",
		LogLevel:     "info",
		Lighter:      LighterConfig{Style: string(lighter.StyleNumber)},
		Chains: ChainsConfig{
			BindCommand: []string{"by-symbol", "by-key-sequence"},
			BindKmacro:  []string{"by-recall-record", "by-recursive-edit", "by-read-key"},
			SetKey:      []string{"by-key-sequence", "by-symbol", "by-recursive-edit", "by-read-key", "by-recall-record"},
		},
	}
}

// Load reads a TOML config file over the defaults. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks key specs, strategy names, the lighter style, and
// the log level.
func (c Config) Validate() error {
	if c.MaxOverlays < 0 {
		return fmt.Errorf("max_overlays must not be negative, got %d", c.MaxOverlays)
	}
	quit, err := key.ParseSequence(c.QuitKeys)
	if err != nil || quit.IsEmpty() {
		return fmt.Errorf("quit_keys %q is not a valid key sequence", c.QuitKeys)
	}
	end, err := key.ParseSequence(c.MacroEndKeys)
	if err != nil || end.IsEmpty() {
		return fmt.Errorf("macro_end_keys %q is not a valid key sequence", c.MacroEndKeys)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: must be debug, info, warn, or error", c.LogLevel)
	}

	if !lighter.ValidStyle(c.Lighter.Style) {
		return fmt.Errorf("lighter style %q is not known", c.Lighter.Style)
	}

	for _, chain := range [][]string{c.Chains.BindCommand, c.Chains.BindKmacro, c.Chains.SetKey} {
		for _, name := range chain {
			if _, err := obtain.Builtin(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// QuitSequence returns the parsed quit shortcut.
func (c Config) QuitSequence() (*key.Sequence, error) {
	return key.ParseSequence(c.QuitKeys)
}

// MacroEndSequence returns the parsed capture completion sequence.
func (c Config) MacroEndSequence() (*key.Sequence, error) {
	return key.ParseSequence(c.MacroEndKeys)
}

// ChainNames returns the configured chains keyed by chain name.
func (c Config) ChainNames() map[string][]string {
	return map[string][]string{
		"bind-command": c.Chains.BindCommand,
		"bind-kmacro":  c.Chains.BindKmacro,
		"set-key":      c.Chains.SetKey,
	}
}
