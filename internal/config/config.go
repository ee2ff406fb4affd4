// Package config loads the optional TOML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	appName  = "guit"
	fileName = "config.toml"

	DefaultCommitsLimit   = 20
	DefaultReflogLimit    = 100
	DefaultTickIntervalMS = 250
)

type Config struct {
	General General `toml:"general"`
	Styles  Styles  `toml:"styles"`
}

type General struct {
	CommitsLimit   int    `toml:"commits_limit"`
	ReflogLimit    int    `toml:"reflog_limit"`
	TickIntervalMS int    `toml:"tick_interval_ms"`
	AutoReload     bool   `toml:"auto_reload"`
	Backend        string `toml:"backend"`
	Mode           string `toml:"mode"`
}

// Style describes a text style. Colors are ANSI numbers ("2"), hex values
// ("#00ff00") or basic color names ("green"). Unset styles keep the theme
// defaults.
type Style struct {
	FG        string   `toml:"fg"`
	BG        string   `toml:"bg"`
	Modifiers []string `toml:"modifiers"`
}

type Styles struct {
	Title        *Style `toml:"title_style"`
	Normal       *Style `toml:"normal_style"`
	Highlighted  *Style `toml:"highlighted_style"`
	Error        *Style `toml:"error_style"`
	ActiveBorder *Style `toml:"active_border_style"`
}

func Default() Config {
	return Config{
		General: General{
			CommitsLimit:   DefaultCommitsLimit,
			ReflogLimit:    DefaultReflogLimit,
			TickIntervalMS: DefaultTickIntervalMS,
			AutoReload:     true,
			Backend:        "native",
			Mode:           "auto",
		},
	}
}

func (g General) TickInterval() time.Duration {
	return time.Duration(g.TickIntervalMS) * time.Millisecond
}

// DefaultPath returns $XDG_CONFIG_HOME/guit/config.toml or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, fileName), nil
}

// LoadDefault reads the file at DefaultPath. A missing file yields Default().
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Load reads and validates the file at path. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.General.CommitsLimit <= 0 {
		errs = append(errs, fmt.Errorf("general.commits_limit must be positive, got %d", c.General.CommitsLimit))
	}
	if c.General.ReflogLimit <= 0 {
		errs = append(errs, fmt.Errorf("general.reflog_limit must be positive, got %d", c.General.ReflogLimit))
	}
	if c.General.TickIntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("general.tick_interval_ms must be positive, got %d", c.General.TickIntervalMS))
	}
	switch c.General.Backend {
	case "native", "gitcli":
	default:
		errs = append(errs, fmt.Errorf("general.backend must be native or gitcli, got %q", c.General.Backend))
	}
	switch c.General.Mode {
	case "auto", "light", "dark":
	default:
		errs = append(errs, fmt.Errorf("general.mode must be auto, light or dark, got %q", c.General.Mode))
	}
	for _, ns := range c.Styles.named() {
		if ns.style == nil {
			continue
		}
		for _, mod := range ns.style.Modifiers {
			if !validModifier(mod) {
				errs = append(errs, fmt.Errorf("styles.%s: unknown modifier %q", ns.key, mod))
			}
		}
	}
	return errors.Join(errs...)
}

type namedStyle struct {
	key   string
	style *Style
}

// named lists the styles in file order.
func (s Styles) named() []namedStyle {
	return []namedStyle{
		{"title_style", s.Title},
		{"normal_style", s.Normal},
		{"highlighted_style", s.Highlighted},
		{"error_style", s.Error},
		{"active_border_style", s.ActiveBorder},
	}
}

func validModifier(mod string) bool {
	switch mod {
	case "bold", "italic", "underlined", "reversed":
		return true
	default:
		return false
	}
}
