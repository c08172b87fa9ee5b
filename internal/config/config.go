// Package config loads the board settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"TouchBoard/internal/gesture"
	"TouchBoard/internal/render"
	"TouchBoard/internal/state"
)

// EnvPath overrides the config file location.
const EnvPath = "TOUCHBOARD_CONFIG"

// FileName is the config file looked up in the home directory.
const FileName = ".touchboard.toml"

// Relay configures the remote touch relay.
type Relay struct {
	Enabled   bool `toml:"enabled"`
	Port      int  `toml:"port"`
	Advertise bool `toml:"advertise"`
}

// Config is the decoded config file.
type Config struct {
	LogLevel    string   `toml:"log_level"`
	CurvePolicy string   `toml:"curve_policy"`
	StrokeWidth float64  `toml:"stroke_width"`
	FigureWidth float64  `toml:"figure_width"`
	TouchSlop   float64  `toml:"touch_slop"`
	Background  string   `toml:"background"`
	Palette     []string `toml:"palette"`
	Relay       Relay    `toml:"relay"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		CurvePolicy: "append",
		StrokeWidth: 10,
		FigureWidth: 8,
		TouchSlop:   gesture.DefaultTouchSlop,
		Background:  "white",
		Palette:     []string{"black", "red", "green", "blue", "yellow", "orange", "magenta", "pink"},
		Relay: Relay{
			Enabled:   false,
			Port:      8888,
			Advertise: true,
		},
	}
}

// Path returns the config file path: $TOUCHBOARD_CONFIG if set, otherwise
// ~/.touchboard.toml.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, FileName), nil
}

// Load reads the config file at Path. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile decodes path over the defaults and validates the result.
// A missing file yields the defaults without error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Default(), fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML text over the defaults.
func Decode(text string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(text, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field that can be wrong.
func (c *Config) Validate() error {
	if _, err := c.Policy(); err != nil {
		return err
	}
	if c.StrokeWidth <= 0 || c.FigureWidth <= 0 {
		return fmt.Errorf("stroke widths must be positive")
	}
	if c.TouchSlop < 0 {
		return fmt.Errorf("touch_slop must not be negative")
	}
	if _, err := ParseColor(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("palette is empty")
	}
	if _, err := c.Colors(); err != nil {
		return err
	}
	if c.Relay.Port <= 0 || c.Relay.Port > 65535 {
		return fmt.Errorf("relay port %d out of range", c.Relay.Port)
	}
	return nil
}

// Policy returns the configured curve policy.
func (c *Config) Policy() (gesture.CurvePolicy, error) {
	return gesture.ParseCurvePolicy(c.CurvePolicy)
}

// Colors resolves the palette.
func (c *Config) Colors() ([]Swatch, error) {
	out := make([]Swatch, 0, len(c.Palette))
	for _, name := range c.Palette {
		col, err := ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		out = append(out, Swatch{Name: name, Color: col})
	}
	return out, nil
}

// Style returns the render style described by the config.
func (c *Config) Style() render.Style {
	st := render.DefaultStyle()
	st.StrokeWidth = c.StrokeWidth
	st.FigureWidth = c.FigureWidth
	if bg, err := ParseColor(c.Background); err == nil {
		st.Background = bg
	}
	return st
}

// Swatch is a named palette colour.
type Swatch struct {
	Name  string
	Color state.Color
}
