// Package config loads the viewer settings from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// ReloadPolicy decides what a load into a live viewer does to the view.
type ReloadPolicy string

const (
	// ReloadPreserve resets the view only while it was never set, so a
	// replacement image keeps the current pan and zoom.
	ReloadPreserve ReloadPolicy = "preserve"
	// ReloadReset resets the view on every load.
	ReloadReset ReloadPolicy = "reset"
)

var ErrInvalidPolicy = errors.New("invalid reload policy")

// ParseReloadPolicy accepts "preserve" or "reset"; empty means preserve.
func ParseReloadPolicy(s string) (ReloadPolicy, error) {
	switch ReloadPolicy(strings.ToLower(s)) {
	case "", ReloadPreserve:
		return ReloadPreserve, nil
	case ReloadReset:
		return ReloadReset, nil
	}
	return ReloadPreserve, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

type ViewConfig struct {
	ZoomStep float64      `yaml:"zoom_step"`
	Reload   ReloadPolicy `yaml:"reload"`
	Filter   string       `yaml:"filter"`
	// PixelGrid outlines image pixels when zoomed in far enough.
	PixelGrid bool `yaml:"pixel_grid"`
}

type OverlayConfig struct {
	Visible  bool    `yaml:"visible"`
	Font     string  `yaml:"font"`
	FontSize float64 `yaml:"font_size"`
}

type ScreenshotConfig struct {
	Format string `yaml:"format"`
	Dir    string `yaml:"dir"`
}

// Config is the complete settings file.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	View       ViewConfig       `yaml:"view"`
	Overlay    OverlayConfig    `yaml:"overlay"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Script     string           `yaml:"script"`
	Watch      bool             `yaml:"watch"`
	LogLevel   string           `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:     1024,
			Height:    768,
			Title:     "Image Player",
			Resizable: true,
		},
		View: ViewConfig{
			ZoomStep:  0.1,
			Reload:    ReloadPreserve,
			Filter:    "auto",
			PixelGrid: true,
		},
		Overlay: OverlayConfig{
			Visible:  true,
			FontSize: 16,
		},
		Screenshot: ScreenshotConfig{
			Format: "png",
			Dir:    ".",
		},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("expanding %s: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file, using defaults", "path", expanded)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", expanded, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", expanded, err)
	}
	return cfg, nil
}

// Validate normalizes the settings and rejects unusable values.
func (c *Config) Validate() error {
	policy, err := ParseReloadPolicy(string(c.View.Reload))
	if err != nil {
		return err
	}
	c.View.Reload = policy
	if c.View.ZoomStep <= 0 || c.View.ZoomStep >= 1 {
		return fmt.Errorf("zoom_step must be in (0, 1), got %g", c.View.ZoomStep)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Screenshot.Format {
	case "png", "webp":
	default:
		return fmt.Errorf("screenshot format must be png or webp, got %q", c.Screenshot.Format)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	for _, p := range []*string{&c.Overlay.Font, &c.Script, &c.Screenshot.Dir} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// Save writes cfg to filename.
func Save(cfg Config, filename string) error {
	expanded, err := homedir.Expand(filename)
	if err != nil {
		return err
	}
	f, err := os.Create(expanded)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&cfg); err != nil {
		return err
	}
	return enc.Close()
}
