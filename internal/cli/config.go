package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/screengod/internal/server"
	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/pipeline"
	"github.com/matzehuels/screengod/pkg/window"
)

// Window backends selectable in the config file.
const (
	backendX11    = "x11"
	backendDryRun = "dry-run"
)

// Config is the on-disk configuration (config.toml).
//
//	[screen]
//	x = 0
//	y = 0
//	width = 2560
//	height = 1440
//
//	[log]
//	level = "debug"
//
//	[windows]
//	backend = "x11"
//	concurrency = 4
//	raise = true
//
//	[server]
//	addr = "127.0.0.1:7878"
//
//	[cache]
//	enabled = true
//	ttl = "168h"
type Config struct {
	Screen  ScreenConfig  `toml:"screen"`
	Log     LogConfig     `toml:"log"`
	Windows WindowsConfig `toml:"windows"`
	Server  ServerConfig  `toml:"server"`
	Cache   CacheConfig   `toml:"cache"`
}

// ScreenConfig is the default canvas layouts are resolved on.
type ScreenConfig struct {
	X      int `toml:"x"`
	Y      int `toml:"y"`
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// WindowsConfig controls how windows are moved.
type WindowsConfig struct {
	Backend     string `toml:"backend"`
	Concurrency int    `toml:"concurrency"`
	Raise       *bool  `toml:"raise"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig controls the rendered artifact cache.
type CacheConfig struct {
	Enabled *bool  `toml:"enabled"`
	TTL     string `toml:"ttl"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Screen:  ScreenConfig{Width: pipeline.DefaultWidth, Height: pipeline.DefaultHeight},
		Log:     LogConfig{Level: "info"},
		Windows: WindowsConfig{Backend: backendX11, Concurrency: window.DefaultConcurrency},
		Server:  ServerConfig{Addr: server.DefaultAddr},
		Cache:   CacheConfig{TTL: "168h"},
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("config: screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Windows.Backend {
	case backendX11, backendDryRun:
	default:
		return fmt.Errorf("config: unknown windows backend %q (must be one of: x11, dry-run)", c.Windows.Backend)
	}
	if c.Windows.Concurrency < 0 {
		return fmt.Errorf("config: windows concurrency must not be negative")
	}
	if _, err := c.CacheTTL(); err != nil {
		return fmt.Errorf("config: cache ttl: %w", err)
	}
	return nil
}

// ScreenRect returns the configured canvas.
func (c Config) ScreenRect() composite.Rect {
	return composite.Rect{X: c.Screen.X, Y: c.Screen.Y, Width: c.Screen.Width, Height: c.Screen.Height}
}

// LogLevel returns the configured level, falling back to info.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// CacheEnabled reports whether rendered artifacts are cached. Defaults to true.
func (c Config) CacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}

// CacheTTL returns how long cached artifacts live. Empty means forever.
func (c Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative, got %s", c.Cache.TTL)
	}
	return d, nil
}

// RaiseWindows reports whether moved windows should be raised. Defaults to true.
func (c Config) RaiseWindows() bool {
	return c.Windows.Raise == nil || *c.Windows.Raise
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/screengod/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// defaultConfigPath returns config.toml inside configDir, or "" when no
// home directory can be determined.
func defaultConfigPath() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// cacheDir returns the artifact cache directory, honoring XDG_CACHE_HOME.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}
