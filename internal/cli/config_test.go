package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/screengod/pkg/composite"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[screen]
x = 1920
width = 2560
height = 1440

[log]
level = "debug"

[windows]
backend = "dry-run"
concurrency = 2
raise = false

[server]
addr = ":9000"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if cfg.ScreenRect() != (composite.Rect{X: 1920, Width: 2560, Height: 1440}) {
		t.Errorf("screen = %v", cfg.ScreenRect())
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("level = %v", cfg.LogLevel())
	}
	if cfg.Windows.Backend != backendDryRun || cfg.Windows.Concurrency != 2 || cfg.RaiseWindows() {
		t.Errorf("windows = %+v", cfg.Windows)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	for name, path := range map[string]string{
		"empty path":   "",
		"missing file": filepath.Join(t.TempDir(), "nope.toml"),
	} {
		t.Run(name, func(t *testing.T) {
			cfg, err := loadConfig(path)
			if err != nil {
				t.Fatalf("loadConfig error: %v", err)
			}
			if cfg != defaultConfig() {
				t.Errorf("cfg = %+v", cfg)
			}
			if !cfg.RaiseWindows() || cfg.LogLevel() != log.InfoLevel {
				t.Errorf("defaults: raise=%v level=%v", cfg.RaiseWindows(), cfg.LogLevel())
			}
		})
	}

	// Partial files keep the defaults for everything they omit.
	cfg, err := loadConfig(writeConfig(t, "[log]\nlevel = \"warn\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Screen.Width != 1920 || cfg.Windows.Backend != backendX11 {
		t.Errorf("partial config lost defaults: %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]struct {
		body string
		want string
	}{
		"syntax":        {body: "[screen\nwidth = 1", want: "load config"},
		"unknown key":   {body: "[screen]\ndepth = 3\n", want: "unknown keys: screen.depth"},
		"zero width":    {body: "[screen]\nwidth = 0\n", want: "screen size must be positive"},
		"bad level":     {body: "[log]\nlevel = \"loud\"\n", want: "config:"},
		"bad backend":   {body: "[windows]\nbackend = \"wayland\"\n", want: "unknown windows backend"},
		"negative conc": {body: "[windows]\nconcurrency = -1\n", want: "concurrency"},
		"bad ttl":       {body: "[cache]\nttl = \"soon\"\n", want: "cache ttl"},
		"negative ttl":  {body: "[cache]\nttl = \"-1h\"\n", want: "must not be negative"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %v, want containing %q", err, tc.want)
			}
		})
	}
}

func TestCacheConfig(t *testing.T) {
	cfg := defaultConfig()
	if !cfg.CacheEnabled() {
		t.Error("cache disabled by default")
	}
	if ttl, err := cfg.CacheTTL(); err != nil || ttl != 168*time.Hour {
		t.Errorf("default ttl = %v, %v", ttl, err)
	}

	cfg, err := loadConfig(writeConfig(t, "[cache]\nenabled = false\nttl = \"\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CacheEnabled() {
		t.Error("enabled = false ignored")
	}
	if ttl, _ := cfg.CacheTTL(); ttl != 0 {
		t.Errorf("empty ttl = %v, want 0", ttl)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	if dir, _ := cacheDir(); dir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("cacheDir() = %q", dir)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := configDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("configDir() = %q", dir)
	}
	if got := defaultConfigPath(); got != filepath.Join("/tmp/xdg", appName, "config.toml") {
		t.Errorf("defaultConfigPath() = %q", got)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	dir, err = configDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join(".config", appName)) {
		t.Errorf("configDir() without XDG = %q", dir)
	}
}
