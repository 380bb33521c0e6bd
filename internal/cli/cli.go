// Package cli implements the screengod command-line interface.
//
// # Commands
//
//   - place: resolve a layout expression and optionally move windows into it
//   - preview: show a resolved layout interactively in the terminal
//   - diagram: draw a layout tree or its rectangles to a file
//   - windows: list open windows
//   - serve: run the HTTP API
//   - cache: inspect or clear the rendered diagram cache
//   - completion: generate shell completions
//
// # Configuration
//
// Defaults come from $XDG_CONFIG_HOME/screengod/config.toml (or the file
// named by --config); flags override them. A missing file is not an error.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/screengod/pkg/buildinfo"
	"github.com/matzehuels/screengod/pkg/pipeline"
	"github.com/matzehuels/screengod/pkg/window"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "screengod"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// LoadConfig reads the config file named by --config, or the default
// location, and applies its log level.
func (c *CLI) LoadConfig() error {
	path := c.configPath
	if path == "" {
		path = defaultConfigPath()
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.SetLogLevel(cfg.LogLevel())
	c.Logger.Debug("loaded config", "path", path, "screen", cfg.ScreenRect(), "backend", cfg.Windows.Backend)
	return nil
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Screengod tiles windows into layouts built from nested rows and columns",
		Long: `Screengod resolves layout expressions such as "h(editor=60%, v@40%(term, logs))"
into screen rectangles and moves windows into them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.LoadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/screengod/config.toml)")

	// Register all subcommands
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.windowsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// newManager returns the configured window manager.
//
// A dry run still queries X11 when wmctrl and xdotool are installed, so
// selectors resolve against real windows, but moves and closes are only
// logged. Without the tools it falls back to an empty in-memory manager.
func (c *CLI) newManager(dryRun bool) (window.Manager, error) {
	dryRun = dryRun || c.Config.Windows.Backend == backendDryRun
	x := window.NewX11(window.WithRaise(c.Config.RaiseWindows()))
	err := x.Check()
	switch {
	case dryRun && err != nil:
		c.Logger.Debug("window tools unavailable, dry run uses an empty window table", "err", err)
		return window.NewDryRun(nil, c.Logger), nil
	case dryRun:
		return window.NewDryRun(x, c.Logger), nil
	case err != nil:
		return nil, err
	}
	return x, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(mgr window.Manager) *pipeline.Runner {
	r := pipeline.NewRunner(mgr, c.Logger)
	if c.Config.Windows.Concurrency > 0 {
		r.Concurrency = c.Config.Windows.Concurrency
	}
	return r
}
