// Package cli implements the dotstitch command-line interface.
//
// This package provides commands for exporting personalized garment designs,
// previewing composed views, inspecting rosters, managing the placement
// store, and serving the engine over HTTP. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - export: Compose and export print-ready rasters per player and view
//   - preview: Render a single composed view for a quick look
//   - roster: List or interactively browse an imported roster
//   - store: Inspect and manage persisted placements
//   - serve: Expose the engine over HTTP
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging via the
// shared CLI logger.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dotstitch/dotstitch/pkg/assets"
	"github.com/dotstitch/dotstitch/pkg/buildinfo"
	"github.com/dotstitch/dotstitch/pkg/composer"
	"github.com/dotstitch/dotstitch/pkg/config"
	"github.com/dotstitch/dotstitch/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "dotstitch"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Dotstitch composes and exports personalized garment designs",
		Long:         `Dotstitch places player names, numbers, custom text, and logo artwork onto multi-view garment templates and produces print-ready raster exports. Placements persist per player and view, so manual adjustments survive view switches and restarts.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to dotstitch.toml")

	// Register all subcommands
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.rosterCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configured project file (or defaults).
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newComposer wires a composer from the project config. The returned
// closer releases the placement store backend.
func (c *CLI) newComposer(ctx context.Context, cfg config.Config) (*composer.Composer, func() error, error) {
	backend, err := cfg.OpenBackend(ctx)
	if err != nil {
		return nil, nil, err
	}
	positions := store.NewPositions(backend)
	comp := composer.New(positions, assets.NewImageLoader(),
		composer.WithTemplates(cfg.Templates),
		composer.WithRatios(cfg.Ratios),
		composer.WithLogger(c.Logger),
	)
	return comp, positions.Close, nil
}
