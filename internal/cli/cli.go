// Package cli implements the printboard command-line interface.
//
// Commands cover the full generation flow: planning a key layout, routing
// the matrix wiring, rendering printable artifacts, serving the HTTP API
// and managing the artifact cache. All commands support --verbose (-v) for
// debug-level logging; loggers travel through context.Context.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/printforge/printboard/pkg/buildinfo"
	"github.com/printforge/printboard/pkg/cache"
	"github.com/printforge/printboard/pkg/config"
	"github.com/printforge/printboard/pkg/errors"
	"github.com/printforge/printboard/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "printboard"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "printboard",
		Short:        "Printboard generates 3D-printable keyboard plates",
		Long:         `Printboard plans keyboard layouts and matrix wiring, then emits printable OpenSCAD models with integrated wire channels.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.routeCommand())
	root.AddCommand(c.partsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using the XDG convention
// (~/.cache/printboard/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// boardFlags is the shared flag set describing the board to plan.
type boardFlags struct {
	preset     string
	name       string
	rows       int
	cols       int
	switchType string
	controller string
}

func (f *boardFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "", "TOML preset file describing the board")
	cmd.Flags().StringVar(&f.name, "name", "custom_keyboard", "board name")
	cmd.Flags().IntVar(&f.rows, "rows", 5, "matrix rows")
	cmd.Flags().IntVar(&f.cols, "cols", 5, "matrix columns")
	cmd.Flags().StringVar(&f.switchType, "switch", "gamdias_lp", "switch type")
	cmd.Flags().StringVar(&f.controller, "controller", "tinys2", "controller type")
}

// config resolves the flags into a validated keyboard config. A preset
// wins over the individual flags.
func (f *boardFlags) config() (config.KeyboardConfig, error) {
	if f.preset != "" {
		cfg, err := config.LoadPreset(f.preset)
		if err != nil {
			return config.KeyboardConfig{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "load preset %s", f.preset)
		}
		return cfg, nil
	}
	return config.Simple(f.name, f.rows, f.cols, f.switchType, f.controller)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSCAD}
	}
	return strings.Split(s, ",")
}
