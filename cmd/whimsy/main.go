// whimsy bounces colored discs around the terminal.
//
// Usage:
//
//	whimsy                   - Run the demo (same as "whimsy run")
//	whimsy run               - Run the demo
//	whimsy simulate          - Step the demo headless with a synthetic clock
//	whimsy history           - Show recorded sessions
//	whimsy config            - Print or write the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set frame rate (default: from config, 60)
//	--seed <value>       - Set RNG seed for a reproducible field
//	--db <path>          - Set database path (default: ~/.whimsy/sessions.db)
//	--config <path>      - Use a custom config YAML
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/whimsy/internal/config"
	"github.com/vovakirdan/whimsy/internal/core"
	"github.com/vovakirdan/whimsy/internal/loop"
	"github.com/vovakirdan/whimsy/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "whimsy",
	Short: "Whimsy - bouncing discs in your terminal",
	Long: `Whimsy animates a field of colored discs bouncing off the edges of
your terminal. Click a disc to give it a new color; resize the window
to get a new field.

Available commands:
  run       - Run the demo (default)
  simulate  - Step the demo headless and report what happened
  history   - Show recorded sessions and their frame rates
  config    - Print or write the effective configuration

Examples:
  whimsy
  whimsy --seed 42 --fps 30
  whimsy simulate --frames 600 --interval 16
  whimsy history --limit 10`,
	SilenceUsage: true,
	RunE:         runDemo,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to sessions database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings loads the config file and applies flag overrides.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig, func(path string, err error) {
		log.Warn("ignoring config file", "path", path, "err", err)
	})
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Display.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// runtimeConfig builds the demo settings for a screen of cols x rows cells.
func runtimeConfig(cfg config.Config, cols, rows int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:    cols,
		ScreenH:    rows,
		TickRate:   cfg.Display.TickRate,
		Seed:       flagSeed,
		CellWidth:  cfg.Display.CellWidth,
		CellHeight: cfg.Display.CellHeight,
	}
}

// overlayStyle converts the overlay section into the loop's style.
func overlayStyle(cfg config.Config) loop.OverlayStyle {
	return loop.OverlayStyle{
		BaseFont: cfg.Overlay.BaseFont,
		Family:   cfg.Overlay.FontFamily,
		Color:    core.Color(cfg.Overlay.Color).Normalize(),
	}
}

// newLogger creates a logger writing to w at the given level.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "whimsy",
		Level:           lvl,
	}), nil
}

// openStore opens the sessions database named by the config.
func openStore(cfg config.Config) (*storage.Store, error) {
	path, err := config.ExpandHome(cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	return storage.Open(path)
}

// openLogFile opens the log file for appending, creating parent dirs.
func openLogFile(path string) (*os.File, error) {
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}
