package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/whimsy/internal/loop"
	"github.com/vovakirdan/whimsy/internal/platform/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demo",
	Long: `Start the bouncing discs demo in the current terminal.

Controls:
  Left click  - Recolor the discs under the pointer
  R           - Reshuffle the field
  Ctrl+S      - Save a plain-text screenshot
  ?           - Toggle help
  Q/Ctrl+C    - Quit

Logs are written to the file named by log.file in the config
(default ~/.whimsy/whimsy.log) because the demo owns the screen.

Examples:
  whimsy run
  whimsy run --seed 7
  whimsy run --fps 30 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	// The terminal belongs to the demo, so logs go to a file
	var logOut io.Writer = io.Discard
	if logFile, logErr := openLogFile(cfg.Log.File); logErr == nil {
		defer logFile.Close()
		logOut = logFile
	} else {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", logErr)
	}
	logger, err := newLogger(logOut, cfg.Log.Level)
	if err != nil {
		return err
	}

	// Get terminal size; the first WindowSizeMsg corrects it anyway
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open session storage
	store, err := openStore(cfg)
	if err != nil {
		logger.Warn("could not open sessions database", "err", err)
		// Continue without storage - the demo still works
		store = nil
	}

	runErr := tui.Run(runtimeConfig(cfg, width, height), store, logger,
		loop.WithOverlayStyle(overlayStyle(cfg)))

	// Close store before reporting
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running demo: %w", runErr)
	}
	return nil
}
