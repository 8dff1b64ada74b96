// Package config provides YAML-based configuration loading for the demo.
package config

import (
	"fmt"
	"strings"
)

// Config contains all configuration for whimsy.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Overlay OverlayConfig `yaml:"overlay"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// DisplayConfig defines frame rate and the pixel size of a terminal cell.
type DisplayConfig struct {
	TickRate   int `yaml:"tick_rate"`
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
}

// OverlayConfig defines the FPS overlay text style.
type OverlayConfig struct {
	BaseFont   int    `yaml:"base_font"`
	FontFamily string `yaml:"font_family"`
	Color      string `yaml:"color"`
}

// StorageConfig defines where session summaries are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines log verbosity and destination.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Used while the terminal UI owns the screen
}

// validLevels lists the accepted log levels.
var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Display.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.Display.TickRate)
	}
	if c.Display.CellWidth <= 0 || c.Display.CellHeight <= 0 {
		return fmt.Errorf("config: cell size must be positive, got %dx%d", c.Display.CellWidth, c.Display.CellHeight)
	}
	if c.Overlay.BaseFont <= 0 {
		return fmt.Errorf("config: base_font must be positive, got %d", c.Overlay.BaseFont)
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}
