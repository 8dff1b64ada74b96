package config

import (
	_ "embed"
)

//go:embed defaults/whimsy.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			TickRate:   60,
			CellWidth:  8,
			CellHeight: 16,
		},
		Overlay: OverlayConfig{
			BaseFont:   20,
			FontFamily: "Arial",
			Color:      "#2D3E50",
		},
		Storage: StorageConfig{
			DBPath: "~/.whimsy/sessions.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.whimsy/whimsy.log",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
