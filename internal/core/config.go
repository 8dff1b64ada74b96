package core

// RuntimeConfig contains configuration passed to the demo at startup.
type RuntimeConfig struct {
	ScreenW    int   // Screen width in characters
	ScreenH    int   // Screen height in characters
	TickRate   int   // Frames requested per second (default 60)
	Seed       int64 // RNG seed, 0 means seed from the clock
	CellWidth  int   // Viewport pixels covered by one cell horizontally
	CellHeight int   // Viewport pixels covered by one cell vertically
}

// ViewportSize returns the viewport dimensions in pixels.
func (c RuntimeConfig) ViewportSize() (float64, float64) {
	return float64(c.ScreenW * c.CellWidth), float64(c.ScreenH * c.CellHeight)
}
