// Package loop drives the per-frame cycle: timing, simulation update,
// drawing, and the FPS overlay.
package loop

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/whimsy/internal/core"
	"github.com/vovakirdan/whimsy/internal/field"
	"github.com/vovakirdan/whimsy/internal/fps"
)

// Overlay defaults.
const (
	DefaultBaseFont     = 20
	DefaultFontFamily   = "Arial"
	DefaultOverlayColor = core.Color("#2D3E50")

	// overlayThreshold is the accumulated sample time, in seconds, after
	// which the FPS overlay is drawn.
	overlayThreshold = 1.0
	// overlayMargin is the overlay inset as a fraction of the width.
	overlayMargin = 0.01
)

// OverlayStyle controls how the FPS text is drawn.
type OverlayStyle struct {
	BaseFont int
	Family   string
	Color    core.Color
}

// DefaultOverlayStyle returns the stock overlay look.
func DefaultOverlayStyle() OverlayStyle {
	return OverlayStyle{
		BaseFont: DefaultBaseFont,
		Family:   DefaultFontFamily,
		Color:    DefaultOverlayColor,
	}
}

// Stats summarizes a run for the session log.
type Stats struct {
	Frames     int
	Clicks     int
	Hits       int
	AverageFPS float64 // Last value shown in the overlay, 0 before the first
	Discs      int
}

// Loop is the frame driver. All state is mutated only from Tick, Resize,
// and Click, which the host calls from a single goroutine.
type Loop struct {
	surface   Surface
	scheduler Scheduler
	field     *field.Field
	timer     *fps.Timer
	logger    *log.Logger
	overlay   OverlayStyle

	width, height float64
	lastTimestamp float64
	started       bool

	stats Stats
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithOverlayStyle overrides the FPS overlay look.
func WithOverlayStyle(style OverlayStyle) Option {
	return func(l *Loop) {
		l.overlay = style
	}
}

// New creates a loop drawing f onto surface.
func New(surface Surface, scheduler Scheduler, f *field.Field, opts ...Option) *Loop {
	l := &Loop{
		surface:   surface,
		scheduler: scheduler,
		field:     f,
		timer:     fps.New(),
		logger:    log.New(io.Discard),
		overlay:   DefaultOverlayStyle(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start sizes the field to the surface and requests the first frame.
func (l *Loop) Start() {
	w, h := l.surface.Size()
	l.Resize(w, h)
	l.scheduler.RequestFrame(l.Tick)
}

// Tick runs one frame. The first call yields a zero delta time.
func (l *Loop) Tick(timestamp float64) {
	if !l.started {
		l.lastTimestamp = timestamp
		l.started = true
	}

	dt := (timestamp - l.lastTimestamp) / 1000
	l.lastTimestamp = timestamp

	l.surface.ClearRect(0, 0, l.width, l.height)
	l.field.Update(l.width, l.height, dt)
	l.drawDiscs()
	l.updateFPS(dt)

	l.stats.Frames++
	l.scheduler.RequestFrame(l.Tick)
}

// drawDiscs fills every disc at its current position.
func (l *Loop) drawDiscs() {
	l.field.Each(func(d field.Disc) {
		l.surface.BeginPath()
		l.surface.SetFillColor(d.Color)
		l.surface.FillCircle(d.X, d.Y, d.Radius)
		l.surface.ClosePath()
	})
}

// updateFPS draws the overlay once a second of samples has accumulated,
// evicting one sample per drawn overlay, then records this frame.
func (l *Loop) updateFPS(dt float64) {
	if l.timer.AccumulatedTime() >= overlayThreshold {
		avg := l.timer.Average()
		l.drawOverlay(avg)
		l.timer.DropOldest()
		l.stats.AverageFPS = avg
	}

	l.timer.Sample(dt)
}

// drawOverlay renders the FPS text in the top-right corner.
func (l *Loop) drawOverlay(avg float64) {
	w, h := l.width, l.height
	base := math.Max(w, h)
	size := 0
	if base > 0 {
		size = int(math.Floor((w / base) * float64(l.overlay.BaseFont)))
	}

	l.surface.BeginPath()
	l.surface.SetFont(Font{Size: size, Family: l.overlay.Family})
	l.surface.SetFillColor(l.overlay.Color)
	l.surface.SetTextAlign(AlignRight)
	l.surface.SetTextBaseline(BaselineTop)
	l.surface.FillText(fmt.Sprintf("FPS: %.1f", avg), w-w*overlayMargin, w*overlayMargin)
	l.surface.ClosePath()
}

// Resize regenerates the field for new viewport dimensions.
func (l *Loop) Resize(width, height float64) {
	l.width, l.height = width, height
	l.field.Initialize(width, height)
	l.logger.Debug("viewport resized", "width", width, "height", height, "discs", l.field.Len())
}

// Click hit-tests the viewport point (x, y) and returns the number of
// discs recolored.
func (l *Loop) Click(x, y float64) int {
	hits := l.field.HitTest(x, y)
	l.stats.Clicks++
	l.stats.Hits += hits
	return hits
}

// Size returns the viewport dimensions the field was last sized for.
func (l *Loop) Size() (float64, float64) {
	return l.width, l.height
}

// Stats returns the counters collected so far.
func (l *Loop) Stats() Stats {
	s := l.stats
	s.Discs = l.field.Len()
	return s
}
