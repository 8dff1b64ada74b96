// Package tui provides the Bubble Tea host for the demo.
// It supplies the drawing surface, the frame scheduler, input mapping,
// and the terminal rendering of the cell buffer.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/whimsy/internal/loop"
)

// FrameMsg is sent when a requested frame is due.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that delivers the next frame at
// the specified rate.
func frameCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// frameScheduler holds at most one pending frame callback.
type frameScheduler struct {
	pending loop.FrameFunc
}

// Ensure frameScheduler implements loop.Scheduler
var _ loop.Scheduler = (*frameScheduler)(nil)

// RequestFrame stores fn until the next FrameMsg.
func (f *frameScheduler) RequestFrame(fn loop.FrameFunc) {
	f.pending = fn
}

// take returns and clears the pending callback.
func (f *frameScheduler) take() loop.FrameFunc {
	fn := f.pending
	f.pending = nil
	return fn
}

// hasPending reports whether a frame has been requested.
func (f *frameScheduler) hasPending() bool {
	return f.pending != nil
}

// timestampMillis converts a frame time into milliseconds since start.
func timestampMillis(start, at time.Time) float64 {
	return float64(at.Sub(start).Microseconds()) / 1000
}
