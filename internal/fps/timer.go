// Package fps keeps a trailing average of the instantaneous frame rate.
//
// The window is approximate: the accumulated time only ever grows, so once
// it passes the display threshold every frame evicts one sample and appends
// another. Callers rely on this exact behavior for the overlay cadence.
package fps

import "math"

// Timer holds instantaneous FPS samples and the total sampled time.
type Timer struct {
	samples []float64
	total   float64
}

// New creates an empty timer.
func New() *Timer {
	return &Timer{}
}

// Sample records one frame of dt seconds. A zero dt records +Inf; that
// sample is eventually evicted by DropOldest.
func (t *Timer) Sample(dt float64) {
	t.samples = append(t.samples, 1/dt)
	t.total += dt
}

// Average returns the mean of the held samples, or NaN when empty.
func (t *Timer) Average() float64 {
	if len(t.samples) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, s := range t.samples {
		sum += s
	}
	return sum / float64(len(t.samples))
}

// AccumulatedTime returns the total of every dt ever sampled.
func (t *Timer) AccumulatedTime() float64 {
	return t.total
}

// DropOldest removes the earliest sample. The accumulated time is left
// untouched.
func (t *Timer) DropOldest() {
	if len(t.samples) == 0 {
		return
	}
	t.samples = t.samples[1:]
}

// Len returns the number of held samples.
func (t *Timer) Len() int {
	return len(t.samples)
}
