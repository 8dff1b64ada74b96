// Package field owns the set of discs and evolves them frame by frame.
package field

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/whimsy/internal/core"
)

// Generation bounds. These are fixed.
const (
	MinDiscs        = 12
	MaxDiscs        = 24
	MinRadius       = 10
	MaxRadius       = 30
	MaxSpeed        = 150 // px/s per axis, drawn from [-MaxSpeed, MaxSpeed]
	DefaultVelocity = 50  // replaces a drawn velocity component of exactly 0
)

// Randomizer is the source of randomness the field draws from.
type Randomizer interface {
	// Int returns an integer uniformly chosen from [min, max].
	Int(min, max int) int
	// Color returns a palette color.
	Color() core.Color
}

// Field owns the discs. It is not safe for concurrent use; all calls are
// expected from the single goroutine driving the render loop.
type Field struct {
	rng    Randomizer
	logger *log.Logger
	discs  []Disc
}

// New creates an empty field. A nil logger discards output.
func New(rng Randomizer, logger *log.Logger) *Field {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Field{
		rng:    rng,
		logger: logger,
	}
}

// Initialize replaces every disc with a freshly generated batch sized for
// a width x height viewport. Previous discs, including their click colors,
// are discarded.
//
// Viewports smaller than a disc's diameter are not rejected; such discs
// start at their radius and may overlap the far wall.
func (f *Field) Initialize(width, height float64) {
	count := f.rng.Int(MinDiscs, MaxDiscs)
	discs := make([]Disc, 0, count)

	for i := 0; i < count; i++ {
		radius := f.rng.Int(MinRadius, MaxRadius)
		x := f.rng.Int(radius, upper(radius, int(width)-radius))
		y := f.rng.Int(radius, upper(radius, int(height)-radius))
		vx := f.rng.Int(-MaxSpeed, MaxSpeed)
		vy := f.rng.Int(-MaxSpeed, MaxSpeed)
		color := f.rng.Color()

		if vx == 0 {
			vx = DefaultVelocity
		}
		if vy == 0 {
			vy = DefaultVelocity
		}

		d := Disc{
			X:      float64(x),
			Y:      float64(y),
			VX:     float64(vx),
			VY:     float64(vy),
			Radius: float64(radius),
			Color:  color,
		}
		f.logger.Debug("disc created",
			"index", i, "x", x, "y", y, "vx", vx, "vy", vy,
			"radius", radius, "color", color)
		discs = append(discs, d)
	}

	f.discs = discs
}

// upper keeps a sampling range non-empty for degenerate viewports.
func upper(lo, hi int) int {
	if hi < lo {
		return lo
	}
	return hi
}

// Update advances every disc by dt seconds. Reflection is decided from the
// position before the move, and positions are never clamped, so a disc may
// sit slightly past a wall for a frame when dt is large.
func (f *Field) Update(width, height, dt float64) {
	for i := range f.discs {
		d := &f.discs[i]
		d.reflect(width, height)
		d.move(dt)
	}
}

// HitTest gives a new random color to every disc containing (px, py) and
// returns how many discs were hit.
func (f *Field) HitTest(px, py float64) int {
	hits := 0
	for i := range f.discs {
		if f.discs[i].Contains(px, py) {
			f.discs[i].Color = f.rng.Color()
			hits++
		}
	}
	return hits
}

// Discs returns a copy of the discs in creation order.
func (f *Field) Discs() []Disc {
	return slices.Clone(f.discs)
}

// Each calls fn for every disc in creation order without copying the slice.
func (f *Field) Each(fn func(Disc)) {
	for _, d := range f.discs {
		fn(d)
	}
}

// Len returns the number of discs.
func (f *Field) Len() int {
	return len(f.discs)
}
