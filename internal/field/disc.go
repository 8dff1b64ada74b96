package field

import (
	"math"

	"github.com/vovakirdan/whimsy/internal/core"
)

// Disc is a moving circle. Positions and radius are in viewport pixels,
// velocities in pixels per second.
type Disc struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Color  core.Color
}

// Contains reports whether (px, py) lies strictly inside the disc.
// A point exactly on the rim is not inside.
func (d Disc) Contains(px, py float64) bool {
	return math.Hypot(px-d.X, py-d.Y) < d.Radius
}

// reflect negates each velocity component whose axis is out of bounds.
// Both axes are checked independently, so a corner flips both.
func (d *Disc) reflect(width, height float64) {
	if d.X+d.Radius > width || d.X-d.Radius < 0 {
		d.VX = -d.VX
	}
	if d.Y+d.Radius > height || d.Y-d.Radius < 0 {
		d.VY = -d.VY
	}
}

// move integrates the position over dt seconds.
func (d *Disc) move(dt float64) {
	d.X += d.VX * dt
	d.Y += d.VY * dt
}
