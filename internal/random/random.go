// Package random supplies the uniformly distributed integers and palette
// colors the simulation draws from.
package random

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/whimsy/internal/core"
)

// Palette is the fixed set of disc colors.
var Palette = []core.Color{
	"#F89B2A",
	"#C4473D",
	"#EAD046",
	"#2D3E50",
	"#2E2E2E",
	"#FF5F87",
	"#A54A00",
	"#F6C945",
	"#247BA0",
	"#6E5A8A",
	"#B81E3E",
	"#F9D54C",
	"#CC2A2B",
	"#E57E2F",
	"#1E1E1E",
	"#453327",
	"#AF835C",
}

// Provider wraps a seeded RNG. It is not safe for concurrent use.
type Provider struct {
	rng  *rand.Rand
	seed int64
}

// New creates a provider. A zero seed is replaced with the current time.
func New(seed int64) *Provider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Provider{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the provider was created with.
func (p *Provider) Seed() int64 {
	return p.seed
}

// Int returns an integer uniformly chosen from [min, max].
// Panics if min > max.
func (p *Provider) Int(min, max int) int {
	return min + p.rng.Intn(max-min+1)
}

// Color returns a uniformly chosen palette entry.
func (p *Provider) Color() core.Color {
	return Palette[p.rng.Intn(len(Palette))]
}
