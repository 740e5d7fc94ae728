package metrics

import (
	"github.com/san-kum/cannon/internal/physics"
	"github.com/san-kum/cannon/internal/sim"
)

// Bounces reports the world's collision count as of the last observed tick.
type Bounces struct {
	name  string
	count int
}

func NewBounces() *Bounces {
	return &Bounces{name: "bounces"}
}

func (b *Bounces) Name() string { return b.name }

func (b *Bounces) Observe(w *physics.World, t float64) {
	b.count = w.Collisions()
}

func (b *Bounces) Value() float64 { return float64(b.count) }
func (b *Bounces) Reset()         { b.count = 0 }

// Standard returns the metrics recorded for every run report.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewOrbitalEnergy(),
		NewEnergyDrift(),
		NewBounces(),
		NewMinAltitude(),
		NewMaxAltitude(),
	}
}
