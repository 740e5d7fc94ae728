package metrics

import (
	"math"

	"github.com/san-kum/cannon/internal/physics"
)

// Altitude tracks the lowest or highest point of the active projectile
// above the attractor's surface.
type Altitude struct {
	name    string
	highest bool
	value   float64
	samples int
}

func NewMinAltitude() *Altitude {
	return &Altitude{name: "min_altitude"}
}

func NewMaxAltitude() *Altitude {
	return &Altitude{name: "max_altitude", highest: true}
}

func (a *Altitude) Name() string { return a.name }

func (a *Altitude) Observe(w *physics.World, t float64) {
	b, ok := activeBody(w)
	if !ok {
		return
	}
	alt := b.Altitude(w.Attractor().Radius)

	switch {
	case a.samples == 0:
		a.value = alt
	case a.highest:
		a.value = math.Max(a.value, alt)
	default:
		a.value = math.Min(a.value, alt)
	}
	a.samples++
}

func (a *Altitude) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.value
}

func (a *Altitude) Reset() {
	a.value = 0
	a.samples = 0
}
