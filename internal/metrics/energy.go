package metrics

import (
	"math"

	"github.com/san-kum/cannon/internal/physics"
)

// OrbitalEnergy averages the specific energy of the active projectile.
type OrbitalEnergy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewOrbitalEnergy() *OrbitalEnergy {
	return &OrbitalEnergy{name: "orbital_energy"}
}

func (e *OrbitalEnergy) Name() string { return e.name }

func (e *OrbitalEnergy) Observe(w *physics.World, t float64) {
	b, ok := activeBody(w)
	if !ok {
		return
	}
	e.totalEnergy += physics.SpecificEnergy(b, w.Attractor().Mass, w.Params().G)
	e.samples++
}

func (e *OrbitalEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *OrbitalEnergy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative change in specific energy seen since
// the active projectile was launched. It restarts on every launch.
type EnergyDrift struct {
	name          string
	handle        physics.Handle
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{
		name:   "energy_drift",
		handle: -1,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(w *physics.World, t float64) {
	h, ok := w.Active()
	if !ok {
		return
	}
	b, err := w.Body(h)
	if err != nil {
		return
	}

	energy := physics.SpecificEnergy(b, w.Attractor().Mass, w.Params().G)

	if h != e.handle {
		e.handle = h
		e.initialEnergy = energy
		e.maxDrift = 0
		e.samples = 0
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.handle = -1
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

func activeBody(w *physics.World) (physics.Body, bool) {
	h, ok := w.Active()
	if !ok {
		return physics.Body{}, false
	}
	b, err := w.Body(h)
	return b, err == nil
}
