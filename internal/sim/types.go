package sim

import (
	"github.com/san-kum/cannon/internal/dynamo"
	"github.com/san-kum/cannon/internal/physics"
)

type Metric interface {
	Name() string
	Observe(w *physics.World, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(w *physics.World, t float64)
}

// Config drives a headless run. The timestep lives in the world's params.
type Config struct {
	Duration     float64
	LaunchAt     []float64 // seconds; the launcher fires once per entry
	EscapeRadius float64   // 0 disables escape detection
}

func DefaultConfig() Config {
	return Config{
		Duration: 20.0,
		LaunchAt: []float64{0},
	}
}

type Result struct {
	Samples     []dynamo.Sample // active projectile after every tick
	Metrics     map[string]float64
	Ticks       int
	Projectiles int
	Collisions  int
	FinalTrace  []dynamo.Vec2
}
