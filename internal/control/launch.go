package control

import (
	"github.com/san-kum/cannon/internal/dynamo"
	"github.com/san-kum/cannon/internal/physics"
)

const (
	DefaultAltitude  = 200.0
	DefaultIncrement = 30.0
	DefaultNudge     = 1.0
	DefaultBallMass  = 1
	DefaultBallRad   = 7.5
)

// LaunchConfig describes the cannon and the balls it fires.
type LaunchConfig struct {
	Speed      float64
	Increment  float64
	Nudge      float64
	Altitude   float64
	BallMass   uint64
	BallRadius float64
}

func DefaultLaunch() LaunchConfig {
	return LaunchConfig{
		Increment:  DefaultIncrement,
		Nudge:      DefaultNudge,
		Altitude:   DefaultAltitude,
		BallMass:   DefaultBallMass,
		BallRadius: DefaultBallRad,
	}
}

// Launcher fires balls horizontally from a fixed point above the planet.
type Launcher struct {
	cfg          LaunchConfig
	planetRadius float64
	speed        float64
	fired        int
}

func NewLauncher(cfg LaunchConfig, planetRadius float64) *Launcher {
	return &Launcher{
		cfg:          cfg,
		planetRadius: planetRadius,
		speed:        cfg.Speed,
	}
}

// Speed is the horizontal speed of the next launch.
func (l *Launcher) Speed() float64 { return l.speed }

// Fired counts successful launches.
func (l *Launcher) Fired() int { return l.fired }

func (l *Launcher) Faster() { l.speed += l.cfg.Nudge }
func (l *Launcher) Slower() { l.speed -= l.cfg.Nudge }

// SetSpeed overrides the pending speed.
func (l *Launcher) SetSpeed(v float64) { l.speed = v }

// Muzzle is the spawn position of every ball.
func (l *Launcher) Muzzle() dynamo.Vec2 {
	return dynamo.Vec2{Y: l.planetRadius + l.cfg.Altitude}
}

// Fire spawns a ball with velocity (speed, 0) and raises the speed by the
// configured increment.
func (l *Launcher) Fire(w *physics.World) (physics.Handle, error) {
	h, err := w.Spawn(l.Muzzle(), dynamo.Vec2{X: l.speed}, l.cfg.BallMass, l.cfg.BallRadius)
	if err != nil {
		return h, err
	}
	l.speed += l.cfg.Increment
	l.fired++
	return h, nil
}

// Apply performs the action on the launcher, firing into w when asked.
func (l *Launcher) Apply(a Action, w *physics.World) (physics.Handle, bool, error) {
	switch a {
	case Faster:
		l.Faster()
	case Slower:
		l.Slower()
	case Fire:
		h, err := l.Fire(w)
		return h, err == nil, err
	}
	return -1, false, nil
}
