package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/cannon/internal/dynamo"
)

// World is the arena of bodies advanced one fixed tick at a time.
type World struct {
	params     Params
	bodies     []Body
	active     Handle
	tick       int
	collisions int
	fault      error
}

// NewWorld creates a world with the attractor at the origin.
func NewWorld(params Params, planetMass uint64, planetRadius float64) (*World, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := checkBody(planetMass, planetRadius); err != nil {
		return nil, fmt.Errorf("attractor: %w", err)
	}

	w := &World{
		params: params,
		bodies: make([]Body, 1, 16),
		active: -1,
	}
	w.bodies[AttractorHandle] = Body{
		Kind:   Attractor,
		Mass:   planetMass,
		Radius: planetRadius,
	}
	return w, nil
}

func checkBody(mass uint64, radius float64) error {
	if mass == 0 {
		return fmt.Errorf("%w: mass must be positive", dynamo.ErrParameterBounds)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return fmt.Errorf("%w: radius must be positive, got %f", dynamo.ErrParameterBounds, radius)
	}
	return nil
}

// Spawn adds a projectile and makes it the active one. The previously
// active projectile keeps integrating but its trace is cleared and shrunk.
func (w *World) Spawn(pos, vel dynamo.Vec2, mass uint64, radius float64) (Handle, error) {
	if err := checkBody(mass, radius); err != nil {
		return -1, err
	}
	if !pos.IsValid() || !vel.IsValid() {
		return -1, dynamo.ErrInvalidState
	}

	for i := 1; i < len(w.bodies); i++ {
		b := &w.bodies[i]
		b.Trace.Reset(1)
		b.Active = false
	}

	h := Handle(len(w.bodies))
	w.bodies = append(w.bodies, Body{
		Kind:   Projectile,
		Pos:    pos,
		Vel:    vel,
		Mass:   mass,
		Radius: radius,
		Phase:  Falling,
		Active: true,
		Trace:  NewTrace(w.params.TraceCapacity),
	})
	w.active = h
	return h, nil
}

// Body returns a copy of the body at h.
func (w *World) Body(h Handle) (Body, error) {
	if h < 0 || int(h) >= len(w.bodies) {
		return Body{}, fmt.Errorf("%w: %d", dynamo.ErrUnknownHandle, h)
	}
	return w.bodies[h], nil
}

func (w *World) Attractor() Body { return w.bodies[AttractorHandle] }

// Projectiles returns the handles of every projectile in launch order.
func (w *World) Projectiles() []Handle {
	hs := make([]Handle, 0, len(w.bodies)-1)
	for i := 1; i < len(w.bodies); i++ {
		hs = append(hs, Handle(i))
	}
	return hs
}

// Active returns the projectile whose trace is being recorded.
func (w *World) Active() (Handle, bool) {
	return w.active, w.active > 0
}

// TracePoints returns the active projectile's trace, oldest first.
func (w *World) TracePoints() []dynamo.Vec2 {
	if w.active <= 0 {
		return nil
	}
	return w.bodies[w.active].Trace.Points()
}

func (w *World) Params() Params  { return w.params }
func (w *World) Tick() int       { return w.tick }
func (w *World) Time() float64   { return float64(w.tick) * w.params.Dt }
func (w *World) Collisions() int { return w.collisions }
func (w *World) Len() int        { return len(w.bodies) }
func (w *World) Err() error      { return w.fault }

func (w *World) Sample(h Handle) dynamo.Sample {
	b := w.bodies[h]
	return dynamo.Sample{
		Tick:     w.tick,
		Time:     w.Time(),
		Handle:   int(h),
		Pos:      b.Pos,
		Vel:      b.Vel,
		Acc:      b.Acc,
		Collided: b.Collided,
	}
}

// Step advances every projectile by one tick. Once a step fails the world
// is faulted and every later call returns the same error.
func (w *World) Step() error {
	if w.fault != nil {
		return w.fault
	}

	p := w.params
	planet := w.bodies[AttractorHandle]

	for i := 1; i < len(w.bodies); i++ {
		b := &w.bodies[i]
		b.Acc = Gravity(b.Pos, b.Mass, planet.Mass, p.G)
	}

	for i := 1; i < len(w.bodies); i++ {
		b := &w.bodies[i]
		b.Vel = Accelerate(b.Vel, b.Acc, p.Dt, p.SpeedScale)
	}

	w.record()

	for i := 1; i < len(w.bodies); i++ {
		if err := w.advance(Handle(i)); err != nil {
			w.fault = &dynamo.SimulationError{
				Tick:    w.tick,
				Time:    w.Time(),
				Handle:  i,
				Wrapped: err,
			}
			return w.fault
		}
	}

	w.tick++
	return nil
}

func (w *World) advance(h Handle) error {
	p := w.params
	planet := w.bodies[AttractorHandle]
	b := &w.bodies[h]

	b.Collided = false
	prev := b.Pos
	b.Pos = Advance(b.Pos, b.Vel, p.Dt, p.SpeedScale)

	if !b.Pos.IsValid() || !b.Vel.IsValid() {
		return dynamo.ErrInvalidState
	}

	if !Collides(b.Pos, planet.Radius, b.Radius) {
		return nil
	}

	b.Pos = prev
	b.Collided = true
	b.Phase = PostCollision
	b.Bounces++
	w.collisions++

	if p.Response == ResponseRollback {
		return nil
	}

	vel, _, err := Resolve(*b, planet, p.Restitution)
	if err != nil {
		return err
	}
	b.Vel = vel
	return nil
}

// record samples the active projectile's position before it moves this tick.
func (w *World) record() {
	if w.active <= 0 {
		return
	}
	b := &w.bodies[w.active]
	b.traceTicks++
	if b.traceTicks%w.params.TraceInterval == 0 {
		b.Trace.Push(b.Pos)
	}
}
