package physics

import "github.com/san-kum/cannon/internal/dynamo"

type Kind int

const (
	Attractor Kind = iota
	Projectile
)

func (k Kind) String() string {
	if k == Attractor {
		return "attractor"
	}
	return "projectile"
}

// Phase tracks whether a projectile has touched the attractor yet.
type Phase int

const (
	Falling Phase = iota
	PostCollision
)

func (p Phase) String() string {
	if p == Falling {
		return "falling"
	}
	return "post-collision"
}

// Handle indexes a body in the world arena.
type Handle int

// AttractorHandle is reserved for the planet.
const AttractorHandle Handle = 0

type Body struct {
	Kind   Kind
	Pos    dynamo.Vec2
	Vel    dynamo.Vec2
	Acc    dynamo.Vec2
	Mass   uint64
	Radius float64

	Phase    Phase
	Bounces  int
	Collided bool // set when the latest tick was a collision

	Active bool
	Trace  *Trace

	traceTicks int
}

// Altitude is the distance from the body's center to the attractor's surface.
func (b Body) Altitude(surface float64) float64 {
	return b.Pos.Len() - surface
}
