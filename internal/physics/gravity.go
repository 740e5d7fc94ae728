package physics

import "github.com/san-kum/cannon/internal/dynamo"

// Gravity returns the acceleration the attractor at the origin imparts on a
// projectile at pos. The force is divided by the projectile's own mass; the
// attractor is treated as infinitely heavy.
//
// Inside MinDistance the magnitude is held at its MinDistance value while
// the direction still comes from the true offset, so the result keeps
// pointing at the origin.
func Gravity(pos dynamo.Vec2, ballMass, planetMass uint64, g float64) dynamo.Vec2 {
	r := pos.Len()
	if r == 0 {
		return dynamo.Vec2{}
	}

	d := r
	if d < MinDistance {
		d = MinDistance
	}

	m := float64(ballMass)
	force := g * float64(planetMass) * m / (d * d)

	cos := -pos.X / r
	sin := -pos.Y / r

	return dynamo.Vec2{
		X: force * cos / m,
		Y: force * sin / m,
	}
}

// SpecificEnergy is the kinetic plus potential energy per unit mass of b.
func SpecificEnergy(b Body, planetMass uint64, g float64) float64 {
	d := b.Pos.Len()
	if d < MinDistance {
		d = MinDistance
	}
	v := b.Vel.Len()
	return 0.5*v*v - g*float64(planetMass)/d
}
