package physics

import (
	"math"

	"github.com/san-kum/cannon/internal/dynamo"
)

// Collides reports whether a ball at pos overlaps the attractor at the origin.
// The check is discrete; fast balls can tunnel through.
func Collides(pos dynamo.Vec2, planetRadius, ballRadius float64) bool {
	return pos.Len() < planetRadius+ballRadius
}

// Resolve computes post-collision velocities for a ball hitting the
// attractor. The ball's velocity is first damped by restitution, then both
// velocities are rotated into the basis along the line of centers, the 1-D
// elastic formula is applied to the normal components with raw masses, and
// the results are rotated back.
//
// The attractor's result must round to zero at two decimal places; any
// other value returns dynamo.ErrIntegrity.
func Resolve(ball, attractor Body, restitution float64) (ballVel, attractorVel dynamo.Vec2, err error) {
	m1 := float64(ball.Mass)
	m2 := float64(attractor.Mass)

	v1 := ball.Vel.Scale(restitution)
	v2 := attractor.Vel

	delta := ball.Pos.Sub(attractor.Pos)
	angle := math.Atan2(delta.Y, delta.X)

	u1 := v1.Rotate(-angle)
	u2 := v2.Rotate(-angle)

	n1 := ((m1-m2)*u1.X + 2*m2*u2.X) / (m1 + m2)
	n2 := ((m2-m1)*u2.X + 2*m1*u1.X) / (m1 + m2)

	ballVel = dynamo.Vec2{X: n1, Y: u1.Y}.Rotate(angle)
	attractorVel = dynamo.Vec2{X: n2, Y: u2.Y}.Rotate(angle)

	if roundCents(attractorVel.X) != 0 || roundCents(attractorVel.Y) != 0 {
		return ballVel, attractorVel, dynamo.ErrIntegrity
	}
	return ballVel, attractorVel, nil
}

func roundCents(x float64) float64 {
	return math.Round(x*100) / 100
}
