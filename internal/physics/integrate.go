package physics

import "github.com/san-kum/cannon/internal/dynamo"

// Accelerate applies one semi-implicit Euler velocity update.
func Accelerate(vel, acc dynamo.Vec2, dt, speedScale float64) dynamo.Vec2 {
	return dynamo.Vec2{
		X: vel.X + acc.X*dt*speedScale,
		Y: vel.Y + acc.Y*dt*speedScale,
	}
}

// Advance moves pos along vel for one tick.
func Advance(pos, vel dynamo.Vec2, dt, speedScale float64) dynamo.Vec2 {
	return dynamo.Vec2{
		X: pos.X + vel.X*dt*speedScale,
		Y: pos.Y + vel.Y*dt*speedScale,
	}
}
