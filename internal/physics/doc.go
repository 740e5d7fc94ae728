// Package physics implements the orbital motion and collision-response
// integrator of the cannon sandbox.
//
// A [World] owns a flat arena of [Body] records addressed by [Handle].
// Handle 0 is always the attractor (the planet, fixed at the origin); every
// other handle is a projectile launched from above the surface.
//
// Each call to [World.Step] runs one fixed tick as a strict pipeline:
//
//  1. [Gravity] for every projectile
//  2. [Accelerate]: v += a*dt*k
//  3. [Advance] and [Collides]; on contact the position is restored and,
//     in bounce mode, [Resolve] computes the inelastic response
//  4. trace bookkeeping for the active projectile
//
// # Integrity
//
// Resolve treats the attractor as effectively immovable. If a collision
// would give it a velocity that does not round to zero at two decimal
// places, Step returns a [*dynamo.SimulationError] wrapping
// [dynamo.ErrIntegrity] and the world refuses to step again.
package physics
