// Package dynamo provides the shared primitives of the cannon simulation.
//
// The package defines the small vocabulary every other package speaks:
//
//   - [Vec2]: 2D vector with the handful of operations the integrator needs
//   - [Sample]: snapshot of one projectile at one tick
//   - [SimulationError]: error carrying the tick and body that failed
//
// # Example
//
//	w, _ := physics.NewWorld(physics.DefaultParams(), 1_000_000, 378.4)
//	h, _ := w.Spawn(dynamo.Vec2{Y: 578.4}, dynamo.Vec2{X: 250}, 1, 7.5)
//	if err := w.Step(); err != nil {
//	    // err wraps dynamo.ErrIntegrity; the world is now faulted
//	}
//
// # Thread Safety
//
// Nothing in this package holds state. Worlds built on top of it are NOT
// thread-safe; run independent worlds in separate goroutines instead.
package dynamo
