package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrIntegrity indicates the attractor picked up velocity from a collision.
	// The mass ratio no longer supports the immobile-attractor model.
	ErrIntegrity = errors.New("dynamo: attractor velocity did not resolve to zero after collision")

	// ErrInvalidState indicates a NaN or Inf in a body's kinematic state.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownHandle indicates a body handle outside the arena.
	ErrUnknownHandle = errors.New("dynamo: unknown body handle")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Tick    int
	Time    float64
	Handle  int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f) body %d: %v", e.Tick, e.Time, e.Handle, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
