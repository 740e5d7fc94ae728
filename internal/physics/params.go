package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/cannon/internal/dynamo"
)

const (
	DefaultG             = 0.667
	DefaultDt            = 1.0 / 60.0
	DefaultSpeedScale    = 1.0
	DefaultRestitution   = 0.8
	DefaultTraceCapacity = 100
	DefaultTraceInterval = 10

	// MinDistance clamps the gravity denominator away from the singularity.
	MinDistance = 1.0
)

// Response selects what happens after a projectile touches the attractor.
type Response int

const (
	// ResponseBounce restores the position, damps the velocity and applies
	// the two-body elastic formula.
	ResponseBounce Response = iota
	// ResponseRollback only restores the pre-step position.
	ResponseRollback
)

func (r Response) String() string {
	switch r {
	case ResponseBounce:
		return "bounce"
	case ResponseRollback:
		return "rollback"
	default:
		return fmt.Sprintf("response(%d)", int(r))
	}
}

func ParseResponse(s string) (Response, error) {
	switch s {
	case "bounce", "":
		return ResponseBounce, nil
	case "rollback":
		return ResponseRollback, nil
	default:
		return 0, fmt.Errorf("unknown collision response: %s", s)
	}
}

type Params struct {
	G             float64
	Dt            float64
	SpeedScale    float64
	Restitution   float64
	Response      Response
	TraceCapacity int
	TraceInterval int
}

func DefaultParams() Params {
	return Params{
		G:             DefaultG,
		Dt:            DefaultDt,
		SpeedScale:    DefaultSpeedScale,
		Restitution:   DefaultRestitution,
		Response:      ResponseBounce,
		TraceCapacity: DefaultTraceCapacity,
		TraceInterval: DefaultTraceInterval,
	}
}

func (p Params) Validate() error {
	if !(p.G > 0) || math.IsInf(p.G, 0) {
		return fmt.Errorf("%w: G must be positive, got %f", dynamo.ErrParameterBounds, p.G)
	}
	if !(p.Dt > 0) || math.IsInf(p.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrParameterBounds, p.Dt)
	}
	if !(p.SpeedScale > 0) || math.IsInf(p.SpeedScale, 0) {
		return fmt.Errorf("%w: speed scale must be positive, got %f", dynamo.ErrParameterBounds, p.SpeedScale)
	}
	if p.Restitution < 0 || p.Restitution > 1 || math.IsNaN(p.Restitution) {
		return fmt.Errorf("%w: restitution must be in [0,1], got %f", dynamo.ErrParameterBounds, p.Restitution)
	}
	if p.TraceCapacity < 1 {
		return fmt.Errorf("%w: trace capacity must be at least 1, got %d", dynamo.ErrParameterBounds, p.TraceCapacity)
	}
	if p.TraceInterval < 1 {
		return fmt.Errorf("%w: trace interval must be at least 1, got %d", dynamo.ErrParameterBounds, p.TraceInterval)
	}
	return nil
}
