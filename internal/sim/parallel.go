package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/cannon/internal/control"
	"github.com/san-kum/cannon/internal/physics"
	"golang.org/x/sync/errgroup"
)

// Outcome classifies where a single launch ends up.
type Outcome int

const (
	Orbit Outcome = iota
	Impact
	Escape
)

func (o Outcome) String() string {
	switch o {
	case Impact:
		return "impact"
	case Escape:
		return "escape"
	default:
		return "orbit"
	}
}

type SweepResult struct {
	Speed       float64
	Outcome     Outcome
	Bounces     int
	MinAltitude float64
	MaxAltitude float64
	Ticks       int
}

// Factory builds a fresh world and launcher for one sweep member.
type Factory func() (*physics.World, *control.Launcher, error)

// Sweep fires one ball per speed, each in its own world, running up to
// workers worlds at a time. Results are returned in the order of speeds.
func Sweep(ctx context.Context, factory Factory, speeds []float64, cfg Config, workers int) ([]SweepResult, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]SweepResult, len(speeds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, speed := range speeds {
		i, speed := i, speed
		g.Go(func() error {
			res, err := sweepOne(ctx, factory, speed, cfg)
			if err != nil {
				return fmt.Errorf("speed %.2f: %w", speed, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func sweepOne(ctx context.Context, factory Factory, speed float64, cfg Config) (SweepResult, error) {
	w, l, err := factory()
	if err != nil {
		return SweepResult{}, err
	}
	l.SetSpeed(speed)

	single := cfg
	single.LaunchAt = []float64{0}

	surface := w.Attractor().Radius
	res := SweepResult{
		Speed:       speed,
		MinAltitude: math.Inf(1),
		MaxAltitude: math.Inf(-1),
	}

	s := New(w, l, nil)
	err = s.RunWithCallback(ctx, single, func(w *physics.World) bool {
		res.Ticks++
		h, ok := w.Active()
		if !ok {
			return true
		}
		b, _ := w.Body(h)
		alt := b.Altitude(surface)
		res.MinAltitude = math.Min(res.MinAltitude, alt)
		res.MaxAltitude = math.Max(res.MaxAltitude, alt)
		res.Bounces = b.Bounces

		if cfg.EscapeRadius > 0 && b.Pos.Len() > cfg.EscapeRadius {
			res.Outcome = Escape
			return false
		}
		return true
	})
	if err != nil {
		return res, err
	}

	if res.Outcome != Escape && res.Bounces > 0 {
		res.Outcome = Impact
	}
	return res, nil
}
