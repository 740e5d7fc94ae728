package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/cannon/internal/control"
	"github.com/san-kum/cannon/internal/dynamo"
	"github.com/san-kum/cannon/internal/physics"
	"go.uber.org/zap"
)

type Simulator struct {
	world     *physics.World
	launcher  *control.Launcher
	metrics   []Metric
	observers []Observer
	log       *zap.Logger
}

func New(world *physics.World, launcher *control.Launcher, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{
		world:     world,
		launcher:  launcher,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       logger,
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Launcher() *control.Launcher { return s.launcher }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := s.steps(cfg)
	result := &Result{
		Samples: make([]dynamo.Sample, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	sched := NewSchedule(cfg.LaunchAt)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		if err := s.fireDue(sched); err != nil {
			s.finish(result)
			return result, err
		}

		if err := s.world.Step(); err != nil {
			s.log.Error("step failed", zap.Error(err))
			s.finish(result)
			return result, err
		}
		result.Ticks++

		t := s.world.Time()
		if h, ok := s.world.Active(); ok {
			result.Samples = append(result.Samples, s.world.Sample(h))
		}
		s.logImpacts()

		for _, m := range s.metrics {
			m.Observe(s.world, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.world, t)
		}
	}

	s.finish(result)
	s.log.Info("run complete",
		zap.Int("ticks", result.Ticks),
		zap.Int("projectiles", result.Projectiles),
		zap.Int("collisions", result.Collisions),
	)
	return result, nil
}

// RunWithCallback steps the world and hands it to callback after every
// tick. Returning false from callback stops the run without error.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(w *physics.World) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	steps := s.steps(cfg)
	sched := NewSchedule(cfg.LaunchAt)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.fireDue(sched); err != nil {
			return err
		}
		if err := s.world.Step(); err != nil {
			return err
		}
		if !callback(s.world) {
			return nil
		}
	}

	return nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if !(cfg.Duration > 0) {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.EscapeRadius < 0 {
		return fmt.Errorf("escape radius must not be negative, got %f", cfg.EscapeRadius)
	}
	for _, at := range cfg.LaunchAt {
		if at < 0 || math.IsNaN(at) {
			return fmt.Errorf("launch time must not be negative, got %f", at)
		}
	}
	return nil
}

func (s *Simulator) steps(cfg Config) int {
	return int(math.Round(cfg.Duration / s.world.Params().Dt))
}

func (s *Simulator) fireDue(sched *Schedule) error {
	t := s.world.Time()
	for sched.Due(t) {
		speed := s.launcher.Speed()
		h, err := s.launcher.Fire(s.world)
		if err != nil {
			return fmt.Errorf("launch at t=%.4f: %w", t, err)
		}
		s.log.Debug("launch",
			zap.Int("handle", int(h)),
			zap.Float64("time", t),
			zap.Float64("speed", speed),
		)
	}
	return nil
}

func (s *Simulator) logImpacts() {
	if !s.log.Core().Enabled(zap.DebugLevel) {
		return
	}
	for _, h := range s.world.Projectiles() {
		b, _ := s.world.Body(h)
		if b.Collided && b.Bounces == 1 {
			s.log.Debug("first impact",
				zap.Int("handle", int(h)),
				zap.Float64("time", s.world.Time()),
				zap.Float64("speed", b.Vel.Len()),
			)
		}
	}
}

func (s *Simulator) finish(result *Result) {
	result.Projectiles = len(s.world.Projectiles())
	result.Collisions = s.world.Collisions()
	result.FinalTrace = s.world.TracePoints()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
