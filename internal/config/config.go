package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/san-kum/cannon/internal/control"
	"github.com/san-kum/cannon/internal/dynamo"
	"github.com/san-kum/cannon/internal/physics"
	"github.com/san-kum/cannon/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPlanetMass   = 1_000_000
	DefaultPlanetRadius = 378.4
	DefaultDuration     = 20.0
	DefaultEscapeFactor = 20.0
)

type Config struct {
	Planet  BodyConfig    `yaml:"planet"`
	Ball    BodyConfig    `yaml:"ball"`
	Physics PhysicsConfig `yaml:"physics"`
	Launch  LaunchConfig  `yaml:"launch"`
	Trace   TraceConfig   `yaml:"trace"`
	Run     RunConfig     `yaml:"run"`
	Log     LogConfig     `yaml:"log"`
}

type BodyConfig struct {
	Mass   uint64  `yaml:"mass"`
	Radius float64 `yaml:"radius"`
}

type PhysicsConfig struct {
	G           float64 `yaml:"g"`
	Dt          float64 `yaml:"dt"`
	SpeedScale  float64 `yaml:"speed_scale"`
	Restitution float64 `yaml:"restitution"`
	Response    string  `yaml:"response"`
}

type LaunchConfig struct {
	Altitude  float64 `yaml:"altitude"`
	Speed     float64 `yaml:"speed"`
	Increment float64 `yaml:"increment"`
	Nudge     float64 `yaml:"nudge"`
}

type TraceConfig struct {
	Capacity int `yaml:"capacity"`
	Interval int `yaml:"interval"`
}

type RunConfig struct {
	Duration     float64   `yaml:"duration"`
	LaunchAt     []float64 `yaml:"launch_at"`
	EscapeRadius float64   `yaml:"escape_radius"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

func DefaultConfig() *Config {
	return &Config{
		Planet: BodyConfig{Mass: DefaultPlanetMass, Radius: DefaultPlanetRadius},
		Ball:   BodyConfig{Mass: control.DefaultBallMass, Radius: control.DefaultBallRad},
		Physics: PhysicsConfig{
			G:           physics.DefaultG,
			Dt:          physics.DefaultDt,
			SpeedScale:  physics.DefaultSpeedScale,
			Restitution: physics.DefaultRestitution,
			Response:    physics.ResponseBounce.String(),
		},
		Launch: LaunchConfig{
			Altitude:  control.DefaultAltitude,
			Increment: control.DefaultIncrement,
			Nudge:     control.DefaultNudge,
		},
		Trace: TraceConfig{
			Capacity: physics.DefaultTraceCapacity,
			Interval: physics.DefaultTraceInterval,
		},
		Run: RunConfig{
			Duration:     DefaultDuration,
			LaunchAt:     []float64{0},
			EscapeRadius: DefaultEscapeFactor * DefaultPlanetRadius,
		},
		Log: LogConfig{Level: "info", Encoding: "console"},
	}
}

func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto reads path over a copy of base. Keys missing from the file keep
// base's values; base itself is not modified.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Planet.Mass == 0 || c.Ball.Mass == 0 {
		return fmt.Errorf("%w: masses must be positive", dynamo.ErrParameterBounds)
	}
	if !(c.Planet.Radius > 0) || !(c.Ball.Radius > 0) {
		return fmt.Errorf("%w: radii must be positive", dynamo.ErrParameterBounds)
	}
	if _, err := c.PhysicsParams(); err != nil {
		return err
	}
	if !(c.Launch.Altitude > c.Ball.Radius) {
		return fmt.Errorf("%w: launch altitude %f is inside the ball radius", dynamo.ErrParameterBounds, c.Launch.Altitude)
	}
	if !(c.Run.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrParameterBounds, c.Run.Duration)
	}
	if c.Run.EscapeRadius < 0 {
		return fmt.Errorf("%w: escape radius must not be negative", dynamo.ErrParameterBounds)
	}
	for _, at := range c.Run.LaunchAt {
		if at < 0 || math.IsNaN(at) {
			return fmt.Errorf("%w: launch time %f", dynamo.ErrParameterBounds, at)
		}
	}
	return nil
}

// PhysicsParams converts the physics and trace sections into world params.
func (c *Config) PhysicsParams() (physics.Params, error) {
	resp, err := physics.ParseResponse(c.Physics.Response)
	if err != nil {
		return physics.Params{}, err
	}
	p := physics.Params{
		G:             c.Physics.G,
		Dt:            c.Physics.Dt,
		SpeedScale:    c.Physics.SpeedScale,
		Restitution:   c.Physics.Restitution,
		Response:      resp,
		TraceCapacity: c.Trace.Capacity,
		TraceInterval: c.Trace.Interval,
	}
	return p, p.Validate()
}

func (c *Config) LaunchParams() control.LaunchConfig {
	return control.LaunchConfig{
		Speed:      c.Launch.Speed,
		Increment:  c.Launch.Increment,
		Nudge:      c.Launch.Nudge,
		Altitude:   c.Launch.Altitude,
		BallMass:   c.Ball.Mass,
		BallRadius: c.Ball.Radius,
	}
}

func (c *Config) SimConfig() sim.Config {
	at := make([]float64, len(c.Run.LaunchAt))
	copy(at, c.Run.LaunchAt)
	return sim.Config{
		Duration:     c.Run.Duration,
		LaunchAt:     at,
		EscapeRadius: c.Run.EscapeRadius,
	}
}

// NewWorld builds a world and a launcher from the config.
func (c *Config) NewWorld() (*physics.World, *control.Launcher, error) {
	p, err := c.PhysicsParams()
	if err != nil {
		return nil, nil, err
	}
	w, err := physics.NewWorld(p, c.Planet.Mass, c.Planet.Radius)
	if err != nil {
		return nil, nil, err
	}
	return w, control.NewLauncher(c.LaunchParams(), c.Planet.Radius), nil
}

// Fingerprint identifies the physical setup. Runs with equal fingerprints
// are comparable tick for tick.
func (c *Config) Fingerprint() string {
	section := struct {
		Planet  BodyConfig    `yaml:"planet"`
		Ball    BodyConfig    `yaml:"ball"`
		Physics PhysicsConfig `yaml:"physics"`
	}{c.Planet, c.Ball, c.Physics}

	data, err := yaml.Marshal(section)
	if err != nil {
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Run.LaunchAt = append([]float64(nil), c.Run.LaunchAt...)
	return &out
}
