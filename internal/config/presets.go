package config

import (
	"sort"

	"github.com/san-kum/cannon/internal/physics"
)

// Presets are complete configurations keyed by name.
var Presets = map[string]*Config{
	"cannon": preset(func(c *Config) {
		c.Physics.G = 0.35
		c.Physics.Response = physics.ResponseRollback.String()
	}),
	"bounce": preset(func(c *Config) {
		c.Launch.Speed = 10
		c.Run.Duration = 30
	}),
	"elastic": preset(func(c *Config) {
		c.Physics.Restitution = 1
		c.Launch.Speed = 10
		c.Run.Duration = 30
	}),
	"orbit": preset(func(c *Config) {
		c.Launch.Speed = 34
		c.Run.Duration = 120
	}),
	"escape": preset(func(c *Config) {
		c.Launch.Speed = 60
		c.Run.Duration = 60
	}),
	"fast": preset(func(c *Config) {
		c.Physics.SpeedScale = 2
		c.Launch.Speed = 34
		c.Run.Duration = 60
	}),
	"barrage": preset(func(c *Config) {
		c.Launch.Speed = 0
		c.Launch.Increment = 8
		c.Run.Duration = 60
		c.Run.LaunchAt = []float64{0, 5, 10, 15, 20, 25}
	}),
}

func preset(apply func(c *Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
