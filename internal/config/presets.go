package config

import "sort"

var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"calm": func(c *Config) {
		c.Physics.MaxSpeed = 0.02
		c.Physics.EclipticForce = 0.0005
	},
	"heavy": func(c *Config) {
		c.Anchor.Mass = 200_000_000
		c.Physics.MaxSpeed = 0.08
	},
	"crowded": func(c *Config) {
		c.Bodies = 60
		c.Physics.MaxDistance = 30
	},
	"ghosts": func(c *Config) {
		c.Bodies = 40
		c.Physics.Collisions = false
	},
	"wide": func(c *Config) {
		c.Physics.MinDistance = 8
		c.Physics.MaxDistance = 80
		c.Ticks = 5000
	},
}

// GetPreset returns a fresh config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
