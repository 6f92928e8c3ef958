package config

import (
	"fmt"
	"sort"
)

// tunables maps dotted config keys to the numeric fields they set.
var tunables = map[string]func(*Config) *float64{
	"anchor.mass":            func(c *Config) *float64 { return &c.Anchor.Mass },
	"anchor.radius":          func(c *Config) *float64 { return &c.Anchor.Radius },
	"physics.g":              func(c *Config) *float64 { return &c.Physics.G },
	"physics.max_speed":      func(c *Config) *float64 { return &c.Physics.MaxSpeed },
	"physics.min_distance":   func(c *Config) *float64 { return &c.Physics.MinDistance },
	"physics.max_distance":   func(c *Config) *float64 { return &c.Physics.MaxDistance },
	"physics.ecliptic_force": func(c *Config) *float64 { return &c.Physics.EclipticForce },
	"physics.time_scale":     func(c *Config) *float64 { return &c.Physics.TimeScale },
}

// Set assigns a numeric field by its dotted key, as used in YAML files and
// environment overrides. Integer keys (bodies, ticks) are truncated.
func (c *Config) Set(key string, value float64) error {
	switch key {
	case "bodies":
		c.Bodies = int(value)
		return nil
	case "ticks":
		c.Ticks = int(value)
		return nil
	}
	field, ok := tunables[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %q", ErrInvalid, key)
	}
	*field(c) = value
	return nil
}

// Tunables lists the keys Set accepts.
func Tunables() []string {
	keys := []string{"bodies", "ticks"}
	for k := range tunables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Metrics = append([]string(nil), c.Metrics...)
	return &out
}
