package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/newsorbit/internal/dynamo"
)

const (
	DefaultTicks  = 2000
	DefaultBodies = 12
	EnvPrefix     = "NEWSORBIT"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Seed  int64 `yaml:"seed" mapstructure:"seed"`
	Ticks int   `yaml:"ticks" mapstructure:"ticks"`
	// Articles is a path to a JSON article list. When empty, Bodies
	// synthetic articles are generated instead.
	Articles string        `yaml:"articles" mapstructure:"articles"`
	Bodies   int           `yaml:"bodies" mapstructure:"bodies"`
	Anchor   AnchorConfig  `yaml:"anchor" mapstructure:"anchor"`
	Physics  PhysicsConfig `yaml:"physics" mapstructure:"physics"`
	Metrics  []string      `yaml:"metrics" mapstructure:"metrics"`
}

type AnchorConfig struct {
	Name   string  `yaml:"name" mapstructure:"name"`
	Mass   float64 `yaml:"mass" mapstructure:"mass"`
	Radius float64 `yaml:"radius" mapstructure:"radius"`
}

type PhysicsConfig struct {
	G             float64 `yaml:"g" mapstructure:"g"`
	MaxSpeed      float64 `yaml:"max_speed" mapstructure:"max_speed"`
	MinDistance   float64 `yaml:"min_distance" mapstructure:"min_distance"`
	MaxDistance   float64 `yaml:"max_distance" mapstructure:"max_distance"`
	EclipticForce float64 `yaml:"ecliptic_force" mapstructure:"ecliptic_force"`
	TimeScale     float64 `yaml:"time_scale" mapstructure:"time_scale"`
	TrailCapacity int     `yaml:"trail_capacity" mapstructure:"trail_capacity"`
	TrailInterval int     `yaml:"trail_interval" mapstructure:"trail_interval"`
	Collisions    bool    `yaml:"collisions" mapstructure:"collisions"`
}

func DefaultConfig() *Config {
	p := dynamo.DefaultParams()
	return &Config{
		Seed:   1,
		Ticks:  DefaultTicks,
		Bodies: DefaultBodies,
		Anchor: AnchorConfig{
			Name:   "Today",
			Mass:   dynamo.DefaultAnchorMass,
			Radius: dynamo.DefaultAnchorRadius,
		},
		Physics: PhysicsConfig{
			G:             p.G,
			MaxSpeed:      p.MaxSpeed,
			MinDistance:   p.MinDistance,
			MaxDistance:   p.MaxDistance,
			EclipticForce: p.EclipticForce,
			TimeScale:     p.TimeScale,
			TrailCapacity: p.TrailCapacity,
			TrailInterval: p.TrailInterval,
			Collisions:    p.Collisions,
		},
		Metrics: []string{"max_speed", "min_anchor_distance", "total_mass"},
	}
}

// Load reads a YAML file over the defaults. Environment variables prefixed
// with NEWSORBIT_ override individual keys, e.g. NEWSORBIT_PHYSICS_MAX_SPEED.
// An empty path loads only defaults and environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Seed viper with every key so environment overrides apply even when the
	// file leaves a key out.
	defaults, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("marshal defaults: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("read defaults: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Ticks < 0 {
		return fmt.Errorf("%w: ticks must not be negative", ErrInvalid)
	}
	if c.Bodies < 0 {
		return fmt.Errorf("%w: bodies must not be negative", ErrInvalid)
	}
	if !(c.Anchor.Mass > 0) || !(c.Anchor.Radius > 0) {
		return fmt.Errorf("%w: anchor mass and radius must be positive", ErrInvalid)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Params converts the physics section into world parameters.
func (c *Config) Params() dynamo.Params {
	return dynamo.Params{
		G:             c.Physics.G,
		MaxSpeed:      c.Physics.MaxSpeed,
		MinDistance:   c.Physics.MinDistance,
		MaxDistance:   c.Physics.MaxDistance,
		EclipticForce: c.Physics.EclipticForce,
		TimeScale:     c.Physics.TimeScale,
		TrailCapacity: c.Physics.TrailCapacity,
		TrailInterval: c.Physics.TrailInterval,
		Collisions:    c.Physics.Collisions,
	}
}

// NewAnchor builds the configured anchor body.
func (c *Config) NewAnchor() *dynamo.Body {
	return dynamo.NewAnchor("anchor", c.Anchor.Name, c.Anchor.Mass, c.Anchor.Radius)
}
