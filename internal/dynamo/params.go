package dynamo

import "fmt"

// Fixed tuning of the integrator. These are not configurable: the orbit
// shapes the visualisation relies on were tuned against exactly these values.
const (
	StabilizeBlend     = 0.05
	StabilizeThreshold = 5.0
	MinGravityDistance = 3.0
	VerticalDamping    = 0.995
	EclipticBand       = 10.0 // multiples of body radius
	ReflectGain        = 1.5
	PullbackPosition   = 0.02
	PullbackVelocity   = 0.001
	HoverDilation      = 0.2
)

const (
	DefaultAnchorMass   = 50_000_000
	DefaultAnchorRadius = 1.5
	DefaultBodyMass     = 1000
)

// Params holds the per-world physical constants.
type Params struct {
	G             float64
	MaxSpeed      float64
	MinDistance   float64
	MaxDistance   float64
	EclipticForce float64
	TimeScale     float64
	TrailCapacity int
	TrailInterval int
	Collisions    bool
}

func DefaultParams() Params {
	return Params{
		G:             6.674e-11,
		MaxSpeed:      0.05,
		MinDistance:   5,
		MaxDistance:   40,
		EclipticForce: 0.0001,
		TimeScale:     0.5,
		TrailCapacity: DefaultTrailCapacity,
		TrailInterval: DefaultTrailInterval,
		Collisions:    true,
	}
}

func (p Params) Validate() error {
	switch {
	case p.G <= 0:
		return fmt.Errorf("%w: G must be positive, got %g", ErrParameterBounds, p.G)
	case p.MaxSpeed <= 0:
		return fmt.Errorf("%w: max speed must be positive, got %g", ErrParameterBounds, p.MaxSpeed)
	case p.TimeScale <= 0:
		return fmt.Errorf("%w: time scale must be positive, got %g", ErrParameterBounds, p.TimeScale)
	case p.MinDistance <= 0 || p.MinDistance >= p.MaxDistance:
		return fmt.Errorf("%w: need 0 < min distance < max distance, got %g and %g",
			ErrParameterBounds, p.MinDistance, p.MaxDistance)
	case p.EclipticForce < 0:
		return fmt.Errorf("%w: ecliptic force must not be negative", ErrParameterBounds)
	case p.TrailCapacity <= 0 || p.TrailInterval <= 0:
		return fmt.Errorf("%w: trail capacity and interval must be positive", ErrParameterBounds)
	}
	return nil
}
