// Package placement turns an article-like input into an initial orbit.
package placement

import (
	"math"

	"github.com/san-kum/newsorbit/internal/dynamo"
)

const (
	MinRadius = 0.07
	MaxRadius = 0.25

	distanceJitter = 0.05
	maxElevation   = 0.3 * math.Pi
	minEccentric   = 0.3
	maxEccentric   = 0.5
	verticalJitter = 0.005
)

// Rand is the random source used for placement. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Spec describes a body to place.
type Spec struct {
	ID       string
	Name     string
	Tier     dynamo.Tier
	SizeHint int
	// Mass of zero or less means dynamo.DefaultBodyMass.
	Mass    float64
	Payload any
}

// Placer places bodies around an anchor.
type Placer struct {
	params dynamo.Params
	rng    Rand
}

func New(params dynamo.Params, rng Rand) *Placer {
	return &Placer{params: params, rng: rng}
}

// Place returns an orbiting body on a sub-circular orbit around anchor.
// A nil anchor is treated as a default-mass anchor at the origin.
//
// Random draws are taken in this order: distance jitter, azimuth, elevation,
// eccentricity factor, vertical velocity jitter.
func (p *Placer) Place(s Spec, anchor *dynamo.Body) *dynamo.Body {
	center := dynamo.Zero
	centerVel := dynamo.Zero
	anchorMass := float64(dynamo.DefaultAnchorMass)
	if anchor != nil {
		center = anchor.Position
		centerVel = anchor.Velocity
		anchorMass = anchor.Mass
	}

	tier := s.Tier
	if tier < dynamo.TierClose || tier > dynamo.TierFar {
		tier = dynamo.TierMedium
	}

	distance := tier.BaseDistance() * (1 - distanceJitter + p.rng.Float64()*2*distanceJitter)
	azimuth := p.rng.Float64() * 2 * math.Pi
	elevation := (p.rng.Float64()*2 - 1) * maxElevation

	offset := dynamo.Vec3(
		distance*math.Cos(elevation)*math.Cos(azimuth),
		distance*math.Sin(elevation),
		distance*math.Cos(elevation)*math.Sin(azimuth),
	)

	speed := CircularSpeed(p.params.G, anchorMass, distance)
	speed *= minEccentric + p.rng.Float64()*(maxEccentric-minEccentric)

	velocity := dynamo.Vec3(
		-speed*math.Sin(azimuth),
		(p.rng.Float64()*2-1)*verticalJitter,
		speed*math.Cos(azimuth),
	)

	mass := s.Mass
	if !(mass > 0) {
		mass = dynamo.DefaultBodyMass
	}

	return &dynamo.Body{
		ID:       s.ID,
		Name:     s.Name,
		Position: center.Add(offset),
		Velocity: centerVel.Add(velocity),
		Mass:     mass,
		Radius:   Radius(s.SizeHint),
		Role:     dynamo.RoleOrbiting,
		Tier:     tier,
		Trail:    dynamo.NewTrail(p.params.TrailCapacity),
		Payload:  s.Payload,
	}
}

// CircularSpeed is the speed of a circular orbit at distance.
func CircularSpeed(g, anchorMass, distance float64) float64 {
	if distance <= 0 {
		return 0
	}
	return math.Sqrt(g * anchorMass / distance)
}

// Radius maps a content size hint to a visual radius.
func Radius(sizeHint int) float64 {
	if sizeHint < 0 {
		sizeHint = 0
	}
	r := math.Log(float64(sizeHint)+1) / 30
	return math.Max(MinRadius, math.Min(MaxRadius, r))
}
