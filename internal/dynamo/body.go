package dynamo

import (
	"fmt"
	"math"
	"strings"
)

// Role distinguishes the fixed attractor from the bodies orbiting it.
type Role int

const (
	RoleOrbiting Role = iota
	RoleAnchor
)

func (r Role) String() string {
	if r == RoleAnchor {
		return "anchor"
	}
	return "orbiting"
}

// Tier is the coarse relevance class that picks a body's initial orbit.
type Tier int

const (
	TierClose Tier = iota
	TierMedium
	TierFar
)

var tierNames = [...]string{"close", "medium", "far"}

func (t Tier) String() string {
	if t < TierClose || t > TierFar {
		return tierNames[TierMedium]
	}
	return tierNames[t]
}

// ParseTier maps a label to a tier. Unknown or empty labels yield TierMedium.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "close":
		return TierClose
	case "far":
		return TierFar
	default:
		return TierMedium
	}
}

// BaseDistance is the nominal orbital radius for the tier.
func (t Tier) BaseDistance() float64 {
	switch t {
	case TierClose:
		return 10
	case TierFar:
		return 30
	default:
		return 20
	}
}

// Body is a simulated point mass. Bodies are owned by a sim.World once added;
// outside code should only read them through snapshots.
type Body struct {
	ID       string
	Name     string
	Position Vector3
	Velocity Vector3
	Mass     float64
	Radius   float64
	Role     Role
	Tier     Tier
	Trail    *Trail
	// Payload is the originating article. The engine never looks inside it.
	Payload any

	ticks int
}

// NewAnchor builds the fixed central body.
func NewAnchor(id, name string, mass, radius float64) *Body {
	return &Body{
		ID:     id,
		Name:   name,
		Mass:   mass,
		Radius: radius,
		Role:   RoleAnchor,
		Tier:   TierMedium,
		Trail:  NewTrail(DefaultTrailCapacity),
	}
}

func (b *Body) IsAnchor() bool { return b.Role == RoleAnchor }

// Validate checks the fields a World relies on.
func (b *Body) Validate() error {
	switch {
	case b.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidBody)
	case !(b.Mass > 0) || math.IsInf(b.Mass, 1):
		return fmt.Errorf("%w: %s: mass must be positive and finite, got %g", ErrInvalidBody, b.ID, b.Mass)
	case !(b.Radius > 0) || math.IsInf(b.Radius, 1):
		return fmt.Errorf("%w: %s: radius must be positive and finite, got %g", ErrInvalidBody, b.ID, b.Radius)
	case !b.Position.IsFinite() || !b.Velocity.IsFinite():
		return fmt.Errorf("%w: %s: non-finite position or velocity", ErrInvalidBody, b.ID)
	}
	return nil
}

// SampleTrail advances the body's tick counter and records the current
// position every interval ticks.
func (b *Body) SampleTrail(interval int) {
	b.ticks++
	if b.Trail == nil || interval <= 0 {
		return
	}
	if b.ticks%interval == 0 {
		b.Trail.Push(b.Position)
	}
}

