package sim

import "github.com/san-kum/newsorbit/internal/dynamo"

// BodyState is the renderable state of one body.
type BodyState struct {
	ID         string
	Name       string
	Position   dynamo.Vector3
	Velocity   dynamo.Vector3
	Mass       float64
	Radius     float64
	Role       dynamo.Role
	Tier       dynamo.Tier
	IsFollowed bool
	IsHovered  bool
	Trail      []dynamo.Vector3
	Payload    any
}

func (b BodyState) IsAnchor() bool { return b.Role == dynamo.RoleAnchor }

// Snapshot is a read-only copy of a world. Bodies are sorted by id.
type Snapshot struct {
	Tick       int64
	Paused     bool
	AnchorID   string
	FollowedID string
	HoveredID  string
	Bodies     []BodyState
}

// Get returns the body with the given id.
func (s Snapshot) Get(id string) (BodyState, bool) {
	for _, b := range s.Bodies {
		if b.ID == id {
			return b, true
		}
	}
	return BodyState{}, false
}

func (s Snapshot) Anchor() (BodyState, bool) {
	if s.AnchorID == "" {
		return BodyState{}, false
	}
	return s.Get(s.AnchorID)
}

// Orbiting returns the non-anchor bodies.
func (s Snapshot) Orbiting() []BodyState {
	out := make([]BodyState, 0, len(s.Bodies))
	for _, b := range s.Bodies {
		if !b.IsAnchor() {
			out = append(out, b)
		}
	}
	return out
}

// DistanceToAnchor is the distance from b to the anchor, or from the origin
// when there is no anchor.
func (s Snapshot) DistanceToAnchor(b BodyState) float64 {
	center := dynamo.Zero
	if a, ok := s.Anchor(); ok {
		center = a.Position
	}
	return b.Position.DistanceTo(center)
}

// TotalMass sums the mass of every body, anchor included.
func (s Snapshot) TotalMass() float64 {
	total := 0.0
	for _, b := range s.Bodies {
		total += b.Mass
	}
	return total
}

func stateOf(b *dynamo.Body, followed, hovered string) BodyState {
	var trail []dynamo.Vector3
	if b.Trail != nil {
		trail = b.Trail.Points()
	}
	return BodyState{
		ID:         b.ID,
		Name:       b.Name,
		Position:   b.Position,
		Velocity:   b.Velocity,
		Mass:       b.Mass,
		Radius:     b.Radius,
		Role:       b.Role,
		Tier:       b.Tier,
		IsFollowed: b.ID == followed,
		IsHovered:  b.ID == hovered,
		Trail:      trail,
		Payload:    b.Payload,
	}
}
