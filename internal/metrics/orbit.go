package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/newsorbit/internal/sim"
)

// MaxSpeed tracks the highest orbiting speed seen across all ticks.
type MaxSpeed struct {
	name    string
	max     float64
	samples int
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(s sim.Snapshot) {
	for _, b := range s.Orbiting() {
		m.max = math.Max(m.max, b.Velocity.Magnitude())
	}
	m.samples++
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() {
	m.max = 0
	m.samples = 0
}

// MinAnchorDistance tracks the closest approach of any orbiting body to the
// anchor. It reads zero until a body has been seen.
type MinAnchorDistance struct {
	name string
	min  float64
	seen bool
}

func NewMinAnchorDistance() *MinAnchorDistance {
	return &MinAnchorDistance{name: "min_anchor_distance"}
}

func (m *MinAnchorDistance) Name() string { return m.name }

func (m *MinAnchorDistance) Observe(s sim.Snapshot) {
	if _, ok := s.Anchor(); !ok {
		return
	}
	dists := distances(s)
	if len(dists) == 0 {
		return
	}
	closest := floats.Min(dists)
	if !m.seen || closest < m.min {
		m.min = closest
		m.seen = true
	}
}

func (m *MinAnchorDistance) Value() float64 {
	if !m.seen {
		return 0
	}
	return m.min
}

func (m *MinAnchorDistance) Reset() {
	m.min = 0
	m.seen = false
}

// TotalMass reports the summed mass of every body in the latest snapshot.
// Drift is the largest relative change from the first observation.
type TotalMass struct {
	name     string
	initial  float64
	current  float64
	maxDrift float64
	samples  int
}

func NewTotalMass() *TotalMass {
	return &TotalMass{name: "total_mass"}
}

func (m *TotalMass) Name() string { return m.name }

func (m *TotalMass) Observe(s sim.Snapshot) {
	mass := s.TotalMass()
	if m.samples == 0 {
		m.initial = mass
	}
	m.current = mass
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(mass-m.initial) / math.Abs(m.initial)
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *TotalMass) Value() float64 { return m.current }

func (m *TotalMass) Drift() float64 { return m.maxDrift }

func (m *TotalMass) Reset() {
	m.initial = 0
	m.current = 0
	m.maxDrift = 0
	m.samples = 0
}

// AngularMomentum is the magnitude of the summed angular momentum of the
// orbiting bodies about the anchor in the latest snapshot.
type AngularMomentum struct {
	name    string
	current float64
}

func NewAngularMomentum() *AngularMomentum {
	return &AngularMomentum{name: "angular_momentum"}
}

func (m *AngularMomentum) Name() string { return m.name }

func (m *AngularMomentum) Observe(s sim.Snapshot) {
	anchor, ok := s.Anchor()
	if !ok {
		m.current = 0
		return
	}
	var lx, ly, lz float64
	for _, b := range s.Orbiting() {
		l := b.Position.Sub(anchor.Position).Cross(b.Velocity).Scale(b.Mass)
		lx += l.X
		ly += l.Y
		lz += l.Z
	}
	m.current = math.Sqrt(lx*lx + ly*ly + lz*lz)
}

func (m *AngularMomentum) Value() float64 { return m.current }

func (m *AngularMomentum) Reset() { m.current = 0 }

// DistanceSpread averages, over all ticks, the standard deviation of the
// orbiting bodies' distances to the anchor.
type DistanceSpread struct {
	name    string
	sum     float64
	samples int
}

func NewDistanceSpread() *DistanceSpread {
	return &DistanceSpread{name: "distance_spread"}
}

func (m *DistanceSpread) Name() string { return m.name }

func (m *DistanceSpread) Observe(s sim.Snapshot) {
	dists := distances(s)
	if len(dists) < 2 {
		return
	}
	m.sum += stat.StdDev(dists, nil)
	m.samples++
}

func (m *DistanceSpread) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *DistanceSpread) Reset() {
	m.sum = 0
	m.samples = 0
}

func distances(s sim.Snapshot) []float64 {
	bodies := s.Orbiting()
	out := make([]float64, 0, len(bodies))
	for _, b := range bodies {
		out = append(out, s.DistanceToAnchor(b))
	}
	return out
}

// Compile-time interface checks.
var (
	_ sim.Metric = (*MaxSpeed)(nil)
	_ sim.Metric = (*MinAnchorDistance)(nil)
	_ sim.Metric = (*TotalMass)(nil)
	_ sim.Metric = (*AngularMomentum)(nil)
	_ sim.Metric = (*DistanceSpread)(nil)
)
