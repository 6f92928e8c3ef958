// Package collision merges overlapping bodies by mass-based absorption.
package collision

import (
	"github.com/san-kum/newsorbit/internal/dynamo"
)

// Rand supplies the coin flip for equal-mass collisions.
type Rand interface {
	Float64() float64
}

// Absorption records one merge. Masses are the values before the merge.
type Absorption struct {
	Winner     *dynamo.Body
	Loser      *dynamo.Body
	WinnerMass float64
	LoserMass  float64
}

type Resolver struct {
	rng Rand
}

func NewResolver(rng Rand) *Resolver {
	return &Resolver{rng: rng}
}

// Resolve scans every unordered pair once, in slice order. Each overlapping
// pair is merged into the heavier body. An anchor wins regardless of mass,
// even against a heavier article, so the system centre is never absorbed.
// A body absorbed earlier in the pass is skipped for the rest of it, so no
// body is ever consumed twice.
//
// Resolve only updates winner masses. Removing the losers is left to the
// caller.
func (r *Resolver) Resolve(bodies []*dynamo.Body) []Absorption {
	var out []Absorption
	consumed := make([]bool, len(bodies))

	for i := 0; i < len(bodies); i++ {
		if consumed[i] {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			if consumed[i] {
				break
			}
			if consumed[j] {
				continue
			}

			a, b := bodies[i], bodies[j]
			if !Overlaps(a, b) {
				continue
			}

			winner, loser, li := a, b, j
			if r.firstLoses(a, b) {
				winner, loser, li = b, a, i
			}

			out = append(out, Absorption{
				Winner:     winner,
				Loser:      loser,
				WinnerMass: winner.Mass,
				LoserMass:  loser.Mass,
			})
			winner.Mass += loser.Mass
			consumed[li] = true
		}
	}
	return out
}

func (r *Resolver) firstLoses(a, b *dynamo.Body) bool {
	switch {
	case a.IsAnchor():
		return false
	case b.IsAnchor():
		return true
	case a.Mass > b.Mass:
		return false
	case b.Mass > a.Mass:
		return true
	}
	return r.rng.Float64() >= 0.5
}

// Overlaps reports whether the spheres of a and b intersect.
func Overlaps(a, b *dynamo.Body) bool {
	return a.Position.DistanceTo(b.Position) < a.Radius+b.Radius
}
