package collision

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/newsorbit/internal/dynamo"
)

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func body(id string, x, mass, radius float64) *dynamo.Body {
	return &dynamo.Body{ID: id, Position: dynamo.Vec3(x, 0, 0), Mass: mass, Radius: radius}
}

func TestResolveHeavierWins(t *testing.T) {
	g := NewWithT(t)

	a := body("a", 0, 100, 1)
	b := body("b", 1.5, 300, 1)

	got := NewResolver(fixedRand(0)).Resolve([]*dynamo.Body{a, b})

	g.Expect(got).To(HaveLen(1))
	g.Expect(got[0].Winner).To(BeIdenticalTo(b))
	g.Expect(got[0].Loser).To(BeIdenticalTo(a))
	g.Expect(got[0].WinnerMass).To(Equal(300.0))
	g.Expect(got[0].LoserMass).To(Equal(100.0))
	g.Expect(b.Mass).To(Equal(400.0))
}

func TestResolveNoOverlap(t *testing.T) {
	g := NewWithT(t)

	a := body("a", 0, 100, 1)
	b := body("b", 2, 300, 1)

	g.Expect(NewResolver(fixedRand(0)).Resolve([]*dynamo.Body{a, b})).To(BeEmpty())
	g.Expect(a.Mass).To(Equal(100.0))
	g.Expect(b.Mass).To(Equal(300.0))
}

func TestResolveTieBreak(t *testing.T) {
	tests := []struct {
		name   string
		flip   float64
		winner string
	}{
		{"heads keeps first", 0.2, "a"},
		{"tails keeps second", 0.7, "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			a := body("a", 0, 500, 1)
			b := body("b", 0.5, 500, 1)

			got := NewResolver(fixedRand(tt.flip)).Resolve([]*dynamo.Body{a, b})
			g.Expect(got).To(HaveLen(1))
			g.Expect(got[0].Winner.ID).To(Equal(tt.winner))
			g.Expect(got[0].Winner.Mass).To(Equal(1000.0))
		})
	}
}

func TestResolveAnchorAlwaysWins(t *testing.T) {
	g := NewWithT(t)

	sun := dynamo.NewAnchor("sun", "Sun", 10, 2)
	heavy := body("heavy", 1, 1e9, 0.2)

	got := NewResolver(fixedRand(0)).Resolve([]*dynamo.Body{heavy, sun})
	g.Expect(got).To(HaveLen(1))
	g.Expect(got[0].Winner).To(BeIdenticalTo(sun))
	g.Expect(sun.Mass).To(Equal(1e9 + 10))
}

func TestResolveConsumedOnce(t *testing.T) {
	g := NewWithT(t)

	// a overlaps both b and c. b absorbs a first; a must not be merged again.
	a := body("a", 0, 100, 1)
	b := body("b", 1, 200, 0.5)
	c := body("c", -1, 300, 0.5)

	bodies := []*dynamo.Body{a, b, c}
	total := a.Mass + b.Mass + c.Mass

	got := NewResolver(fixedRand(0)).Resolve(bodies)

	g.Expect(got).To(HaveLen(1))
	g.Expect(got[0].Loser).To(BeIdenticalTo(a))
	g.Expect(got[0].Winner).To(BeIdenticalTo(b))
	g.Expect(b.Mass + c.Mass).To(Equal(total))
}

func TestResolveChainConservesMass(t *testing.T) {
	g := NewWithT(t)

	bodies := []*dynamo.Body{
		body("a", 0, 10, 1),
		body("b", 0.5, 20, 1),
		body("c", 1, 30, 1),
		body("d", 1.5, 40, 1),
	}
	total := 0.0
	for _, b := range bodies {
		total += b.Mass
	}

	got := NewResolver(fixedRand(0)).Resolve(bodies)

	losers := map[string]bool{}
	for _, ab := range got {
		g.Expect(losers).NotTo(HaveKey(ab.Loser.ID), "body absorbed twice")
		g.Expect(losers).NotTo(HaveKey(ab.Winner.ID), "consumed body won a merge")
		losers[ab.Loser.ID] = true
	}

	remaining := 0.0
	for _, b := range bodies {
		if !losers[b.ID] {
			remaining += b.Mass
		}
	}
	g.Expect(remaining).To(BeNumerically("~", total, 1e-9))
}
