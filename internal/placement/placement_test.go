package placement

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/newsorbit/internal/dynamo"
)

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func testAnchor() *dynamo.Body {
	return dynamo.NewAnchor("sun", "Sun", dynamo.DefaultAnchorMass, dynamo.DefaultAnchorRadius)
}

func TestPlaceTierDistance(t *testing.T) {
	tests := []struct {
		tier     dynamo.Tier
		min, max float64
	}{
		{dynamo.TierClose, 9.5, 10.5},
		{dynamo.TierMedium, 19, 21},
		{dynamo.TierFar, 28.5, 31.5},
		{dynamo.Tier(99), 19, 21},
	}

	anchor := testAnchor()
	p := New(dynamo.DefaultParams(), rand.New(rand.NewSource(7)))

	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			for i := 0; i < 200; i++ {
				b := p.Place(Spec{ID: "x", Tier: tt.tier}, anchor)
				d := b.Position.DistanceTo(anchor.Position)
				if d < tt.min-1e-9 || d > tt.max+1e-9 {
					t.Fatalf("distance %v outside [%v, %v]", d, tt.min, tt.max)
				}
			}
		})
	}
}

func TestPlaceMidpointDraws(t *testing.T) {
	params := dynamo.DefaultParams()
	anchor := testAnchor()
	b := New(params, constRand(0.5)).Place(Spec{ID: "a", Tier: dynamo.TierMedium}, anchor)

	if d := b.Position.Magnitude(); math.Abs(d-20) > 1e-9 {
		t.Errorf("expected distance 20, got %v", d)
	}

	want := 0.4 * math.Sqrt(params.G*dynamo.DefaultAnchorMass/20)
	if got := b.Velocity.Magnitude(); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected speed %v, got %v", want, got)
	}

	if math.Abs(b.Position.Normalized().Dot(b.Velocity.Normalized())) > 1e-9 {
		t.Error("velocity is not tangential to the radius")
	}
	if b.Velocity.Y != 0 {
		t.Errorf("expected zero vertical jitter, got %v", b.Velocity.Y)
	}
}

func TestPlaceDefaults(t *testing.T) {
	p := New(dynamo.DefaultParams(), constRand(0.5))

	b := p.Place(Spec{ID: "a"}, nil)
	if b.Mass != dynamo.DefaultBodyMass {
		t.Errorf("expected default mass, got %v", b.Mass)
	}
	if b.Role != dynamo.RoleOrbiting {
		t.Errorf("expected orbiting role, got %v", b.Role)
	}
	if b.Trail == nil || b.Trail.Cap() != dynamo.DefaultTrailCapacity {
		t.Error("expected trail with default capacity")
	}

	b = p.Place(Spec{ID: "b", Mass: 250}, nil)
	if b.Mass != 250 {
		t.Errorf("expected mass hint 250, got %v", b.Mass)
	}
}

func TestPlaceRelativeToAnchor(t *testing.T) {
	anchor := testAnchor()
	anchor.Position = dynamo.Vec3(100, -4, 7)

	b := New(dynamo.DefaultParams(), constRand(0.5)).Place(Spec{ID: "a", Tier: dynamo.TierClose}, anchor)
	if d := b.Position.DistanceTo(anchor.Position); math.Abs(d-10) > 1e-9 {
		t.Errorf("expected distance 10 from anchor, got %v", d)
	}
}

func TestPlaceElevationBound(t *testing.T) {
	anchor := testAnchor()
	p := New(dynamo.DefaultParams(), rand.New(rand.NewSource(3)))
	limit := math.Sin(0.3 * math.Pi)

	for i := 0; i < 500; i++ {
		b := p.Place(Spec{ID: "x", Tier: dynamo.TierFar}, anchor)
		if s := b.Position.Y / b.Position.Magnitude(); math.Abs(s) > limit+1e-9 {
			t.Fatalf("elevation sine %v exceeds %v", s, limit)
		}
	}
}

func TestPlaceReproducible(t *testing.T) {
	a := New(dynamo.DefaultParams(), rand.New(rand.NewSource(42))).Place(Spec{ID: "a"}, nil)
	b := New(dynamo.DefaultParams(), rand.New(rand.NewSource(42))).Place(Spec{ID: "a"}, nil)
	if a.Position != b.Position || a.Velocity != b.Velocity {
		t.Error("same seed produced different orbits")
	}
}

func TestRadius(t *testing.T) {
	tests := []struct {
		hint int
		want float64
	}{
		{0, MinRadius},
		{-5, MinRadius},
		{10, math.Max(MinRadius, math.Log(11)/30)},
		{1000, math.Log(1001) / 30},
		{1 << 30, MaxRadius},
	}

	for _, tt := range tests {
		if got := Radius(tt.hint); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Radius(%d) = %v, want %v", tt.hint, got, tt.want)
		}
	}
}
