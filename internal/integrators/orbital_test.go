package integrators

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/newsorbit/internal/dynamo"
	"github.com/san-kum/newsorbit/internal/placement"
)

func newAnchor() *dynamo.Body {
	return dynamo.NewAnchor("sun", "Sun", dynamo.DefaultAnchorMass, dynamo.DefaultAnchorRadius)
}

func newBody(pos, vel dynamo.Vector3) *dynamo.Body {
	return &dynamo.Body{
		ID:       "b",
		Position: pos,
		Velocity: vel,
		Mass:     1000,
		Radius:   0.1,
		Trail:    dynamo.NewTrail(dynamo.DefaultTrailCapacity),
	}
}

// weakParams switches gravity off for all practical purposes so boundary
// rules can be checked in isolation.
func weakParams() dynamo.Params {
	p := dynamo.DefaultParams()
	p.G = 1e-300
	return p
}

func TestOrbitalSkipsAnchor(t *testing.T) {
	anchor := newAnchor()
	anchor.Velocity = dynamo.Vec3(1, 2, 3)
	before := *anchor

	o := NewOrbital(dynamo.DefaultParams(), nil)
	for i := 0; i < dynamo.DefaultTrailInterval; i++ {
		o.Step(anchor, anchor, false)
	}

	if anchor.Position != before.Position || anchor.Velocity != before.Velocity {
		t.Error("anchor was integrated")
	}
	if anchor.Trail.Len() != 0 {
		t.Error("anchor trail was sampled")
	}
}

func TestOrbitalGravity(t *testing.T) {
	params := dynamo.DefaultParams()
	anchor := newAnchor()
	b := newBody(dynamo.Vec3(20, 0, 0), dynamo.Zero)

	NewOrbital(params, nil).Step(b, anchor, false)

	accel := params.G * dynamo.DefaultAnchorMass / 400
	// Zero angular momentum means the tangential target is zero, so the
	// blend keeps 95% of the gravity kick.
	wantV := -accel * (1 - dynamo.StabilizeBlend)
	if math.Abs(b.Velocity.X-wantV) > 1e-15 {
		t.Errorf("expected vx %v, got %v", wantV, b.Velocity.X)
	}
	wantX := 20 + wantV*params.TimeScale
	if math.Abs(b.Position.X-wantX) > 1e-12 {
		t.Errorf("expected x %v, got %v", wantX, b.Position.X)
	}
}

func TestOrbitalGravitySoftening(t *testing.T) {
	params := dynamo.DefaultParams()
	params.MinDistance = 0.5
	anchor := newAnchor()

	near := newBody(dynamo.Vec3(1, 0, 0), dynamo.Zero)
	at3 := newBody(dynamo.Vec3(3, 0, 0), dynamo.Zero)
	o := NewOrbital(params, nil)
	o.Step(near, anchor, false)
	o.Step(at3, anchor, false)

	if math.Abs(near.Velocity.X-at3.Velocity.X) > 1e-15 {
		t.Errorf("expected equal pull inside softening radius, got %v and %v", near.Velocity.X, at3.Velocity.X)
	}
}

func TestOrbitalSpeedCap(t *testing.T) {
	params := dynamo.DefaultParams()
	b := newBody(dynamo.Vec3(20, 0, 0), dynamo.Vec3(0, 0, 3))

	NewOrbital(params, nil).Step(b, newAnchor(), false)

	if s := b.Velocity.Magnitude(); s > params.MaxSpeed+1e-12 {
		t.Errorf("speed %v exceeds cap %v", s, params.MaxSpeed)
	}
}

func TestOrbitalHeavyBodyStaysFinite(t *testing.T) {
	params := dynamo.DefaultParams()
	anchor := dynamo.NewAnchor("sun", "Sun", 1e20, dynamo.DefaultAnchorRadius)
	b := newBody(dynamo.Vec3(20, 0, 0), dynamo.Zero)
	b.Mass = 1e300

	NewOrbital(params, nil).Step(b, anchor, false)

	if !b.Velocity.IsFinite() || !b.Position.IsFinite() {
		t.Fatalf("state overflowed: pos %v vel %v", b.Position, b.Velocity)
	}
	if s := b.Velocity.Magnitude(); s > params.MaxSpeed+1e-12 {
		t.Errorf("speed %v exceeds cap %v", s, params.MaxSpeed)
	}
	if b.Velocity.X >= 0 {
		t.Errorf("expected pull toward anchor, got vx %v", b.Velocity.X)
	}
}

func TestOrbitalMinDistance(t *testing.T) {
	params := weakParams()
	anchor := newAnchor()
	b := newBody(dynamo.Vec3(4, 0, 0), dynamo.Vec3(-0.04, 0, 0.01))

	NewOrbital(params, nil).Step(b, anchor, false)

	if d := b.Position.DistanceTo(anchor.Position); math.Abs(d-params.MinDistance) > 1e-9 {
		t.Errorf("expected body relocated to %v, got %v", params.MinDistance, d)
	}
	if b.Position.Y != 0 || b.Position.Z <= 0 {
		t.Errorf("expected relocation along the outward radial, got %v", b.Position)
	}
	radial := b.Position.Normalized()
	if b.Velocity.Dot(radial) <= 0 {
		t.Errorf("expected outward radial velocity after reflection, got %v", b.Velocity)
	}
}

func TestOrbitalDegenerateAtAnchor(t *testing.T) {
	params := weakParams()
	anchor := newAnchor()
	b := newBody(dynamo.Zero, dynamo.Zero)

	NewOrbital(params, nil).Step(b, anchor, false)

	if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
		t.Fatalf("non-finite state: %v %v", b.Position, b.Velocity)
	}
	if d := b.Position.Magnitude(); math.Abs(d-params.MinDistance) > 1e-9 {
		t.Errorf("expected distance %v, got %v", params.MinDistance, d)
	}
}

func TestOrbitalMaxDistancePullback(t *testing.T) {
	params := weakParams()
	anchor := newAnchor()
	b := newBody(dynamo.Vec3(50, 0, 0), dynamo.Zero)

	NewOrbital(params, nil).Step(b, anchor, false)

	wantX := 50 - dynamo.PullbackPosition*(10.0/10)
	if math.Abs(b.Position.X-wantX) > 1e-12 {
		t.Errorf("expected x %v, got %v", wantX, b.Position.X)
	}
	if math.Abs(b.Velocity.X+dynamo.PullbackVelocity) > 1e-12 {
		t.Errorf("expected inward velocity %v, got %v", -dynamo.PullbackVelocity, b.Velocity.X)
	}
}

func TestOrbitalEcliptic(t *testing.T) {
	tests := []struct {
		name  string
		y     float64
		wantV float64
	}{
		{"above band", 5, -0.0001 * dynamo.VerticalDamping},
		{"below band", -5, 0.0001 * dynamo.VerticalDamping},
		{"inside band", 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := weakParams()
			b := newBody(dynamo.Vec3(0, tt.y, 20), dynamo.Zero)
			NewOrbital(params, nil).Step(b, newAnchor(), false)
			if math.Abs(b.Velocity.Y-tt.wantV) > 1e-12 {
				t.Errorf("expected vy %v, got %v", tt.wantV, b.Velocity.Y)
			}
		})
	}
}

func TestOrbitalEclipticFollowsAnchor(t *testing.T) {
	tests := []struct {
		name  string
		y     float64
		wantV float64
	}{
		{"level with anchor", 10, 0},
		{"above anchor", 15, -0.0001 * dynamo.VerticalDamping},
		{"below anchor", 5, 0.0001 * dynamo.VerticalDamping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchor := newAnchor()
			anchor.Position = dynamo.Vec3(0, 10, 0)
			b := newBody(dynamo.Vec3(0, tt.y, 20), dynamo.Zero)
			NewOrbital(weakParams(), nil).Step(b, anchor, false)
			if math.Abs(b.Velocity.Y-tt.wantV) > 1e-12 {
				t.Errorf("expected vy %v, got %v", tt.wantV, b.Velocity.Y)
			}
		})
	}
}

func TestOrbitalVerticalDamping(t *testing.T) {
	params := weakParams()
	b := newBody(dynamo.Vec3(10, 0, 0), dynamo.Vec3(0, 0.01, 0))

	NewOrbital(params, nil).Step(b, newAnchor(), false)

	if want := 0.01 * dynamo.VerticalDamping; math.Abs(b.Velocity.Y-want) > 1e-12 {
		t.Errorf("expected vy %v, got %v", want, b.Velocity.Y)
	}
}

func TestOrbitalHoverDilation(t *testing.T) {
	params := dynamo.DefaultParams()
	start := dynamo.Vec3(20, 0, 0)
	vel := dynamo.Vec3(0, 0, 0.01)

	plain := newBody(start, vel)
	hovered := newBody(start, vel)
	o := NewOrbital(params, nil)
	o.Step(plain, newAnchor(), false)
	o.Step(hovered, newAnchor(), true)

	if !plain.Velocity.ApproxEqual(hovered.Velocity, 1e-15) {
		t.Errorf("dilation leaked into stored velocity: %v vs %v", plain.Velocity, hovered.Velocity)
	}

	full := plain.Position.Sub(start).Magnitude()
	dilated := hovered.Position.Sub(start).Magnitude()
	if ratio := dilated / full; math.Abs(ratio-dynamo.HoverDilation) > 1e-9 {
		t.Errorf("expected displacement ratio %v, got %v", dynamo.HoverDilation, ratio)
	}
}

func TestOrbitalTrailSampling(t *testing.T) {
	b := newBody(dynamo.Vec3(20, 0, 0), dynamo.Vec3(0, 0, 0.005))
	o := NewOrbital(dynamo.DefaultParams(), nil)
	anchor := newAnchor()

	for i := 0; i < 4; i++ {
		o.Step(b, anchor, false)
	}
	if b.Trail.Len() != 0 {
		t.Fatalf("expected no sample before 5th tick, got %d", b.Trail.Len())
	}
	o.Step(b, anchor, false)
	pts := b.Trail.Points()
	if len(pts) != 1 || pts[0] != b.Position {
		t.Errorf("expected 5th tick position sampled, got %v", pts)
	}
}

func TestOrbitalBoundsLongRun(t *testing.T) {
	params := dynamo.DefaultParams()
	anchor := newAnchor()
	rng := rand.New(rand.NewSource(11))
	placer := placement.New(params, rng)
	o := NewOrbital(params, nil)

	bodies := make([]*dynamo.Body, 0, 30)
	for i := 0; i < 30; i++ {
		bodies = append(bodies, placer.Place(placement.Spec{ID: "b", Tier: dynamo.Tier(i % 3)}, anchor))
	}

	for tick := 0; tick < 3000; tick++ {
		for _, b := range bodies {
			o.Step(b, anchor, false)
			if s := b.Velocity.Magnitude(); s > params.MaxSpeed+1e-12 {
				t.Fatalf("tick %d: speed %v over cap", tick, s)
			}
			if d := b.Position.DistanceTo(anchor.Position); d < params.MinDistance-1e-9 {
				t.Fatalf("tick %d: distance %v under minimum", tick, d)
			}
			if !b.Position.IsFinite() {
				t.Fatalf("tick %d: non-finite position", tick)
			}
		}
	}
}

func TestBlendTangential(t *testing.T) {
	r := dynamo.Vec3(10, 0, 0)
	v := dynamo.Vec3(0.2, 0, 0.1)
	L := r.Cross(v)

	got := blendTangential(v, L, r, 10)
	want := v.Scale(0.95).Add(dynamo.Vec3(0, 0, 0.1).Scale(0.05))
	if !got.ApproxEqual(want, 1e-15) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
