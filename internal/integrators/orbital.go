package integrators

import (
	"io"
	"log/slog"
	"math"

	"github.com/san-kum/newsorbit/internal/dynamo"
)

// Orbital advances an orbiting body by one logical tick around a single
// attractor. It is a fixed-step explicit Euler scheme with angular momentum
// blending, a speed cap, ecliptic damping and radial boundaries.
type Orbital struct {
	params dynamo.Params
	log    *slog.Logger
}

func NewOrbital(params dynamo.Params, log *slog.Logger) *Orbital {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orbital{params: params, log: log}
}

func (o *Orbital) Params() dynamo.Params { return o.params }

// Step integrates b for one tick. Anchor bodies are never touched. When
// hovered is set, the displacement for this tick uses a dilated copy of the
// velocity; the stored velocity does not see the dilation.
func (o *Orbital) Step(b, anchor *dynamo.Body, hovered bool) {
	if b == nil || b.IsAnchor() {
		return
	}

	v := b.Velocity
	var r dynamo.Vector3
	if anchor != nil {
		r = b.Position.Sub(anchor.Position)
		distance := r.Magnitude()
		angular := r.Cross(v)

		v = v.Add(o.gravity(b, anchor, r, distance))
		if distance > dynamo.StabilizeThreshold {
			v = blendTangential(v, angular, r, distance)
		}
	}

	v = v.ClampedMagnitude(o.params.MaxSpeed)

	// The ecliptic is the plane through the anchor.
	y := b.Position.Y
	if anchor != nil {
		y -= anchor.Position.Y
	}
	if math.Abs(y) > b.Radius*dynamo.EclipticBand {
		v.Y -= math.Copysign(o.params.EclipticForce, y)
	}
	v.Y *= dynamo.VerticalDamping

	displacement := v
	if hovered {
		displacement = v.Scale(dynamo.HoverDilation)
	}
	b.Position = b.Position.Add(displacement.Scale(o.params.TimeScale))

	if anchor != nil {
		v = o.enforceBounds(b, anchor, v, r)
	}

	// The boundary nudges may push the speed back over the cap.
	b.Velocity = v.ClampedMagnitude(o.params.MaxSpeed)
	b.SampleTrail(o.params.TrailInterval)
}

// gravity returns the velocity change from the anchor's pull for one tick.
func (o *Orbital) gravity(b, anchor *dynamo.Body, r dynamo.Vector3, distance float64) dynamo.Vector3 {
	dir := r.Scale(-1).Normalized()
	if dir.IsZero() {
		o.log.Debug("degenerate vector", "op", "normalize", "body", b.ID, "stage", "gravity")
		return dynamo.Zero
	}

	// The body's own mass cancels out of F/m.
	effective := math.Max(distance, dynamo.MinGravityDistance)
	return dir.Scale(o.params.G * anchor.Mass / (effective * effective))
}

// blendTangential nudges v toward the purely tangential velocity that would
// carry angular momentum L at radius r.
func blendTangential(v, angular, r dynamo.Vector3, distance float64) dynamo.Vector3 {
	tangential := angular.Cross(r).Div(distance * distance)
	return v.Scale(1 - dynamo.StabilizeBlend).Add(tangential.Scale(dynamo.StabilizeBlend))
}

// enforceBounds keeps b between MinDistance and MaxDistance of the anchor.
// prevOffset is the body's offset from the anchor before it moved and is used
// as the outward direction if the body lands exactly on the anchor.
func (o *Orbital) enforceBounds(b, anchor *dynamo.Body, v, prevOffset dynamo.Vector3) dynamo.Vector3 {
	offset := b.Position.Sub(anchor.Position)
	distance := offset.Magnitude()

	if distance < o.params.MinDistance {
		radial := offset.Normalized()
		if radial.IsZero() {
			o.log.Debug("degenerate vector", "op", "normalize", "body", b.ID, "stage", "min_distance")
			radial = prevOffset.Normalized()
			if radial.IsZero() {
				radial = dynamo.Vec3(1, 0, 0)
			}
		}

		b.Position = anchor.Position.Add(radial.Scale(o.params.MinDistance))
		if radialSpeed := v.Dot(radial); radialSpeed < 0 {
			v = v.Sub(radial.Scale(radialSpeed * dynamo.ReflectGain))
		}
		return v
	}

	if distance > o.params.MaxDistance {
		inward := offset.Scale(-1).Normalized()
		excess := distance - o.params.MaxDistance
		b.Position = b.Position.Add(inward.Scale(dynamo.PullbackPosition * (excess / 10)))
		v = v.Add(inward.Scale(dynamo.PullbackVelocity))
	}
	return v
}
