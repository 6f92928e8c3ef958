package dynamo

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector3 is an immutable 3D vector. Every method returns a new value.
//
// Degenerate operations (dividing by zero, normalizing a zero vector) return
// the zero vector instead of NaN/Inf. Callers that care can test the input
// with IsZero beforehand.
type Vector3 struct {
	X, Y, Z float64
}

// Zero is the additive identity.
var Zero = Vector3{}

func Vec3(x, y, z float64) Vector3 { return Vector3{X: x, Y: y, Z: z} }

func fromGL(v mgl64.Vec3) Vector3 { return Vector3{X: v[0], Y: v[1], Z: v[2]} }

func (v Vector3) gl() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

func (v Vector3) Add(o Vector3) Vector3 { return fromGL(v.gl().Add(o.gl())) }
func (v Vector3) Sub(o Vector3) Vector3 { return fromGL(v.gl().Sub(o.gl())) }

// Scale multiplies every component by s.
func (v Vector3) Scale(s float64) Vector3 { return fromGL(v.gl().Mul(s)) }

// Div divides every component by s. Division by zero yields the zero vector.
func (v Vector3) Div(s float64) Vector3 {
	if s == 0 {
		return Zero
	}
	return v.Scale(1 / s)
}

func (v Vector3) Dot(o Vector3) float64   { return v.gl().Dot(o.gl()) }
func (v Vector3) Cross(o Vector3) Vector3 { return fromGL(v.gl().Cross(o.gl())) }

// Magnitude returns the Euclidean length.
func (v Vector3) Magnitude() float64 { return v.gl().Len() }

func (v Vector3) DistanceTo(o Vector3) float64 { return v.Sub(o).Magnitude() }

// Normalized returns the unit vector in the direction of v, or the zero
// vector when v has no length.
func (v Vector3) Normalized() Vector3 {
	mag := v.Magnitude()
	if mag == 0 || math.IsNaN(mag) || math.IsInf(mag, 0) {
		return Zero
	}
	return v.Scale(1 / mag)
}

// ClampedMagnitude rescales v so its length is at most max.
func (v Vector3) ClampedMagnitude(max float64) Vector3 {
	mag := v.Magnitude()
	if mag <= max {
		return v
	}
	if max <= 0 {
		return Zero
	}
	return v.Scale(max / mag)
}

func (v Vector3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// IsFinite reports whether no component is NaN or infinite.
func (v Vector3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual compares componentwise within eps.
func (v Vector3) ApproxEqual(o Vector3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}
