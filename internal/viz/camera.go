package viz

import (
	"math"

	"github.com/san-kum/newsorbit/internal/dynamo"
)

// Camera looks at Center from above the ecliptic, tilted by Tilt radians and
// spun about the vertical axis by Spin. Extent is the world distance that
// fits in half the shorter screen side at Zoom 1.
type Camera struct {
	Center dynamo.Vector3
	Tilt   float64
	Spin   float64
	Zoom   float64
	Extent float64
}

func NewCamera(extent float64) *Camera {
	return &Camera{Tilt: 0.6, Zoom: 1, Extent: extent}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) Rotate(dSpin, dTilt float64) {
	c.Spin += dSpin
	c.Tilt = math.Max(0, math.Min(math.Pi/2, c.Tilt+dTilt))
}

// view rotates p into camera space. The result's Z grows toward the viewer.
func (c *Camera) view(p dynamo.Vector3) dynamo.Vector3 {
	p = p.Sub(c.Center)

	cs, ss := math.Cos(c.Spin), math.Sin(c.Spin)
	x, z := p.X*cs-p.Z*ss, p.X*ss+p.Z*cs

	// Looking down the y axis at Tilt 0 means screen-up is -z.
	ct, st := math.Cos(c.Tilt), math.Sin(c.Tilt)
	screenY := -z*ct + p.Y*st
	depth := p.Y*ct + z*st
	return dynamo.Vec3(x, screenY, depth)
}

// Scale is the number of sub-pixels per world unit on a sw x sh screen.
func (c *Camera) Scale(sw, sh int) float64 {
	extent := c.Extent
	if extent <= 0 {
		extent = 1
	}
	return float64(min(sw, sh)) / 2 / extent * c.Zoom
}

// Project maps a world point to sub-pixel coordinates on a sw x sh screen.
// It returns the depth used for painter ordering and whether the point is on
// screen.
func (c *Camera) Project(p dynamo.Vector3, sw, sh int) (int, int, float64, bool) {
	v := c.view(p)
	scale := c.Scale(sw, sh)
	sx := sw/2 + int(math.Round(v.X*scale))
	sy := sh/2 - int(math.Round(v.Y*scale))
	return sx, sy, v.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}
