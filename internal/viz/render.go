package viz

import (
	"math"
	"sort"

	"github.com/san-kum/newsorbit/internal/dynamo"
	"github.com/san-kum/newsorbit/internal/sim"
)

// Render draws a snapshot onto c: trails first, then bodies from the farthest
// to the nearest, then markers for the followed and hovered bodies.
func Render(c *Canvas, cam *Camera, snap sim.Snapshot) {
	c.Clear()
	sw, sh := c.Pixels()
	scale := cam.Scale(sw, sh)

	for _, b := range snap.Orbiting() {
		drawTrail(c, cam, b, sw, sh)
	}

	type placed struct {
		body  sim.BodyState
		x, y  int
		depth float64
	}
	var visible []placed
	for _, b := range snap.Bodies {
		x, y, depth, ok := cam.Project(b.Position, sw, sh)
		if !ok {
			continue
		}
		visible = append(visible, placed{b, x, y, depth})
	}
	sort.SliceStable(visible, func(i, j int) bool { return visible[i].depth < visible[j].depth })

	for _, p := range visible {
		r := int(math.Round(p.body.Radius * scale))
		if p.body.IsAnchor() {
			c.FillCircle(p.x, p.y, max(r, 2), InkAnchor)
			continue
		}
		c.FillCircle(p.x, p.y, max(r, 1), tierInk(p.body.Tier))
	}

	for _, p := range visible {
		r := max(int(math.Round(p.body.Radius*scale)), 1)
		if p.body.IsHovered {
			c.Ring(p.x, p.y, r+2, InkHovered)
		}
		if p.body.IsFollowed {
			c.Ring(p.x, p.y, r+4, InkFollowed)
		}
	}
}

func drawTrail(c *Canvas, cam *Camera, b sim.BodyState, sw, sh int) {
	points := make([]dynamo.Vector3, 0, len(b.Trail)+1)
	points = append(append(points, b.Trail...), b.Position)
	px, py, _, pok := cam.Project(points[0], sw, sh)
	for _, p := range points[1:] {
		x, y, _, ok := cam.Project(p, sw, sh)
		if ok || pok {
			c.DrawLine(px, py, x, y, InkTrail)
		}
		px, py, pok = x, y, ok
	}
}

func tierInk(t dynamo.Tier) Ink {
	switch t {
	case dynamo.TierClose:
		return InkClose
	case dynamo.TierFar:
		return InkFar
	default:
		return InkMedium
	}
}

// Frame renders snap to a plain braille string of w x h cells, centered on
// the anchor, for non-interactive output.
func Frame(snap sim.Snapshot, w, h int, extent float64) string {
	c := NewCanvas(w, h)
	cam := NewCamera(extent)
	if a, ok := snap.Anchor(); ok {
		cam.Center = a.Position
	}
	Render(c, cam, snap)
	return c.String()
}
