package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/newsorbit/internal/dynamo"
	"github.com/san-kum/newsorbit/internal/experiment"
	"github.com/san-kum/newsorbit/internal/sim"
	"github.com/san-kum/newsorbit/internal/viz"
)

// CanvasToSVG converts a braille canvas to SVG, one dot per lit sub-pixel,
// colored by the cell's ink.
func CanvasToSVG(canvas *viz.Canvas, scale float64, theme viz.Theme) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	header(&sb, width, height)

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			color := string(theme.Ink(canvas.Inks[row][col]))

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, color)
					}
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// path is one polyline in the ecliptic (x, z) plane.
type path struct {
	points []dynamo.Vector3
	color  string
	width  float64
}

// SnapshotToSVG draws every body's trail and current position as seen from
// above the ecliptic.
func SnapshotToSVG(snap sim.Snapshot, size int, theme viz.Theme) string {
	var paths []path
	var dots []path
	for _, b := range snap.Bodies {
		color := string(theme.Ink(inkFor(b)))
		if !b.IsAnchor() && len(b.Trail) > 0 {
			pts := append(append([]dynamo.Vector3(nil), b.Trail...), b.Position)
			paths = append(paths, path{points: pts, color: string(theme.Trail), width: 1})
		}
		dots = append(dots, path{points: []dynamo.Vector3{b.Position}, color: color, width: math.Max(b.Radius, 0.3)})
	}
	return plot(paths, dots, size)
}

// TracksToSVG draws the sampled path of every body in a run. Bodies still
// sampled at the last recorded tick are colored by tier, absorbed ones are
// muted. Results loaded from disk carry no final snapshot, so survivors are
// drawn in the medium color and the anchor at the origin.
func TracksToSVG(result *experiment.Result, size int, theme viz.Theme) string {
	if result == nil {
		return ""
	}
	byID := make(map[string][]dynamo.Vector3)
	var last int64
	for _, s := range result.Samples {
		byID[s.BodyID] = append(byID[s.BodyID], s.Position)
		last = max(last, s.Tick)
	}
	alive := make(map[string]bool)
	for _, s := range result.Samples {
		if s.Tick == last {
			alive[s.BodyID] = true
		}
	}

	var paths, dots []path
	for _, id := range result.BodyIDs() {
		color := string(theme.Muted)
		if b, ok := result.Final.Get(id); ok {
			color = string(theme.Ink(inkFor(b)))
		} else if alive[id] && len(result.Final.Bodies) == 0 {
			color = string(theme.Medium)
		}
		paths = append(paths, path{points: byID[id], color: color, width: 1.2})
	}
	anchor := path{points: []dynamo.Vector3{dynamo.Zero}, color: string(theme.Anchor), width: dynamo.DefaultAnchorRadius}
	if a, ok := result.Final.Anchor(); ok {
		anchor.points[0], anchor.width = a.Position, a.Radius
	}
	dots = append(dots, anchor)
	return plot(paths, dots, size)
}

func inkFor(b sim.BodyState) viz.Ink {
	if b.IsAnchor() {
		return viz.InkAnchor
	}
	switch b.Tier {
	case dynamo.TierClose:
		return viz.InkClose
	case dynamo.TierFar:
		return viz.InkFar
	default:
		return viz.InkMedium
	}
}

// plot maps paths and dots onto a size x size square with equal axes.
func plot(paths, dots []path, size int) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, group := range [][]path{paths, dots} {
		for _, p := range group {
			for _, v := range p.points {
				minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
				minZ, maxZ = math.Min(minZ, v.Z), math.Max(maxZ, v.Z)
			}
		}
	}
	if math.IsInf(minX, 0) {
		minX, maxX, minZ, maxZ = -1, 1, -1, 1
	}

	span := math.Max(maxX-minX, maxZ-minZ)
	if span == 0 {
		span = 1
	}
	span *= 1.2
	cx, cz := (minX+maxX)/2, (minZ+maxZ)/2
	scale := float64(size) / span
	px := func(v dynamo.Vector3) (float64, float64) {
		return (v.X-cx)*scale + float64(size)/2, float64(size)/2 - (v.Z-cz)*scale
	}

	var sb strings.Builder
	header(&sb, float64(size), float64(size))

	for _, p := range paths {
		if len(p.points) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="%.1f" d="M`, p.color, p.width)
		for i, v := range p.points {
			x, y := px(v)
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}
	for _, d := range dots {
		x, y := px(d.points[0])
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, math.Max(d.width*scale, 1.5), d.color)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}
