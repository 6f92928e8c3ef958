package analysis

import (
	"strings"
)

type Point struct{ X, Y float64 }

// PhasePortrait2D holds one body's track in (distance, radial speed) space.
type PhasePortrait2D struct {
	Points []Point
}

// NewPhasePortrait pairs each distance with the radial speed leaving it.
func NewPhasePortrait(distances []float64, sampleEvery int) *PhasePortrait2D {
	speeds := RadialSpeeds(distances, sampleEvery)
	portrait := &PhasePortrait2D{Points: make([]Point, len(speeds))}
	for i, v := range speeds {
		portrait.Points[i] = Point{X: distances[i], Y: v}
	}
	return portrait
}

// Apsides returns the points where the radial speed changes sign, which are
// the closest and farthest approaches.
func (p *PhasePortrait2D) Apsides() []Point {
	var out []Point
	for i := 1; i < len(p.Points); i++ {
		prev, cur := p.Points[i-1].Y, p.Points[i].Y
		if (prev < 0 && cur >= 0) || (prev > 0 && cur <= 0) {
			out = append(out, p.Points[i])
		}
	}
	return out
}

// PhasePortraitToASCII plots the portrait on a width x height character grid.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	grid := newGrid(width, height)

	// Zero radial speed is the circular-orbit line.
	if minY <= 0 && minY+rangeY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			grid[row][col] = '─'
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = '•'
		}
	}

	return gridString(grid)
}

func newGrid(width, height int) [][]rune {
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	return grid
}

func gridString(grid [][]rune) string {
	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
