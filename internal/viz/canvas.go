package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Ink tags a cell with what was last drawn into it, for coloring.
type Ink uint8

const (
	InkNone Ink = iota
	InkTrail
	InkClose
	InkMedium
	InkFar
	InkAnchor
	InkFollowed
	InkHovered
)

// Canvas is a braille pixel grid of Width x Height cells, which is
// Width*2 x Height*4 sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Inks          [][]Ink
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Inks:   make([][]Ink, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Inks[i] = make([]Ink, w)
	}
	c.Clear()
	return c
}

// Pixels returns the canvas size in sub-pixels.
func (c *Canvas) Pixels() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the sub-pixel at (x, y). Out of range pixels are ignored.
func (c *Canvas) Set(x, y int, ink Ink) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	// Trails never repaint over a body.
	if ink != InkTrail || c.Inks[row][col] == InkNone {
		c.Inks[row][col] = ink
	}
}

func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] == blank {
		c.Inks[row][col] = InkNone
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Inks[i][j] = InkNone
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, ink Ink) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle lights every sub-pixel within r of (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r int, ink Ink) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy, ink)
			}
		}
	}
}

// Ring draws the outline of a circle of radius r.
func (c *Canvas) Ring(cx, cy, r int, ink Ink) {
	x, y, err := r, 0, 1-r
	for x >= y {
		for _, p := range [8][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}} {
			c.Set(cx+p[0], cy+p[1], ink)
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render colors every cell by its ink using the theme.
func (c *Canvas) Render(theme Theme) string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Inks[i][j] == c.Inks[i][start] {
				continue
			}
			run := string(row[start:j])
			if ink := c.Inks[i][start]; ink == InkNone {
				b.WriteString(run)
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.Ink(ink)).Render(run))
			}
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
