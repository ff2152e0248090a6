package viz

import (
	"math"
	"strings"
)

// brailleBlank is U+2800, the braille cell with no dots raised. The low
// eight bits of a cell select its dots.
const brailleBlank = 0x2800

// Canvas is a grid of braille cells addressed in dots. Each cell is two dots
// wide and four tall, so a Width x Height canvas has Width*2 x Height*4 dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// dotBit maps a dot inside a cell to its braille bit. The left column holds
// dots 1-3 then 7, the right column dots 4-6 then 8.
func dotBit(dx, dy int) rune {
	if dy == 3 {
		return 0x40 << dx
	}
	return 1 << (dy + 3*dx)
}

// cell returns the cell holding dot (x, y) and the dot's bit in it.
func (c *Canvas) cell(x, y int) (*rune, rune) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return nil, 0
	}
	return &c.Grid[y/4][x/2], dotBit(x%2, y%4)
}

// Set lights the dot at (x, y). Dots off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if r, bit := c.cell(x, y); r != nil {
		*r |= bit
	}
}

func (c *Canvas) Unset(x, y int) {
	if r, bit := c.cell(x, y); r != nil {
		*r &^= bit
	}
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	r, bit := c.cell(x, y)
	return r != nil && *r&bit != 0
}

func (c *Canvas) Clear() {
	for _, row := range c.Grid {
		for j := range row {
			row[j] = brailleBlank
		}
	}
}

// DrawLine lights one dot per step along the longer axis from (x0, y0) to
// (x1, y1), both ends included.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		c.Set(x0, y0)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.Set(x0+int(math.Round(t*float64(dx))), y0+int(math.Round(t*float64(dy))))
	}
}

// FillCircle lights every dot within r of (cx, cy). A radius below one dot
// lights the centre only.
func (c *Canvas) FillCircle(cx, cy, r int) {
	if r < 1 {
		c.Set(cx, cy)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Height * (c.Width*3 + 1))
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
