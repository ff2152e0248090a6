package export

import (
	"fmt"
	"math"
	"strings"
)

// Palette colours trails in order of body ID.
var Palette = []string{"#7dd3fc", "#fca5a5", "#86efac", "#fde68a", "#c4b5fd", "#f9a8d4", "#fdba74"}

// TrailsToSVG draws the x/y projection of every trail, fitted to a
// width x height viewport with 10% padding. Bodies still alive at the
// last recorded time end in a disc whose radius grows as mass^(1/3).
func TrailsToSVG(trails []Trail, width, height int) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	last := math.Inf(-1)
	for _, t := range trails {
		for _, p := range t.Points {
			minX, maxX = math.Min(minX, p.Pos[0]), math.Max(maxX, p.Pos[0])
			minY, maxY = math.Min(minY, p.Pos[1]), math.Max(maxY, p.Pos[1])
			last = math.Max(last, p.Time)
		}
	}
	if math.IsInf(minX, 1) {
		return ""
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

	project := func(pos []float64) (float64, float64) {
		x := (pos[0] - minX) / rangeX * float64(width)
		y := float64(height) - (pos[1]-minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for _, t := range trails {
		if len(t.Points) == 0 {
			continue
		}
		color := Palette[t.ID%len(Palette)]

		if len(t.Points) > 1 {
			fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color)
			for i, p := range t.Points {
				x, y := project(p.Pos)
				if i == 0 {
					fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
				} else {
					fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
				}
			}
			sb.WriteString("\"/>\n")
		}

		end := t.Points[len(t.Points)-1]
		if end.Time == last {
			x, y := project(end.Pos)
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, 3*math.Cbrt(t.Mass), color)
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
