package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ha1tch/lineedit/pkg/geom"
)

// cell is one glyph at an absolute canvas cell (viewport offset not applied).
type cell struct {
	x, y  int
	r     rune
	style tcell.Style
}

// grid converts canvas pixels to cells.
type grid struct {
	cw, ch float64
}

func (g grid) cellOf(p geom.Point) (int, int) {
	return int(math.Floor(p.X / g.cw)), int(math.Floor(p.Y / g.ch))
}

// lineGlyph picks a box-drawing rune for a step of (dx, dy) cells.
func lineGlyph(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// arrowGlyph picks an arrowhead for travel direction (dx, dy) in pixels.
func arrowGlyph(dx, dy float64) rune {
	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return '▶'
		}
		return '◀'
	}
	if dy >= 0 {
		return '▼'
	}
	return '▲'
}

// bresenham returns the cells on the segment (x0,y0)-(x1,y1), inclusive.
func bresenham(x0, y0, x1, y1 int) [][2]int {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	var out [][2]int
	err := dx + dy
	for {
		out = append(out, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			return out
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// rasterPath draws a polyline in canvas pixels as box-drawing cells.
func (g grid) rasterPath(path []geom.Point, style tcell.Style) []cell {
	var out []cell
	for i := 0; i+1 < len(path); i++ {
		x0, y0 := g.cellOf(path[i])
		x1, y1 := g.cellOf(path[i+1])
		r := lineGlyph(x1-x0, y1-y0)
		for _, c := range bresenham(x0, y0, x1, y1) {
			out = append(out, cell{x: c[0], y: c[1], r: r, style: style})
		}
	}
	return out
}

// rasterText lays out wrapped text with its top-left at p. Wide runes take
// two columns.
func (g grid) rasterText(p geom.Point, text string, style tcell.Style) []cell {
	x0, y := g.cellOf(p)
	var out []cell
	for _, line := range splitRows(text) {
		x := x0
		for _, r := range line {
			out = append(out, cell{x: x, y: y, r: r, style: style})
			x += runewidth.RuneWidth(r)
		}
		y++
	}
	return out
}

func splitRows(text string) []string {
	if text == "" {
		return nil
	}
	var rows []string
	start := 0
	for i, r := range text {
		if r == '\n' {
			rows = append(rows, text[start:i])
			start = i + 1
		}
	}
	return append(rows, text[start:])
}
