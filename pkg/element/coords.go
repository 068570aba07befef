// Local/global coordinate transforms for linear elements.

package element

import (
	"math"

	"github.com/ha1tch/lineedit/pkg/geom"
)

// localCenter returns the centre of the bounding box of pts.
func localCenter(pts []geom.Point) geom.Point {
	minX, minY, maxX, maxY := geom.Bounds(pts)
	return geom.Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
}

// Center returns the global rotation centre of el.
func Center(el *Linear) geom.Point {
	c := localCenter(el.Points)
	return geom.Point{X: el.X + c.X, Y: el.Y + c.Y}
}

// ToGlobal returns the global position of point i.
func ToGlobal(el *Linear, i int) geom.Point {
	p := el.Points[i]
	return geom.Rotate(geom.Point{X: el.X + p.X, Y: el.Y + p.Y}, Center(el), el.Angle)
}

// ToLocal converts a global position into el's local space.
// It is the exact inverse of ToGlobal.
func ToLocal(el *Linear, g geom.Point) geom.Point {
	u := geom.Rotate(g, Center(el), -el.Angle)
	return geom.Point{X: u.X - el.X, Y: u.Y - el.Y}
}

// GlobalPoints returns every point of el in global space.
func GlobalPoints(el *Linear) []geom.Point {
	out := make([]geom.Point, len(el.Points))
	for i := range el.Points {
		out[i] = ToGlobal(el, i)
	}
	return out
}

// AbsoluteCoords returns the unrotated global bounding box and centre of el.
func AbsoluteCoords(el *Linear) (x1, y1, x2, y2, cx, cy float64) {
	minX, minY, maxX, maxY := geom.Bounds(el.Points)
	x1, y1 = el.X+minX, el.Y+minY
	x2, y2 = el.X+maxX, el.Y+maxY
	return x1, y1, x2, y2, (x1 + x2) / 2, (y1 + y2) / 2
}

// Size returns the bounding box dimensions of pts.
func Size(pts []geom.Point) (w, h float64) {
	minX, minY, maxX, maxY := geom.Bounds(pts)
	return maxX - minX, maxY - minY
}

// NormalizePoints shifts (x, y) by pts[0] and subtracts pts[0] from every
// point so that the first point sits at the origin. It returns a new slice.
func NormalizePoints(x, y float64, pts []geom.Point) (float64, float64, []geom.Point) {
	out := make([]geom.Point, len(pts))
	if len(pts) == 0 {
		return x, y, out
	}
	off := pts[0]
	for i, p := range pts {
		out[i] = p.Sub(off)
	}
	return x + off.X, y + off.Y, out
}

// Normalize enforces Points[0] == (0,0) in place. It is idempotent and is
// only meant for elements that are not yet owned by a Scene.
func Normalize(el *Linear) {
	el.X, el.Y, el.Points = NormalizePoints(el.X, el.Y, el.Points)
	el.Width, el.Height = Size(el.Points)
}

// Rebase computes the anchor and normalized points for replacing el's points
// with pts, where pts are expressed in el's current local space. The anchor
// is compensated for the shift of the rotation centre so that any point left
// unchanged keeps its global position.
func Rebase(el *Linear, pts []geom.Point) (x, y float64, out []geom.Point) {
	x, y = el.X, el.Y
	if el.Angle != 0 && len(pts) > 0 {
		prev := localCenter(el.Points)
		next := localCenter(pts)
		d := prev.Sub(next)
		r := geom.Rotate(d, geom.Point{}, el.Angle)
		x += d.X - r.X
		y += d.Y - r.Y
	}
	return NormalizePoints(x, y, pts)
}

func finite(p geom.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
