package linear

import (
	"github.com/ha1tch/lineedit/pkg/element"
	"github.com/ha1tch/lineedit/pkg/geom"
)

// curveSegments returns the rendered joins of el in global space.
func curveSegments(el *element.Linear) []geom.Cubic {
	return geom.CatmullRomSegments(element.GlobalPoints(el), el.Roundness.Tightness)
}

// SegmentMidPoint returns the global midpoint of segment i. Rounded elements
// use the point halfway along the join curve; sharp ones use the chord centre.
// i must be in [0, len(Points)-2].
func SegmentMidPoint(el *element.Linear, i int) geom.Point {
	if el.Roundness.IsRounded() && len(el.Points) > 2 {
		return curveSegments(el)[i].PointAtLength(0.5)
	}
	return geom.Center(element.ToGlobal(el, i), element.ToGlobal(el, i+1))
}

// EditorMidPoints returns one midpoint handle per segment. A nil entry means
// the handle is hidden because the segment is shorter than
// cfg.MinSegmentLength.
func EditorMidPoints(el *element.Linear, cfg Config) []*geom.Point {
	n := len(el.Points)
	if n < 2 {
		return nil
	}

	global := element.GlobalPoints(el)
	var curves []geom.Cubic
	if el.Roundness.IsRounded() && n > 2 {
		curves = geom.CatmullRomSegments(global, el.Roundness.Tightness)
	}

	out := make([]*geom.Point, n-1)
	for i := 0; i < n-1; i++ {
		if geom.Distance(global[i], global[i+1]) < cfg.MinSegmentLength {
			continue
		}
		var mid geom.Point
		if curves != nil {
			mid = curves[i].PointAtLength(0.5)
		} else {
			mid = geom.Center(global[i], global[i+1])
		}
		out[i] = &mid
	}
	return out
}

// MidPointHit returns the segment whose visible midpoint lies within
// cfg.PointHitRadius of p, or -1.
func MidPointHit(el *element.Linear, p geom.Point, cfg Config) int {
	best := -1
	bestDist := cfg.PointHitRadius
	for i, mid := range EditorMidPoints(el, cfg) {
		if mid == nil {
			continue
		}
		if d := geom.Distance(*mid, p); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// PointHit returns the index of the point within cfg.PointHitRadius of p, or
// -1. When endpointsOnly is set only the first and last points are considered.
func PointHit(el *element.Linear, p geom.Point, cfg Config, endpointsOnly bool) int {
	best := -1
	bestDist := cfg.PointHitRadius
	last := len(el.Points) - 1
	for i := range el.Points {
		if endpointsOnly && i != 0 && i != last {
			continue
		}
		if d := geom.Distance(element.ToGlobal(el, i), p); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Outline returns the drawn path of el as a polyline in global space,
// sampling curved joins.
func Outline(el *element.Linear) []geom.Point {
	if !el.Roundness.IsRounded() || len(el.Points) < 3 {
		return element.GlobalPoints(el)
	}
	const samples = 16
	curves := curveSegments(el)
	out := []geom.Point{curves[0].P0}
	for _, c := range curves {
		for k := 1; k <= samples; k++ {
			out = append(out, c.At(float64(k)/samples))
		}
	}
	return out
}

// NearestSegment returns the segment closest to p and its distance.
func NearestSegment(el *element.Linear, p geom.Point) (int, float64) {
	global := element.GlobalPoints(el)
	best, bestDist := -1, 0.0
	for i := 0; i+1 < len(global); i++ {
		d := geom.SegmentDistance(p, global[i], global[i+1])
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// OnBody reports whether p lies within cfg.BodyHitRadius of el's drawn path.
func OnBody(el *element.Linear, p geom.Point, cfg Config) bool {
	path := Outline(el)
	for i := 0; i+1 < len(path); i++ {
		if geom.SegmentDistance(p, path[i], path[i+1]) <= cfg.BodyHitRadius {
			return true
		}
	}
	return false
}
