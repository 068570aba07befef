// Curved joins for rounded polylines.
// A rounded polyline passes through every vertex; each segment is drawn as a
// cubic Bézier whose control points come from the Catmull-Rom tangents.

package geom

// Cubic is a single cubic Bézier segment.
type Cubic struct {
	P0, C1, C2, P1 Point
}

// At evaluates the segment at parameter t ∈ [0,1].
func (c Cubic) At(t float64) Point {
	mt := 1 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.C1.X + 3*mt*t2*c.C2.X + t3*c.P1.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.C1.Y + 3*mt*t2*c.C2.Y + t3*c.P1.Y,
	}
}

// Tangent returns the derivative of the segment at t.
func (c Cubic) Tangent(t float64) Point {
	mt := 1 - t
	mt2 := mt * mt
	t2 := t * t

	return Point{
		X: 3*mt2*(c.C1.X-c.P0.X) + 6*mt*t*(c.C2.X-c.C1.X) + 3*t2*(c.P1.X-c.C2.X),
		Y: 3*mt2*(c.C1.Y-c.P0.Y) + 6*mt*t*(c.C2.Y-c.C1.Y) + 3*t2*(c.P1.Y-c.C2.Y),
	}
}

// Length approximates the arc length of the segment by sampling.
func (c Cubic) Length() float64 {
	const numSamples = 32

	length := 0.0
	prev := c.P0
	for i := 1; i <= numSamples; i++ {
		curr := c.At(float64(i) / numSamples)
		length += Distance(prev, curr)
		prev = curr
	}
	return length
}

// PointAtLength returns the point at fraction f of the segment's arc length.
// f is clamped to [0,1].
func (c Cubic) PointAtLength(f float64) Point {
	const numSamples = 256

	if f <= 0 {
		return c.P0
	}
	if f >= 1 {
		return c.P1
	}

	pts := make([]Point, numSamples+1)
	cum := make([]float64, numSamples+1)
	pts[0] = c.P0
	for i := 1; i <= numSamples; i++ {
		pts[i] = c.At(float64(i) / numSamples)
		cum[i] = cum[i-1] + Distance(pts[i-1], pts[i])
	}

	target := f * cum[numSamples]
	for i := 1; i <= numSamples; i++ {
		if cum[i] < target {
			continue
		}
		step := cum[i] - cum[i-1]
		if step == 0 {
			return pts[i]
		}
		return pts[i-1].Add(pts[i].Sub(pts[i-1]).Scale((target - cum[i-1]) / step))
	}
	return c.P1
}

// CatmullRomSegments converts a polyline into one cubic segment per edge.
// tightness in [0,1] pulls control points towards the vertices; 0 is the
// standard Catmull-Rom conversion (1/6 of the neighbour tangent) and 1
// degenerates into straight segments.
func CatmullRomSegments(points []Point, tightness float64) []Cubic {
	if len(points) < 2 {
		return nil
	}
	if tightness < 0 {
		tightness = 0
	} else if tightness > 1 {
		tightness = 1
	}
	k := (1 - tightness) / 6

	last := len(points) - 1
	segments := make([]Cubic, 0, last)
	for i := 0; i < last; i++ {
		p0 := points[maxInt(0, i-1)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[minInt(last, i+2)]

		segments = append(segments, Cubic{
			P0: p1,
			C1: Point{p1.X + (p2.X-p0.X)*k, p1.Y + (p2.Y-p0.Y)*k},
			C2: Point{p2.X - (p3.X-p1.X)*k, p2.Y - (p3.Y-p1.Y)*k},
			P1: p2,
		})
	}
	return segments
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
