package geom

import (
	"math"
	"testing"
)

func TestCatmullRomSegmentsPassThroughVertices(t *testing.T) {
	points := []Point{{20, 20}, {90, 70}, {60, 20}}
	segs := CatmullRomSegments(points, 0)

	if len(segs) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(segs))
	}
	for i, s := range segs {
		if s.At(0) != points[i] {
			t.Errorf("Segment %d should start at vertex %d", i, i)
		}
		if !Equal(s.At(1), points[i+1], 1e-9) {
			t.Errorf("Segment %d should end at vertex %d", i, i+1)
		}
	}
}

func TestCatmullRomTwoPointsIsStraight(t *testing.T) {
	segs := CatmullRomSegments([]Point{{0, 0}, {40, 0}}, 0)
	mid := segs[0].At(0.5)
	if !Equal(mid, Pt(20, 0), 1e-9) {
		t.Errorf("Two-point curve midpoint should be (20,0), got (%.4f, %.4f)", mid.X, mid.Y)
	}
}

func TestCatmullRomBendsAwayFromChord(t *testing.T) {
	points := []Point{{20, 20}, {90, 70}, {60, 20}}
	segs := CatmullRomSegments(points, 0)

	chordMid := Center(points[0], points[1])
	curveMid := segs[0].At(0.5)
	if Equal(chordMid, curveMid, 1e-3) {
		t.Errorf("Curved midpoint should differ from chord midpoint (%.2f, %.2f)", chordMid.X, chordMid.Y)
	}

	// Full tightness collapses to straight joins
	straight := CatmullRomSegments(points, 1)
	if !Equal(straight[0].At(0.5), chordMid, 1e-9) {
		t.Errorf("Tightness 1 should produce straight segments")
	}
}

func TestCubicPointAtLength(t *testing.T) {
	// uneven control points: t=0.5 is not halfway along the line
	c := Cubic{P0: Pt(0, 0), C1: Pt(0, 0), C2: Pt(0, 0), P1: Pt(40, 0)}
	if got := c.At(0.5); Equal(got, Pt(20, 0), 1e-3) {
		t.Fatalf("At(0.5) = %v, expected it away from the middle", got)
	}
	if got := c.PointAtLength(0.5); !Equal(got, Pt(20, 0), 1e-3) {
		t.Errorf("PointAtLength(0.5) = %v, want (20,0)", got)
	}
	if got := c.PointAtLength(0); got != c.P0 {
		t.Errorf("PointAtLength(0) = %v, want P0", got)
	}
	if got := c.PointAtLength(2); got != c.P1 {
		t.Errorf("PointAtLength(2) = %v, want P1", got)
	}
}

func TestCubicLength(t *testing.T) {
	c := Cubic{P0: Pt(0, 0), C1: Pt(10, 0), C2: Pt(20, 0), P1: Pt(30, 0)}
	if math.Abs(c.Length()-30) > 1e-6 {
		t.Errorf("Straight cubic length should be 30, got %.4f", c.Length())
	}

	tan := c.Tangent(0.5)
	if tan.Y != 0 || tan.X <= 0 {
		t.Errorf("Tangent should point along +X, got (%.2f, %.2f)", tan.X, tan.Y)
	}
}
