package geom

import (
	"math"
	"testing"
)

func TestRotateRoundTrip(t *testing.T) {
	center := Pt(40, 20)
	p := Pt(90, 70)

	for _, angle := range []float64{0, 0.3, math.Pi / 2, math.Pi, -1.2} {
		r := Rotate(p, center, angle)
		back := Rotate(r, center, -angle)
		if !Equal(back, p, 1e-9) {
			t.Errorf("angle %.2f: round trip gave (%.6f, %.6f), want (%.1f, %.1f)",
				angle, back.X, back.Y, p.X, p.Y)
		}
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	r := Rotate(Pt(10, 0), Pt(0, 0), math.Pi/2)
	if !Equal(r, Pt(0, 10), 1e-9) {
		t.Errorf("Expected (0,10), got (%.4f, %.4f)", r.X, r.Y)
	}
}

func TestSegmentDistance(t *testing.T) {
	tests := []struct {
		name     string
		p, a, b  Point
		expected float64
	}{
		{"on segment", Pt(5, 0), Pt(0, 0), Pt(10, 0), 0},
		{"above middle", Pt(5, 3), Pt(0, 0), Pt(10, 0), 3},
		{"past end", Pt(13, 4), Pt(0, 0), Pt(10, 0), 5},
		{"degenerate", Pt(3, 4), Pt(0, 0), Pt(0, 0), 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SegmentDistance(tc.p, tc.a, tc.b)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Expected %.2f, got %.2f", tc.expected, got)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	minX, minY, maxX, maxY := Bounds([]Point{{0, 0}, {70, 50}, {40, -10}})
	if minX != 0 || minY != -10 || maxX != 70 || maxY != 50 {
		t.Errorf("Bounds wrong: %.0f %.0f %.0f %.0f", minX, minY, maxX, maxY)
	}

	minX, minY, maxX, maxY = Bounds(nil)
	if minX != 0 || minY != 0 || maxX != 0 || maxY != 0 {
		t.Errorf("Empty bounds should be zero")
	}
}
