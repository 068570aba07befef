package linear

import (
	"errors"
	"math"
	"testing"

	"github.com/ha1tch/lineedit/pkg/element"
	"github.com/ha1tch/lineedit/pkg/geom"
)

func TestMovePointsFirstAndLast(t *testing.T) {
	el := twoPointLine()
	ed := newTestEditor(el)

	err := ed.MovePoints(el, map[int]geom.Point{
		0: geom.Pt(10, 10),
		1: geom.Pt(30, -10),
	})
	if err != nil {
		t.Fatal(err)
	}

	if el.X != 30 || el.Y != 30 {
		t.Errorf("anchor = (%.1f,%.1f), want (30,30)", el.X, el.Y)
	}
	assertPoints(t, el, geom.Pt(0, 0), geom.Pt(20, -20))
	if el.Width != 20 || el.Height != 20 {
		t.Errorf("size = %.1fx%.1f, want 20x20", el.Width, el.Height)
	}
}

func TestMovePointsBadIndex(t *testing.T) {
	el := twoPointLine()
	ed := newTestEditor(el)
	v := el.Version

	err := ed.MovePoints(el, map[int]geom.Point{5: geom.Pt(1, 1)})
	if !errors.Is(err, ErrPointIndex) {
		t.Fatalf("err = %v, want ErrPointIndex", err)
	}
	if el.Version != v {
		t.Errorf("rejected move bumped version")
	}
	assertPoints(t, el, geom.Pt(0, 0), geom.Pt(40, 0))
}

func TestMovePointsRotatedKeepsOthersFixed(t *testing.T) {
	el := threePointLine()
	el.Angle = math.Pi / 3
	ed := newTestEditor(el)

	before := element.GlobalPoints(el)
	target := geom.Pt(140, 10)
	if err := ed.MovePointsGlobal(el, map[int]geom.Point{1: target}); err != nil {
		t.Fatal(err)
	}

	after := element.GlobalPoints(el)
	if !geom.Equal(after[1], target, 1e-6) {
		t.Errorf("moved point = %v, want %v", after[1], target)
	}
	for _, i := range []int{0, 2} {
		if !geom.Equal(after[i], before[i], 1e-6) {
			t.Errorf("point %d moved from %v to %v", i, before[i], after[i])
		}
	}
	if el.Points[0] != (geom.Point{}) {
		t.Errorf("first point = %v, want origin", el.Points[0])
	}
}

func TestMoveFirstPointRotated(t *testing.T) {
	el := threePointLine()
	el.Angle = -0.7
	ed := newTestEditor(el)

	before := element.GlobalPoints(el)
	target := before[0].Add(geom.Pt(-25, 12))
	if err := ed.MovePointsGlobal(el, map[int]geom.Point{0: target}); err != nil {
		t.Fatal(err)
	}
	after := element.GlobalPoints(el)
	if !geom.Equal(after[0], target, 1e-6) {
		t.Errorf("first point = %v, want %v", after[0], target)
	}
	for i := 1; i < 3; i++ {
		if !geom.Equal(after[i], before[i], 1e-6) {
			t.Errorf("point %d moved from %v to %v", i, before[i], after[i])
		}
	}
}

func TestAddPoint(t *testing.T) {
	el := twoPointLine()
	ed := newTestEditor(el)

	idx, err := ed.AddPoint(el, 0, geom.Pt(90, 70))
	if err != nil {
		t.Fatal(err)
	}
	if idx != 1 {
		t.Errorf("index = %d, want 1", idx)
	}
	assertPoints(t, el, geom.Pt(0, 0), geom.Pt(70, 50), geom.Pt(40, 0))
	if el.X != 20 || el.Y != 20 {
		t.Errorf("anchor moved to (%.1f,%.1f)", el.X, el.Y)
	}

	if _, err := ed.AddPoint(el, 2, geom.Pt(0, 0)); !errors.Is(err, ErrPointIndex) {
		t.Errorf("add after last point: err = %v, want ErrPointIndex", err)
	}
}

func TestDeletePoints(t *testing.T) {
	newLine := func() *element.Linear {
		return element.NewLinear(element.KindLine, 0, 0, []geom.Point{
			{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 200, Y: 100}, {X: 300, Y: 0},
		})
	}

	t.Run("last point removes one midpoint", func(t *testing.T) {
		el := newLine()
		ed := newTestEditor(el)
		before := EditorMidPoints(el, ed.Config)

		if err := ed.DeletePoints(el, 3); err != nil {
			t.Fatal(err)
		}
		after := EditorMidPoints(el, ed.Config)
		if len(after) != len(before)-1 {
			t.Fatalf("midpoints %d -> %d, want one fewer", len(before), len(after))
		}
		for i := range after {
			if !geom.Equal(*after[i], *before[i], eps) {
				t.Errorf("midpoint %d = %v, want %v", i, *after[i], *before[i])
			}
		}
	})

	t.Run("first point re-anchors", func(t *testing.T) {
		el := newLine()
		ed := newTestEditor(el)
		if err := ed.DeletePoints(el, 0); err != nil {
			t.Fatal(err)
		}
		if el.X != 100 || el.Y != 0 {
			t.Errorf("anchor = (%.1f,%.1f), want (100,0)", el.X, el.Y)
		}
		assertPoints(t, el, geom.Pt(0, 0), geom.Pt(100, 100), geom.Pt(200, 0))
	})

	t.Run("several at once", func(t *testing.T) {
		el := newLine()
		ed := newTestEditor(el)
		if err := ed.DeletePoints(el, 1, 2, 1); err != nil {
			t.Fatal(err)
		}
		assertPoints(t, el, geom.Pt(0, 0), geom.Pt(300, 0))
	})

	t.Run("too few points rejected", func(t *testing.T) {
		el := newLine()
		ed := newTestEditor(el)
		err := ed.DeletePoints(el, 0, 1, 2)
		if !errors.Is(err, ErrTooFewPoints) {
			t.Fatalf("err = %v, want ErrTooFewPoints", err)
		}
		if len(el.Points) != 4 {
			t.Errorf("rejected delete left %d points", len(el.Points))
		}
	})

	t.Run("two-point element keeps both", func(t *testing.T) {
		el := twoPointLine()
		ed := newTestEditor(el)
		if err := ed.DeletePoints(el, 1); !errors.Is(err, ErrTooFewPoints) {
			t.Errorf("err = %v, want ErrTooFewPoints", err)
		}
	})
}

func TestResizeScalesPoints(t *testing.T) {
	el := threePointLine()
	ed := newTestEditor(el)

	ed.Resize(el, 35, 100)
	if math.Abs(el.Width-35) > eps || math.Abs(el.Height-100) > eps {
		t.Errorf("size = %.2fx%.2f, want 35x100", el.Width, el.Height)
	}
	assertPoints(t, el, geom.Pt(0, 0), geom.Pt(35, 100), geom.Pt(20, 0))
}

func TestConstrainAngle(t *testing.T) {
	anchor := geom.Pt(20, 20)
	original := geom.Pt(60, 60)

	got := ConstrainAngle(anchor, original, geom.Pt(100, 90))
	want := geom.Pt(95, 95)
	if !geom.Equal(got, want, 1e-2) {
		t.Errorf("ConstrainAngle = %v, want %v", got, want)
	}
	if a, b := geom.Angle(anchor, got), geom.Angle(anchor, original); math.Abs(a-b) > 1e-9 {
		t.Errorf("angle changed from %.4f to %.4f", b, a)
	}

	// dragging behind the anchor does not flip the direction
	got = ConstrainAngle(anchor, original, geom.Pt(0, 0))
	if math.Abs(geom.Angle(anchor, got)-geom.Angle(anchor, original)) > 1e-9 {
		t.Errorf("constrained point %v flipped past anchor", got)
	}

	// degenerate direction passes through
	if got := ConstrainAngle(anchor, anchor, geom.Pt(5, 5)); got != geom.Pt(5, 5) {
		t.Errorf("degenerate ConstrainAngle = %v", got)
	}
}

func TestNormalizationIdempotentAcrossEdits(t *testing.T) {
	el := threePointLine()
	el.Angle = 0.4
	ed := newTestEditor(el)

	if _, err := ed.AddPoint(el, 1, geom.Pt(120, 30)); err != nil {
		t.Fatal(err)
	}
	if err := ed.DeletePoints(el, 0); err != nil {
		t.Fatal(err)
	}
	ed.Translate(el, 3, 4)

	if el.Points[0] != (geom.Point{}) {
		t.Fatalf("first point = %v, want origin", el.Points[0])
	}
	x, y, pts := element.NormalizePoints(el.X, el.Y, el.Points)
	if x != el.X || y != el.Y {
		t.Errorf("normalize moved anchor to (%.2f,%.2f)", x, y)
	}
	for i := range pts {
		if pts[i] != el.Points[i] {
			t.Errorf("normalize changed point %d", i)
		}
	}
}
