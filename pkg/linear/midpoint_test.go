package linear

import (
	"testing"

	"github.com/ha1tch/lineedit/pkg/element"
	"github.com/ha1tch/lineedit/pkg/geom"
	"github.com/ha1tch/lineedit/pkg/textwrap"
)

const eps = 1e-6

func newTestEditor(els ...*element.Linear) *Editor {
	scene := element.NewScene()
	for _, el := range els {
		scene.AddLinear(el)
	}
	return NewEditor(scene, DefaultConfig(), textwrap.CellMeasurer{CellWidth: 10})
}

// twoPointLine spans (20,20) to (60,20).
func twoPointLine() *element.Linear {
	return element.NewLinear(element.KindLine, 20, 20, []geom.Point{{X: 0, Y: 0}, {X: 40, Y: 0}})
}

// threePointLine has global points (20,20), (90,70), (60,20).
func threePointLine() *element.Linear {
	return element.NewLinear(element.KindLine, 20, 20, []geom.Point{{X: 0, Y: 0}, {X: 70, Y: 50}, {X: 40, Y: 0}})
}

func assertPoints(t *testing.T, el *element.Linear, want ...geom.Point) {
	t.Helper()
	if len(el.Points) != len(want) {
		t.Fatalf("got %d points %v, want %d %v", len(el.Points), el.Points, len(want), want)
	}
	for i := range want {
		if !geom.Equal(el.Points[i], want[i], eps) {
			t.Errorf("point %d = %v, want %v", i, el.Points[i], want[i])
		}
	}
}

func TestSegmentMidPointSharp(t *testing.T) {
	el := threePointLine()
	if got := SegmentMidPoint(el, 0); !geom.Equal(got, geom.Pt(55, 45), eps) {
		t.Errorf("segment 0 midpoint = %v, want (55,45)", got)
	}
	if got := SegmentMidPoint(el, 1); !geom.Equal(got, geom.Pt(75, 45), eps) {
		t.Errorf("segment 1 midpoint = %v, want (75,45)", got)
	}
}

func TestSegmentMidPointTwoPointsIgnoresRoundness(t *testing.T) {
	el := twoPointLine()
	el.Roundness = element.Rounded()
	if got := SegmentMidPoint(el, 0); !geom.Equal(got, geom.Pt(40, 20), eps) {
		t.Errorf("midpoint = %v, want (40,20)", got)
	}
}

func TestSegmentMidPointRoundedIsHalfwayAlongCurve(t *testing.T) {
	el := threePointLine()
	el.Roundness = element.Rounded()

	got := SegmentMidPoint(el, 0)
	if !geom.Equal(got, geom.Pt(54.27552, 46.16120), 0.01) {
		t.Errorf("rounded midpoint = %v, want about (54.276,46.161)", got)
	}
	// parameter midpoint of the same join sits further along
	if geom.Equal(got, geom.Pt(56.875, 48.125), 1) {
		t.Errorf("rounded midpoint %v matches the t=0.5 point", got)
	}
	if mids := EditorMidPoints(el, DefaultConfig()); mids[0] == nil || !geom.Equal(*mids[0], got, eps) {
		t.Errorf("editor midpoint = %v, want %v", mids[0], got)
	}
}

func TestEditorMidPointsHideShortSegments(t *testing.T) {
	el := threePointLine()
	ed := newTestEditor(el)

	mids := EditorMidPoints(el, ed.Config)
	if len(mids) != 2 || mids[0] == nil || mids[1] == nil {
		t.Fatalf("expected two visible midpoints, got %v", mids)
	}

	// pull point 0 to within 20px of point 1
	if err := ed.MovePointsGlobal(el, map[int]geom.Point{0: geom.Pt(70, 70)}); err != nil {
		t.Fatal(err)
	}
	mids = EditorMidPoints(el, ed.Config)
	if mids[0] != nil {
		t.Errorf("segment 0 is 20px long, midpoint should be hidden, got %v", *mids[0])
	}
	if mids[1] == nil || !geom.Equal(*mids[1], geom.Pt(75, 45), eps) {
		t.Errorf("segment 1 midpoint = %v, want (75,45)", mids[1])
	}

	// and back again
	if err := ed.MovePointsGlobal(el, map[int]geom.Point{0: geom.Pt(20, 20)}); err != nil {
		t.Fatal(err)
	}
	mids = EditorMidPoints(el, ed.Config)
	if mids[0] == nil || !geom.Equal(*mids[0], geom.Pt(55, 45), eps) {
		t.Errorf("segment 0 midpoint = %v, want (55,45) after restore", mids[0])
	}
}

func TestEditorMidPointsAtThreshold(t *testing.T) {
	// exactly MinSegmentLength long stays visible
	el := twoPointLine()
	mids := EditorMidPoints(el, DefaultConfig())
	if len(mids) != 1 || mids[0] == nil {
		t.Fatalf("40px segment should show its midpoint, got %v", mids)
	}

	cfg := DefaultConfig()
	cfg.MinSegmentLength = 41
	if mids := EditorMidPoints(el, cfg); mids[0] != nil {
		t.Errorf("midpoint should hide below a 41px threshold")
	}
}

func TestEditorMidPointsFollowTranslate(t *testing.T) {
	el := threePointLine()
	ed := newTestEditor(el)
	before := EditorMidPoints(el, ed.Config)

	ed.Translate(el, 15, -5)
	after := EditorMidPoints(el, ed.Config)
	for i := range before {
		want := before[i].Add(geom.Pt(15, -5))
		if !geom.Equal(*after[i], want, eps) {
			t.Errorf("midpoint %d = %v, want %v", i, *after[i], want)
		}
	}
}

func TestRoundnessChangesMidPointsNotPoints(t *testing.T) {
	el := threePointLine()
	ed := newTestEditor(el)
	sharp := EditorMidPoints(el, ed.Config)

	ed.SetRoundness(el, element.Rounded())
	if len(el.Points) != 3 {
		t.Fatalf("roundness toggle changed point count to %d", len(el.Points))
	}
	rounded := EditorMidPoints(el, ed.Config)
	if len(rounded) != len(sharp) {
		t.Fatalf("midpoint count changed: %d -> %d", len(sharp), len(rounded))
	}
	if geom.Equal(*rounded[0], *sharp[0], 1e-3) {
		t.Errorf("rounded midpoint %v should differ from chord centre %v", *rounded[0], *sharp[0])
	}

	ed.SetRoundness(el, element.Sharp)
	back := EditorMidPoints(el, ed.Config)
	for i := range sharp {
		if !geom.Equal(*back[i], *sharp[i], eps) {
			t.Errorf("midpoint %d = %v after toggling back, want %v", i, *back[i], *sharp[i])
		}
	}
}

func TestMidPointHit(t *testing.T) {
	el := threePointLine()
	cfg := DefaultConfig()

	tests := []struct {
		name string
		p    geom.Point
		want int
	}{
		{"on segment 0 midpoint", geom.Pt(55, 45), 0},
		{"near segment 1 midpoint", geom.Pt(75, 40), 1},
		{"outside radius", geom.Pt(75, 30), -1},
		{"far away", geom.Pt(300, 300), -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MidPointHit(el, tc.p, cfg); got != tc.want {
				t.Errorf("MidPointHit(%v) = %d, want %d", tc.p, got, tc.want)
			}
		})
	}
}

func TestPointHitEndpointsOnly(t *testing.T) {
	el := threePointLine()
	cfg := DefaultConfig()

	if got := PointHit(el, geom.Pt(91, 69), cfg, false); got != 1 {
		t.Errorf("PointHit all = %d, want 1", got)
	}
	if got := PointHit(el, geom.Pt(91, 69), cfg, true); got != -1 {
		t.Errorf("PointHit endpoints only = %d, want -1", got)
	}
	if got := PointHit(el, geom.Pt(62, 22), cfg, true); got != 2 {
		t.Errorf("PointHit last endpoint = %d, want 2", got)
	}
}

func TestOnBodyAndNearestSegment(t *testing.T) {
	el := threePointLine()
	cfg := DefaultConfig()

	if !OnBody(el, geom.Pt(40, 36), cfg) {
		t.Errorf("point beside segment 0 should hit the body")
	}
	if OnBody(el, geom.Pt(40, 100), cfg) {
		t.Errorf("distant point should miss the body")
	}

	seg, d := NearestSegment(el, geom.Pt(80, 48))
	if seg != 1 {
		t.Errorf("nearest segment = %d (%.2f), want 1", seg, d)
	}
}

func TestOutlineRoundedPassesThroughPoints(t *testing.T) {
	el := threePointLine()
	el.Roundness = element.Rounded()

	path := Outline(el)
	if len(path) <= 3 {
		t.Fatalf("rounded outline should be sampled, got %d points", len(path))
	}
	global := element.GlobalPoints(el)
	if !geom.Equal(path[0], global[0], eps) || !geom.Equal(path[len(path)-1], global[2], eps) {
		t.Errorf("outline ends %v..%v, want %v..%v", path[0], path[len(path)-1], global[0], global[2])
	}
}
