// Package linear implements the linear element editor: midpoint handles,
// point mutation, label attachment and the editing-mode state machine.
package linear

import (
	"errors"
	"fmt"
	"math"

	"github.com/ha1tch/lineedit/pkg/element"
	"github.com/ha1tch/lineedit/pkg/geom"
	"github.com/ha1tch/lineedit/pkg/textwrap"
)

// Errors returned by point operations. The element is left unchanged.
var (
	ErrPointIndex   = errors.New("point index out of range")
	ErrTooFewPoints = errors.New("linear element needs at least 2 points")
	ErrNoContainer  = errors.New("label has no container")
)

// Editor applies point and label operations to the elements of a Scene.
// Every geometry change re-flows the bound label before returning.
type Editor struct {
	Scene    *element.Scene
	Config   Config
	Measurer textwrap.Measurer
}

// NewEditor creates an Editor over scene.
func NewEditor(scene *element.Scene, cfg Config, m textwrap.Measurer) *Editor {
	return &Editor{Scene: scene, Config: cfg, Measurer: m}
}

// MovePoints moves the given points to new local positions, expressed in
// el's current local space. Each index is applied exactly once; moving index
// 0 moves the anchor.
func (e *Editor) MovePoints(el *element.Linear, targets map[int]geom.Point) error {
	if len(targets) == 0 {
		return nil
	}
	for i := range targets {
		if i < 0 || i >= len(el.Points) {
			return fmt.Errorf("move %d: %w", i, ErrPointIndex)
		}
	}

	pts := append([]geom.Point(nil), el.Points...)
	for i, p := range targets {
		pts[i] = p
	}
	e.Scene.ApplyPoints(el, pts)
	e.RefreshBoundText(el)
	return nil
}

// MovePointsGlobal is MovePoints with targets in global space.
func (e *Editor) MovePointsGlobal(el *element.Linear, targets map[int]geom.Point) error {
	local := make(map[int]geom.Point, len(targets))
	for i, g := range targets {
		local[i] = element.ToLocal(el, g)
	}
	return e.MovePoints(el, local)
}

// AddPoint inserts a point at global position g after point segment, and
// returns its index.
func (e *Editor) AddPoint(el *element.Linear, segment int, g geom.Point) (int, error) {
	if segment < 0 || segment >= len(el.Points)-1 {
		return -1, fmt.Errorf("add after %d: %w", segment, ErrPointIndex)
	}

	idx := segment + 1
	pts := make([]geom.Point, 0, len(el.Points)+1)
	pts = append(pts, el.Points[:idx]...)
	pts = append(pts, element.ToLocal(el, g))
	pts = append(pts, el.Points[idx:]...)

	e.Scene.ApplyPoints(el, pts)
	e.RefreshBoundText(el)
	return idx, nil
}

// DeletePoints removes the given points. Deleting index 0 makes the next
// point the anchor. The request is rejected if fewer than 2 points would
// remain.
func (e *Editor) DeletePoints(el *element.Linear, indices ...int) error {
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(el.Points) {
			return fmt.Errorf("delete %d: %w", i, ErrPointIndex)
		}
		drop[i] = true
	}
	if len(drop) == 0 {
		return nil
	}
	if len(el.Points)-len(drop) < 2 {
		return fmt.Errorf("delete %d of %d: %w", len(drop), len(el.Points), ErrTooFewPoints)
	}

	pts := make([]geom.Point, 0, len(el.Points)-len(drop))
	for i, p := range el.Points {
		if !drop[i] {
			pts = append(pts, p)
		}
	}
	e.Scene.ApplyPoints(el, pts)
	e.RefreshBoundText(el)
	return nil
}

// SetRoundness changes the join style. Points are not touched.
func (e *Editor) SetRoundness(el *element.Linear, r element.Roundness) {
	e.Scene.MutateLinear(el, element.LinearUpdate{Roundness: &r})
	e.RefreshBoundText(el)
}

// Translate moves el rigidly.
func (e *Editor) Translate(el *element.Linear, dx, dy float64) {
	e.Scene.MutateLinear(el, element.LinearUpdate{
		X: element.Float(el.X + dx),
		Y: element.Float(el.Y + dy),
	})
	e.RefreshBoundText(el)
}

// Resize scales el's points so its bounding box becomes width x height, then
// re-flows the label. A zero dimension is left unscaled.
func (e *Editor) Resize(el *element.Linear, width, height float64) {
	minX, minY, _, _ := geom.Bounds(el.Points)
	sx, sy := 1.0, 1.0
	if el.Width > 0 {
		sx = width / el.Width
	}
	if el.Height > 0 {
		sy = height / el.Height
	}

	pts := make([]geom.Point, len(el.Points))
	for i, p := range el.Points {
		pts[i] = geom.Point{
			X: minX + (p.X-minX)*sx,
			Y: minY + (p.Y-minY)*sy,
		}
	}
	e.Scene.ApplyPoints(el, pts)
	e.RefreshBoundText(el)
}

// ConstrainAngle projects target onto the ray from anchor through original,
// so the dragged point keeps the angle it had before the drag. The result
// never crosses to the other side of anchor.
func ConstrainAngle(anchor, original, target geom.Point) geom.Point {
	dir := original.Sub(anchor)
	l := dir.Len()
	if l == 0 {
		return target
	}
	dir = dir.Scale(1 / l)
	t := math.Max(target.Sub(anchor).Dot(dir), 1)
	return anchor.Add(dir.Scale(t))
}
