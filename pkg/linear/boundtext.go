package linear

import (
	"fmt"
	"math"

	"github.com/ha1tch/lineedit/pkg/element"
	"github.com/ha1tch/lineedit/pkg/geom"
	"github.com/ha1tch/lineedit/pkg/textwrap"
)

// BoundTextMaxWidth returns the wrap width for a label on container. It never
// drops below the label font size, so narrow or vertical containers still wrap.
func BoundTextMaxWidth(container *element.Linear, cfg Config) float64 {
	return math.Max(container.Width-cfg.LabelPadding, cfg.LabelFont.Size)
}

// labelAnchor returns the global point a label is centred on: the middle
// point for an odd point count, else the midpoint of the central segment.
func labelAnchor(container *element.Linear) geom.Point {
	n := len(container.Points)
	if n%2 == 1 {
		return element.ToGlobal(container, n/2)
	}
	return SegmentMidPoint(container, n/2-1)
}

// BoundTextPosition returns the top-left position of t centred on its
// container. A nil container is looked up through elements by t.ContainerID;
// if it cannot be found the label's last position is returned.
func BoundTextPosition(container *element.Linear, t *element.Text, elements element.Map) geom.Point {
	if container == nil && elements != nil && t.ContainerID != "" {
		container, _ = elements.Linear(t.ContainerID)
	}
	if container == nil || len(container.Points) < 2 {
		return geom.Point{X: t.X, Y: t.Y}
	}
	a := labelAnchor(container)
	return geom.Point{X: a.X - t.Width/2, Y: a.Y - t.Height/2}
}

// RefreshBoundText re-wraps the label bound to container against its current
// width and re-centres it.
func (e *Editor) RefreshBoundText(container *element.Linear) {
	t, ok := e.Scene.BoundText(container)
	if !ok {
		return
	}

	wrapped := textwrap.Wrap(e.Measurer, t.OriginalText, t.Font, BoundTextMaxWidth(container, e.Config))
	w, h := textwrap.Measure(e.Measurer, wrapped, t.Font, t.LineHeight)
	e.Scene.MutateText(t, element.TextUpdate{
		Text:   &wrapped,
		Width:  &w,
		Height: &h,
	})

	pos := BoundTextPosition(container, t, e.Scene)
	e.Scene.MutateText(t, element.TextUpdate{X: &pos.X, Y: &pos.Y})
}

// CreateLabel binds a new empty label to container and returns it. If the
// container already has a label, that label is returned.
func (e *Editor) CreateLabel(container *element.Linear) (*element.Text, error) {
	if t, ok := e.Scene.BoundText(container); ok {
		return t, nil
	}

	t := element.NewText("", e.Config.LabelFont)
	e.Scene.AddText(t)
	if err := e.Scene.BindText(container, t); err != nil {
		e.Scene.RemoveText(t)
		return nil, err
	}
	e.RefreshBoundText(container)
	Logger().Info("label created", "container", container.ID, "label", t.ID)
	return t, nil
}

// SetLabelText replaces the label's authored text and re-flows it.
func (e *Editor) SetLabelText(t *element.Text, text string) error {
	e.Scene.MutateText(t, element.TextUpdate{OriginalText: &text})

	container, ok := e.Scene.Linear(t.ContainerID)
	if !ok {
		w, h := textwrap.Measure(e.Measurer, text, t.Font, t.LineHeight)
		e.Scene.MutateText(t, element.TextUpdate{Text: &text, Width: &w, Height: &h})
		return fmt.Errorf("label %s: %w", t.ID, ErrNoContainer)
	}
	e.RefreshBoundText(container)
	return nil
}

// Unbind detaches t from its container. Its position and size stay frozen at
// their last computed values.
func (e *Editor) Unbind(t *element.Text) {
	e.Scene.UnbindText(t)
	Logger().Info("label unbound", "label", t.ID)
}
