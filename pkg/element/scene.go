package element

import (
	"errors"
	"fmt"

	"github.com/ha1tch/lineedit/pkg/geom"
)

// Map is read access to elements by id.
type Map interface {
	Linear(id string) (*Linear, bool)
	Text(id string) (*Text, bool)
}

// Errors returned by Scene operations.
var (
	ErrNotFound     = errors.New("element not found")
	ErrAlreadyBound = errors.New("text already bound to a container")
)

// Scene owns the elements of a drawing. All writes go through its Mutate
// methods so derived fields (size, version) stay in step with the data.
// A Scene is not safe for concurrent use.
type Scene struct {
	linears map[string]*Linear
	texts   map[string]*Text
	order   []string
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		linears: make(map[string]*Linear),
		texts:   make(map[string]*Text),
	}
}

// Linear returns the linear element with the given id.
func (s *Scene) Linear(id string) (*Linear, bool) {
	el, ok := s.linears[id]
	return el, ok
}

// Text returns the text element with the given id.
func (s *Scene) Text(id string) (*Text, bool) {
	t, ok := s.texts[id]
	return t, ok
}

// AddLinear adds el to the scene, normalizing its points.
func (s *Scene) AddLinear(el *Linear) {
	Normalize(el)
	if _, exists := s.linears[el.ID]; !exists {
		s.order = append(s.order, el.ID)
	}
	s.linears[el.ID] = el
}

// AddText adds t to the scene.
func (s *Scene) AddText(t *Text) {
	if _, exists := s.texts[t.ID]; !exists {
		s.order = append(s.order, t.ID)
	}
	s.texts[t.ID] = t
}

// Linears returns the linear elements in insertion order.
func (s *Scene) Linears() []*Linear {
	out := make([]*Linear, 0, len(s.linears))
	for _, id := range s.order {
		if el, ok := s.linears[id]; ok {
			out = append(out, el)
		}
	}
	return out
}

// Texts returns the text elements in insertion order.
func (s *Scene) Texts() []*Text {
	out := make([]*Text, 0, len(s.texts))
	for _, id := range s.order {
		if t, ok := s.texts[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of elements in the scene.
func (s *Scene) Len() int {
	return len(s.linears) + len(s.texts)
}

// LinearUpdate is a partial update of a linear element. Nil fields are left
// unchanged.
type LinearUpdate struct {
	X, Y          *float64
	Angle         *float64
	Points        []geom.Point
	Roundness     *Roundness
	BoundElements *[]BoundElement
}

// MutateLinear applies u to el. Points are stored as given; callers that
// change the point list use ApplyPoints to keep the anchor invariant.
func (s *Scene) MutateLinear(el *Linear, u LinearUpdate) {
	if u.X != nil {
		el.X = *u.X
	}
	if u.Y != nil {
		el.Y = *u.Y
	}
	if u.Angle != nil {
		el.Angle = *u.Angle
	}
	if u.Points != nil {
		el.Points = u.Points
		el.Width, el.Height = Size(el.Points)
	}
	if u.Roundness != nil {
		el.Roundness = *u.Roundness
	}
	if u.BoundElements != nil {
		el.BoundElements = *u.BoundElements
	}
	el.Version++
}

// ApplyPoints replaces el's points with pts, given in el's current local
// space, then re-anchors and normalizes.
func (s *Scene) ApplyPoints(el *Linear, pts []geom.Point) {
	x, y, out := Rebase(el, pts)
	s.MutateLinear(el, LinearUpdate{X: &x, Y: &y, Points: out})
}

// TextUpdate is a partial update of a text element.
type TextUpdate struct {
	X, Y          *float64
	Width, Height *float64
	Text          *string
	OriginalText  *string
	ContainerID   *string
}

// MutateText applies u to t.
func (s *Scene) MutateText(t *Text, u TextUpdate) {
	if u.X != nil {
		t.X = *u.X
	}
	if u.Y != nil {
		t.Y = *u.Y
	}
	if u.Width != nil {
		t.Width = *u.Width
	}
	if u.Height != nil {
		t.Height = *u.Height
	}
	if u.Text != nil {
		t.Text = *u.Text
	}
	if u.OriginalText != nil {
		t.OriginalText = *u.OriginalText
	}
	if u.ContainerID != nil {
		t.ContainerID = *u.ContainerID
	}
	t.Version++
}

// BindText binds t to container, updating both sides of the relation.
func (s *Scene) BindText(container *Linear, t *Text) error {
	if _, ok := s.linears[container.ID]; !ok {
		return fmt.Errorf("bind %s: container %s: %w", t.ID, container.ID, ErrNotFound)
	}
	if t.ContainerID != "" && t.ContainerID != container.ID {
		return fmt.Errorf("bind %s: %w", t.ID, ErrAlreadyBound)
	}

	bound := make([]BoundElement, 0, len(container.BoundElements)+1)
	for _, b := range container.BoundElements {
		if b.ID != t.ID {
			bound = append(bound, b)
		}
	}
	bound = append(bound, BoundElement{ID: t.ID, Type: KindText})

	id := container.ID
	s.MutateText(t, TextUpdate{ContainerID: &id})
	s.MutateLinear(container, LinearUpdate{BoundElements: &bound})
	return nil
}

// UnbindText clears t's container and removes the container's back-reference.
// The text keeps its last position and size.
func (s *Scene) UnbindText(t *Text) {
	if container, ok := s.linears[t.ContainerID]; ok {
		bound := make([]BoundElement, 0, len(container.BoundElements))
		for _, b := range container.BoundElements {
			if b.ID != t.ID {
				bound = append(bound, b)
			}
		}
		s.MutateLinear(container, LinearUpdate{BoundElements: &bound})
	}
	empty := ""
	s.MutateText(t, TextUpdate{ContainerID: &empty})
}

// RemoveText unbinds and deletes t.
func (s *Scene) RemoveText(t *Text) {
	s.UnbindText(t)
	delete(s.texts, t.ID)
	for i, id := range s.order {
		if id == t.ID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// BoundText returns the text bound to container, if any.
func (s *Scene) BoundText(container *Linear) (*Text, bool) {
	id, ok := container.BoundTextID()
	if !ok {
		return nil, false
	}
	t, ok := s.texts[id]
	if !ok || t.ContainerID != container.ID {
		return nil, false
	}
	return t, true
}

// Float returns a pointer to v, for building updates.
func Float(v float64) *float64 {
	return &v
}

// String returns a pointer to v, for building updates.
func String(v string) *string {
	return &v
}
