// Package element provides the linear and text element model: local point
// storage, local/global transforms, normalization, and the Scene that owns
// every element and is the only place fields are written.
package element

import (
	"github.com/google/uuid"

	"github.com/ha1tch/lineedit/pkg/geom"
	"github.com/ha1tch/lineedit/pkg/textwrap"
)

// Kind is the element type.
type Kind string

const (
	KindLine  Kind = "line"
	KindArrow Kind = "arrow"
	KindText  Kind = "text"
)

// RoundnessMode selects how joins between segments are drawn and measured.
type RoundnessMode string

const (
	RoundSharp        RoundnessMode = ""
	RoundProportional RoundnessMode = "proportional"
)

// Roundness describes the join style of a linear element.
type Roundness struct {
	Mode      RoundnessMode
	Tightness float64 // 0 = standard curve, 1 = straight joins
}

// Sharp is the zero roundness.
var Sharp = Roundness{}

// Rounded returns a proportional roundness with standard tightness.
func Rounded() Roundness {
	return Roundness{Mode: RoundProportional}
}

// IsRounded reports whether joins are evaluated along a curve.
func (r Roundness) IsRounded() bool {
	return r.Mode != RoundSharp
}

// BoundElement is a back-reference from a container to an element bound to it.
type BoundElement struct {
	ID   string `json:"id"`
	Type Kind   `json:"type"`
}

// Binding docks an endpoint of a linear element to another element.
type Binding struct {
	ElementID string  `json:"elementId"`
	Focus     float64 `json:"focus"`
	Gap       float64 `json:"gap"`
}

// Linear is a line or arrow.
type Linear struct {
	ID            string
	Kind          Kind
	X, Y          float64 // global position of Points[0]
	Width, Height float64 // bounding box of Points, kept by the Scene
	Angle         float64
	Points        []geom.Point // local; Points[0] is always (0,0)
	Roundness     Roundness
	BoundElements []BoundElement
	StartBinding  *Binding
	EndBinding    *Binding
	Version       int
}

// Text is a text element, optionally bound to a container.
type Text struct {
	ID            string
	ContainerID   string // empty when unbound
	OriginalText  string
	Text          string
	Font          textwrap.Font
	LineHeight    float64
	X, Y          float64
	Width, Height float64
	Version       int
}

// NewID returns a fresh element id.
func NewID() string {
	return uuid.NewString()
}

// NewLinear creates a normalized linear element anchored at (x, y).
func NewLinear(kind Kind, x, y float64, points []geom.Point) *Linear {
	el := &Linear{
		ID:     NewID(),
		Kind:   kind,
		X:      x,
		Y:      y,
		Points: append([]geom.Point(nil), points...),
	}
	Normalize(el)
	return el
}

// NewText creates an unbound text element.
func NewText(text string, f textwrap.Font) *Text {
	return &Text{
		ID:           NewID(),
		OriginalText: text,
		Text:         text,
		Font:         f,
		LineHeight:   textwrap.DefaultLineHeight,
	}
}

// IsArrow reports whether the element is an arrow.
func (el *Linear) IsArrow() bool {
	return el.Kind == KindArrow
}

// BoundTextID returns the id of the first text bound to el.
func (el *Linear) BoundTextID() (string, bool) {
	for _, b := range el.BoundElements {
		if b.Type == KindText {
			return b.ID, true
		}
	}
	return "", false
}

// Clone returns a deep copy of el.
func (el *Linear) Clone() *Linear {
	c := *el
	c.Points = append([]geom.Point(nil), el.Points...)
	c.BoundElements = append([]BoundElement(nil), el.BoundElements...)
	if el.StartBinding != nil {
		b := *el.StartBinding
		c.StartBinding = &b
	}
	if el.EndBinding != nil {
		b := *el.EndBinding
		c.EndBinding = &b
	}
	return &c
}
