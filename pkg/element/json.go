package element

import (
	"encoding/json"
	"fmt"

	"github.com/ha1tch/lineedit/pkg/geom"
	"github.com/ha1tch/lineedit/pkg/textwrap"
)

// jsonScene is the JSON representation of a scene.
type jsonScene struct {
	Elements []jsonElement `json:"elements"`
}

type jsonElement struct {
	ID            string         `json:"id"`
	Type          Kind           `json:"type"`
	X             float64        `json:"x"`
	Y             float64        `json:"y"`
	Width         float64        `json:"width,omitempty"`
	Height        float64        `json:"height,omitempty"`
	Angle         float64        `json:"angle,omitempty"`
	Points        [][2]float64   `json:"points,omitempty"`
	Roundness     *jsonRoundness `json:"roundness,omitempty"`
	BoundElements []BoundElement `json:"boundElements,omitempty"`
	StartBinding  *Binding       `json:"startBinding,omitempty"`
	EndBinding    *Binding       `json:"endBinding,omitempty"`
	ContainerID   *string        `json:"containerId,omitempty"`
	Text          string         `json:"text,omitempty"`
	OriginalText  string         `json:"originalText,omitempty"`
	FontSize      float64        `json:"fontSize,omitempty"`
	FontFamily    string         `json:"fontFamily,omitempty"`
	LineHeight    float64        `json:"lineHeight,omitempty"`
}

type jsonRoundness struct {
	Type  string  `json:"type"`
	Value float64 `json:"value,omitempty"`
}

// ParseJSON parses a scene. Malformed point lists are corrected rather than
// rejected: points are normalized so the first sits at the origin, non-finite
// points are dropped, and container/label references are made mutually
// consistent.
func ParseJSON(data []byte) (*Scene, error) {
	var j jsonScene
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}

	s := NewScene()
	for _, je := range j.Elements {
		id := je.ID
		if id == "" {
			id = NewID()
		}

		switch je.Type {
		case KindLine, KindArrow:
			pts := make([]geom.Point, 0, len(je.Points))
			for _, p := range je.Points {
				pt := geom.Point{X: p[0], Y: p[1]}
				if finite(pt) {
					pts = append(pts, pt)
				}
			}
			if len(pts) < 2 {
				return nil, fmt.Errorf("element %s: need at least 2 points, got %d", id, len(pts))
			}
			el := &Linear{
				ID:            id,
				Kind:          je.Type,
				X:             je.X,
				Y:             je.Y,
				Angle:         je.Angle,
				Points:        pts,
				BoundElements: je.BoundElements,
				StartBinding:  je.StartBinding,
				EndBinding:    je.EndBinding,
			}
			if je.Roundness != nil && je.Roundness.Type != "" {
				el.Roundness = Roundness{Mode: RoundProportional, Tightness: je.Roundness.Value}
			}
			s.AddLinear(el)

		case KindText:
			f := textwrap.Font{Family: je.FontFamily, Size: je.FontSize}
			if f.Size <= 0 {
				f = textwrap.DefaultFont
			}
			t := &Text{
				ID:           id,
				OriginalText: je.OriginalText,
				Text:         je.Text,
				Font:         f,
				LineHeight:   je.LineHeight,
				X:            je.X,
				Y:            je.Y,
				Width:        je.Width,
				Height:       je.Height,
			}
			if t.OriginalText == "" {
				t.OriginalText = t.Text
			}
			if t.LineHeight <= 0 {
				t.LineHeight = textwrap.DefaultLineHeight
			}
			if je.ContainerID != nil {
				t.ContainerID = *je.ContainerID
			}
			s.AddText(t)

		default:
			return nil, fmt.Errorf("element %s: unsupported type %q", id, je.Type)
		}
	}

	s.repairBindings()
	return s, nil
}

// repairBindings makes container and label references agree. A label whose
// container is missing keeps its containerId and last position.
func (s *Scene) repairBindings() {
	for _, el := range s.linears {
		kept := el.BoundElements[:0]
		for _, b := range el.BoundElements {
			if b.Type != KindText {
				kept = append(kept, b)
				continue
			}
			if t, ok := s.texts[b.ID]; ok && t.ContainerID == el.ID {
				kept = append(kept, b)
			}
		}
		el.BoundElements = kept
	}
	for _, t := range s.texts {
		if el, ok := s.linears[t.ContainerID]; ok {
			if id, bound := el.BoundTextID(); !bound || id != t.ID {
				el.BoundElements = append(el.BoundElements, BoundElement{ID: t.ID, Type: KindText})
			}
		}
	}
}

// ToJSON converts a scene to JSON.
func ToJSON(s *Scene, pretty bool) ([]byte, error) {
	var j jsonScene
	for _, id := range s.order {
		if el, ok := s.linears[id]; ok {
			je := jsonElement{
				ID:            el.ID,
				Type:          el.Kind,
				X:             el.X,
				Y:             el.Y,
				Width:         el.Width,
				Height:        el.Height,
				Angle:         el.Angle,
				BoundElements: el.BoundElements,
				StartBinding:  el.StartBinding,
				EndBinding:    el.EndBinding,
			}
			for _, p := range el.Points {
				je.Points = append(je.Points, [2]float64{p.X, p.Y})
			}
			if el.Roundness.IsRounded() {
				je.Roundness = &jsonRoundness{Type: string(el.Roundness.Mode), Value: el.Roundness.Tightness}
			}
			j.Elements = append(j.Elements, je)
			continue
		}
		if t, ok := s.texts[id]; ok {
			je := jsonElement{
				ID:           t.ID,
				Type:         KindText,
				X:            t.X,
				Y:            t.Y,
				Width:        t.Width,
				Height:       t.Height,
				Text:         t.Text,
				OriginalText: t.OriginalText,
				FontSize:     t.Font.Size,
				FontFamily:   t.Font.Family,
				LineHeight:   t.LineHeight,
			}
			if t.ContainerID != "" {
				cid := t.ContainerID
				je.ContainerID = &cid
			}
			j.Elements = append(j.Elements, je)
		}
	}

	if pretty {
		return json.MarshalIndent(j, "", "  ")
	}
	return json.Marshal(j)
}
