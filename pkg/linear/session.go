package linear

import (
	"github.com/ha1tch/lineedit/pkg/element"
	"github.com/ha1tch/lineedit/pkg/geom"
)

// Renderer paints the scene after each change. RenderInteractive draws
// handles and midpoints; RenderStatic draws committed shapes.
type Renderer interface {
	RenderInteractive(s *Session)
	RenderStatic(scene *element.Scene)
}

// Session is the editing-mode state machine for one canvas:
//
//	unselected -> selected -> editing
//
// Pointer and keyboard events from the UI layer drive it; it calls into the
// Editor for every geometry change. A Session is not safe for concurrent use.
type Session struct {
	*Editor
	state    *EditorState
	renderer Renderer
}

// NewSession creates a Session with nothing selected. r may be nil.
func NewSession(ed *Editor, r Renderer) *Session {
	return &Session{Editor: ed, renderer: r}
}

// State returns the current editor state, or nil when nothing is selected.
func (s *Session) State() *EditorState {
	return s.state
}

// Mode returns the current mode. Label entry counts as editing.
func (s *Session) Mode() Mode {
	switch {
	case s.state == nil:
		return ModeUnselected
	case s.state.pointEditing():
		return ModeEditing
	}
	return ModeSelected
}

// Element returns the selected element.
func (s *Session) Element() (*element.Linear, bool) {
	if s.state == nil {
		return nil, false
	}
	return s.Scene.Linear(s.state.ElementID)
}

// MidPoints returns the midpoint handles of the selected element.
func (s *Session) MidPoints() []*geom.Point {
	el, ok := s.Element()
	if !ok {
		return nil
	}
	return EditorMidPoints(el, s.Config)
}

func (s *Session) render() {
	if s.renderer == nil {
		return
	}
	s.renderer.RenderInteractive(s)
	s.renderer.RenderStatic(s.Scene)
}

// Select selects the linear element id, leaving any edit mode.
func (s *Session) Select(id string) bool {
	if _, ok := s.Scene.Linear(id); !ok {
		return false
	}
	s.endLabel()
	s.state = &EditorState{ElementID: id}
	s.render()
	return true
}

// Deselect returns to the unselected state.
func (s *Session) Deselect() {
	if s.state == nil {
		return
	}
	s.endLabel()
	s.state = nil
	s.render()
}

// EnterEditing switches a selected element into edit mode.
func (s *Session) EnterEditing() bool {
	if s.state == nil || s.state.IsEditing {
		return false
	}
	s.state.IsEditing = true
	s.state.SelectedPointIndices = nil
	s.state.PointerDown = nil
	Logger().Info("enter editing", "element", s.state.ElementID)
	s.render()
	return true
}

// ExitEditing leaves edit mode, keeping the element selected.
func (s *Session) ExitEditing() {
	if s.state == nil || !s.state.IsEditing {
		return
	}
	s.state.IsEditing = false
	s.state.SelectedPointIndices = nil
	s.state.PointerDown = nil
	Logger().Info("exit editing", "element", s.state.ElementID)
	s.render()
}

// beginLabel creates or reopens the label of el and enters label entry.
func (s *Session) beginLabel(el *element.Linear) {
	if _, err := s.CreateLabel(el); err != nil {
		Logger().Debug("create label rejected", "element", el.ID, "err", err)
		return
	}
	s.state.IsEditingLabel = true
	s.render()
}

// Label returns the label of the selected element.
func (s *Session) Label() (*element.Text, bool) {
	el, ok := s.Element()
	if !ok {
		return nil, false
	}
	return s.Scene.BoundText(el)
}

// FinishLabel ends label entry with the given text. Empty text removes the
// label.
func (s *Session) FinishLabel(text string) {
	if s.state == nil || !s.state.IsEditingLabel {
		return
	}
	s.finishLabel(text)
	s.render()
}

func (s *Session) finishLabel(text string) {
	s.state.IsEditingLabel = false

	if t, ok := s.Label(); ok {
		if text == "" {
			s.Scene.RemoveText(t)
		} else if err := s.SetLabelText(t, text); err != nil {
			Logger().Debug("set label rejected", "label", t.ID, "err", err)
		}
	}
}

// endLabel finishes any label entry in progress with the label's current
// text. It does not render; callers replacing the state render afterwards.
func (s *Session) endLabel() {
	if s.state == nil || !s.state.IsEditingLabel {
		return
	}
	text := ""
	if t, ok := s.Label(); ok {
		text = t.OriginalText
	}
	s.finishLabel(text)
}

// UnbindLabel detaches the selected element's label, leaving it in place as
// free text.
func (s *Session) UnbindLabel() bool {
	t, ok := s.Label()
	if !ok || s.state.IsEditingLabel {
		return false
	}
	s.Unbind(t)
	s.render()
	return true
}

// KeyEnter handles Enter. On a selected line, or with Ctrl, it enters edit
// mode; on a selected arrow it starts label entry; in edit mode it exits.
func (s *Session) KeyEnter(m Modifiers) {
	el, ok := s.Element()
	if !ok || s.state.IsEditingLabel {
		return
	}
	if s.state.IsEditing {
		s.ExitEditing()
		return
	}
	if m.Ctrl || !el.IsArrow() {
		s.EnterEditing()
		return
	}
	s.beginLabel(el)
}

// KeyEscape leaves edit mode, or deselects.
func (s *Session) KeyEscape() {
	switch {
	case s.state == nil:
	case s.state.IsEditingLabel:
		s.endLabel()
		s.render()
	case s.state.IsEditing:
		s.ExitEditing()
	default:
		s.Deselect()
	}
}

// KeyDelete deletes the selected points in edit mode.
func (s *Session) KeyDelete() {
	el, ok := s.Element()
	if !ok || !s.state.IsEditing || len(s.state.SelectedPointIndices) == 0 {
		return
	}
	if err := s.DeletePoints(el, s.state.SelectedPointIndices...); err != nil {
		Logger().Debug("delete rejected", "element", el.ID, "err", err)
		return
	}
	s.state.SelectedPointIndices = nil
	s.render()
}

// topmostAt returns the topmost linear element whose body is under p.
func (s *Session) topmostAt(p geom.Point) (*element.Linear, bool) {
	els := s.Scene.Linears()
	for i := len(els) - 1; i >= 0; i-- {
		if OnBody(els[i], p, s.Config) {
			return els[i], true
		}
	}
	return nil, false
}

// hitTest classifies p against the selected element.
func (s *Session) hitTest(el *element.Linear, p geom.Point) (HitKind, int) {
	editing := s.state.pointEditing()
	if i := PointHit(el, p, s.Config, !editing); i >= 0 {
		return HitPoint, i
	}
	if editing || len(el.Points) == 2 {
		if i := MidPointHit(el, p, s.Config); i >= 0 {
			return HitMidpoint, i
		}
	}
	if OnBody(el, p, s.Config) {
		return HitBody, -1
	}
	return HitNone, -1
}

// PointerDown starts a gesture at global position p.
func (s *Session) PointerDown(p geom.Point, m Modifiers) {
	el, ok := s.Element()
	if !ok {
		target, hit := s.topmostAt(p)
		if !hit {
			return
		}
		s.endLabel()
		s.state = &EditorState{ElementID: target.ID}
		el = target
	}

	hit, idx := s.hitTest(el, p)
	if hit == HitNone {
		if s.state.IsEditing {
			s.ExitEditing()
			return
		}
		if other, found := s.topmostAt(p); found {
			s.endLabel()
			s.state = &EditorState{ElementID: other.ID}
			el = other
			hit = HitBody
		} else {
			s.Deselect()
			return
		}
	}

	pd := &PointerDownState{
		Origin:   p,
		Last:     p,
		Hit:      hit,
		Index:    idx,
		Original: element.GlobalPoints(el),
	}

	switch hit {
	case HitPoint:
		if m.Shift {
			s.state.toggleSelected(idx)
		} else if !s.state.isSelected(idx) {
			s.state.SelectedPointIndices = []int{idx}
		}
		if !s.state.isSelected(idx) {
			pd.Hit = HitNone
		}
	case HitMidpoint:
		s.state.SelectedPointIndices = nil
	case HitBody:
		s.state.SelectedPointIndices = nil
	}

	s.state.PointerDown = pd
	s.render()
}

// commitThreshold is how far a midpoint drag must travel before inserting.
func (s *Session) commitThreshold(el *element.Linear) float64 {
	if s.state.pointEditing() || len(el.Points) != 2 {
		return 0
	}
	return s.Config.DragThreshold
}

// PointerMove continues the current gesture.
func (s *Session) PointerMove(p geom.Point, m Modifiers) {
	el, ok := s.Element()
	if !ok || s.state.PointerDown == nil {
		return
	}
	pd := s.state.PointerDown

	switch pd.Hit {
	case HitMidpoint:
		if geom.Distance(pd.Origin, p) <= s.commitThreshold(el) {
			return
		}
		idx, err := s.AddPoint(el, pd.Index, p)
		if err != nil {
			Logger().Debug("insert rejected", "element", el.ID, "err", err)
			pd.Hit = HitNone
			return
		}
		pd.Moved = true
		pd.Hit = HitPoint
		pd.Index = idx
		pd.Origin = p
		pd.Original = element.GlobalPoints(el)
		s.state.SelectedPointIndices = []int{idx}

	case HitPoint:
		s.dragPoints(el, pd, p, m)

	case HitBody:
		d := p.Sub(pd.Last)
		if d.X != 0 || d.Y != 0 {
			s.Translate(el, d.X, d.Y)
			pd.Moved = true
		}
	}

	pd.Last = p
	s.render()
}

func (s *Session) dragPoints(el *element.Linear, pd *PointerDownState, p geom.Point, m Modifiers) {
	delta := p.Sub(pd.Origin)
	sel := s.state.SelectedPointIndices
	last := len(pd.Original) - 1

	targets := make(map[int]geom.Point, len(sel))
	for _, i := range sel {
		if i < 0 || i > last {
			continue
		}
		targets[i] = pd.Original[i].Add(delta)
	}

	if m.Shift && len(sel) == 1 && last >= 1 && (sel[0] == 0 || sel[0] == last) {
		i := sel[0]
		opposite := last - i
		targets[i] = ConstrainAngle(pd.Original[opposite], pd.Original[i], p)
	}

	if err := s.MovePointsGlobal(el, targets); err != nil {
		Logger().Debug("move rejected", "element", el.ID, "err", err)
		return
	}
	pd.Moved = true
}

// PointerUp ends the current gesture.
func (s *Session) PointerUp(p geom.Point, m Modifiers) {
	if s.state == nil || s.state.PointerDown == nil {
		return
	}
	if p != s.state.PointerDown.Last {
		s.PointerMove(p, m)
	}
	if s.state == nil {
		return
	}
	// a plain click on one of several selected points narrows the selection
	pd := s.state.PointerDown
	if pd.Hit == HitPoint && !pd.Moved && !m.Shift && len(s.state.SelectedPointIndices) > 1 {
		s.state.SelectedPointIndices = []int{pd.Index}
	}
	s.state.PointerDown = nil
	s.render()
}

// DoubleClick handles a double-click at p. With Ctrl, or on a line, it enters
// edit mode. On an arrow it starts label entry. Inside edit mode it inserts a
// point on the nearest segment and never creates a label.
func (s *Session) DoubleClick(p geom.Point, m Modifiers) {
	el, ok := s.Element()
	if !ok || !OnBody(el, p, s.Config) {
		target, hit := s.topmostAt(p)
		if !hit {
			return
		}
		s.endLabel()
		s.state = &EditorState{ElementID: target.ID}
		el = target
	}

	if s.state.IsEditing {
		if PointHit(el, p, s.Config, false) >= 0 {
			return
		}
		seg, _ := NearestSegment(el, p)
		idx, err := s.AddPoint(el, seg, p)
		if err != nil {
			Logger().Debug("insert rejected", "element", el.ID, "err", err)
			return
		}
		s.state.SelectedPointIndices = []int{idx}
		s.render()
		return
	}
	if s.state.IsEditingLabel {
		return
	}

	if m.Ctrl || !el.IsArrow() {
		s.EnterEditing()
		return
	}
	s.beginLabel(el)
}
