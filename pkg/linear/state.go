package linear

import "github.com/ha1tch/lineedit/pkg/geom"

// Mode is the editing mode of a Session.
type Mode int

const (
	ModeUnselected Mode = iota
	ModeSelected
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeUnselected:
		return "unselected"
	case ModeSelected:
		return "selected"
	case ModeEditing:
		return "editing"
	}
	return "unknown"
}

// Modifiers are the keyboard modifiers held during a gesture.
type Modifiers struct {
	Shift bool // extend point selection; lock endpoint angle while dragging
	Ctrl  bool // enter edit mode on Enter or double-click
	Alt   bool
}

// HitKind is what a pointer-down landed on.
type HitKind int

const (
	HitNone HitKind = iota
	HitPoint
	HitMidpoint
	HitBody
)

// PointerDownState captures one pointer gesture from down to up.
type PointerDownState struct {
	Origin geom.Point // global pointer position at down (reset after insertion)
	Last   geom.Point
	Hit    HitKind
	Index  int // point index for HitPoint, segment index for HitMidpoint

	// Moved is set once the gesture has changed the element.
	Moved bool

	// Original holds the global points at the start of the drag.
	Original []geom.Point
}

// EditorState is the transient state of an editing session.
type EditorState struct {
	ElementID            string
	IsEditing            bool
	IsEditingLabel       bool
	SelectedPointIndices []int
	PointerDown          *PointerDownState
}

// pointEditing reports whether point-edit rules apply: explicit edit mode or
// label entry.
func (st *EditorState) pointEditing() bool {
	return st.IsEditing || st.IsEditingLabel
}

func (st *EditorState) isSelected(i int) bool {
	for _, s := range st.SelectedPointIndices {
		if s == i {
			return true
		}
	}
	return false
}

func (st *EditorState) toggleSelected(i int) {
	for k, s := range st.SelectedPointIndices {
		if s == i {
			st.SelectedPointIndices = append(st.SelectedPointIndices[:k], st.SelectedPointIndices[k+1:]...)
			return
		}
	}
	st.SelectedPointIndices = append(st.SelectedPointIndices, i)
}
