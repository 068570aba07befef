package main

import (
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ha1tch/lineedit/pkg/element"
	"github.com/ha1tch/lineedit/pkg/geom"
	"github.com/ha1tch/lineedit/pkg/linear"
)

// Styles
var (
	styleDefault    = tcell.StyleDefault
	styleLine       = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleSelected   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 162, 200)) // Lilac
	styleLabel      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHandle     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHandleSel  = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
	styleMidpoint   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgSuccess = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleInput      = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
)

func (ed *Editor) grid() grid {
	return grid{cw: ed.config.CellWidth, ch: ed.config.CellHeight}
}

// rasterLinear draws el's path, with an arrowhead for arrows.
func (ed *Editor) rasterLinear(el *element.Linear, style tcell.Style) []cell {
	g := ed.grid()
	path := linear.Outline(el)
	out := g.rasterPath(path, style)
	if el.IsArrow() && len(path) >= 2 {
		a, b := path[len(path)-2], path[len(path)-1]
		x, y := g.cellOf(b)
		out = append(out, cell{x: x, y: y, r: arrowGlyph(b.X-a.X, b.Y-a.Y), style: style})
	}
	return out
}

// RenderStatic rebuilds the committed-shape layer.
func (ed *Editor) RenderStatic(scene *element.Scene) {
	g := ed.grid()
	ed.static = ed.static[:0]
	for _, el := range scene.Linears() {
		ed.static = append(ed.static, ed.rasterLinear(el, styleLine)...)
	}
	for _, t := range scene.Texts() {
		ed.static = append(ed.static, g.rasterText(geom.Pt(t.X, t.Y), t.Text, styleLabel)...)
	}
}

// RenderInteractive rebuilds the selection layer: highlighted path, point
// handles and midpoint handles.
func (ed *Editor) RenderInteractive(s *linear.Session) {
	ed.overlay = ed.overlay[:0]
	el, ok := s.Element()
	if !ok {
		return
	}
	g := ed.grid()
	st := s.State()
	editing := s.Mode() == linear.ModeEditing

	ed.overlay = append(ed.overlay, ed.rasterLinear(el, styleSelected)...)

	if editing || len(el.Points) == 2 {
		for _, mid := range s.MidPoints() {
			if mid == nil {
				continue
			}
			x, y := g.cellOf(*mid)
			ed.overlay = append(ed.overlay, cell{x: x, y: y, r: '◇', style: styleMidpoint})
		}
	}

	last := len(el.Points) - 1
	for i, p := range element.GlobalPoints(el) {
		if !editing && i != 0 && i != last {
			continue
		}
		x, y := g.cellOf(p)
		c := cell{x: x, y: y, r: '○', style: styleHandle}
		for _, sel := range st.SelectedPointIndices {
			if sel == i {
				c.r, c.style = '●', styleHandleSel
			}
		}
		ed.overlay = append(ed.overlay, c)
	}
}

func (ed *Editor) draw() {
	ed.screen.Clear()
	w, h := ed.screen.Size()
	canvasH := h - 2 // Leave room for status bar

	for _, layer := range [][]cell{ed.static, ed.overlay} {
		for _, c := range layer {
			x := c.x - ed.offsetX
			y := c.y - ed.offsetY
			if x < 0 || x >= w || y < 0 || y >= canvasH {
				continue
			}
			ed.screen.SetContent(x, y, c.r, nil, c.style)
		}
	}

	ed.drawStatusBar(w, h)
}

func (ed *Editor) drawStatusBar(w, h int) {
	y := h - 1

	// Background
	for x := 0; x < w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	// File info
	fileInfo := "[New]"
	if ed.filename != "" {
		fileInfo = filepath.Base(ed.filename)
	}
	if ed.modified {
		fileInfo += " *"
	}
	ed.drawString(1, y, fileInfo, styleStatus)

	// Mode
	modeStr := ed.modeString()
	ed.drawString(w/2-runewidth.StringWidth(modeStr)/2, y, modeStr, styleStatus)

	// Message
	if ed.message != "" {
		style := styleMsgInfo
		switch ed.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess:
			style = styleMsgSuccess
		}
		ed.drawString(w-runewidth.StringWidth(ed.message)-2, y, ed.message, style)
	}

	// Help bar, or the label being typed
	y = h - 2
	for x := 0; x < w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	if ed.labelActive {
		ed.drawString(1, y, "Label: "+strings.ReplaceAll(ed.labelBuffer, "\n", " ")+"_", styleInput)
		return
	}
	ed.drawString(1, y, ed.helpString(), styleHelp)
}

func (ed *Editor) drawString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		ed.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func (ed *Editor) modeString() string {
	if ed.labelActive {
		return "LABEL"
	}
	switch ed.session.Mode() {
	case linear.ModeEditing:
		return "EDIT"
	case linear.ModeSelected:
		return "SELECTED"
	default:
		return ""
	}
}

func (ed *Editor) helpString() string {
	switch ed.session.Mode() {
	case linear.ModeEditing:
		return "Drag:Move point  Drag ◇:Add point  Shift:Lock angle  Dbl-click:Add point  Del:Delete  Enter/Esc:Done"
	case linear.ModeSelected:
		return "Enter:Edit/Label  Ctrl+E:Edit  R:Round  U:Detach label  Drag:Move  Esc:Deselect  Ctrl+Z/Y:Undo/Redo"
	default:
		return "Click:Select  L:Line  A:Arrow  Arrows:Pan  Ctrl+S:Save  Q:Quit"
	}
}
