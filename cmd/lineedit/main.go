// Command lineedit is a TUI editor for lines and arrows.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/lineedit/pkg/element"
	"github.com/ha1tch/lineedit/pkg/geom"
	"github.com/ha1tch/lineedit/pkg/linear"
	"github.com/ha1tch/lineedit/pkg/textwrap"
)

// Config holds persistent editor settings
type Config struct {
	CellWidth        float64 // canvas pixels per terminal column
	CellHeight       float64 // canvas pixels per terminal row
	MinSegmentLength float64
	DragThreshold    float64
	LastFile         string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		CellWidth:        10,
		CellHeight:       20,
		MinSegmentLength: linear.PointHandleSize * 4,
		DragThreshold:    10,
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lineedit"
	}
	return filepath.Join(home, ".lineedit")
}

// LoadConfig loads configuration from the config file
func LoadConfig() Config {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		return DefaultConfig()
	}
	return parseConfig(string(data))
}

// parseConfig reads key = value lines. Unknown keys and bad values are
// ignored.
func parseConfig(data string) Config {
	cfg := DefaultConfig()
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.Trim(strings.TrimSpace(parts[1]), "\"")

		switch key {
		case "cell_width":
			setPositive(&cfg.CellWidth, val)
		case "cell_height":
			setPositive(&cfg.CellHeight, val)
		case "min_segment_length":
			setPositive(&cfg.MinSegmentLength, val)
		case "drag_threshold":
			if v, err := strconv.ParseFloat(val, 64); err == nil && v >= 0 {
				cfg.DragThreshold = v
			}
		case "last_file":
			cfg.LastFile = val
		}
	}
	return cfg
}

func setPositive(dst *float64, val string) {
	if v, err := strconv.ParseFloat(val, 64); err == nil && v > 0 {
		*dst = v
	}
}

// SaveConfig saves configuration to the config file
func SaveConfig(cfg Config) error {
	content := fmt.Sprintf("# lineedit configuration\ncell_width = %g\ncell_height = %g\nmin_segment_length = %g\ndrag_threshold = %g\nlast_file = \"%s\"\n",
		cfg.CellWidth, cfg.CellHeight, cfg.MinSegmentLength, cfg.DragThreshold, cfg.LastFile)
	return os.WriteFile(ConfigPath(), []byte(content), 0644)
}

// editorConfig maps the terminal settings onto the editor tuning. Labels use
// a font whose line height is exactly one row.
func (cfg Config) editorConfig() linear.Config {
	ec := linear.DefaultConfig()
	ec.MinSegmentLength = cfg.MinSegmentLength
	ec.DragThreshold = cfg.DragThreshold
	ec.LabelFont = textwrap.Font{
		Family: "terminal",
		Size:   cfg.CellHeight / textwrap.DefaultLineHeight,
	}
	return ec
}

// Editor holds all editor state
type Editor struct {
	screen      tcell.Screen
	scene       *element.Scene
	session     *linear.Session
	filename    string
	modified    bool
	message     string
	messageType MessageType
	config      Config

	// Viewport offset in cells
	offsetX int
	offsetY int

	// Layers produced by the renderer callbacks
	static  []cell
	overlay []cell

	// Left-button tracking
	leftMouseDown bool
	lastCellX     int
	lastCellY     int

	// Double-click detection
	lastClickTime int64 // Unix milliseconds of last click
	lastClickX    int
	lastClickY    int

	// Label entry
	labelActive bool
	labelBuffer string

	// Undo/Redo
	undoStack [][]byte
	redoStack [][]byte
	pending   []byte // snapshot taken at pointer down
	pendingV  int    // scene version at pointer down
}

// MessageType for status messages
type MessageType int

const (
	MsgInfo MessageType = iota
	MsgError
	MsgSuccess
)

const (
	doubleClickMillis = 400
	maxUndoLevels     = 50
)

func main() {
	verbose := flag.String("v", "", "write debug log to `file`")
	flag.Parse()

	if *verbose != "" {
		f, err := os.OpenFile(*verbose, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		linear.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ed := &Editor{config: LoadConfig()}

	if flag.NArg() > 0 {
		ed.filename = flag.Arg(0)
		if err := ed.loadFile(ed.filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", ed.filename, err)
			os.Exit(1)
		}
	} else {
		ed.setScene(demoScene())
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.Clear()
	ed.screen = screen

	ed.run()

	screen.Fini()
}

// demoScene returns a line and an arrow to play with.
func demoScene() *element.Scene {
	s := element.NewScene()
	s.AddLinear(element.NewLinear(element.KindLine, 100, 100, []geom.Point{
		{X: 0, Y: 0}, {X: 200, Y: 80}, {X: 400, Y: 0},
	}))
	s.AddLinear(element.NewLinear(element.KindArrow, 100, 300, []geom.Point{
		{X: 0, Y: 0}, {X: 300, Y: 0},
	}))
	return s
}

// setScene installs scene and starts a fresh session over it.
func (ed *Editor) setScene(scene *element.Scene) {
	ed.scene = scene
	measurer := textwrap.CellMeasurer{CellWidth: ed.config.CellWidth}
	ed.session = linear.NewSession(linear.NewEditor(scene, ed.config.editorConfig(), measurer), ed)
	ed.labelActive = false
	ed.RenderStatic(scene)
	ed.RenderInteractive(ed.session)
}

func (ed *Editor) run() {
	for {
		ed.draw()
		ed.screen.Show()

		ev := ed.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			ed.screen.Sync()
		case *tcell.EventKey:
			if ed.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			ed.handleMouse(ev)
		}
		ed.syncLabelEntry()
	}
}

func modifiers(m tcell.ModMask) linear.Modifiers {
	return linear.Modifiers{
		Shift: m&tcell.ModShift != 0,
		Ctrl:  m&tcell.ModCtrl != 0,
		Alt:   m&tcell.ModAlt != 0,
	}
}

func (ed *Editor) handleKey(ev *tcell.EventKey) bool {
	if ed.labelActive {
		ed.handleLabelKey(ev)
		return false
	}

	mods := modifiers(ev.Modifiers())
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return true
	case tcell.KeyCtrlS:
		ed.save()
	case tcell.KeyCtrlZ:
		ed.undo()
	case tcell.KeyCtrlY:
		ed.redo()
	case tcell.KeyCtrlE:
		// Ctrl+Enter does not reach most terminals
		ed.mutate(func() { ed.session.KeyEnter(linear.Modifiers{Ctrl: true}) })
	case tcell.KeyEnter:
		ed.mutate(func() { ed.session.KeyEnter(mods) })
	case tcell.KeyEscape:
		ed.session.KeyEscape()
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		ed.mutate(ed.session.KeyDelete)
	case tcell.KeyUp:
		ed.offsetY--
	case tcell.KeyDown:
		ed.offsetY++
	case tcell.KeyLeft:
		ed.offsetX--
	case tcell.KeyRight:
		ed.offsetX++
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'r':
			ed.toggleRoundness()
		case 'u':
			ed.mutate(func() {
				if ed.session.UnbindLabel() {
					ed.showMessage("Label detached", MsgInfo)
				}
			})
		case 'l':
			ed.addElement(element.KindLine)
		case 'a':
			ed.addElement(element.KindArrow)
		}
	}
	return false
}

// handleLabelKey edits the label buffer while label entry is active.
func (ed *Editor) handleLabelKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		ed.mutate(func() { ed.session.FinishLabel(ed.labelBuffer) })
	case tcell.KeyEscape:
		ed.mutate(ed.session.KeyEscape)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r := []rune(ed.labelBuffer); len(r) > 0 {
			ed.labelBuffer = string(r[:len(r)-1])
			ed.previewLabel()
		}
	case tcell.KeyRune:
		ed.labelBuffer += string(ev.Rune())
		ed.previewLabel()
	}
}

// syncLabelEntry notices when the session enters or leaves label entry.
func (ed *Editor) syncLabelEntry() {
	st := ed.session.State()
	editing := st != nil && st.IsEditingLabel
	switch {
	case editing && !ed.labelActive:
		ed.labelActive = true
		ed.labelBuffer = ""
		if t, ok := ed.session.Label(); ok {
			ed.labelBuffer = t.OriginalText
		}
	case !editing && ed.labelActive:
		ed.labelActive = false
	}
}

func (ed *Editor) previewLabel() {
	t, ok := ed.session.Label()
	if !ok {
		return
	}
	if err := ed.session.SetLabelText(t, ed.labelBuffer); err != nil {
		ed.showMessage(err.Error(), MsgError)
	}
	ed.RenderStatic(ed.scene)
}

func (ed *Editor) toggleRoundness() {
	el, ok := ed.session.Element()
	if !ok {
		ed.showMessage("Nothing selected", MsgInfo)
		return
	}
	ed.mutate(func() {
		r := element.Rounded()
		if el.Roundness.IsRounded() {
			r = element.Sharp
		}
		ed.session.SetRoundness(el, r)
		ed.RenderStatic(ed.scene)
		ed.RenderInteractive(ed.session)
	})
}

// addElement drops a new two-point element in the middle of the view.
func (ed *Editor) addElement(kind element.Kind) {
	w, h := ed.screen.Size()
	c := ed.toCanvas(w/4, h/2)
	ed.mutate(func() {
		el := element.NewLinear(kind, c.X, c.Y, []geom.Point{
			{X: 0, Y: 0}, {X: float64(w/2) * ed.config.CellWidth, Y: 0},
		})
		ed.scene.AddLinear(el)
		ed.session.Select(el.ID)
	})
	ed.showMessage(fmt.Sprintf("Added %s", kind), MsgSuccess)
}

func (ed *Editor) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	mods := modifiers(ev.Modifiers())
	p := ed.toCanvas(x, y)

	if ed.labelActive {
		if buttons&tcell.Button1 != 0 {
			ed.mutate(func() { ed.session.FinishLabel(ed.labelBuffer) })
		}
		return
	}

	switch {
	case buttons&tcell.Button1 != 0 && !ed.leftMouseDown:
		ed.leftMouseDown = true
		ed.lastCellX, ed.lastCellY = x, y

		now := time.Now().UnixMilli()
		if now-ed.lastClickTime < doubleClickMillis && x == ed.lastClickX && y == ed.lastClickY {
			ed.lastClickTime = 0
			ed.mutate(func() { ed.session.DoubleClick(p, mods) })
			return
		}
		ed.lastClickTime, ed.lastClickX, ed.lastClickY = now, x, y

		ed.pending = ed.snapshot()
		ed.pendingV = ed.sceneVersion()
		ed.session.PointerDown(p, mods)

	case buttons&tcell.Button1 != 0 && ed.leftMouseDown:
		if x != ed.lastCellX || y != ed.lastCellY {
			ed.lastCellX, ed.lastCellY = x, y
			ed.session.PointerMove(p, mods)
		}

	case buttons&tcell.Button1 == 0 && ed.leftMouseDown:
		ed.leftMouseDown = false
		ed.session.PointerUp(p, mods)
		if ed.pending != nil && ed.sceneVersion() != ed.pendingV {
			ed.pushUndo(ed.pending)
			ed.modified = true
		}
		ed.pending = nil
	}
}

// toCanvas returns the canvas position at the centre of a screen cell.
func (ed *Editor) toCanvas(x, y int) geom.Point {
	return geom.Point{
		X: (float64(x+ed.offsetX) + 0.5) * ed.config.CellWidth,
		Y: (float64(y+ed.offsetY) + 0.5) * ed.config.CellHeight,
	}
}

// Undo/Redo

// sceneVersion sums the versions of every element; any mutation changes it.
func (ed *Editor) sceneVersion() int {
	v := 0
	for _, el := range ed.scene.Linears() {
		v += el.Version
	}
	for _, t := range ed.scene.Texts() {
		v += t.Version
	}
	return v
}

func (ed *Editor) snapshot() []byte {
	data, err := element.ToJSON(ed.scene, false)
	if err != nil {
		ed.showMessage(err.Error(), MsgError)
		return nil
	}
	return data
}

// mutate runs fn and records an undo step if it changed the scene.
func (ed *Editor) mutate(fn func()) {
	before := ed.snapshot()
	v := ed.sceneVersion()
	fn()
	if before != nil && ed.sceneVersion() != v {
		ed.pushUndo(before)
		ed.modified = true
	}
}

func (ed *Editor) pushUndo(snap []byte) {
	ed.undoStack = append(ed.undoStack, snap)
	if len(ed.undoStack) > maxUndoLevels {
		ed.undoStack = ed.undoStack[1:]
	}
	ed.redoStack = nil
}

func (ed *Editor) restore(snap []byte) bool {
	scene, err := element.ParseJSON(snap)
	if err != nil {
		ed.showMessage(err.Error(), MsgError)
		return false
	}
	ed.setScene(scene)
	ed.modified = true
	return true
}

func (ed *Editor) undo() {
	if len(ed.undoStack) == 0 {
		ed.showMessage("Nothing to undo", MsgInfo)
		return
	}
	current := ed.snapshot()
	snap := ed.undoStack[len(ed.undoStack)-1]
	ed.undoStack = ed.undoStack[:len(ed.undoStack)-1]
	if ed.restore(snap) {
		ed.redoStack = append(ed.redoStack, current)
		ed.showMessage("Undo", MsgInfo)
	}
}

func (ed *Editor) redo() {
	if len(ed.redoStack) == 0 {
		ed.showMessage("Nothing to redo", MsgInfo)
		return
	}
	current := ed.snapshot()
	snap := ed.redoStack[len(ed.redoStack)-1]
	ed.redoStack = ed.redoStack[:len(ed.redoStack)-1]
	if ed.restore(snap) {
		ed.undoStack = append(ed.undoStack, current)
		ed.showMessage("Redo", MsgInfo)
	}
}

func (ed *Editor) showMessage(msg string, msgType MessageType) {
	ed.message = msg
	ed.messageType = msgType
}

// File operations

func (ed *Editor) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	scene, err := element.ParseJSON(data)
	if err != nil {
		return err
	}
	ed.setScene(scene)
	ed.modified = false
	ed.undoStack, ed.redoStack = nil, nil
	ed.config.LastFile = path
	return nil
}

func (ed *Editor) saveFile(path string) error {
	data, err := element.ToJSON(ed.scene, true)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (ed *Editor) save() {
	if ed.filename == "" {
		ed.filename = "scene.json"
	}
	if err := ed.saveFile(ed.filename); err != nil {
		ed.showMessage(fmt.Sprintf("Save failed: %v", err), MsgError)
		return
	}
	ed.modified = false
	ed.config.LastFile = ed.filename
	if err := SaveConfig(ed.config); err != nil {
		linear.Logger().Debug("save config", "err", err)
	}
	ed.showMessage("Saved "+filepath.Base(ed.filename), MsgSuccess)
}
