// Package textwrap measures and word-wraps label text for bound text elements.
package textwrap

import (
	"math"
	"sync"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Font identifies a label font.
type Font struct {
	Family string  // informational; FaceMeasurer always uses Go Regular
	Size   float64 // pixels
}

// DefaultFont is the label font used when none is given.
var DefaultFont = Font{Family: "Go", Size: 20}

// DefaultLineHeight is the line height multiplier used for labels.
const DefaultLineHeight = 1.25

// Measurer reports the rendered width of a single line of text.
type Measurer interface {
	Width(s string, f Font) float64
}

// FaceMeasurer measures text with the embedded Go Regular font.
// Faces are parsed once and cached per size.
type FaceMeasurer struct {
	mu    sync.Mutex
	fnt   *opentype.Font
	faces map[float64]font.Face
}

// NewFaceMeasurer parses the embedded font.
func NewFaceMeasurer() (*FaceMeasurer, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return &FaceMeasurer{fnt: fnt, faces: make(map[float64]font.Face)}, nil
}

func (m *FaceMeasurer) face(size float64) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if face, ok := m.faces[size]; ok {
		return face, nil
	}
	// 72 DPI so that points and pixels coincide
	face, err := opentype.NewFace(m.fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = face
	return face, nil
}

// Width returns the advance width of s in pixels.
func (m *FaceMeasurer) Width(s string, f Font) float64 {
	size := f.Size
	if size <= 0 {
		size = DefaultFont.Size
	}
	face, err := m.face(size)
	if err != nil {
		// Fall back to the average glyph estimate the renderer uses
		return float64(runewidth.StringWidth(s)) * size * 0.6
	}
	adv := font.MeasureString(face, s)
	return float64(adv) / 64
}

// CellMeasurer measures text in terminal cells of a fixed pixel width.
// Wide runes (CJK, emoji) occupy two cells.
type CellMeasurer struct {
	CellWidth float64
}

// Width returns the width of s in pixels.
func (m CellMeasurer) Width(s string, _ Font) float64 {
	return float64(runewidth.StringWidth(s)) * m.CellWidth
}

// LineHeightPx returns the pixel height of one line of f.
func LineHeightPx(f Font, lineHeight float64) float64 {
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight
	}
	return f.Size * lineHeight
}

// Measure returns the width and height of a multi-line wrapped text.
func Measure(m Measurer, text string, f Font, lineHeight float64) (w, h float64) {
	lines := splitLines(text)
	for _, line := range lines {
		w = math.Max(w, m.Width(line, f))
	}
	return w, float64(len(lines)) * LineHeightPx(f, lineHeight)
}
