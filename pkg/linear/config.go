package linear

import "github.com/ha1tch/lineedit/pkg/textwrap"

// PointHandleSize is the on-screen size of a point handle in pixels.
const PointHandleSize = 10

// Config holds the editor's tuning parameters. All distances are in canvas
// pixels and do not depend on zoom.
type Config struct {
	// MinSegmentLength hides a segment's midpoint handle when its endpoints
	// are closer than this.
	MinSegmentLength float64

	// DragThreshold is how far the pointer must travel from a two-point
	// element's midpoint before the drag inserts a point. It applies only
	// outside edit mode.
	DragThreshold float64

	// PointHitRadius is the pick radius for point and midpoint handles.
	PointHitRadius float64

	// BodyHitRadius is the pick radius for the line itself.
	BodyHitRadius float64

	// LabelPadding is subtracted from the container width to get the label
	// wrap width.
	LabelPadding float64

	// LabelFont is used for new labels.
	LabelFont textwrap.Font
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		MinSegmentLength: PointHandleSize * 4,
		DragThreshold:    10,
		PointHitRadius:   PointHandleSize,
		BodyHitRadius:    PointHandleSize,
		LabelPadding:     10,
		LabelFont:        textwrap.DefaultFont,
	}
}
