package loop

import "github.com/vovakirdan/whimsy/internal/core"

// TextAlign is the horizontal anchor of drawn text.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignRight
	AlignCenter
)

// String returns a human-readable name for the alignment.
func (a TextAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "unknown"
	}
}

// TextBaseline is the vertical anchor of drawn text.
type TextBaseline int

const (
	BaselineTop TextBaseline = iota
	BaselineMiddle
	BaselineBottom
)

// Font describes the text style for FillText.
type Font struct {
	Size   int // Pixels
	Family string
}

// Surface is the 2D drawing surface owned by the host.
// Coordinates are viewport pixels.
type Surface interface {
	// Size returns the current viewport dimensions.
	Size() (width, height float64)

	ClearRect(x, y, width, height float64)
	BeginPath()
	ClosePath()
	SetFillColor(c core.Color)
	// FillCircle fills a circle of radius r centered at (x, y) with the
	// current fill color.
	FillCircle(x, y, r float64)

	SetFont(f Font)
	SetTextAlign(a TextAlign)
	SetTextBaseline(b TextBaseline)
	// FillText draws text anchored at (x, y) using the current font,
	// alignment, baseline, and fill color.
	FillText(text string, x, y float64)
}

// FrameFunc receives a monotonically increasing timestamp in milliseconds.
type FrameFunc func(timestamp float64)

// Scheduler invokes a callback once before the next repaint.
type Scheduler interface {
	RequestFrame(fn FrameFunc)
}
