package tui

import (
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/whimsy/internal/core"
	"github.com/vovakirdan/whimsy/internal/loop"
)

// Half-block glyphs used to show two dots per cell.
const (
	upperHalf = '▀'
	lowerHalf = '▄'
	fullBlock = '█'
)

// CellSurface draws viewport pixels onto a character screen.
// Each cell spans CellWidth x CellHeight pixels and is split into an upper
// and a lower dot, giving square-ish dots on typical terminal fonts.
type CellSurface struct {
	screen *core.Screen
	layout core.RuntimeConfig // screen and cell sizes
	dots   [][]core.Color     // [dotRow][col], two dot rows per screen row

	fill     core.Color
	font     loop.Font
	align    loop.TextAlign
	baseline loop.TextBaseline
}

// Ensure CellSurface implements loop.Surface
var _ loop.Surface = (*CellSurface)(nil)

// NewCellSurface creates a cfg.ScreenW x cfg.ScreenH screen to draw on.
// Cell sizes below one pixel are raised to one.
func NewCellSurface(cfg core.RuntimeConfig) *CellSurface {
	cfg.CellWidth = core.Max(cfg.CellWidth, 1)
	cfg.CellHeight = core.Max(cfg.CellHeight, 1)
	s := &CellSurface{
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		layout: cfg,
	}
	s.allocate()
	return s
}

// allocate sizes the dot grid to the screen.
func (s *CellSurface) allocate() {
	s.dots = make([][]core.Color, s.screen.Height()*2)
	for i := range s.dots {
		s.dots[i] = make([]core.Color, s.screen.Width())
	}
}

// Resize changes the screen size in cells and drops all drawn content.
func (s *CellSurface) Resize(cols, rows int) {
	s.screen.Resize(cols, rows)
	s.screen.Clear()
	s.layout.ScreenW = s.screen.Width()
	s.layout.ScreenH = s.screen.Height()
	s.allocate()
}

// Screen returns the underlying cell buffer.
func (s *CellSurface) Screen() *core.Screen {
	return s.screen
}

// Size returns the viewport size in pixels.
func (s *CellSurface) Size() (float64, float64) {
	return s.layout.ViewportSize()
}

// CellCenter returns the viewport pixel at the center of a cell.
func (s *CellSurface) CellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * s.cellW(), (float64(row) + 0.5) * s.cellH()
}

func (s *CellSurface) cellW() float64 { return float64(s.layout.CellWidth) }
func (s *CellSurface) cellH() float64 { return float64(s.layout.CellHeight) }

// dotH is the pixel height of one dot.
func (s *CellSurface) dotH() float64 {
	return s.cellH() / 2
}

// ClearRect erases dots and text whose cells intersect the pixel rectangle.
// Cells only half covered keep the dot outside the rectangle.
func (s *CellSurface) ClearRect(x, y, w, h float64) {
	c0 := int(math.Floor(x / s.cellW()))
	r0 := int(math.Floor(y / s.dotH()))
	c1 := int(math.Ceil((x + w) / s.cellW()))
	r1 := int(math.Ceil((y + h) / s.dotH()))

	dotRect := core.NewRect(c0, r0, c1-c0, r1-r0).Intersect(core.NewRect(0, 0, s.screen.Width(), len(s.dots)))
	if dotRect.Empty() {
		return
	}
	for dr := dotRect.Y; dr < dotRect.Bottom(); dr++ {
		for c := dotRect.X; c < dotRect.Right(); c++ {
			s.dots[dr][c] = core.ColorDefault
		}
	}

	rowTop := dotRect.Y / 2
	rowBottom := (dotRect.Bottom() + 1) / 2
	s.screen.ClearRect(core.NewRect(dotRect.X, rowTop, dotRect.W, rowBottom-rowTop))
	for row := rowTop; row < rowBottom; row++ {
		for c := dotRect.X; c < dotRect.Right(); c++ {
			if !s.dots[row*2][c].IsDefault() || !s.dots[row*2+1][c].IsDefault() {
				s.compose(c, row)
			}
		}
	}
}

// BeginPath is a no-op; cells carry no path state.
func (s *CellSurface) BeginPath() {}

// ClosePath is a no-op; every fill is drawn immediately.
func (s *CellSurface) ClosePath() {}

// SetFillColor sets the color for shapes and text.
func (s *CellSurface) SetFillColor(c core.Color) {
	s.fill = c
}

// FillCircle fills every dot whose center lies strictly inside the circle.
// A circle too small to cover any dot center still marks the dot under
// its center.
func (s *CellSurface) FillCircle(x, y, r float64) {
	dh := s.dotH()
	c0 := int(math.Floor((x - r) / s.cellW()))
	c1 := int(math.Floor((x + r) / s.cellW()))
	r0 := int(math.Floor((y - r) / dh))
	r1 := int(math.Floor((y + r) / dh))

	filled := false
	for dr := r0; dr <= r1; dr++ {
		for c := c0; c <= c1; c++ {
			cx := (float64(c) + 0.5) * s.cellW()
			cy := (float64(dr) + 0.5) * dh
			if math.Hypot(cx-x, cy-y) < r {
				filled = s.setDot(c, dr) || filled
			}
		}
	}

	if !filled && r > 0 {
		s.setDot(int(math.Floor(x/s.cellW())), int(math.Floor(y/dh)))
	}
}

// setDot paints one dot with the fill color and refreshes its cell.
// Returns false when the dot is off the screen.
func (s *CellSurface) setDot(col, dotRow int) bool {
	if dotRow < 0 || dotRow >= len(s.dots) || col < 0 || col >= s.screen.Width() {
		return false
	}
	s.dots[dotRow][col] = s.fill
	s.compose(col, dotRow/2)
	return true
}

// compose rewrites a cell from its two dots.
func (s *CellSurface) compose(col, row int) {
	top := s.dots[row*2][col]
	bottom := s.dots[row*2+1][col]

	var cell core.Cell
	switch {
	case top.IsDefault() && bottom.IsDefault():
		cell = core.Cell{Rune: ' '}
	case top == bottom:
		cell = core.Cell{Rune: fullBlock, Fg: top}
	case bottom.IsDefault():
		cell = core.Cell{Rune: upperHalf, Fg: top}
	case top.IsDefault():
		cell = core.Cell{Rune: lowerHalf, Fg: bottom}
	default:
		cell = core.Cell{Rune: upperHalf, Fg: top, Bg: bottom}
	}
	s.screen.SetCell(col, row, cell)
}

// SetFont records the text font. Terminals draw a single size, so the
// font only decides whether text is drawn at all.
func (s *CellSurface) SetFont(f loop.Font) {
	s.font = f
}

// SetTextAlign sets the horizontal text anchor.
func (s *CellSurface) SetTextAlign(a loop.TextAlign) {
	s.align = a
}

// SetTextBaseline sets the vertical text anchor.
func (s *CellSurface) SetTextBaseline(b loop.TextBaseline) {
	s.baseline = b
}

// FillText writes text in the fill color, one rune per cell, anchored at
// the pixel (x, y). Zero-sized fonts draw nothing.
func (s *CellSurface) FillText(text string, x, y float64) {
	if s.font.Size <= 0 {
		return
	}

	n := utf8.RuneCountInString(text)
	anchor := int(math.Floor(x / s.cellW()))
	col := anchor
	switch s.align {
	case loop.AlignRight:
		col = anchor - n + 1
	case loop.AlignCenter:
		col = anchor - n/2
	}

	row := int(math.Floor(y / s.cellH()))
	if s.baseline == loop.BaselineBottom {
		row = int(math.Ceil(y/s.cellH())) - 1
	}

	s.screen.DrawText(col, row, text, s.fill)
}
