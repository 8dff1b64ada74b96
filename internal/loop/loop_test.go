package loop

import (
	"fmt"
	"math"
	"testing"

	"github.com/vovakirdan/whimsy/internal/core"
	"github.com/vovakirdan/whimsy/internal/field"
	"github.com/vovakirdan/whimsy/internal/random"
)

// call is one recorded surface operation.
type call struct {
	op   string
	args []any
}

// recordingSurface logs every drawing call.
type recordingSurface struct {
	w, h  float64
	calls []call
}

func (s *recordingSurface) record(op string, args ...any) {
	s.calls = append(s.calls, call{op: op, args: args})
}

func (s *recordingSurface) Size() (float64, float64)          { return s.w, s.h }
func (s *recordingSurface) ClearRect(x, y, w, h float64)      { s.record("clear", x, y, w, h) }
func (s *recordingSurface) BeginPath()                        { s.record("begin") }
func (s *recordingSurface) ClosePath()                        { s.record("close") }
func (s *recordingSurface) SetFillColor(c core.Color)         { s.record("fill", c) }
func (s *recordingSurface) FillCircle(x, y, r float64)        { s.record("circle", x, y, r) }
func (s *recordingSurface) SetFont(f Font)                    { s.record("font", f) }
func (s *recordingSurface) SetTextAlign(a TextAlign)          { s.record("align", a) }
func (s *recordingSurface) SetTextBaseline(b TextBaseline)    { s.record("baseline", b) }
func (s *recordingSurface) FillText(text string, x, y float64) { s.record("text", text, x, y) }

func (s *recordingSurface) reset() { s.calls = nil }

func (s *recordingSurface) count(op string) int {
	n := 0
	for _, c := range s.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func (s *recordingSurface) find(op string) (call, bool) {
	for _, c := range s.calls {
		if c.op == op {
			return c, true
		}
	}
	return call{}, false
}

// manualScheduler holds the pending frame until the test fires it.
type manualScheduler struct {
	pending  FrameFunc
	requests int
}

func (m *manualScheduler) RequestFrame(fn FrameFunc) {
	m.pending = fn
	m.requests++
}

func (m *manualScheduler) fire(ts float64) {
	fn := m.pending
	m.pending = nil
	fn(ts)
}

func newTestLoop(t *testing.T, w, h float64) (*Loop, *recordingSurface, *manualScheduler, *field.Field) {
	t.Helper()
	surface := &recordingSurface{w: w, h: h}
	sched := &manualScheduler{}
	f := field.New(random.New(31337), nil)
	l := New(surface, sched, f)
	l.Start()
	return l, surface, sched, f
}

func TestStartInitializesAndSchedules(t *testing.T) {
	l, _, sched, f := newTestLoop(t, 640, 384)

	if f.Len() < field.MinDiscs {
		t.Errorf("Start should populate the field, got %d discs", f.Len())
	}
	if w, h := l.Size(); w != 640 || h != 384 {
		t.Errorf("Size() = (%v, %v), expected (640, 384)", w, h)
	}
	if sched.pending == nil || sched.requests != 1 {
		t.Error("Start should request exactly one frame")
	}
}

func TestFirstTickHasZeroDelta(t *testing.T) {
	_, _, sched, f := newTestLoop(t, 640, 384)
	before := f.Discs()

	sched.fire(123456.7)

	after := f.Discs()
	for i := range before {
		if before[i].X != after[i].X || before[i].Y != after[i].Y {
			t.Fatalf("first frame should not move disc %d: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestTickIntegratesWithSeconds(t *testing.T) {
	_, _, sched, f := newTestLoop(t, 640, 384)
	sched.fire(1000)
	before := f.Discs()

	sched.fire(1016)

	after := f.Discs()
	for i := range before {
		// Discs start fully inside, so nothing reflects on this frame
		wantX := before[i].X + before[i].VX*0.016
		wantY := before[i].Y + before[i].VY*0.016
		if math.Abs(after[i].X-wantX) > 1e-9 || math.Abs(after[i].Y-wantY) > 1e-9 {
			t.Fatalf("disc %d at (%v, %v), expected (%v, %v)", i, after[i].X, after[i].Y, wantX, wantY)
		}
	}
}

func TestTickDrawOrder(t *testing.T) {
	l, surface, sched, f := newTestLoop(t, 640, 384)

	surface.reset()
	sched.fire(0)

	if len(surface.calls) == 0 || surface.calls[0].op != "clear" {
		t.Fatalf("frame should start by clearing, got %v", surface.calls)
	}
	clear := surface.calls[0]
	if clear.args[2] != 640.0 || clear.args[3] != 384.0 {
		t.Errorf("clear should cover the viewport, got %v", clear.args)
	}
	if n := surface.count("circle"); n != f.Len() {
		t.Errorf("drew %d circles, expected %d", n, f.Len())
	}
	if surface.count("begin") != surface.count("close") {
		t.Error("every BeginPath should be matched by ClosePath")
	}

	// Each circle is preceded by its fill color
	discs := f.Discs()
	i := 0
	for j, c := range surface.calls {
		if c.op != "circle" {
			continue
		}
		if prev := surface.calls[j-1]; prev.op != "fill" || prev.args[0] != discs[i].Color {
			t.Errorf("circle %d: expected fill %q first, got %+v", i, discs[i].Color, prev)
		}
		i++
	}

	if sched.pending == nil {
		t.Error("Tick should schedule the next frame")
	}
	if l.Stats().Frames != 1 {
		t.Errorf("Frames = %d, expected 1", l.Stats().Frames)
	}
}

func TestOverlayCadence(t *testing.T) {
	l, surface, sched, _ := newTestLoop(t, 640, 384)

	// 0, 250, 500, 750, 1000 ms: samples total exactly one second after
	// the fifth frame, so the overlay first appears on the sixth.
	for i := 0; i < 5; i++ {
		surface.reset()
		sched.fire(float64(i * 250))
		if surface.count("text") != 0 {
			t.Fatalf("frame %d: overlay drawn before a second accumulated", i)
		}
	}

	surface.reset()
	sched.fire(1250)
	text, ok := surface.find("text")
	if !ok {
		t.Fatal("overlay should be drawn once a second accumulated")
	}
	// The first-frame +Inf sample is still in the window here
	if text.args[0] != "FPS: +Inf" {
		t.Errorf("overlay text = %q, expected %q", text.args[0], "FPS: +Inf")
	}

	surface.reset()
	sched.fire(1500)
	text, _ = surface.find("text")
	if text.args[0] != "FPS: 4.0" {
		t.Errorf("overlay text = %q, expected %q", text.args[0], "FPS: 4.0")
	}
	if got := l.Stats().AverageFPS; got != 4 {
		t.Errorf("Stats().AverageFPS = %v, expected 4", got)
	}
}

func TestOverlayLayout(t *testing.T) {
	tests := []struct {
		w, h     float64
		fontSize int
	}{
		{640, 384, 20},
		{300, 600, 10},
		{1000, 1000, 20},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%vx%v", tc.w, tc.h), func(t *testing.T) {
			_, surface, sched, _ := newTestLoop(t, tc.w, tc.h)
			sched.fire(0)
			sched.fire(1000)
			surface.reset()
			sched.fire(1016)

			font, ok := surface.find("font")
			if !ok {
				t.Fatal("overlay font not set")
			}
			if f := font.args[0].(Font); f.Size != tc.fontSize || f.Family != DefaultFontFamily {
				t.Errorf("font = %+v, expected size %d %s", f, tc.fontSize, DefaultFontFamily)
			}
			if a, _ := surface.find("align"); a.args[0] != AlignRight {
				t.Errorf("align = %v, expected right", a.args[0])
			}
			if b, _ := surface.find("baseline"); b.args[0] != BaselineTop {
				t.Errorf("baseline = %v, expected top", b.args[0])
			}
			text, _ := surface.find("text")
			if text.args[1] != tc.w-tc.w*0.01 || text.args[2] != tc.w*0.01 {
				t.Errorf("text anchor = (%v, %v), expected (%v, %v)", text.args[1], text.args[2], tc.w-tc.w*0.01, tc.w*0.01)
			}
		})
	}
}

func TestOverlayStyleOption(t *testing.T) {
	surface := &recordingSurface{w: 400, h: 200}
	sched := &manualScheduler{}
	style := OverlayStyle{BaseFont: 10, Family: "Mono", Color: "#FFFFFF"}
	l := New(surface, sched, field.New(random.New(1), nil), WithOverlayStyle(style))
	l.Start()
	sched.fire(0)
	sched.fire(2000)
	surface.reset()
	sched.fire(2016)

	font, _ := surface.find("font")
	if f := font.args[0].(Font); f.Size != 10 || f.Family != "Mono" {
		t.Errorf("font = %+v, expected 10px Mono", f)
	}
	// The overlay color is the fill set right after the font
	for j, c := range surface.calls {
		if c.op == "font" {
			if next := surface.calls[j+1]; next.op != "fill" || next.args[0] != core.Color("#FFFFFF") {
				t.Errorf("expected overlay fill #FFFFFF after font, got %+v", next)
			}
		}
	}
}

func TestResizeRegeneratesField(t *testing.T) {
	l, surface, sched, f := newTestLoop(t, 640, 384)
	sched.fire(0)

	l.Resize(200, 100)

	if w, h := l.Size(); w != 200 || h != 100 {
		t.Errorf("Size() = (%v, %v), expected (200, 100)", w, h)
	}
	for _, d := range f.Discs() {
		if d.X > 200 && d.X-d.Radius > 0 {
			t.Errorf("disc not regenerated for new width: %+v", d)
		}
	}

	surface.reset()
	sched.fire(16)
	clear, _ := surface.find("clear")
	if clear.args[2] != 200.0 || clear.args[3] != 100.0 {
		t.Errorf("clear after resize = %v, expected 200x100", clear.args)
	}
}

func TestClickCountsHits(t *testing.T) {
	l, _, sched, f := newTestLoop(t, 640, 384)
	sched.fire(0)

	d := f.Discs()[0]
	hits := l.Click(d.X, d.Y)
	if hits < 1 {
		t.Errorf("Click at a disc center should hit, got %d", hits)
	}

	l.Click(-100, -100)

	stats := l.Stats()
	if stats.Clicks != 2 {
		t.Errorf("Clicks = %d, expected 2", stats.Clicks)
	}
	if stats.Hits != hits {
		t.Errorf("Hits = %d, expected %d", stats.Hits, hits)
	}
	if stats.Discs != f.Len() {
		t.Errorf("Discs = %d, expected %d", stats.Discs, f.Len())
	}
}
