package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/whimsy/internal/field"
	"github.com/vovakirdan/whimsy/internal/loop"
	"github.com/vovakirdan/whimsy/internal/platform/tui"
	"github.com/vovakirdan/whimsy/internal/random"
	"github.com/vovakirdan/whimsy/internal/storage"
)

var (
	flagFrames   int
	flagInterval float64
	flagWidth    int
	flagHeight   int
	flagPrint    bool
	flagRecord   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Step the demo headless with a synthetic clock",
	Long: `Run the render loop without a terminal. Frames are stepped on a
synthetic clock advancing --interval milliseconds per frame, drawing onto
an in-memory screen sized --width x --height viewport pixels.

Reports the disc count, the last FPS overlay value, and how often discs
were found past the viewport edges (the reflection rule lets a disc
overshoot by up to one frame of travel).

Examples:
  whimsy simulate
  whimsy simulate --frames 600 --interval 16 --seed 42
  whimsy simulate --width 320 --height 192 --print`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagFrames, "frames", 300, "Number of frames to step")
	simulateCmd.Flags().Float64Var(&flagInterval, "interval", 16, "Milliseconds between frames")
	simulateCmd.Flags().IntVar(&flagWidth, "width", 640, "Viewport width in pixels")
	simulateCmd.Flags().IntVar(&flagHeight, "height", 384, "Viewport height in pixels")
	simulateCmd.Flags().BoolVar(&flagPrint, "print", false, "Print the final screen")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the run in the sessions database")
}

// steppedScheduler runs frame callbacks on demand.
type steppedScheduler struct {
	pending loop.FrameFunc
}

func (s *steppedScheduler) RequestFrame(fn loop.FrameFunc) {
	s.pending = fn
}

// excursions tracks discs found past the viewport edges.
type excursions struct {
	count    int
	maxDepth float64
}

func (e *excursions) observe(discs []field.Disc, width, height float64) {
	for _, d := range discs {
		depth := math.Max(
			math.Max(d.Radius-d.X, d.X+d.Radius-width),
			math.Max(d.Radius-d.Y, d.Y+d.Radius-height),
		)
		if depth > 0 {
			e.count++
			e.maxDepth = math.Max(e.maxDepth, depth)
		}
	}
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagFrames <= 0 {
		return fmt.Errorf("--frames must be positive, got %d", flagFrames)
	}
	if flagInterval < 0 {
		return fmt.Errorf("--interval must not be negative, got %v", flagInterval)
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg.Log.Level)
	if err != nil {
		return err
	}

	rc := runtimeConfig(cfg, flagWidth/cfg.Display.CellWidth, flagHeight/cfg.Display.CellHeight)
	width, height := rc.ViewportSize()

	surface := tui.NewCellSurface(rc)
	sched := &steppedScheduler{}
	rng := random.New(rc.Seed)
	f := field.New(rng, logger)
	l := loop.New(surface, sched, f,
		loop.WithLogger(logger),
		loop.WithOverlayStyle(overlayStyle(cfg)),
	)

	l.Start()
	logger.Info("simulating", "frames", flagFrames, "interval", flagInterval, "width", width, "height", height, "seed", rng.Seed())

	var exc excursions
	for i := 0; i < flagFrames && sched.pending != nil; i++ {
		fn := sched.pending
		sched.pending = nil
		fn(float64(i) * flagInterval)
		exc.observe(f.Discs(), width, height)
	}

	stats := l.Stats()
	fmt.Fprintf(out, "Viewport:    %.0f x %.0f px (%d x %d cells)\n", width, height, rc.ScreenW, rc.ScreenH)
	fmt.Fprintf(out, "Seed:        %d\n", rng.Seed())
	fmt.Fprintf(out, "Frames:      %d\n", stats.Frames)
	fmt.Fprintf(out, "Discs:       %d\n", stats.Discs)
	if stats.AverageFPS > 0 {
		fmt.Fprintf(out, "Average FPS: %.1f\n", stats.AverageFPS)
	} else {
		fmt.Fprintln(out, "Average FPS: n/a (less than one second simulated)")
	}
	fmt.Fprintf(out, "Excursions:  %d (deepest %.2f px)\n", exc.count, exc.maxDepth)

	if flagPrint {
		fmt.Fprintln(out)
		fmt.Fprintln(out, surface.Screen().String())
	}

	if flagRecord {
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		simulated := time.Duration(float64(stats.Frames-1) * flagInterval * float64(time.Millisecond))
		id, err := store.SaveSession(storage.Session{
			StartedAt:  time.Now().Add(-simulated),
			Duration:   simulated,
			Frames:     stats.Frames,
			Clicks:     stats.Clicks,
			Hits:       stats.Hits,
			AverageFPS: stats.AverageFPS,
			Width:      int(width),
			Height:     int(height),
		})
		if err != nil {
			return err
		}
		logger.Info("session recorded", "id", id)
	}
	return nil
}
