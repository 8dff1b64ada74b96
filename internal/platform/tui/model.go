package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/whimsy/internal/core"
	"github.com/vovakirdan/whimsy/internal/field"
	"github.com/vovakirdan/whimsy/internal/loop"
	"github.com/vovakirdan/whimsy/internal/random"
	"github.com/vovakirdan/whimsy/internal/storage"
)

var helpStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#626262")).
	Background(lipgloss.Color("#1E1E1E"))

// Model is the Bubble Tea model hosting the render loop.
type Model struct {
	loop     *loop.Loop
	sim      *field.Field
	rng      *random.Provider
	surface  *CellSurface
	sched    *frameScheduler
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	showHelp bool
	started  time.Time
	quitting bool
}

// NewModel creates a model drawing onto a cfg.ScreenW x cfg.ScreenH screen.
// A nil logger discards output and a nil store skips session recording.
func NewModel(cfg core.RuntimeConfig, store *storage.Store, logger *log.Logger, opts ...loop.Option) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	surface := NewCellSurface(cfg)
	sched := &frameScheduler{}
	rng := random.New(cfg.Seed)
	f := field.New(rng, logger)
	opts = append([]loop.Option{loop.WithLogger(logger)}, opts...)

	return Model{
		loop:    loop.New(surface, sched, f, opts...),
		sim:     f,
		rng:     rng,
		surface: surface,
		sched:   sched,
		store:   store,
		logger:  logger,
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		started: time.Now(),
	}
}

// Init starts the render loop and schedules the first frame.
func (m Model) Init() tea.Cmd {
	m.loop.Start()
	m.logger.Info("session started", "seed", m.rng.Seed(), "cols", m.config.ScreenW, "rows", m.config.ScreenH)
	return frameCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reshuffle):
		m.loop.Resize(m.surface.Size())
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// handleMouse forwards left clicks to the loop at the cell's center pixel.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	x, y := m.surface.CellCenter(msg.X, msg.Y)
	if hits := m.loop.Click(x, y); hits > 0 {
		m.logger.Debug("click", "x", x, "y", y, "hits", hits)
	}
	return m, nil
}

// handleResize regenerates the field for the new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.surface.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	m.loop.Resize(m.surface.Size())
	m.logger.Debug("field regenerated", "cols", msg.Width, "rows", msg.Height, "discs", m.sim.Len())
	return m, nil
}

// handleFrame runs the pending frame callback.
func (m Model) handleFrame(msg FrameMsg) (tea.Model, tea.Cmd) {
	if fn := m.sched.take(); fn != nil {
		fn(timestampMillis(m.started, time.Time(msg)))
	}
	if !m.sched.hasPending() {
		return m, nil
	}
	return m, frameCmd(m.config.TickRate)
}

// session summarizes the run so far.
func (m Model) session() storage.Session {
	stats := m.loop.Stats()
	w, h := m.surface.Size()
	return storage.Session{
		StartedAt:  m.started,
		Duration:   time.Since(m.started),
		Frames:     stats.Frames,
		Clicks:     stats.Clicks,
		Hits:       stats.Hits,
		AverageFPS: stats.AverageFPS,
		Width:      int(w),
		Height:     int(h),
	}
}

// recordSession stores the session summary. Failures are logged only.
func (m Model) recordSession() {
	sess := m.session()
	m.logger.Info("session ended",
		"frames", sess.Frames,
		"clicks", sess.Clicks,
		"hits", sess.Hits,
		"fps", fmt.Sprintf("%.1f", sess.AverageFPS),
	)
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveSession(sess); err != nil {
		m.logger.Warn("failed to record session", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	dir := filepath.Join(os.Getenv("HOME"), ".whimsy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("failed to create screenshot dir", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("whimsy_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.surface.Screen().String()), 0o600); err != nil {
		m.logger.Warn("failed to save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	view := RenderScreen(m.surface.Screen())
	if !m.showHelp {
		return view
	}

	// The help footer replaces the last row.
	lines := strings.Split(view, "\n")
	lines[len(lines)-1] = helpStyle.Render(m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

// Run starts the Bubble Tea program and records the session when it ends.
func Run(cfg core.RuntimeConfig, store *storage.Store, logger *log.Logger, opts ...loop.Option) error {
	model := NewModel(cfg, store, logger, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks recolor discs
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		fm.recordSession()
	}
	return nil
}
