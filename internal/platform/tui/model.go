package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pbj-arcade/internal/audio"
	"github.com/vovakirdan/pbj-arcade/internal/core"
	"github.com/vovakirdan/pbj-arcade/internal/registry"
	"github.com/vovakirdan/pbj-arcade/internal/storage"
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	steer      registry.Steerable // nil for games without held movement
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	held       *HeldKeys
	notes      *audio.NotePlayer
	logger     *log.Logger
	now        func() time.Time
	player     string
	inputFrame core.InputFrame
	gameState  core.GameState
	playTicks  int // ticks simulated while running, for run duration
	canGoBack  bool
	quitting   bool
	backToMenu bool
	runSaved   bool // whether the current run has been recorded
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithPlayer records runs under the given player name.
func WithPlayer(name string) ModelOption {
	return func(m *Model) { m.player = name }
}

// WithNotes plays pickup notes for games that request them.
func WithNotes(p *audio.NotePlayer) ModelOption {
	return func(m *Model) { m.notes = p }
}

// WithLogger sets the model's logger.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithHoldWindows overrides the held-key emulation windows.
func WithHoldWindows(initial, repeat time.Duration) ModelOption {
	return func(m *Model) { m.held = NewHeldKeys(initial, repeat) }
}

// WithBackToMenu lets Esc leave a paused or finished game.
func WithBackToMenu() ModelOption {
	return func(m *Model) { m.canGoBack = true }
}

// withClock replaces the wall clock used for key timing.
func withClock(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		held:       NewHeldKeys(0, 0),
		logger:     log.New(io.Discard),
		now:        time.Now,
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	if s, ok := game.(registry.Steerable); ok {
		m.steer = s
	}
	if s, ok := game.(registry.Sounding); ok && m.notes != nil {
		s.OnNote(m.notes.PlayNote)
	}

	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if d, ok := m.keys.MapDirection(msg); ok {
		m.press(d)
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.saveRun()
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		if m.canGoBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.saveRun()
			m.releaseAll()
			m.backToMenu = true
			return m, tea.Quit
		}
		// Esc doubles as pause while playing.
		m.inputFrame.Set(core.ActionPause)

	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// press forwards a movement key, releasing the opposite direction first.
func (m *Model) press(d core.Direction) {
	if m.steer == nil {
		return
	}
	for _, r := range m.held.Press(d, m.now()) {
		m.steer.SetDirection(r, false)
	}
	m.steer.SetDirection(d, true)
}

func (m *Model) releaseAll() {
	released := m.held.Clear()
	if m.steer == nil {
		return
	}
	for _, d := range released {
		m.steer.SetDirection(d, false)
	}
}

// handleResize tracks the terminal size. Games draw at whatever scale fits,
// so a resize never restarts the run.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.steer != nil {
		for _, d := range m.held.Expire(now) {
			m.steer.SetDirection(d, false)
		}
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if !m.gameState.Paused && !m.gameState.GameOver {
		m.playTicks++
	}

	if m.gameState.GameOver {
		m.saveRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) restart() {
	m.releaseAll()
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.playTicks = 0
	m.runSaved = false
	m.inputFrame.Clear()
}

// saveRun records the current run once. Runs with nothing collected are
// not worth a row.
func (m *Model) saveRun() {
	if m.runSaved || m.store == nil {
		return
	}

	var stats registry.RunStats
	if r, ok := m.game.(registry.Reporter); ok {
		stats = r.RunStats()
	}
	if m.gameState.Score == 0 && stats.Pickups == 0 {
		return
	}
	m.runSaved = true

	run := storage.Run{
		GameID:     m.game.ID(),
		Player:     m.player,
		Seed:       m.config.Seed,
		Sandwiches: m.gameState.Score,
		Pickups:    stats.Pickups,
		Levels:     stats.Levels,
		Exhausted:  stats.Exhausted,
		Duration:   time.Duration(m.playTicks) * time.Second / time.Duration(m.config.TickRate),
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Error("cannot save run", "game", run.GameID, "error", err)
		return
	}
	m.logger.Info("run saved", "id", id, "game", run.GameID, "sandwiches", run.Sandwiches, "player", run.Player)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
