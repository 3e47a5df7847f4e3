package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pbj-arcade/internal/core"
	"github.com/vovakirdan/pbj-arcade/internal/registry"
	"github.com/vovakirdan/pbj-arcade/internal/storage"
)

// fakeGame records the calls a Model makes.
type fakeGame struct {
	resets  int
	steps   int
	held    [4]bool
	state   core.GameState
	lastIn  core.InputFrame
	pickups int
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
	g.held = [4]bool{}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.lastIn = core.NewInputFrame()
	for a, ok := range in.Actions {
		if ok {
			g.lastIn.Set(a)
		}
	}
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState   { return g.state }

func (g *fakeGame) SetDirection(d core.Direction, pressed bool) { g.held[d] = pressed }

func (g *fakeGame) RunStats() registry.RunStats {
	return registry.RunStats{Pickups: g.pickups, Levels: 1}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestModel(t *testing.T, store *storage.Store, opts ...ModelOption) (Model, *fakeGame, *fakeClock) {
	t.Helper()
	g := &fakeGame{}
	clock := &fakeClock{t: time.Unix(1000, 0)}
	opts = append([]ModelOption{withClock(clock.now)}, opts...)
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 10, Seed: 7}, opts...)
	return m, g, clock
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(Model)
	require.True(t, ok)
	return mm
}

func TestModelResetsGameOnCreate(t *testing.T) {
	_, g, _ := newTestModel(t, nil)
	assert.Equal(t, 1, g.resets)
}

func TestModelSteersHeldDirections(t *testing.T) {
	m, g, clock := newTestModel(t, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.True(t, g.held[core.DirUp])

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.False(t, g.held[core.DirUp], "opposite press releases")
	assert.True(t, g.held[core.DirDown])

	clock.t = clock.t.Add(time.Second)
	m = update(t, m, TickMsg(clock.t))
	assert.False(t, g.held[core.DirDown], "no repeat within the window releases")
	assert.Equal(t, 1, g.steps)
	_ = m
}

func TestModelPauseAndBackToMenu(t *testing.T) {
	m, g, clock := newTestModel(t, nil, WithBackToMenu())

	m = update(t, m, runeKey('p'))
	m = update(t, m, TickMsg(clock.t))
	require.True(t, g.state.Paused)
	assert.True(t, m.State().Paused)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())
}

func TestModelEscPausesWhilePlaying(t *testing.T) {
	m, g, clock := newTestModel(t, nil, WithBackToMenu())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.BackToMenu())
	update(t, m, TickMsg(clock.t))
	assert.True(t, g.lastIn.Has(core.ActionPause))
}

func TestModelResizeKeepsRun(t *testing.T) {
	m, g, _ := newTestModel(t, nil)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 1, g.resets)
	assert.Contains(t, m.View(), "fake")
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	m, g, clock := newTestModel(t, nil)

	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg(clock.t))
	assert.Equal(t, 1, g.resets)

	g.state.GameOver = true
	m = update(t, m, TickMsg(clock.t))
	m = update(t, m, runeKey('r'))
	update(t, m, TickMsg(clock.t))
	assert.Equal(t, 2, g.resets)
}

func TestModelSavesRunOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m, g, clock := newTestModel(t, store, WithPlayer("alice"))
	for range 20 {
		m = update(t, m, TickMsg(clock.t))
	}
	g.pickups = 7
	g.state = core.GameState{Score: 2, GameOver: true}
	m = update(t, m, TickMsg(clock.t))
	update(t, m, TickMsg(clock.t))

	runs, err := store.RecentRuns("fake", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1, "a run is saved once")
	assert.Equal(t, "alice", runs[0].Player)
	assert.Equal(t, 2, runs[0].Sandwiches)
	assert.Equal(t, 7, runs[0].Pickups)
	assert.Equal(t, int64(7), runs[0].Seed)
	assert.Equal(t, 2*time.Second, runs[0].Duration)
}

func TestModelQuitSavesUnfinishedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m, g, _ := newTestModel(t, store)
	g.pickups = 3
	m = update(t, m, runeKey('q'))
	assert.True(t, m.IsQuitting())

	stats, err := store.Stats("fake")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Runs)
	assert.Equal(t, 3, stats.TotalPickups)
}

func TestModelQuitSkipsEmptyRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m, _, _ := newTestModel(t, store)
	update(t, m, runeKey('q'))

	stats, err := store.Stats("fake")
	require.NoError(t, err)
	assert.Zero(t, stats.Runs)
}
