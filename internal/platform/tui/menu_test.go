package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pbj-arcade/internal/core"
	"github.com/vovakirdan/pbj-arcade/internal/registry"
)

func init() {
	registry.Register("fake", func() registry.Game { return &fakeGame{} })
}

var menuConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}

func menuKey(t *testing.T, m MenuModel, msg tea.KeyMsg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	require.True(t, ok)
	return mm
}

func TestMenuListsRegisteredGames(t *testing.T) {
	m := NewMenuModel(nil, menuConfig)
	assert.Contains(t, m.View(), "Fake")
	assert.NotContains(t, m.View(), "Difficulty")

	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.Selected())
	assert.Equal(t, "fake", m.Selected().GameID)
}

func TestMenuDifficultySelector(t *testing.T) {
	m := NewMenuModel(nil, menuConfig, WithDifficulties([]string{"easy", "normal", "hard"}, "normal"))
	assert.Equal(t, "normal", m.Difficulty())
	assert.Contains(t, m.View(), "Difficulty: < normal >")

	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "hard", m.Difficulty())
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "easy", m.Difficulty(), "wraps around")
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "hard", m.Difficulty())
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := menuKey(t, NewMenuModel(nil, menuConfig), tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.WantsScoreboard())

	m = menuKey(t, NewMenuModel(nil, menuConfig), runeKey('q'))
	assert.True(t, m.IsQuitting())
	assert.Empty(t, m.View())
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "  ab", centerText("ab", 6))
	assert.Equal(t, "abcdef", centerText("abcdef", 4))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", formatDuration(0))
	assert.Equal(t, "1:30", formatDuration(90*time.Second))
	assert.Equal(t, "1:02:03", formatDuration(time.Hour+2*time.Minute+3*time.Second))
}

func TestSessionFlow(t *testing.T) {
	var s tea.Model = NewSessionModel(nil, menuConfig, "bob", nil)

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sess := s.(SessionModel)
	require.Equal(t, screenGame, sess.screen)
	assert.Contains(t, sess.View(), "fake")

	// Esc pauses, a tick applies it, a second Esc leaves the game.
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s, _ = s.Update(TickMsg(time.Now()))
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	sess = s.(SessionModel)
	assert.Equal(t, screenMenu, sess.screen)

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	sess = s.(SessionModel)
	require.Equal(t, screenScores, sess.screen)

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	sess = s.(SessionModel)
	assert.Equal(t, screenMenu, sess.screen)

	_, cmd := s.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
