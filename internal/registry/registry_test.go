package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pbj-arcade/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", func() Game { return &stubGame{id: "zz_stub"} })

	require.True(t, Exists("zz_stub"))
	g, err := Create("zz_stub")
	require.NoError(t, err)
	assert.Equal(t, "zz_stub", g.ID())

	list := List()
	require.NotEmpty(t, list)
	last := list[len(list)-1]
	assert.Equal(t, GameInfo{ID: "zz_stub", Title: "Stub zz_stub"}, last)

	assert.Panics(t, func() {
		Register("zz_stub", func() Game { return &stubGame{id: "zz_stub"} })
	}, "duplicate IDs are rejected")
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no_such_game")
	assert.ErrorContains(t, err, `unknown game "no_such_game"`)
	assert.False(t, Exists("no_such_game"))
	assert.Panics(t, func() { MustCreate("no_such_game") })
}
