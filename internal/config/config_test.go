package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// isolate points the user and local search paths at empty directories.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, DefaultPBJConfig().Validate())
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg PBJConfig
	require.NoError(t, yaml.Unmarshal(defaultPBJYAML, &cfg))
	assert.Equal(t, DefaultPBJConfig(), cfg)
}

func TestLoadPBJFallsBackToEmbedded(t *testing.T) {
	isolate(t)

	cfg, err := LoadPBJ("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPBJConfig(), cfg)
}

func TestLoadPBJCustomPathPartial(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "board:\n  width: 12\n  height: 7\nprogression: [jelly, serve]\n")

	cfg, err := LoadPBJ(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Board.Width)
	assert.Equal(t, 7, cfg.Board.Height)
	assert.Equal(t, []string{"jelly", "serve"}, cfg.Progression)
	assert.Equal(t, 0.15, cfg.Physics.MaxVelocity, "unset keys keep defaults")
}

func TestLoadPBJCustomPathErrors(t *testing.T) {
	isolate(t)

	_, err := LoadPBJ(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "board: [1, 2")
	_, err = LoadPBJ(bad)
	assert.ErrorContains(t, err, "failed to parse")

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	writeFile(t, invalid, "progression: [bread, ham]\n")
	cfg, err := LoadPBJ(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, DefaultPBJConfig(), cfg, "errors come with usable defaults")
}

func TestLoadPBJUserDirectory(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".arcade", "configs", "pbj.yaml"), "rush:\n  duration_seconds: 30\n")

	cfg, err := LoadPBJ("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Rush.DurationSeconds)
}

func TestLoadPBJSkipsInvalidUserFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".arcade", "configs", "pbj.yaml"), "board:\n  width: 2\n")
	writeFile(t, filepath.Join("configs", "pbj.yaml"), "rush:\n  duration_seconds: 45\n")

	cfg, err := LoadPBJ("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Board.Width)
	assert.Equal(t, 45, cfg.Rush.DurationSeconds, "local file is used next")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PBJConfig)
		want   string
	}{
		{"board too small", func(c *PBJConfig) { c.Board.Width = 2 }, "at least 3x3"},
		{"avatar on border", func(c *PBJConfig) { c.Avatar.StartX = 0 }, "outside interior"},
		{"avatar past interior", func(c *PBJConfig) { c.Avatar.StartY = 7.5 }, "outside interior"},
		{"zero velocity", func(c *PBJConfig) { c.Physics.MaxVelocity = 0 }, "physics"},
		{"negative decel", func(c *PBJConfig) { c.Physics.Deceleration = -1 }, "physics"},
		{"zero leeway", func(c *PBJConfig) { c.Leeway.Collect = 0 }, "leeway"},
		{"empty progression", func(c *PBJConfig) { c.Progression = nil }, "progression is empty"},
		{"unknown role", func(c *PBJConfig) { c.Progression = []string{"toast"} }, `unknown role "toast"`},
		{"negative rush", func(c *PBJConfig) { c.Rush.DurationSeconds = -1 }, "rush"},
		{"audio without notes", func(c *PBJConfig) { c.Audio.Notes = nil }, "audio"},
		{"bad difficulty", func(c *PBJConfig) { c.Difficulty.Progression.Type = "lunar" }, "difficulty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPBJConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestValidateSmallestBoard(t *testing.T) {
	cfg := DefaultPBJConfig()
	cfg.Board = BoardConfig{Width: 3, Height: 3}
	cfg.Avatar = AvatarConfig{StartX: 1, StartY: 1}
	assert.NoError(t, cfg.Validate())
}

func TestDisabledAudioSkipsAudioChecks(t *testing.T) {
	cfg := DefaultPBJConfig()
	cfg.Audio = AudioConfig{Enabled: false}
	assert.NoError(t, cfg.Validate())
}

func TestApplyPBJPreset(t *testing.T) {
	easy := DefaultPBJConfig()
	ApplyPBJPreset(&easy, DifficultyEasy)
	assert.Equal(t, 0.75, easy.Leeway.Collect)
	assert.Equal(t, 120, easy.Rush.DurationSeconds)
	assert.False(t, easy.Difficulty.Enabled)

	normal := DefaultPBJConfig()
	ApplyPBJPreset(&normal, DifficultyNormal)
	assert.Equal(t, DefaultPBJConfig(), normal)

	hard := DefaultPBJConfig()
	ApplyPBJPreset(&hard, DifficultyHard)
	assert.True(t, hard.Difficulty.Enabled)
	assert.Equal(t, 0.3, hard.Difficulty.InitialLevel)
	assert.Equal(t, 60, hard.Rush.DurationSeconds)
	assert.NoError(t, hard.Validate())

	fixed := DefaultPBJConfig()
	fixed.Difficulty.Enabled = true
	ApplyPBJPreset(&fixed, DifficultyFixed)
	assert.False(t, fixed.Difficulty.Enabled)
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("hard")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)

	p, err = ParsePreset("")
	require.NoError(t, err)
	assert.Empty(t, p)

	_, err = ParsePreset("nightmare")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
