package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficultyDisabledKeepsSpeed(t *testing.T) {
	d := NewDifficultyManager(DefaultPBJConfig().Difficulty)
	assert.False(t, d.IsEnabled())
	assert.Equal(t, 0.15, d.Speed(0.15, 100, 100000))
}

func TestDifficultyScoreProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:     ScalingConfig{SpeedMultiplier: 0.5},
	})

	assert.InDelta(t, 0.0, d.Level(0, 0), 1e-9)
	assert.InDelta(t, 0.5, d.Level(5, 0), 1e-9)
	assert.InDelta(t, 1.0, d.Level(50, 0), 1e-9, "level saturates")
	assert.InDelta(t, 1.5, d.Speed(1, 10, 0), 1e-9)
}

func TestDifficultyTimeProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
	})

	assert.InDelta(t, 0.5, d.Level(99, 0), 1e-9, "score is ignored")
	assert.InDelta(t, 0.75, d.Level(0, 50), 1e-9)
}

func TestDifficultyNoneProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 2,
		Progression:  ProgressionConfig{Type: "none"},
	})

	assert.False(t, d.IsEnabled())
	assert.Equal(t, 1.0, d.Level(10, 10), "initial level is clamped")
}

func TestDifficultyNoneProgressionKeepsSpeed(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "none"},
		Scaling:      ScalingConfig{SpeedMultiplier: 1},
	})

	assert.Equal(t, 0.15, d.Speed(0.15, 20, 5000))
}
