// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// PBJConfig contains all configuration for the PB&J game.
type PBJConfig struct {
	Board       BoardConfig      `yaml:"board"`
	Avatar      AvatarConfig     `yaml:"avatar"`
	Physics     PhysicsConfig    `yaml:"physics"`
	Leeway      LeewayConfig     `yaml:"leeway"`
	Progression []string         `yaml:"progression"` // role names, collected in order
	Rush        RushConfig       `yaml:"rush"`
	Audio       AudioConfig      `yaml:"audio"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the board size in tiles, border included.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AvatarConfig defines where the avatar starts.
type AvatarConfig struct {
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
}

// PhysicsConfig defines avatar movement tuning.
type PhysicsConfig struct {
	MaxVelocity  float64 `yaml:"max_velocity"` // tiles per tick
	Acceleration float64 `yaml:"acceleration"`
	Deceleration float64 `yaml:"deceleration"`
	MaxDT        float64 `yaml:"max_dt"` // seconds
}

// LeewayConfig defines the adjacency tolerances.
type LeewayConfig struct {
	Collect float64 `yaml:"collect"` // avatar to active counter
	Spawn   float64 `yaml:"spawn"`   // separation kept when placing counters
}

// RushConfig defines the timed mode.
type RushConfig struct {
	DurationSeconds int `yaml:"duration_seconds"`
}

// AudioConfig defines the pickup notes.
type AudioConfig struct {
	Enabled    bool      `yaml:"enabled"`
	Volume     float64   `yaml:"volume"` // log2 gain, 0 leaves the tone unchanged
	NoteMillis int       `yaml:"note_ms"`
	SampleRate int       `yaml:"sample_rate"`
	Notes      []float64 `yaml:"notes"` // Hz, indexed by sequence step
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Sandwiches/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to avatar speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name. The empty string is accepted and
// means "no preset".
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or fixed)", ErrInvalidConfig, s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.3
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
