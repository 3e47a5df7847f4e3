package pbj

import (
	"fmt"
	"time"

	"github.com/vovakirdan/pbj-arcade/internal/config"
	"github.com/vovakirdan/pbj-arcade/internal/core"
)

// Settings is the resolved game tuning.
type Settings struct {
	Board         Board
	AvatarStart   core.Vec2
	Physics       Physics
	CollectLeeway float64
	SpawnLeeway   float64
	Sequence      []Role
	RushDuration  time.Duration
	Difficulty    config.DifficultyConfig
}

// DefaultSettings returns the classic 9x9 tuning.
func DefaultSettings() Settings {
	return Settings{
		Board:         NewBoard(9, 9),
		AvatarStart:   core.Vec2{X: 4, Y: 4},
		Physics:       DefaultPhysics(),
		CollectLeeway: DefaultCollectLeeway,
		SpawnLeeway:   DefaultSpawnLeeway,
		Sequence:      DefaultSequence,
		RushDuration:  90 * time.Second,
	}
}

// SettingsFromConfig validates cfg and converts it to Settings.
func SettingsFromConfig(cfg config.PBJConfig) (Settings, error) {
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}

	seq, err := ParseRoles(cfg.Progression)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	return Settings{
		Board:       NewBoard(cfg.Board.Width, cfg.Board.Height),
		AvatarStart: core.Vec2{X: cfg.Avatar.StartX, Y: cfg.Avatar.StartY},
		Physics: Physics{
			MaxVelocity:  cfg.Physics.MaxVelocity,
			Acceleration: cfg.Physics.Acceleration,
			Deceleration: cfg.Physics.Deceleration,
			MaxDT:        cfg.Physics.MaxDT,
		},
		CollectLeeway: cfg.Leeway.Collect,
		SpawnLeeway:   cfg.Leeway.Spawn,
		Sequence:      seq,
		RushDuration:  time.Duration(cfg.Rush.DurationSeconds) * time.Second,
		Difficulty:    cfg.Difficulty,
	}, nil
}
