package config

import (
	_ "embed"
)

//go:embed defaults/pbj.yaml
var defaultPBJYAML []byte

// DefaultPBJConfig returns the default PB&J configuration.
func DefaultPBJConfig() PBJConfig {
	return PBJConfig{
		Board: BoardConfig{
			Width:  9,
			Height: 9,
		},
		Avatar: AvatarConfig{
			StartX: 4,
			StartY: 4,
		},
		Physics: PhysicsConfig{
			MaxVelocity:  0.15,
			Acceleration: 0.75,
			Deceleration: 0.75,
			MaxDT:        0.1,
		},
		Leeway: LeewayConfig{
			Collect: 0.5,
			Spawn:   1.0,
		},
		Progression: []string{"bread", "peanut", "jelly", "bread", "serve"},
		Rush: RushConfig{
			DurationSeconds: 90,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     -1,
			NoteMillis: 180,
			SampleRate: 44100,
			Notes:      []float64{261.63, 293.66, 329.63, 349.23, 392.00},
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}
