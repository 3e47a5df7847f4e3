package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// knownRoles are the counter roles a progression may name.
var knownRoles = map[string]bool{"peanut": true, "bread": true, "jelly": true, "serve": true}

// LoadPBJ loads PB&J configuration.
// Search order: customPath -> ~/.arcade/configs/pbj.yaml -> ./configs/pbj.yaml -> embedded default
//
// Files are decoded on top of DefaultPBJConfig, so a partial file only
// overrides the keys it sets. Files that fail to parse or validate are
// skipped, except customPath which is reported as an error.
func LoadPBJ(customPath string) (PBJConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultPBJConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parsePBJ(data)
		if err != nil {
			return DefaultPBJConfig(), fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("pbj.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parsePBJ(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "pbj.yaml")); err == nil {
		if cfg, err := parsePBJ(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parsePBJ(defaultPBJYAML)
	if err != nil {
		return DefaultPBJConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parsePBJ decodes and validates a YAML document.
func parsePBJ(data []byte) (PBJConfig, error) {
	cfg := DefaultPBJConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first problem found in the config.
func (c PBJConfig) Validate() error {
	if c.Board.Width < 3 || c.Board.Height < 3 {
		return fmt.Errorf("%w: board must be at least 3x3, got %dx%d", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	}

	maxX := float64(c.Board.Width - 2)
	maxY := float64(c.Board.Height - 2)
	if c.Avatar.StartX < 1 || c.Avatar.StartX > maxX || c.Avatar.StartY < 1 || c.Avatar.StartY > maxY {
		return fmt.Errorf("%w: avatar start (%g,%g) outside interior [1,%g]x[1,%g]",
			ErrInvalidConfig, c.Avatar.StartX, c.Avatar.StartY, maxX, maxY)
	}

	p := c.Physics
	if !positive(p.MaxVelocity) || !positive(p.Acceleration) || !positive(p.Deceleration) || !positive(p.MaxDT) {
		return fmt.Errorf("%w: physics values must be positive", ErrInvalidConfig)
	}
	if !positive(c.Leeway.Collect) || !positive(c.Leeway.Spawn) {
		return fmt.Errorf("%w: leeway values must be positive", ErrInvalidConfig)
	}

	if len(c.Progression) == 0 {
		return fmt.Errorf("%w: progression is empty", ErrInvalidConfig)
	}
	for _, name := range c.Progression {
		if !knownRoles[name] {
			return fmt.Errorf("%w: unknown role %q in progression", ErrInvalidConfig, name)
		}
	}

	if c.Rush.DurationSeconds < 0 {
		return fmt.Errorf("%w: rush duration must not be negative", ErrInvalidConfig)
	}
	if c.Audio.Enabled && (c.Audio.NoteMillis <= 0 || c.Audio.SampleRate <= 0 || len(c.Audio.Notes) == 0) {
		return fmt.Errorf("%w: audio needs note_ms, sample_rate and at least one note", ErrInvalidConfig)
	}

	switch c.Difficulty.Progression.Type {
	case "", "score", "time", "none":
	default:
		return fmt.Errorf("%w: unknown difficulty progression %q", ErrInvalidConfig, c.Difficulty.Progression.Type)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyPBJPreset modifies the config based on a difficulty preset.
func ApplyPBJPreset(cfg *PBJConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Enabled = false
		cfg.Leeway.Collect = 0.75
		cfg.Rush.DurationSeconds = 120
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Leeway.Collect = 0.25
		cfg.Physics.Deceleration = 0.4
		cfg.Rush.DurationSeconds = 60
	}
}
