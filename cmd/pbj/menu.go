package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pbj-arcade/internal/config"
	"github.com/vovakirdan/pbj-arcade/internal/games/pbj"
	"github.com/vovakirdan/pbj-arcade/internal/platform/tui"
	"github.com/vovakirdan/pbj-arcade/internal/registry"
	"github.com/vovakirdan/pbj-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a game mode from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a mode, left/right to change difficulty and
Enter to play. Esc on the pause or time-up screen returns to the menu.

Controls:
  Up/Down/j/k    - Navigate
  Left/Right     - Difficulty
  Enter/Space    - Play
  Tab            - Scoreboard
  Q              - Quit

Examples:
  pbj menu
  pbj menu --fps 30
  pbj menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable pickup notes")
}

func runMenu(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	notes := openNotes(flagMute)
	defer notes.Close()

	presets := make([]string, len(config.Presets))
	for i, p := range config.Presets {
		presets[i] = string(p)
	}
	difficulty := flagDifficulty
	if difficulty == "" {
		difficulty = string(config.DifficultyNormal)
	}

	cfg := runtimeConfig()

	for {
		result, err := tui.RunMenu(store, cfg, tui.WithDifficulties(presets, difficulty))
		if err != nil {
			return err
		}
		cfg = result.Config
		if result.Difficulty != "" {
			difficulty = result.Difficulty
		}

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		// Difficulty is read on the game's next Reset.
		pbj.SetDifficultyPreset(difficulty)

		game, err := registry.Create(result.GameID)
		if err != nil {
			return err
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		logger.Info("starting game", "game", result.GameID, "difficulty", difficulty, "seed", cfg.Seed)

		if err := tui.Run(game, store, cfg, tui.WithNotes(notes), tui.WithLogger(logger), tui.WithBackToMenu()); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
	}
}
