package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pbj-arcade/internal/platform/tui"
	"github.com/vovakirdan/pbj-arcade/internal/registry"
	"github.com/vovakirdan/pbj-arcade/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game mode",
	Long: `Start playing the specified mode.

Modes:
  pbj        - Endless: make as many sandwiches as you like
  pbj_rush   - Make as many sandwiches as you can before the clock runs out

Controls:
  Arrows/WASD  - Move (hold to keep walking)
  P/Space/Esc  - Pause
  R            - Restart (after time is up)
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Generous pickup reach, longer rush round
  normal - The YAML config as written
  hard   - Tight reach, slippery floor, shorter round, speed grows with score
  fixed  - No speed progression

Examples:
  pbj play pbj
  pbj play pbj_rush --difficulty hard
  pbj play pbj --seed 42 --mute
  pbj play pbj --config ./my-kitchen.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable pickup notes")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'pbj list' to see available modes)", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	// Scores are optional; the game still works without them.
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

	cfg := runtimeConfig()
	logger.Info("starting game", "game", gameID, "seed", cfg.Seed, "fps", cfg.TickRate)

	if err := tui.Run(game, store, cfg, tui.WithNotes(notes), tui.WithLogger(logger)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
