package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pbj-arcade/internal/registry"
	"github.com/vovakirdan/pbj-arcade/internal/storage"
)

var (
	flagScoreLimit int
	flagShowRuns   bool
	flagClear      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game mode",
	Long: `Display the best sandwich counts and run statistics for a mode.

Examples:
  pbj scores pbj
  pbj scores pbj_rush --limit 20
  pbj scores pbj --runs
  pbj scores pbj --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 10, "Number of scores or runs to show")
	scoresCmd.Flags().BoolVar(&flagShowRuns, "runs", false, "List recent runs instead of top scores")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and runs for the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'pbj list' to see available modes)", gameID)
	}
	title := registry.MustCreate(gameID).Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return nil
	}

	if flagShowRuns {
		return printRuns(store, gameID, title)
	}

	scores, err := store.TopScores(gameID, flagScoreLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'pbj play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Sandwiches", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "----------", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0].Score)
	if stats.Runs > 0 {
		fmt.Printf("Runs: %d  Average: %.1f  Pickups: %d  Played: %s\n",
			stats.Runs, stats.AverageSandwiches(), stats.TotalPickups, stats.TotalPlayTime.Round(time.Second))
	}
	return nil
}

func printRuns(store *storage.Store, gameID, title string) error {
	runs, err := store.RecentRuns(gameID, flagScoreLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Recent Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-10s  %-5s  %-7s  %-6s  %-8s  %s\n", "Date", "Player", "Made", "Pickups", "Levels", "Time", "Seed")
	for _, r := range runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-16s  %-10s  %-5d  %-7d  %-6d  %-8s  %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			player,
			r.Sandwiches,
			r.Pickups,
			r.Levels,
			r.Duration.Round(time.Second),
			r.Seed,
		)
	}
	return nil
}
