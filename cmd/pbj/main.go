// pbj is a terminal sandwich-making game: walk to the counters in order,
// bread, peanut butter, jelly, bread, then serve.
//
// Usage:
//
//	pbj list              - List available modes
//	pbj play <game>       - Play a mode (pbj or pbj_rush)
//	pbj menu              - Pick a mode interactively
//	pbj serve             - Start SSH server for remote play
//	pbj scores <game>     - Show high scores and run statistics
//	pbj sim               - Run the autopilot headlessly
//	pbj trace <file>      - Summarize a sim trace
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible layouts
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pbj-arcade/internal/audio"
	"github.com/vovakirdan/pbj-arcade/internal/config"
	"github.com/vovakirdan/pbj-arcade/internal/core"
	"github.com/vovakirdan/pbj-arcade/internal/games/pbj"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

// logger is configured by the root command before any subcommand runs.
var logger = log.New(io.Discard)

// logFile is closed on exit when --log-file is set.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pbj",
	Short: "PB&J - make sandwiches in your terminal",
	Long: `PB&J is a small arcade game: four counters sit on the walls of a
kitchen and you walk to them in order to build a sandwich. Every finished
sandwich rearranges the kitchen.

Available commands:
  list     - Show the game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores and run statistics
  sim      - Let the autopilot play headlessly
  trace    - Summarize a trace written by sim

Examples:
  pbj play pbj
  pbj play pbj_rush --difficulty hard
  pbj menu
  pbj serve --ssh :2222
  pbj sim --seed 42 --sandwiches 10`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// setup validates global flags, configures logging and hands the game
// package its config path and difficulty preset.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "pbj"})
	case cmd == serveCmd || cmd == simCmd:
		// No TUI owns the terminal, so stderr is free.
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "pbj"})
	}
	logger.SetLevel(level)

	pbj.SetLogger(logger)
	pbj.SetConfigPath(flagConfig)
	pbj.SetDifficultyPreset(flagDifficulty)
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}

// openNotes starts the pickup note player. Any failure leaves a silent
// player.
func openNotes(mute bool) *audio.NotePlayer {
	cfg, err := config.LoadPBJ(flagConfig)
	if err != nil {
		logger.Warn("audio config unavailable, using defaults", "error", err)
	}

	ac := audio.FromConfig(cfg.Audio)
	if mute {
		ac.Enabled = false
	}
	p := audio.NewNotePlayer(ac, logger)
	_ = p.Initialize() // logged by the player; play continues silently
	return p
}
