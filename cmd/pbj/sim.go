package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pbj-arcade/internal/core"
	"github.com/vovakirdan/pbj-arcade/internal/games/pbj"
	"github.com/vovakirdan/pbj-arcade/internal/registry"
	"github.com/vovakirdan/pbj-arcade/internal/storage"
	"github.com/vovakirdan/pbj-arcade/internal/trace"
)

var (
	flagSimGame       string
	flagSimSeconds    int
	flagSimSandwiches int
	flagSimSave       bool
	flagSimTrace      string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Let the autopilot play without a terminal UI",
	Long: `Run a game headlessly with the autopilot walking to each counter in
turn. Useful for checking a config or difficulty preset, and for
reproducing a layout sequence from a seed.

Examples:
  pbj sim
  pbj sim --seed 42 --seconds 120
  pbj sim --game pbj_rush --difficulty hard --save
  pbj sim --sandwiches 20 --log-level debug
  pbj sim --seed 7 --trace ./runs/seed7.jsonl.zst`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimGame, "game", "pbj", "Game mode to simulate")
	simCmd.Flags().IntVar(&flagSimSeconds, "seconds", 60, "Simulated seconds to run")
	simCmd.Flags().IntVar(&flagSimSandwiches, "sandwiches", 0, "Stop after this many sandwiches (0 = no limit)")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the scores database")
	simCmd.Flags().StringVar(&flagSimTrace, "trace", "", "Write a compressed event trace to this file")
}

func runSim(_ *cobra.Command, _ []string) error {
	if flagSimSeconds <= 0 {
		return fmt.Errorf("--seconds must be positive, got %d", flagSimSeconds)
	}

	game, err := registry.Create(flagSimGame)
	if err != nil {
		return err
	}
	g, ok := game.(*pbj.Game)
	if !ok {
		return fmt.Errorf("game %q has no autopilot", flagSimGame)
	}

	cfg := runtimeConfig()

	g.Reset(cfg)
	pilot := pbj.NewAutopilot(g)

	var rec *simRecorder
	if flagSimTrace != "" {
		rec, err = newSimRecorder(flagSimTrace, g, cfg)
		if err != nil {
			return err
		}
		g.OnPickup(rec.pickup)
		rec.layout()
	}

	start := time.Now()
	limit := flagSimSeconds * cfg.TickRate
	input := core.NewInputFrame()
	ticks := 0
	for ticks < limit {
		pilot.Steer()
		state := g.Step(input).State
		ticks++
		if rec != nil {
			rec.afterStep()
		}

		if state.GameOver {
			break
		}
		if flagSimSandwiches > 0 && g.Sandwiches() >= flagSimSandwiches {
			break
		}
	}

	if rec != nil {
		if err := rec.finish(); err != nil {
			return err
		}
		logger.Info("trace written", "path", flagSimTrace)
	}

	stats := g.RunStats()
	played := time.Duration(ticks) * time.Second / time.Duration(cfg.TickRate)
	logger.Info("simulation finished",
		"game", g.ID(),
		"seed", cfg.Seed,
		"ticks", ticks,
		"wall", time.Since(start).Round(time.Millisecond),
	)

	fmt.Printf("%s  seed %d\n", g.Title(), cfg.Seed)
	fmt.Printf("  simulated:  %s (%d ticks)\n", played, ticks)
	fmt.Printf("  sandwiches: %d\n", g.Sandwiches())
	fmt.Printf("  pickups:    %d\n", stats.Pickups)
	fmt.Printf("  layouts:    %d (%d exhausted)\n", stats.Levels, stats.Exhausted)
	if g.Sandwiches() > 0 {
		fmt.Printf("  per sandwich: %s\n", (played / time.Duration(g.Sandwiches())).Round(time.Millisecond))
	}

	if !flagSimSave {
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	id, err := store.SaveRun(storage.Run{
		GameID:     g.ID(),
		Player:     "autopilot",
		Seed:       cfg.Seed,
		Sandwiches: g.Sandwiches(),
		Pickups:    stats.Pickups,
		Levels:     stats.Levels,
		Exhausted:  stats.Exhausted,
		Duration:   played,
	})
	if err != nil {
		return err
	}
	fmt.Printf("  saved as run %d\n", id)
	return nil
}

// simRecorder turns game callbacks into trace events.
type simRecorder struct {
	w         *trace.Writer
	game      *pbj.Game
	completed bool // a sandwich finished during the current step
	err       error
}

func newSimRecorder(path string, g *pbj.Game, cfg core.RuntimeConfig) (*simRecorder, error) {
	board := g.Board()
	w, err := trace.Create(path, trace.Header{
		Game:     g.ID(),
		Seed:     cfg.Seed,
		TickRate: cfg.TickRate,
		Width:    board.Width,
		Height:   board.Height,
	})
	if err != nil {
		return nil, err
	}
	return &simRecorder{w: w, game: g}, nil
}

func (r *simRecorder) write(e trace.Event) {
	if r.err == nil {
		r.err = r.w.Write(e)
	}
}

func (r *simRecorder) event(kind trace.Kind) trace.Event {
	snap := r.game.Snapshot()
	return trace.Event{
		Tick:       snap.Tick,
		Kind:       kind,
		Sandwiches: snap.Sandwiches,
		X:          snap.AvatarX,
		Y:          snap.AvatarY,
	}
}

func (r *simRecorder) pickup(p pbj.Pickup) {
	e := r.event(trace.KindPickup)
	e.Role = p.Role.String()
	e.Step = p.Step
	e.Sandwiches = p.Sandwich
	r.write(e)
	r.completed = r.completed || p.Completed
}

func (r *simRecorder) layout() {
	e := r.event(trace.KindLayout)
	report := r.game.LastLevel()
	for i, c := range r.game.Counters() {
		e.Counters = append(e.Counters, trace.Counter{
			Role:      c.Role.String(),
			X:         c.Location.X,
			Y:         c.Location.Y,
			Rotation:  c.Rotation,
			Exhausted: report.Placements[i].Exhausted,
		})
	}
	r.write(e)
}

func (r *simRecorder) afterStep() {
	if r.completed {
		r.layout()
		r.completed = false
	}
}

func (r *simRecorder) finish() error {
	r.write(r.event(trace.KindEnd))
	if err := r.w.Close(); err != nil && r.err == nil {
		r.err = err
	}
	return r.err
}
