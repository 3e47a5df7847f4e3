package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pbj-arcade/internal/trace"
)

var traceCmd = &cobra.Command{
	Use:   "trace <file>",
	Short: "Summarize a trace written by 'pbj sim --trace'",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrace,
}

func init() {
	rootCmd.AddCommand(traceCmd)
}

func runTrace(_ *cobra.Command, args []string) error {
	s, err := trace.Summarize(args[0])
	if err != nil {
		return err
	}

	h := s.Header
	rate := max(h.TickRate, 1)
	fmt.Printf("%s  seed %d  board %dx%d  %d fps\n", h.Game, h.Seed, h.Width, h.Height, h.TickRate)
	fmt.Printf("  events:     %d\n", s.Events)
	fmt.Printf("  length:     %s (%d ticks)\n", time.Duration(s.LastTick)*time.Second/time.Duration(rate), s.LastTick)
	fmt.Printf("  sandwiches: %d\n", s.Sandwiches)
	fmt.Printf("  pickups:    %d\n", s.Pickups)
	fmt.Printf("  layouts:    %d (%d exhausted)\n", s.Layouts, s.Exhausted)
	return nil
}
