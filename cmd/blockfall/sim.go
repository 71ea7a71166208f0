package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/duel"
)

var (
	flagSimMode     string
	flagSimDuration time.Duration
	flagSimRealtime bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless bot match",
	Long: `Play a match with a bot on board 1 and print the result.

By default the match runs on a simulated clock, so the same --seed always
gives the same result. With --realtime it runs on the wall clock with each
bot on its own goroutine; Ctrl+C stops it early.

Examples:
  blockfall sim --seed 42
  blockfall sim --mode marathon --duration 2m
  blockfall sim --realtime --duration 10s --log-level debug`,
	Run: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimMode, "mode", string(duel.ModeCPU), "Mode to simulate")
	simCmd.Flags().DurationVar(&flagSimDuration, "duration", 30*time.Second, "Maximum play time (0 = until the match ends)")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Run on the wall clock instead of a simulated one")
}

func runSim(_ *cobra.Command, _ []string) {
	mode, ok := duel.ParseMode(flagSimMode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", flagSimMode)
		os.Exit(1)
	}
	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := duel.New(mode)
	g.ResetWith(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed}, gameCfg)
	p1 := g.NewBot(seed + 1)

	log.Info("simulating", "mode", mode, "seed", seed, "duration", flagSimDuration, "realtime", flagSimRealtime)

	var snap duel.Snapshot
	if flagSimRealtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		snap, err = duel.RunRealtime(ctx, g, duel.RunOptions{
			FPS:      flagFPS,
			Duration: flagSimDuration,
			P1Bot:    p1,
			Logger:   log.Default(),
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		snap = duel.Simulate(g, p1, flagSimDuration)
	}

	for i, b := range snap.Boards {
		log.Info("board", "player", i+1, "score", b.Stats.Score, "lines", b.Stats.Lines, "level", b.Stats.Level)
	}

	result := "no winner"
	switch {
	case snap.Winner != core.PlayerNone:
		result = snap.Winner.String() + " wins"
	case snap.Draw():
		result = "draw"
	}
	fmt.Printf("%s after %s: %s", mode.Title(), snap.Elapsed.Round(time.Millisecond), result)
	if snap.Reason != duel.ReasonNone {
		fmt.Printf(" (%s)", snap.Reason)
	}
	fmt.Println()
	for i, b := range snap.Boards {
		fmt.Printf("  P%d  score %-7d lines %-4d level %d\n", i+1, b.Stats.Score, b.Stats.Lines, b.Stats.Level)
	}
}
