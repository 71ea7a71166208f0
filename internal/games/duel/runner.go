package duel

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

var (
	errMatchOver   = errors.New("duel: match over")
	errTimeReached = errors.New("duel: duration reached")
)

// NewBot builds a bot with the match's configured pace and weights.
func (g *Game) NewBot(seed int64) *engine.Bot {
	w := g.cfg.Bot.Weights
	return engine.NewBot(
		rand.New(rand.NewSource(seed)),
		g.cfg.Bot.Interval(),
		engine.BotWeights{Left: w.Left, Right: w.Right, Rotate: w.Rotate, SoftDrop: w.SoftDrop, HardDrop: w.HardDrop},
	)
}

// Simulate plays the match on a simulated clock, one tick per step, until it
// ends or duration of play has elapsed. A non-nil p1 bot drives board 1.
// The result depends only on the seed and the configuration.
func Simulate(g *Game, p1 *engine.Bot, duration time.Duration) Snapshot {
	g.Start()
	empty := core.NewMultiInputFrame()
	for !g.IsGameOver() && (duration <= 0 || g.Elapsed() < duration) {
		if g.Status() != StatusPlaying {
			break
		}
		if p1 != nil {
			for _, a := range p1.Advance(g.tickDur) {
				g.Intents(core.Player1).Push(a)
			}
		}
		g.StepMulti(empty)
	}
	return g.Snapshot()
}

// RunOptions configure RunRealtime.
type RunOptions struct {
	FPS      int
	Duration time.Duration // Zero runs until the match ends
	P1Bot    *engine.Bot   // Optional bot for board 1
	Logger   *log.Logger
	OnFrame  func(Snapshot)
}

// RunRealtime plays the match on the wall clock. One goroutine owns the game
// and advances it every frame; each bot runs on its own ticker and only
// pushes onto its board's intent queue. Returns the final snapshot. A
// cancelled ctx stops the run and is reported as the error.
func RunRealtime(ctx context.Context, g *Game, opts RunOptions) (Snapshot, error) {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	g.SetExternalBot(true)
	defer g.SetExternalBot(false)
	g.Start()

	eg, gctx := errgroup.WithContext(ctx)

	if bot := g.Bot(); bot != nil {
		q := g.Intents(core.Player2)
		eg.Go(func() error { return bot.Run(gctx, q) })
	}
	if opts.P1Bot != nil {
		q := g.Intents(core.Player1)
		eg.Go(func() error { return opts.P1Bot.Run(gctx, q) })
	}

	var final Snapshot
	eg.Go(func() error {
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()
		last := time.Now()
		logger.Debug("frame loop started", "fps", fps, "mode", g.mode)

		for {
			select {
			case <-gctx.Done():
				final = g.Snapshot()
				return gctx.Err()
			case now := <-ticker.C:
				g.Advance(now.Sub(last))
				last = now
				if opts.OnFrame != nil {
					opts.OnFrame(g.Snapshot())
				}
				if g.IsGameOver() {
					final = g.Snapshot()
					return errMatchOver
				}
				if opts.Duration > 0 && g.Elapsed() >= opts.Duration {
					final = g.Snapshot()
					return errTimeReached
				}
			}
		}
	})

	err := eg.Wait()
	switch {
	case errors.Is(err, errMatchOver), errors.Is(err, errTimeReached):
		logger.Debug("frame loop finished", "reason", err, "elapsed", g.Elapsed())
		return final, nil
	case ctx.Err() != nil:
		return final, ctx.Err()
	default:
		return final, err
	}
}
