package engine

import (
	"context"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
)

// DefaultBotInterval is how often the bot acts.
const DefaultBotInterval = 300 * time.Millisecond

// BotWeights are the relative chances of each bot action.
type BotWeights struct {
	Left     float64
	Right    float64
	Rotate   float64
	SoftDrop float64
	HardDrop float64
}

// DefaultBotWeights returns 20% left, 20% right, 20% rotate,
// 30% soft drop and 10% hard drop.
func DefaultBotWeights() BotWeights {
	return BotWeights{Left: 0.2, Right: 0.2, Rotate: 0.2, SoftDrop: 0.3, HardDrop: 0.1}
}

func (w BotWeights) total() float64 {
	return w.Left + w.Right + w.Rotate + w.SoftDrop + w.HardDrop
}

// Bot is a random opponent that emits one piece-control action per interval.
type Bot struct {
	rng      Rand
	interval time.Duration
	weights  BotWeights
	acc      time.Duration
}

// NewBot returns a bot. Zero interval or weights fall back to the defaults.
func NewBot(rng Rand, interval time.Duration, weights BotWeights) *Bot {
	if interval <= 0 {
		interval = DefaultBotInterval
	}
	if weights.total() <= 0 {
		weights = DefaultBotWeights()
	}
	return &Bot{rng: rng, interval: interval, weights: weights}
}

// Interval returns the time between actions.
func (b *Bot) Interval() time.Duration { return b.interval }

// Decide draws the next action.
func (b *Bot) Decide() core.Action {
	w := b.weights
	r := b.rng.Float64() * w.total()
	switch {
	case r < w.Left:
		return core.ActionLeft
	case r < w.Left+w.Right:
		return core.ActionRight
	case r < w.Left+w.Right+w.Rotate:
		return core.ActionRotate
	case r < w.Left+w.Right+w.Rotate+w.SoftDrop:
		return core.ActionSoftDrop
	default:
		return core.ActionHardDrop
	}
}

// Advance moves the bot's clock forward by dt and returns the actions that
// came due, one per elapsed interval.
func (b *Bot) Advance(dt time.Duration) []core.Action {
	b.acc += dt
	var out []core.Action
	for b.acc >= b.interval {
		b.acc -= b.interval
		out = append(out, b.Decide())
	}
	return out
}

// Reset clears the bot's clock.
func (b *Bot) Reset() { b.acc = 0 }

// Run pushes one action per interval onto q until ctx is done.
// Rand must be safe for the calling goroutine; give each running bot its own source.
func (b *Bot) Run(ctx context.Context, q *IntentQueue) error {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			q.Push(b.Decide())
		}
	}
}
