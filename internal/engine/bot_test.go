package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
)

func TestBotDecideDistribution(t *testing.T) {
	tests := []struct {
		r    float64
		want core.Action
	}{
		{0.05, core.ActionLeft},
		{0.3, core.ActionRight},
		{0.5, core.ActionRotate},
		{0.7, core.ActionSoftDrop},
		{0.95, core.ActionHardDrop},
	}
	for _, tt := range tests {
		bot := NewBot(&seqRand{floats: []float64{tt.r}}, 0, BotWeights{})
		assert.Equal(t, tt.want, bot.Decide(), "r=%v", tt.r)
	}
}

func TestBotAdvance(t *testing.T) {
	bot := NewBot(&seqRand{floats: []float64{0.05}}, 300*time.Millisecond, DefaultBotWeights())

	assert.Empty(t, bot.Advance(299*time.Millisecond))
	assert.Equal(t, []core.Action{core.ActionLeft}, bot.Advance(time.Millisecond))
	assert.Len(t, bot.Advance(650*time.Millisecond), 2)
	bot.Reset()
	assert.Empty(t, bot.Advance(299*time.Millisecond))
}

func TestBotRunPushesUntilCancelled(t *testing.T) {
	bot := NewBot(&seqRand{floats: []float64{0.5}}, 5*time.Millisecond, DefaultBotWeights())
	q := &IntentQueue{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- bot.Run(ctx, q) }()

	require.Eventually(t, func() bool { return q.Len() >= 2 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	for _, a := range q.Drain() {
		assert.Equal(t, core.ActionRotate, a)
	}
}

func TestBotDrivenBoardStaysConsistent(t *testing.T) {
	rng := &seqRand{ints: []int{2, 5, 0, 6, 1, 3, 4}, floats: []float64{0.1, 0.95, 0.3, 0.7, 0.5, 0.8}}
	l := NewLoop(newTestBoard(rng, Events{}))
	bot := NewBot(rng, 0, BotWeights{})
	l.Start()

	for i := 0; i < 2000 && !l.Board().IsOver(); i++ {
		for _, a := range bot.Advance(50 * time.Millisecond) {
			l.Intents().Push(a)
		}
		l.Frame(50 * time.Millisecond)
	}
	assert.Positive(t, l.Board().Stats().Score)
}
