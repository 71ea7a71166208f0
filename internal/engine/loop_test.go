package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
)

func newTestLoop() *Loop {
	return NewLoop(newTestBoard(&seqRand{ints: []int{0}}, Events{}))
}

func activeY(t *testing.T, l *Loop) int {
	t.Helper()
	p, ok := l.Board().Active()
	require.True(t, ok)
	return p.Pos.Y
}

func TestStartSpawns(t *testing.T) {
	l := newTestLoop()
	assert.False(t, l.Board().HasActive())
	l.Start()
	assert.True(t, l.Running())
	assert.True(t, l.Board().HasActive())
}

func TestGravityNeedsStrictlyMoreThanFallSpeed(t *testing.T) {
	l := newTestLoop()
	l.Start()

	l.Frame(800 * time.Millisecond)
	assert.Equal(t, 0, activeY(t, l))

	l.Frame(time.Millisecond)
	assert.Equal(t, 1, activeY(t, l))
	assert.Equal(t, time.Duration(0), l.Accumulated())
}

func TestGravityLocksWhenBlocked(t *testing.T) {
	l := newTestLoop()
	l.Start()
	for l.Board().Translate(0, 1) {
	}
	l.Frame(801 * time.Millisecond)
	assert.Equal(t, 4, l.Board().grid.LockedCount())
	assert.Equal(t, 0, activeY(t, l), "next piece spawned")
}

func TestPauseKeepsAccumulator(t *testing.T) {
	l := newTestLoop()
	l.Start()
	l.Frame(500 * time.Millisecond)
	l.Stop()

	l.Frame(time.Second)
	assert.Equal(t, 0, activeY(t, l))
	assert.Equal(t, 500*time.Millisecond, l.Accumulated())

	l.Start()
	l.Frame(301 * time.Millisecond)
	assert.Equal(t, 1, activeY(t, l))
}

func TestIntentsApplyBeforeGravity(t *testing.T) {
	l := newTestLoop()
	l.Start()
	l.Intents().Push(core.ActionHardDrop)
	l.Intents().Push(core.ActionNone)

	s := l.Frame(0)

	assert.Equal(t, 36, s.Stats.Score)
	assert.Equal(t, 0, l.Intents().Len())
	require.NotNil(t, s.Active)
	assert.Equal(t, 0, s.Active.Pos.Y)
}

func TestIntentsDroppedWhileStopped(t *testing.T) {
	l := newTestLoop()
	l.Start()
	l.Stop()
	l.Intents().Push(core.ActionHardDrop)
	s := l.Frame(0)
	assert.Equal(t, 0, s.Stats.Score)
	assert.Equal(t, 0, l.Intents().Len())
}

func TestFrameAfterGameOverIsInert(t *testing.T) {
	l := newTestLoop()
	l.Board().grid.Set(4, 1, Cell{Kind: KindGarbage, Locked: true})
	l.Start()
	require.True(t, l.Board().IsOver())

	before := l.Board().Snapshot()
	l.Intents().Push(core.ActionLeft)
	after := l.Frame(5 * time.Second)
	assert.Equal(t, before, after)
}

func TestLoopReset(t *testing.T) {
	l := newTestLoop()
	l.Start()
	l.Frame(400 * time.Millisecond)
	l.Intents().Push(core.ActionLeft)
	l.Reset()
	assert.Equal(t, time.Duration(0), l.Accumulated())
	assert.Equal(t, 0, l.Intents().Len())
	assert.False(t, l.Board().HasActive())
}
