package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
)

func TestSpawnCentered(t *testing.T) {
	b := newTestBoard(&seqRand{ints: []int{0}}, Events{})
	require.True(t, b.Spawn())

	p, ok := b.Active()
	require.True(t, ok)
	assert.Equal(t, KindI, p.Kind)
	assert.Equal(t, core.Point{X: 3, Y: 0}, p.Pos)
	assert.Equal(t, 0, p.Rotation)
	assert.Len(t, b.Next(), DefaultQueueLen)
}

func TestNewBoardDefaults(t *testing.T) {
	b := NewBoard(Options{QueueLen: 1})
	assert.Len(t, b.Next(), DefaultQueueLen)
	assert.Equal(t, DefaultWidth, b.Width())
	require.True(t, b.Spawn())
	_, ok := b.Active()
	assert.True(t, ok)
}

func TestTranslateStopsAtWall(t *testing.T) {
	b := newTestBoard(&seqRand{ints: []int{0}}, Events{})
	b.Spawn()
	for i := 0; i < 3; i++ {
		require.True(t, b.Translate(-1, 0))
	}
	assert.False(t, b.Translate(-1, 0))
	p, _ := b.Active()
	assert.Equal(t, 0, p.Pos.X)
}

func TestRotateKicksOffWall(t *testing.T) {
	b := newTestBoard(&seqRand{ints: []int{0}}, Events{})
	b.Spawn()
	require.True(t, b.Rotate())
	for i := 0; i < 4; i++ {
		require.True(t, b.Translate(1, 0))
	}
	require.False(t, b.Translate(1, 0))

	require.True(t, b.Rotate())
	p, _ := b.Active()
	assert.Equal(t, core.Point{X: 6, Y: 0}, p.Pos)
	assert.Equal(t, 2, p.Rotation)
}

func TestFourRotationsRestorePiece(t *testing.T) {
	for i, kind := range PieceKinds {
		t.Run(kind.String(), func(t *testing.T) {
			b := newTestBoard(&seqRand{ints: []int{i}}, Events{})
			require.True(t, b.Spawn())
			for j := 0; j < 5; j++ {
				require.True(t, b.Translate(0, 1))
			}
			before, _ := b.Active()
			require.Equal(t, kind, before.Kind)

			for j := 0; j < 4; j++ {
				require.True(t, b.Rotate())
			}
			after, _ := b.Active()
			assert.Equal(t, before.Pos, after.Pos)
			assert.Equal(t, before.Rotation, after.Rotation)
			assert.True(t, before.Shape.Equal(after.Shape))
		})
	}
}

func TestRotateFailsWhenEveryKickCollides(t *testing.T) {
	b := newTestBoard(&seqRand{ints: []int{0}}, Events{})
	b.Spawn()
	// Vertical I needs rows 0-3 of some column near x=5; block them all.
	for x := 0; x < 10; x++ {
		b.grid.Set(x, 2, Cell{Kind: KindGarbage, Locked: true})
	}
	before, _ := b.Active()
	assert.False(t, b.Rotate())
	after, _ := b.Active()
	assert.Equal(t, before, after)
}

func TestHardDropOnEmptyBoard(t *testing.T) {
	b := newTestBoard(&seqRand{ints: []int{0}}, Events{})
	b.Spawn()

	rows := b.HardDrop()

	assert.Equal(t, 18, rows)
	assert.Equal(t, 36, b.Stats().Score)
	assert.Equal(t, 4, b.grid.LockedCount())
	for x := 3; x <= 6; x++ {
		assert.True(t, b.grid.At(x, 19).Locked)
	}
	assert.True(t, b.HasActive(), "next piece spawned")
}

func TestApplyHardDropNeedsActivePiece(t *testing.T) {
	b := newTestBoard(&seqRand{ints: []int{0}}, Events{})
	assert.False(t, b.Apply(core.ActionHardDrop), "nothing spawned yet")

	require.True(t, b.Spawn())
	assert.True(t, b.Apply(core.ActionHardDrop))

	b.grid.Set(4, 1, Cell{Kind: KindGarbage, Locked: true})
	b.grid.Set(4, 0, Cell{Kind: KindGarbage, Locked: true})
	b.Spawn()
	require.True(t, b.IsOver())
	score := b.Stats().Score
	assert.False(t, b.Apply(core.ActionHardDrop))
	assert.Equal(t, score, b.Stats().Score)
}

func TestHardDropSingleClear(t *testing.T) {
	var clears []int
	b := newTestBoard(&seqRand{ints: []int{0}}, Events{OnClear: func(n int) { clears = append(clears, n) }})
	fillRow(b.grid, 19, 3, 4, 5, 6)
	b.Spawn()

	b.HardDrop()

	assert.Equal(t, Stats{Score: 136, Lines: 1, Level: 1}, b.Stats())
	assert.Equal(t, []int{1}, clears)
	assert.Equal(t, 0, b.grid.LockedCount())
}

func TestHardDropTetris(t *testing.T) {
	var clears []int
	b := newTestBoard(&seqRand{ints: []int{0}}, Events{OnClear: func(n int) { clears = append(clears, n) }})
	for y := 16; y < 20; y++ {
		fillRow(b.grid, y, 9)
	}
	b.Spawn()
	require.True(t, b.Rotate())
	for i := 0; i < 4; i++ {
		require.True(t, b.Translate(1, 0))
	}

	rows := b.HardDrop()

	assert.Equal(t, 16, rows)
	assert.Equal(t, Stats{Score: 832, Lines: 4, Level: 1}, b.Stats())
	assert.Equal(t, []int{4}, clears)
	assert.Equal(t, 0, b.grid.LockedCount())
}

func TestClearUsesLevelBeforeClear(t *testing.T) {
	b := newTestBoard(&seqRand{ints: []int{0}}, Events{})
	b.stats = Stats{Lines: 9, Level: 1}
	fillRow(b.grid, 19, 3, 4, 5, 6)
	b.Spawn()

	b.HardDrop()

	assert.Equal(t, Stats{Score: 136, Lines: 10, Level: 2}, b.Stats())
	assert.Equal(t, 750*time.Millisecond, b.FallSpeed())
}

func TestNoClearLeavesLevelAndSpeed(t *testing.T) {
	b := newTestBoard(&seqRand{ints: []int{0}}, Events{})
	b.Spawn()
	b.HardDrop()
	assert.Equal(t, 1, b.Stats().Level)
	assert.Equal(t, 0, b.Stats().Lines)
	assert.Equal(t, 800*time.Millisecond, b.FallSpeed())
}

func TestSoftDropScoresEvenWhenBlocked(t *testing.T) {
	b := newTestBoard(&seqRand{ints: []int{0}}, Events{})
	b.Spawn()
	require.True(t, b.SoftDrop())
	assert.Equal(t, 1, b.Stats().Score)

	for b.Translate(0, 1) {
	}
	before, _ := b.Active()
	assert.False(t, b.SoftDrop())
	after, ok := b.Active()
	require.True(t, ok, "soft drop never locks")
	assert.Equal(t, before.Pos, after.Pos)
	assert.Equal(t, 2, b.Stats().Score)
	assert.Equal(t, 0, b.grid.LockedCount())
}

func TestHold(t *testing.T) {
	// queue fill draws I, O, T; spawning I draws J; spawning O draws I.
	b := newTestBoard(&seqRand{ints: []int{0, 3, 5, 1}}, Events{})
	b.Spawn()

	require.True(t, b.Hold())
	assert.Equal(t, KindI, b.Held())
	p, _ := b.Active()
	assert.Equal(t, KindO, p.Kind)
	assert.False(t, b.CanHold())
	assert.False(t, b.Hold(), "second hold before lock")

	b.HardDrop()
	assert.True(t, b.CanHold())
	p, _ = b.Active()
	require.Equal(t, KindT, p.Kind)

	b.Translate(-2, 0)
	next := b.Next()
	require.True(t, b.Hold())
	assert.Equal(t, next, b.Next(), "swap leaves the preview alone")
	p, _ = b.Active()
	assert.Equal(t, KindI, p.Kind)
	assert.Equal(t, core.Point{X: 3, Y: 0}, p.Pos)
	assert.Equal(t, 0, p.Rotation)
	assert.True(t, KindI.Shape().Equal(p.Shape))
	assert.Equal(t, KindT, b.Held())
}

func TestReceiveGarbage(t *testing.T) {
	b := newTestBoard(&seqRand{ints: []int{0, 0, 0, 0, 7}}, Events{})
	b.Spawn()
	before, _ := b.Active()

	b.ReceiveGarbage(2)

	assert.Equal(t, 18, b.grid.LockedCount())
	assert.True(t, b.grid.At(7, 19).Empty())
	assert.True(t, b.grid.At(7, 18).Empty())
	after, _ := b.Active()
	assert.Equal(t, before.Pos, after.Pos, "active piece is not relocated")
}

func TestGameOverOnSpawnCollision(t *testing.T) {
	var overs []int
	b := newTestBoard(&seqRand{ints: []int{0}}, Events{OnGameOver: func(score int) { overs = append(overs, score) }})
	b.stats.Score = 420
	b.grid.Set(4, 1, Cell{Kind: KindGarbage, Locked: true})

	assert.False(t, b.Spawn())
	assert.True(t, b.IsOver())
	assert.False(t, b.Spawn())
	assert.Equal(t, []int{420}, overs)

	assert.False(t, b.Translate(-1, 0))
	assert.Equal(t, 0, b.HardDrop())
	locked := b.grid.LockedCount()
	b.ReceiveGarbage(3)
	assert.Equal(t, locked, b.grid.LockedCount())
}

func TestResetRestoresInitialState(t *testing.T) {
	b := newTestBoard(rand.New(rand.NewSource(1)), Events{})
	b.Spawn()
	b.stats = Stats{Score: 500, Lines: 30, Level: 4}
	b.fallSpeed = 650 * time.Millisecond
	b.HardDrop()
	b.Hold()

	b.Reset()

	assert.Equal(t, Stats{Level: 1}, b.Stats())
	assert.Equal(t, 800*time.Millisecond, b.FallSpeed())
	assert.Equal(t, 0, b.grid.LockedCount())
	assert.Equal(t, KindEmpty, b.Held())
	assert.True(t, b.CanHold())
	assert.False(t, b.HasActive())
	assert.False(t, b.IsOver())
}

func TestRenderCellsOverlay(t *testing.T) {
	b := newTestBoard(&seqRand{ints: []int{0}}, Events{})
	b.Spawn()
	cells := b.RenderCells()

	for x := 3; x <= 6; x++ {
		assert.Equal(t, Cell{Kind: KindI}, cells[1][x])
		assert.Equal(t, Cell{Kind: KindI, Ghost: true}, cells[19][x])
	}
	assert.Equal(t, 0, b.grid.LockedCount())
	assert.True(t, b.grid.At(3, 19).Empty(), "settled grid untouched")
}

func TestSnapshotsAreIndependent(t *testing.T) {
	b := newTestBoard(&seqRand{ints: []int{0}}, Events{})
	b.Spawn()
	s := b.Snapshot()
	s.Cells[0][0] = Cell{Kind: KindZ, Locked: true}
	s.Active.Pos.X = 9
	p, _ := b.Active()
	assert.Equal(t, 3, p.Pos.X)
	assert.True(t, b.grid.At(0, 0).Empty())
}

func TestSameSeedSameGame(t *testing.T) {
	play := func() Snapshot {
		rng := rand.New(rand.NewSource(99))
		b := newTestBoard(rng, Events{})
		b.Spawn()
		actions := rand.New(rand.NewSource(7))
		for i := 0; i < 500 && !b.IsOver(); i++ {
			b.Apply(core.Action(actions.Intn(6) + int(core.ActionLeft)))
			if i%5 == 0 && !b.Translate(0, 1) {
				b.Lock()
			}
		}
		return b.Snapshot()
	}
	assert.Equal(t, play(), play())
}

func TestRandomPlayKeepsBoardConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := newTestBoard(rng, Events{})
	b.Spawn()
	actions := rand.New(rand.NewSource(3))
	lastScore := 0

	for i := 0; i < 5000; i++ {
		if b.IsOver() {
			b.Reset()
			b.Spawn()
			lastScore = 0
			continue
		}
		switch n := actions.Intn(10); {
		case n < 7:
			b.Apply(core.Action(actions.Intn(6) + int(core.ActionLeft)))
		case n < 9:
			if !b.Translate(0, 1) {
				b.Lock()
			}
		default:
			b.ReceiveGarbage(actions.Intn(3))
		}

		st := b.Stats()
		require.GreaterOrEqual(t, st.Score, lastScore)
		lastScore = st.Score
		require.Equal(t, DefaultScoring().LevelFor(st.Lines), st.Level)
		require.Len(t, b.Next(), DefaultQueueLen)
		for y := 0; y < b.grid.Height(); y++ {
			require.False(t, b.grid.RowFull(y), "full row %d after step %d", y, i)
		}
		if !b.IsOver() {
			p, ok := b.Active()
			require.True(t, ok)
			require.GreaterOrEqual(t, p.Rotation, 0)
			require.Less(t, p.Rotation, 4)
		}
	}
}
