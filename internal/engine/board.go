package engine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
)

const (
	DefaultWidth    = 10
	DefaultHeight   = 20
	DefaultQueueLen = 3
)

// DefaultKicks are the horizontal offsets tried, in order, when a rotation collides.
var DefaultKicks = []int{0, -1, 1, -2, 2}

// Events are the outbound notifications of a board. Both hooks run
// synchronously on the goroutine that mutates the board.
type Events struct {
	// OnGameOver fires once per game, with the final score.
	OnGameOver func(score int)
	// OnClear fires after a lock that cleared at least one row.
	OnClear func(rows int)
}

// Options configure a board. Zero values take defaults: the preview holds
// at least DefaultQueueLen kinds and a nil Rand is seeded from the clock.
type Options struct {
	Width    int
	Height   int
	QueueLen int
	Kicks    []int
	Scoring  Scoring
	Rand     Rand
	Events   Events
}

func (o *Options) normalize() {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.QueueLen < DefaultQueueLen {
		o.QueueLen = DefaultQueueLen
	}
	if len(o.Kicks) == 0 {
		o.Kicks = DefaultKicks
	}
	if len(o.Scoring.Rewards) == 0 {
		o.Scoring = DefaultScoring()
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

// Piece is the falling piece: its kind, top-left position, rotation count
// (0-3) and current occupancy matrix.
type Piece struct {
	Kind     Kind
	Pos      core.Point
	Rotation int
	Shape    Shape
}

// Clone returns a deep copy of the piece.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}

// Board is one player's playfield together with its piece controller,
// preview queue, hold slot and statistics.
type Board struct {
	opts Options

	grid      *Grid
	active    *Piece
	queue     *Queue
	hold      Kind
	canHold   bool
	stats     Stats
	fallSpeed time.Duration
	over      bool
	notified  bool
}

// NewBoard returns a board in its initial state. No piece is active until
// Spawn is called, normally by the loop on activation.
func NewBoard(opts Options) *Board {
	opts.normalize()
	b := &Board{opts: opts}
	b.Reset()
	return b
}

// Reset clears the grid, refills the queue, empties the hold slot and
// restores the initial statistics and gravity.
func (b *Board) Reset() {
	b.grid = NewGrid(b.opts.Width, b.opts.Height)
	b.active = nil
	b.queue = NewQueue(b.opts.Rand, b.opts.QueueLen)
	b.hold = KindEmpty
	b.canHold = true
	b.stats = Stats{Level: 1}
	b.fallSpeed = b.opts.Scoring.FallSpeed(1)
	b.over = false
	b.notified = false
}

// Spawn takes the next kind from the queue and places it centered on row 0.
// If the fresh piece collides the board is over. Returns false in that case.
func (b *Board) Spawn() bool {
	if b.over {
		return false
	}
	b.place(b.queue.Next())
	b.canHold = true
	if Collides(b.grid, b.active.Shape, b.active.Pos) {
		b.gameOver()
		return false
	}
	return true
}

func (b *Board) place(k Kind) {
	shape := k.Shape()
	b.active = &Piece{
		Kind:  k,
		Pos:   core.Point{X: (b.opts.Width - shape.Width()) / 2, Y: 0},
		Shape: shape,
	}
}

func (b *Board) gameOver() {
	b.over = true
	if b.notified {
		return
	}
	b.notified = true
	if b.opts.Events.OnGameOver != nil {
		b.opts.Events.OnGameOver(b.stats.Score)
	}
}

func (b *Board) playable() bool {
	return b.active != nil && !b.over
}

// Translate moves the active piece by (dx, dy) if the target is free.
func (b *Board) Translate(dx, dy int) bool {
	if !b.playable() {
		return false
	}
	to := b.active.Pos.Add(dx, dy)
	if Collides(b.grid, b.active.Shape, to) {
		return false
	}
	b.active.Pos = to
	return true
}

// Rotate turns the active piece clockwise, trying each kick offset on the
// current row. The first placement that fits wins.
func (b *Board) Rotate() bool {
	if !b.playable() {
		return false
	}
	rotated := b.active.Shape.Rotate()
	for _, kick := range b.opts.Kicks {
		to := b.active.Pos.Add(kick, 0)
		if !Collides(b.grid, rotated, to) {
			b.active.Shape = rotated
			b.active.Pos = to
			b.active.Rotation = (b.active.Rotation + 1) % 4
			return true
		}
	}
	return false
}

// SoftDrop awards the soft-drop point and moves the piece down one row if
// it can. A blocked soft drop still scores and never locks.
func (b *Board) SoftDrop() bool {
	if !b.playable() {
		return false
	}
	b.stats.Score += b.opts.Scoring.SoftDropPoint
	return b.Translate(0, 1)
}

// HardDrop drops the piece to its resting row, awarding the hard-drop
// points per row, then locks it. Returns the number of rows fallen.
func (b *Board) HardDrop() int {
	if !b.playable() {
		return 0
	}
	rows := 0
	for b.Translate(0, 1) {
		rows++
		b.stats.Score += b.opts.Scoring.HardDropPoint
	}
	b.Lock()
	return rows
}

// Lock settles the active piece into the grid, clears full rows, updates the
// statistics and gravity, notifies OnClear and spawns the next piece.
func (b *Board) Lock() {
	if !b.playable() {
		return
	}
	cleared := LockShape(b.grid, b.active.Shape, b.active.Pos, b.active.Kind)
	b.active = nil
	if cleared > 0 {
		b.opts.Scoring.Apply(&b.stats, cleared)
		b.fallSpeed = b.opts.Scoring.FallSpeed(b.stats.Level)
		if b.opts.Events.OnClear != nil {
			b.opts.Events.OnClear(cleared)
		}
	}
	b.Spawn()
}

// Hold stashes the active piece. With an empty slot the next queued piece
// spawns; otherwise the held kind swaps in, re-centered on row 0 in spawn
// orientation. Allowed once per spawned piece.
func (b *Board) Hold() bool {
	if !b.playable() || !b.canHold {
		return false
	}
	current := b.active.Kind
	if b.hold == KindEmpty {
		b.hold = current
		b.Spawn()
	} else {
		held := b.hold
		b.hold = current
		b.place(held)
	}
	b.canHold = false
	return true
}

// ReceiveGarbage pushes n garbage rows in from the bottom, sharing one
// random hole column. Ignored once the board is over. The active piece
// keeps its position.
func (b *Board) ReceiveGarbage(n int) {
	if b.over || n <= 0 {
		return
	}
	InjectGarbage(b.grid, n, b.opts.Rand.Intn(b.opts.Width))
}

// Apply performs one piece-control action. Non-piece actions are ignored.
func (b *Board) Apply(a core.Action) bool {
	switch a {
	case core.ActionLeft:
		return b.Translate(-1, 0)
	case core.ActionRight:
		return b.Translate(1, 0)
	case core.ActionRotate:
		return b.Rotate()
	case core.ActionSoftDrop:
		return b.SoftDrop()
	case core.ActionHardDrop:
		ok := b.playable()
		b.HardDrop()
		return ok
	case core.ActionHold:
		return b.Hold()
	}
	return false
}

// Grid returns a copy of the settled grid.
func (b *Board) Grid() *Grid { return b.grid.Clone() }

// Active returns a copy of the falling piece, if any.
func (b *Board) Active() (Piece, bool) {
	if b.active == nil {
		return Piece{}, false
	}
	return b.active.Clone(), true
}

// HasActive reports whether a piece is falling.
func (b *Board) HasActive() bool { return b.active != nil }

// Stats returns score, lines and level.
func (b *Board) Stats() Stats { return b.stats }

// FallSpeed returns the current gravity interval.
func (b *Board) FallSpeed() time.Duration { return b.fallSpeed }

// IsOver reports whether the board has topped out.
func (b *Board) IsOver() bool { return b.over }

// Held returns the kind in the hold slot, KindEmpty when none.
func (b *Board) Held() Kind { return b.hold }

// CanHold reports whether hold is still available for the current piece.
func (b *Board) CanHold() bool { return b.canHold }

// Next returns the preview queue, head first.
func (b *Board) Next() []Kind { return b.queue.Peek() }

// Width returns the number of columns.
func (b *Board) Width() int { return b.opts.Width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.opts.Height }
