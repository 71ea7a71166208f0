package engine

import "time"

// Loop advances one board on elapsed time. Each Frame drains queued intents,
// applies gravity against the board's fall speed and returns a fresh snapshot.
type Loop struct {
	board   *Board
	intents *IntentQueue
	acc     time.Duration
	running bool
}

// NewLoop wraps a board. The loop starts stopped.
func NewLoop(b *Board) *Loop {
	return &Loop{board: b, intents: &IntentQueue{}}
}

// Board returns the driven board.
func (l *Loop) Board() *Board { return l.board }

// Intents returns the queue producers push actions onto.
func (l *Loop) Intents() *IntentQueue { return l.intents }

// Start activates the loop, spawning a piece if none is falling.
func (l *Loop) Start() {
	if !l.board.HasActive() && !l.board.IsOver() {
		l.board.Spawn()
	}
	l.running = true
}

// Stop deactivates the loop. The accumulated time is kept so a paused game
// resumes where gravity left off.
func (l *Loop) Stop() {
	l.running = false
}

// Running reports whether the loop is active.
func (l *Loop) Running() bool { return l.running }

// Accumulated returns the gravity time banked since the last drop.
func (l *Loop) Accumulated() time.Duration { return l.acc }

// Reset restores the board, clears the accumulator and discards pending intents.
func (l *Loop) Reset() {
	l.board.Reset()
	l.acc = 0
	l.intents.Drain()
}

// Frame advances the loop by dt. While stopped or over only a snapshot is
// produced and queued intents are discarded.
func (l *Loop) Frame(dt time.Duration) Snapshot {
	intents := l.intents.Drain()
	if !l.running || l.board.IsOver() {
		return l.board.Snapshot()
	}
	for _, a := range intents {
		if l.board.IsOver() {
			break
		}
		l.board.Apply(a)
	}
	if !l.board.IsOver() {
		l.acc += dt
		if l.acc > l.board.FallSpeed() {
			l.acc = 0
			if !l.board.Translate(0, 1) {
				l.board.Lock()
			}
		}
	}
	return l.board.Snapshot()
}
