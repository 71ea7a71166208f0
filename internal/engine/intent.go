package engine

import (
	"sync"

	"github.com/vovakirdan/blockfall/internal/core"
)

// IntentQueue buffers piece-control actions from any goroutine until the
// loop drains them at the start of its next frame.
type IntentQueue struct {
	mu      sync.Mutex
	pending []core.Action
}

// Push enqueues an action. ActionNone is dropped.
func (q *IntentQueue) Push(a core.Action) {
	if a == core.ActionNone {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, a)
	q.mu.Unlock()
}

// PushFrame enqueues every action of an input frame in order.
func (q *IntentQueue) PushFrame(f core.InputFrame) {
	for _, a := range f.Actions {
		q.Push(a)
	}
}

// Drain returns the buffered actions in arrival order and empties the queue.
func (q *IntentQueue) Drain() []core.Action {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of buffered actions.
func (q *IntentQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
