package engine

// Rand is the randomness source a board and a bot draw from.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Queue is the fixed-length preview of upcoming piece kinds.
type Queue struct {
	kinds []Kind
	rng   Rand
}

// NewQueue fills a queue of length n with uniformly random kinds.
func NewQueue(rng Rand, n int) *Queue {
	if n < 1 {
		n = 1
	}
	q := &Queue{kinds: make([]Kind, 0, n), rng: rng}
	for i := 0; i < n; i++ {
		q.kinds = append(q.kinds, q.draw())
	}
	return q
}

func (q *Queue) draw() Kind {
	return PieceKinds[q.rng.Intn(len(PieceKinds))]
}

// Next removes the head of the queue, appends a fresh kind and returns the head.
func (q *Queue) Next() Kind {
	k := q.kinds[0]
	copy(q.kinds, q.kinds[1:])
	q.kinds[len(q.kinds)-1] = q.draw()
	return k
}

// Peek returns a copy of the queued kinds, head first.
func (q *Queue) Peek() []Kind {
	out := make([]Kind, len(q.kinds))
	copy(out, q.kinds)
	return out
}

// Len returns the preview length.
func (q *Queue) Len() int {
	return len(q.kinds)
}
