package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReward(t *testing.T) {
	s := DefaultScoring()
	tests := []struct{ rows, want int }{
		{0, 0}, {1, 100}, {2, 300}, {3, 500}, {4, 800}, {5, 800},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Reward(tt.rows), "rows=%d", tt.rows)
	}
}

func TestFallSpeed(t *testing.T) {
	s := DefaultScoring()
	assert.Equal(t, 800*time.Millisecond, s.FallSpeed(1))
	assert.Equal(t, 750*time.Millisecond, s.FallSpeed(2))
	assert.Equal(t, 100*time.Millisecond, s.FallSpeed(15))
	assert.Equal(t, 100*time.Millisecond, s.FallSpeed(40))
}

func TestApply(t *testing.T) {
	s := DefaultScoring()
	st := Stats{Score: 10, Lines: 20, Level: 3}
	s.Apply(&st, 2)
	assert.Equal(t, Stats{Score: 910, Lines: 22, Level: 3}, st)

	s.Apply(&st, 0)
	assert.Equal(t, Stats{Score: 910, Lines: 22, Level: 3}, st)
}

func TestQueueKeepsLength(t *testing.T) {
	q := NewQueue(&seqRand{ints: []int{0, 1, 2, 3}}, 3)
	assert.Equal(t, []Kind{KindI, KindJ, KindL}, q.Peek())
	assert.Equal(t, KindI, q.Next())
	assert.Equal(t, []Kind{KindJ, KindL, KindO}, q.Peek())
	assert.Equal(t, 3, q.Len())
}
