package engine

// seqRand replays fixed sequences, cycling when exhausted.
type seqRand struct {
	ints   []int
	floats []float64
	i, f   int
}

func (r *seqRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.i%len(r.ints)]
	r.i++
	return v % n
}

func (r *seqRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.f%len(r.floats)]
	r.f++
	return v
}

func newTestBoard(rng Rand, events Events) *Board {
	return NewBoard(Options{Rand: rng, Events: events})
}

// fillRow locks every cell of row y except the listed columns.
func fillRow(g *Grid, y int, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, x := range except {
		skip[x] = true
	}
	for x := 0; x < g.Width(); x++ {
		if !skip[x] {
			g.Set(x, y, Cell{Kind: KindGarbage, Locked: true})
		}
	}
}
