package engine

import "time"

// Snapshot is an immutable view of a board for rendering and comparison.
type Snapshot struct {
	// Cells is the renderable grid: settled cells, then the ghost preview,
	// then the active piece drawn as unlocked cells.
	Cells     [][]Cell
	Next      []Kind
	Hold      Kind
	CanHold   bool
	Stats     Stats
	FallSpeed time.Duration
	Over      bool
	Active    *Piece
}

// Snapshot captures the current board state.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Cells:     b.RenderCells(),
		Next:      b.queue.Peek(),
		Hold:      b.hold,
		CanHold:   b.canHold,
		Stats:     b.stats,
		FallSpeed: b.fallSpeed,
		Over:      b.over,
	}
	if b.active != nil {
		p := b.active.Clone()
		s.Active = &p
	}
	return s
}

// RenderCells returns the settled grid with the ghost and the active piece
// overlaid. The settled grid is not modified.
func (b *Board) RenderCells() [][]Cell {
	out := b.grid.Cells()
	if b.active == nil {
		return out
	}
	p := b.active
	if !b.over {
		ghostY := GhostRow(b.grid, p.Shape, p.Pos)
		p.Shape.Each(func(dx, dy int) {
			x, y := p.Pos.X+dx, ghostY+dy
			if b.grid.InBounds(x, y) && out[y][x].Empty() {
				out[y][x] = Cell{Kind: p.Kind, Ghost: true}
			}
		})
	}
	p.Shape.Each(func(dx, dy int) {
		x, y := p.Pos.X+dx, p.Pos.Y+dy
		if b.grid.InBounds(x, y) {
			out[y][x] = Cell{Kind: p.Kind}
		}
	})
	return out
}
