package engine

import (
	"strings"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Cell is one square of the board.
// Locked cells are settled and take part in collision; Ghost marks the
// landing preview in a renderable grid and never appears in the settled grid.
type Cell struct {
	Kind   Kind
	Locked bool
	Ghost  bool
}

// Empty reports whether nothing occupies the cell.
func (c Cell) Empty() bool {
	return c.Kind == KindEmpty
}

// Grid is the settled playfield, height rows of width cells.
type Grid struct {
	width  int
	height int
	rows   [][]Cell
}

// NewGrid returns an empty grid.
func NewGrid(width, height int) *Grid {
	g := &Grid{width: width, height: height, rows: make([][]Cell, height)}
	for y := range g.rows {
		g.rows[y] = emptyRow(width)
	}
	return g
}

func emptyRow(width int) []Cell {
	return make([]Cell, width)
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at (x, y), or an empty cell when out of bounds.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Cell{}
	}
	return g.rows[y][x]
}

// Set writes a cell; out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	g.rows[y][x] = c
}

// RowFull reports whether every cell of row y is locked.
func (g *Grid) RowFull(y int) bool {
	if y < 0 || y >= g.height {
		return false
	}
	for _, c := range g.rows[y] {
		if !c.Locked {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, rows: make([][]Cell, g.height)}
	for y := range g.rows {
		c.rows[y] = make([]Cell, g.width)
		copy(c.rows[y], g.rows[y])
	}
	return c
}

// Cells returns a copy of the grid contents indexed [row][col].
func (g *Grid) Cells() [][]Cell {
	return g.Clone().rows
}

// LockedCount returns the number of locked cells on the grid.
func (g *Grid) LockedCount() int {
	n := 0
	for _, row := range g.rows {
		for _, c := range row {
			if c.Locked {
				n++
			}
		}
	}
	return n
}

// String renders the grid with kind tags, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	for y, row := range g.rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			sb.WriteString(c.Kind.String())
		}
	}
	return sb.String()
}

// Collides reports whether shape placed with its top-left at pos overlaps a
// wall, the floor, or a locked cell. Cells above the top edge (negative rows)
// only check the side walls.
func Collides(g *Grid, shape Shape, pos core.Point) bool {
	hit := false
	shape.Each(func(dx, dy int) {
		if hit {
			return
		}
		x, y := pos.X+dx, pos.Y+dy
		if x < 0 || x >= g.width || y >= g.height {
			hit = true
			return
		}
		if y >= 0 && g.rows[y][x].Locked {
			hit = true
		}
	})
	return hit
}

// LockShape stamps shape into the grid as locked cells of kind, removes every
// full row, shifts the remaining rows down and tops the grid up with empty rows.
// Stamped cells with negative rows are dropped. Returns the number of rows cleared.
func LockShape(g *Grid, shape Shape, pos core.Point, kind Kind) int {
	shape.Each(func(dx, dy int) {
		x, y := pos.X+dx, pos.Y+dy
		if y < 0 || !g.InBounds(x, y) {
			return
		}
		g.rows[y][x] = Cell{Kind: kind, Locked: true}
	})
	return g.clearFull()
}

func (g *Grid) clearFull() int {
	kept := make([][]Cell, 0, g.height)
	for y := range g.rows {
		if !g.RowFull(y) {
			kept = append(kept, g.rows[y])
		}
	}
	cleared := g.height - len(kept)
	if cleared == 0 {
		return 0
	}
	rows := make([][]Cell, 0, g.height)
	for i := 0; i < cleared; i++ {
		rows = append(rows, emptyRow(g.width))
	}
	g.rows = append(rows, kept...)
	return cleared
}

// GhostRow returns the largest row at which shape still fits when dropped
// straight down from pos. Returns pos.Y when the piece cannot move.
func GhostRow(g *Grid, shape Shape, pos core.Point) int {
	y := pos.Y
	for !Collides(g, shape, core.Point{X: pos.X, Y: y + 1}) {
		y++
	}
	return y
}

// InjectGarbage removes the top n rows and appends n locked garbage rows at
// the bottom, each filled except for the hole column. n is clamped to the
// grid height; non-positive n is a no-op.
func InjectGarbage(g *Grid, n, hole int) {
	if n <= 0 {
		return
	}
	if n > g.height {
		n = g.height
	}
	rows := make([][]Cell, 0, g.height)
	rows = append(rows, g.rows[n:]...)
	for i := 0; i < n; i++ {
		row := emptyRow(g.width)
		for x := range row {
			if x != hole {
				row[x] = Cell{Kind: KindGarbage, Locked: true}
			}
		}
		rows = append(rows, row)
	}
	g.rows = rows
}
