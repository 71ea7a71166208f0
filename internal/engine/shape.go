package engine

import "strings"

// Shape is a square occupancy matrix, indexed [row][col].
type Shape [][]bool

func parseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, ch := range row {
			s[y][x] = ch == '#'
		}
	}
	return s
}

// Width returns the number of columns of the matrix.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy of the matrix.
func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	for y := range s {
		c[y] = make([]bool, len(s[y]))
		copy(c[y], s[y])
	}
	return c
}

// Rotate returns the matrix rotated 90 degrees clockwise
// (transpose followed by reversing each row).
func (s Shape) Rotate() Shape {
	n := len(s)
	r := make(Shape, n)
	for i := range r {
		r[i] = make([]bool, n)
		for j := 0; j < n; j++ {
			r[i][j] = s[n-1-j][i]
		}
	}
	return r
}

// Equal reports whether two matrices have the same occupancy.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(o[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// Each calls fn with the (col, row) offset of every occupied cell.
func (s Shape) Each(fn func(dx, dy int)) {
	for y, row := range s {
		for x, on := range row {
			if on {
				fn(x, y)
			}
		}
	}
}

// String renders the matrix with '#' for occupied cells, one row per line.
func (s Shape) String() string {
	var sb strings.Builder
	for y, row := range s {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, on := range row {
			if on {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
