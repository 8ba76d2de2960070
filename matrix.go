package tetris

import "fmt"

// Cell is a single square of a matrix. Zero is empty, 1..7 identify the piece
// that filled it.
type Cell int

const CellEmpty Cell = 0

type Matrix [][]Cell

type Position struct {
	X, Y int
}

type Direction int

const (
	CounterClockwise Direction = -1
	Clockwise        Direction = 1
)

func NewMatrix(width, height int) Matrix {
	if width <= 0 || height <= 0 {
		panic(fmt.Errorf("matrix size must be positive, got %dx%d", width, height))
	}
	m := make(Matrix, height)
	for y := range m {
		m[y] = make([]Cell, width)
	}
	return m
}

func (m Matrix) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

func (m Matrix) Height() int {
	return len(m)
}

func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	c := make(Matrix, len(m))
	for y, row := range m {
		c[y] = make([]Cell, len(row))
		copy(c[y], row)
	}
	return c
}

func (m Matrix) Clear() {
	for y := range m {
		for x := range m[y] {
			m[y][x] = CellEmpty
		}
	}
}

// Merge writes the non-empty cells of piece into m at pos. It does not check
// bounds: only call it for a position Collides has accepted.
func (m Matrix) Merge(piece Matrix, pos Position) {
	for y, row := range piece {
		for x, value := range row {
			if value != CellEmpty {
				m[pos.Y+y][pos.X+x] = value
			}
		}
	}
}

// Collides reports whether piece placed at pos overlaps a filled cell of m or
// leaves it through the left, right or bottom edge. Cells above the first row
// never collide, so a piece may hang over the top while it spawns.
func (m Matrix) Collides(piece Matrix, pos Position) bool {
	for y, row := range piece {
		for x, value := range row {
			if value == CellEmpty {
				continue
			}
			gx, gy := pos.X+x, pos.Y+y
			if gx < 0 || gx >= m.Width() || gy >= m.Height() {
				return true
			}
			if gy < 0 {
				continue
			}
			if m[gy][gx] != CellEmpty {
				return true
			}
		}
	}
	return false
}

// Rotate turns a square matrix a quarter turn in place.
func (m Matrix) Rotate(dir Direction) {
	for y := range m {
		for x := 0; x < y; x++ {
			m[x][y], m[y][x] = m[y][x], m[x][y]
		}
	}

	if dir > 0 {
		for _, row := range m {
			reverseRow(row)
		}
		return
	}
	for i, j := 0, len(m)-1; i < j; i, j = i+1, j-1 {
		m[i], m[j] = m[j], m[i]
	}
}

func reverseRow(row []Cell) {
	for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
		row[i], row[j] = row[j], row[i]
	}
}
