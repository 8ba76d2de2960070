package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPieceTemplates(t *testing.T) {
	require.Len(t, Pieces, 7)

	seen := map[Cell]bool{}
	for _, p := range Pieces {
		m := p.Matrix()
		require.Equal(t, m.Width(), m.Height(), "piece %s must be square", p)
		assert.GreaterOrEqual(t, m.Width(), 2)
		assert.LessOrEqual(t, m.Width(), 4)

		filled := 0
		for _, row := range m {
			for _, value := range row {
				if value != CellEmpty {
					assert.Equal(t, p.Cell(), value, "piece %s", p)
					filled++
				}
			}
		}
		assert.Equal(t, 4, filled, "piece %s", p)
		assert.False(t, seen[p.Cell()], "identity %d reused", p.Cell())
		seen[p.Cell()] = true
	}
}

func TestPieceMatrixIsACopy(t *testing.T) {
	m := PieceS.Matrix()
	m.Rotate(Clockwise)
	m[0][0] = 1
	assert.Equal(t, Matrix{
		{0, 6, 6},
		{6, 6, 0},
		{0, 0, 0},
	}, PieceS.Matrix())
}

func TestParsePiece(t *testing.T) {
	for _, p := range Pieces {
		parsed, err := ParsePiece(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	for _, s := range []string{"", "X", "t", "TT"} {
		_, err := ParsePiece(s)
		assert.ErrorIs(t, err, ErrUnknownPiece, "input %q", s)
	}

	assert.Equal(t, "none", Piece(0).String())
}

func TestRandomGetter(t *testing.T) {
	t.Run("same seed same sequence", func(t *testing.T) {
		a, b := NewRandomGetter(42), NewRandomGetter(42)
		for i := 0; i < 100; i++ {
			assert.Equal(t, a.Next(), b.Next())
		}
	})

	t.Run("draws every piece", func(t *testing.T) {
		g := NewRandomGetter(1)
		counts := map[Piece]int{}
		for i := 0; i < 7000; i++ {
			p := g.Next()
			require.True(t, p.Valid())
			counts[p]++
		}
		assert.Len(t, counts, 7)
		for p, n := range counts {
			assert.Greater(t, n, 700, "piece %s drawn %d times", p, n)
		}
	})
}

func TestQueueGetter(t *testing.T) {
	q := NewQueueGetter(nil)
	q.Push(PieceI, PieceT)
	q.Push(PieceZ)
	assert.Equal(t, 3, q.Len())

	assert.Equal(t, PieceI, q.Next())
	assert.Equal(t, PieceT, q.Next())
	assert.Equal(t, PieceZ, q.Next())
	assert.Equal(t, PieceO, q.Next())

	fallback := NewQueueGetter(nil)
	fallback.Push(PieceJ)
	q = NewQueueGetter(fallback)
	assert.Equal(t, PieceJ, q.Next())
}
