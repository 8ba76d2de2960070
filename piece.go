package tetris

import (
	"errors"
	"fmt"
	"math/rand"
)

type Piece byte

const (
	PieceT Piece = 'T'
	PieceO Piece = 'O'
	PieceL Piece = 'L'
	PieceJ Piece = 'J'
	PieceI Piece = 'I'
	PieceS Piece = 'S'
	PieceZ Piece = 'Z'
)

// Pieces is the spawn alphabet.
var Pieces = []Piece{PieceT, PieceJ, PieceL, PieceO, PieceS, PieceZ, PieceI}

var ErrUnknownPiece = errors.New("unknown piece")

var pieceTemplates = map[Piece]Matrix{
	PieceT: {
		{0, 0, 0},
		{1, 1, 1},
		{0, 1, 0},
	},
	PieceO: {
		{2, 2},
		{2, 2},
	},
	PieceL: {
		{0, 3, 0},
		{0, 3, 0},
		{0, 3, 3},
	},
	PieceJ: {
		{0, 4, 0},
		{0, 4, 0},
		{4, 4, 0},
	},
	PieceI: {
		{0, 5, 0, 0},
		{0, 5, 0, 0},
		{0, 5, 0, 0},
		{0, 5, 0, 0},
	},
	PieceS: {
		{0, 6, 6},
		{6, 6, 0},
		{0, 0, 0},
	},
	PieceZ: {
		{7, 7, 0},
		{0, 7, 7},
		{0, 0, 0},
	},
}

var pieceCells = map[Piece]Cell{
	PieceT: 1,
	PieceO: 2,
	PieceL: 3,
	PieceJ: 4,
	PieceI: 5,
	PieceS: 6,
	PieceZ: 7,
}

func ParsePiece(s string) (Piece, error) {
	if len(s) == 1 {
		if p := Piece(s[0]); p.Valid() {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPiece, s)
}

func (p Piece) Valid() bool {
	_, ok := pieceTemplates[p]
	return ok
}

// Matrix returns a fresh copy of the piece shape. Rotating it never affects
// later spawns of the same piece.
func (p Piece) Matrix() Matrix {
	return pieceTemplates[p].Clone()
}

func (p Piece) Cell() Cell {
	return pieceCells[p]
}

func (p Piece) String() string {
	if !p.Valid() {
		return "none"
	}
	return string(p)
}

type PieceGetter interface {
	Next() Piece
}

type RandomGetter struct {
	randomizer *rand.Rand
	pieces     []Piece
}

func NewRandomGetter(seed int64) *RandomGetter {
	return &RandomGetter{
		randomizer: rand.New(rand.NewSource(seed)),
		pieces:     Pieces,
	}
}

func (r *RandomGetter) Next() Piece {
	return r.pieces[r.randomizer.Intn(len(r.pieces))]
}

// QueueGetter hands out pushed pieces in order. Once the queue is drained it
// falls back to the given getter, or to PieceO when there is none.
type QueueGetter struct {
	queue    []Piece
	fallback PieceGetter
}

func NewQueueGetter(fallback PieceGetter) *QueueGetter {
	return &QueueGetter{queue: make([]Piece, 0), fallback: fallback}
}

func (q *QueueGetter) Next() Piece {
	if len(q.queue) == 0 {
		if q.fallback == nil {
			return PieceO
		}
		return q.fallback.Next()
	}
	p := q.queue[0]
	q.queue = q.queue[1:]
	return p
}

func (q *QueueGetter) Push(p ...Piece) {
	q.queue = append(q.queue, p...)
}

func (q *QueueGetter) Len() int {
	return len(q.queue)
}
