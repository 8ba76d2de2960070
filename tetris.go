// Package tetris implements the state of a falling-block puzzle: the arena,
// the active piece with its hold slot, and the timed drop. Rendering, input
// and frame scheduling belong to the host.
package tetris

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Action int

const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionSoftDrop
	ActionHardDrop
	ActionHold
	ActionRotateLeft
	ActionRotateRight
)

func (a Action) String() string {
	switch a {
	case ActionMoveLeft:
		return "move-left"
	case ActionMoveRight:
		return "move-right"
	case ActionSoftDrop:
		return "soft-drop"
	case ActionHardDrop:
		return "hard-drop"
	case ActionHold:
		return "hold"
	case ActionRotateLeft:
		return "rotate-left"
	case ActionRotateRight:
		return "rotate-right"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// OverflowHandler is notified after a spawn collided and the arena was
// cleared. The game keeps running.
type OverflowHandler interface {
	OnOverflow(score int)
}

type OverflowHandlerFunc func(score int)

func (f OverflowHandlerFunc) OnOverflow(score int) {
	f(score)
}

// State is a detached copy of the board. Held and HeldPiece are zero when the
// hold slot is empty.
type State struct {
	Grid      Matrix
	Current   Matrix
	Piece     Piece
	Position  Position
	Held      Matrix
	HeldPiece Piece
	CanHold   bool
	Score     int
}

type Board struct {
	id              string
	pieceGetter     PieceGetter
	overflowHandler OverflowHandler
	logger          *zap.Logger
	width, height   int
	dropInterval    time.Duration

	grid         Matrix
	current      Matrix
	currentPiece Piece
	pos          Position
	held         Matrix
	heldPiece    Piece
	canHold      bool
	score        int
	clock        *DropClock

	m *sync.Mutex
}

// MinBoardSize is the smallest width and height that fits every piece.
const MinBoardSize = 4

type BoardOption func(*Board)

func WithSize(width, height int) BoardOption {
	if width < MinBoardSize || height < MinBoardSize {
		panic(fmt.Errorf("minimal width x height is %dx%d", MinBoardSize, MinBoardSize))
	}
	return func(board *Board) {
		board.width = width
		board.height = height
	}
}

func WithGetter(pieceGetter PieceGetter) BoardOption {
	return func(board *Board) {
		board.pieceGetter = pieceGetter
	}
}

func WithDropInterval(interval time.Duration) BoardOption {
	if interval <= 0 {
		panic(fmt.Errorf("drop interval must be positive, got %v", interval))
	}
	return func(board *Board) {
		board.dropInterval = interval
	}
}

func WithLogger(logger *zap.Logger) BoardOption {
	return func(board *Board) {
		board.logger = logger
	}
}

func WithOverflowHandler(handler OverflowHandler) BoardOption {
	return func(board *Board) {
		board.overflowHandler = handler
	}
}

func WithID(id string) BoardOption {
	return func(board *Board) {
		board.id = id
	}
}

func NewBoard(options ...BoardOption) *Board {
	board := &Board{
		pieceGetter:  NewRandomGetter(time.Now().UnixNano()),
		logger:       zap.NewNop(),
		width:        12,
		height:       20,
		dropInterval: DefaultDropInterval,
		canHold:      true,
		m:            &sync.Mutex{},
	}
	for _, opt := range options {
		opt(board)
	}
	if board.id == "" {
		board.id = uuid.NewString()
	}
	board.logger = board.logger.With(zap.String("board_id", board.id))

	board.grid = NewMatrix(board.width, board.height)
	board.clock = NewDropClock(board.dropInterval)
	board.spawn()

	return board
}

func (b *Board) ID() string {
	return b.id
}

func (b *Board) Apply(action Action) {
	b.m.Lock()
	defer b.m.Unlock()

	switch action {
	case ActionMoveLeft:
		b.move(-1)
	case ActionMoveRight:
		b.move(1)
	case ActionSoftDrop:
		b.drop()
	case ActionHardDrop:
		b.hardDrop()
	case ActionHold:
		b.hold()
	case ActionRotateLeft:
		b.rotate(CounterClockwise)
	case ActionRotateRight:
		b.rotate(Clockwise)
	default:
		b.logger.Warn("ignoring unknown action", zap.Stringer("action", action))
	}
}

// Tick advances the drop clock to now, a host timestamp that only grows, and
// drops the active piece once the interval has passed.
func (b *Board) Tick(now time.Duration) {
	b.m.Lock()
	defer b.m.Unlock()

	if b.clock.Advance(now) {
		b.drop()
	}
}

func (b *Board) spawn() {
	b.currentPiece = b.pieceGetter.Next()
	b.current = b.currentPiece.Matrix()
	b.resetPosition()
	b.logger.Debug("piece spawned",
		zap.Stringer("piece", b.currentPiece),
		zap.Int("x", b.pos.X),
	)
	b.checkOverflow()
}

func (b *Board) resetPosition() {
	b.pos.Y = 0
	b.pos.X = b.width/2 - b.current.Width()/2
}

// checkOverflow clears the arena and the score when the active piece cannot
// be placed where it just appeared.
func (b *Board) checkOverflow() {
	if !b.grid.Collides(b.current, b.pos) {
		return
	}

	score := b.score
	b.grid.Clear()
	b.score = 0
	b.logger.Info("arena overflowed, clearing",
		zap.Stringer("piece", b.currentPiece),
		zap.Int("score", score),
	)
	if b.overflowHandler != nil {
		b.overflowHandler.OnOverflow(score)
	}
}

func (b *Board) move(dx int) {
	b.pos.X += dx
	if b.grid.Collides(b.current, b.pos) {
		b.pos.X -= dx
	}
}

func (b *Board) drop() {
	b.pos.Y++
	if b.grid.Collides(b.current, b.pos) {
		b.pos.Y--
		b.lock()
	}
	b.clock.Reset()
}

func (b *Board) hardDrop() {
	for !b.grid.Collides(b.current, b.pos) {
		b.pos.Y++
	}
	b.pos.Y--
	b.drop()
}

func (b *Board) lock() {
	b.grid.Merge(b.current, b.pos)
	b.logger.Debug("piece locked",
		zap.Stringer("piece", b.currentPiece),
		zap.Int("x", b.pos.X),
		zap.Int("y", b.pos.Y),
	)
	b.spawn()
	b.canHold = true
}

func (b *Board) hold() {
	if !b.canHold {
		return
	}

	if b.held == nil {
		b.held, b.heldPiece = b.current, b.currentPiece
		b.spawn()
	} else {
		b.current, b.held = b.held, b.current
		b.currentPiece, b.heldPiece = b.heldPiece, b.currentPiece
		// a swapped-in piece counts as a spawn
		b.resetPosition()
		b.checkOverflow()
	}
	b.canHold = false
	b.logger.Debug("piece held",
		zap.Stringer("held", b.heldPiece),
		zap.Stringer("piece", b.currentPiece),
	)
}

// rotate turns the active piece and, if it then collides, shifts it sideways
// by +1, -2, +3, ... until it fits. The rotation is undone once the shift
// would exceed the piece width.
func (b *Board) rotate(dir Direction) {
	x := b.pos.X
	offset := 1
	b.current.Rotate(dir)
	for b.grid.Collides(b.current, b.pos) {
		b.pos.X += offset
		if offset > 0 {
			offset = -(offset + 1)
		} else {
			offset = -(offset - 1)
		}
		if offset > b.current.Width() {
			b.current.Rotate(-dir)
			b.pos.X = x
			return
		}
	}
}

func (b *Board) GetState() State {
	b.m.Lock()
	defer b.m.Unlock()

	return State{
		Grid:      b.grid.Clone(),
		Current:   b.current.Clone(),
		Piece:     b.currentPiece,
		Position:  b.pos,
		Held:      b.held.Clone(),
		HeldPiece: b.heldPiece,
		CanHold:   b.canHold,
		Score:     b.score,
	}
}

// SetState replaces the board contents with a copy of state. The grid must
// match the board size and Current must be a square piece with at least one
// filled cell that fits the grid at Position.
func (b *Board) SetState(state State) {
	b.m.Lock()
	defer b.m.Unlock()

	if state.Grid.Width() != b.width || state.Grid.Height() != b.height {
		panic(fmt.Errorf("state grid is %dx%d, board is %dx%d",
			state.Grid.Width(), state.Grid.Height(), b.width, b.height))
	}
	if !isPieceShape(state.Current) {
		panic(fmt.Errorf("state piece must be a non-empty square matrix"))
	}
	if state.Grid.Collides(state.Current, state.Position) || state.Position.Y < 0 {
		panic(fmt.Errorf("state piece does not fit the grid at %+v", state.Position))
	}

	b.grid = state.Grid.Clone()
	b.current = state.Current.Clone()
	b.currentPiece = state.Piece
	b.pos = state.Position
	b.held = state.Held.Clone()
	b.heldPiece = state.HeldPiece
	b.canHold = state.CanHold
	b.score = state.Score
}

func isPieceShape(m Matrix) bool {
	if m.Height() == 0 {
		return false
	}
	filled := false
	for _, row := range m {
		if len(row) != m.Height() {
			return false
		}
		for _, value := range row {
			if value != CellEmpty {
				filled = true
			}
		}
	}
	return filled
}

// Render returns a fresh copy of the arena with the active piece drawn on top.
func (b *Board) Render() Matrix {
	b.m.Lock()
	defer b.m.Unlock()

	frame := b.grid.Clone()
	for y, row := range b.current {
		for x, value := range row {
			frameX := b.pos.X + x
			frameY := b.pos.Y + y
			if value != CellEmpty && frameX >= 0 && frameX < b.width && frameY >= 0 && frameY < b.height {
				frame[frameY][frameX] = value
			}
		}
	}

	return frame
}
