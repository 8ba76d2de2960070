package tetris

import (
	"context"
	"time"
)

type Renderer interface {
	Render(state State)
}

type RendererFunc func(state State)

func (f RendererFunc) Render(state State) {
	f(state)
}

// Loop drives a board from frames supplied by the host. It never schedules
// frames itself.
type Loop struct {
	board    *Board
	renderer Renderer
	start    time.Time
}

func NewLoop(board *Board, renderer Renderer) *Loop {
	return &Loop{board: board, renderer: renderer}
}

func (l *Loop) Board() *Board {
	return l.board
}

// Frame advances the board to now and hands the resulting state to the
// renderer, if any.
func (l *Loop) Frame(now time.Duration) {
	l.board.Tick(now)
	if l.renderer != nil {
		l.renderer.Render(l.board.GetState())
	}
}

// Run calls Frame for every frame received, measuring time from the first
// one. It returns nil when frames is closed and ctx.Err() when ctx ends.
func (l *Loop) Run(ctx context.Context, frames <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t, ok := <-frames:
			if !ok {
				return nil
			}
			if l.start.IsZero() {
				l.start = t
			}
			l.Frame(t.Sub(l.start))
		}
	}
}
