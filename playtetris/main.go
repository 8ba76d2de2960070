package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/JoelOtter/termloop"
	"github.com/jauhararifin/tetris/v2"
	"go.uber.org/zap"
)

func main() {
	width := flag.Int("width", 12, "arena width")
	height := flag.Int("height", 20, "arena height")
	interval := flag.Duration("interval", tetris.DefaultDropInterval, "time between automatic drops")
	seed := flag.Int64("seed", time.Now().UnixNano(), "piece randomizer seed")
	logPath := flag.String("log", "", "write debug logs to this file")
	flag.Parse()

	logger, err := newLogger(*logPath)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	game := termloop.NewGame()
	level := termloop.NewBaseLevel(termloop.Cell{})
	boardEntity := NewBoardPlayer(0, 0, logger,
		tetris.WithSize(*width, *height),
		tetris.WithDropInterval(*interval),
		tetris.WithGetter(tetris.NewRandomGetter(*seed)),
	)
	level.AddEntity(boardEntity)
	game.Screen().SetLevel(level)
	game.Start()
}

func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("cannot build logger for %s: %w", path, err)
	}
	return logger, nil
}

var cellColors = []termloop.Attr{
	termloop.ColorDefault,
	termloop.ColorMagenta,
	termloop.ColorCyan,
	termloop.ColorGreen,
	termloop.ColorBlue,
	termloop.ColorRed,
	termloop.ColorYellow,
	termloop.ColorWhite,
}

type boardPlayer struct {
	loop                *tetris.Loop
	start               time.Time
	state               tetris.State
	x, y, width, height int

	scoreText *termloop.Text
}

func NewBoardPlayer(x, y int, logger *zap.Logger, options ...tetris.BoardOption) *boardPlayer {
	b := &boardPlayer{
		x:     x,
		y:     y,
		start: time.Now(),
	}

	board := tetris.NewBoard(append(options,
		tetris.WithLogger(logger),
		tetris.WithOverflowHandler(tetris.OverflowHandlerFunc(func(score int) {
			logger.Info("arena reset", zap.Int("score", score))
		})),
	)...)
	b.loop = tetris.NewLoop(board, b)
	b.state = board.GetState()
	b.width = b.state.Grid.Width()
	b.height = b.state.Grid.Height()
	b.scoreText = termloop.NewText(x+b.width+3, y+8, "0", termloop.ColorWhite, termloop.ColorDefault)

	return b
}

func (b *boardPlayer) Render(state tetris.State) {
	b.state = state
}

func (b *boardPlayer) Tick(ev termloop.Event) {
	if ev.Type != termloop.EventKey {
		return
	}

	board := b.loop.Board()
	switch ev.Key {
	case termloop.KeyArrowLeft:
		board.Apply(tetris.ActionMoveLeft)
	case termloop.KeyArrowRight:
		board.Apply(tetris.ActionMoveRight)
	case termloop.KeyArrowDown:
		board.Apply(tetris.ActionSoftDrop)
	case termloop.KeyArrowUp:
		board.Apply(tetris.ActionRotateRight)
	case termloop.KeySpace:
		board.Apply(tetris.ActionHardDrop)
	}

	switch ev.Ch {
	case 'a':
		board.Apply(tetris.ActionMoveLeft)
	case 'd':
		board.Apply(tetris.ActionMoveRight)
	case 's':
		board.Apply(tetris.ActionSoftDrop)
	case 'c':
		board.Apply(tetris.ActionHold)
	case 'q':
		board.Apply(tetris.ActionRotateLeft)
	case 'e':
		board.Apply(tetris.ActionRotateRight)
	}
}

func (b *boardPlayer) Draw(s *termloop.Screen) {
	b.loop.Frame(time.Since(b.start))

	border := &termloop.Cell{Fg: termloop.ColorWhite, Bg: termloop.ColorBlack, Ch: '+'}
	for i := 0; i < b.width+2; i++ {
		s.RenderCell(b.x+i, b.y, border)
		s.RenderCell(b.x+i, b.y+b.height+1, border)
	}
	for i := 0; i < b.height+2; i++ {
		s.RenderCell(b.x, b.y+i, border)
		s.RenderCell(b.x+b.width+1, b.y+i, border)
	}

	for i := 0; i < 6; i++ {
		s.RenderCell(b.x+b.width+3+i, b.y, border)
		s.RenderCell(b.x+b.width+3+i, b.y+5, border)
		s.RenderCell(b.x+b.width+3, b.y+i, border)
		s.RenderCell(b.x+b.width+8, b.y+i, border)
	}

	b.scoreText.SetText(fmt.Sprintf("Score: %d", b.state.Score))
	b.scoreText.Draw(s)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			value := tetris.CellEmpty
			if y < b.state.Held.Height() && x < b.state.Held.Width() {
				value = b.state.Held[y][x]
			}
			s.RenderCell(b.x+b.width+4+x, b.y+1+y, cellFor(value))
		}
	}

	frame := b.loop.Board().Render()
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			s.RenderCell(b.x+1+x, b.y+1+y, cellFor(frame[y][x]))
		}
	}
}

func cellFor(value tetris.Cell) *termloop.Cell {
	if value == tetris.CellEmpty {
		return &termloop.Cell{Fg: termloop.ColorWhite, Bg: termloop.ColorBlack, Ch: ' '}
	}
	return &termloop.Cell{Fg: cellColors[value], Bg: termloop.ColorBlack, Ch: '#'}
}
