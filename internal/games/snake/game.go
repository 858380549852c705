// Package snake implements the single-agent movement engine: a snake steered
// on a bounded grid, growing by one segment per food.
package snake

import (
	"errors"

	"github.com/vovakirdan/turn-arcade/internal/engine"
	"github.com/vovakirdan/turn-arcade/internal/registry"
)

// ErrBitItself is the cause reported when the head runs into the body.
var ErrBitItself = errors.New("snake: ran into itself")

// noFood marks the absence of food on a full board.
var noFood = engine.Point{X: -1, Y: -1}

// DefaultConfig is a 15x15 board, ten points per food, starting at length one.
func DefaultConfig() engine.Config {
	return engine.Config{Width: 15, Height: 15, FoodPoints: 10, InitialLength: 1}
}

// Game implements the Snake engine. The engine has no clock: every
// ApplyMove advances the snake exactly one cell.
type Game struct {
	cfg      engine.Config
	rng      engine.Rand
	injected bool
	state    engine.GameState
}

// New creates a game with the default config.
func New() *Game {
	g := &Game{}
	g.Reset(DefaultConfig())
	return g
}

// WithRand injects the random source used for food placement and respawns
// the food with it.
func (g *Game) WithRand(r engine.Rand) *Game {
	g.rng = r
	g.injected = true
	g.spawnFood()
	g.paint()
	return g
}

func init() {
	registry.Register(registry.Info{
		ID:       "snake",
		Title:    "Snake",
		Kind:     registry.KindMovement,
		Defaults: DefaultConfig(),
	}, func() engine.Engine {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Config returns the current configuration.
func (g *Game) Config() engine.Config {
	return g.cfg
}

// Reset places a fresh snake in the centre heading right and spawns food.
func (g *Game) Reset(cfg engine.Config) engine.GameState {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.FoodPoints <= 0 {
		cfg.FoodPoints = def.FoodPoints
	}
	if cfg.InitialLength <= 0 {
		cfg.InitialLength = def.InitialLength
	}
	cfg.Opponent = engine.OpponentNone
	g.cfg = cfg
	if !g.injected {
		g.rng = engine.NewRand(cfg.Seed)
	}

	score, round := engine.CarryScore(g.state, cfg.ResetPreservesScore)
	g.state = engine.GameState{
		Game:      "snake",
		Width:     cfg.Width,
		Height:    cfg.Height,
		Grid:      make([]engine.Cell, cfg.Width*cfg.Height),
		Active:    engine.Player1,
		Status:    engine.StatusInProgress,
		Score:     score,
		Round:     round,
		Direction: engine.DirRight,
	}

	g.initSnake()
	g.spawnFood()
	g.paint()
	return g.State()
}

// initSnake lays the body out to the left of the centre cell. The length is
// capped by the space available on that row.
func (g *Game) initSnake() {
	head := engine.Point{X: g.cfg.Width / 2, Y: g.cfg.Height / 2}
	length := min(g.cfg.InitialLength, head.X+1)

	body := make([]engine.Point, 0, length)
	for i := 0; i < length; i++ {
		body = append(body, engine.Point{X: head.X - i, Y: head.Y})
	}
	g.state.Body = body
}

// spawnFood places food on a random empty cell, or removes it when the
// board is full. Returns false in the latter case.
func (g *Game) spawnFood() bool {
	s := &g.state
	var free []engine.Point
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			p := engine.Point{X: x, Y: y}
			if !g.isSnakeAt(p) {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		s.Food = noFood
		return false
	}
	s.Food = free[g.rng.Intn(len(free))]
	return true
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p engine.Point) bool {
	for _, seg := range g.state.Body {
		if seg == p {
			return true
		}
	}
	return false
}

// paint rebuilds the grid from the body and food.
func (g *Game) paint() {
	s := &g.state
	for i := range s.Grid {
		s.Grid[i] = engine.Empty
	}
	if i := s.Index(s.Food); i >= 0 {
		s.Grid[i] = engine.Food
	}
	for n, seg := range s.Body {
		i := s.Index(seg)
		if i < 0 {
			continue
		}
		if n == 0 {
			s.Grid[i] = engine.SnakeHead
		} else {
			s.Grid[i] = engine.SnakeBody
		}
	}
}

// Abort ends the game without a winner.
func (g *Game) Abort() engine.GameState {
	engine.AbortState(&g.state)
	return g.State()
}

// State returns a snapshot of the game.
func (g *Game) State() engine.GameState {
	return g.state.Clone()
}

// ApplyMove steers and advances the snake by one cell. DirNone keeps the
// current heading. Reversing onto the neck is rejected without moving.
func (g *Game) ApplyMove(m engine.Move) engine.Result {
	s := &g.state
	m.Player = engine.Player1

	if s.Status.Terminal() {
		return engine.Reject(m, engine.ErrGameAlreadyOver, g.State())
	}

	dir := m.Dir
	switch {
	case dir == engine.DirNone:
		dir = s.Direction
	case dir < engine.DirUp || dir > engine.DirRight:
		return engine.Rejectf(m, g.State(), engine.ErrInvalidMove, "unknown direction %d", int(dir))
	case dir == s.Direction.Opposite():
		return engine.Rejectf(m, g.State(), engine.ErrInvalidMove, "cannot reverse from %s to %s", s.Direction, dir)
	}
	m.Dir = dir
	s.Direction = dir
	s.History = append(s.History, m)

	cause := g.advance()
	g.paint()
	return engine.Settle(m, g.State(), cause)
}

// advance moves the snake one cell in the current direction and returns the
// cause of death, if any.
func (g *Game) advance() error {
	s := &g.state
	if len(s.Body) == 0 {
		return nil
	}

	dx, dy := s.Direction.Delta()
	head := engine.Point{X: s.Body[0].X + dx, Y: s.Body[0].Y + dy}

	if s.Index(head) < 0 {
		s.Status = engine.StatusGameOver
		return engine.ErrOutOfBounds
	}

	eating := head == s.Food

	// The tail vacates its cell this move unless the snake is growing.
	checkLen := len(s.Body)
	if !eating {
		checkLen--
	}
	for _, seg := range s.Body[:checkLen] {
		if seg == head {
			s.Status = engine.StatusGameOver
			return ErrBitItself
		}
	}

	s.Body = append([]engine.Point{head}, s.Body...)

	if !eating {
		s.Body = s.Body[:len(s.Body)-1]
		return nil
	}

	s.Score[engine.Player1] += g.cfg.FoodPoints
	if !g.spawnFood() {
		s.Status = engine.StatusWon
		s.Winner = engine.Player1
	}
	return nil
}

// ChooseOpponentMove always fails: snake has no opponent.
func (g *Game) ChooseOpponentMove() engine.Result {
	m := engine.Move{Player: engine.Player2, Cell: -1}
	if g.state.Status.Terminal() {
		return engine.Reject(m, engine.ErrGameAlreadyOver, g.State())
	}
	return engine.Reject(m, engine.ErrNoOpponent, g.State())
}
