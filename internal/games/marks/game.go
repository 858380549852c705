// Package marks implements N-in-a-row mark placing games on a rectangular
// board: tic-tac-toe and gomoku share the same engine with different configs.
package marks

import (
	"github.com/vovakirdan/turn-arcade/internal/engine"
	"github.com/vovakirdan/turn-arcade/internal/registry"
)

// Game is the mark placing engine.
type Game struct {
	id       string
	title    string
	defaults engine.Config
	cfg      engine.Config
	rng      engine.Rand
	injected bool // rng supplied by the caller, survives Reset
	state    engine.GameState
}

// TicTacToeConfig is the classic 3x3 board, three in a row.
func TicTacToeConfig() engine.Config {
	return engine.Config{Width: 3, Height: 3, WinLength: 3, Opponent: engine.OpponentNone}
}

// GomokuConfig is a 9x9 board, five in a row.
func GomokuConfig() engine.Config {
	return engine.Config{Width: 9, Height: 9, WinLength: 5, Opponent: engine.OpponentNone}
}

// New creates a mark placing game with the given defaults and resets it.
func New(id, title string, defaults engine.Config) *Game {
	g := &Game{id: id, title: title, defaults: defaults}
	g.Reset(defaults)
	return g
}

// NewTicTacToe creates a tic-tac-toe game.
func NewTicTacToe() *Game {
	return New("tictactoe", "Tic-Tac-Toe", TicTacToeConfig())
}

// NewGomoku creates a gomoku game.
func NewGomoku() *Game {
	return New("gomoku", "Gomoku", GomokuConfig())
}

// WithRand injects the random source used by the computer opponent.
func (g *Game) WithRand(r engine.Rand) *Game {
	g.rng = r
	g.injected = true
	return g
}

func init() {
	registry.Register(registry.Info{
		ID:       "tictactoe",
		Title:    "Tic-Tac-Toe",
		Kind:     registry.KindMarks,
		Defaults: TicTacToeConfig(),
	}, func() engine.Engine {
		return NewTicTacToe()
	})
	registry.Register(registry.Info{
		ID:       "gomoku",
		Title:    "Gomoku",
		Kind:     registry.KindMarks,
		Defaults: GomokuConfig(),
	}, func() engine.Engine {
		return NewGomoku()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Config returns the configuration of the current game.
func (g *Game) Config() engine.Config {
	return g.cfg
}

// Reset clears the board. Zero fields in cfg fall back to the game defaults.
func (g *Game) Reset(cfg engine.Config) engine.GameState {
	cfg = g.normalize(cfg)
	g.cfg = cfg
	if !g.injected {
		g.rng = engine.NewRand(cfg.Seed)
	}

	score, round := engine.CarryScore(g.state, cfg.ResetPreservesScore)
	g.state = engine.GameState{
		Game:   g.id,
		Width:  cfg.Width,
		Height: cfg.Height,
		Grid:   make([]engine.Cell, cfg.Width*cfg.Height),
		Active: engine.Player1,
		Status: engine.StatusInProgress,
		Score:  score,
		Round:  round,
	}
	return g.State()
}

// normalize fills unset fields from the defaults and clamps the win length
// to something that fits on the board.
func (g *Game) normalize(cfg engine.Config) engine.Config {
	if cfg.Width <= 0 {
		cfg.Width = g.defaults.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = g.defaults.Height
	}
	if cfg.WinLength <= 0 {
		cfg.WinLength = g.defaults.WinLength
	}
	if cfg.Opponent == "" {
		cfg.Opponent = g.defaults.Opponent
	}
	longest := max(cfg.Width, cfg.Height)
	cfg.WinLength = min(max(cfg.WinLength, 1), longest)
	return cfg
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

// ApplyMove places the active player's mark.
func (g *Game) ApplyMove(m engine.Move) engine.Result {
	s := &g.state

	if s.Status.Terminal() {
		return engine.Reject(m, engine.ErrGameAlreadyOver, g.State())
	}
	if m.Player == engine.NoPlayer {
		m.Player = s.Active
	}
	if m.Player != s.Active {
		return engine.Rejectf(m, g.State(), engine.ErrInvalidMove, "not %s's turn", m.Player)
	}
	if m.Cell < 0 || m.Cell >= len(s.Grid) {
		return engine.Rejectf(m, g.State(), engine.ErrOutOfBounds, "cell %d", m.Cell)
	}
	if s.Grid[m.Cell] != engine.Empty {
		return engine.Rejectf(m, g.State(), engine.ErrInvalidMove, "cell %d is occupied", m.Cell)
	}

	mark := engine.MarkOf(m.Player)
	s.Grid[m.Cell] = mark
	s.History = append(s.History, m)

	if line := lineThrough(s.Grid, s.Width, s.Height, g.cfg.WinLength, m.Cell); line != nil {
		s.Status = engine.StatusWon
		s.Winner = m.Player
		s.WinningLine = line
		s.Score[m.Player]++
		s.Round++
	} else if !hasEmpty(s.Grid) {
		s.Status = engine.StatusDraw
		s.Round++
	} else {
		s.Active = s.Active.Other()
	}

	return engine.Settle(m, g.State(), nil)
}

// ChooseOpponentMove plays for the active side using the configured strategy.
func (g *Game) ChooseOpponentMove() engine.Result {
	m := engine.Move{Player: g.state.Active, Cell: -1}
	if g.state.Status.Terminal() {
		return engine.Reject(m, engine.ErrGameAlreadyOver, g.State())
	}

	var cell int
	var ok bool
	if g.cfg.Opponent == engine.OpponentGreedy {
		cell, ok = greedyCell(g.State(), g.cfg.WinLength, g.rng)
	} else {
		cell, ok = randomCell(g.state, g.rng)
	}
	if !ok {
		return engine.Reject(m, engine.ErrNoOpponent, g.State())
	}

	m.Cell = cell
	return g.ApplyMove(m)
}

func hasEmpty(grid []engine.Cell) bool {
	for _, c := range grid {
		if c == engine.Empty {
			return true
		}
	}
	return false
}
