// Package rps implements rock-paper-scissors as a two-move round: Player1
// throws, then Player2 (a human or the computer) throws and the round resolves.
package rps

import (
	"github.com/vovakirdan/turn-arcade/internal/engine"
	"github.com/vovakirdan/turn-arcade/internal/registry"
)

// DefaultTargetScore is the number of round wins that takes the match.
const DefaultTargetScore = 5

// RoundResult describes a resolved round from Player1's side.
type RoundResult string

const (
	RoundWin  RoundResult = "win"
	RoundLose RoundResult = "lose"
	RoundTie  RoundResult = "tie"
)

// Judge resolves a pair of throws from Player1's perspective.
func Judge(p1, p2 engine.Choice) RoundResult {
	switch {
	case p1 == p2:
		return RoundTie
	case p1.Beats(p2):
		return RoundWin
	default:
		return RoundLose
	}
}

// DefaultConfig is a vs-computer match to five.
func DefaultConfig() engine.Config {
	return engine.Config{Opponent: engine.OpponentRandom, TargetScore: DefaultTargetScore}
}

// Game is the rock-paper-scissors engine.
type Game struct {
	cfg      engine.Config
	rng      engine.Rand
	injected bool
	pending  engine.Choice // Player1's hidden throw while Player2 decides
	last     RoundResult
	state    engine.GameState
}

// New creates a game with the default config.
func New() *Game {
	g := &Game{}
	g.Reset(DefaultConfig())
	return g
}

// WithRand injects the random source used for the computer's throws.
func (g *Game) WithRand(r engine.Rand) *Game {
	g.rng = r
	g.injected = true
	return g
}

func init() {
	registry.Register(registry.Info{
		ID:       "rps",
		Title:    "Rock Paper Scissors",
		Kind:     registry.KindChoice,
		Defaults: DefaultConfig(),
	}, func() engine.Engine {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "rps"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Rock Paper Scissors"
}

// Config returns the current configuration.
func (g *Game) Config() engine.Config {
	return g.cfg
}

// LastResult returns the outcome of the last resolved round, empty before the first.
func (g *Game) LastResult() RoundResult {
	return g.last
}

// Reset starts a new match. A negative TargetScore means endless; zero
// selects the default.
func (g *Game) Reset(cfg engine.Config) engine.GameState {
	if cfg.TargetScore == 0 {
		cfg.TargetScore = DefaultTargetScore
	}
	if cfg.Opponent == "" {
		cfg.Opponent = engine.OpponentRandom
	}
	g.cfg = cfg
	if !g.injected {
		g.rng = engine.NewRand(cfg.Seed)
	}

	score, round := engine.CarryScore(g.state, cfg.ResetPreservesScore)
	g.pending = engine.NoChoice
	g.last = ""
	g.state = engine.GameState{
		Game:   "rps",
		Active: engine.Player1,
		Status: engine.StatusInProgress,
		Score:  score,
		Round:  round,
	}
	return g.State()
}

// Abort ends the game without a winner.
func (g *Game) Abort() engine.GameState {
	engine.AbortState(&g.state)
	return g.State()
}

// State returns a snapshot. Player1's pending throw is never exposed.
func (g *Game) State() engine.GameState {
	return g.state.Clone()
}

// ApplyMove records a throw for the active player. A round is two moves:
// Player1's throw is held back and leaves Round unchanged, and Player2's
// throw resolves the round and advances Round by one. Play and
// session.Session.Apply drive both throws, so each of their calls is one
// full round.
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
	if !valid(m.Choice) {
		return engine.Rejectf(m, g.State(), engine.ErrInvalidMove, "unknown choice %d", int(m.Choice))
	}

	if m.Player == engine.Player1 {
		g.pending = m.Choice
		// keep the throw out of the visible history until the round resolves
		s.Active = engine.Player2
		return engine.Settle(engine.Move{Player: engine.Player1, Cell: -1}, g.State(), nil)
	}

	g.resolve(g.pending, m.Choice)
	return engine.Settle(m, g.State(), nil)
}

// resolve scores one round and checks the match target.
func (g *Game) resolve(p1, p2 engine.Choice) {
	s := &g.state
	s.History = append(s.History, engine.Throw(engine.Player1, p1), engine.Throw(engine.Player2, p2))
	s.LastChoices = [2]engine.Choice{p1, p2}
	s.Round++
	g.pending = engine.NoChoice

	g.last = Judge(p1, p2)
	switch g.last {
	case RoundWin:
		s.Score[engine.Player1]++
	case RoundLose:
		s.Score[engine.Player2]++
	}

	s.Active = engine.Player1
	if g.cfg.TargetScore <= 0 {
		return
	}
	for _, p := range []engine.Player{engine.Player1, engine.Player2} {
		if s.Score[p] >= g.cfg.TargetScore {
			s.Status = engine.StatusWon
			s.Winner = p
			return
		}
	}
}

// ChooseOpponentMove throws uniformly at random for Player2. Player1 must
// have thrown first.
func (g *Game) ChooseOpponentMove() engine.Result {
	m := engine.Move{Player: engine.Player2, Cell: -1}
	if g.state.Status.Terminal() {
		return engine.Reject(m, engine.ErrGameAlreadyOver, g.State())
	}
	if g.state.Active != engine.Player2 {
		return engine.Reject(m, engine.ErrNoOpponent, g.State())
	}
	m.Choice = engine.Choices[g.rng.Intn(len(engine.Choices))]
	return g.ApplyMove(m)
}

// Play runs a full round against the computer: Player1 throws c and the
// opponent answers immediately.
func (g *Game) Play(c engine.Choice) engine.Result {
	res := g.ApplyMove(engine.Throw(engine.Player1, c))
	if res.Outcome != engine.Accepted {
		return res
	}
	return g.ChooseOpponentMove()
}

func valid(c engine.Choice) bool {
	for _, v := range engine.Choices {
		if v == c {
			return true
		}
	}
	return false
}
