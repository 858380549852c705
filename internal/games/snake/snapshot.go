package snake

import "github.com/vovakirdan/turn-arcade/internal/engine"

// Snapshot captures the comparable part of the game for determinism tests
// and replay checks.
type Snapshot struct {
	Moves    int
	Score    int
	SnakeLen int
	Head     engine.Point
	Dir      engine.Direction
	Food     engine.Point
	Status   engine.Status
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.state
	var head engine.Point
	if len(s.Body) > 0 {
		head = s.Body[0]
	}
	return Snapshot{
		Moves:    len(s.History),
		Score:    s.Score[engine.Player1],
		SnakeLen: len(s.Body),
		Head:     head,
		Dir:      s.Direction,
		Food:     s.Food,
		Status:   s.Status,
	}
}

// Replay resets a fresh game with cfg and applies the moves in order,
// stopping at the first terminal result.
func Replay(cfg engine.Config, moves []engine.Move) (*Game, engine.Result) {
	g := &Game{}
	g.Reset(cfg)
	var last engine.Result
	for _, m := range moves {
		last = g.ApplyMove(m)
		if last.Outcome == engine.Terminal {
			break
		}
	}
	return g, last
}
