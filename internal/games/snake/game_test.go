package snake

import (
	"testing"

	"github.com/vovakirdan/turn-arcade/internal/engine"
)

// placeFood moves the food for a test and repaints the grid.
func placeFood(g *Game, p engine.Point) {
	g.state.Food = p
	g.paint()
}

func smallGame(w, h int) *Game {
	g := &Game{}
	g.Reset(engine.Config{Width: w, Height: h, Seed: 42})
	return g
}

func TestDeterminism(t *testing.T) {
	cfg := engine.Config{Width: 12, Height: 10, Seed: 12345}
	moves := []engine.Move{
		engine.Steer(engine.DirNone),
		engine.Steer(engine.DirDown),
		engine.Steer(engine.DirNone),
		engine.Steer(engine.DirLeft),
		engine.Steer(engine.DirLeft),
		engine.Steer(engine.DirUp),
		engine.Steer(engine.DirNone),
	}

	g1, _ := Replay(cfg, moves)
	g2, _ := Replay(cfg, moves)

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("Snapshot mismatch: %+v vs %+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestInitialState(t *testing.T) {
	g := New()
	s := g.State()

	if s.Status != engine.StatusInProgress {
		t.Fatalf("Expected in progress, got %v", s.Status)
	}
	if len(s.Body) != 1 || s.Body[0] != (engine.Point{X: 7, Y: 7}) {
		t.Errorf("Expected single segment at centre, got %v", s.Body)
	}
	if s.Direction != engine.DirRight {
		t.Errorf("Expected initial direction right, got %v", s.Direction)
	}
	if s.At(7, 7) != engine.SnakeHead {
		t.Errorf("Head not painted on grid")
	}
	if s.At(s.Food.X, s.Food.Y) != engine.Food {
		t.Errorf("Food not painted on grid")
	}
}

func TestReverseDirectionRejected(t *testing.T) {
	g := smallGame(9, 9)
	g.Reset(engine.Config{Width: 9, Height: 9, InitialLength: 3, Seed: 1})
	before := g.State()

	for i := 0; i < 3; i++ {
		res := g.ApplyMove(engine.Steer(engine.DirLeft))
		if res.Outcome != engine.Rejected {
			t.Fatalf("Expected reversal to be rejected, got %v", res.Outcome)
		}
	}

	after := g.State()
	if after.Direction != engine.DirRight {
		t.Errorf("Direction changed to %v", after.Direction)
	}
	if after.Body[0] != before.Body[0] || len(after.History) != 0 {
		t.Errorf("Rejected move changed the state")
	}

	// a perpendicular turn is fine
	res := g.ApplyMove(engine.Steer(engine.DirDown))
	if res.Outcome != engine.Accepted || res.State.Direction != engine.DirDown {
		t.Errorf("Expected turn down to be accepted, got %v (%v)", res.Outcome, res.Err)
	}
}

func TestWallEndsGame(t *testing.T) {
	g := smallGame(5, 5)
	placeFood(g, engine.Point{X: 0, Y: 0})

	// head starts at (2,2) heading right: (3,2), (4,2), then the wall
	for i := 0; i < 2; i++ {
		if res := g.ApplyMove(engine.Steer(engine.DirNone)); res.Outcome != engine.Accepted {
			t.Fatalf("Move %d: expected accepted, got %v (%v)", i, res.Outcome, res.Err)
		}
	}

	res := g.ApplyMove(engine.Steer(engine.DirNone))
	if res.Outcome != engine.Terminal {
		t.Fatalf("Expected terminal, got %v", res.Outcome)
	}
	if res.Err != engine.ErrOutOfBounds {
		t.Errorf("Expected out of bounds cause, got %v", res.Err)
	}
	if res.State.Status != engine.StatusGameOver {
		t.Errorf("Expected game over, got %v", res.State.Status)
	}

	for i := 0; i < 3; i++ {
		res = g.ApplyMove(engine.Steer(engine.DirUp))
		if res.Outcome != engine.Rejected || res.Err != engine.ErrGameAlreadyOver {
			t.Errorf("Expected game already over, got %v (%v)", res.Outcome, res.Err)
		}
	}
}

func TestFoodGrowsByOne(t *testing.T) {
	g := smallGame(10, 10)
	g.Reset(engine.Config{Width: 10, Height: 10, InitialLength: 3, Seed: 7})

	for i := 0; i < 3; i++ {
		before := g.State()
		head := before.Body[0]
		placeFood(g, engine.Point{X: head.X + 1, Y: head.Y})

		res := g.ApplyMove(engine.Steer(engine.DirRight))
		if res.Outcome != engine.Accepted {
			t.Fatalf("Step %d: expected accepted, got %v (%v)", i, res.Outcome, res.Err)
		}
		after := res.State

		if len(after.Body) != len(before.Body)+1 {
			t.Fatalf("Step %d: expected length %d, got %d", i, len(before.Body)+1, len(after.Body))
		}
		for j, seg := range before.Body {
			if after.Body[j+1] != seg {
				t.Errorf("Step %d: segment %d moved from %v to %v", i, j, seg, after.Body[j+1])
			}
		}
		if after.ScoreOf(engine.Player1) != before.ScoreOf(engine.Player1)+10 {
			t.Errorf("Step %d: expected +10 score, got %d", i, after.ScoreOf(engine.Player1))
		}
		if g.isSnakeAt(after.Food) {
			t.Errorf("Step %d: food respawned on the snake", i)
		}
	}
}

func TestPlainMoveKeepsLength(t *testing.T) {
	g := smallGame(10, 10)
	g.Reset(engine.Config{Width: 10, Height: 10, InitialLength: 3, Seed: 7})
	placeFood(g, engine.Point{X: 0, Y: 0})

	res := g.ApplyMove(engine.Steer(engine.DirDown))
	if len(res.State.Body) != 3 {
		t.Errorf("Expected length 3, got %d", len(res.State.Body))
	}
	if res.State.Body[0] != (engine.Point{X: 5, Y: 6}) {
		t.Errorf("Unexpected head %v", res.State.Body[0])
	}
}

func TestSelfCollision(t *testing.T) {
	g := smallGame(5, 5)
	g.state.Body = []engine.Point{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 3}, {X: 2, Y: 3}, {X: 1, Y: 3}}
	g.state.Direction = engine.DirLeft
	placeFood(g, engine.Point{X: 0, Y: 0})

	res := g.ApplyMove(engine.Steer(engine.DirDown))
	if res.Outcome != engine.Terminal || res.Err != ErrBitItself {
		t.Fatalf("Expected self collision, got %v (%v)", res.Outcome, res.Err)
	}
	if res.State.Status != engine.StatusGameOver {
		t.Errorf("Expected game over, got %v", res.State.Status)
	}
}

func TestFollowingTailIsAllowed(t *testing.T) {
	g := smallGame(5, 5)
	g.state.Body = []engine.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 2}}
	g.state.Direction = engine.DirLeft
	placeFood(g, engine.Point{X: 4, Y: 4})

	res := g.ApplyMove(engine.Steer(engine.DirDown))
	if res.Outcome != engine.Accepted {
		t.Fatalf("Expected move onto vacated tail cell, got %v (%v)", res.Outcome, res.Err)
	}
}

func TestFullBoardWins(t *testing.T) {
	g := smallGame(1, 2)
	s := g.State()
	if s.Food != (engine.Point{X: 0, Y: 0}) {
		t.Fatalf("Expected food in the only free cell, got %v", s.Food)
	}

	res := g.ApplyMove(engine.Steer(engine.DirUp))
	if res.Outcome != engine.Terminal {
		t.Fatalf("Expected terminal, got %v", res.Outcome)
	}
	if res.State.Status != engine.StatusWon || res.State.Winner != engine.Player1 {
		t.Errorf("Expected win, got %v", res.State.Status)
	}
	if res.State.Food != noFood {
		t.Errorf("Expected no food, got %v", res.State.Food)
	}
}

func TestNoOpponent(t *testing.T) {
	g := New()
	res := g.ChooseOpponentMove()
	if res.Err != engine.ErrNoOpponent {
		t.Errorf("Expected ErrNoOpponent, got %v", res.Err)
	}
}

func TestResetClearsScoreByDefault(t *testing.T) {
	g := smallGame(10, 10)
	head := g.State().Body[0]
	placeFood(g, engine.Point{X: head.X + 1, Y: head.Y})
	g.ApplyMove(engine.Steer(engine.DirNone))
	if g.State().ScoreOf(engine.Player1) != 10 {
		t.Fatalf("Expected score 10")
	}

	s := g.Reset(engine.Config{Width: 10, Height: 10})
	if s.ScoreOf(engine.Player1) != 0 || len(s.Body) != 1 || len(s.History) != 0 {
		t.Errorf("Reset did not clear the game: %+v", s)
	}

	placeFood(g, engine.Point{X: 6, Y: 5})
	g.ApplyMove(engine.Steer(engine.DirNone))
	s = g.Reset(engine.Config{Width: 10, Height: 10, ResetPreservesScore: true})
	if s.ScoreOf(engine.Player1) != 10 {
		t.Errorf("Expected preserved score 10, got %d", s.ScoreOf(engine.Player1))
	}
}
