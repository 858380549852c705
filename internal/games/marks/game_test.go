package marks

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/turn-arcade/internal/engine"
)

// seqRand returns the queued values in order, modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func play(t *testing.T, g *Game, cells ...int) engine.Result {
	t.Helper()
	var res engine.Result
	for _, c := range cells {
		res = g.ApplyMove(engine.PlaceAt(c))
		require.True(t, res.Applied(), "move %d rejected: %v", c, res.Err)
	}
	return res
}

func TestTopRowWin(t *testing.T) {
	g := NewTicTacToe()

	moves := []int{0, 4, 1, 5, 2}
	for i, c := range moves {
		res := g.ApplyMove(engine.PlaceAt(c))
		if i < len(moves)-1 {
			require.Equal(t, engine.Accepted, res.Outcome, "move %d", i)
			require.Equal(t, engine.StatusInProgress, res.State.Status)
			continue
		}
		assert.Equal(t, engine.Terminal, res.Outcome)
		assert.Equal(t, engine.StatusWon, res.State.Status)
		assert.Equal(t, engine.Player1, res.State.Winner)
		assert.Equal(t, []int{0, 1, 2}, res.State.WinningLine)
		assert.Equal(t, 1, res.State.ScoreOf(engine.Player1))
	}
}

func TestPlayersAlternate(t *testing.T) {
	g := NewTicTacToe()
	assert.Equal(t, engine.Player1, g.State().Active)

	play(t, g, 4)
	s := g.State()
	assert.Equal(t, engine.Player2, s.Active)
	assert.Equal(t, engine.MarkX, s.Grid[4])

	play(t, g, 0)
	s = g.State()
	assert.Equal(t, engine.Player1, s.Active)
	assert.Equal(t, engine.MarkO, s.Grid[0])
	assert.Len(t, s.History, 2)
	assert.Equal(t, engine.Player2, s.History[1].Player)
}

func TestDrawOnlyWhenBoardFull(t *testing.T) {
	g := NewTicTacToe()
	moves := []int{0, 1, 2, 4, 3, 5, 7, 6, 8}

	for i, c := range moves {
		res := g.ApplyMove(engine.PlaceAt(c))
		require.True(t, res.Applied())
		if i < len(moves)-1 {
			require.Equal(t, engine.StatusInProgress, res.State.Status, "move %d", i)
		}
	}

	s := g.State()
	assert.Equal(t, engine.StatusDraw, s.Status)
	assert.Empty(t, s.EmptyCells())
	assert.Equal(t, 1, s.Round)
	assert.Equal(t, 0, s.ScoreOf(engine.Player1))
	assert.Equal(t, 0, s.ScoreOf(engine.Player2))
}

func TestOccupiedCellRejectedRepeatedly(t *testing.T) {
	g := NewTicTacToe()
	play(t, g, 4)
	before := g.State()

	for i := 0; i < 3; i++ {
		res := g.ApplyMove(engine.PlaceAt(4))
		assert.Equal(t, engine.Rejected, res.Outcome)
		assert.True(t, errors.Is(res.Err, engine.ErrInvalidMove))
		assert.Equal(t, before, g.State())
	}
}

func TestMoveAfterGameOver(t *testing.T) {
	g := NewTicTacToe()
	play(t, g, 0, 4, 1, 5, 2)
	before := g.State()

	for i := 0; i < 3; i++ {
		res := g.ApplyMove(engine.PlaceAt(8))
		assert.Equal(t, engine.Rejected, res.Outcome)
		assert.ErrorIs(t, res.Err, engine.ErrGameAlreadyOver)
	}
	assert.Equal(t, before, g.State())

	res := g.ChooseOpponentMove()
	assert.ErrorIs(t, res.Err, engine.ErrGameAlreadyOver)
}

func TestOutOfBoundsAndWrongPlayer(t *testing.T) {
	g := NewTicTacToe()

	res := g.ApplyMove(engine.PlaceAt(9))
	assert.ErrorIs(t, res.Err, engine.ErrOutOfBounds)

	res = g.ApplyMove(engine.PlaceAt(-1))
	assert.ErrorIs(t, res.Err, engine.ErrOutOfBounds)

	res = g.ApplyMove(engine.Move{Player: engine.Player2, Cell: 0})
	assert.ErrorIs(t, res.Err, engine.ErrInvalidMove)

	assert.Empty(t, g.State().History)
}

// TestWinDetectedExactlyOnCompletion plays random legal games on several board
// sizes and checks the incremental result against a full board scan after
// every move.
func TestWinDetectedExactlyOnCompletion(t *testing.T) {
	configs := []engine.Config{
		TicTacToeConfig(),
		{Width: 4, Height: 4, WinLength: 3},
		{Width: 5, Height: 4, WinLength: 4},
		GomokuConfig(),
	}

	rng := rand.New(rand.NewSource(7))
	for _, cfg := range configs {
		for i := 0; i < 50; i++ {
			g := New("test", "Test", cfg)
			for !g.State().Status.Terminal() {
				s := g.State()
				empty := s.EmptyCells()
				res := g.ApplyMove(engine.PlaceAt(empty[rng.Intn(len(empty))]))
				require.True(t, res.Applied())

				owner, _ := FindLine(res.State, cfg.WinLength)
				if owner != engine.NoPlayer {
					require.Equal(t, engine.StatusWon, res.State.Status)
					require.Equal(t, owner, res.State.Winner)
					break
				}
				if len(res.State.EmptyCells()) == 0 {
					require.Equal(t, engine.StatusDraw, res.State.Status)
				} else {
					require.Equal(t, engine.StatusInProgress, res.State.Status)
				}
			}
		}
	}
}

func TestRandomOpponentPicksEmptyCell(t *testing.T) {
	g := NewTicTacToe().WithRand(&seqRand{vals: []int{0}})
	play(t, g, 0)

	res := g.ChooseOpponentMove()
	require.Equal(t, engine.Accepted, res.Outcome)
	// first empty cell after 0 is 1
	assert.Equal(t, 1, res.Move.Cell)
	assert.Equal(t, engine.Player2, res.Move.Player)
	assert.Equal(t, engine.MarkO, res.State.Grid[1])
	assert.Equal(t, engine.Player1, res.State.Active)
}

func TestRandomOpponentIsUniform(t *testing.T) {
	counts := make(map[int]int)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 900; i++ {
		g := NewTicTacToe().WithRand(rng)
		play(t, g, 4)
		res := g.ChooseOpponentMove()
		require.True(t, res.Applied())
		counts[res.Move.Cell]++
	}
	assert.Len(t, counts, 8)
	assert.Zero(t, counts[4])
	for cell, n := range counts {
		assert.InDelta(t, 900/8, n, 50, "cell %d", cell)
	}
}

func TestGreedyOpponent(t *testing.T) {
	cfg := TicTacToeConfig()
	cfg.Opponent = engine.OpponentGreedy

	t.Run("blocks", func(t *testing.T) {
		g := New("tictactoe", "Tic-Tac-Toe", cfg).WithRand(&seqRand{})
		play(t, g, 0, 4, 1)
		res := g.ChooseOpponentMove()
		require.True(t, res.Applied())
		assert.Equal(t, 2, res.Move.Cell)
	})

	t.Run("wins before blocking", func(t *testing.T) {
		g := New("tictactoe", "Tic-Tac-Toe", cfg).WithRand(&seqRand{})
		// X: 0, 1  O: 3, 4  X: 8 -> O to move, can win at 5 or block at 2
		play(t, g, 0, 3, 1, 4, 8)
		res := g.ChooseOpponentMove()
		require.Equal(t, engine.Terminal, res.Outcome)
		assert.Equal(t, 5, res.Move.Cell)
		assert.Equal(t, engine.Player2, res.State.Winner)
	})
}

func TestResetScorePolicy(t *testing.T) {
	cfg := TicTacToeConfig()
	cfg.ResetPreservesScore = true
	g := New("tictactoe", "Tic-Tac-Toe", cfg)
	play(t, g, 0, 4, 1, 5, 2)

	s := g.Reset(cfg)
	assert.Equal(t, engine.StatusInProgress, s.Status)
	assert.Empty(t, s.History)
	assert.Len(t, s.EmptyCells(), 9)
	assert.Equal(t, 1, s.ScoreOf(engine.Player1))
	assert.Equal(t, 1, s.Round)

	cfg.ResetPreservesScore = false
	s = g.Reset(cfg)
	assert.Equal(t, 0, s.ScoreOf(engine.Player1))
	assert.Equal(t, 0, s.Round)
}

func TestResetFillsDefaultsAndClampsWinLength(t *testing.T) {
	g := NewGomoku()
	s := g.Reset(engine.Config{Width: 4, Height: 3, WinLength: 9})
	assert.Equal(t, 4, s.Width)
	assert.Equal(t, 3, s.Height)
	assert.Len(t, s.Grid, 12)
	assert.Equal(t, 4, g.Config().WinLength)

	s = g.Reset(engine.Config{})
	assert.Equal(t, 9, s.Width)
	assert.Equal(t, 5, g.Config().WinLength)
}
