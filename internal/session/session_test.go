package session

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/turn-arcade/internal/engine"
	"github.com/vovakirdan/turn-arcade/internal/games/marks"
	"github.com/vovakirdan/turn-arcade/internal/games/rps"
	"github.com/vovakirdan/turn-arcade/internal/games/snake"
)

// firstRand always picks index 0.
type firstRand struct{}

func (firstRand) Intn(int) int { return 0 }

type memSink struct {
	records []GameRecord
	err     error
}

func (s *memSink) RecordGame(_ context.Context, rec GameRecord) error {
	s.records = append(s.records, rec)
	return s.err
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func ticTacToe(opponent engine.OpponentMode, sink ScoreSink) *Session {
	cfg := marks.TicTacToeConfig()
	cfg.Opponent = opponent
	eng := marks.NewTicTacToe().WithRand(firstRand{})
	return New(eng, cfg, WithSink(sink), WithLogger(quietLogger()))
}

func TestComputerAnswersHumanMove(t *testing.T) {
	ctx := context.Background()
	s := ticTacToe(engine.OpponentRandom, nil)

	var seen []engine.GameState
	s.Subscribe(func(st engine.GameState) { seen = append(seen, st) })

	res := s.Apply(ctx, engine.PlaceAt(4))
	require.Equal(t, engine.Accepted, res.Outcome)

	st := s.State()
	assert.Equal(t, engine.MarkX, st.Grid[4])
	assert.Equal(t, engine.MarkO, st.Grid[0], "computer takes the first empty cell")
	assert.Equal(t, engine.Player1, st.Active)
	assert.Len(t, st.History, 2, "exactly one computer move per human move")
	assert.Len(t, seen, 2)
}

func TestRejectedMoveDoesNotNotify(t *testing.T) {
	ctx := context.Background()
	s := ticTacToe(engine.OpponentRandom, nil)

	calls := 0
	s.Subscribe(func(engine.GameState) { calls++ })

	s.Apply(ctx, engine.PlaceAt(4))
	before := s.State()
	require.Equal(t, 2, calls)

	res := s.Apply(ctx, engine.PlaceAt(4))
	assert.Equal(t, engine.Rejected, res.Outcome)
	assert.ErrorIs(t, res.Err, engine.ErrInvalidMove)
	assert.Equal(t, 2, calls)
	assert.Equal(t, before, s.State())
}

func TestObserversGetIndependentCopies(t *testing.T) {
	s := ticTacToe(engine.OpponentNone, nil)
	s.Subscribe(func(st engine.GameState) { st.Grid[0] = engine.MarkO })

	s.Apply(context.Background(), engine.PlaceAt(4))
	assert.Equal(t, engine.Empty, s.State().Grid[0])
}

func TestFinishedGameRecordedOnce(t *testing.T) {
	ctx := context.Background()
	sink := &memSink{}
	s := ticTacToe(engine.OpponentNone, sink)

	for _, c := range []int{0, 3, 1, 4, 2} {
		s.Apply(ctx, engine.PlaceAt(c))
	}
	require.Len(t, sink.records, 1)

	rec := sink.records[0]
	assert.Equal(t, s.ID(), rec.SessionID)
	assert.Equal(t, "tictactoe", rec.GameID)
	assert.Equal(t, engine.StatusWon, rec.Status)
	assert.Equal(t, engine.Player1, rec.Winner)
	assert.Equal(t, 1, rec.Score1)
	assert.Equal(t, 5, rec.Moves)

	res := s.Apply(ctx, engine.PlaceAt(8))
	assert.ErrorIs(t, res.Err, engine.ErrGameAlreadyOver)
	s.Abort(ctx)
	assert.Len(t, sink.records, 1)

	s.Reset()
	for _, c := range []int{0, 3, 1, 4, 2} {
		s.Apply(ctx, engine.PlaceAt(c))
	}
	assert.Len(t, sink.records, 2)
}

func TestSinkErrorIsNotAMoveFailure(t *testing.T) {
	ctx := context.Background()
	sink := &memSink{err: errors.New("disk full")}
	s := ticTacToe(engine.OpponentNone, sink)

	var last engine.Result
	for _, c := range []int{0, 3, 1, 4, 2} {
		last = s.Apply(ctx, engine.PlaceAt(c))
	}
	assert.Equal(t, engine.Terminal, last.Outcome)
	assert.NoError(t, last.Err)
	assert.Len(t, sink.records, 1)
}

func TestAbortRecordsAbortedGame(t *testing.T) {
	ctx := context.Background()
	sink := &memSink{}
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	cfg := marks.TicTacToeConfig()
	s := New(marks.NewTicTacToe(), cfg,
		WithSink(sink),
		WithLogger(quietLogger()),
		WithID("fixed"),
		WithClock(func() time.Time { return now }),
	)

	s.Apply(ctx, engine.PlaceAt(0))
	now = start.Add(90 * time.Second)

	st := s.Abort(ctx)
	assert.Equal(t, engine.StatusAborted, st.Status)
	require.Len(t, sink.records, 1)
	assert.Equal(t, "fixed", sink.records[0].SessionID)
	assert.Equal(t, engine.StatusAborted, sink.records[0].Status)
	assert.Equal(t, 90*time.Second, sink.records[0].Duration)

	res := s.Apply(ctx, engine.PlaceAt(1))
	assert.ErrorIs(t, res.Err, engine.ErrGameAlreadyOver)
}

func TestRockPaperScissorsRoundPerApply(t *testing.T) {
	ctx := context.Background()
	eng := rps.New().WithRand(firstRand{})
	s := New(eng, rps.DefaultConfig(), WithLogger(quietLogger()))

	res := s.Apply(ctx, engine.Throw(engine.Player1, engine.Paper))
	require.True(t, res.Applied())

	st := s.State()
	assert.Equal(t, 1, st.Round)
	assert.Equal(t, engine.Player1, st.Active)
	assert.Equal(t, [2]engine.Choice{engine.Paper, engine.Rock}, st.LastChoices)
	assert.Equal(t, 1, st.ScoreOf(engine.Player1))
}

func TestSnakeNeverTriggersOpponent(t *testing.T) {
	ctx := context.Background()
	s := New(snake.New(), snake.DefaultConfig(), WithLogger(quietLogger()))

	calls := 0
	s.Subscribe(func(engine.GameState) { calls++ })

	res := s.Apply(ctx, engine.Steer(engine.DirUp))
	require.True(t, res.Applied())
	assert.Equal(t, 1, calls)
	assert.Equal(t, engine.DirUp, s.State().Direction)
}

func TestReconfigureChangesBoard(t *testing.T) {
	s := ticTacToe(engine.OpponentNone, nil)
	st := s.Reconfigure(marks.GomokuConfig())
	assert.Equal(t, 9, st.Width)
	assert.Equal(t, 81, len(st.Grid))
}

func TestClearScoreIgnoresPreservePolicy(t *testing.T) {
	ctx := context.Background()
	s := ticTacToe(engine.OpponentNone, nil)
	cfg := s.Config()
	cfg.ResetPreservesScore = true
	s.Reconfigure(cfg)

	for _, c := range []int{0, 3, 1, 4, 2} {
		s.Apply(ctx, engine.PlaceAt(c))
	}
	assert.Equal(t, 1, s.Reset().ScoreOf(engine.Player1), "reset keeps the score")

	st := s.ClearScore()
	assert.Equal(t, 0, st.ScoreOf(engine.Player1))
	assert.Equal(t, 0, st.Round)
	assert.True(t, s.Config().ResetPreservesScore, "stored config is untouched")
}
