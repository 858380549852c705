// Package session drives one engine for one player: it applies input events,
// answers with the computer's move, notifies observers and hands finished games
// to a score sink.
package session

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/turn-arcade/internal/engine"
)

// GameRecord summarizes one finished game.
type GameRecord struct {
	SessionID  string
	GameID     string
	Status     engine.Status
	Winner     engine.Player
	Score1     int
	Score2     int
	Rounds     int
	Moves      int
	Duration   time.Duration
	FinishedAt time.Time
}

// ScoreSink persists finished games. It is only called between games.
type ScoreSink interface {
	RecordGame(ctx context.Context, rec GameRecord) error
}

// Observer is called with a fresh snapshot after every state change.
type Observer func(engine.GameState)

// Option configures a Session.
type Option func(*Session)

// WithSink sets the score sink.
func WithSink(sink ScoreSink) Option {
	return func(s *Session) { s.sink = sink }
}

// WithLogger sets the logger used for session events.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session owns a single engine. It is not safe for concurrent use.
type Session struct {
	id        string
	eng       engine.Engine
	cfg       engine.Config
	sink      ScoreSink
	logger    *log.Logger
	now       func() time.Time
	observers []Observer

	started  time.Time
	recorded bool
}

// New resets eng with cfg and wraps it in a session.
func New(eng engine.Engine, cfg engine.Config, opts ...Option) *Session {
	s := &Session{
		id:  uuid.NewString(),
		eng: eng,
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default().WithPrefix("session")
	}
	s.logger = s.logger.With("session", s.id, "game", eng.ID())

	eng.Reset(cfg)
	s.started = s.now()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Engine returns the underlying engine.
func (s *Session) Engine() engine.Engine { return s.eng }

// Config returns the configuration used on every reset.
func (s *Session) Config() engine.Config { return s.cfg }

// State returns a snapshot of the current game.
func (s *Session) State() engine.GameState { return s.eng.State() }

// Subscribe registers an observer.
func (s *Session) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

// Apply forwards m to the engine. When the move is accepted and it is now the
// computer's turn, the computer moves before Apply returns and its result is
// returned instead.
func (s *Session) Apply(ctx context.Context, m engine.Move) engine.Result {
	res := s.eng.ApplyMove(m)
	if !res.Applied() {
		s.logger.Debug("move rejected", "move", m, "err", res.Err)
		return res
	}
	s.notify(res.State)

	if s.opponentTurn(res) {
		opp := s.eng.ChooseOpponentMove()
		if opp.Applied() {
			s.notify(opp.State)
			res = opp
		} else {
			s.logger.Warn("opponent could not move", "err", opp.Err)
		}
	}

	if res.State.Status.Terminal() {
		s.finish(ctx, res.State)
	}
	return res
}

// Reset starts a new game with the stored config.
func (s *Session) Reset() engine.GameState {
	return s.reset(s.cfg)
}

// ClearScore starts a new game with the score and round counter zeroed,
// whatever the config's score policy.
func (s *Session) ClearScore() engine.GameState {
	cfg := s.cfg
	cfg.ResetPreservesScore = false
	return s.reset(cfg)
}

func (s *Session) reset(cfg engine.Config) engine.GameState {
	st := s.eng.Reset(cfg)
	s.started = s.now()
	s.recorded = false
	s.logger.Debug("game reset", "score", st.Score)
	s.notify(st)
	return st
}

// Reconfigure replaces the stored config and resets the game.
func (s *Session) Reconfigure(cfg engine.Config) engine.GameState {
	s.cfg = cfg
	return s.Reset()
}

// Abort ends an in-progress game. Aborted games are recorded like any other
// finished game.
func (s *Session) Abort(ctx context.Context) engine.GameState {
	prev := s.eng.State().Status
	st := s.eng.Abort()
	if prev != st.Status {
		s.notify(st)
		s.finish(ctx, st)
	}
	return st
}

func (s *Session) opponentTurn(res engine.Result) bool {
	return res.Outcome == engine.Accepted &&
		s.cfg.Opponent != engine.OpponentNone &&
		res.State.Status == engine.StatusInProgress &&
		res.State.Active == engine.Player2
}

func (s *Session) notify(st engine.GameState) {
	for _, o := range s.observers {
		o(st.Clone())
	}
}

func (s *Session) finish(ctx context.Context, st engine.GameState) {
	if s.recorded {
		return
	}
	s.recorded = true

	rec := GameRecord{
		SessionID:  s.id,
		GameID:     st.Game,
		Status:     st.Status,
		Winner:     st.Winner,
		Score1:     st.ScoreOf(engine.Player1),
		Score2:     st.ScoreOf(engine.Player2),
		Rounds:     st.Round,
		Moves:      len(st.History),
		FinishedAt: s.now(),
	}
	rec.Duration = rec.FinishedAt.Sub(s.started)

	s.logger.Info("game finished",
		"status", rec.Status,
		"winner", rec.Winner,
		"score1", rec.Score1,
		"score2", rec.Score2,
		"moves", rec.Moves,
	)

	if s.sink == nil {
		return
	}
	if err := s.sink.RecordGame(ctx, rec); err != nil {
		s.logger.Error("could not record game", "err", err)
	}
}
