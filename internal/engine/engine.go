package engine

// Engine owns one GameState and applies validated transitions
// deterministically. Engines do no I/O and are not safe for concurrent use;
// one caller drives one engine a move at a time.
type Engine interface {
	// ID returns the registry identifier (e.g. "tictactoe").
	ID() string

	// Title returns a display name.
	Title() string

	// ApplyMove validates and applies a single move. Invalid moves are
	// reported as Rejected and never change the state.
	ApplyMove(m Move) Result

	// State returns a read-only snapshot.
	State() GameState

	// Reset reinitialises the game with cfg. Score survives only when
	// cfg.ResetPreservesScore is set.
	Reset(cfg Config) GameState

	// Abort ends an in-progress game with StatusAborted. It is a no-op on a
	// game that is already over.
	Abort() GameState

	// ChooseOpponentMove picks a move for the computer side and applies it.
	// Returns a Rejected result with ErrNoOpponent when nothing can be played.
	ChooseOpponentMove() Result
}

// NewScore returns a zeroed score table for two players.
func NewScore() map[Player]int {
	return map[Player]int{Player1: 0, Player2: 0}
}

// CarryScore returns the score and round to start a reset with.
func CarryScore(prev GameState, preserve bool) (map[Player]int, int) {
	if !preserve || prev.Score == nil {
		return NewScore(), 0
	}
	return prev.Clone().Score, prev.Round
}

// AbortState moves s to StatusAborted unless it is already terminal.
func AbortState(s *GameState) {
	if s.Status.Terminal() {
		return
	}
	s.Status = StatusAborted
}
