package engine

import "fmt"

// Outcome classifies what happened to a move.
type Outcome int

const (
	Accepted Outcome = iota // applied, game continues
	Rejected                // not applied, state unchanged
	Terminal                // applied, game reached a terminal status
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Result is returned by every transition.
// Err is set for Rejected moves and, for Terminal moves, may name the cause
// (a snake hitting a wall reports ErrOutOfBounds).
type Result struct {
	Outcome Outcome
	Err     error
	Move    Move
	State   GameState
}

// Applied reports whether the move changed the state.
func (r Result) Applied() bool {
	return r.Outcome != Rejected
}

// Reject builds a rejection result.
func Reject(m Move, err error, state GameState) Result {
	return Result{Outcome: Rejected, Err: err, Move: m, State: state}
}

// Rejectf wraps a sentinel with detail while keeping it errors.Is-comparable.
func Rejectf(m Move, state GameState, sentinel error, format string, args ...any) Result {
	return Reject(m, fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)), state)
}

// Settle builds the result of an applied move from the new state.
func Settle(m Move, state GameState, cause error) Result {
	out := Accepted
	if state.Status.Terminal() {
		out = Terminal
	}
	return Result{Outcome: out, Err: cause, Move: m, State: state}
}
