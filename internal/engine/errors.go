package engine

import "errors"

// Rejection reasons. A move that fails with one of these leaves the state
// untouched; callers are expected to re-prompt.
var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrGameAlreadyOver = errors.New("game is already over")
	ErrOutOfBounds     = errors.New("position out of bounds")
	ErrNoOpponent      = errors.New("no opponent move available")
)
