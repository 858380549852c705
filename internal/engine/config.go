package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// OpponentMode selects who plays Player2.
type OpponentMode string

const (
	OpponentNone   OpponentMode = "none"   // two humans share the input
	OpponentRandom OpponentMode = "random" // uniform random over legal moves
	OpponentGreedy OpponentMode = "greedy" // win if possible, else block, else random
)

// ParseOpponentMode validates a mode name. Empty means OpponentNone.
func ParseOpponentMode(s string) (OpponentMode, error) {
	switch OpponentMode(s) {
	case "", OpponentNone:
		return OpponentNone, nil
	case OpponentRandom, "computer":
		return OpponentRandom, nil
	case OpponentGreedy:
		return OpponentGreedy, nil
	default:
		return OpponentNone, fmt.Errorf("engine: unknown opponent mode %q", s)
	}
}

// Config is recognised by every engine. Fields a variant does not use are ignored.
type Config struct {
	Width     int // grid columns
	Height    int // grid rows
	WinLength int // N-in-a-row required (mark placing)

	Opponent OpponentMode

	// ResetPreservesScore keeps cumulative score and round counter across Reset.
	ResetPreservesScore bool

	TargetScore   int // rps: round wins that take the match, 0 = default (5), negative = endless
	FoodPoints    int // snake: score per food
	InitialLength int // snake: body length at start

	// Seed builds the default random source when no Rand is injected.
	// 0 means seed from the clock.
	Seed int64
}

// Rand is the random source engines draw from. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded source, or a clock-seeded one when seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // game randomness
}

// ValidateGrid checks grid-related fields for a board game. A zero
// WinLength is left for the variant to default.
func (c Config) ValidateGrid() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("engine: board must be at least 1x1, got %dx%d", c.Width, c.Height)
	}
	if c.WinLength < 0 || c.WinLength > max(c.Width, c.Height) {
		return fmt.Errorf("engine: win length %d does not fit a %dx%d board", c.WinLength, c.Width, c.Height)
	}
	return nil
}
