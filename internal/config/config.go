// Package config provides YAML-based configuration for the arcade games
// and the SSH server.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/turn-arcade/internal/engine"
)

// ErrUnknownGame is returned when no preset exists for a game ID.
var ErrUnknownGame = errors.New("config: unknown game")

// GameConfig is the YAML form of a game preset.
type GameConfig struct {
	Board               BoardConfig `yaml:"board"`
	Opponent            string      `yaml:"opponent"`
	ResetPreservesScore bool        `yaml:"reset_preserves_score"`
	Match               MatchConfig `yaml:"match"`
	Snake               SnakeConfig `yaml:"snake"`
	Seed                int64       `yaml:"seed"` // 0 = seed from the clock
}

// BoardConfig defines the grid. Unused by rock-paper-scissors.
type BoardConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	WinLength int `yaml:"win_length"`
}

// MatchConfig defines match rules for round-based games.
type MatchConfig struct {
	TargetScore int `yaml:"target_score"` // negative = endless
}

// SnakeConfig defines movement game parameters.
type SnakeConfig struct {
	FoodPoints    int `yaml:"food_points"`
	InitialLength int `yaml:"initial_length"`
	TickMS        int `yaml:"tick_ms"`
}

// DefaultTick is the snake auto-advance interval when none is configured.
const DefaultTick = 150 * time.Millisecond

// Validate checks the preset for values no engine can play with.
func (c GameConfig) Validate() error {
	b := c.Board
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("config: board %dx%d has a negative dimension", b.Width, b.Height)
	}
	if b.WinLength < 0 {
		return fmt.Errorf("config: negative win_length %d", b.WinLength)
	}
	if b.WinLength > 0 && b.Width > 0 && b.Height > 0 && b.WinLength > max(b.Width, b.Height) {
		return fmt.Errorf("config: win_length %d does not fit a %dx%d board", b.WinLength, b.Width, b.Height)
	}
	if _, err := engine.ParseOpponentMode(c.Opponent); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Snake.FoodPoints < 0 || c.Snake.InitialLength < 0 || c.Snake.TickMS < 0 {
		return errors.New("config: snake values must not be negative")
	}
	return nil
}

// Engine converts the preset into an engine configuration.
func (c GameConfig) Engine() (engine.Config, error) {
	if err := c.Validate(); err != nil {
		return engine.Config{}, err
	}
	mode, _ := engine.ParseOpponentMode(c.Opponent)
	return engine.Config{
		Width:               c.Board.Width,
		Height:              c.Board.Height,
		WinLength:           c.Board.WinLength,
		Opponent:            mode,
		ResetPreservesScore: c.ResetPreservesScore,
		TargetScore:         c.Match.TargetScore,
		FoodPoints:          c.Snake.FoodPoints,
		InitialLength:       c.Snake.InitialLength,
		Seed:                c.Seed,
	}, nil
}

// TickInterval returns the snake auto-advance interval.
func (c GameConfig) TickInterval() time.Duration {
	if c.Snake.TickMS <= 0 {
		return DefaultTick
	}
	return time.Duration(c.Snake.TickMS) * time.Millisecond
}
