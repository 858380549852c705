package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/turn-arcade/internal/engine"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the difficulty levels in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// DifficultyAsConfigured leaves the YAML preset untouched.
const DifficultyAsConfigured DifficultyPreset = ""

// ParseDifficulty parses a preset name. The empty string selects
// DifficultyAsConfigured.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case DifficultyAsConfigured, DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
}

// OpponentForPreset returns the computer strategy for a difficulty.
func OpponentForPreset(preset DifficultyPreset) engine.OpponentMode {
	if preset == DifficultyHard {
		return engine.OpponentGreedy
	}
	return engine.OpponentRandom
}

// TickMSForPreset returns the snake tick interval in milliseconds.
func TickMSForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 220
	case DifficultyHard:
		return 90
	default:
		return 150
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Games played by two humans keep opponent "none". DifficultyAsConfigured
// changes nothing.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	if preset == DifficultyAsConfigured {
		return
	}
	mode, err := engine.ParseOpponentMode(cfg.Opponent)
	if err == nil && mode != engine.OpponentNone {
		cfg.Opponent = string(OpponentForPreset(preset))
	}
	cfg.Snake.TickMS = TickMSForPreset(preset)
}
