package config

import (
	"embed"
	"sort"
	"strings"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultGameConfig returns the hardcoded preset for a game, used when even
// the embedded YAML cannot be read.
func DefaultGameConfig(gameID string) (GameConfig, bool) {
	switch gameID {
	case "tictactoe":
		return GameConfig{
			Board:               BoardConfig{Width: 3, Height: 3, WinLength: 3},
			Opponent:            "random",
			ResetPreservesScore: true,
		}, true
	case "gomoku":
		return GameConfig{
			Board:               BoardConfig{Width: 9, Height: 9, WinLength: 5},
			Opponent:            "greedy",
			ResetPreservesScore: true,
		}, true
	case "rps":
		return GameConfig{
			Opponent: "random",
			Match:    MatchConfig{TargetScore: 5},
		}, true
	case "snake":
		return GameConfig{
			Board:    BoardConfig{Width: 15, Height: 15},
			Opponent: "none",
			Snake:    SnakeConfig{FoodPoints: 10, InitialLength: 1, TickMS: 150},
		}, true
	}
	return GameConfig{}, false
}

// EmbeddedGames lists the game IDs that ship a default YAML preset.
func EmbeddedGames() []string {
	entries, err := defaultsFS.ReadDir("defaults")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(ids)
	return ids
}

func embeddedYAML(gameID string) ([]byte, error) {
	return defaultsFS.ReadFile("defaults/" + gameID + ".yaml")
}
