package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/turn-arcade/internal/config"
	"github.com/vovakirdan/turn-arcade/internal/engine"
	"github.com/vovakirdan/turn-arcade/internal/platform/tui"
	"github.com/vovakirdan/turn-arcade/internal/registry"
	"github.com/vovakirdan/turn-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagOpponent   string
	flagKeepScore  bool
	flagWidth      int
	flagHeight     int
	flagWinLength  int
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/hjkl  - Move the cursor or steer the snake
  Enter/Space  - Place a mark
  1-9          - Place a mark by cell number (3x3 boards)
  1/2/3, r/p/s - Rock, paper, scissors
  N            - New game
  X            - New game with the score cleared
  ?            - Toggle help
  Esc/Q        - Quit

Difficulty options:
  easy   - Random computer moves, slow snake
  normal - Random computer moves
  hard   - Computer wins or blocks when it can, fast snake
Without --difficulty the preset's own opponent and snake speed are used.

Opponent options (override the difficulty):
  none   - Two players share the keyboard
  random - Computer picks any legal move
  greedy - Computer wins if possible, else blocks, else random

Examples:
  arcade play tictactoe
  arcade play tictactoe --opponent none
  arcade play gomoku --difficulty hard
  arcade play tictactoe --width 4 --height 4 --win 3
  arcade play rps --keep-score
  arcade play snake --config ./my-snake.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagOpponent, "opponent", "", "Opponent: none, random, greedy")
	playCmd.Flags().BoolVar(&flagKeepScore, "keep-score", false, "Keep the running score across new games")
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Board width (marks games)")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Board height (marks games)")
	playCmd.Flags().IntVar(&flagWinLength, "win", 0, "Marks in a row needed to win (marks games)")
}

// playSettings are the play flags that shape the game config.
type playSettings struct {
	ConfigPath string
	Difficulty string
	Opponent   string
	KeepScore  *bool // nil keeps the preset's policy
	Width      int
	Height     int
	WinLength  int
	Seed       int64
}

// options loads the preset and applies the flag overrides on top.
// Board overrides are checked before the game starts.
func (s playSettings) options(gameID string) (tui.GameOptions, error) {
	difficulty, err := config.ParseDifficulty(s.Difficulty)
	if err != nil {
		return tui.GameOptions{}, err
	}

	opts, err := tui.PresetOptions(gameID, s.ConfigPath, difficulty)
	if err != nil {
		return tui.GameOptions{}, err
	}

	if s.Opponent != "" {
		mode, err := engine.ParseOpponentMode(s.Opponent)
		if err != nil {
			return tui.GameOptions{}, err
		}
		opts.Config.Opponent = mode
	}
	if s.KeepScore != nil {
		opts.Config.ResetPreservesScore = *s.KeepScore
	}
	if s.Width > 0 {
		opts.Config.Width = s.Width
	}
	if s.Height > 0 {
		opts.Config.Height = s.Height
	}
	if s.WinLength > 0 {
		opts.Config.WinLength = s.WinLength
	}
	if info, _ := registry.Lookup(gameID); info.Kind != registry.KindChoice {
		if err := opts.Config.ValidateGrid(); err != nil {
			return tui.GameOptions{}, err
		}
	}
	if s.Seed != 0 {
		opts.Config.Seed = s.Seed
	}
	return opts, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	settings := playSettings{
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
		Opponent:   flagOpponent,
		Width:      flagWidth,
		Height:     flagHeight,
		WinLength:  flagWinLength,
		Seed:       flagSeed,
	}
	if cmd.Flags().Changed("keep-score") {
		settings.KeepScore = &flagKeepScore
	}
	opts, err := settings.options(gameID)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("arcade", flagLogLevel, true)
	if err != nil {
		return err
	}
	defer closeLog()
	opts.Logger = logger

	// Get terminal size
	opts.Width, opts.Height = 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		opts.Width, opts.Height = w, h
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
		opts.Store = store
		opts.Sink = store
	}

	// Run the game
	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
