package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/turn-arcade/internal/platform/tui"
	"github.com/vovakirdan/turn-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game, press Esc to return to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Select game
  Tab             - Scoreboard
  Q               - Quit

Examples:
  arcade menu
  arcade menu --seed 42
  arcade menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("arcade", flagLogLevel, true)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := tui.ArcadeOptions{
		Logger: logger,
		Seed:   flagSeed,
		Width:  80,
		Height: 24,
	}

	// Get terminal size
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		opts.Width, opts.Height = w, h
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
		opts.Store = store
		opts.Sink = store
	}

	return tui.RunArcade(opts)
}
