package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/turn-arcade/internal/config"
	"github.com/vovakirdan/turn-arcade/internal/registry"
	"github.com/vovakirdan/turn-arcade/internal/storage"
)

var (
	flagClearScores bool
	flagRecent      int
	flagRedisAddr   string
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores and results for a game",
	Long: `Display the top 10 high scores, win/loss statistics and the most
recent results for the specified game.

When ARCADE_REDIS_ADDR (or --redis) is set, the shared leaderboard is
shown as well.

Examples:
  arcade scores snake
  arcade scores tictactoe --recent 20
  arcade scores rps --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores and results for the game")
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent results to show")
	scoresCmd.Flags().StringVar(&flagRedisAddr, "redis", "", "Redis address of a shared leaderboard")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	info, ok := registry.Lookup(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", info.Title)
		return nil
	}

	// Get top scores
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	// Print scores
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	if stats, err := store.Stats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Games: %d   Wins: %d   Losses: %d   Draws: %d   Abandoned: %d\n",
			stats.GamesCount, stats.Wins, stats.Losses, stats.Draws, stats.Aborted)
		fmt.Printf("Best: %d   Average: %.1f\n", stats.HighScore, stats.AvgScore)
	}

	if flagRecent > 0 {
		results, err := store.Results(gameID, flagRecent)
		if err != nil {
			return fmt.Errorf("error retrieving results: %w", err)
		}
		if len(results) > 0 {
			fmt.Println()
			fmt.Println("Recent games:")
			for _, r := range results {
				dur := (time.Duration(r.DurationMS) * time.Millisecond).Round(time.Second)
				fmt.Printf("  %s  %-8s  %d:%d  %3d moves  %s\n",
					r.CreatedAt.Format("2006-01-02 15:04"), r.Status, r.Score1, r.Score2, r.Moves, dur)
			}
		}
	}

	printLeaderboard(cmd.Context(), gameID)
	return nil
}

// printLeaderboard shows the shared redis leaderboard when one is configured.
func printLeaderboard(ctx context.Context, gameID string) {
	srv, err := config.LoadServer("")
	if err != nil {
		return
	}
	if flagRedisAddr != "" {
		srv.Redis.Addr = flagRedisAddr
	}
	if !srv.Redis.Enabled() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	board, err := storage.DialLeaderboard(ctx, srv.Redis.Addr, srv.Redis.Password, srv.Redis.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	defer board.Close()

	top, err := board.Top(ctx, gameID, 10)
	if err != nil || len(top) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Shared leaderboard:")
	for i, e := range top {
		fmt.Printf("  %-4d  %d\n", i+1, e.Score)
	}
}
