package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/turn-arcade/internal/engine"
	"github.com/vovakirdan/turn-arcade/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("snake", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("rps", 5); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("snake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].GameID != "snake" {
			t.Errorf("scores[%d].GameID = %q", i, scores[i].GameID)
		}
	}

	rpsScores, err := store.TopScores("rps", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(rpsScores) != 1 || rpsScores[0].Score != 5 {
		t.Errorf("unexpected rps scores: %+v", rpsScores)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if _, err := store.SaveScore("snake", i*10); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("snake", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 190 {
		t.Errorf("Expected top score 190, got %d", scores[0].Score)
	}

	// Zero limit falls back to 10
	scores, err = store.TopScores("snake", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 10 {
		t.Errorf("Expected 10 scores, got %d", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty table, got %d", high)
	}

	store.SaveScore("snake", 30)
	store.SaveScore("snake", 120)
	store.SaveScore("snake", 60)

	high, err = store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 120 {
		t.Errorf("Expected 120, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.SaveScore("snake", 10)
	store.SaveScore("rps", 3)
	store.RecordGame(ctx, session.GameRecord{SessionID: "s", GameID: "snake", Status: engine.StatusGameOver, Score1: 10})

	if err := store.ClearScores("snake"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("snake", 10); len(scores) != 0 {
		t.Errorf("Expected no snake scores, got %d", len(scores))
	}
	if results, _ := store.Results("snake", 10); len(results) != 0 {
		t.Errorf("Expected no snake results, got %d", len(results))
	}
	if scores, _ := store.TopScores("rps", 10); len(scores) != 1 {
		t.Errorf("rps scores should survive, got %d", len(scores))
	}
}

func TestStoreRecordGame(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := session.GameRecord{
		SessionID:  "abc",
		GameID:     "tictactoe",
		Status:     engine.StatusWon,
		Winner:     engine.Player1,
		Score1:     2,
		Score2:     1,
		Rounds:     3,
		Moves:      7,
		Duration:   1500 * time.Millisecond,
		FinishedAt: time.Now(),
	}
	if err := store.RecordGame(ctx, rec); err != nil {
		t.Fatalf("RecordGame() failed: %v", err)
	}

	results, err := store.Results("tictactoe", 10)
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.SessionID != "abc" || r.Status != "won" || r.Winner != 1 {
		t.Errorf("unexpected result %+v", r)
	}
	if r.Score1 != 2 || r.Score2 != 1 || r.Rounds != 3 || r.Moves != 7 {
		t.Errorf("unexpected counters %+v", r)
	}
	if r.DurationMS != 1500 {
		t.Errorf("DurationMS = %d, want 1500", r.DurationMS)
	}

	high, _ := store.HighScore("tictactoe")
	if high != 2 {
		t.Errorf("HighScore = %d, want 2", high)
	}
}

func TestStoreRecordGameWithoutScore(t *testing.T) {
	store := openTestStore(t)

	rec := session.GameRecord{SessionID: "x", GameID: "snake", Status: engine.StatusGameOver}
	if err := store.RecordGame(context.Background(), rec); err != nil {
		t.Fatalf("RecordGame() failed: %v", err)
	}

	if scores, _ := store.TopScores("snake", 10); len(scores) != 0 {
		t.Errorf("zero score should not be saved, got %d entries", len(scores))
	}
	if results, _ := store.Results("snake", 10); len(results) != 1 {
		t.Errorf("Expected the result row, got %d", len(results))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	records := []session.GameRecord{
		{GameID: "tictactoe", Status: engine.StatusWon, Winner: engine.Player1, Score1: 1},
		{GameID: "tictactoe", Status: engine.StatusWon, Winner: engine.Player1, Score1: 2},
		{GameID: "tictactoe", Status: engine.StatusWon, Winner: engine.Player2, Score1: 2, Score2: 1},
		{GameID: "tictactoe", Status: engine.StatusDraw, Score1: 2, Score2: 1},
		{GameID: "tictactoe", Status: engine.StatusAborted},
		{GameID: "snake", Status: engine.StatusGameOver, Score1: 40},
	}
	for _, rec := range records {
		rec.SessionID = "s1"
		if err := store.RecordGame(ctx, rec); err != nil {
			t.Fatalf("RecordGame() failed: %v", err)
		}
	}

	stats, err := store.Stats("tictactoe")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 5 {
		t.Errorf("GamesCount = %d, want 5", stats.GamesCount)
	}
	if stats.Wins != 2 || stats.Losses != 1 || stats.Draws != 1 || stats.Aborted != 1 {
		t.Errorf("unexpected tally %+v", stats)
	}
	if stats.HighScore != 2 {
		t.Errorf("HighScore = %d, want 2", stats.HighScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	snakeStats, err := store.Stats("snake")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if snakeStats.Losses != 1 || snakeStats.HighScore != 40 {
		t.Errorf("unexpected snake stats %+v", snakeStats)
	}

	empty, err := store.Stats("gomoku")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected empty stats %+v", empty)
	}
}

type failingSink struct{ calls int }

func (f *failingSink) RecordGame(context.Context, session.GameRecord) error {
	f.calls++
	return errors.New("unavailable")
}

func TestMultiSink(t *testing.T) {
	store := openTestStore(t)
	bad := &failingSink{}
	sink := MultiSink{bad, store, nil}

	rec := session.GameRecord{SessionID: "m", GameID: "rps", Status: engine.StatusWon, Winner: engine.Player1, Score1: 5}
	err := sink.RecordGame(context.Background(), rec)
	if err == nil {
		t.Error("expected the failing sink's error")
	}
	if bad.calls != 1 {
		t.Errorf("failing sink called %d times", bad.calls)
	}
	if results, _ := store.Results("rps", 10); len(results) != 1 {
		t.Errorf("store should still record the game, got %d results", len(results))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.arcade/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".arcade", "scores.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}
