package storage

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/turn-arcade/internal/session"
)

// LeaderEntry is one leaderboard position.
type LeaderEntry struct {
	Member string
	Score  int
}

// Leaderboard keeps the best scores per game in a Redis sorted set.
type Leaderboard struct {
	client *redis.Client
	prefix string
}

// NewLeaderboard wraps an existing client. Keys are "<prefix>:<game>".
func NewLeaderboard(client *redis.Client, prefix string) *Leaderboard {
	if prefix == "" {
		prefix = "arcade:leaderboard"
	}
	return &Leaderboard{client: client, prefix: prefix}
}

// DialLeaderboard connects to Redis and checks the connection.
func DialLeaderboard(ctx context.Context, addr, password string, db int) (*Leaderboard, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: failed to connect to Redis: %w", err)
	}

	return NewLeaderboard(conn, ""), nil
}

func (l *Leaderboard) key(gameID string) string {
	return l.prefix + ":" + gameID
}

// RecordGame adds player one's score to the game's board. Games that ended
// without points are skipped. It implements session.ScoreSink.
func (l *Leaderboard) RecordGame(ctx context.Context, rec session.GameRecord) error {
	if rec.Score1 <= 0 {
		return nil
	}
	member := rec.SessionID + "/" + strconv.FormatInt(rec.FinishedAt.UnixNano(), 10)
	err := l.client.ZAdd(ctx, l.key(rec.GameID), redis.Z{
		Score:  float64(rec.Score1),
		Member: member,
	}).Err()
	if err != nil {
		return fmt.Errorf("storage: cannot add to leaderboard: %w", err)
	}
	return nil
}

// Top returns the n best entries for a game, highest first.
func (l *Leaderboard) Top(ctx context.Context, gameID string, n int) ([]LeaderEntry, error) {
	if n <= 0 {
		n = 10
	}
	zs, err := l.client.ZRevRangeWithScores(ctx, l.key(gameID), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read leaderboard: %w", err)
	}

	entries := make([]LeaderEntry, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		entries = append(entries, LeaderEntry{Member: member, Score: int(z.Score)})
	}
	return entries, nil
}

// Clear removes a game's leaderboard.
func (l *Leaderboard) Clear(ctx context.Context, gameID string) error {
	if err := l.client.Del(ctx, l.key(gameID)).Err(); err != nil {
		return fmt.Errorf("storage: cannot clear leaderboard: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (l *Leaderboard) Close() error {
	return l.client.Close()
}

var _ session.ScoreSink = (*Leaderboard)(nil)
