package storage

import (
	"context"
	"errors"

	"github.com/vovakirdan/turn-arcade/internal/session"
)

// MultiSink records a game to every sink, collecting their errors.
type MultiSink []session.ScoreSink

// RecordGame implements session.ScoreSink.
func (m MultiSink) RecordGame(ctx context.Context, rec session.GameRecord) error {
	var errs []error
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.RecordGame(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
