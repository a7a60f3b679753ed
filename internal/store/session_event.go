package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_events
			(sequence, session_id, action, mode, deck_id, cards_scored, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.Action, data.Mode, data.DeckID,
		data.CardsScored, data.DurationSecs)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionStats(ctx context.Context, mode string) (SessionStats, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(cards_scored), 0), COALESCE(SUM(duration_secs), 0)
		FROM session_events WHERE action = 'end'`
	args := []any{}
	if mode != "" {
		query += ` AND mode = ?`
		args = append(args, mode)
	}

	var stats SessionStats
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&stats.Sessions, &stats.CardsScored, &stats.TotalSeconds)
	if err != nil {
		return SessionStats{}, fmt.Errorf("query session stats: %w", err)
	}
	return stats, nil
}
