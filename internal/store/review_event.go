package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendReviewEvent(ctx context.Context, data ReviewEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	var nextDue any
	if !data.NextDueAt.IsZero() {
		nextDue = data.NextDueAt.UTC()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO review_events
			(sequence, session_id, topic_id, position, card_kind, grade, next_due_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.TopicID, data.Position,
		data.CardKind, data.Grade, nextDue)
	if err != nil {
		return fmt.Errorf("save review event: %w", err)
	}
	return nil
}

func (r *eventRepo) GradeCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT grade, COUNT(*) FROM review_events GROUP BY grade`)
	if err != nil {
		return nil, fmt.Errorf("query grade counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var grade string
		var n int
		if err := rows.Scan(&grade, &n); err != nil {
			return nil, fmt.Errorf("scan grade count: %w", err)
		}
		counts[grade] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grade counts: %w", err)
	}
	return counts, nil
}
