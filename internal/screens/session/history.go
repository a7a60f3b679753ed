package session

import (
	"context"
	"sync"

	"github.com/abhisek/cardz/internal/cards"
	"github.com/abhisek/cardz/internal/review"
	"github.com/abhisek/cardz/internal/store"
)

// recordingScorer wraps the backend scorer and appends a review event for
// every successful submission. History failures never fail the submission;
// the local store is best-effort.
type recordingScorer struct {
	inner     review.Scorer
	events    store.EventRepo
	sessionID string

	mu   sync.Mutex
	kind cards.Kind
}

// SetCardKind records the kind of the card about to be scored, for the
// history row. Called by the screen right before each submit.
func (r *recordingScorer) SetCardKind(k cards.Kind) {
	r.mu.Lock()
	r.kind = k
	r.mu.Unlock()
}

func (r *recordingScorer) SubmitScore(ctx context.Context, topicID string, position int, grade review.Grade) (review.ScoreResult, error) {
	res, err := r.inner.SubmitScore(ctx, topicID, position, grade)
	if err != nil {
		return res, err
	}

	if r.events != nil {
		r.mu.Lock()
		kind := r.kind
		r.mu.Unlock()
		_ = r.events.AppendReviewEvent(ctx, store.ReviewEventData{
			SessionID: r.sessionID,
			TopicID:   topicID,
			Position:  position,
			CardKind:  string(kind),
			Grade:     grade.String(),
			NextDueAt: res.NextDueAt,
		})
	}
	return res, nil
}
