package api

import (
	"context"

	"github.com/abhisek/cardz/internal/cards"
	"github.com/abhisek/cardz/internal/review"
)

// batchSource feeds a session from one of the deck batch endpoints.
type batchSource struct {
	client *Client
	deckID string
	limit  int
	fetch  func(ctx context.Context, deckID string, limit int) (BatchResponse, error)
}

func (s *batchSource) FetchBatch(ctx context.Context) (review.Batch, error) {
	resp, err := s.fetch(ctx, s.deckID, s.limit)
	if err != nil {
		return review.Batch{}, err
	}
	return review.Batch{Cards: resp.Cards, TotalRemaining: resp.TotalRemaining}, nil
}

// DueSource returns a review.Source serving the deck's due cards.
func (c *Client) DueSource(deckID string, limit int) review.Source {
	return &batchSource{client: c, deckID: deckID, limit: limit, fetch: c.DueBatch}
}

// PracticeSource returns a review.Source serving the deck's practice cards.
func (c *Client) PracticeSource(deckID string, limit int) review.Source {
	return &batchSource{client: c, deckID: deckID, limit: limit, fetch: c.PracticeBatch}
}

type scorerAdapter struct {
	client *Client
}

func (s *scorerAdapter) SubmitScore(ctx context.Context, topicID string, position int, grade review.Grade) (review.ScoreResult, error) {
	resp, err := s.client.SubmitScore(ctx, topicID, position, grade.String())
	if err != nil {
		return review.ScoreResult{}, err
	}
	return review.ScoreResult{NextDueAt: resp.NextDueAt}, nil
}

// Scorer returns a review.Scorer backed by the score endpoint.
func (c *Client) Scorer() review.Scorer {
	return &scorerAdapter{client: c}
}

type cardStoreAdapter struct {
	client *Client
}

func (s *cardStoreAdapter) FetchCard(ctx context.Context, topicID string, position int) (cards.Card, error) {
	return s.client.GetCard(ctx, topicID, position)
}

// CardStore returns a review.CardStore backed by the card endpoint.
func (c *Client) CardStore() review.CardStore {
	return &cardStoreAdapter{client: c}
}
