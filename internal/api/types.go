package api

import (
	"time"

	"github.com/abhisek/cardz/internal/cards"
)

// Deck is a top-level collection of topics.
type Deck struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TopicCount  int    `json:"topic_count"`
}

// Topic is an ordered group of cards within a deck. Cards are addressed by
// (topic id, position).
type Topic struct {
	ID        string `json:"id"`
	DeckID    string `json:"deck_id"`
	Name      string `json:"name"`
	Position  int    `json:"position"`
	CardCount int    `json:"card_count"`
}

// BatchResponse is one page of session cards. TotalRemaining counts cards
// beyond this page.
type BatchResponse struct {
	Cards          []cards.Card `json:"cards"`
	TotalRemaining int          `json:"total_remaining"`
}

// ScoreRequest submits a recall grade for a card.
type ScoreRequest struct {
	Grade string `json:"grade"`
}

// ScoreResponse is the scheduler's answer to a grade.
type ScoreResponse struct {
	NextDueAt time.Time `json:"next_due_at"`
}

// DueCountResponse carries a deck's due-card count.
type DueCountResponse struct {
	DueCount int `json:"due_count"`
}

// ServerInfo describes the backend build.
type ServerInfo struct {
	Version          string `json:"version"`
	MinClientVersion string `json:"min_client_version"`
}
