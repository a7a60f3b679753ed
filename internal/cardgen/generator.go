package cardgen

import (
	"context"

	"github.com/abhisek/cardz/internal/cards"
)

// Generator produces a batch of flashcards for a topic.
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) ([]cards.Card, error)
}

// GenerateInput holds all context needed to generate cards.
type GenerateInput struct {
	// TopicID is the topic the cards belong to.
	TopicID string

	// TopicName and DeckName describe the subject matter for the prompt.
	TopicName string
	DeckName  string

	// Count is how many cards to generate.
	Count int

	// Kinds restricts the card kinds to generate. Empty means both.
	Kinds []cards.Kind

	// NextPosition is the position the first generated card will occupy.
	// Existing cards in the topic occupy 0..NextPosition-1.
	NextPosition int

	// ExistingQuestions contains the question text of the topic's current
	// cards. Used for deduplication, both in the prompt and as a validator.
	ExistingQuestions []string

	// Guidance is optional freeform direction from the user
	// (e.g. "focus on error handling").
	Guidance string
}
