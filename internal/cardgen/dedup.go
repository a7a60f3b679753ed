package cardgen

import (
	"strings"

	"github.com/abhisek/cardz/internal/cards"
)

// DedupValidator rejects cards whose question already exists in the topic.
// The prompt asks the model to avoid repeats, but models do repeat, so this
// is enforced after the fact too.
type DedupValidator struct{}

func (v *DedupValidator) Name() string { return "dedup" }

func (v *DedupValidator) Validate(c *cards.Card, input GenerateInput) *ValidationError {
	normalized := normalizeQuestion(c.Question)
	for _, existing := range input.ExistingQuestions {
		if normalizeQuestion(existing) == normalized {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "question duplicates an existing card",
				Retryable: true,
			}
		}
	}
	return nil
}

func normalizeQuestion(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
