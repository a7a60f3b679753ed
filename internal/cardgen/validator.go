package cardgen

import (
	"fmt"

	"github.com/abhisek/cardz/internal/cards"
)

// Validator checks a generated card. Implementations should be stateless and
// safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for error messages, e.g.
	// "structural", "dedup".
	Name() string

	// Validate checks the card and returns nil if it passes. The validator
	// receives the full GenerateInput for context.
	Validate(c *cards.Card, input GenerateInput) *ValidationError
}

// ValidationError describes why a generated card was rejected.
type ValidationError struct {
	Validator string // name of the validator that failed
	Message   string
	Retryable bool // whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
