package cardgen

import (
	"fmt"

	"github.com/abhisek/cardz/internal/cards"
)

// StructuralValidator checks that required fields are present, within length
// limits, and consistent with the card's kind.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c *cards.Card, _ GenerateInput) *ValidationError {
	if c.Question == "" {
		return v.fail("question is empty")
	}
	if len(c.Question) > 500 {
		return v.fail("question exceeds 500 characters")
	}

	switch c.Kind {
	case cards.KindQAHint:
		if c.Answer == "" {
			return v.fail("answer is empty")
		}
		if len(c.Answer) > 1000 {
			return v.fail("answer exceeds 1000 characters")
		}
		if len(c.Choices) != 0 {
			return v.fail("qa_hint card must not carry choices")
		}
	case cards.KindMultipleChoice:
		if len(c.Choices) != 4 {
			return v.fail(fmt.Sprintf("multiple_choice card has %d choices, want 4", len(c.Choices)))
		}
		if c.CorrectIndex < 0 || c.CorrectIndex >= len(c.Choices) {
			return v.fail(fmt.Sprintf("correct_index %d out of range", c.CorrectIndex))
		}
		for i, choice := range c.Choices {
			if choice == "" {
				return v.fail(fmt.Sprintf("choice %d is empty", i))
			}
		}
	default:
		return v.fail(fmt.Sprintf("unknown kind %q", c.Kind))
	}

	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}
