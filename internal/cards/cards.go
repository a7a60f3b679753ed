package cards

// Kind discriminates the two card payloads the backend serves.
type Kind string

const (
	// KindQAHint is a question/answer card with an optional hint.
	KindQAHint Kind = "qa_hint"

	// KindMultipleChoice is a question with a fixed set of options,
	// exactly one of which is correct.
	KindMultipleChoice Kind = "multiple_choice"
)

// Card is a unit of study content.
//
// A card is addressed for scheduling by the pair (TopicID, Position), not by
// its own ID: the backend tracks recall state per slot within a topic, so the
// composite pair is the key used when submitting scores.
type Card struct {
	// ID is the card's stable identifier.
	ID string `json:"id"`

	// TopicID is the owning topic.
	TopicID string `json:"topic_id"`

	// Position is the card's index within its topic.
	Position int `json:"position"`

	// Kind selects which payload fields below are meaningful.
	Kind Kind `json:"kind"`

	// Question is the prompt, present for both kinds.
	Question string `json:"question"`

	// Answer is the canonical answer text (qa_hint only).
	Answer string `json:"answer,omitempty"`

	// Hint is an optional scaffolding hint (qa_hint only).
	Hint string `json:"hint,omitempty"`

	// Choices is the ordered option list (multiple_choice only).
	Choices []string `json:"choices,omitempty"`

	// CorrectIndex points at the correct entry of Choices
	// (multiple_choice only). It always refers to the current ordering.
	CorrectIndex int `json:"correct_index"`

	// Explanation is an optional rationale shown after the answer is
	// revealed (multiple_choice only).
	Explanation string `json:"explanation,omitempty"`

	// Weight is the card's intrinsic scheduling weight. It is passed
	// through to the backend unchanged; the client never interprets it.
	Weight float64 `json:"weight"`
}

// HasHint reports whether the card can offer a hint stage.
func (c Card) HasHint() bool {
	return c.Kind == KindQAHint && c.Hint != ""
}

// CorrectChoice returns the text of the correct option, or "" for
// non-multiple-choice cards.
func (c Card) CorrectChoice() string {
	if c.Kind != KindMultipleChoice {
		return ""
	}
	if c.CorrectIndex < 0 || c.CorrectIndex >= len(c.Choices) {
		return ""
	}
	return c.Choices[c.CorrectIndex]
}
