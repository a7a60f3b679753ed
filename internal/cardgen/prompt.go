package cardgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/cardz/internal/cards"
)

const systemPrompt = `You are an expert author of spaced-repetition flashcards.

Rules:
- Generate flashcards for the given topic. Each card tests exactly one fact or concept.
- Questions must be self-contained: answerable without seeing any other card.
- Use plain text. No markdown, no LaTeX.
- Choose "qa_hint" for recall cards (the learner answers from memory). The hint, when present, should nudge without giving the answer away.
- Choose "multiple_choice" for recognition, comparison, or identification cards. Provide exactly 4 options with exactly one correct; distractors should reflect plausible confusions, not random noise.
- Keep answers short and precise. Put elaboration in the explanation, not the answer.
- Do not repeat any question from the "existing cards" list.`

// buildUserMessage constructs the user message from GenerateInput and Config
// limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Deck: %s\n", input.DeckName)
	fmt.Fprintf(&b, "Topic: %s\n", input.TopicName)
	fmt.Fprintf(&b, "Cards to generate: %d\n", input.Count)
	fmt.Fprintf(&b, "Allowed kinds: %s\n", kindList(input.Kinds))

	if input.Guidance != "" {
		b.WriteString("\nDirection from the user:\n")
		b.WriteString(input.Guidance)
		b.WriteString("\n")
	}

	b.WriteString("\nExisting cards in this topic:\n")
	b.WriteString(buildExisting(input.ExistingQuestions, cfg.MaxExistingQuestions))

	return b.String()
}

func kindList(kinds []cards.Kind) string {
	if len(kinds) == 0 {
		return "qa_hint, multiple_choice"
	}
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}

// buildExisting formats existing questions for the prompt, respecting the max
// limit. Returns "None" when the topic is empty.
func buildExisting(questions []string, max int) string {
	if len(questions) == 0 {
		return "None"
	}

	// Keep only the most recent N questions.
	if max > 0 && len(questions) > max {
		questions = questions[len(questions)-max:]
	}

	var b strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
