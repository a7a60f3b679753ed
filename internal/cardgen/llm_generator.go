package cardgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/cardz/internal/cards"
	"github.com/abhisek/cardz/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// cardOutput is one raw card from the LLM response before validation.
type cardOutput struct {
	Kind         string   `json:"kind"`
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	Hint         string   `json:"hint"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

type batchOutput struct {
	Cards []cardOutput `json:"cards"`
}

// Generate produces a validated batch of cards for the input topic. Cards
// that fail a validator are dropped; an error is returned only when nothing
// usable came back.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]cards.Card, error) {
	ctx = llm.WithPurpose(ctx, "card-generation")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      CardBatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	var (
		out      []cards.Card
		rejected []error
	)
	position := input.NextPosition
	for _, rc := range raw.Cards {
		card := cards.Card{
			TopicID:      input.TopicID,
			Position:     position,
			Kind:         cards.Kind(rc.Kind),
			Question:     rc.Question,
			Answer:       rc.Answer,
			Hint:         rc.Hint,
			Choices:      rc.Choices,
			CorrectIndex: rc.CorrectIndex,
			Explanation:  rc.Explanation,
		}

		if verr := g.validate(&card, input); verr != nil {
			rejected = append(rejected, verr)
			continue
		}

		out = append(out, card)
		position++
	}

	if len(out) == 0 {
		if len(rejected) > 0 {
			return nil, fmt.Errorf("all %d generated cards rejected, first: %w",
				len(rejected), rejected[0])
		}
		return nil, fmt.Errorf("LLM returned no cards")
	}
	return out, nil
}

func (g *LLMGenerator) validate(c *cards.Card, input GenerateInput) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(c, input); verr != nil {
			return verr
		}
	}
	return nil
}
