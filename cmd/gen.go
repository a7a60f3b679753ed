package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cardz/internal/cardgen"
	"github.com/abhisek/cardz/internal/cards"
	"github.com/abhisek/cardz/internal/llm"
	"github.com/abhisek/cardz/internal/store"
)

var genCmd = &cobra.Command{
	Use:   "gen <deck-id> <topic-name>",
	Short: "Generate cards for a topic with an LLM and upload them",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckID, topicName := args[0], args[1]
		count, _ := cmd.Flags().GetInt("count")
		kindNames, _ := cmd.Flags().GetStringSlice("kind")
		guidance, _ := cmd.Flags().GetString("guidance")

		kinds, err := parseKinds(kindNames)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		client := newClient(cfg)
		ctx := cmd.Context()

		decks, err := client.ListDecks(ctx)
		if err != nil {
			return err
		}
		deck, ok := findDeck(decks, deckID)
		if !ok {
			return fmt.Errorf("deck %q not found", deckID)
		}

		topics, err := client.ListTopics(ctx, deck.ID)
		if err != nil {
			return err
		}
		var topicID string
		for _, t := range topics {
			if strings.EqualFold(t.Name, topicName) {
				topicID = t.ID
				break
			}
		}
		if topicID == "" {
			return fmt.Errorf("topic %q not found in deck %q", topicName, deck.Name)
		}

		existing, err := client.ListCards(ctx, topicID)
		if err != nil {
			return err
		}
		questions := make([]string, len(existing))
		for i, c := range existing {
			questions[i] = c.Question
		}

		// LLM traffic is logged to the local store when it is available.
		var eventRepo store.EventRepo
		if dbPath, err := resolveDBPath(cmd); err == nil {
			if st, err := store.Open(dbPath); err == nil {
				defer st.Close()
				eventRepo = st.EventRepo()
			}
		}

		provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
		if err != nil {
			return fmt.Errorf("no LLM provider configured: %w", err)
		}

		generator := cardgen.New(provider, cardgen.DefaultConfig())
		generated, err := generator.Generate(ctx, cardgen.GenerateInput{
			TopicID:           topicID,
			TopicName:         topicName,
			DeckName:          deck.Name,
			Count:             count,
			Kinds:             kinds,
			NextPosition:      len(existing),
			ExistingQuestions: questions,
			Guidance:          guidance,
		})
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		if err := client.CreateCards(ctx, topicID, generated); err != nil {
			return fmt.Errorf("upload: %w", err)
		}

		fmt.Printf("Added %d cards to %s / %s:\n", len(generated), deck.Name, topicName)
		for _, c := range generated {
			fmt.Printf("  [%d] (%s) %s\n", c.Position, c.Kind, truncate(c.Question, 70))
		}
		if len(generated) < count {
			fmt.Fprintf(os.Stderr, "%d of %d requested cards failed validation and were dropped.\n",
				count-len(generated), count)
		}
		return nil
	},
}

func parseKinds(names []string) ([]cards.Kind, error) {
	var kinds []cards.Kind
	for _, name := range names {
		switch name {
		case "qa", "qa_hint":
			kinds = append(kinds, cards.KindQAHint)
		case "mc", "multiple_choice":
			kinds = append(kinds, cards.KindMultipleChoice)
		default:
			return nil, fmt.Errorf("unknown card kind %q (want qa_hint or multiple_choice)", name)
		}
	}
	return kinds, nil
}

func init() {
	genCmd.Flags().IntP("count", "n", 5, "Number of cards to generate")
	genCmd.Flags().StringSlice("kind", nil, "Card kinds to generate: qa_hint, multiple_choice (default both)")
	genCmd.Flags().StringP("guidance", "g", "", "Freeform direction for the generator (e.g. \"focus on error handling\")")
}
