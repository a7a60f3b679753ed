package cmd

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/cardz/internal/api"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List decks with their due counts",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		if len(decks) == 0 {
			fmt.Println("No decks.")
			return nil
		}

		due := make(map[string]int, len(decks))
		var mu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		for _, deck := range decks {
			g.Go(func() error {
				n, err := client.DueCount(gctx, deck.ID)
				if err != nil {
					return err
				}
				mu.Lock()
				due[deck.ID] = n
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Printf("%-36s  %-28s  %6s  %5s\n", "ID", "Name", "Topics", "Due")
		fmt.Println(strings.Repeat("─", 82))
		for _, deck := range decks {
			fmt.Printf("%-36s  %-28s  %6d  %5d\n",
				deck.ID, truncate(deck.Name, 28), deck.TopicCount, due[deck.ID])
		}
		return nil
	},
}

func findDeck(decks []api.Deck, id string) (api.Deck, bool) {
	for _, d := range decks {
		if d.ID == id {
			return d, true
		}
	}
	return api.Deck{}, false
}
