package decks

import "github.com/abhisek/cardz/internal/api"

// decksLoadedMsg is sent when the deck list (and per-deck due counts) has
// been fetched.
type decksLoadedMsg struct {
	Decks []api.Deck
	Due   map[string]int
	Err   error
}
