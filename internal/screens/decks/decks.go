package decks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/cardz/internal/api"
	"github.com/abhisek/cardz/internal/review"
	"github.com/abhisek/cardz/internal/router"
	"github.com/abhisek/cardz/internal/screen"
	sessionscreen "github.com/abhisek/cardz/internal/screens/session"
	"github.com/abhisek/cardz/internal/store"
	"github.com/abhisek/cardz/internal/ui/layout"
	"github.com/abhisek/cardz/internal/ui/theme"
)

// DeckScreen lists the account's decks with their due counts and starts
// review or practice sessions.
type DeckScreen struct {
	client     *api.Client
	events     store.EventRepo
	batchLimit int

	decks    []api.Deck
	due      map[string]int
	selected int
	loading  bool
	errMsg   string
}

var _ screen.Screen = (*DeckScreen)(nil)
var _ screen.KeyHintProvider = (*DeckScreen)(nil)

// New creates the deck list screen.
func New(client *api.Client, events store.EventRepo, batchLimit int) *DeckScreen {
	return &DeckScreen{
		client:     client,
		events:     events,
		batchLimit: batchLimit,
		loading:    true,
	}
}

func (d *DeckScreen) Init() tea.Cmd {
	return d.loadDecks()
}

func (d *DeckScreen) Title() string {
	return "Decks"
}

func (d *DeckScreen) KeyHints() []layout.KeyHint {
	if d.errMsg != "" {
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Review"},
		{Key: "p", Description: "Practice"},
		{Key: "r", Description: "Refresh"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// loadDecks fetches the deck list, then the due counts concurrently.
func (d *DeckScreen) loadDecks() tea.Cmd {
	client := d.client
	return func() tea.Msg {
		ctx := context.Background()

		decks, err := client.ListDecks(ctx)
		if err != nil {
			return decksLoadedMsg{Err: err}
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
			return decksLoadedMsg{Err: err}
		}

		return decksLoadedMsg{Decks: decks, Due: due}
	}
}

func (d *DeckScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case decksLoadedMsg:
		d.loading = false
		if msg.Err != nil {
			d.errMsg = msg.Err.Error()
			return d, nil
		}
		d.errMsg = ""
		d.decks = msg.Decks
		d.due = msg.Due
		if d.selected >= len(d.decks) {
			d.selected = 0
		}
		return d, nil

	case tea.KeyMsg:
		return d.handleKey(msg)
	}

	return d, nil
}

func (d *DeckScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "r":
		d.loading = true
		d.errMsg = ""
		return d, d.loadDecks()
	case "up", "k":
		if d.selected > 0 {
			d.selected--
		}
	case "down", "j":
		if d.selected < len(d.decks)-1 {
			d.selected++
		}
	case "enter":
		return d.startSession(review.ModeReview)
	case "p":
		return d.startSession(review.ModePractice)
	}
	return d, nil
}

func (d *DeckScreen) startSession(mode review.Mode) (screen.Screen, tea.Cmd) {
	if d.loading || d.selected >= len(d.decks) {
		return d, nil
	}
	deck := d.decks[d.selected]
	return d, func() tea.Msg {
		return router.PushScreenMsg{
			Screen: sessionscreen.New(d.client, d.events, deck, mode, d.batchLimit),
		}
	}
}

func (d *DeckScreen) View(width, height int) string {
	if d.loading {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading decks...")
	}
	if d.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n  Could not load decks: %s\n\n  Press r to retry.", d.errMsg))
	}
	if len(d.decks) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No decks yet. Create one on the server, then press r.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, deck := range d.decks {
		line := d.renderDeckRow(deck, i == d.selected)
		b.WriteString(line)
		b.WriteString("\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (d *DeckScreen) renderDeckRow(deck api.Deck, selected bool) string {
	prefix := "    "
	nameStyle := theme.Unselected
	if selected {
		prefix = "  ▸ "
		nameStyle = theme.Selected
	}

	name := nameStyle.Render(fmt.Sprintf("%-28s", truncate(deck.Name, 28)))
	meta := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%3d topics", deck.TopicCount))

	dueStr := "      "
	if n, ok := d.due[deck.ID]; ok && n > 0 {
		dueStr = lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("%3d due", n))
	}

	return prefix + name + "  " + meta + "  " + dueStr
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
