package session

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/cardz/internal/api"
	"github.com/abhisek/cardz/internal/cards"
	"github.com/abhisek/cardz/internal/review"
	"github.com/abhisek/cardz/internal/router"
	"github.com/abhisek/cardz/internal/screen"
	editorscreen "github.com/abhisek/cardz/internal/screens/editor"
	"github.com/abhisek/cardz/internal/store"
	"github.com/abhisek/cardz/internal/ui/layout"
)

// SessionScreen runs one review or practice session against a deck. All
// session rules live in review.Controller; this screen translates keys into
// controller calls and renders the controller's state.
type SessionScreen struct {
	ctrl   *review.Controller
	bridge *review.EditorBridge
	scorer *recordingScorer // nil in practice mode
	client *api.Client
	events store.EventRepo

	deck      api.Deck
	sessionID string
	startedAt time.Time

	busy          bool // a network-touching controller call is in flight
	confirmQuit   bool
	confirmDelete bool
	bridgeErr     string
	spinner       int
	ended         bool

	snap renderState
}

// renderState is a copy of everything the render paths need from the
// controller. While busy, the in-flight command's goroutine owns the
// controller, so View, HeaderStatus and KeyHints read this snapshot instead;
// refresh retakes it on the update goroutine once the command is done.
type renderState struct {
	phase          review.Phase
	reveal         review.RevealStage
	selected       int
	card           cards.Card
	hasCard        bool
	cursor         int
	batchLen       int
	totalRemaining int
	scoredCount    int
	fetchErr       error
	submitErr      error
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.EscHandler = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)

// New creates a session screen for the given deck and mode.
func New(client *api.Client, events store.EventRepo, deck api.Deck, mode review.Mode, batchLimit int) *SessionScreen {
	sessionID := uuid.New().String()

	var source review.Source
	var scorer review.Scorer
	var rec *recordingScorer
	if mode == review.ModeReview {
		source = client.DueSource(deck.ID, batchLimit)
		rec = &recordingScorer{
			inner:     client.Scorer(),
			events:    events,
			sessionID: sessionID,
		}
		scorer = rec
	} else {
		source = client.PracticeSource(deck.ID, batchLimit)
	}

	ctrl := review.NewController(mode, source, scorer)

	s := &SessionScreen{
		ctrl:      ctrl,
		bridge:    review.NewEditorBridge(client.CardStore(), ctrl),
		scorer:    rec,
		client:    client,
		events:    events,
		deck:      deck,
		sessionID: sessionID,
		startedAt: time.Now(),
	}
	s.refresh()
	return s
}

// refresh retakes the render snapshot from the controller. Must only run on
// the update goroutine while no command is in flight.
func (s *SessionScreen) refresh() {
	s.snap = renderState{
		phase:          s.ctrl.Phase(),
		reveal:         s.ctrl.Reveal(),
		selected:       s.ctrl.Selected(),
		cursor:         s.ctrl.BatchCursor(),
		batchLen:       s.ctrl.BatchLen(),
		totalRemaining: s.ctrl.TotalRemaining(),
		scoredCount:    s.ctrl.ScoredCount(),
		fetchErr:       s.ctrl.Err(),
		submitErr:      s.ctrl.SubmitErr(),
	}
	s.snap.card, s.snap.hasCard = s.ctrl.Current()
}

func (s *SessionScreen) Init() tea.Cmd {
	s.busy = true
	return tea.Batch(s.startSession(), spinnerCmd())
}

func (s *SessionScreen) Title() string {
	if s.ctrl.Mode() == review.ModePractice {
		return "Practice · " + s.deck.Name
	}
	return "Review · " + s.deck.Name
}

// HeaderStatus shows session progress while cards are on display.
func (s *SessionScreen) HeaderStatus() string {
	switch s.snap.phase {
	case review.PhasePresenting, review.PhaseSubmitting:
	default:
		return ""
	}
	status := fmt.Sprintf("card %d/%d", s.snap.cursor+1, s.snap.batchLen)
	if rem := s.snap.totalRemaining; rem > 0 {
		status += fmt.Sprintf(" · %d left", rem)
	}
	return status
}

// HandlesEsc keeps Esc inside the screen so quitting goes through the
// confirmation and end-event flow instead of a bare pop.
func (s *SessionScreen) HandlesEsc() bool {
	return !s.ended
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.confirmDelete {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete card"},
			{Key: "N", Description: "Keep it"},
		}
	}

	switch s.snap.phase {
	case review.PhaseErrored:
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case review.PhaseComplete:
		return []layout.KeyHint{
			{Key: "r", Description: "Go again"},
			{Key: "Esc", Description: "Back"},
		}
	case review.PhasePresenting:
		return s.presentingHints()
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *SessionScreen) presentingHints() []layout.KeyHint {
	if !s.snap.hasCard {
		return nil
	}
	cur := s.snap.card

	if s.snap.reveal == review.RevealAnswer {
		var hints []layout.KeyHint
		if s.ctrl.Mode() == review.ModeReview {
			hints = append(hints, layout.KeyHint{Key: "1-4", Description: "Grade"})
		} else {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next"})
		}
		return append(hints,
			layout.KeyHint{Key: "e", Description: "Edit"},
			layout.KeyHint{Key: "d", Description: "Delete"},
			layout.KeyHint{Key: "Esc", Description: "End"},
		)
	}

	var hints []layout.KeyHint
	if cur.Kind == cards.KindMultipleChoice {
		hints = append(hints,
			layout.KeyHint{Key: "1-4/↑↓", Description: "Pick"},
			layout.KeyHint{Key: "Enter", Description: "Check"},
		)
	} else {
		if cur.HasHint() && s.snap.reveal == review.RevealHidden {
			hints = append(hints, layout.KeyHint{Key: "h", Description: "Hint"})
		}
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Show answer"})
	}
	return append(hints,
		layout.KeyHint{Key: "e", Description: "Edit"},
		layout.KeyHint{Key: "Esc", Description: "End"},
	)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case batchLoadedMsg:
		if msg.Ctrl != s.ctrl {
			return s, nil
		}
		s.busy = false
		s.refresh()
		return s, nil

	case scoreSubmittedMsg:
		if msg.Ctrl != s.ctrl {
			return s, nil
		}
		s.busy = false
		s.refresh()
		return s, nil

	case cardReloadedMsg:
		if msg.Ctrl != s.ctrl {
			return s, nil
		}
		s.busy = false
		s.refresh()
		s.bridgeErr = ""
		if msg.Err != nil {
			s.bridgeErr = msg.Err.Error()
		}
		return s, nil

	case cardRemovedMsg:
		if msg.Ctrl != s.ctrl {
			return s, nil
		}
		s.busy = false
		s.refresh()
		s.bridgeErr = ""
		if msg.Err != nil {
			s.bridgeErr = msg.Err.Error()
		}
		return s, nil

	case cardFetchedMsg:
		if msg.Ctrl != s.ctrl {
			return s, nil
		}
		s.busy = false
		s.refresh()
		if msg.Err != nil {
			s.bridgeErr = msg.Err.Error()
			return s, nil
		}
		s.bridgeErr = ""
		client := s.client
		card := msg.Card
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: editorscreen.New(client, card)}
		}

	case editorscreen.SavedMsg:
		s.busy = true
		return s, tea.Batch(s.reloadCard(), spinnerCmd())

	case editorscreen.DeletedMsg:
		s.busy = true
		return s, tea.Batch(s.removeCard(), spinnerCmd())

	case spinnerTickMsg:
		if !s.inFlight() {
			return s, nil
		}
		s.spinner++
		return s, spinnerCmd()

	case sessionEndMsg:
		return s.handleSessionEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *SessionScreen) inFlight() bool {
	if s.busy {
		return true
	}
	switch s.snap.phase {
	case review.PhaseLoading, review.PhaseRefilling, review.PhaseSubmitting:
		return true
	}
	return false
}

func (s *SessionScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	s.ended = true
	events := s.events
	data := store.SessionEventData{
		SessionID:    s.sessionID,
		Action:       "end",
		Mode:         modeString(s.ctrl.Mode()),
		DeckID:       s.deck.ID,
		CardsScored:  s.snap.scoredCount,
		DurationSecs: int64(time.Since(s.startedAt).Seconds()),
	}
	return s, func() tea.Msg {
		if events != nil {
			_ = events.AppendSessionEvent(context.Background(), data)
		}
		return router.PopScreenMsg{}
	}
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.confirmDelete {
		switch key {
		case "y", "Y":
			s.confirmDelete = false
			s.busy = true
			return s, tea.Batch(s.deleteCurrent(), spinnerCmd())
		case "n", "N", "esc":
			s.confirmDelete = false
		}
		return s, nil
	}

	if s.inFlight() {
		return s, nil
	}

	switch s.snap.phase {
	case review.PhaseErrored:
		switch key {
		case "r":
			s.busy = true
			s.snap.phase = review.PhaseLoading
			return s, tea.Batch(s.retry(), spinnerCmd())
		case "esc":
			return s, func() tea.Msg { return sessionEndMsg{} }
		}
		return s, nil

	case review.PhaseComplete:
		switch key {
		case "r":
			s.busy = true
			s.snap.phase = review.PhaseLoading
			return s, tea.Batch(s.restart(), spinnerCmd())
		case "esc", "enter":
			return s, func() tea.Msg { return sessionEndMsg{} }
		}
		return s, nil

	case review.PhasePresenting:
		return s.handlePresentingKey(key)
	}

	if key == "esc" {
		return s, func() tea.Msg { return sessionEndMsg{} }
	}
	return s, nil
}

func (s *SessionScreen) handlePresentingKey(key string) (screen.Screen, tea.Cmd) {
	cur, ok := s.ctrl.Current()
	if !ok {
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "e":
		// The cached card has shuffled choices; the editor gets the
		// authoritative copy so a save can't reorder the card on the backend.
		s.busy = true
		return s, tea.Batch(s.fetchForEdit(), spinnerCmd())
	case "d":
		s.confirmDelete = true
		return s, nil
	}

	if s.ctrl.Reveal() == review.RevealAnswer {
		return s.handleRevealedKey(key)
	}

	// Pre-reveal controls.
	switch key {
	case "h":
		s.ctrl.RevealHint()
	case "enter", "space", " ":
		s.ctrl.RevealAnswer()
	case "up", "k":
		if cur.Kind == cards.KindMultipleChoice && s.ctrl.Selected() > 0 {
			s.ctrl.SelectChoice(s.ctrl.Selected() - 1)
		}
	case "down", "j":
		if cur.Kind == cards.KindMultipleChoice {
			if s.ctrl.Selected() < 0 {
				s.ctrl.SelectChoice(0)
			} else {
				s.ctrl.SelectChoice(s.ctrl.Selected() + 1)
			}
		}
	case "1", "2", "3", "4":
		if cur.Kind == cards.KindMultipleChoice {
			s.ctrl.SelectChoice(int(key[0] - '1'))
		}
	}
	s.refresh()
	return s, nil
}

func (s *SessionScreen) handleRevealedKey(key string) (screen.Screen, tea.Cmd) {
	if s.ctrl.Mode() == review.ModePractice {
		switch key {
		case "enter", "space", " ", "n":
			s.busy = true
			return s, tea.Batch(s.next(), spinnerCmd())
		}
		return s, nil
	}

	var grade review.Grade
	switch key {
	case "1":
		grade = review.GradeAgain
	case "2":
		grade = review.GradeHard
	case "3":
		grade = review.GradeGood
	case "4":
		grade = review.GradeEasy
	default:
		return s, nil
	}
	s.busy = true
	return s, tea.Batch(s.submit(grade), spinnerCmd())
}

// startSession persists the start event and fetches the first batch.
func (s *SessionScreen) startSession() tea.Cmd {
	ctrl := s.ctrl
	events := s.events
	data := store.SessionEventData{
		SessionID: s.sessionID,
		Action:    "start",
		Mode:      modeString(ctrl.Mode()),
		DeckID:    s.deck.ID,
	}
	return func() tea.Msg {
		ctx := context.Background()
		if events != nil {
			_ = events.AppendSessionEvent(ctx, data)
		}
		_ = ctrl.Start(ctx) // failure lands in the Errored phase
		return batchLoadedMsg{Ctrl: ctrl}
	}
}

func (s *SessionScreen) retry() tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		_ = ctrl.Retry(context.Background())
		return batchLoadedMsg{Ctrl: ctrl}
	}
}

func (s *SessionScreen) restart() tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		_ = ctrl.Restart(context.Background())
		return batchLoadedMsg{Ctrl: ctrl}
	}
}

func (s *SessionScreen) submit(grade review.Grade) tea.Cmd {
	ctrl := s.ctrl
	rec := s.scorer
	return func() tea.Msg {
		if rec != nil {
			if cur, ok := ctrl.Current(); ok {
				rec.SetCardKind(cur.Kind)
			}
		}
		err := ctrl.Submit(context.Background(), grade)
		return scoreSubmittedMsg{Ctrl: ctrl, Err: err}
	}
}

func (s *SessionScreen) next() tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		err := ctrl.Next(context.Background())
		return scoreSubmittedMsg{Ctrl: ctrl, Err: err}
	}
}

// fetchForEdit loads the backend's copy of the current card for the editor.
// The session cache holds a shuffled presentation of it, and saving that
// back would persist the shuffled choice order.
func (s *SessionScreen) fetchForEdit() tea.Cmd {
	ctrl := s.ctrl
	client := s.client
	return func() tea.Msg {
		cur, ok := ctrl.Current()
		if !ok {
			return cardFetchedMsg{Ctrl: ctrl, Err: review.ErrNoCurrentCard}
		}
		card, err := client.GetCard(context.Background(), cur.TopicID, cur.Position)
		return cardFetchedMsg{Ctrl: ctrl, Card: card, Err: err}
	}
}

// reloadCard reconciles an out-of-band edit of the current card.
func (s *SessionScreen) reloadCard() tea.Cmd {
	ctrl := s.ctrl
	bridge := s.bridge
	return func() tea.Msg {
		err := bridge.CardEdited(context.Background())
		return cardReloadedMsg{Ctrl: ctrl, Err: err}
	}
}

// removeCard reconciles a deletion that already happened on the backend.
func (s *SessionScreen) removeCard() tea.Cmd {
	ctrl := s.ctrl
	bridge := s.bridge
	return func() tea.Msg {
		err := bridge.CardDeleted(context.Background())
		return cardRemovedMsg{Ctrl: ctrl, Err: err}
	}
}

// deleteCurrent deletes the current card on the backend, then reconciles.
func (s *SessionScreen) deleteCurrent() tea.Cmd {
	ctrl := s.ctrl
	bridge := s.bridge
	client := s.client
	return func() tea.Msg {
		ctx := context.Background()
		cur, ok := ctrl.Current()
		if !ok {
			return cardRemovedMsg{Ctrl: ctrl, Err: review.ErrNoCurrentCard}
		}
		if err := client.DeleteCard(ctx, cur.TopicID, cur.Position); err != nil {
			return cardRemovedMsg{Ctrl: ctrl, Err: err}
		}
		err := bridge.CardDeleted(ctx)
		return cardRemovedMsg{Ctrl: ctrl, Err: err}
	}
}

func modeString(m review.Mode) string {
	if m == review.ModePractice {
		return "practice"
	}
	return "review"
}

func spinnerCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
