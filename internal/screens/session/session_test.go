package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cardz/internal/api"
	"github.com/abhisek/cardz/internal/cards"
	"github.com/abhisek/cardz/internal/review"
	"github.com/abhisek/cardz/internal/router"
	editorscreen "github.com/abhisek/cardz/internal/screens/editor"
)

// fakeBackend serves the session endpoints over httptest. Batches are served
// in order; after the last one, an empty batch ends the session.
type fakeBackend struct {
	mu         sync.Mutex
	batches    [][]cards.Card
	fetchCalls int
	scores     []string
	cardByPos  map[int]cards.Card
	scoreDelay time.Duration
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/decks/d1/due", f.serveBatch)
	mux.HandleFunc("GET /api/v1/decks/d1/practice", f.serveBatch)
	mux.HandleFunc("POST /api/v1/topics/t1/cards/{pos}/score", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Grade string `json:"grade"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		time.Sleep(f.scoreDelay)
		f.mu.Lock()
		f.scores = append(f.scores, req.Grade)
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"next_due_at": "2026-09-01T00:00:00Z"})
	})
	mux.HandleFunc("GET /api/v1/topics/t1/cards/0", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		card := f.cardByPos[0]
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(card)
	})
	return mux
}

func (f *fakeBackend) serveBatch(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	var batch []cards.Card
	if f.fetchCalls < len(f.batches) {
		batch = f.batches[f.fetchCalls]
	}
	f.fetchCalls++
	f.mu.Unlock()

	if batch == nil {
		batch = []cards.Card{}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"cards":           batch,
		"total_remaining": 0,
	})
}

func qaCard(pos int) cards.Card {
	return cards.Card{
		ID: "c1", TopicID: "t1", Position: pos, Kind: cards.KindQAHint,
		Question: "What does defer do?",
		Answer:   "Schedules a call for function exit",
		Hint:     "Think cleanup",
	}
}

func mcCard(pos int) cards.Card {
	return cards.Card{
		ID: "c2", TopicID: "t1", Position: pos, Kind: cards.KindMultipleChoice,
		Question: "Which type is a reference type?",
		Choices:  []string{"map", "int", "struct", "array"},
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestSession(t *testing.T, backend *fakeBackend, mode review.Mode) *SessionScreen {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL)
	deck := api.Deck{ID: "d1", Name: "Go"}
	return New(client, nil, deck, mode, 10)
}

// start runs the start command synchronously and applies its message.
func start(t *testing.T, s *SessionScreen) {
	t.Helper()
	msg := s.startSession()()
	if _, cmd := s.Update(msg); cmd != nil {
		t.Fatalf("unexpected command after start message")
	}
}

func TestStartEmptyDeckCompletes(t *testing.T) {
	s := newTestSession(t, &fakeBackend{}, review.ModeReview)
	start(t, s)

	if s.ctrl.Phase() != review.PhaseComplete {
		t.Fatalf("phase = %s, want complete", s.ctrl.Phase())
	}
	view := s.View(80, 24)
	if !strings.Contains(view, "Nothing due") {
		t.Errorf("completion view missing empty-deck headline:\n%s", view)
	}
}

func TestQACardRevealAndGrade(t *testing.T) {
	backend := &fakeBackend{batches: [][]cards.Card{{qaCard(0)}}}
	s := newTestSession(t, backend, review.ModeReview)
	start(t, s)

	if s.ctrl.Phase() != review.PhasePresenting {
		t.Fatalf("phase = %s, want presenting", s.ctrl.Phase())
	}

	// Hint first, then the answer.
	s.Update(keyPress('h'))
	if s.ctrl.Reveal() != review.RevealHint {
		t.Errorf("reveal = %v after h, want hint", s.ctrl.Reveal())
	}
	s.Update(specialKey(tea.KeyEnter))
	if s.ctrl.Reveal() != review.RevealAnswer {
		t.Fatalf("reveal = %v after enter, want answer", s.ctrl.Reveal())
	}

	// Grade it; the refill comes back empty, completing the session.
	msg := s.submit(review.GradeGood)()
	s.Update(msg)

	if s.ctrl.Phase() != review.PhaseComplete {
		t.Errorf("phase = %s after last grade, want complete", s.ctrl.Phase())
	}
	if len(backend.scores) != 1 || backend.scores[0] != "good" {
		t.Errorf("scores = %v, want [good]", backend.scores)
	}
	if s.ctrl.ScoredCount() != 1 {
		t.Errorf("scored count = %d, want 1", s.ctrl.ScoredCount())
	}
}

func TestMultipleChoiceGating(t *testing.T) {
	backend := &fakeBackend{batches: [][]cards.Card{{mcCard(0)}}}
	s := newTestSession(t, backend, review.ModeReview)
	start(t, s)

	// Enter without a selection must not reveal.
	s.Update(specialKey(tea.KeyEnter))
	if s.ctrl.Reveal() == review.RevealAnswer {
		t.Fatal("answer revealed without a selection")
	}

	s.Update(keyPress('2'))
	if s.ctrl.Selected() != 1 {
		t.Fatalf("selected = %d after pressing 2, want 1", s.ctrl.Selected())
	}
	s.Update(specialKey(tea.KeyEnter))
	if s.ctrl.Reveal() != review.RevealAnswer {
		t.Fatal("answer not revealed after a selection")
	}

	// Digits now mean grades, not selection changes.
	before := s.ctrl.Selected()
	_, cmd := s.Update(keyPress('1'))
	if cmd == nil {
		t.Error("expected a submit command from grading")
	}
	if s.ctrl.Selected() != before {
		t.Errorf("selection changed after reveal: %d -> %d", before, s.ctrl.Selected())
	}
}

func TestPracticeModeAdvancesWithoutScoring(t *testing.T) {
	backend := &fakeBackend{batches: [][]cards.Card{{qaCard(0), qaCard(1)}}}
	s := newTestSession(t, backend, review.ModePractice)
	start(t, s)

	s.Update(specialKey(tea.KeyEnter))
	if s.ctrl.Reveal() != review.RevealAnswer {
		t.Fatal("answer not revealed")
	}

	s.Update(s.next()())
	if s.ctrl.BatchCursor() != 1 {
		t.Errorf("cursor = %d after next, want 1", s.ctrl.BatchCursor())
	}
	if len(backend.scores) != 0 {
		t.Errorf("practice mode submitted scores: %v", backend.scores)
	}
}

func TestQuitConfirmFlow(t *testing.T) {
	backend := &fakeBackend{batches: [][]cards.Card{{qaCard(0)}}}
	s := newTestSession(t, backend, review.ModeReview)
	start(t, s)

	s.Update(specialKey(tea.KeyEscape))
	if !s.confirmQuit {
		t.Fatal("expected quit confirmation after esc")
	}
	s.Update(keyPress('n'))
	if s.confirmQuit {
		t.Fatal("expected n to dismiss the confirmation")
	}

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after confirming quit")
	}
	endMsg := cmd()
	if _, ok := endMsg.(sessionEndMsg); !ok {
		t.Fatalf("expected sessionEndMsg, got %T", endMsg)
	}

	_, cmd = s.Update(endMsg)
	if cmd == nil {
		t.Fatal("expected a pop command from the end flow")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("end flow did not pop the screen")
	}
	if !s.ended {
		t.Error("screen still claims the session is live")
	}
}

func TestEditReconciliation(t *testing.T) {
	edited := qaCard(0)
	edited.Question = "What does defer schedule?"
	backend := &fakeBackend{
		batches:   [][]cards.Card{{qaCard(0)}},
		cardByPos: map[int]cards.Card{0: edited},
	}
	s := newTestSession(t, backend, review.ModeReview)
	start(t, s)

	// Reveal, then reconcile an edit: the reveal must reset.
	s.Update(specialKey(tea.KeyEnter))
	s.Update(s.reloadCard()())

	cur, ok := s.ctrl.Current()
	if !ok {
		t.Fatal("no current card after reconciliation")
	}
	if cur.Question != "What does defer schedule?" {
		t.Errorf("current question = %q, want the edited text", cur.Question)
	}
	if s.ctrl.Reveal() != review.RevealHidden {
		t.Errorf("reveal = %v after edit, want hidden", s.ctrl.Reveal())
	}
}

func TestStaleControllerMessageDropped(t *testing.T) {
	backend := &fakeBackend{batches: [][]cards.Card{{qaCard(0)}}}
	s := newTestSession(t, backend, review.ModeReview)
	start(t, s)

	other := review.NewController(review.ModeReview, nil, nil)
	s.busy = true
	s.Update(batchLoadedMsg{Ctrl: other})
	if !s.busy {
		t.Error("message for a foreign controller was applied")
	}
	s.Update(batchLoadedMsg{Ctrl: s.ctrl})
	if s.busy {
		t.Error("own controller message was not applied")
	}
}

// Rendering must never touch the controller while a command goroutine owns
// it. This drives a real submit against a slow backend and renders the whole
// time; run under the race detector it fails if View or HeaderStatus read
// controller state mid-flight.
func TestRenderWhileSubmitInFlight(t *testing.T) {
	backend := &fakeBackend{
		batches:    [][]cards.Card{{qaCard(0)}},
		scoreDelay: 50 * time.Millisecond,
	}
	s := newTestSession(t, backend, review.ModeReview)
	start(t, s)

	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('3')) // marks the screen busy and would dispatch the submit

	done := make(chan tea.Msg, 1)
	go func() { done <- s.submit(review.GradeGood)() }()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case msg := <-done:
			s.Update(msg)
			if s.busy {
				t.Error("still busy after the submit message")
			}
			if s.ctrl.Phase() != review.PhaseComplete {
				t.Errorf("phase = %s after last grade, want complete", s.ctrl.Phase())
			}
			return
		case <-deadline:
			t.Fatal("submit never completed")
		default:
			_ = s.View(80, 24)
			_ = s.HeaderStatus()
			_ = s.KeyHints()
			s.Update(spinnerTickMsg(time.Now()))
		}
	}
}

// The editor must open on the backend's copy of the card, not the shuffled
// one on display, or saving would persist the shuffled choice order.
func TestEditOpensUnshuffledCard(t *testing.T) {
	canonical := mcCard(0)
	canonical.CorrectIndex = 0
	backend := &fakeBackend{
		batches:   [][]cards.Card{{canonical}},
		cardByPos: map[int]cards.Card{0: canonical},
	}
	s := newTestSession(t, backend, review.ModeReview)
	start(t, s)

	_, cmd := s.Update(keyPress('e'))
	if cmd == nil {
		t.Fatal("expected a fetch command from e")
	}
	if !s.busy {
		t.Error("screen not busy while fetching the card")
	}

	msg := s.fetchForEdit()()
	fetched, ok := msg.(cardFetchedMsg)
	if !ok {
		t.Fatalf("expected cardFetchedMsg, got %T", msg)
	}
	if fetched.Err != nil {
		t.Fatalf("fetch: %v", fetched.Err)
	}
	if !reflect.DeepEqual(fetched.Card.Choices, canonical.Choices) {
		t.Errorf("editor card choices = %v, want backend order %v", fetched.Card.Choices, canonical.Choices)
	}
	if fetched.Card.CorrectIndex != canonical.CorrectIndex {
		t.Errorf("editor correct index = %d, want %d", fetched.Card.CorrectIndex, canonical.CorrectIndex)
	}

	_, cmd = s.Update(msg)
	if s.busy {
		t.Error("still busy after the fetched card arrived")
	}
	if cmd == nil {
		t.Fatal("expected a push command for the editor")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*editorscreen.EditorScreen); !ok {
		t.Errorf("pushed screen is %T, want the editor", push.Screen)
	}
}

func TestEditorMessagesTriggerBridge(t *testing.T) {
	backend := &fakeBackend{
		batches:   [][]cards.Card{{qaCard(0)}},
		cardByPos: map[int]cards.Card{0: qaCard(0)},
	}
	s := newTestSession(t, backend, review.ModeReview)
	start(t, s)

	_, cmd := s.Update(editorscreen.SavedMsg{TopicID: "t1", Position: 0})
	if cmd == nil {
		t.Fatal("expected a reconciliation command after SavedMsg")
	}
	if !s.busy {
		t.Error("screen not marked busy during reconciliation")
	}
}
