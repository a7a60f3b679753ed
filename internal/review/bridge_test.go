package review

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/cardz/internal/cards"
)

type fakeCardStore struct {
	card cards.Card
	err  error
}

func (s *fakeCardStore) FetchCard(ctx context.Context, topicID string, position int) (cards.Card, error) {
	if s.err != nil {
		return cards.Card{}, s.err
	}
	if s.card.TopicID != topicID || s.card.Position != position {
		return cards.Card{}, errors.New("card not found")
	}
	return s.card, nil
}

func startedController(t *testing.T, batch []cards.Card, next ...Batch) (*Controller, *fakeSource) {
	t.Helper()
	batches := append([]Batch{{Cards: batch, TotalRemaining: 0}}, next...)
	src := &fakeSource{batches: batches}
	c := newReviewController(src, &fakeScorer{})
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return c, src
}

func TestBridgeCardEditedRefetches(t *testing.T) {
	c, _ := startedController(t, []cards.Card{qaCard("t1", 0)})
	c.RevealHint()

	edited := qaCard("t1", 0)
	edited.Question = "rewritten"
	store := &fakeCardStore{card: edited}
	b := NewEditorBridge(store, c)

	if err := b.CardEdited(context.Background()); err != nil {
		t.Fatalf("CardEdited: %v", err)
	}
	cur, ok := c.Current()
	if !ok || cur.Question != "rewritten" {
		t.Fatalf("current after edit = %+v", cur)
	}
	// Disclosure restarts from hidden after an edit.
	if c.Reveal() != RevealHidden {
		t.Errorf("reveal after edit = %d, want hidden", c.Reveal())
	}
	if c.Phase() != PhasePresenting {
		t.Errorf("phase after edit = %s, want presenting", c.Phase())
	}
}

func TestBridgeCardEditedReshufflesMultipleChoice(t *testing.T) {
	c, _ := startedController(t, []cards.Card{mcCard("t1", 0)})
	c.SelectChoice(1)

	edited := mcCard("t1", 0)
	edited.Choices = []string{"new right", "new wrong1", "new wrong2", "new wrong3"}
	store := &fakeCardStore{card: edited}
	b := NewEditorBridge(store, c)

	if err := b.CardEdited(context.Background()); err != nil {
		t.Fatalf("CardEdited: %v", err)
	}
	cur, _ := c.Current()
	if cur.CorrectChoice() != "new right" {
		t.Fatalf("correct option after edit+shuffle = %q", cur.CorrectChoice())
	}
	// The old selection cannot map onto the edited option list.
	if c.Selected() != -1 {
		t.Errorf("selection survived an edit: %d", c.Selected())
	}
}

func TestBridgeCardEditedFetchFailureKeepsCache(t *testing.T) {
	c, _ := startedController(t, []cards.Card{qaCard("t1", 0)})
	c.RevealAnswer()

	store := &fakeCardStore{err: errors.New("server unreachable")}
	b := NewEditorBridge(store, c)

	if err := b.CardEdited(context.Background()); err == nil {
		t.Fatal("CardEdited should surface the fetch failure")
	}
	cur, ok := c.Current()
	if !ok || cur.Question != "q" {
		t.Fatalf("cache changed despite failed refetch: %+v", cur)
	}
	if c.Reveal() != RevealAnswer {
		t.Error("reveal stage reset despite failed refetch")
	}
}

func TestBridgeCardDeletedSlidesNextIntoView(t *testing.T) {
	c, _ := startedController(t, []cards.Card{qaCard("t1", 0), qaCard("t1", 1)})
	c.RevealAnswer()

	b := NewEditorBridge(&fakeCardStore{}, c)
	if err := b.CardDeleted(context.Background()); err != nil {
		t.Fatalf("CardDeleted: %v", err)
	}

	cur, ok := c.Current()
	if !ok || cur.Position != 1 {
		t.Fatalf("current after delete = %+v, want position 1", cur)
	}
	if c.Reveal() != RevealHidden {
		t.Errorf("reveal after delete = %d, want hidden", c.Reveal())
	}
	if c.Phase() != PhasePresenting {
		t.Errorf("phase = %s, want presenting", c.Phase())
	}
}

func TestBridgeDeleteLastCardRefills(t *testing.T) {
	c, src := startedController(t, []cards.Card{qaCard("t1", 0)},
		Batch{Cards: []cards.Card{qaCard("t2", 0)}, TotalRemaining: 0})

	b := NewEditorBridge(&fakeCardStore{}, c)
	if err := b.CardDeleted(context.Background()); err != nil {
		t.Fatalf("CardDeleted: %v", err)
	}

	// Deleting the only card must trigger a refill, not end the session.
	if src.calls != 2 {
		t.Fatalf("fetches = %d, want 2", src.calls)
	}
	if c.Phase() != PhasePresenting {
		t.Fatalf("phase = %s, want presenting", c.Phase())
	}
	cur, _ := c.Current()
	if cur.TopicID != "t2" {
		t.Fatalf("current after refill = %+v, want topic t2", cur)
	}
}

func TestBridgeDeleteLastCardEmptyRefillCompletes(t *testing.T) {
	c, _ := startedController(t, []cards.Card{qaCard("t1", 0)}, Batch{})

	b := NewEditorBridge(&fakeCardStore{}, c)
	if err := b.CardDeleted(context.Background()); err != nil {
		t.Fatalf("CardDeleted: %v", err)
	}
	if c.Phase() != PhaseComplete {
		t.Fatalf("phase = %s, want complete", c.Phase())
	}
}

func TestBridgeNoCurrentCard(t *testing.T) {
	c, _ := startedController(t, nil) // empty batch: complete immediately

	b := NewEditorBridge(&fakeCardStore{}, c)
	if err := b.CardEdited(context.Background()); !errors.Is(err, ErrNoCurrentCard) {
		t.Errorf("CardEdited = %v, want ErrNoCurrentCard", err)
	}
	if err := b.CardDeleted(context.Background()); !errors.Is(err, ErrNoCurrentCard) {
		t.Errorf("CardDeleted = %v, want ErrNoCurrentCard", err)
	}
}
