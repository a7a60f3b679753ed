package review

import (
	"context"
	"errors"

	"github.com/abhisek/cardz/internal/cards"
)

// ErrNoCurrentCard is returned when an editor notification arrives while no
// card is on display.
var ErrNoCurrentCard = errors.New("no card is currently displayed")

// EditorBridge reconciles the live session with out-of-band card edits. The
// editor saves through the card store; the bridge then refetches the touched
// card so the session never shows stale content.
type EditorBridge struct {
	store CardStore
	ctrl  *Controller
}

// NewEditorBridge wires a bridge to the session controller.
func NewEditorBridge(store CardStore, ctrl *Controller) *EditorBridge {
	return &EditorBridge{store: store, ctrl: ctrl}
}

// CardEdited refetches the current card after the editor saved it. The fresh
// copy replaces the cached one, its options are re-shuffled if multiple
// choice, and disclosure restarts from hidden: the old selection may not map
// onto the edited option list. A failed refetch leaves the cache untouched.
func (b *EditorBridge) CardEdited(ctx context.Context) error {
	cur, ok := b.ctrl.cache.Current()
	if !ok {
		return ErrNoCurrentCard
	}
	fresh, err := b.store.FetchCard(ctx, cur.TopicID, cur.Position)
	if err != nil {
		return err
	}
	if fresh.Kind == cards.KindMultipleChoice {
		fresh = cards.Shuffle(fresh, b.ctrl.rng)
	}
	b.ctrl.cache.ReplaceCurrent(fresh)
	b.ctrl.phase = PhasePresenting
	b.ctrl.resetReveal()
	return nil
}

// CardDeleted drops the current card from the batch after the editor deleted
// it. The card behind it slides into view; deleting the last card of the
// batch triggers a refill rather than ending the session.
func (b *EditorBridge) CardDeleted(ctx context.Context) error {
	if b.ctrl.cache.Exhausted() {
		return ErrNoCurrentCard
	}
	b.ctrl.cache.RemoveCurrent()
	b.ctrl.resetReveal()
	if !b.ctrl.cache.Exhausted() {
		b.ctrl.phase = PhasePresenting
		return nil
	}
	return b.ctrl.refill(ctx)
}
