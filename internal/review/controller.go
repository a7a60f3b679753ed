package review

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/abhisek/cardz/internal/cards"
)

// ErrNotReady is returned when a grade or advance is requested while no card
// is presented with its answer revealed. The UI never offers those controls
// in any other state, so hitting this error indicates a wiring bug.
var ErrNotReady = errors.New("no revealed card awaiting a grade")

// fetchOp identifies which fetch failed, so Retry can re-run it.
type fetchOp int

const (
	opNone fetchOp = iota
	opStart
	opRefill
)

// Controller is the session state machine. It owns the batch cache and the
// submission ledger and is the only writer of both. All methods run on the
// caller's goroutine; the UI serializes calls by disabling controls while a
// network-touching method is in flight.
type Controller struct {
	mode   Mode
	source Source
	scorer Scorer
	rng    *rand.Rand

	cache  BatchCache
	ledger *Ledger

	phase          Phase
	reveal         RevealStage
	selected       int
	scoredCount    int
	totalRemaining int

	fetchErr  error
	submitErr error
	failedOp  fetchOp
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand injects the random source used for option shuffling. Tests pass a
// seeded source for deterministic orderings.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// NewController creates a session controller in the Loading phase. The scorer
// may be nil in practice mode.
func NewController(mode Mode, source Source, scorer Scorer, opts ...Option) *Controller {
	c := &Controller{
		mode:     mode,
		source:   source,
		scorer:   scorer,
		ledger:   NewLedger(),
		phase:    PhaseLoading,
		selected: -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c
}

// Start fetches the first batch. Empty batch completes the session
// immediately; a fetch failure moves to Errored and keeps nothing cached.
func (c *Controller) Start(ctx context.Context) error {
	c.phase = PhaseLoading
	return c.load(ctx, opStart)
}

// Restart clears the session's score count and ledger and fetches a fresh
// first batch.
func (c *Controller) Restart(ctx context.Context) error {
	c.scoredCount = 0
	c.totalRemaining = 0
	c.ledger.Reset()
	c.submitErr = nil
	return c.Start(ctx)
}

// Retry re-attempts the fetch that put the controller into Errored. No-op in
// any other phase.
func (c *Controller) Retry(ctx context.Context) error {
	if c.phase != PhaseErrored {
		return nil
	}
	op := c.failedOp
	c.fetchErr = nil
	c.failedOp = opNone
	switch op {
	case opRefill:
		return c.refill(ctx)
	default:
		return c.Start(ctx)
	}
}

// RevealHint moves Hidden -> HintShown for a qa_hint card with a non-empty
// hint. No-op otherwise.
func (c *Controller) RevealHint() {
	if c.phase != PhasePresenting || c.reveal != RevealHidden {
		return
	}
	if cur, ok := c.cache.Current(); ok && cur.HasHint() {
		c.reveal = RevealHint
	}
}

// SelectChoice records the user's pick on a multiple-choice card. Selection
// is only meaningful before the answer is revealed.
func (c *Controller) SelectChoice(i int) {
	if c.phase != PhasePresenting || c.reveal == RevealAnswer {
		return
	}
	cur, ok := c.cache.Current()
	if !ok || cur.Kind != cards.KindMultipleChoice {
		return
	}
	if i < 0 || i >= len(cur.Choices) {
		return
	}
	c.selected = i
}

// CanRevealAnswer reports whether the answer may be disclosed. Multiple
// choice cards demand an attempt first: no selection, no answer.
func (c *Controller) CanRevealAnswer() bool {
	if c.phase != PhasePresenting {
		return false
	}
	cur, ok := c.cache.Current()
	if !ok {
		return false
	}
	if cur.Kind == cards.KindMultipleChoice && c.selected < 0 {
		return false
	}
	return true
}

// RevealAnswer moves the reveal stage to AnswerShown, subject to
// CanRevealAnswer. A blocked call leaves the stage untouched.
func (c *Controller) RevealAnswer() {
	if !c.CanRevealAnswer() {
		return
	}
	c.reveal = RevealAnswer
}

// Submit scores the current card and advances, refilling when the batch is
// exhausted. A card already in the ledger is not re-sent; the duplicate
// submit still advances, matching the first submit's effect. On a failed
// score call the card stays presented with the answer shown, un-scored, and
// the grade controls remain usable for a retry.
func (c *Controller) Submit(ctx context.Context, grade Grade) error {
	if c.mode != ModeReview {
		return ErrNotReady
	}
	cur, ok := c.cache.Current()
	if !ok || c.phase != PhasePresenting || c.reveal != RevealAnswer {
		return ErrNotReady
	}

	c.phase = PhaseSubmitting
	c.submitErr = nil

	if !c.ledger.HasScored(cur.TopicID, cur.Position) {
		if _, err := c.scorer.SubmitScore(ctx, cur.TopicID, cur.Position, grade); err != nil {
			c.submitErr = err
			c.phase = PhasePresenting
			return err
		}
		c.ledger.MarkScored(cur.TopicID, cur.Position)
		c.scoredCount++
	}

	return c.advance(ctx)
}

// Next advances past the current card in practice mode, where no grade is
// collected. Requires the answer to have been revealed, same as Submit.
func (c *Controller) Next(ctx context.Context) error {
	if c.mode != ModePractice {
		return ErrNotReady
	}
	if _, ok := c.cache.Current(); !ok || c.phase != PhasePresenting || c.reveal != RevealAnswer {
		return ErrNotReady
	}
	c.scoredCount++
	return c.advance(ctx)
}

// advance moves the cursor forward, refilling when the batch runs out.
func (c *Controller) advance(ctx context.Context) error {
	if c.cache.Advance() {
		c.phase = PhasePresenting
		c.resetReveal()
		return nil
	}
	return c.refill(ctx)
}

// refill fetches the next batch for the same session. The source returning
// nothing is the only way a session completes.
func (c *Controller) refill(ctx context.Context) error {
	c.phase = PhaseRefilling
	return c.load(ctx, opRefill)
}

func (c *Controller) load(ctx context.Context, op fetchOp) error {
	batch, err := c.source.FetchBatch(ctx)
	if err != nil {
		c.fetchErr = err
		c.failedOp = op
		c.phase = PhaseErrored
		return err
	}

	c.totalRemaining = batch.TotalRemaining
	if len(batch.Cards) == 0 {
		c.phase = PhaseComplete
		return nil
	}

	// Shuffle happens exactly once, at batch entry. Cards are never
	// re-shuffled on a bare advance; a selection must keep pointing at the
	// option the user saw.
	shuffled := make([]cards.Card, len(batch.Cards))
	for i, card := range batch.Cards {
		shuffled[i] = cards.Shuffle(card, c.rng)
	}
	c.cache.Reset(shuffled)
	c.phase = PhasePresenting
	c.resetReveal()
	return nil
}

func (c *Controller) resetReveal() {
	c.reveal = RevealHidden
	c.selected = -1
	c.submitErr = nil
}

// Mode returns the session variant.
func (c *Controller) Mode() Mode { return c.mode }

// Phase returns the controller's current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Reveal returns the current card's reveal stage.
func (c *Controller) Reveal() RevealStage { return c.reveal }

// Current returns the card on display, if any.
func (c *Controller) Current() (cards.Card, bool) { return c.cache.Current() }

// Selected returns the selected choice index, or -1 when none is selected.
func (c *Controller) Selected() int { return c.selected }

// ScoredCount returns how many cards were scored (review) or advanced
// (practice) this session.
func (c *Controller) ScoredCount() int { return c.scoredCount }

// TotalRemaining returns the source's remaining-count hint from the latest
// batch. Display only.
func (c *Controller) TotalRemaining() int { return c.totalRemaining }

// BatchLen returns the size of the current batch.
func (c *Controller) BatchLen() int { return c.cache.Len() }

// BatchCursor returns the cursor position within the current batch.
func (c *Controller) BatchCursor() int { return c.cache.Cursor() }

// Err returns the fetch error that caused the Errored phase, if any.
func (c *Controller) Err() error { return c.fetchErr }

// SubmitErr returns the most recent in-place submission failure, if any.
func (c *Controller) SubmitErr() error { return c.submitErr }
