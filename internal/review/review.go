package review

import (
	"context"
	"time"

	"github.com/abhisek/cardz/internal/cards"
)

// Mode selects the session variant.
type Mode int

const (
	// ModeReview serves due cards and submits a recall grade per card.
	ModeReview Mode = iota

	// ModePractice serves arbitrary cards and advances without grading.
	ModePractice
)

// Phase is the controller's current state. All transitions are listed on
// Controller; no other combination of flags exists.
type Phase int

const (
	PhaseLoading    Phase = iota // fetching the first batch
	PhasePresenting              // a card is on display
	PhaseSubmitting              // a score call is in flight
	PhaseRefilling               // fetching a follow-up batch
	PhaseComplete                // the source has nothing left
	PhaseErrored                 // a fetch failed; retry re-attempts it
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePresenting:
		return "presenting"
	case PhaseSubmitting:
		return "submitting"
	case PhaseRefilling:
		return "refilling"
	case PhaseComplete:
		return "complete"
	case PhaseErrored:
		return "errored"
	}
	return "unknown"
}

// RevealStage is the disclosure progression of the current card.
type RevealStage int

const (
	RevealHidden RevealStage = iota
	RevealHint
	RevealAnswer
)

// Grade is the four-level recall score submitted in review mode.
type Grade int

const (
	GradeAgain Grade = iota
	GradeHard
	GradeGood
	GradeEasy
)

func (g Grade) String() string {
	switch g {
	case GradeAgain:
		return "again"
	case GradeHard:
		return "hard"
	case GradeGood:
		return "good"
	case GradeEasy:
		return "easy"
	}
	return "unknown"
}

// Batch is one page of cards fetched from the source. TotalRemaining is the
// source's cheap hint of how many more cards exist beyond this page; it is
// displayed but never trusted for the refill decision.
type Batch struct {
	Cards          []cards.Card
	TotalRemaining int
}

// Source produces session batches. Review and practice sessions differ only
// in which Source (and whether a Scorer) is wired in.
type Source interface {
	FetchBatch(ctx context.Context) (Batch, error)
}

// ScoreResult is the scheduling service's answer to a submitted grade.
type ScoreResult struct {
	NextDueAt time.Time
}

// Scorer submits a recall grade for the card at (topicID, position). The
// endpoint is not idempotent; the controller's ledger guarantees at most one
// call per card per session.
type Scorer interface {
	SubmitScore(ctx context.Context, topicID string, position int, grade Grade) (ScoreResult, error)
}

// CardStore fetches the authoritative content of a single card. Used by the
// editor bridge to reconcile an out-of-band edit.
type CardStore interface {
	FetchCard(ctx context.Context, topicID string, position int) (cards.Card, error)
}
