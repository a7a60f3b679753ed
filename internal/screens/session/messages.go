package session

import (
	"time"

	"github.com/abhisek/cardz/internal/cards"
	"github.com/abhisek/cardz/internal/review"
)

// batchLoadedMsg is sent when a Start, Restart, Retry or refill-completing
// controller call has finished. The controller pointer lets the handler drop
// results addressed to a controller the screen no longer owns.
type batchLoadedMsg struct {
	Ctrl *review.Controller
}

// scoreSubmittedMsg is sent when a Submit (review) or Next (practice) call
// has finished. Err mirrors the controller's in-place submit error.
type scoreSubmittedMsg struct {
	Ctrl *review.Controller
	Err  error
}

// cardReloadedMsg is sent when the editor bridge has reconciled an edit of
// the current card.
type cardReloadedMsg struct {
	Ctrl *review.Controller
	Err  error
}

// cardRemovedMsg is sent when the current card has been deleted on the
// backend and the bridge has reconciled the removal.
type cardRemovedMsg struct {
	Ctrl *review.Controller
	Err  error
}

// cardFetchedMsg carries the backend's copy of the current card, fetched so
// the editor starts from the unshuffled original.
type cardFetchedMsg struct {
	Ctrl *review.Controller
	Card cards.Card
	Err  error
}

// spinnerTickMsg animates the loading/refilling spinner.
type spinnerTickMsg time.Time

// sessionEndMsg triggers the end-of-session flow (persist the end event,
// pop back to the deck list).
type sessionEndMsg struct{}
