package review

// cardKey is the composite scoring key: a card is scored per slot within its
// topic, independent of the card's own id.
type cardKey struct {
	topicID  string
	position int
}

// Ledger records which cards have already been scored this session. The
// scheduling endpoint offers no idempotency of its own, and the UI can
// re-enter the submit path (duplicate click racing a slow response), so the
// ledger is consulted before every score call.
type Ledger struct {
	scored map[cardKey]struct{}
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{scored: make(map[cardKey]struct{})}
}

// HasScored reports whether (topicID, position) was already scored.
func (l *Ledger) HasScored(topicID string, position int) bool {
	_, ok := l.scored[cardKey{topicID, position}]
	return ok
}

// MarkScored records (topicID, position) as scored.
func (l *Ledger) MarkScored(topicID string, position int) {
	l.scored[cardKey{topicID, position}] = struct{}{}
}

// Reset empties the ledger. Called when a session restarts.
func (l *Ledger) Reset() {
	l.scored = make(map[cardKey]struct{})
}

// Len returns the number of scored cards.
func (l *Ledger) Len() int {
	return len(l.scored)
}
