package review

import "github.com/abhisek/cardz/internal/cards"

// BatchCache holds the cards of the current batch and a cursor into them.
// Pure in-memory structure; invariant 0 <= cursor <= len(cards) holds after
// every operation.
type BatchCache struct {
	cards  []cards.Card
	cursor int
}

// Reset replaces the cached batch and rewinds the cursor.
func (b *BatchCache) Reset(cs []cards.Card) {
	b.cards = cs
	b.cursor = 0
}

// Current returns the card under the cursor, if any.
func (b *BatchCache) Current() (cards.Card, bool) {
	if b.cursor >= len(b.cards) {
		return cards.Card{}, false
	}
	return b.cards[b.cursor], true
}

// Advance moves the cursor forward one card and reports whether a card
// remains. The cursor never moves past len(cards).
func (b *BatchCache) Advance() bool {
	if b.cursor < len(b.cards) {
		b.cursor++
	}
	return b.cursor < len(b.cards)
}

// ReplaceCurrent swaps the card under the cursor. No-op when the cache is
// exhausted.
func (b *BatchCache) ReplaceCurrent(c cards.Card) {
	if b.cursor < len(b.cards) {
		b.cards[b.cursor] = c
	}
}

// RemoveCurrent deletes the card under the cursor without moving it, so the
// card formerly behind it becomes current. No-op when the cache is exhausted.
func (b *BatchCache) RemoveCurrent() {
	if b.cursor >= len(b.cards) {
		return
	}
	b.cards = append(b.cards[:b.cursor], b.cards[b.cursor+1:]...)
}

// Exhausted reports whether the cursor has run past the last card.
func (b *BatchCache) Exhausted() bool {
	return b.cursor >= len(b.cards)
}

// Len returns the number of cards in the cached batch.
func (b *BatchCache) Len() int {
	return len(b.cards)
}

// Cursor returns the current cursor position.
func (b *BatchCache) Cursor() int {
	return b.cursor
}
