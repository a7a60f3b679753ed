package cards

import "math/rand/v2"

// Shuffle returns a copy of the card with its options in uniformly random
// order and CorrectIndex pointing at the correct option's new slot. Cards
// that are not multiple choice come back unchanged.
//
// The permutation runs over option indices rather than option strings, so two
// options with identical text can never steal each other's correctness. The
// input card is never mutated; the backend payload it came from may be reused
// by a retry.
func Shuffle(c Card, rng *rand.Rand) Card {
	if c.Kind != KindMultipleChoice || len(c.Choices) < 2 {
		return c
	}

	n := len(c.Choices)

	// Fisher–Yates over the index range.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}

	shuffled := make([]string, n)
	correct := c.CorrectIndex
	for newPos, origPos := range idx {
		shuffled[newPos] = c.Choices[origPos]
		if origPos == c.CorrectIndex {
			correct = newPos
		}
	}

	out := c
	out.Choices = shuffled
	out.CorrectIndex = correct
	return out
}
