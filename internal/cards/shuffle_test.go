package cards

import (
	"math/rand/v2"
	"testing"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestShuffle_PreservesCorrectOption(t *testing.T) {
	card := Card{
		Kind:         KindMultipleChoice,
		Question:     "Capital of France?",
		Choices:      []string{"Paris", "Lyon", "Marseille", "Nice"},
		CorrectIndex: 0,
	}

	for seed := uint64(0); seed < 200; seed++ {
		got := Shuffle(card, newRand(seed))
		if got.Choices[got.CorrectIndex] != "Paris" {
			t.Fatalf("seed %d: correct index %d points at %q, want Paris",
				seed, got.CorrectIndex, got.Choices[got.CorrectIndex])
		}
		if len(got.Choices) != 4 {
			t.Fatalf("seed %d: got %d choices, want 4", seed, len(got.Choices))
		}
	}
}

func TestShuffle_DuplicateOptionText(t *testing.T) {
	// Two options share text; correctness must follow the original index,
	// not string equality.
	card := Card{
		Kind:         KindMultipleChoice,
		Choices:      []string{"same", "same", "other", "another"},
		CorrectIndex: 1,
	}

	for seed := uint64(0); seed < 200; seed++ {
		got := Shuffle(card, newRand(seed))
		if got.Choices[got.CorrectIndex] != "same" {
			t.Fatalf("seed %d: correct option text changed to %q",
				seed, got.Choices[got.CorrectIndex])
		}
	}
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	card := Card{
		Kind:         KindMultipleChoice,
		Choices:      []string{"a", "b", "c", "d"},
		CorrectIndex: 2,
	}

	// Find a seed that actually reorders, then check the original.
	for seed := uint64(0); seed < 50; seed++ {
		_ = Shuffle(card, newRand(seed))
	}
	want := []string{"a", "b", "c", "d"}
	for i, choice := range card.Choices {
		if choice != want[i] {
			t.Fatalf("input card mutated: choices = %v", card.Choices)
		}
	}
	if card.CorrectIndex != 2 {
		t.Fatalf("input correct index mutated: %d", card.CorrectIndex)
	}
}

func TestShuffle_QAHintIdentity(t *testing.T) {
	card := Card{
		Kind:     KindQAHint,
		Question: "What is a closure?",
		Answer:   "A function plus its captured environment",
		Hint:     "Think about variable scope",
	}
	got := Shuffle(card, newRand(1))
	if got.Question != card.Question || got.Answer != card.Answer || got.Hint != card.Hint {
		t.Fatalf("qa_hint card changed by shuffle: %+v", got)
	}
}

func TestShuffle_ProducesAllOrderings(t *testing.T) {
	// Over many seeds every option should appear in the first slot at
	// least once; a biased shuffle would fail this quickly.
	card := Card{
		Kind:         KindMultipleChoice,
		Choices:      []string{"w", "x", "y", "z"},
		CorrectIndex: 3,
	}

	seen := map[string]bool{}
	for seed := uint64(0); seed < 400; seed++ {
		got := Shuffle(card, newRand(seed))
		seen[got.Choices[0]] = true
	}
	for _, opt := range card.Choices {
		if !seen[opt] {
			t.Errorf("option %q never appeared in first position", opt)
		}
	}
}

func TestCorrectChoice(t *testing.T) {
	mc := Card{Kind: KindMultipleChoice, Choices: []string{"a", "b"}, CorrectIndex: 1}
	if got := mc.CorrectChoice(); got != "b" {
		t.Errorf("CorrectChoice() = %q, want b", got)
	}

	qa := Card{Kind: KindQAHint, Answer: "x"}
	if got := qa.CorrectChoice(); got != "" {
		t.Errorf("CorrectChoice() on qa_hint = %q, want empty", got)
	}

	broken := Card{Kind: KindMultipleChoice, Choices: []string{"a"}, CorrectIndex: 5}
	if got := broken.CorrectChoice(); got != "" {
		t.Errorf("CorrectChoice() with out-of-range index = %q, want empty", got)
	}
}
