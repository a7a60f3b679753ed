package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases, so
		// journal_mode is only checked with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"session_events", "review_events", "llm_request_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSessionStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	start := SessionEventData{SessionID: "s1", Action: "start", Mode: "review", DeckID: "d1"}
	if err := repo.AppendSessionEvent(ctx, start); err != nil {
		t.Fatalf("append start: %v", err)
	}
	end := SessionEventData{
		SessionID: "s1", Action: "end", Mode: "review", DeckID: "d1",
		CardsScored: 12, DurationSecs: 300,
	}
	if err := repo.AppendSessionEvent(ctx, end); err != nil {
		t.Fatalf("append end: %v", err)
	}
	practice := SessionEventData{
		SessionID: "s2", Action: "end", Mode: "practice", DeckID: "d1",
		CardsScored: 5, DurationSecs: 100,
	}
	if err := repo.AppendSessionEvent(ctx, practice); err != nil {
		t.Fatalf("append practice end: %v", err)
	}

	all, err := repo.SessionStats(ctx, "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if all.Sessions != 2 || all.CardsScored != 17 || all.TotalSeconds != 400 {
		t.Errorf("all stats = %+v", all)
	}

	reviewOnly, err := repo.SessionStats(ctx, "review")
	if err != nil {
		t.Fatalf("stats(review): %v", err)
	}
	if reviewOnly.Sessions != 1 || reviewOnly.CardsScored != 12 {
		t.Errorf("review stats = %+v", reviewOnly)
	}
}

func TestGradeCounts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	grades := []string{"good", "good", "again", "easy"}
	for i, g := range grades {
		err := repo.AppendReviewEvent(ctx, ReviewEventData{
			SessionID: "s1",
			TopicID:   "t1",
			Position:  i,
			CardKind:  "qa_hint",
			Grade:     g,
			NextDueAt: time.Now().Add(24 * time.Hour),
		})
		if err != nil {
			t.Fatalf("append review event %d: %v", i, err)
		}
	}

	counts, err := repo.GradeCounts(ctx)
	if err != nil {
		t.Fatalf("grade counts: %v", err)
	}
	if counts["good"] != 2 || counts["again"] != 1 || counts["easy"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestLLMUsageByModel(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "m1", Purpose: "card-generation", InputTokens: 100, OutputTokens: 50, Success: true},
		{Provider: "anthropic", Model: "m1", Purpose: "card-generation", InputTokens: 200, OutputTokens: 80, Success: false, ErrorMessage: "rate limited"},
		{Provider: "openai", Model: "m2", Purpose: "probe", InputTokens: 10, OutputTokens: 5, Success: true},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append LLM event %d: %v", i, err)
		}
	}

	usage, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("usage rows = %d, want 2", len(usage))
	}
	m1 := usage[0]
	if m1.Model != "m1" || m1.Requests != 2 || m1.Failures != 1 ||
		m1.InputTokens != 300 || m1.OutputTokens != 130 {
		t.Errorf("m1 usage = %+v", m1)
	}
}

func TestQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "anthropic", Model: "m1", Purpose: "card-generation",
			InputTokens: 10 * (i + 1), Success: true,
			RequestBody: `{"n":1}`, ResponseBody: `{"cards":[]}`,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	// Newest first.
	if events[0].ID <= events[1].ID {
		t.Errorf("expected descending ids, got %d then %d", events[0].ID, events[1].ID)
	}

	full, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if full == nil || full.RequestBody == "" || full.ResponseBody == "" {
		t.Errorf("full event missing bodies: %+v", full)
	}

	missing, err := repo.GetLLMEvent(ctx, 999999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing id, got %+v", missing)
	}
}

func TestLLMUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "m1", Purpose: "card-generation", InputTokens: 100, OutputTokens: 40, LatencyMs: 200, Success: true},
		{Provider: "anthropic", Model: "m1", Purpose: "card-generation", InputTokens: 100, OutputTokens: 60, LatencyMs: 400, Success: true},
		{Provider: "openai", Model: "m2", Purpose: "probe", InputTokens: 5, OutputTokens: 1, LatencyMs: 50, Success: true},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	usage, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("usage rows = %d, want 2", len(usage))
	}
	gen := usage[0]
	if gen.Purpose != "card-generation" || gen.Calls != 2 ||
		gen.InputTokens != 200 || gen.OutputTokens != 100 || gen.AvgLatencyMs != 300 {
		t.Errorf("card-generation usage = %+v", gen)
	}
}
