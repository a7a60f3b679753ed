package store

import (
	"context"
	"database/sql"
	"time"
)

// SessionEventData records a session boundary. Action is "start" or "end";
// the counters are only meaningful on "end".
type SessionEventData struct {
	SessionID    string
	Action       string
	Mode         string
	DeckID       string
	CardsScored  int
	DurationSecs int64
}

// ReviewEventData records one graded card.
type ReviewEventData struct {
	SessionID string
	TopicID   string
	Position  int
	CardKind  string
	Grade     string
	NextDueAt time.Time
}

// LLMRequestEventData records one LLM API call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is one stored LLM request row, as read back for the
// inspection commands.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// QueryOpts bounds list queries.
type QueryOpts struct {
	Limit int
}

// SessionStats aggregates the local session history.
type SessionStats struct {
	Sessions     int
	CardsScored  int
	TotalSeconds int64
}

// LLMUsage aggregates LLM traffic for one model.
type LLMUsage struct {
	Model        string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// LLMPurposeUsage aggregates LLM traffic for one request purpose.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and aggregate access to local history events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendReviewEvent(ctx context.Context, data ReviewEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// SessionStats aggregates completed sessions, optionally per mode
	// ("" = all modes).
	SessionStats(ctx context.Context, mode string) (SessionStats, error)

	// GradeCounts returns how often each grade was given, across all
	// sessions.
	GradeCounts(ctx context.Context) (map[string]int, error)

	// LLMUsageByModel aggregates LLM traffic per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByPurpose aggregates LLM traffic per request purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)

	// QueryLLMEvents lists the most recent LLM request events.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent fetches one LLM request event by id, nil when absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)
}

// eventRepo implements EventRepo on raw SQL and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}
