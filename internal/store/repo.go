package store

import (
	"context"
	"time"
)

// SessionEventData records a session lifecycle transition. The final_*
// fields are populated only for the "complete" action.
type SessionEventData struct {
	SessionID         string
	Action            string // "start", "complete", "restart"
	FinalStreak       int
	FinalAvgLatencyMs int64
	FinalHints        int
	TotalItems        int
}

// HintEventData records one hint reveal.
type HintEventData struct {
	SessionID string
	ItemID    string
	HintIndex int
	HintText  string
}

// AttemptEventData records one evaluated submission, including the raw
// response payload as JSON.
type AttemptEventData struct {
	SessionID       string
	ItemID          string
	ObjectiveID     string
	Mechanic        string
	Correct         bool
	LatencyMs       int64
	HintsUsed       int
	MisconceptionID string
	Retries         int
	Response        string
}

// CoachEventData records one coach (LLM) request for accounting.
type CoachEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// Event is the unified, export-facing view of any logged event. Fields not
// applicable to a type are zero.
type Event struct {
	Sequence  int64
	Timestamp time.Time
	Type      string // "session", "hint", "attempt", "coach"

	SessionID string
	Action    string

	ItemID          string
	ObjectiveID     string
	Mechanic        string
	Correct         bool
	LatencyMs       int64
	HintsUsed       int
	MisconceptionID string
	Retries         int
	Response        string

	HintIndex int
	HintText  string

	Provider string
	Model    string
	Purpose  string

	FinalStreak       int
	FinalAvgLatencyMs int64
	FinalHints        int
	TotalItems        int
}

// ObjectiveAccuracy aggregates attempt outcomes for one objective.
type ObjectiveAccuracy struct {
	ObjectiveID string
	Attempts    int
	Correct     int
}

// LogSummary aggregates the event log for the stats command.
type LogSummary struct {
	Sessions      int
	Attempts      int
	Correct       int
	TotalHints    int
	ByObjective   []ObjectiveAccuracy
	Misconception map[string]int
}

// EventRepo provides append and read access to the telemetry log. Appends
// are best-effort from the engine's point of view: a failed write never
// blocks progression.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendHintEvent(ctx context.Context, data HintEventData) error
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error
	AppendCoachEvent(ctx context.Context, data CoachEventData) error

	// Events returns every logged event ordered by global sequence.
	Events(ctx context.Context) ([]Event, error)

	// Summary aggregates the log for reporting.
	Summary(ctx context.Context) (*LogSummary, error)

	// Reset deletes the entire log. Used by the reset command only.
	Reset(ctx context.Context) error
}

// SnapshotRepo manages the single resumable session snapshot.
type SnapshotRepo interface {
	// Save stores a new snapshot, replacing any previous one as the latest.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Clear deletes all stored snapshots.
	Clear(ctx context.Context) error
}
