package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/rsuresh/quizcraft/internal/bank"
	"github.com/rsuresh/quizcraft/internal/evaluate"
	"github.com/rsuresh/quizcraft/internal/mastery"
	"github.com/rsuresh/quizcraft/internal/progress"
	"github.com/rsuresh/quizcraft/internal/store"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseNotStarted Phase = iota // No session running
	PhaseActive                  // An item is presented, awaiting a response
	PhaseFeedback                // Last response evaluated, awaiting retry or advance
	PhaseComplete                // Coverage done and nothing left to remediate
)

var (
	// ErrNotActive is returned when an operation needs a presented item.
	ErrNotActive = errors.New("no item is being presented")

	// ErrNotInFeedback is returned when retry or advance is requested
	// outside the feedback phase.
	ErrNotInFeedback = errors.New("no evaluated response to act on")

	// ErrNoSnapshot is returned by Resume when nothing resumable exists.
	ErrNoSnapshot = errors.New("no resumable session found")
)

// AttemptRecord is one evaluated submission in the session history.
type AttemptRecord struct {
	ItemID    string
	Correct   bool
	LatencyMs int64
	HintsUsed int
	Retries   int
}

// Session drives one learner through the item bank: sequential coverage
// first, then remediation of incorrect items until the incorrect set is
// empty. All telemetry writes are best-effort; a failed write warns on
// stderr and never blocks progression.
type Session struct {
	bank       *bank.Bank
	events     store.EventRepo
	snaps      store.SnapshotRepo
	masteryCfg mastery.Config
	clock      func() time.Time

	id    string
	phase Phase

	currentIdx  int
	itemShownAt time.Time
	hintsShown  int
	retries     int

	lastResult evaluate.Result

	history      []AttemptRecord
	seenCounts   []int
	incorrectSet map[int]bool
	recent       []int
}

// New creates a session over b. Events and snaps may be nil for an
// ephemeral session with no persistence.
func New(b *bank.Bank, events store.EventRepo, snaps store.SnapshotRepo) *Session {
	return &Session{
		bank:       b,
		events:     events,
		snaps:      snaps,
		masteryCfg: mastery.DefaultConfig(),
		clock:      time.Now,
		currentIdx: -1,
	}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// ID returns the session UUID, empty before Start.
func (s *Session) ID() string { return s.id }

// Current returns the presented item. ok is false outside the active and
// feedback phases.
func (s *Session) Current() (bank.Item, bool) {
	if s.currentIdx < 0 {
		return bank.Item{}, false
	}
	return s.bank.Item(s.currentIdx), true
}

// ObjectiveTitle resolves an objective ID to its display title.
func (s *Session) ObjectiveTitle(id string) string {
	return s.bank.ObjectiveTitle(id)
}

// LastResult returns the evaluation of the most recent submission. Valid
// in the feedback phase.
func (s *Session) LastResult() evaluate.Result { return s.lastResult }

// HintsShown returns how many hints have been revealed for the current item.
func (s *Session) HintsShown() int { return s.hintsShown }

// Retries returns how many times the current item has been retried.
func (s *Session) Retries() int { return s.retries }

// History returns the full attempt history in submission order.
func (s *Session) History() []AttemptRecord { return s.history }

// Stats recomputes mastery stats from the full history.
func (s *Session) Stats() mastery.Stats {
	attempts := make([]mastery.Attempt, len(s.history))
	for i, a := range s.history {
		attempts[i] = mastery.Attempt{Correct: a.Correct, LatencyMs: a.LatencyMs, HintsUsed: a.HintsUsed}
	}
	return mastery.Compute(attempts, s.masteryCfg)
}

// CoverageComplete reports whether every item has been presented at least once.
func (s *Session) CoverageComplete() bool {
	return progress.CoverageComplete(s.seenCounts)
}

// Remaining returns how many items are still in the incorrect set.
func (s *Session) Remaining() int { return len(s.incorrectSet) }

// Start begins a fresh session and presents the first item.
func (s *Session) Start(ctx context.Context) error {
	if s.phase != PhaseNotStarted {
		return fmt.Errorf("session already started")
	}

	s.id = uuid.NewString()
	s.seenCounts = make([]int, s.bank.Len())
	s.incorrectSet = make(map[int]bool)

	if s.events != nil {
		s.warnPersist(s.events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:  s.id,
			Action:     "start",
			TotalItems: s.bank.Len(),
		}))
	}

	idx, ok := progress.ChooseNext(s.seenCounts, s.incorrectSet, s.recent, s.bank.Len())
	if !ok {
		// Empty banks are rejected at load time; this cannot happen.
		return fmt.Errorf("no item to present")
	}
	s.present(idx)
	s.saveSnapshot(ctx)
	return nil
}

// RequestHint reveals the next rung of the current item's hint ladder.
// Past the last rung it is a no-op returning ok=false.
func (s *Session) RequestHint(ctx context.Context) (string, bool) {
	if s.phase != PhaseActive {
		return "", false
	}
	item := s.bank.Item(s.currentIdx)
	if s.hintsShown >= len(item.HintLadder) {
		return "", false
	}

	hint := item.HintLadder[s.hintsShown]
	if s.events != nil {
		s.warnPersist(s.events.AppendHintEvent(ctx, store.HintEventData{
			SessionID: s.id,
			ItemID:    item.ID,
			HintIndex: s.hintsShown,
			HintText:  hint,
		}))
	}
	s.hintsShown++
	s.saveSnapshot(ctx)
	return hint, true
}

// Submit evaluates a response to the current item and moves the session to
// the feedback phase. The response must be well-formed for the item's
// mechanic; malformed responses are rejected without recording an attempt.
func (s *Session) Submit(ctx context.Context, resp evaluate.Response) (evaluate.Result, error) {
	if s.phase != PhaseActive {
		return evaluate.Result{}, ErrNotActive
	}
	item := s.bank.Item(s.currentIdx)
	if err := evaluate.ValidateResponse(item, resp); err != nil {
		return evaluate.Result{}, fmt.Errorf("invalid response: %w", err)
	}

	latency := s.clock().Sub(s.itemShownAt).Milliseconds()
	result := evaluate.Evaluate(item, resp)

	s.history = append(s.history, AttemptRecord{
		ItemID:    item.ID,
		Correct:   result.Correct,
		LatencyMs: latency,
		HintsUsed: s.hintsShown,
		Retries:   s.retries,
	})
	// Seen counts track recorded attempts, so a retried item weighs
	// heavier in least-seen remediation ordering.
	s.seenCounts[s.currentIdx]++
	if result.Correct {
		delete(s.incorrectSet, s.currentIdx)
	} else {
		s.incorrectSet[s.currentIdx] = true
	}

	if s.events != nil {
		raw, err := json.Marshal(resp)
		if err != nil {
			raw = nil
		}
		s.warnPersist(s.events.AppendAttemptEvent(ctx, store.AttemptEventData{
			SessionID:       s.id,
			ItemID:          item.ID,
			ObjectiveID:     item.ObjectiveID,
			Mechanic:        string(item.Mechanic),
			Correct:         result.Correct,
			LatencyMs:       latency,
			HintsUsed:       s.hintsShown,
			MisconceptionID: result.MisconceptionID,
			Retries:         s.retries,
			Response:        string(raw),
		}))
	}

	s.lastResult = result
	s.phase = PhaseFeedback
	s.saveSnapshot(ctx)
	return result, nil
}

// Retry re-presents the current item after an incorrect response. Revealed
// hints stay revealed; the latency clock restarts.
func (s *Session) Retry(ctx context.Context) error {
	if s.phase != PhaseFeedback {
		return ErrNotInFeedback
	}
	if s.lastResult.Correct {
		return fmt.Errorf("nothing to retry: last response was correct")
	}

	s.retries++
	s.itemShownAt = s.clock()
	s.phase = PhaseActive
	s.saveSnapshot(ctx)
	return nil
}

// Advance moves to the next item, or completes the session when the
// selector has nothing left. An item advanced past while incorrect stays
// in the incorrect set and comes back during remediation.
func (s *Session) Advance(ctx context.Context) error {
	if s.phase != PhaseFeedback {
		return ErrNotInFeedback
	}

	idx, ok := progress.ChooseNext(s.seenCounts, s.incorrectSet, s.recent, s.bank.Len())
	if !ok {
		s.complete(ctx)
		return nil
	}
	s.present(idx)
	s.saveSnapshot(ctx)
	return nil
}

// Restart abandons any in-flight state and begins a fresh session.
func (s *Session) Restart(ctx context.Context) error {
	if s.phase != PhaseNotStarted && s.events != nil {
		s.warnPersist(s.events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: s.id,
			Action:    "restart",
		}))
	}
	if s.snaps != nil {
		s.warnPersist(s.snaps.Clear(ctx))
	}

	s.id = ""
	s.phase = PhaseNotStarted
	s.currentIdx = -1
	s.hintsShown = 0
	s.retries = 0
	s.lastResult = evaluate.Result{}
	s.history = nil
	s.seenCounts = nil
	s.incorrectSet = nil
	s.recent = nil

	return s.Start(ctx)
}

// Resume restores the latest stored snapshot and re-presents the item that
// was active when it was taken. Snapshots from completed sessions and
// snapshots whose item bank no longer matches are not resumable.
func (s *Session) Resume(ctx context.Context) error {
	if s.snaps == nil {
		return ErrNoSnapshot
	}
	snap, err := s.snaps.Latest(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil {
		return ErrNoSnapshot
	}

	data, ok := store.MigrateSnapshot(snap.Data)
	if !ok || !data.Started || data.Completed {
		return ErrNoSnapshot
	}
	if len(data.SeenCounts) != s.bank.Len() ||
		data.CurrentItemIndex < 0 || data.CurrentItemIndex >= s.bank.Len() {
		return ErrNoSnapshot
	}

	s.id = data.SessionID
	if s.id == "" {
		s.id = uuid.NewString()
	}
	s.seenCounts = append([]int(nil), data.SeenCounts...)
	s.incorrectSet = make(map[int]bool, len(data.IncorrectSet))
	for _, i := range data.IncorrectSet {
		if i >= 0 && i < s.bank.Len() {
			s.incorrectSet[i] = true
		}
	}
	s.recent = append([]int(nil), data.Recent...)
	s.history = nil
	for _, a := range data.History {
		s.history = append(s.history, AttemptRecord{
			ItemID:    a.ItemID,
			Correct:   a.Correct,
			LatencyMs: a.LatencyMs,
			HintsUsed: a.HintsUsed,
			Retries:   a.Retries,
		})
	}

	s.currentIdx = data.CurrentItemIndex
	s.itemShownAt = s.clock()
	s.hintsShown = 0
	s.retries = 0
	s.phase = PhaseActive
	return nil
}

// present makes item idx the active one and restarts per-item counters.
func (s *Session) present(idx int) {
	s.currentIdx = idx
	s.recent = append(s.recent, idx)
	if len(s.recent) > progress.RecentWindow {
		s.recent = s.recent[len(s.recent)-progress.RecentWindow:]
	}
	s.itemShownAt = s.clock()
	s.hintsShown = 0
	s.retries = 0
	s.phase = PhaseActive
}

func (s *Session) complete(ctx context.Context) {
	if s.events != nil {
		stats := s.Stats()
		s.warnPersist(s.events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:         s.id,
			Action:            "complete",
			FinalStreak:       stats.Streak,
			FinalAvgLatencyMs: stats.AvgLatencyMs,
			FinalHints:        stats.TotalHints,
			TotalItems:        s.bank.Len(),
		}))
	}

	s.currentIdx = -1
	s.phase = PhaseComplete
	s.saveSnapshot(ctx)
}

func (s *Session) saveSnapshot(ctx context.Context) {
	if s.snaps == nil {
		return
	}

	incorrect := make([]int, 0, len(s.incorrectSet))
	for i := range s.incorrectSet {
		incorrect = append(incorrect, i)
	}
	sort.Ints(incorrect)

	history := make([]store.AttemptData, len(s.history))
	for i, a := range s.history {
		history[i] = store.AttemptData{
			ItemID:    a.ItemID,
			Correct:   a.Correct,
			LatencyMs: a.LatencyMs,
			HintsUsed: a.HintsUsed,
			Retries:   a.Retries,
		}
	}

	s.warnPersist(s.snaps.Save(ctx, &store.Snapshot{Data: store.SnapshotData{
		SchemaVersion:    store.CurrentSnapshotVersion,
		SessionID:        s.id,
		Started:          true,
		Completed:        s.phase == PhaseComplete,
		CurrentItemIndex: s.currentIdx,
		SeenCounts:       append([]int(nil), s.seenCounts...),
		IncorrectSet:     incorrect,
		Recent:           append([]int(nil), s.recent...),
		History:          history,
	}}))
}

// warnPersist reports a failed persistence call without interrupting the
// session. Event appends and snapshot writes are both best-effort.
func (s *Session) warnPersist(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
}
