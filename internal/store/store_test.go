package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSequenceOrderingAcrossEventTypes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: "start"}); err != nil {
		t.Fatalf("AppendSessionEvent: %v", err)
	}
	if err := repo.AppendHintEvent(ctx, HintEventData{SessionID: "s1", ItemID: "item-1", HintIndex: 0, HintText: "think"}); err != nil {
		t.Fatalf("AppendHintEvent: %v", err)
	}
	if err := repo.AppendAttemptEvent(ctx, AttemptEventData{
		SessionID: "s1", ItemID: "item-1", ObjectiveID: "obj-1",
		Mechanic: "decision_lab", Correct: true, LatencyMs: 1200, HintsUsed: 1,
	}); err != nil {
		t.Fatalf("AppendAttemptEvent: %v", err)
	}

	events, err := repo.Events(ctx)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	wantTypes := []string{"session", "hint", "attempt"}
	for i, e := range events {
		if e.Type != wantTypes[i] {
			t.Errorf("event %d type = %q, want %q", i, e.Type, wantTypes[i])
		}
		if i > 0 && events[i].Sequence <= events[i-1].Sequence {
			t.Errorf("sequence not strictly increasing: %d then %d", events[i-1].Sequence, events[i].Sequence)
		}
	}
}

func TestSequenceSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.EventRepo().AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: "start"}); err != nil {
		t.Fatalf("AppendSessionEvent: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if err := s.EventRepo().AppendSessionEvent(ctx, SessionEventData{SessionID: "s2", Action: "start"}); err != nil {
		t.Fatalf("AppendSessionEvent after reopen: %v", err)
	}

	events, err := s.EventRepo().Events(ctx)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[1].Sequence <= events[0].Sequence {
		t.Errorf("sequence regressed across reopen: %d then %d", events[0].Sequence, events[1].Sequence)
	}
}

func TestSummaryAggregates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	attempts := []AttemptEventData{
		{SessionID: "s1", ItemID: "a", ObjectiveID: "obj-1", Mechanic: "decision_lab", Correct: true, LatencyMs: 1000},
		{SessionID: "s1", ItemID: "b", ObjectiveID: "obj-1", Mechanic: "triage", Correct: false, LatencyMs: 2000, HintsUsed: 1, MisconceptionID: "m1"},
		{SessionID: "s1", ItemID: "c", ObjectiveID: "obj-2", Mechanic: "sequencer", Correct: false, LatencyMs: 1500, MisconceptionID: "m1"},
	}
	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: "start"}); err != nil {
		t.Fatalf("AppendSessionEvent: %v", err)
	}
	for _, a := range attempts {
		if err := repo.AppendAttemptEvent(ctx, a); err != nil {
			t.Fatalf("AppendAttemptEvent: %v", err)
		}
	}

	sum, err := repo.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Sessions != 1 {
		t.Errorf("Sessions = %d, want 1", sum.Sessions)
	}
	if sum.Attempts != 3 || sum.Correct != 1 || sum.TotalHints != 1 {
		t.Errorf("Attempts/Correct/TotalHints = %d/%d/%d, want 3/1/1", sum.Attempts, sum.Correct, sum.TotalHints)
	}
	if len(sum.ByObjective) != 2 {
		t.Fatalf("ByObjective has %d entries, want 2", len(sum.ByObjective))
	}
	if sum.ByObjective[0].ObjectiveID != "obj-1" || sum.ByObjective[0].Attempts != 2 || sum.ByObjective[0].Correct != 1 {
		t.Errorf("obj-1 accuracy = %+v", sum.ByObjective[0])
	}
	if sum.Misconception["m1"] != 2 {
		t.Errorf("Misconception[m1] = %d, want 2", sum.Misconception["m1"])
	}
}

func TestResetClearsEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: "start"}); err != nil {
		t.Fatalf("AppendSessionEvent: %v", err)
	}
	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	events, err := repo.Events(ctx)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events after reset, want 0", len(events))
	}
}

func TestSnapshotSaveLatestClear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.SnapshotRepo()

	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest != nil {
		t.Fatal("Latest returned a snapshot from an empty store")
	}

	first := &Snapshot{Data: SnapshotData{
		SchemaVersion:    CurrentSnapshotVersion,
		SessionID:        "s1",
		Started:          true,
		CurrentItemIndex: 1,
		SeenCounts:       []int{1, 0, 0},
		History:          []AttemptData{{ItemID: "a", Correct: true, LatencyMs: 900}},
	}}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := &Snapshot{Data: SnapshotData{
		SchemaVersion:    CurrentSnapshotVersion,
		SessionID:        "s1",
		Started:          true,
		CurrentItemIndex: 2,
		SeenCounts:       []int{1, 1, 0},
		IncorrectSet:     []int{1},
	}}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	latest, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest == nil || latest.Data.CurrentItemIndex != 2 {
		t.Fatalf("Latest = %+v, want the second snapshot", latest)
	}
	if len(latest.Data.IncorrectSet) != 1 || latest.Data.IncorrectSet[0] != 1 {
		t.Errorf("IncorrectSet = %v, want [1]", latest.Data.IncorrectSet)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	latest, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest after clear: %v", err)
	}
	if latest != nil {
		t.Error("Latest returned a snapshot after Clear")
	}
}

func TestMigrateSnapshot(t *testing.T) {
	current := SnapshotData{
		SchemaVersion: CurrentSnapshotVersion,
		Started:       true,
		SeenCounts:    []int{1, 1},
		History:       []AttemptData{{ItemID: "a", Correct: true, LatencyMs: 500, HintsUsed: 1}},
	}
	got, ok := MigrateSnapshot(current)
	if !ok {
		t.Fatal("current version rejected")
	}
	if got.History[0].HintsUsed != 1 {
		t.Error("current version was not passed through unchanged")
	}

	// Idempotent: migrating twice gives the same result.
	again, ok := MigrateSnapshot(got)
	if !ok || len(again.History) != len(got.History) {
		t.Error("migration is not idempotent")
	}

	v1 := SnapshotData{
		SchemaVersion:    1,
		Started:          true,
		CurrentItemIndex: 2,
		SeenCounts:       []int{1, 1, 0},
		IncorrectSet:     []int{0},
		LegacyAttempts: []legacyAttempt{
			{ItemID: "a", Correct: false, LatencyMs: 800},
			{ItemID: "b", Correct: true, LatencyMs: 600},
		},
	}
	got, ok = MigrateSnapshot(v1)
	if !ok {
		t.Fatal("v1 snapshot rejected")
	}
	if got.SchemaVersion != CurrentSnapshotVersion {
		t.Errorf("SchemaVersion = %d, want %d", got.SchemaVersion, CurrentSnapshotVersion)
	}
	if len(got.History) != 2 || got.History[0].ItemID != "a" || got.History[0].Correct || got.History[1].LatencyMs != 600 {
		t.Errorf("migrated history = %+v", got.History)
	}
	if got.LegacyAttempts != nil {
		t.Error("legacy attempts not cleared after migration")
	}
	if got.CurrentItemIndex != 2 || len(got.SeenCounts) != 3 {
		t.Error("migration dropped progression state")
	}

	if _, ok := MigrateSnapshot(SnapshotData{SchemaVersion: 99}); ok {
		t.Error("unknown version accepted")
	}
}
