package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/rsuresh/quizcraft/internal/engine"
	"github.com/rsuresh/quizcraft/internal/mastery"
)

func testStats() (mastery.Stats, []engine.AttemptRecord) {
	stats := mastery.Stats{
		Streak:       4,
		AvgLatencyMs: 12500,
		TotalHints:   1,
		MasteryMet:   true,
	}
	history := []engine.AttemptRecord{
		{ItemID: "phish-sender", Correct: true, LatencyMs: 11000},
		{ItemID: "mfa-fatigue", Correct: false, LatencyMs: 15000, HintsUsed: 1},
		{ItemID: "mfa-fatigue", Correct: true, LatencyMs: 9000, HintsUsed: 1, Retries: 1},
		{ItemID: "usb-found", Correct: true, LatencyMs: 14000},
	}
	return stats, history
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testStats())
	if s.Title() != "Drill Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Drill Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testStats())
	view := s.View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty summary view")
	}
	if !strings.Contains(view, "Attempts: 4") {
		t.Errorf("view missing attempt total:\n%s", view)
	}
	if !strings.Contains(view, "Mastery reached!") {
		t.Errorf("view missing mastery banner:\n%s", view)
	}
	if !strings.Contains(view, "mfa-fatigue") {
		t.Errorf("view missing multi-attempt item:\n%s", view)
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testStats())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testStats())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestRoughItemsOrderAndFilter(t *testing.T) {
	_, history := testStats()
	rough := roughItems(history)
	if len(rough) != 1 {
		t.Fatalf("roughItems length = %d, want 1", len(rough))
	}
	if rough[0].itemID != "mfa-fatigue" || rough[0].attempts != 2 {
		t.Errorf("roughItems[0] = %+v", rough[0])
	}
}
