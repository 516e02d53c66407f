package drill

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/rsuresh/quizcraft/internal/bank"
	"github.com/rsuresh/quizcraft/internal/engine"
	"github.com/rsuresh/quizcraft/internal/router"
	"github.com/rsuresh/quizcraft/internal/screen"
)

func testBank(t *testing.T) *bank.Bank {
	t.Helper()
	objectives := []bank.Objective{{ID: "phishing", Title: "Spotting Phishing"}}
	items := []bank.Item{
		{
			ID:          "sender-check",
			ObjectiveID: "phishing",
			Mechanic:    bank.MechanicDecisionLab,
			Stimulus:    "An urgent invoice arrives from a lookalike domain. What first?",
			Choices: []bank.Choice{
				{ID: "verify", Label: "Verify the sender out of band"},
				{ID: "pay", Label: "Pay it before the deadline"},
			},
			AnswerKey: bank.AnswerKey{ChoiceID: "verify"},
			Detectors: []bank.Detector{{ID: "urgency-pressure", Kind: "chose_choice", Arg: "pay"}},
			HintLadder: []string{
				"Look closely at the sending domain.",
				"Urgency is the attacker's lever. Slow down.",
			},
		},
		{
			ID:          "report-order",
			ObjectiveID: "phishing",
			Mechanic:    bank.MechanicSequencer,
			Stimulus:    "Order the steps after clicking a suspicious link.",
			Steps: []bank.Step{
				{ID: "disconnect", Label: "Disconnect from the network"},
				{ID: "report", Label: "Report to security"},
				{ID: "reset", Label: "Reset affected credentials"},
			},
			AnswerKey: bank.AnswerKey{Order: []string{"disconnect", "report", "reset"}},
		},
	}
	b, err := bank.New(objectives, items)
	if err != nil {
		t.Fatalf("bank.New: %v", err)
	}
	return b
}

// newStartedDrill builds an ephemeral drill screen and runs its Init
// command so the first item is presented.
func newStartedDrill(t *testing.T) *DrillScreen {
	t.Helper()
	sess := engine.New(testBank(t), nil, nil)
	d := New(sess, nil, false)

	msg := d.Init()()
	updated, _ := d.Update(msg)
	return updated.(*DrillScreen)
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enterKey() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func update(t *testing.T, d *DrillScreen, msg tea.Msg) (*DrillScreen, tea.Cmd) {
	t.Helper()
	updated, cmd := d.Update(msg)
	return updated.(*DrillScreen), cmd
}

func TestStartPresentsFirstItem(t *testing.T) {
	d := newStartedDrill(t)

	if d.sess.Phase() != engine.PhaseActive {
		t.Fatalf("phase = %v, want active", d.sess.Phase())
	}
	view := d.View(100, 30)
	if !strings.Contains(view, "lookalike domain") {
		t.Errorf("view missing stimulus:\n%s", view)
	}
	if !strings.Contains(view, "Spotting Phishing") {
		t.Errorf("view missing objective title:\n%s", view)
	}
}

func TestSubmitCorrectShowsVerdict(t *testing.T) {
	d := newStartedDrill(t)

	// The first choice is already highlighted; submit it.
	d, _ = update(t, d, enterKey())

	if d.sess.Phase() != engine.PhaseFeedback {
		t.Fatalf("phase = %v, want feedback", d.sess.Phase())
	}
	if !d.sess.LastResult().Correct {
		t.Fatal("expected correct result for default choice")
	}
	view := d.View(100, 30)
	if !strings.Contains(view, "Correct!") {
		t.Errorf("view missing verdict:\n%s", view)
	}
}

func TestIncorrectThenRetry(t *testing.T) {
	d := newStartedDrill(t)

	d, _ = update(t, d, keyPress('j')) // move to the wrong choice
	d, _ = update(t, d, enterKey())

	if d.sess.LastResult().Correct {
		t.Fatal("expected incorrect result")
	}
	view := d.View(100, 30)
	if !strings.Contains(view, "Not quite") {
		t.Errorf("view missing verdict:\n%s", view)
	}

	d, _ = update(t, d, keyPress('r'))
	if d.sess.Phase() != engine.PhaseActive {
		t.Fatalf("phase after retry = %v, want active", d.sess.Phase())
	}
	if d.sess.Retries() != 1 {
		t.Errorf("Retries = %d, want 1", d.sess.Retries())
	}
}

func TestHintKeyRevealsLadder(t *testing.T) {
	d := newStartedDrill(t)

	d, _ = update(t, d, keyPress('?'))
	if len(d.hints) != 1 {
		t.Fatalf("hints shown = %d, want 1", len(d.hints))
	}
	view := d.View(100, 30)
	if !strings.Contains(view, "sending domain") {
		t.Errorf("view missing hint text:\n%s", view)
	}

	// Ladder caps at two rungs.
	d, _ = update(t, d, keyPress('?'))
	d, _ = update(t, d, keyPress('?'))
	if len(d.hints) != 2 {
		t.Errorf("hints shown = %d, want 2", len(d.hints))
	}
}

func TestAdvanceMovesToNextItem(t *testing.T) {
	d := newStartedDrill(t)

	d, _ = update(t, d, enterKey()) // submit correct
	d, _ = update(t, d, enterKey()) // advance

	if d.sess.Phase() != engine.PhaseActive {
		t.Fatalf("phase = %v, want active", d.sess.Phase())
	}
	item, ok := d.sess.Current()
	if !ok || item.ID != "report-order" {
		t.Errorf("current item = %v, want report-order", item.ID)
	}
	view := d.View(100, 30)
	if !strings.Contains(view, "suspicious link") {
		t.Errorf("view missing sequencer stimulus:\n%s", view)
	}
}

func TestCompletionReplacesWithSummary(t *testing.T) {
	d := newStartedDrill(t)

	// Clear the decision item, then the sequencer (already in correct order).
	d, _ = update(t, d, enterKey())
	d, _ = update(t, d, enterKey())
	d, _ = update(t, d, enterKey())
	_, cmd := update(t, d, enterKey())

	if cmd == nil {
		t.Fatal("expected a replace command on completion")
	}
	msg := cmd()
	replace, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("msg = %T, want ReplaceScreenMsg", msg)
	}
	if replace.Screen.Title() != "Drill Summary" {
		t.Errorf("replacement screen = %q", replace.Screen.Title())
	}
}

func TestEscOpensQuitConfirm(t *testing.T) {
	d := newStartedDrill(t)

	d, _ = update(t, d, tea.KeyPressMsg{Code: tea.KeyEscape})
	if !d.confirmQuit {
		t.Fatal("expected quit confirmation")
	}

	d, _ = update(t, d, keyPress('n'))
	if d.confirmQuit {
		t.Error("expected confirmation dismissed on n")
	}

	d, _ = update(t, d, tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := update(t, d, keyPress('y'))
	if cmd == nil {
		t.Fatal("expected pop command on y")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on y")
	}
}

func TestRationaleFocusCapturesKeys(t *testing.T) {
	d := newStartedDrill(t)

	d, _ = update(t, d, tea.KeyPressMsg{Code: tea.KeyTab})
	if !d.rationaleFocused {
		t.Fatal("expected rationale focused after tab")
	}

	// A 'j' now types into the rationale instead of moving the selection.
	d, _ = update(t, d, keyPress('j'))
	if got := d.choices.Value(); got != "verify" {
		t.Errorf("selection moved while rationale focused: %q", got)
	}
	if d.rationale.Value() != "j" {
		t.Errorf("rationale value = %q, want j", d.rationale.Value())
	}

	d, _ = update(t, d, tea.KeyPressMsg{Code: tea.KeyEscape})
	if d.rationaleFocused {
		t.Error("expected rationale blurred after esc")
	}
}

func TestResumeWithoutSnapshotShowsError(t *testing.T) {
	sess := engine.New(testBank(t), nil, nil)
	d := New(sess, nil, true)

	msg := d.Init()()
	updated, _ := d.Update(msg)
	d = updated.(*DrillScreen)

	if d.errMsg == "" {
		t.Fatal("expected error message for resume without snapshot")
	}

	_, cmd := update(t, d, enterKey())
	if cmd == nil {
		t.Fatal("expected pop command from error state")
	}
}

var _ screen.Screen = (*DrillScreen)(nil)
