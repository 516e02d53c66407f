package drill

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/rsuresh/quizcraft/internal/bank"
	"github.com/rsuresh/quizcraft/internal/coach"
	"github.com/rsuresh/quizcraft/internal/engine"
	"github.com/rsuresh/quizcraft/internal/evaluate"
	"github.com/rsuresh/quizcraft/internal/router"
	"github.com/rsuresh/quizcraft/internal/screen"
	"github.com/rsuresh/quizcraft/internal/screens/summary"
	"github.com/rsuresh/quizcraft/internal/ui/components"
	"github.com/rsuresh/quizcraft/internal/ui/layout"
)

// DrillScreen implements screen.Screen for the active drill. It drives
// the session engine and renders one interaction widget per mechanic.
type DrillScreen struct {
	sess   *engine.Session
	coach  *coach.Service // nil when no LLM provider is configured
	resume bool

	choices   components.ChoiceList
	rationale components.TextInput
	order     components.OrderList
	board     components.TriageBoard
	matcher   components.PairMatcher

	rationaleFocused bool

	hints     []string
	coachNote string
	coachWait bool
	lastResp  evaluate.Response
	notice    string

	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)

// New creates a drill screen over an unstarted session. When resume is
// true the screen restores the latest snapshot instead of starting fresh.
func New(sess *engine.Session, coachSvc *coach.Service, resume bool) *DrillScreen {
	return &DrillScreen{
		sess:   sess,
		coach:  coachSvc,
		resume: resume,
	}
}

func (d *DrillScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if d.resume {
			err = d.sess.Resume(ctx)
		} else {
			err = d.sess.Start(ctx)
		}
		return drillStartedMsg{Err: err}
	}
}

func (d *DrillScreen) Title() string {
	return "Drill"
}

func (d *DrillScreen) KeyHints() []layout.KeyHint {
	if d.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if d.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave drill"},
			{Key: "N", Description: "Keep going"},
		}
	}

	switch d.sess.Phase() {
	case engine.PhaseFeedback:
		if d.sess.LastResult().Correct {
			return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
		}
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Enter", Description: "Move on"},
		}
	case engine.PhaseActive:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "?", Description: "Hint"},
		}
		if item, ok := d.sess.Current(); ok && item.Mechanic == bank.MechanicDecisionLab {
			hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Rationale"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	}
	return nil
}

func (d *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case drillStartedMsg:
		return d.handleStarted(msg)

	case coachNoteMsg:
		return d.handleCoachNote(msg)

	case tea.KeyMsg:
		return d.handleKey(msg)
	}

	// Forward non-key messages to the rationale input while it edits.
	if d.rationaleFocused && d.sess.Phase() == engine.PhaseActive {
		var cmd tea.Cmd
		d.rationale, cmd = d.rationale.Update(msg)
		return d, cmd
	}

	return d, nil
}

func (d *DrillScreen) handleStarted(msg drillStartedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		d.errMsg = msg.Err.Error()
		return d, nil
	}
	d.setupItem()
	return d, nil
}

func (d *DrillScreen) handleCoachNote(msg coachNoteMsg) (screen.Screen, tea.Cmd) {
	if !d.coachWait {
		return d, nil
	}
	item, ok := d.sess.Current()
	if !ok || item.ID != msg.ItemID {
		return d, nil
	}
	d.coachWait = false
	if msg.Err == nil {
		d.coachNote = msg.Note
	}
	return d, nil
}

func (d *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state, any key goes back.
	if d.errMsg != "" {
		return d, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if d.confirmQuit {
		switch key {
		case "y", "Y":
			return d, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			d.confirmQuit = false
		}
		return d, nil
	}

	switch d.sess.Phase() {
	case engine.PhaseFeedback:
		return d.handleFeedbackKey(key)
	case engine.PhaseActive:
		return d.handleActiveKey(msg, key)
	}

	return d, nil
}

func (d *DrillScreen) handleFeedbackKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "enter":
		return d.advance()
	case "r", "R":
		if !d.sess.LastResult().Correct {
			if err := d.sess.Retry(context.Background()); err != nil {
				d.notice = err.Error()
				return d, nil
			}
			d.setupItem()
		}
	case "esc":
		d.confirmQuit = true
	}
	return d, nil
}

func (d *DrillScreen) handleActiveKey(msg tea.KeyMsg, key string) (screen.Screen, tea.Cmd) {
	item, ok := d.sess.Current()
	if !ok {
		return d, nil
	}

	// While the rationale is being edited, only escape hatches bypass it.
	if d.rationaleFocused {
		switch key {
		case "enter":
			return d.submit(item)
		case "esc", "tab":
			d.rationaleFocused = false
			d.rationale.Blur()
			return d, nil
		}
		var cmd tea.Cmd
		d.rationale, cmd = d.rationale.Update(msg)
		return d, cmd
	}

	switch key {
	case "esc":
		d.confirmQuit = true
		return d, nil
	case "enter":
		return d.submit(item)
	case "?":
		if hint, ok := d.sess.RequestHint(context.Background()); ok {
			d.hints = append(d.hints, hint)
		}
		return d, nil
	case "tab":
		if item.Mechanic == bank.MechanicDecisionLab {
			d.rationaleFocused = true
			return d, d.rationale.Focus()
		}
		return d, nil
	}

	// Everything else steers the mechanic widget.
	var cmd tea.Cmd
	switch item.Mechanic {
	case bank.MechanicDecisionLab:
		d.choices, cmd = d.choices.Update(msg)
	case bank.MechanicSequencer:
		d.order, cmd = d.order.Update(msg)
	case bank.MechanicTriage:
		d.board, cmd = d.board.Update(msg)
	case bank.MechanicMatchPairs:
		d.matcher, cmd = d.matcher.Update(msg)
	}
	return d, cmd
}

// submit builds the response for the current widget state and hands it to
// the engine. Incomplete boards and matchers are held back with a notice
// instead of being submitted.
func (d *DrillScreen) submit(item bank.Item) (screen.Screen, tea.Cmd) {
	var resp evaluate.Response
	switch item.Mechanic {
	case bank.MechanicDecisionLab:
		resp = evaluate.Response{ChoiceID: d.choices.Value(), Rationale: d.rationale.Value()}
	case bank.MechanicSequencer:
		resp = evaluate.Response{Order: d.order.Order()}
	case bank.MechanicTriage:
		if !d.board.Complete() {
			d.notice = "Place every card before submitting."
			return d, nil
		}
		resp = evaluate.Response{Bins: d.board.Bins()}
	case bank.MechanicMatchPairs:
		if !d.matcher.Complete() {
			d.notice = "Match every entry before submitting."
			return d, nil
		}
		resp = evaluate.Response{Pairs: d.matcher.Pairs()}
	}

	result, err := d.sess.Submit(context.Background(), resp)
	if err != nil {
		d.notice = err.Error()
		return d, nil
	}

	d.lastResp = resp
	d.notice = ""
	d.rationaleFocused = false
	d.rationale.Blur()

	if item.Mechanic == bank.MechanicDecisionLab {
		d.choices.Reveal(item.AnswerKey.ChoiceID, resp.ChoiceID)
	}

	if !result.Correct && d.coach != nil {
		d.coachWait = true
		return d, d.fetchCoachNote(item, resp, result.MisconceptionID)
	}
	return d, nil
}

func (d *DrillScreen) advance() (screen.Screen, tea.Cmd) {
	if err := d.sess.Advance(context.Background()); err != nil {
		d.notice = err.Error()
		return d, nil
	}

	if d.sess.Phase() == engine.PhaseComplete {
		stats := d.sess.Stats()
		history := d.sess.History()
		return d, func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: summary.New(stats, history),
			}
		}
	}

	d.setupItem()
	return d, nil
}

// setupItem rebuilds the interaction widgets for the current item. It is
// also used after a retry, where revealed hints carry over.
func (d *DrillScreen) setupItem() {
	item, ok := d.sess.Current()
	if !ok {
		return
	}

	d.hints = append([]string(nil), item.HintLadder[:d.sess.HintsShown()]...)
	d.coachNote = ""
	d.coachWait = false
	d.notice = ""
	d.rationaleFocused = false
	d.lastResp = evaluate.Response{}

	switch item.Mechanic {
	case bank.MechanicDecisionLab:
		opts := make([]components.Option, len(item.Choices))
		for i, c := range item.Choices {
			opts[i] = components.Option{ID: c.ID, Label: c.Label}
		}
		d.choices = components.NewChoiceList(opts)
		d.rationale = components.NewTextInput("Why that call? (optional)", 200)

	case bank.MechanicSequencer:
		opts := make([]components.Option, len(item.Steps))
		for i, st := range item.Steps {
			opts[i] = components.Option{ID: st.ID, Label: st.Label}
		}
		d.order = components.NewOrderList(opts)

	case bank.MechanicTriage:
		opts := make([]components.Option, len(item.Cards))
		for i, c := range item.Cards {
			opts[i] = components.Option{ID: c.ID, Label: c.Label}
		}
		var bins [2]string
		if len(item.BinNames) >= 2 {
			bins[0], bins[1] = item.BinNames[0], item.BinNames[1]
		}
		d.board = components.NewTriageBoard(opts, bins)

	case bank.MechanicMatchPairs:
		lefts := make([]components.Option, len(item.Lefts))
		for i, l := range item.Lefts {
			lefts[i] = components.Option{ID: l.ID, Label: l.Label}
		}
		rights := make([]components.Option, len(item.Rights))
		for i, r := range item.Rights {
			rights[i] = components.Option{ID: r.ID, Label: r.Label}
		}
		d.matcher = components.NewPairMatcher(lefts, rights)
	}
}

// fetchCoachNote generates a coach note asynchronously so feedback shows
// immediately while the note streams in.
func (d *DrillScreen) fetchCoachNote(item bank.Item, resp evaluate.Response, misconceptionID string) tea.Cmd {
	svc := d.coach
	return func() tea.Msg {
		note, err := svc.Explain(context.Background(), item, resp, misconceptionID)
		return coachNoteMsg{ItemID: item.ID, Note: note, Err: err}
	}
}
