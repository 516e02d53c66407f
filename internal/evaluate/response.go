package evaluate

import (
	"fmt"

	"github.com/rsuresh/quizcraft/internal/bank"
)

// Response is a learner submission. Only the fields matching the item's
// mechanic are read; the rest are ignored.
type Response struct {
	// ChoiceID is the selected choice (DecisionLab).
	ChoiceID string `json:"choice_id,omitempty"`

	// Rationale is the free-text justification (DecisionLab). Never graded.
	Rationale string `json:"rationale,omitempty"`

	// Order is the submitted step ID sequence (Sequencer).
	Order []string `json:"order,omitempty"`

	// Pairs maps left entry ID to the chosen right entry ID (MatchPairs).
	Pairs map[string]string `json:"pairs,omitempty"`

	// Bins maps bin name to the card IDs placed in it (Triage).
	Bins map[string][]string `json:"bins,omitempty"`
}

// ValidateResponse checks that a response carries the fields the item's
// mechanic requires. It is the Submit guard: a failing response must not
// reach Evaluate or mutate session state.
func ValidateResponse(item bank.Item, resp Response) error {
	switch item.Mechanic {
	case bank.MechanicDecisionLab:
		if resp.ChoiceID == "" {
			return fmt.Errorf("decision_lab response missing choice_id")
		}
	case bank.MechanicSequencer:
		if len(resp.Order) == 0 {
			return fmt.Errorf("sequencer response missing order")
		}
	case bank.MechanicMatchPairs:
		if len(resp.Pairs) == 0 {
			return fmt.Errorf("match_pairs response missing pairs")
		}
	case bank.MechanicTriage:
		if len(resp.Bins) == 0 {
			return fmt.Errorf("triage response missing bins")
		}
	default:
		return fmt.Errorf("unknown mechanic %q", item.Mechanic)
	}
	return nil
}
