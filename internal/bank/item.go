package bank

// Mechanic identifies the interaction pattern of an item. It determines
// both how the item is rendered and which evaluation rule applies.
type Mechanic string

const (
	// MechanicDecisionLab is a single-choice decision with a free-text
	// rationale. The rationale is collected but never graded.
	MechanicDecisionLab Mechanic = "decision_lab"

	// MechanicTriage is a binary classification of cards into two named bins.
	MechanicTriage Mechanic = "triage"

	// MechanicSequencer is an ordering task over a fixed set of steps.
	MechanicSequencer Mechanic = "sequencer"

	// MechanicMatchPairs is a bipartite pairing of left entries to right entries.
	MechanicMatchPairs Mechanic = "match_pairs"
)

// Mechanics lists every supported mechanic.
var Mechanics = []Mechanic{MechanicDecisionLab, MechanicTriage, MechanicSequencer, MechanicMatchPairs}

// Choice is one selectable option of a DecisionLab item.
type Choice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Card is one classifiable card of a Triage item.
type Card struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Step is one orderable entry of a Sequencer item. Steps are listed in
// presentation (scrambled) order; the answer key holds the correct order.
type Step struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// PairEntry is one side of a MatchPairs item.
type PairEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// AnswerKey describes the correct response for an item. Only the field
// matching the item's mechanic is populated.
type AnswerKey struct {
	// ChoiceID is the correct choice for DecisionLab.
	ChoiceID string `json:"choice_id,omitempty"`

	// Order is the correct step ID sequence for Sequencer.
	Order []string `json:"order,omitempty"`

	// Pairs maps left entry ID to the correct right entry ID for MatchPairs.
	Pairs map[string]string `json:"pairs,omitempty"`

	// Bins maps bin name to the expected card ID set for Triage.
	Bins map[string][]string `json:"bins,omitempty"`
}

// Detector names a misconception and the rule that recognizes it in an
// incorrect response. Rules are tagged variants interpreted at evaluation
// time; no executable code is ever stored or serialized.
type Detector struct {
	// ID is the misconception identifier reported when the rule matches.
	ID string `json:"id"`

	// Kind selects the predicate. Known kinds: chose_choice,
	// order_starts_with, order_before, pair_swapped, card_in_bin, bin_overfull.
	Kind string `json:"kind"`

	// Arg parameterizes the predicate; format depends on Kind.
	Arg string `json:"arg,omitempty"`
}

// Item is one learning exercise. Items are built at content-load time and
// never mutated afterwards.
type Item struct {
	ID          string      `json:"id"`
	ObjectiveID string      `json:"objective_id"`
	Mechanic    Mechanic    `json:"mechanic"`
	Stimulus    string      `json:"stimulus"`
	Choices     []Choice    `json:"choices,omitempty"`
	Cards       []Card      `json:"cards,omitempty"`
	BinNames    []string    `json:"bin_names,omitempty"`
	Steps       []Step      `json:"steps,omitempty"`
	Lefts       []PairEntry `json:"lefts,omitempty"`
	Rights      []PairEntry `json:"rights,omitempty"`
	AnswerKey   AnswerKey   `json:"answer_key"`
	Detectors   []Detector  `json:"detectors,omitempty"`
	HintLadder  []string    `json:"hints,omitempty"`
}

// Objective is an informational grouping of items.
type Objective struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
