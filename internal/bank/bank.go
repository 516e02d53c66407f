package bank

import "fmt"

// Bank is an immutable collection of learning items. It is an injected
// value: sessions and tests construct their own banks, there is no
// package-level content singleton.
type Bank struct {
	objectives []Objective
	items      []Item
	byID       map[string]int
}

// New constructs a Bank after structural validation. An empty item list is
// invalid by construction; the progression core assumes a non-empty bank.
func New(objectives []Objective, items []Item) (*Bank, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("item bank is empty")
	}

	objIDs := make(map[string]bool, len(objectives))
	for _, o := range objectives {
		if o.ID == "" {
			return nil, fmt.Errorf("objective with empty id")
		}
		if objIDs[o.ID] {
			return nil, fmt.Errorf("duplicate objective id %q", o.ID)
		}
		objIDs[o.ID] = true
	}

	byID := make(map[string]int, len(items))
	for i, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("item %d has empty id", i)
		}
		if _, dup := byID[it.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %q", it.ID)
		}
		if it.ObjectiveID != "" && !objIDs[it.ObjectiveID] {
			return nil, fmt.Errorf("item %q references unknown objective %q", it.ID, it.ObjectiveID)
		}
		if err := validateItem(it); err != nil {
			return nil, fmt.Errorf("item %q: %w", it.ID, err)
		}
		byID[it.ID] = i
	}

	return &Bank{objectives: objectives, items: items, byID: byID}, nil
}

// validateItem checks that an item's presentation data and answer key are
// consistent with its mechanic.
func validateItem(it Item) error {
	switch it.Mechanic {
	case MechanicDecisionLab:
		if len(it.Choices) < 2 {
			return fmt.Errorf("decision_lab needs at least 2 choices")
		}
		if it.AnswerKey.ChoiceID == "" {
			return fmt.Errorf("decision_lab answer key missing choice_id")
		}
		if !hasChoice(it.Choices, it.AnswerKey.ChoiceID) {
			return fmt.Errorf("answer key choice %q not among choices", it.AnswerKey.ChoiceID)
		}

	case MechanicTriage:
		if len(it.BinNames) != 2 {
			return fmt.Errorf("triage needs exactly 2 bins, got %d", len(it.BinNames))
		}
		if len(it.Cards) == 0 {
			return fmt.Errorf("triage has no cards")
		}
		if len(it.AnswerKey.Bins) != 2 {
			return fmt.Errorf("triage answer key needs both bins")
		}
		for _, bin := range it.BinNames {
			if _, ok := it.AnswerKey.Bins[bin]; !ok {
				return fmt.Errorf("answer key missing bin %q", bin)
			}
		}

	case MechanicSequencer:
		if len(it.Steps) < 2 {
			return fmt.Errorf("sequencer needs at least 2 steps")
		}
		if len(it.AnswerKey.Order) != len(it.Steps) {
			return fmt.Errorf("answer key order length %d != step count %d", len(it.AnswerKey.Order), len(it.Steps))
		}

	case MechanicMatchPairs:
		if len(it.Lefts) == 0 || len(it.Rights) == 0 {
			return fmt.Errorf("match_pairs needs left and right entries")
		}
		if len(it.AnswerKey.Pairs) != len(it.Lefts) {
			return fmt.Errorf("answer key pairs %d != left entries %d", len(it.AnswerKey.Pairs), len(it.Lefts))
		}
		for _, l := range it.Lefts {
			if _, ok := it.AnswerKey.Pairs[l.ID]; !ok {
				return fmt.Errorf("answer key missing pair for %q", l.ID)
			}
		}

	default:
		return fmt.Errorf("unknown mechanic %q", it.Mechanic)
	}
	return nil
}

func hasChoice(choices []Choice, id string) bool {
	for _, c := range choices {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Len returns the number of items.
func (b *Bank) Len() int {
	return len(b.items)
}

// Item returns the item at index i.
func (b *Bank) Item(i int) Item {
	return b.items[i]
}

// IndexOf returns the index of the item with the given ID, or -1.
func (b *Bank) IndexOf(id string) int {
	if i, ok := b.byID[id]; ok {
		return i
	}
	return -1
}

// Items returns a copy of the item slice.
func (b *Bank) Items() []Item {
	out := make([]Item, len(b.items))
	copy(out, b.items)
	return out
}

// Objectives returns a copy of the objective list.
func (b *Bank) Objectives() []Objective {
	out := make([]Objective, len(b.objectives))
	copy(out, b.objectives)
	return out
}

// ObjectiveTitle resolves an objective ID to its title, falling back to
// the ID itself.
func (b *Bank) ObjectiveTitle(id string) string {
	for _, o := range b.objectives {
		if o.ID == id {
			return o.Title
		}
	}
	return id
}
