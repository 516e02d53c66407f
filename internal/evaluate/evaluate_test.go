package evaluate

import (
	"testing"

	"github.com/rsuresh/quizcraft/internal/bank"
)

func decisionItem() bank.Item {
	return bank.Item{
		ID:       "d1",
		Mechanic: bank.MechanicDecisionLab,
		Choices: []bank.Choice{
			{ID: "opt_a", Label: "A"},
			{ID: "opt_b", Label: "B"},
			{ID: "opt_c", Label: "C"},
		},
		AnswerKey: bank.AnswerKey{ChoiceID: "opt_a"},
		Detectors: []bank.Detector{
			{ID: "misc_b", Kind: "chose_choice", Arg: "opt_b"},
			{ID: "misc_c", Kind: "chose_choice", Arg: "opt_c"},
		},
	}
}

func triageItem() bank.Item {
	return bank.Item{
		ID:       "t1",
		Mechanic: bank.MechanicTriage,
		Cards: []bank.Card{
			{ID: "x"}, {ID: "y"}, {ID: "z"},
		},
		BinNames: []string{"vulnerability", "safe"},
		AnswerKey: bank.AnswerKey{
			Bins: map[string][]string{
				"vulnerability": {"x", "y"},
				"safe":          {"z"},
			},
		},
	}
}

func TestEvaluateDecisionLab(t *testing.T) {
	item := decisionItem()

	tests := []struct {
		name        string
		resp        Response
		wantCorrect bool
		wantMisc    string
	}{
		{"correct choice", Response{ChoiceID: "opt_a"}, true, ""},
		{"correct with rationale", Response{ChoiceID: "opt_a", Rationale: "because"}, true, ""},
		{"detector fires", Response{ChoiceID: "opt_b"}, false, "misc_b"},
		{"second detector", Response{ChoiceID: "opt_c"}, false, "misc_c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(item, tt.resp)
			if got.Correct != tt.wantCorrect {
				t.Errorf("Correct = %v, want %v", got.Correct, tt.wantCorrect)
			}
			if got.MisconceptionID != tt.wantMisc {
				t.Errorf("MisconceptionID = %q, want %q", got.MisconceptionID, tt.wantMisc)
			}
		})
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	item := decisionItem()
	resp := Response{ChoiceID: "opt_a"}

	first := Evaluate(item, resp)
	for i := 0; i < 5; i++ {
		if got := Evaluate(item, resp); got != first {
			t.Fatalf("call %d = %+v, first call = %+v", i+2, got, first)
		}
	}
	if !first.Correct {
		t.Error("expected correct result")
	}
}

func TestEvaluateSequencer(t *testing.T) {
	item := bank.Item{
		Mechanic: bank.MechanicSequencer,
		Steps:    []bank.Step{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		AnswerKey: bank.AnswerKey{
			Order: []string{"a", "b", "c"},
		},
	}

	tests := []struct {
		name  string
		order []string
		want  bool
	}{
		{"exact order", []string{"a", "b", "c"}, true},
		{"wrong order", []string{"b", "a", "c"}, false},
		{"short", []string{"a", "b"}, false},
		{"extra element", []string{"a", "b", "c", "c"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(item, Response{Order: tt.order})
			if got.Correct != tt.want {
				t.Errorf("Correct = %v, want %v", got.Correct, tt.want)
			}
		})
	}
}

func TestEvaluateMatchPairs(t *testing.T) {
	item := bank.Item{
		Mechanic: bank.MechanicMatchPairs,
		Lefts:    []bank.PairEntry{{ID: "l1"}, {ID: "l2"}},
		Rights:   []bank.PairEntry{{ID: "r1"}, {ID: "r2"}},
		AnswerKey: bank.AnswerKey{
			Pairs: map[string]string{"l1": "r1", "l2": "r2"},
		},
		Detectors: []bank.Detector{
			{ID: "misc_swap", Kind: "pair_swapped", Arg: "l1:l2"},
		},
	}

	tests := []struct {
		name     string
		pairs    map[string]string
		want     bool
		wantMisc string
	}{
		{"all correct", map[string]string{"l1": "r1", "l2": "r2"}, true, ""},
		{"swapped", map[string]string{"l1": "r2", "l2": "r1"}, false, "misc_swap"},
		{"missing key", map[string]string{"l1": "r1"}, false, ""},
		{"extra key", map[string]string{"l1": "r1", "l2": "r2", "l3": "r1"}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(item, Response{Pairs: tt.pairs})
			if got.Correct != tt.want {
				t.Errorf("Correct = %v, want %v", got.Correct, tt.want)
			}
			if got.MisconceptionID != tt.wantMisc {
				t.Errorf("MisconceptionID = %q, want %q", got.MisconceptionID, tt.wantMisc)
			}
		})
	}
}

func TestEvaluateTriageSetEquality(t *testing.T) {
	item := triageItem()

	// Same cards in either order evaluate identically.
	a := Evaluate(item, Response{Bins: map[string][]string{
		"vulnerability": {"x", "y"},
		"safe":          {"z"},
	}})
	b := Evaluate(item, Response{Bins: map[string][]string{
		"vulnerability": {"y", "x"},
		"safe":          {"z"},
	}})
	if !a.Correct || !b.Correct {
		t.Errorf("order-insensitive: got %v / %v, want both correct", a.Correct, b.Correct)
	}

	// An extra card fails even when the expected subset is present.
	c := Evaluate(item, Response{Bins: map[string][]string{
		"vulnerability": {"x", "y", "z"},
		"safe":          {},
	}})
	if c.Correct {
		t.Error("extra card in bin should be incorrect")
	}

	// A missing bin fails.
	d := Evaluate(item, Response{Bins: map[string][]string{
		"vulnerability": {"x", "y"},
	}})
	if d.Correct {
		t.Error("missing bin should be incorrect")
	}
}

func TestMisconceptionPrecedence(t *testing.T) {
	// Two detectors that both match: only the first declared one reports.
	item := decisionItem()
	item.Detectors = []bank.Detector{
		{ID: "misc_first", Kind: "chose_choice", Arg: "opt_b"},
		{ID: "misc_second", Kind: "chose_choice", Arg: "opt_b"},
	}

	got := Evaluate(item, Response{ChoiceID: "opt_b"})
	if got.MisconceptionID != "misc_first" {
		t.Errorf("MisconceptionID = %q, want misc_first", got.MisconceptionID)
	}
}

func TestDetectorPanicIsNonMatch(t *testing.T) {
	// order_starts_with indexes Order[0]; an empty order would panic inside
	// the predicate. It must be swallowed and treated as non-matching.
	item := bank.Item{
		Mechanic:  bank.MechanicSequencer,
		Steps:     []bank.Step{{ID: "a"}, {ID: "b"}},
		AnswerKey: bank.AnswerKey{Order: []string{"a", "b"}},
		Detectors: []bank.Detector{
			{ID: "misc_panics", Kind: "order_starts_with", Arg: "b"},
			{ID: "misc_overfull", Kind: "bin_overfull", Arg: "whatever"},
		},
	}

	got := Evaluate(item, Response{Order: []string{}})
	if got.Correct {
		t.Fatal("empty order should be incorrect")
	}
	if got.MisconceptionID != "" {
		t.Errorf("MisconceptionID = %q, want empty", got.MisconceptionID)
	}
}

func TestUnknownDetectorKindIgnored(t *testing.T) {
	item := decisionItem()
	item.Detectors = []bank.Detector{
		{ID: "misc_unknown", Kind: "does_not_exist"},
		{ID: "misc_b", Kind: "chose_choice", Arg: "opt_b"},
	}

	got := Evaluate(item, Response{ChoiceID: "opt_b"})
	if got.MisconceptionID != "misc_b" {
		t.Errorf("MisconceptionID = %q, want misc_b", got.MisconceptionID)
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		item    bank.Item
		resp    Response
		wantErr bool
	}{
		{"decision ok", bank.Item{Mechanic: bank.MechanicDecisionLab}, Response{ChoiceID: "x"}, false},
		{"decision missing choice", bank.Item{Mechanic: bank.MechanicDecisionLab}, Response{Rationale: "only"}, true},
		{"sequencer ok", bank.Item{Mechanic: bank.MechanicSequencer}, Response{Order: []string{"a"}}, false},
		{"sequencer empty", bank.Item{Mechanic: bank.MechanicSequencer}, Response{}, true},
		{"pairs ok", bank.Item{Mechanic: bank.MechanicMatchPairs}, Response{Pairs: map[string]string{"l": "r"}}, false},
		{"pairs empty", bank.Item{Mechanic: bank.MechanicMatchPairs}, Response{}, true},
		{"triage ok", bank.Item{Mechanic: bank.MechanicTriage}, Response{Bins: map[string][]string{"a": {}}}, false},
		{"triage empty", bank.Item{Mechanic: bank.MechanicTriage}, Response{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResponse(tt.item, tt.resp)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
