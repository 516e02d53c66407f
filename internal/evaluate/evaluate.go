package evaluate

import (
	"github.com/rsuresh/quizcraft/internal/bank"
)

// Result is the outcome of evaluating one response.
type Result struct {
	Correct bool

	// MisconceptionID is the first matching detector's ID, empty when the
	// response was correct or no detector matched.
	MisconceptionID string
}

// Evaluate grades a response against an item. Pure: identical inputs always
// produce identical results, which is what makes re-evaluating a modified
// response on retry safe.
func Evaluate(item bank.Item, resp Response) Result {
	var correct bool
	switch item.Mechanic {
	case bank.MechanicDecisionLab:
		correct = resp.ChoiceID == item.AnswerKey.ChoiceID
	case bank.MechanicSequencer:
		correct = orderMatches(resp.Order, item.AnswerKey.Order)
	case bank.MechanicMatchPairs:
		correct = pairsMatch(resp.Pairs, item.AnswerKey.Pairs)
	case bank.MechanicTriage:
		correct = binsMatch(resp.Bins, item.AnswerKey.Bins)
	}

	if correct {
		return Result{Correct: true}
	}

	return Result{MisconceptionID: scanDetectors(item, resp)}
}

// orderMatches requires the same elements at the same positions; both order
// and count are significant.
func orderMatches(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// pairsMatch requires the response to supply exactly the expected key set,
// each mapped to the expected value. Extra or missing keys fail.
func pairsMatch(got, want map[string]string) bool {
	if len(got) != len(want) {
		return false
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

// binsMatch requires, for every expected bin, set equality between the
// response's cards and the expected cards. Order and duplicates within a
// bin are irrelevant; a card missing from or extra in any bin fails.
func binsMatch(got, want map[string][]string) bool {
	if len(got) != len(want) {
		return false
	}
	for bin, wantCards := range want {
		gotCards, ok := got[bin]
		if !ok {
			return false
		}
		if !sameSet(gotCards, wantCards) {
			return false
		}
	}
	return true
}

func sameSet(a, b []string) bool {
	as := make(map[string]bool, len(a))
	for _, x := range a {
		as[x] = true
	}
	bs := make(map[string]bool, len(b))
	for _, x := range b {
		bs[x] = true
	}
	if len(as) != len(bs) {
		return false
	}
	for x := range bs {
		if !as[x] {
			return false
		}
	}
	return true
}
