package evaluate

import (
	"strings"

	"github.com/rsuresh/quizcraft/internal/bank"
)

// predicate reports whether a misconception rule matches an incorrect
// response. Predicates are small pure functions keyed by detector kind;
// the content file only ever names a kind and an argument.
type predicate func(item bank.Item, resp Response, arg string) bool

// predicates is the detector rule registry. Unknown kinds never match.
var predicates = map[string]predicate{
	// chose_choice: the learner picked the named choice.
	"chose_choice": func(_ bank.Item, resp Response, arg string) bool {
		return resp.ChoiceID == arg
	},

	// order_starts_with: the submitted order begins with the named step.
	"order_starts_with": func(_ bank.Item, resp Response, arg string) bool {
		return resp.Order[0] == arg
	},

	// order_before: arg "a:b" — step a appears before step b in the
	// submitted order (both present).
	"order_before": func(_ bank.Item, resp Response, arg string) bool {
		a, b, ok := splitArg(arg)
		if !ok {
			return false
		}
		ai, bi := -1, -1
		for i, s := range resp.Order {
			switch s {
			case a:
				ai = i
			case b:
				bi = i
			}
		}
		return ai >= 0 && bi >= 0 && ai < bi
	},

	// pair_swapped: arg "l1:l2" — the learner gave l1 the answer expected
	// for l2 and vice versa.
	"pair_swapped": func(item bank.Item, resp Response, arg string) bool {
		l1, l2, ok := splitArg(arg)
		if !ok {
			return false
		}
		want := item.AnswerKey.Pairs
		return resp.Pairs[l1] == want[l2] && resp.Pairs[l2] == want[l1]
	},

	// card_in_bin: arg "card:bin" — the named card was placed in the
	// named bin.
	"card_in_bin": func(_ bank.Item, resp Response, arg string) bool {
		card, binName, ok := splitArg(arg)
		if !ok {
			return false
		}
		for _, c := range resp.Bins[binName] {
			if c == card {
				return true
			}
		}
		return false
	},

	// bin_overfull: the named bin holds more cards than expected.
	"bin_overfull": func(item bank.Item, resp Response, arg string) bool {
		return len(resp.Bins[arg]) > len(item.AnswerKey.Bins[arg])
	},
}

// scanDetectors runs the item's detectors in declaration order and returns
// the first matching misconception ID. A predicate that panics (malformed
// response shapes can make index lookups blow up) counts as non-matching:
// detector failure must never take down evaluation.
func scanDetectors(item bank.Item, resp Response) string {
	for _, d := range item.Detectors {
		p, ok := predicates[d.Kind]
		if !ok {
			continue
		}
		if safeMatch(p, item, resp, d.Arg) {
			return d.ID
		}
	}
	return ""
}

func safeMatch(p predicate, item bank.Item, resp Response, arg string) (matched bool) {
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()
	return p(item, resp, arg)
}

func splitArg(arg string) (string, string, bool) {
	a, b, found := strings.Cut(arg, ":")
	if !found || a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}
