package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/rsuresh/quizcraft/internal/ui/theme"
)

// PairMatcher matches left entries to right entries. The cursor walks the
// left column; left and right arrow keys cycle the matched right entry
// for the current row.
type PairMatcher struct {
	Lefts  []Option
	Rights []Option
	Cursor int

	// matched holds an index into Rights per left entry, or -1.
	matched []int
}

// NewPairMatcher creates a matcher with no pairs made.
func NewPairMatcher(lefts, rights []Option) PairMatcher {
	matched := make([]int, len(lefts))
	for i := range matched {
		matched[i] = -1
	}
	return PairMatcher{Lefts: lefts, Rights: rights, matched: matched}
}

// Update handles keyboard navigation and matching.
func (p PairMatcher) Update(msg tea.Msg) (PairMatcher, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if p.Cursor > 0 {
			p.Cursor--
		}
	case "down", "j":
		if p.Cursor < len(p.Lefts)-1 {
			p.Cursor++
		}
	case "right", "l":
		p.matched[p.Cursor] = (p.matched[p.Cursor] + 1) % len(p.Rights)
	case "left", "h":
		if p.matched[p.Cursor] <= 0 {
			p.matched[p.Cursor] = len(p.Rights) - 1
		} else {
			p.matched[p.Cursor]--
		}
	}

	return p, nil
}

// Complete reports whether every left entry has a match.
func (p PairMatcher) Complete() bool {
	for _, m := range p.matched {
		if m == -1 {
			return false
		}
	}
	return true
}

// Pairs returns the current matching as left ID to right ID.
func (p PairMatcher) Pairs() map[string]string {
	out := make(map[string]string, len(p.Lefts))
	for i, m := range p.matched {
		if m >= 0 {
			out[p.Lefts[i].ID] = p.Rights[m].ID
		}
	}
	return out
}

// View renders the left column with the chosen right entry per row.
func (p PairMatcher) View() string {
	var s string
	for i, l := range p.Lefts {
		prefix := "  "
		if i == p.Cursor {
			prefix = "▸ "
		}

		right := "— choose with ←/→ —"
		if p.matched[i] >= 0 {
			right = p.Rights[p.matched[i]].Label
		}

		line := fmt.Sprintf("%s%-30s  %s", prefix, l.Label, right)

		style := theme.Unselected
		if i == p.Cursor {
			style = theme.Selected
		} else if p.matched[i] == -1 {
			style = theme.Hint
		}
		s += style.Render(line) + "\n"
	}
	return s
}
