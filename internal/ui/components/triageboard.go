package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsuresh/quizcraft/internal/ui/theme"
)

// TriageBoard assigns cards to one of two named bins. Left and right
// arrow keys place the card under the cursor; a card can be reassigned
// any number of times before submission.
type TriageBoard struct {
	Cards    []Option
	BinNames [2]string
	Cursor   int

	// assignment holds -1 (unplaced), 0, or 1 per card.
	assignment []int
}

// NewTriageBoard creates a board with all cards unplaced.
func NewTriageBoard(cards []Option, binNames [2]string) TriageBoard {
	assignment := make([]int, len(cards))
	for i := range assignment {
		assignment[i] = -1
	}
	return TriageBoard{Cards: cards, BinNames: binNames, assignment: assignment}
}

// Update handles keyboard navigation and placement.
func (t TriageBoard) Update(msg tea.Msg) (TriageBoard, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if t.Cursor > 0 {
			t.Cursor--
		}
	case "down", "j":
		if t.Cursor < len(t.Cards)-1 {
			t.Cursor++
		}
	case "left", "h":
		t.assignment[t.Cursor] = 0
	case "right", "l":
		t.assignment[t.Cursor] = 1
	}

	return t, nil
}

// Complete reports whether every card has been placed.
func (t TriageBoard) Complete() bool {
	for _, a := range t.assignment {
		if a == -1 {
			return false
		}
	}
	return true
}

// Bins returns the current placement keyed by bin name. Both bins are
// always present, possibly empty.
func (t TriageBoard) Bins() map[string][]string {
	out := map[string][]string{
		t.BinNames[0]: {},
		t.BinNames[1]: {},
	}
	for i, a := range t.assignment {
		if a >= 0 {
			name := t.BinNames[a]
			out[name] = append(out[name], t.Cards[i].ID)
		}
	}
	return out
}

// View renders the cards with their bin markers.
func (t TriageBoard) View() string {
	headerStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	s := headerStyle.Render(fmt.Sprintf("  ← %s        %s →", t.BinNames[0], t.BinNames[1])) + "\n\n"

	for i, card := range t.Cards {
		prefix := "  "
		if i == t.Cursor {
			prefix = "▸ "
		}

		marker := "[ ? ]"
		markerStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
		switch t.assignment[i] {
		case 0:
			marker = "[← ]"
			markerStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
		case 1:
			marker = "[ →]"
			markerStyle = lipgloss.NewStyle().Foreground(theme.Accent)
		}

		labelStyle := theme.Unselected
		if i == t.Cursor {
			labelStyle = theme.Selected
		}

		s += labelStyle.Render(prefix) + markerStyle.Render(marker) + " " + labelStyle.Render(card.Label) + "\n"
	}

	return s
}
