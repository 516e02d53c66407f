package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsuresh/quizcraft/internal/ui/theme"
)

// Option is one selectable entry with a stable ID.
type Option struct {
	ID    string
	Label string
}

// ChoiceList is a single-choice selector for decision items.
type ChoiceList struct {
	Options  []Option
	Selected int

	revealed  bool
	correctID string
	chosenID  string
}

// NewChoiceList creates a choice list over the given options.
func NewChoiceList(options []Option) ChoiceList {
	return ChoiceList{Options: options}
}

// Update handles keyboard navigation.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.revealed {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	}

	return c, nil
}

// Value returns the ID of the highlighted option.
func (c ChoiceList) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected].ID
}

// Reveal switches to feedback rendering, marking the correct option and
// the learner's pick.
func (c *ChoiceList) Reveal(correctID, chosenID string) {
	c.revealed = true
	c.correctID = correctID
	c.chosenID = chosenID
}

// Reset returns to interactive rendering for a retry.
func (c *ChoiceList) Reset() {
	c.revealed = false
	c.correctID = ""
	c.chosenID = ""
}

// View renders the options.
func (c ChoiceList) View() string {
	labels := "abcdefghij"
	var s string

	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, labels[i%len(labels)], opt.Label)

		var style lipgloss.Style
		switch {
		case c.revealed && opt.ID == c.chosenID && opt.ID != c.correctID:
			style = theme.Incorrect
		case c.revealed && opt.ID == c.chosenID:
			style = theme.Correct
		case c.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		s += style.Render(line) + "\n"
	}

	return s
}
