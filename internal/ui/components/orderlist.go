package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsuresh/quizcraft/internal/ui/theme"
)

// OrderList lets the learner reorder a list of steps. Space grabs or
// releases the step under the cursor; while grabbed, up and down move it.
type OrderList struct {
	Items   []Option
	Cursor  int
	Grabbed bool
}

// NewOrderList creates an order list in the given presentation order.
func NewOrderList(items []Option) OrderList {
	out := make([]Option, len(items))
	copy(out, items)
	return OrderList{Items: out}
}

// Update handles keyboard navigation and reordering.
func (o OrderList) Update(msg tea.Msg) (OrderList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			if o.Grabbed {
				o.Items[o.Cursor], o.Items[o.Cursor-1] = o.Items[o.Cursor-1], o.Items[o.Cursor]
			}
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Items)-1 {
			if o.Grabbed {
				o.Items[o.Cursor], o.Items[o.Cursor+1] = o.Items[o.Cursor+1], o.Items[o.Cursor]
			}
			o.Cursor++
		}
	case "space", " ":
		o.Grabbed = !o.Grabbed
	}

	return o, nil
}

// Order returns the current step IDs top to bottom.
func (o OrderList) Order() []string {
	out := make([]string, len(o.Items))
	for i, it := range o.Items {
		out[i] = it.ID
	}
	return out
}

// View renders the list with position numbers.
func (o OrderList) View() string {
	var s string
	for i, it := range o.Items {
		prefix := "  "
		if i == o.Cursor {
			if o.Grabbed {
				prefix = "◆ "
			} else {
				prefix = "▸ "
			}
		}
		line := fmt.Sprintf("%s%d. %s", prefix, i+1, it.Label)

		style := theme.Unselected
		if i == o.Cursor {
			style = theme.Selected
			if o.Grabbed {
				style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
			}
		}
		s += style.Render(line) + "\n"
	}
	return s
}
