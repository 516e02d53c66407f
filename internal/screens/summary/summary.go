package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsuresh/quizcraft/internal/engine"
	"github.com/rsuresh/quizcraft/internal/mastery"
	"github.com/rsuresh/quizcraft/internal/router"
	"github.com/rsuresh/quizcraft/internal/screen"
	"github.com/rsuresh/quizcraft/internal/ui/layout"
	"github.com/rsuresh/quizcraft/internal/ui/theme"
)

// SummaryScreen displays the drill wrap-up: totals, mastery status, and
// the items that needed more than one attempt.
type SummaryScreen struct {
	stats   mastery.Stats
	history []engine.AttemptRecord
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen over a finished drill.
func New(stats mastery.Stats, history []engine.AttemptRecord) *SummaryScreen {
	return &SummaryScreen{stats: stats, history: history}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Drill Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Drill complete!"))
	b.WriteString("\n\n")

	attempts := len(s.history)
	correct := 0
	for _, a := range s.history {
		if a.Correct {
			correct++
		}
	}
	var accuracy float64
	if attempts > 0 {
		accuracy = float64(correct) / float64(attempts) * 100
	}

	statsLine := fmt.Sprintf("Attempts: %d        Correct: %d        Accuracy: %.0f%%",
		attempts, correct, accuracy)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n")

	detailLine := fmt.Sprintf("Final streak: %d        Avg response: %.1fs        Hints: %d",
		s.stats.Streak, float64(s.stats.AvgLatencyMs)/1000, s.stats.TotalHints)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(detailLine))
	b.WriteString("\n\n")

	if s.stats.MasteryMet {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render("Mastery reached!"))
		b.WriteString("\n\n")
	}

	// Items that took more than one attempt.
	rough := roughItems(s.history)
	if len(rough) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Worth another look")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, r := range rough {
			line := fmt.Sprintf("  %s    %d attempts", r.itemID, r.attempts)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

type roughItem struct {
	itemID   string
	attempts int
}

// roughItems lists items with more than one attempt, in first-seen order.
func roughItems(history []engine.AttemptRecord) []roughItem {
	counts := make(map[string]int)
	var order []string
	for _, a := range history {
		if counts[a.ItemID] == 0 {
			order = append(order, a.ItemID)
		}
		counts[a.ItemID]++
	}

	var out []roughItem
	for _, id := range order {
		if counts[id] > 1 {
			out = append(out, roughItem{itemID: id, attempts: counts[id]})
		}
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
