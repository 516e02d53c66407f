package stats

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsuresh/quizcraft/internal/bank"
	"github.com/rsuresh/quizcraft/internal/router"
	"github.com/rsuresh/quizcraft/internal/screen"
	"github.com/rsuresh/quizcraft/internal/store"
	"github.com/rsuresh/quizcraft/internal/ui/components"
	"github.com/rsuresh/quizcraft/internal/ui/layout"
	"github.com/rsuresh/quizcraft/internal/ui/theme"
)

type statsLoadedMsg struct {
	Summary *store.LogSummary
	Err     error
}

// StatsScreen displays lifetime drill telemetry: totals, per-objective
// accuracy, and the most common misconceptions.
type StatsScreen struct {
	eventRepo store.EventRepo
	bank      *bank.Bank
	summary   *store.LogSummary
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a stats screen over the event log.
func New(eventRepo store.EventRepo, b *bank.Bank) *StatsScreen {
	return &StatsScreen{eventRepo: eventRepo, bank: b}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		summary, err := s.eventRepo.Summary(context.Background())
		return statsLoadedMsg{Summary: summary, Err: err}
	}
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.summary = msg.Summary
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading stats...")
	}
	sum := s.summary
	if sum == nil || sum.Attempts == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing logged yet. Run a drill first!")
	}

	var b strings.Builder
	b.WriteString("\n")

	var accuracy float64
	if sum.Attempts > 0 {
		accuracy = float64(sum.Correct) / float64(sum.Attempts) * 100
	}
	totals := fmt.Sprintf("Drills: %d    Attempts: %d    Accuracy: %.0f%%    Hints: %d",
		sum.Sessions, sum.Attempts, accuracy, sum.TotalHints)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(totals)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	// Per-objective accuracy bars.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Objectives")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, obj := range sum.ByObjective {
		title := obj.ObjectiveID
		if s.bank != nil {
			if t := s.bank.ObjectiveTitle(obj.ObjectiveID); t != "" {
				title = t
			}
		}
		var ratio float64
		if obj.Attempts > 0 {
			ratio = float64(obj.Correct) / float64(obj.Attempts)
		}

		label := fmt.Sprintf("%-32s %d/%d", title, obj.Correct, obj.Attempts)
		bar := components.NewProgressBar(label, ratio, true, min(width-8, 64))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	// Misconception leaderboard.
	if len(sum.Misconception) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Common misconceptions")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, m := range sortedMisconceptions(sum.Misconception) {
			line := fmt.Sprintf("  %-40s %d", m.id, m.count)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

type misconceptionCount struct {
	id    string
	count int
}

// sortedMisconceptions orders by descending count, ID as tiebreak.
func sortedMisconceptions(counts map[string]int) []misconceptionCount {
	out := make([]misconceptionCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, misconceptionCount{id: id, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].id < out[j].id
	})
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
