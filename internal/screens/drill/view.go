package drill

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rsuresh/quizcraft/internal/bank"
	"github.com/rsuresh/quizcraft/internal/engine"
	"github.com/rsuresh/quizcraft/internal/ui/theme"
)

func (d *DrillScreen) View(width, height int) string {
	if d.errMsg != "" {
		return renderError(width, d.errMsg)
	}
	if d.confirmQuit {
		return renderQuitConfirm(width)
	}

	switch d.sess.Phase() {
	case engine.PhaseActive:
		return d.renderItem(width, false)
	case engine.PhaseFeedback:
		return d.renderItem(width, true)
	case engine.PhaseComplete:
		return centered(width, theme.TextDim, "\n\n  Wrapping up...")
	}
	return centered(width, theme.TextDim, "\n\n  Loading the drill...")
}

// renderItem renders the stimulus, widget, and hints. In feedback mode a
// verdict banner and coach note replace the input affordances.
func (d *DrillScreen) renderItem(width int, feedback bool) string {
	item, ok := d.sess.Current()
	if !ok {
		return centered(width, theme.TextDim, "\n\n  Loading the drill...")
	}

	var b strings.Builder

	// Info line: objective on the left, progress on the right.
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + d.sess.ObjectiveTitle(item.ObjectiveID))

	stats := d.sess.Stats()
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Attempt %d   Streak %d   To clear: %d",
			len(d.sess.History())+1, stats.Streak, d.sess.Remaining()))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		pad = 1
	}
	b.WriteString(left + strings.Repeat(" ", pad) + right + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Stimulus.
	stim := lipgloss.NewStyle().
		Width(min(width-8, 72)).
		Foreground(theme.Text).
		Bold(true).
		Render(item.Stimulus)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, stim))
	b.WriteString("\n\n")

	if feedback {
		b.WriteString(d.renderVerdict(width))
		b.WriteString("\n")
	}

	// Mechanic widget.
	var widget string
	switch item.Mechanic {
	case bank.MechanicDecisionLab:
		widget = d.choices.View()
	case bank.MechanicSequencer:
		widget = d.order.View()
	case bank.MechanicTriage:
		widget = d.board.View()
	case bank.MechanicMatchPairs:
		widget = d.matcher.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, widget))
	b.WriteString("\n")

	// Rationale line for decision items.
	if item.Mechanic == bank.MechanicDecisionLab && !feedback {
		label := "Rationale: "
		if d.rationaleFocused {
			label = lipgloss.NewStyle().Foreground(theme.Primary).Render("Rationale: ")
		} else {
			label = lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, label+d.rationale.View()))
		b.WriteString("\n")
	}

	// Revealed hints.
	if len(d.hints) > 0 {
		var hb strings.Builder
		for i, h := range d.hints {
			hb.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("Hint %d: ", i+1)))
			hb.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(min(width-20, 64)).Render(h))
			hb.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.TrimRight(hb.String(), "\n")))
		b.WriteString("\n")
	}

	if feedback {
		b.WriteString(d.renderCoachNote(width))
	}

	if d.notice != "" {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Error, d.notice))
	}

	return b.String()
}

func (d *DrillScreen) renderVerdict(width int) string {
	var b strings.Builder
	if d.sess.LastResult().Correct {
		b.WriteString(centered(width, theme.Success, "Correct!"))
	} else {
		b.WriteString(centered(width, theme.Error, "Not quite"))
		b.WriteString("\n")
		b.WriteString(centered(width, theme.TextDim, "[R] try again    [Enter] move on, it comes back later"))
	}
	b.WriteString("\n")
	return b.String()
}

func (d *DrillScreen) renderCoachNote(width int) string {
	if d.sess.LastResult().Correct {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	switch {
	case d.coachWait:
		b.WriteString(centered(width, theme.TextDim, "Coach is thinking..."))
	case d.coachNote != "":
		note := lipgloss.NewStyle().
			Width(min(width-8, 68)).
			Foreground(theme.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1).
			Render(d.coachNote)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, note))
	}
	b.WriteString("\n")
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, theme.Text, "Leave the drill?"))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.TextDim, "Your progress is saved; resume any time."))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Success, "[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Primary, "[N] No, keep going"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return centered(width, theme.Error,
		fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}

func centered(width int, fg color.Color, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Render(text)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
