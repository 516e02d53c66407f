package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsuresh/quizcraft/internal/bank"
	"github.com/rsuresh/quizcraft/internal/coach"
	"github.com/rsuresh/quizcraft/internal/engine"
	"github.com/rsuresh/quizcraft/internal/router"
	"github.com/rsuresh/quizcraft/internal/screen"
	"github.com/rsuresh/quizcraft/internal/screens/drill"
	"github.com/rsuresh/quizcraft/internal/screens/stats"
	"github.com/rsuresh/quizcraft/internal/store"
	"github.com/rsuresh/quizcraft/internal/ui/components"
	"github.com/rsuresh/quizcraft/internal/ui/layout"
	"github.com/rsuresh/quizcraft/internal/ui/theme"
)

// HomeScreen is the entry menu of the application.
type HomeScreen struct {
	menu      components.Menu
	bank      *bank.Bank
	resumable bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. Event and snapshot repos may be nil for an
// ephemeral run; the coach service may be nil when no LLM is configured.
func New(b *bank.Bank, eventRepo store.EventRepo, snapRepo store.SnapshotRepo, coachSvc *coach.Service) *HomeScreen {
	resumable := hasResumableDrill(snapRepo, b)

	newSession := func() *engine.Session {
		return engine.New(b, eventRepo, snapRepo)
	}

	items := []components.MenuItem{
		{Label: "START DRILL", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: drill.New(newSession(), coachSvc, false)}
			}
		}},
		{Label: "RESUME DRILL", Disabled: !resumable, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: drill.New(newSession(), coachSvc, true)}
			}
		}},
		{Label: "STATS", Disabled: eventRepo == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(eventRepo, b)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:      components.NewMenu(items),
		bank:      b,
		resumable: resumable,
	}
}

// hasResumableDrill checks whether the latest snapshot belongs to an
// unfinished drill over the current item bank.
func hasResumableDrill(snapRepo store.SnapshotRepo, b *bank.Bank) bool {
	if snapRepo == nil {
		return false
	}
	snap, err := snapRepo.Latest(context.Background())
	if err != nil || snap == nil {
		return false
	}
	data, ok := store.MigrateSnapshot(snap.Data)
	if !ok || !data.Started || data.Completed {
		return false
	}
	return len(data.SeenCounts) == b.Len() &&
		data.CurrentItemIndex >= 0 && data.CurrentItemIndex < b.Len()
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("QUIZCRAFT"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Security awareness drills for the terminal"))
	b.WriteString("\n\n")

	info := fmt.Sprintf("%d items across %d objectives",
		h.bank.Len(), len(h.bank.Objectives()))
	if h.resumable {
		info += "   ·   drill in progress"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Render(info))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return b.String()
}
