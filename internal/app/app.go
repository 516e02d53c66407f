package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsuresh/quizcraft/internal/bank"
	"github.com/rsuresh/quizcraft/internal/coach"
	"github.com/rsuresh/quizcraft/internal/router"
	"github.com/rsuresh/quizcraft/internal/screen"
	"github.com/rsuresh/quizcraft/internal/screens/home"
	"github.com/rsuresh/quizcraft/internal/store"
	"github.com/rsuresh/quizcraft/internal/ui/layout"
)

// Deps carries everything the TUI needs. Event and snapshot repos may be
// nil for an ephemeral run; Coach may be nil when no LLM is configured.
type Deps struct {
	Bank      *bank.Bank
	EventRepo store.EventRepo
	SnapRepo  store.SnapshotRepo
	Coach     *coach.Service
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(deps Deps) AppModel {
	homeScreen := home.New(deps.Bank, deps.EventRepo, deps.SnapRepo, deps.Coach)
	return AppModel{
		router: router.New(homeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Escape is left to the screens; the drill uses it for its own
		// quit confirmation.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		if hints := provider.KeyHints(); len(hints) > 0 {
			footerHints = append(hints, footerHints...)
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
