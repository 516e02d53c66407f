package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rsuresh/quizcraft/internal/app"
	"github.com/rsuresh/quizcraft/internal/coach"
	"github.com/rsuresh/quizcraft/internal/llm"
	"github.com/rsuresh/quizcraft/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	b, err := loadBank(cmd)
	if err != nil {
		return fmt.Errorf("load item bank: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	deps := app.Deps{
		Bank:      b,
		EventRepo: eventRepo,
		SnapRepo:  st.SnapshotRepo(),
	}

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Coach notes will be unavailable.")
	} else {
		deps.Coach = coach.New(provider)
	}

	return app.Run(deps)
}
