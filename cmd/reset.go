package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rsuresh/quizcraft/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved drill (and with --all, the event log)",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		yes, _ := cmd.Flags().GetBool("yes")

		what := "the saved drill"
		if all {
			what = "the saved drill and the full event log"
		}
		if !yes {
			fmt.Printf("This deletes %s. Continue? [y/N] ", what)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
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

		ctx := cmd.Context()
		if err := st.SnapshotRepo().Clear(ctx); err != nil {
			return fmt.Errorf("clear snapshots: %w", err)
		}
		if all {
			if err := st.EventRepo().Reset(ctx); err != nil {
				return fmt.Errorf("reset event log: %w", err)
			}
		}

		fmt.Printf("Deleted %s.\n", what)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also delete the event log")
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
