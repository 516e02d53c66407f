package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rsuresh/quizcraft/internal/export"
	"github.com/rsuresh/quizcraft/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the event log as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		out := os.Stdout
		if path, _ := cmd.Flags().GetString("out"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		return export.WriteCSV(cmd.Context(), st.EventRepo(), out)
	},
}

func init() {
	exportCmd.Flags().String("out", "", "Write to a file instead of stdout")
}
