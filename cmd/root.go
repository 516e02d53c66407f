package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rsuresh/quizcraft/internal/bank"
	"github.com/rsuresh/quizcraft/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizcraft",
	Short: "Security awareness drills in the terminal",
	Long:  "Quizcraft — a terminal drill that builds security judgment through scenario decisions, triage, sequencing, and matching exercises.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZCRAFT_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Path to an external item bank JSON file (default: embedded content)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZCRAFT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadBank loads the item bank from --bank, falling back to the embedded
// seed content.
func loadBank(cmd *cobra.Command) (*bank.Bank, error) {
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		return bank.LoadFile(p)
	}
	return bank.LoadSeed()
}
