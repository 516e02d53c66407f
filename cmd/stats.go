package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rsuresh/quizcraft/internal/mastery"
	"github.com/rsuresh/quizcraft/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show drill statistics",
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

		sum, err := st.EventRepo().Summary(cmd.Context())
		if err != nil {
			return fmt.Errorf("summarize event log: %w", err)
		}

		if sum.Attempts == 0 {
			fmt.Println("Nothing logged yet. Run a drill first.")
			return nil
		}

		// Titles are display sugar; stats still print if the bank fails to load.
		titles := map[string]string{}
		if b, err := loadBank(cmd); err == nil {
			for _, obj := range b.Objectives() {
				titles[obj.ID] = obj.Title
			}
		}

		accuracy := float64(sum.Correct) / float64(sum.Attempts) * 100
		fmt.Printf("Drills: %d    Attempts: %d    Correct: %d (%.0f%%)    Hints: %d\n\n",
			sum.Sessions, sum.Attempts, sum.Correct, accuracy, sum.TotalHints)

		fmt.Println("By objective:")
		for _, obj := range sum.ByObjective {
			title := obj.ObjectiveID
			if t, ok := titles[obj.ObjectiveID]; ok {
				title = t
			}
			fmt.Printf("  %-40s %d/%d\n", title, obj.Correct, obj.Attempts)
		}

		if len(sum.Misconception) > 0 {
			fmt.Println("\nMisconceptions:")
			ids := make([]string, 0, len(sum.Misconception))
			for id := range sum.Misconception {
				ids = append(ids, id)
			}
			sort.Slice(ids, func(i, j int) bool {
				if sum.Misconception[ids[i]] != sum.Misconception[ids[j]] {
					return sum.Misconception[ids[i]] > sum.Misconception[ids[j]]
				}
				return ids[i] < ids[j]
			})
			for _, id := range ids {
				fmt.Printf("  %-40s %s\n", id, strings.Repeat("■", sum.Misconception[id]))
			}
		}

		printSavedDrill(cmd, st)
		return nil
	},
}

// printSavedDrill reports the in-progress drill from the latest snapshot,
// if one is resumable.
func printSavedDrill(cmd *cobra.Command, st *store.Store) {
	snap, err := st.SnapshotRepo().Latest(cmd.Context())
	if err != nil || snap == nil {
		return
	}
	data, ok := store.MigrateSnapshot(snap.Data)
	if !ok || !data.Started || data.Completed {
		return
	}

	attempts := make([]mastery.Attempt, len(data.History))
	for i, a := range data.History {
		attempts[i] = mastery.Attempt{Correct: a.Correct, LatencyMs: a.LatencyMs, HintsUsed: a.HintsUsed}
	}
	ms := mastery.Compute(attempts, mastery.DefaultConfig())

	fmt.Printf("\nDrill in progress: %d attempts, streak %d, %d items left to clear.\n",
		len(data.History), ms.Streak, len(data.IncorrectSet))
}
