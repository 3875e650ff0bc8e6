package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show your best runs",
	Long: `Display the local run history, best survival time first.

Examples:
  platformer scores
  platformer scores --limit 25
  platformer scores --recent
  platformer scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the local run history")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	title := "Best Runs"
	runs, err := store.TopRuns(flagScoresLimit)
	if flagScoresRecent {
		title = "Recent Runs"
		runs, err = store.RecentRuns(flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'platformer play' to set the first record!")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %-7s  %-10s  %s\n", "Rank", "Name", "Time", "Score", "Difficulty", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-7s  %-10s  %s\n", "----", "----", "----", "-----", "----------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-16s  %-8s  %-7d  %-10s  %s\n",
			i+1, r.Name, fmt.Sprintf("%.2fs", r.Time), r.Score, r.Difficulty, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	st, err := store.Stats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best time: %.2fs  High score: %d  Avg score: %.0f\n",
			st.Runs, st.BestTime, st.HighScore, st.AvgScore)
	}
	return nil
}
