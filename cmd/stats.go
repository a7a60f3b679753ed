package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cardz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show local review history",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()

		fmt.Println("Sessions")
		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-10s  %9s  %7s  %10s\n", "Mode", "Sessions", "Cards", "Time")
		fmt.Println(strings.Repeat("─", 56))
		for _, mode := range []string{"review", "practice"} {
			st, err := repo.SessionStats(ctx, mode)
			if err != nil {
				return fmt.Errorf("session stats: %w", err)
			}
			fmt.Printf("%-10s  %9d  %7d  %10s\n",
				mode, st.Sessions, st.CardsScored, formatDuration(st.TotalSeconds))
		}
		total, err := repo.SessionStats(ctx, "")
		if err != nil {
			return fmt.Errorf("session stats: %w", err)
		}
		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-10s  %9d  %7d  %10s\n",
			"TOTAL", total.Sessions, total.CardsScored, formatDuration(total.TotalSeconds))

		counts, err := repo.GradeCounts(ctx)
		if err != nil {
			return fmt.Errorf("grade counts: %w", err)
		}
		if len(counts) > 0 {
			var graded int
			for _, n := range counts {
				graded += n
			}
			fmt.Println()
			fmt.Println("Grades")
			fmt.Println(strings.Repeat("─", 56))
			for _, grade := range []string{"again", "hard", "good", "easy"} {
				n := counts[grade]
				fmt.Printf("%-10s  %9d  %5.1f%%\n", grade, n, 100*float64(n)/float64(graded))
			}
		}
		return nil
	},
}

func formatDuration(secs int64) string {
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	if secs < 3600 {
		return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
	}
	return fmt.Sprintf("%dh%02dm", secs/3600, (secs%3600)/60)
}
