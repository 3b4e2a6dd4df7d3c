package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/arithtrainer/internal/store"
	"github.com/abhisek/arithtrainer/internal/ui/layout"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-operator accuracy and recent rounds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.EventRepo()
		ops, err := repo.OperatorAccuracy(ctx)
		if err != nil {
			return fmt.Errorf("operator accuracy: %w", err)
		}
		rounds, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query rounds: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(ops) == 0 && len(rounds) == 0 {
			fmt.Fprintln(out, "No rounds played yet.")
			return nil
		}

		fmt.Fprintf(out, "%-8s  %8s  %7s  %8s\n", "Operator", "Answered", "Correct", "Accuracy")
		fmt.Fprintln(out, strings.Repeat("─", 38))
		for _, o := range ops {
			fmt.Fprintf(out, "%-8s  %8d  %7d  %7.0f%%\n", o.Operator, o.Answered, o.Correct, o.Accuracy*100)
		}

		fmt.Fprintf(out, "\n%-16s  %-7s  %5s  %8s  %5s\n", "Played", "Mode", "Score", "Answered", "Time")
		fmt.Fprintln(out, strings.Repeat("─", 50))
		for _, r := range rounds {
			fmt.Fprintf(out, "%-16s  %-7s  %5d  %8d  %5s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04"), r.Mode, r.Score, r.Answered,
				layout.FormatClock(time.Duration(r.DurationSecs)*time.Second))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent rounds to list")
}
