package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/arithtrainer/internal/problemgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print random problems using the current preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		answers, _ := cmd.Flags().GetBool("answers")
		if count < 1 {
			return fmt.Errorf("--count must be at least 1")
		}

		logger, closeLog, err := newLogger(cmd, false)
		if err != nil {
			return err
		}
		defer closeLog()

		p, _, err := loadPreferences(cmd, logger)
		if err != nil {
			return err
		}

		src := problemgen.NewRandomSource()
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			src = problemgen.NewSource(seed)
		}
		cfg := p.GenerationConfig()
		gen := problemgen.New(&cfg, src, problemgen.WithLogger(logger))

		out := cmd.OutOrStdout()
		for range count {
			o, err := gen.Generate()
			if err != nil {
				return err
			}
			if answers {
				fmt.Fprintf(out, "%s = %s\n", o.Problem, o.Result)
			} else {
				fmt.Fprintln(out, o.Problem)
			}
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().Int("count", 10, "Number of problems to print")
	generateCmd.Flags().Uint64("seed", 0, "Seed for a reproducible sequence")
	generateCmd.Flags().Bool("answers", false, "Print the exact answer after each problem")
}
