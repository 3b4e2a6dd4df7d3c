package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/arithtrainer/internal/exact"
	"github.com/abhisek/arithtrainer/internal/problemgen"
	"github.com/abhisek/arithtrainer/internal/session"
)

var checkCmd = &cobra.Command{
	Use:   "check <a> <op> <b> <answer>",
	Short: "Check an answer against the exact result",
	Long: "Check an answer against the exact result of a op b.\n" +
		"The operator may be a symbol (+ - * /) or a word (add sub mul div).",
	Example: "  arithtrainer check 1.5 mul 3 4.50",
	Args:    cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, check, err := checkAnswer(args[0], args[1], args[2], args[3])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case !check.ParsedOK:
			fmt.Fprintln(out, session.MsgInvalid)
		case check.Correct:
			fmt.Fprintln(out, session.MsgCorrect)
		default:
			fmt.Fprintf(out, "The correct answer to %s is %s\n", p, check.ExactResult())
		}
		return nil
	},
}

// checkAnswer parses the problem from its text parts and grades answer.
func checkAnswer(a, op, b, answer string) (problemgen.Problem, problemgen.AnswerCheck, error) {
	operator, err := problemgen.ParseOperator(op)
	if err != nil {
		return problemgen.Problem{}, problemgen.AnswerCheck{}, err
	}
	x, err := exact.Parse(a)
	if err != nil {
		return problemgen.Problem{}, problemgen.AnswerCheck{}, fmt.Errorf("first operand: %w", err)
	}
	y, err := exact.Parse(b)
	if err != nil {
		return problemgen.Problem{}, problemgen.AnswerCheck{}, fmt.Errorf("second operand: %w", err)
	}
	p := problemgen.Problem{Operator: operator, Operand1: x, Operand2: y}

	check, err := problemgen.CheckAnswer(p, answer)
	return p, check, err
}
