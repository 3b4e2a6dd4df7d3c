package problemgen

import (
	"fmt"

	"github.com/abhisek/arithtrainer/internal/exact"
)

// AnswerCheck is the outcome of grading one answer.
type AnswerCheck struct {
	// ParsedOK is false when the input is not a number. Such input is a
	// recoverable input error, distinct from a wrong answer.
	ParsedOK bool

	Correct bool

	// Expected is the exact result of the problem.
	Expected exact.Value

	// Given is the parsed input. Zero when ParsedOK is false.
	Given exact.Value
}

// ExactResult returns the canonical form of the expected result.
func (c AnswerCheck) ExactResult() string {
	return c.Expected.String()
}

// CheckAnswer grades input against the exact result of p.
//
// Normalization rules:
// - Whitespace is trimmed
// - Formatting differences are ignored: "7", "7.0", "07" and "0.7e1" all
// match 7, and "3.50" matches "3.5"
// - Otherwise comparison is exact; there is no tolerance
//
// The returned error is non-nil only when p itself cannot be evaluated.
func CheckAnswer(p Problem, input string) (AnswerCheck, error) {
	expected, err := p.Result()
	if err != nil {
		return AnswerCheck{}, fmt.Errorf("check answer for %s: %w", p, err)
	}

	check := AnswerCheck{Expected: expected}
	given, err := exact.Parse(input)
	if err != nil {
		answersChecked.WithLabelValues("invalid").Inc()
		return check, nil
	}

	check.ParsedOK = true
	check.Given = given
	check.Correct = given.Equal(expected)
	if check.Correct {
		answersChecked.WithLabelValues("correct").Inc()
	} else {
		answersChecked.WithLabelValues("incorrect").Inc()
	}
	return check, nil
}
