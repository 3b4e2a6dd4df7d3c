package problemgen

import (
	"fmt"

	"github.com/abhisek/arithtrainer/internal/exact"
)

// Candidate is a generated problem together with its exact result.
type Candidate struct {
	Problem Problem
	Result  exact.Value
}

// Validator checks a candidate problem before it is emitted.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error messages
	// and logging), e.g. "solution-cap".
	Name() string

	// Validate returns nil if the candidate passes, or a ValidationError
	// describing why it was rejected.
	Validate(c Candidate, cfg *Config) *ValidationError
}

// ValidationError describes why a candidate failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// SolutionCapValidator limits the complexity of the exact result: its
// significant figures must not exceed the operator's cap, and a quotient
// may have at most one decimal place.
type SolutionCapValidator struct{}

func (v *SolutionCapValidator) Name() string { return "solution-cap" }

func (v *SolutionCapValidator) Validate(c Candidate, cfg *Config) *ValidationError {
	op := c.Problem.Operator
	sf := c.Result.SigFigs()
	if limit := cfg.Cap(op); sf > limit {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("result %s has %d significant figures, cap for %s is %d", c.Result, sf, op, limit),
			Retryable: true,
		}
	}
	if op == OpDiv && !c.Result.AtMostOneDecimalPlace() {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("quotient %s has more than one decimal place", c.Result),
			Retryable: true,
		}
	}
	return nil
}
