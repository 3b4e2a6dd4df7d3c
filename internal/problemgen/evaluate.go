package problemgen

import (
	"fmt"

	"github.com/abhisek/arithtrainer/internal/exact"
)

// Evaluate computes a op b exactly. Division fails with
// exact.ErrDivisionByZero or exact.ErrInexact; an operator outside + - * /
// fails with ErrUnknownOperator.
func Evaluate(op Operator, a, b exact.Value) (exact.Value, error) {
	switch op {
	case OpAdd:
		return a.Add(b), nil
	case OpSub:
		return a.Sub(b), nil
	case OpMul:
		return a.Mul(b), nil
	case OpDiv:
		q, err := a.Quo(b)
		if err != nil {
			return exact.Value{}, fmt.Errorf("evaluate %s / %s: %w", a, b, err)
		}
		return q, nil
	}
	return exact.Value{}, fmt.Errorf("%w: %q", ErrUnknownOperator, string(op))
}

// mustEvaluate evaluates a generated problem. Generated problems are exact
// by construction, so failure is a programming error.
func mustEvaluate(p Problem) exact.Value {
	v, err := Evaluate(p.Operator, p.Operand1, p.Operand2)
	if err != nil {
		panic("problemgen: " + err.Error())
	}
	return v
}
