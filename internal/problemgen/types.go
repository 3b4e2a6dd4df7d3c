package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/arithtrainer/internal/exact"
)

// Operator is one of the four arithmetic operations.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
)

// Operators lists every operator in selection order. Iteration over
// operators always goes through this slice so seeded runs are repeatable.
var Operators = []Operator{OpAdd, OpSub, OpMul, OpDiv}

// Name returns the operator's word form, used as a preferences key.
func (o Operator) Name() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	default:
		return string(o)
	}
}

// ParseOperator accepts a symbol ("+", "-", "*", "/"), its typographic
// variant ("×", "x", "÷") or its word form ("add", "sub", "mul", "div").
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "add":
		return OpAdd, nil
	case "-", "−", "sub":
		return OpSub, nil
	case "*", "×", "x", "mul":
		return OpMul, nil
	case "/", "÷", "div":
		return OpDiv, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

// Mode selects how operands are sampled.
type Mode string

const (
	// ModeRange draws integer operands from per-operator bounds.
	ModeRange Mode = "range"

	// ModeSigFigs draws decimal operands with a given number of significant
	// figures and a given magnitude.
	ModeSigFigs Mode = "sigfigs"
)

// RangeSpec holds inclusive integer bounds. Lo and Hi may be given in
// either order.
type RangeSpec struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// Bounds returns the bounds ordered so that lo <= hi.
func (r RangeSpec) Bounds() (lo, hi int) {
	if r.Lo <= r.Hi {
		return r.Lo, r.Hi
	}
	return r.Hi, r.Lo
}

// SigFigSpec describes one operand role in sig-figs mode: a digit count in
// [SigMin, SigMax] and a base-10 exponent (the power of ten of the leading
// digit) in [ExpMin, ExpMax]. Each pair may be given in either order.
type SigFigSpec struct {
	SigMin int `json:"sig_min"`
	SigMax int `json:"sig_max"`
	ExpMin int `json:"exp_min"`
	ExpMax int `json:"exp_max"`
}

func (s SigFigSpec) sigBounds() (int, int) {
	return RangeSpec{s.SigMin, s.SigMax}.Bounds()
}

func (s SigFigSpec) expBounds() (int, int) {
	return RangeSpec{s.ExpMin, s.ExpMax}.Bounds()
}

// Allows reports whether n significant figures is within the spec.
func (s SigFigSpec) Allows(n int) bool {
	lo, hi := s.sigBounds()
	return n >= lo && n <= hi
}

// Role names an operand slot in sig-figs mode. Roles are assigned to the
// left and right operand positions at random.
type Role string

const (
	RoleA Role = "A"
	RoleB Role = "B"
)

// OperatorWeight is the selection setting for one operator.
type OperatorWeight struct {
	Enabled bool `json:"enabled"`
	Weight  int  `json:"weight"`
}

// Problem is a generated binary arithmetic problem.
type Problem struct {
	Operator Operator
	Operand1 exact.Value
	Operand2 exact.Value
}

// String renders the problem as "a op b" using canonical operand formatting.
func (p Problem) String() string {
	return fmt.Sprintf("%s %s %s", p.Operand1, p.Operator, p.Operand2)
}

// Result returns the exact result of the problem.
func (p Problem) Result() (exact.Value, error) {
	return Evaluate(p.Operator, p.Operand1, p.Operand2)
}

// Outcome is the result of one Generate call.
type Outcome struct {
	Problem Problem

	// Result is the exact value of Problem.
	Result exact.Value

	// Attempts is the number of outer loop iterations used.
	Attempts int

	// Fallback is true when no candidate passed the validators within the
	// attempt budget and the fixed "1 + 1" problem was emitted instead.
	Fallback bool
}
