package problemgen

import "github.com/abhisek/arithtrainer/internal/exact"

// rangeCandidate draws an integer operand pair for op from the configured
// bounds. It reports false when the draw cannot form a problem (a zero
// divisor), in which case the caller retries.
//
//   - + and -: operand1 from AddA, operand2 from AddB. For - the operands
//     are swapped when needed so the result is never negative.
//   - *: operand1 from MulX, operand2 from MulY.
//   - /: divisor from MulY and quotient from MulX; operand1 is their
//     product, so the quotient is always an exact integer.
func rangeCandidate(cfg *Config, op Operator, src Source) (Problem, bool) {
	switch op {
	case OpAdd, OpSub:
		a := int64(intBetween(src, cfg.AddA.Lo, cfg.AddA.Hi))
		b := int64(intBetween(src, cfg.AddB.Lo, cfg.AddB.Hi))
		if op == OpSub && a < b {
			a, b = b, a
		}
		return Problem{Operator: op, Operand1: exact.FromInt(a), Operand2: exact.FromInt(b)}, true

	case OpMul:
		x := int64(intBetween(src, cfg.MulX.Lo, cfg.MulX.Hi))
		y := int64(intBetween(src, cfg.MulY.Lo, cfg.MulY.Hi))
		return Problem{Operator: op, Operand1: exact.FromInt(x), Operand2: exact.FromInt(y)}, true

	case OpDiv:
		quotient := exact.FromInt(int64(intBetween(src, cfg.MulX.Lo, cfg.MulX.Hi)))
		divisor := exact.FromInt(int64(intBetween(src, cfg.MulY.Lo, cfg.MulY.Hi)))
		if divisor.IsZero() {
			return Problem{}, false
		}
		return Problem{Operator: op, Operand1: divisor.Mul(quotient), Operand2: divisor}, true
	}
	panic("problemgen: range candidate for unknown operator " + string(op))
}
