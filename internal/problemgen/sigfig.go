package problemgen

import (
	"math/big"

	"github.com/abhisek/arithtrainer/internal/exact"
)

// SampleSigFigValue returns a positive value with exactly sig significant
// figures whose leading digit sits at 10^k, where sig and k are drawn
// uniformly from the spec's bounds.
//
// The mantissa never ends in 0 (unless it is a single digit), otherwise
// normalization would drop the trailing zero and the value would carry
// fewer significant figures than requested.
func SampleSigFigValue(spec SigFigSpec, src Source) exact.Value {
	sigLo, sigHi := spec.sigBounds()
	expLo, expHi := spec.expBounds()
	sig := intBetween(src, sigLo, sigHi)
	if sig < 1 {
		sig = 1
	}
	k := intBetween(src, expLo, expHi)
	return exact.FromScaled(sampleMantissa(sig, src), k-(sig-1))
}

// sampleMantissa draws a sig-digit integer uniformly among those not
// divisible by 10. Building it digit by digit gives the same distribution
// as rejecting multiples of 10 without an unbounded loop.
func sampleMantissa(sig int, src Source) *big.Int {
	m := big.NewInt(int64(1 + src.Intn(9)))
	if sig == 1 {
		return m
	}
	ten := big.NewInt(10)
	for i := 1; i < sig-1; i++ {
		m.Mul(m, ten)
		m.Add(m, big.NewInt(int64(src.Intn(10))))
	}
	m.Mul(m, ten)
	m.Add(m, big.NewInt(int64(1+src.Intn(9))))
	return m
}

// sampleQuotient returns a nonzero terminating decimal with at most one
// decimal place. Half the time it is a nonzero integer in [-99, 99]
// (0 becomes 1). Otherwise k is drawn from [-990, 990] and a multiple of 10
// is bumped to k+1, so the value k/10 has exactly one decimal place and lies
// in [-98.9, 99.1] with magnitude at least 0.1. The bump makes those k+1
// values twice as likely as the rest.
func sampleQuotient(src Source) exact.Value {
	if coinFlip(src) {
		q := intBetween(src, -99, 99)
		if q == 0 {
			q = 1
		}
		return exact.FromInt(int64(q))
	}
	k := intBetween(src, -990, 990)
	if k%10 == 0 {
		k++
	}
	return exact.FromScaled(big.NewInt(int64(k)), -1)
}

// assignRoles returns the role specs for the left and right operands,
// picking the mapping at random.
func assignRoles(cfg *Config, src Source) (left, right SigFigSpec) {
	a, b := cfg.RoleSpec(RoleA), cfg.RoleSpec(RoleB)
	if coinFlip(src) {
		return a, b
	}
	return b, a
}

// sigFigCandidate draws a + - * operand pair, one value per role.
func sigFigCandidate(cfg *Config, op Operator, src Source) Problem {
	left, right := assignRoles(cfg, src)
	a := SampleSigFigValue(left, src)
	b := SampleSigFigValue(right, src)
	if op == OpSub && a.LessThan(b) {
		a, b = b, a
	}
	return Problem{Operator: op, Operand1: a, Operand2: b}
}

// DivisionExit names how one attempt at building a sig-figs division
// problem ended.
type DivisionExit string

const (
	DivisionAccepted DivisionExit = "accepted"

	// DivisionRoleMismatch covers a divisor outside its role's digit range
	// (or zero) and a dividend whose digit count misses the target.
	DivisionRoleMismatch DivisionExit = "role-mismatch"

	DivisionCapRejected DivisionExit = "cap-rejected"

	// DivisionBudgetExhausted is recorded once when every attempt failed.
	DivisionBudgetExhausted DivisionExit = "budget-exhausted"
)

// divisionBuilder constructs sig-figs division problems whose operands match
// the role specs and whose quotient is exact with at most one decimal place.
// The dividend is shaped by rejection: it is quotient × divisor, unrounded,
// and is kept only if its digit count equals the target drawn for its role.
type divisionBuilder struct {
	cfg    *Config
	src    Source
	accept func(Candidate) *ValidationError
}

// attempt runs one pass of the state machine: assign roles, draw the
// dividend's target digit count, sample the divisor, sample the quotient,
// form the dividend, evaluate, filter.
func (b *divisionBuilder) attempt() (Candidate, DivisionExit) {
	left, right := assignRoles(b.cfg, b.src)
	sigLo, sigHi := left.sigBounds()
	target := intBetween(b.src, sigLo, sigHi)

	divisor := SampleSigFigValue(right, b.src)
	if divisor.IsZero() || !right.Allows(divisor.SigFigs()) {
		return Candidate{}, DivisionRoleMismatch
	}

	quotient := sampleQuotient(b.src)
	dividend := quotient.Mul(divisor)
	if dividend.SigFigs() != target {
		return Candidate{}, DivisionRoleMismatch
	}

	p := Problem{Operator: OpDiv, Operand1: dividend, Operand2: divisor}
	c := Candidate{Problem: p, Result: mustEvaluate(p)}
	if !c.Result.Equal(quotient) {
		panic("problemgen: division of " + p.String() + " does not reproduce quotient " + quotient.String())
	}
	if verr := b.accept(c); verr != nil {
		return Candidate{}, DivisionCapRejected
	}
	return c, DivisionAccepted
}

// build runs up to budget attempts and returns the first accepted candidate.
func (b *divisionBuilder) build(budget int) (Candidate, bool) {
	for i := 0; i < budget; i++ {
		c, exit := b.attempt()
		divisionAttempts.WithLabelValues(string(exit)).Inc()
		if exit == DivisionAccepted {
			return c, true
		}
	}
	divisionAttempts.WithLabelValues(string(DivisionBudgetExhausted)).Inc()
	return Candidate{}, false
}

// integerDivision is the last-resort division pair: divisor in [2, 99],
// quotient in [1, 99]. The caller still runs it through the validators.
func integerDivision(src Source) Problem {
	divisor := exact.FromInt(int64(intBetween(src, 2, 99)))
	quotient := exact.FromInt(int64(intBetween(src, 1, 99)))
	return Problem{Operator: OpDiv, Operand1: divisor.Mul(quotient), Operand2: divisor}
}
