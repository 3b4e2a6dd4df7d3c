package problemgen

const (
	// DefaultMaxAttempts is the outer generation loop budget.
	DefaultMaxAttempts = 800

	// DefaultDivisionAttempts is the inner budget for building a sig-figs
	// division problem within one outer iteration.
	DefaultDivisionAttempts = 400
)

// Config is an immutable snapshot of everything that shapes generation.
// Callers build it once from validated settings and share it by pointer;
// the generator never mutates it. No bounds checking happens here.
type Config struct {
	Mode Mode

	// AddA and AddB bound the operands of + and - in range mode.
	AddA RangeSpec
	AddB RangeSpec

	// MulX and MulY bound the operands of * in range mode. For / the
	// divisor comes from MulY and the integer quotient from MulX.
	MulX RangeSpec
	MulY RangeSpec

	// SigA and SigB are the operand role specs for sig-figs mode.
	SigA SigFigSpec
	SigB SigFigSpec

	// Weights holds the enable flag and weight per operator. A missing
	// entry means the operator is disabled.
	Weights map[Operator]OperatorWeight

	// Caps holds the maximum number of significant figures of the exact
	// result per operator.
	Caps map[Operator]int

	// Validators is the ordered list of checks every candidate must pass.
	// They execute in order; the first failure rejects the candidate.
	Validators []Validator

	// MaxAttempts is the outer loop budget. Zero means DefaultMaxAttempts.
	MaxAttempts int

	// DivisionAttempts is the sig-figs division budget per outer iteration.
	// Zero means DefaultDivisionAttempts.
	DivisionAttempts int
}

// DefaultConfig returns the stock settings: range mode, every operator
// enabled with weight 3, and the solution cap validator.
func DefaultConfig() Config {
	return Config{
		Mode: ModeRange,
		AddA: RangeSpec{Lo: 2, Hi: 100},
		AddB: RangeSpec{Lo: 2, Hi: 100},
		MulX: RangeSpec{Lo: 2, Hi: 12},
		MulY: RangeSpec{Lo: 2, Hi: 100},
		SigA: SigFigSpec{SigMin: 2, SigMax: 3, ExpMin: -2, ExpMax: 3},
		SigB: SigFigSpec{SigMin: 2, SigMax: 3, ExpMin: -2, ExpMax: 3},
		Weights: map[Operator]OperatorWeight{
			OpAdd: {Enabled: true, Weight: 3},
			OpSub: {Enabled: true, Weight: 3},
			OpMul: {Enabled: true, Weight: 3},
			OpDiv: {Enabled: true, Weight: 3},
		},
		Caps: map[Operator]int{
			OpAdd: 5,
			OpSub: 5,
			OpMul: 4,
			OpDiv: 4,
		},
		Validators: []Validator{
			&SolutionCapValidator{},
		},
		MaxAttempts:      DefaultMaxAttempts,
		DivisionAttempts: DefaultDivisionAttempts,
	}
}

// Weight returns the selection setting for op.
func (c *Config) Weight(op Operator) OperatorWeight {
	return c.Weights[op]
}

// Cap returns the result significant-figure cap for op.
func (c *Config) Cap(op Operator) int {
	return c.Caps[op]
}

// RoleSpec returns the sig-figs spec for a role.
func (c *Config) RoleSpec(r Role) SigFigSpec {
	if r == RoleB {
		return c.SigB
	}
	return c.SigA
}

func (c *Config) maxAttempts() int {
	if c.MaxAttempts > 0 {
		return c.MaxAttempts
	}
	return DefaultMaxAttempts
}

func (c *Config) divisionAttempts() int {
	if c.DivisionAttempts > 0 {
		return c.DivisionAttempts
	}
	return DefaultDivisionAttempts
}
