package problemgen

import (
	"io"
	"log/slog"

	"github.com/abhisek/arithtrainer/internal/exact"
)

// Generator produces problems for one Config. It is not safe for concurrent
// use because it owns its Source; create one per goroutine.
type Generator struct {
	cfg    *Config
	src    Source
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for rejections (debug) and fallbacks
// (warn). The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a Generator. cfg is read, never written.
func New(cfg *Config, src Source, opts ...Option) *Generator {
	g := &Generator{
		cfg:    cfg,
		src:    src,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// fallbackProblem is emitted when the attempt budget runs out.
var fallbackProblem = Problem{Operator: OpAdd, Operand1: exact.FromInt(1), Operand2: exact.FromInt(1)}

// Generate selects an operator and returns the first candidate that passes
// every validator. It returns ErrNoOperator when no operator is enabled.
//
// Only a candidate accepted by the validators, or the fixed 1 + 1 fallback
// after the budget is spent, is ever returned. Generate always terminates
// within MaxAttempts outer iterations, each bounded by DivisionAttempts.
func (g *Generator) Generate() (Outcome, error) {
	op, err := SelectOperator(g.cfg, g.src)
	if err != nil {
		return Outcome{}, err
	}

	budget := g.cfg.maxAttempts()
	for attempt := 1; attempt <= budget; attempt++ {
		c, ok := g.candidate(op)
		if !ok {
			continue
		}
		if verr := g.validate(c); verr != nil {
			g.logger.Debug("candidate rejected",
				"problem", c.Problem.String(),
				"result", c.Result.String(),
				"validator", verr.Validator,
				"reason", verr.Message,
				"attempt", attempt)
			continue
		}
		problemsGenerated.WithLabelValues(string(op), string(g.cfg.Mode)).Inc()
		generationAttempts.Observe(float64(attempt))
		return Outcome{Problem: c.Problem, Result: c.Result, Attempts: attempt}, nil
	}

	g.logger.Warn("generation budget exhausted, using fallback problem",
		"operator", string(op),
		"mode", string(g.cfg.Mode),
		"attempts", budget)
	generationFallbacks.WithLabelValues(string(op), string(g.cfg.Mode)).Inc()
	problemsGenerated.WithLabelValues(string(fallbackProblem.Operator), string(g.cfg.Mode)).Inc()
	generationAttempts.Observe(float64(budget))
	return Outcome{
		Problem:  fallbackProblem,
		Result:   mustEvaluate(fallbackProblem),
		Attempts: budget,
		Fallback: true,
	}, nil
}

// candidate builds one unvalidated candidate for op. It reports false when
// this iteration produced nothing usable.
func (g *Generator) candidate(op Operator) (Candidate, bool) {
	if g.cfg.Mode == ModeSigFigs {
		if op == OpDiv {
			return g.sigFigDivision()
		}
		p := sigFigCandidate(g.cfg, op, g.src)
		return Candidate{Problem: p, Result: mustEvaluate(p)}, true
	}

	p, ok := rangeCandidate(g.cfg, op, g.src)
	if !ok {
		return Candidate{}, false
	}
	return Candidate{Problem: p, Result: mustEvaluate(p)}, true
}

// sigFigDivision runs the division builder and, if its budget runs out,
// offers the integer-exact pair instead.
func (g *Generator) sigFigDivision() (Candidate, bool) {
	b := &divisionBuilder{cfg: g.cfg, src: g.src, accept: g.validate}
	if c, ok := b.build(g.cfg.divisionAttempts()); ok {
		return c, true
	}
	g.logger.Debug("division builder exhausted, trying integer pair")
	p := integerDivision(g.src)
	return Candidate{Problem: p, Result: mustEvaluate(p)}, true
}

// validate runs the configured validators in order.
func (g *Generator) validate(c Candidate) *ValidationError {
	for _, v := range g.cfg.Validators {
		if verr := v.Validate(c, g.cfg); verr != nil {
			return verr
		}
	}
	return nil
}
