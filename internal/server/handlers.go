package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/arithtrainer/internal/exact"
	"github.com/abhisek/arithtrainer/internal/problemgen"
)

// ConfigSource returns the generation config currently in effect. The
// returned config is shared and must not be modified.
type ConfigSource func() *problemgen.Config

// Handlers serves the problem and answer endpoints.
type Handlers struct {
	config  ConfigSource
	version string
	logger  *slog.Logger
}

// NewHandlers creates handlers reading the config from src.
func NewHandlers(src ConfigSource, version string, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{config: src, version: version, logger: logger}
}

// HandleHealth handles GET /v1/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Mode:    string(h.config().Mode),
	})
}

// HandleProblems handles POST /v1/problems.
//
// Every request gets its own Generator and Source, so concurrent requests
// never share random state. The config snapshot is taken once per request;
// a reload in the middle of a batch does not affect it.
func (h *Handlers) HandleProblems(c *gin.Context) {
	logger := h.logger.With("handler", "HandleProblems")

	var req ProblemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid request body",
			Code:    codeInvalidRequest,
			Details: err.Error(),
		})
		return
	}

	cfg := h.config()
	src := problemgen.NewRandomSource()
	if req.Seed != nil {
		src = problemgen.NewSource(*req.Seed)
	}
	gen := problemgen.New(cfg, src, problemgen.WithLogger(logger))

	resp := ProblemsResponse{Mode: string(cfg.Mode), Problems: make([]ProblemResponse, 0, req.Count)}
	for range req.Count {
		out, err := gen.Generate()
		if errors.Is(err, problemgen.ErrNoOperator) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error: "no operator is enabled",
				Code:  codeNoOperator,
			})
			return
		}
		if err != nil {
			logger.Error("generation failed", "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "generation failed"})
			return
		}
		resp.Problems = append(resp.Problems, ProblemResponse{
			Operator: string(out.Problem.Operator),
			Operand1: out.Problem.Operand1.String(),
			Operand2: out.Problem.Operand2.String(),
			Text:     out.Problem.String(),
			Answer:   out.Result.String(),
			Fallback: out.Fallback,
		})
	}

	logger.Debug("problems generated", "count", req.Count, "seeded", req.Seed != nil)
	c.JSON(http.StatusOK, resp)
}

// HandleAnswers handles POST /v1/answers.
//
// A malformed operand or operator, or a pair with no exact result
// (division by zero, non-terminating quotient), is 422. A malformed answer
// is not an error: it is reported as parsed_ok=false.
func (h *Handlers) HandleAnswers(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid request body",
			Code:    codeInvalidRequest,
			Details: err.Error(),
		})
		return
	}

	p, err := parseProblem(req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "invalid problem",
			Code:    codeInvalidProblem,
			Details: err.Error(),
		})
		return
	}

	check, err := problemgen.CheckAnswer(p, req.Answer)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "problem has no exact result",
			Code:    codeInvalidProblem,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, AnswerResponse{
		ParsedOK:    check.ParsedOK,
		Correct:     check.Correct,
		ExactResult: check.ExactResult(),
	})
}

func parseProblem(req AnswerRequest) (problemgen.Problem, error) {
	op, err := problemgen.ParseOperator(req.Operator)
	if err != nil {
		return problemgen.Problem{}, err
	}
	a, err := exact.Parse(req.Operand1)
	if err != nil {
		return problemgen.Problem{}, err
	}
	b, err := exact.Parse(req.Operand2)
	if err != nil {
		return problemgen.Problem{}, err
	}
	return problemgen.Problem{Operator: op, Operand1: a, Operand2: b}, nil
}
