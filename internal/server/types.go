package server

// HealthResponse is returned by GET /v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Mode    string `json:"mode"`
}

// ProblemsRequest is the body of POST /v1/problems.
type ProblemsRequest struct {
	// Count is the number of problems to generate.
	Count int `json:"count" binding:"required,min=1,max=50"`

	// Seed makes the batch reproducible. When absent a random seed is used.
	Seed *uint64 `json:"seed,omitempty"`
}

// ProblemResponse is one generated problem.
type ProblemResponse struct {
	Operator string `json:"operator"`
	Operand1 string `json:"operand1"`
	Operand2 string `json:"operand2"`
	Text     string `json:"text"`
	Answer   string `json:"answer"`
	Fallback bool   `json:"fallback,omitempty"`
}

// ProblemsResponse is returned by POST /v1/problems.
type ProblemsResponse struct {
	Mode     string            `json:"mode"`
	Problems []ProblemResponse `json:"problems"`
}

// AnswerRequest is the body of POST /v1/answers.
type AnswerRequest struct {
	Operator string `json:"operator" binding:"required"`
	Operand1 string `json:"operand1" binding:"required"`
	Operand2 string `json:"operand2" binding:"required"`
	Answer   string `json:"answer"`
}

// AnswerResponse is returned by POST /v1/answers.
type AnswerResponse struct {
	ParsedOK    bool   `json:"parsed_ok"`
	Correct     bool   `json:"correct"`
	ExactResult string `json:"exact_result"`
}

// ErrorResponse is returned for all error cases.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is the error code (optional).
	Code string `json:"code,omitempty"`

	// Details provides additional error context (optional).
	Details string `json:"details,omitempty"`
}

const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeInvalidProblem = "INVALID_PROBLEM"
	codeNoOperator     = "NO_OPERATOR"
	codeRateLimited    = "RATE_LIMITED"
)
