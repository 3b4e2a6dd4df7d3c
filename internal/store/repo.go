package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures the start or end of a round.
type SessionEventData struct {
	SessionID    string
	Action       string // ActionStart or ActionEnd
	Mode         string
	Score        int
	Answered     int
	Fallbacks    int
	DurationSecs int
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	SessionID     string
	Operator      string
	Mode          string
	ProblemText   string
	CorrectAnswer string
	LearnerAnswer string
	Correct       bool
	TimeMs        int64
}

// SessionSummaryRecord is one finished round.
type SessionSummaryRecord struct {
	Sequence     int64
	SessionID    string
	Timestamp    time.Time
	Mode         string
	Score        int
	Answered     int
	DurationSecs int
}

// OperatorAccuracyRecord aggregates answers for one operator.
type OperatorAccuracyRecord struct {
	Operator string
	Answered int
	Correct  int
	Accuracy float64
}

// EventRepo provides append and query access to round events.
type EventRepo interface {
	// AppendSessionEvent records the start or end of a round.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records one graded answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessionSummaries returns finished rounds, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// OperatorAccuracy returns per-operator answer totals across all rounds.
	OperatorAccuracy(ctx context.Context) ([]OperatorAccuracyRecord, error)

	// Reset deletes every event and rewinds the sequence.
	Reset(ctx context.Context) error
}
