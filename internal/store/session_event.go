package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	sessionEventsTable = "session_events"
	answerEventsTable  = "answer_events"
)

// eventRepo implements EventRepo with ent's SQL builder and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(sessionEventsTable).
		Columns("sequence", "timestamp", "session_id", "action", "mode",
			"score", "answered", "fallbacks", "duration_secs").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.Action, data.Mode,
			data.Score, data.Answered, data.Fallbacks, data.DurationSecs).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(answerEventsTable).
		Columns("sequence", "timestamp", "session_id", "operator", "mode",
			"problem_text", "correct_answer", "learner_answer", "correct", "time_ms").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.Operator, data.Mode,
			data.ProblemText, data.CorrectAnswer, data.LearnerAnswer, data.Correct, data.TimeMs).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	t := entsql.Table(sessionEventsTable)
	preds := []*entsql.Predicate{entsql.EQ(t.C("action"), ActionEnd)}
	if opts.After > 0 {
		preds = append(preds, entsql.GT(t.C("sequence"), opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT(t.C("sequence"), opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(t.C("timestamp"), opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(t.C("timestamp"), opts.To.UnixMilli()))
	}

	sel := builder().Select(
		t.C("sequence"), t.C("session_id"), t.C("timestamp"), t.C("mode"),
		t.C("score"), t.C("answered"), t.C("duration_secs"),
	).
		From(t).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc(t.C("sequence")))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var (
			rec SessionSummaryRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &rec.SessionID, &ts, &rec.Mode,
			&rec.Score, &rec.Answered, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	return records, nil
}

func (r *eventRepo) OperatorAccuracy(ctx context.Context) ([]OperatorAccuracyRecord, error) {
	t := entsql.Table(answerEventsTable)
	query, args := builder().Select(
		t.C("operator"),
		entsql.As(entsql.Count("*"), "answered"),
		entsql.As(entsql.Sum(t.C("correct")), "correct"),
	).
		From(t).
		GroupBy(t.C("operator")).
		OrderBy(t.C("operator")).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query operator accuracy: %w", err)
	}
	defer rows.Close()

	var records []OperatorAccuracyRecord
	for rows.Next() {
		var rec OperatorAccuracyRecord
		if err := rows.Scan(&rec.Operator, &rec.Answered, &rec.Correct); err != nil {
			return nil, fmt.Errorf("scan operator accuracy: %w", err)
		}
		if rec.Answered > 0 {
			rec.Accuracy = float64(rec.Correct) / float64(rec.Answered)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query operator accuracy: %w", err)
	}
	return records, nil
}

func (r *eventRepo) Reset(ctx context.Context) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	for _, table := range []string{answerEventsTable, sessionEventsTable} {
		query, args := builder().Delete(table).Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := r.seq.reset(ctx, tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return nil
}
