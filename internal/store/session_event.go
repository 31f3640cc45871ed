package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on SQLite.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

var sessionEventFields = []string{
	"id", "sequence", "timestamp", "session_id", "action", "difficulty",
	"questions_total", "questions_answered", "correct_answers", "percentage",
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	if data.SessionID == "" || data.Action == "" {
		return fmt.Errorf("append session event: session id and action are required")
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(sessionEventsTable).
		Columns(sessionEventFields[1:]...).
		Values(
			seqNum,
			r.now().Unix(),
			data.SessionID,
			data.Action,
			data.Difficulty,
			data.QuestionsTotal,
			data.QuestionsAnswered,
			data.CorrectAnswers,
			data.Percentage,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	t := entsql.Table(sessionEventsTable)
	cols := make([]string, len(sessionEventFields))
	for i, f := range sessionEventFields {
		cols[i] = t.C(f)
	}
	sel := entsql.Dialect(dialect.SQLite).Select(cols...).From(t)

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT(t.C("sequence"), opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT(t.C("sequence"), opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(t.C("timestamp"), opts.From.Unix()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(t.C("timestamp"), opts.To.Unix()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Desc(t.C("sequence")))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEvent
	for rows.Next() {
		var (
			e  SessionEvent
			ts int64
		)
		err := rows.Scan(
			&e.ID, &e.Sequence, &ts, &e.SessionID, &e.Action, &e.Difficulty,
			&e.QuestionsTotal, &e.QuestionsAnswered, &e.CorrectAnswers, &e.Percentage,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		e.Timestamp = time.Unix(ts, 0).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session events: %w", err)
	}
	return out, nil
}
