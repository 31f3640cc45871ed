package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/triviaz/internal/question"
)

// questionRepo implements QuestionRepo on SQLite.
type questionRepo struct {
	db  *sql.DB
	now func() time.Time
}

var questionFields = []string{
	"id", "category", "source", "text", "type", "options",
	"answer", "explanation", "reference", "difficulty",
}

func (r *questionRepo) FetchBatch(ctx context.Context, req BatchRequest) ([]question.Question, error) {
	if req.Limit <= 0 {
		return nil, nil
	}

	t := entsql.Table(questionsTable)
	cols := make([]string, len(questionFields))
	for i, f := range questionFields {
		cols[i] = t.C(f)
	}
	sel := entsql.Dialect(dialect.SQLite).Select(cols...).From(t)

	var preds []*entsql.Predicate
	if req.Difficulty != question.DifficultyMixed {
		preds = append(preds, entsql.EqualFold(t.C("difficulty"), string(req.Difficulty)))
	}
	if req.ExcludeUsed {
		if used := usedSelector(req.ResetPeriod, r.now()); used != nil {
			preds = append(preds, entsql.NotIn(t.C("id"), used))
		}
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderExpr(entsql.Expr("RANDOM()")).Limit(req.Limit)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query batch: %w", err)
	}
	defer rows.Close()

	var out []question.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch: %w", err)
	}
	return out, nil
}

// usedSelector selects the IDs excluded under period at now. It returns
// nil when period excludes nothing.
func usedSelector(period question.ResetPeriod, now time.Time) *entsql.Selector {
	if period == question.ResetNone {
		return nil
	}
	u := entsql.Table(usedQuestionsTable)
	sel := entsql.Dialect(dialect.SQLite).Select(u.C("question_id")).From(u)
	if d, ok := period.Duration(); ok {
		sel.Where(entsql.GTE(u.C("used_at"), now.Add(-d).Unix()))
	}
	return sel
}

func (r *questionRepo) Save(ctx context.Context, qs ...question.Question) error {
	if len(qs) == 0 {
		return nil
	}

	ins := entsql.Dialect(dialect.SQLite).Insert(questionsTable).Columns(questionFields...)
	for _, q := range qs {
		if q.ID == "" {
			return fmt.Errorf("save question %q: empty id", q.Text)
		}
		opts, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("marshal options for %s: %w", q.ID, err)
		}
		qtype := q.Type
		if qtype == "" {
			qtype = question.TypeMultipleChoice
		}
		ins.Values(
			q.ID, q.Category, q.Source, q.Text, string(qtype), string(opts),
			q.Answer, q.Explanation, q.Reference, string(q.Difficulty),
		)
	}
	ins.OnConflict(
		entsql.ConflictColumns("id"),
		entsql.ResolveWithNewValues(),
	)

	query, args := ins.Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save questions: %w", err)
	}
	return nil
}

func (r *questionRepo) Count(ctx context.Context, difficulty question.Difficulty) (int, error) {
	t := entsql.Table(questionsTable)
	sel := entsql.Dialect(dialect.SQLite).Select(entsql.Count("*")).From(t)
	if difficulty != question.DifficultyMixed {
		sel.Where(entsql.EqualFold(t.C("difficulty"), string(difficulty)))
	}

	query, args := sel.Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// scanQuestion reads one row selected with questionFields.
func scanQuestion(rows *sql.Rows) (question.Question, error) {
	var (
		q          question.Question
		qtype      string
		options    sql.NullString
		difficulty string
	)
	err := rows.Scan(
		&q.ID, &q.Category, &q.Source, &q.Text, &qtype, &options,
		&q.Answer, &q.Explanation, &q.Reference, &difficulty,
	)
	if err != nil {
		return question.Question{}, fmt.Errorf("scan question: %w", err)
	}
	q.Type = question.ParseType(qtype)
	q.Difficulty = question.Difficulty(question.NormalizeText(difficulty))

	// Malformed option lists are treated as empty; the session pads them.
	if options.Valid && options.String != "" {
		if err := json.Unmarshal([]byte(options.String), &q.Options); err != nil {
			q.Options = nil
		}
	}
	return q, nil
}
