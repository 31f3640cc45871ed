package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/triviaz/internal/question"
)

// usedRepo implements UsedRepo on SQLite.
type usedRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *usedRepo) MarkUsed(ctx context.Context, ids []string) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	ts := r.now().Unix()
	ins := entsql.Dialect(dialect.SQLite).Insert(usedQuestionsTable).Columns("question_id", "used_at")
	for _, id := range ids {
		ins.Values(id, ts)
	}
	ins.OnConflict(
		entsql.ConflictColumns("question_id"),
		entsql.ResolveWithNewValues(),
	)
	query, args := ins.Query()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mark used: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark used: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mark used: %w", err)
	}
	return nil
}

func (r *usedRepo) LastUsed(ctx context.Context, id string) (time.Time, error) {
	u := entsql.Table(usedQuestionsTable)
	query, args := entsql.Dialect(dialect.SQLite).
		Select(u.C("used_at")).
		From(u).
		Where(entsql.EQ(u.C("question_id"), id)).
		Query()

	var ts int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&ts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("query last used: %w", err)
	}
	return time.Unix(ts, 0).UTC(), nil
}

func (r *usedRepo) Count(ctx context.Context, period question.ResetPeriod) (int, error) {
	if period == question.ResetNone {
		return 0, nil
	}
	u := entsql.Table(usedQuestionsTable)
	sel := entsql.Dialect(dialect.SQLite).Select(entsql.Count("*")).From(u)
	if d, ok := period.Duration(); ok {
		sel.Where(entsql.GTE(u.C("used_at"), r.now().Add(-d).Unix()))
	}

	query, args := sel.Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count used: %w", err)
	}
	return n, nil
}

func (r *usedRepo) Clear(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).Delete(usedQuestionsTable).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear used: %w", err)
	}
	return nil
}

// uniqueIDs drops empty and repeated IDs, keeping first-seen order.
// SQLite rejects an upsert that touches the same row twice.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
