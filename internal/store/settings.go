package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/triviaz/internal/question"
)

const resetPeriodKey = "reset_period"

// settingsRepo implements SettingsRepo as a key/value table.
type settingsRepo struct {
	db *sql.DB
}

func (r *settingsRepo) ResetPeriod(ctx context.Context) (question.ResetPeriod, error) {
	v, err := r.get(ctx, resetPeriodKey)
	if err != nil {
		return question.ResetNone, err
	}
	p := question.ResetPeriod(v)
	if !p.Valid() {
		return question.ResetNone, fmt.Errorf("stored reset period: %w: %q", question.ErrInvalidResetPeriod, v)
	}
	return p, nil
}

func (r *settingsRepo) SetResetPeriod(ctx context.Context, p question.ResetPeriod) error {
	if !p.Valid() {
		return fmt.Errorf("set reset period: %w: %q", question.ErrInvalidResetPeriod, string(p))
	}
	return r.set(ctx, resetPeriodKey, string(p))
}

// get returns the value for key, or "" if it is not set.
func (r *settingsRepo) get(ctx context.Context, key string) (string, error) {
	t := entsql.Table(settingsTable)
	query, args := entsql.Dialect(dialect.SQLite).
		Select(t.C("value")).
		From(t).
		Where(entsql.EQ(t.C("key"), key)).
		Query()

	var v string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("query setting %s: %w", key, err)
	}
	return v, nil
}

func (r *settingsRepo) set(ctx context.Context, key, value string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(settingsTable).
		Columns("key", "value").
		Values(key, value).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	return nil
}
