package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hikeplan/trip-planner/internal/core/domain"
)

// UserDataRepository stores user_data rows in a JSONB column.
type UserDataRepository struct {
	db  DBTX
	now func() time.Time
}

func NewUserDataRepository(db DBTX) *UserDataRepository {
	return &UserDataRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *UserDataRepository) Get(ctx context.Context, userID, key string) (json.RawMessage, bool, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM user_data WHERE user_id = $1 AND key = $2`,
		userID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("db error: %w", err)
	}
	return json.RawMessage(value), true, nil
}

func (r *UserDataRepository) Upsert(ctx context.Context, userID, key string, value json.RawMessage) (domain.Row, error) {
	row := domain.Row{UserID: userID, Key: key, Value: value, UpdatedAt: r.now()}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_data (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		userID, key, string(value), row.UpdatedAt)
	if err != nil {
		return domain.Row{}, fmt.Errorf("db error: %w", err)
	}
	return row, nil
}

func (r *UserDataRepository) Delete(ctx context.Context, userID, key string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM user_data WHERE user_id = $1 AND key = $2`, userID, key); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *UserDataRepository) ListByKeys(ctx context.Context, keys []string) ([]domain.Row, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = k
	}
	query := `SELECT user_id, key, value, updated_at FROM user_data WHERE key IN (` +
		strings.Join(placeholders, ", ") + `) ORDER BY user_id, key`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []domain.Row
	for rows.Next() {
		var (
			row   domain.Row
			value []byte
		)
		if err := rows.Scan(&row.UserID, &row.Key, &value, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		row.Value = json.RawMessage(value)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *UserDataRepository) DeleteUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_data WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
