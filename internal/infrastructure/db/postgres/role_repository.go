package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hikeplan/trip-planner/internal/core/domain"
)

type RoleRepository struct {
	db DBTX
}

func NewRoleRepository(db DBTX) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Find(ctx context.Context, userID string) (*domain.MemberRole, error) {
	role := &domain.MemberRole{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, is_admin, notes FROM user_roles WHERE user_id = $1`, userID).
		Scan(&role.UserID, &role.IsAdmin, &role.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return role, nil
}

func (r *RoleRepository) Upsert(ctx context.Context, role domain.MemberRole) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_roles (user_id, is_admin, notes, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id) DO UPDATE SET is_admin = EXCLUDED.is_admin, notes = EXCLUDED.notes, updated_at = now()`,
		role.UserID, role.IsAdmin, role.Notes)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *RoleRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
