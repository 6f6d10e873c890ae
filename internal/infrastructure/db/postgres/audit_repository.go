package postgres

import (
	"context"
	"fmt"

	"github.com/hikeplan/trip-planner/internal/core/domain"
)

// AuditRepository appends to the field_audit table.
type AuditRepository struct {
	db DBTX
}

func NewAuditRepository(db DBTX) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, ev *domain.AuditEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO field_audit (id, user_id, field, action, actor_id, locked, can_edit, at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`,
		ev.ID, ev.UserID, string(ev.Field), string(ev.Action), ev.ActorID, ev.Locked, ev.CanEdit, ev.At)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
