package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hikeplan/trip-planner/internal/api/metrics"
	"github.com/hikeplan/trip-planner/internal/core/domain"
	"github.com/hikeplan/trip-planner/internal/core/ports"
)

type overrideService struct {
	store ports.RowStore
	audit ports.AuditSink
	log   zerolog.Logger
}

// NewOverrideService returns the admin override controller.
func NewOverrideService(store ports.RowStore, audit ports.AuditSink, log zerolog.Logger) ports.OverrideService {
	return &overrideService{
		store: store,
		audit: audit,
		log:   log.With().Str("component", "override_service").Logger(),
	}
}

// SetOverride upserts the can_edit row of (userID, field). It touches neither
// the lock nor the value, and never another field.
func (s *overrideService) SetOverride(ctx context.Context, actor domain.Actor, userID string, field domain.FieldName, canEdit bool) error {
	if _, err := domain.ParseFieldName(string(field)); err != nil {
		return err
	}
	if err := requireAdminOver(actor, userID); err != nil {
		metrics.OverridesTotal.WithLabelValues(string(field), metrics.ResultDenied).Inc()
		return fmt.Errorf("override %s: %w", field, err)
	}

	if _, err := s.store.Upsert(ctx, userID, field.CanEditKey(), domain.EncodeFlag(canEdit)); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("upsert").Inc()
		metrics.OverridesTotal.WithLabelValues(string(field), metrics.ResultStoreError).Inc()
		return fmt.Errorf("override %s: %w", field, domain.NewStoreError("upsert", err))
	}

	metrics.OverridesTotal.WithLabelValues(string(field), metrics.ResultAccepted).Inc()

	emitAudit(s.audit, domain.AuditEvent{
		UserID:  userID,
		Field:   field,
		Action:  domain.AuditOverride,
		ActorID: actor.UserID,
		CanEdit: canEdit,
	})

	s.log.Info().
		Str("admin_id", actor.UserID).
		Str("user_id", userID).
		Str("field", string(field)).
		Bool("can_edit", canEdit).
		Msg("override set")

	return nil
}
