package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hikeplan/trip-planner/internal/api/metrics"
	"github.com/hikeplan/trip-planner/internal/core/domain"
	"github.com/hikeplan/trip-planner/internal/core/ports"
)

// FieldService implements the owner side of the lock protocol on top of a
// key/value store.
type FieldService struct {
	store    ports.KeyValueStore
	audit    ports.AuditSink
	defaults domain.Defaults
	logger   zerolog.Logger
}

func NewFieldService(store ports.KeyValueStore, audit ports.AuditSink, defaults domain.Defaults, logger zerolog.Logger) *FieldService {
	return &FieldService{
		store:    store,
		audit:    audit,
		defaults: defaults,
		logger:   logger.With().Str("component", "field_service").Logger(),
	}
}

// ProjectField reads the three rows of field and projects them. Missing
// rows are not errors.
func (s *FieldService) ProjectField(ctx context.Context, userID string, field domain.FieldName) (domain.Projection, error) {
	if _, err := domain.ParseFieldName(string(field)); err != nil {
		return domain.Projection{}, err
	}

	raw, err := loadRaw(ctx, s.store, userID, field)
	if err != nil {
		return domain.Projection{}, fmt.Errorf("project %s: %w", field, err)
	}
	return domain.Project(field, raw, s.defaults), nil
}

// WriteField applies an owner write. The first successful write seals the
// field; later writes need an admin override.
func (s *FieldService) WriteField(ctx context.Context, actor domain.Actor, userID string, field domain.FieldName, value any) (domain.Projection, error) {
	if _, err := domain.ParseFieldName(string(field)); err != nil {
		return domain.Projection{}, err
	}
	if !actor.Owns(userID) {
		metrics.FieldWritesTotal.WithLabelValues(string(field), metrics.ResultDenied).Inc()
		return domain.Projection{}, fmt.Errorf("write %s: only the owner may write: %w", field, domain.ErrPermissionDenied)
	}

	encoded, err := domain.EncodeValue(field, value)
	if err != nil {
		metrics.FieldWritesTotal.WithLabelValues(string(field), metrics.ResultInvalid).Inc()
		return domain.Projection{}, fmt.Errorf("write %s: %w", field, err)
	}

	raw, err := loadRaw(ctx, s.store, userID, field)
	if err != nil {
		metrics.FieldWritesTotal.WithLabelValues(string(field), metrics.ResultStoreError).Inc()
		return domain.Projection{}, fmt.Errorf("write %s: %w", field, err)
	}
	current := domain.Project(field, raw, s.defaults)

	decision, err := domain.Decide(current.State())
	if err != nil {
		metrics.FieldWritesTotal.WithLabelValues(string(field), metrics.ResultLocked).Inc()
		s.logger.Debug().Str("user_id", userID).Str("field", string(field)).Msg("write rejected, field sealed")
		return domain.Projection{}, fmt.Errorf("write %s: %w", field, err)
	}

	if _, err := s.store.Upsert(ctx, userID, field.ValueKey(), encoded); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("upsert").Inc()
		metrics.FieldWritesTotal.WithLabelValues(string(field), metrics.ResultStoreError).Inc()
		return domain.Projection{}, fmt.Errorf("write %s: %w", field, domain.NewStoreError("upsert", err))
	}

	canEdit := current.CanEdit
	resetCanEdit := decision.ResetCanEdit && current.CanEdit
	if resetCanEdit {
		if _, err := s.store.Upsert(ctx, userID, field.CanEditKey(), domain.EncodeFlag(false)); err != nil {
			metrics.StoreErrorsTotal.WithLabelValues("upsert").Inc()
			metrics.FieldWritesTotal.WithLabelValues(string(field), metrics.ResultStoreError).Inc()
			s.restoreRow(ctx, userID, field.ValueKey(), raw.Value)
			return domain.Projection{}, fmt.Errorf("write %s: clear can_edit: %w", field, domain.NewStoreError("upsert", err))
		}
		canEdit = false
	}

	if decision.SetLock {
		if _, err := s.store.Upsert(ctx, userID, field.LockedKey(), domain.EncodeFlag(true)); err != nil {
			metrics.StoreErrorsTotal.WithLabelValues("upsert").Inc()
			metrics.FieldWritesTotal.WithLabelValues(string(field), metrics.ResultStoreError).Inc()
			s.restoreRow(ctx, userID, field.ValueKey(), raw.Value)
			if resetCanEdit {
				s.restoreRow(ctx, userID, field.CanEditKey(), raw.CanEdit)
			}
			return domain.Projection{}, fmt.Errorf("write %s: lock: %w", field, domain.NewStoreError("upsert", err))
		}
	}

	metrics.FieldWritesTotal.WithLabelValues(string(field), metrics.ResultAccepted).Inc()

	next := domain.Project(field, domain.RawField{
		Value:   encoded,
		Locked:  domain.EncodeFlag(true),
		CanEdit: domain.EncodeFlag(canEdit),
	}, s.defaults)

	emitAudit(s.audit, domain.AuditEvent{
		UserID:  userID,
		Field:   field,
		Action:  domain.AuditWrite,
		ActorID: actor.UserID,
		Locked:  next.Locked,
		CanEdit: next.CanEdit,
	})

	s.logger.Info().
		Str("user_id", userID).
		Str("field", string(field)).
		Str("state", string(next.State())).
		Msg("field written")

	return next, nil
}

// restoreRow puts the pre-write content of key back after a failed write
// so the field is not left writable with a fresh value. A nil previous
// means the row did not exist.
func (s *FieldService) restoreRow(ctx context.Context, userID, key string, previous json.RawMessage) {
	var err error
	if previous == nil {
		err = s.store.Delete(ctx, userID, key)
	} else {
		_, err = s.store.Upsert(ctx, userID, key, previous)
	}
	if err != nil {
		s.logger.Error().Err(err).
			Str("user_id", userID).
			Str("key", key).
			Msg("failed to restore row after partial write")
	}
}

// Watch re-derives the projection on every change notification for the
// field. Notifications are treated as signals, never as deltas.
func (s *FieldService) Watch(ctx context.Context, userID string, field domain.FieldName) (<-chan domain.Projection, error) {
	if _, err := domain.ParseFieldName(string(field)); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)

	// Subscribe before the first read so no change falls between the two.
	events, err := s.store.Subscribe(ctx, domain.ChangeFilter{UserID: userID})
	if err != nil {
		cancel()
		metrics.StoreErrorsTotal.WithLabelValues("subscribe").Inc()
		return nil, fmt.Errorf("watch %s: %w", field, domain.NewStoreError("subscribe", err))
	}

	initial, err := s.ProjectField(ctx, userID, field)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan domain.Projection, 1)
	out <- initial
	metrics.WatchersActive.Inc()

	go func() {
		defer metrics.WatchersActive.Dec()
		defer close(out)
		defer cancel()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if !field.Owns(ev.Row.Key) {
					continue
				}
				p, err := s.ProjectField(ctx, userID, field)
				if err != nil {
					s.logger.Warn().Err(err).Str("user_id", userID).Str("field", string(field)).Msg("watch refresh failed")
					continue
				}
				select {
				case out <- p:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// loadRaw reads the three correlated rows of field.
func loadRaw(ctx context.Context, store ports.RowStore, userID string, field domain.FieldName) (domain.RawField, error) {
	var raw domain.RawField
	targets := []struct {
		key string
		dst *json.RawMessage
	}{
		{field.ValueKey(), &raw.Value},
		{field.LockedKey(), &raw.Locked},
		{field.CanEditKey(), &raw.CanEdit},
	}

	for _, t := range targets {
		v, found, err := store.Get(ctx, userID, t.key)
		if err != nil {
			metrics.StoreErrorsTotal.WithLabelValues("get").Inc()
			return domain.RawField{}, domain.NewStoreError("get", err)
		}
		if found {
			*t.dst = v
		}
	}
	return raw, nil
}
