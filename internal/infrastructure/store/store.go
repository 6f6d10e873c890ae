// Package store joins a row store with a change notifier into the
// KeyValueStore consumed by the core services.
package store

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/hikeplan/trip-planner/internal/core/domain"
	"github.com/hikeplan/trip-planner/internal/core/ports"
)

// NotifyingStore publishes a change event after every successful mutation
// of the underlying rows.
type NotifyingStore struct {
	ports.RowStore
	notifier ports.ChangeNotifier
	log      zerolog.Logger
}

// New wraps rows so that mutations are announced on notifier.
func New(rows ports.RowStore, notifier ports.ChangeNotifier, log zerolog.Logger) *NotifyingStore {
	return &NotifyingStore{
		RowStore: rows,
		notifier: notifier,
		log:      log.With().Str("component", "store").Logger(),
	}
}

// Upsert writes the row, then publishes. A publish failure is logged but
// does not fail the write: the row is already stored.
func (s *NotifyingStore) Upsert(ctx context.Context, userID, key string, value json.RawMessage) (domain.Row, error) {
	row, err := s.RowStore.Upsert(ctx, userID, key, value)
	if err != nil {
		return domain.Row{}, err
	}
	s.publish(ctx, domain.ChangeEvent{Op: domain.ChangeUpsert, Row: row})
	return row, nil
}

func (s *NotifyingStore) Delete(ctx context.Context, userID, key string) error {
	if err := s.RowStore.Delete(ctx, userID, key); err != nil {
		return err
	}
	s.publish(ctx, domain.ChangeEvent{Op: domain.ChangeDelete, Row: domain.Row{UserID: userID, Key: key}})
	return nil
}

// DeleteUser announces one delete per governed key so field watchers of the
// removed user refresh to the default projection.
func (s *NotifyingStore) DeleteUser(ctx context.Context, userID string) (int64, error) {
	n, err := s.RowStore.DeleteUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	for _, f := range domain.GovernedFields {
		for _, key := range f.Keys() {
			s.publish(ctx, domain.ChangeEvent{Op: domain.ChangeDelete, Row: domain.Row{UserID: userID, Key: key}})
		}
	}
	return n, nil
}

func (s *NotifyingStore) Subscribe(ctx context.Context, filter domain.ChangeFilter) (<-chan domain.ChangeEvent, error) {
	return s.notifier.Subscribe(ctx, filter)
}

func (s *NotifyingStore) publish(ctx context.Context, ev domain.ChangeEvent) {
	if err := s.notifier.Publish(ctx, ev); err != nil {
		s.log.Warn().Err(err).
			Str("user_id", ev.Row.UserID).
			Str("key", ev.Row.Key).
			Msg("change notification failed")
	}
}
