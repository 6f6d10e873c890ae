// Package memory provides in-process implementations of the storage ports,
// used for local development and as the reference behaviour in tests.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/hikeplan/trip-planner/internal/core/domain"
)

type rowKey struct {
	userID string
	key    string
}

// Store is a mutex-guarded user_data table with change notifications.
type Store struct {
	mu     sync.RWMutex
	rows   map[rowKey]domain.Row
	broker *Broker
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{
		rows:   make(map[rowKey]domain.Row),
		broker: NewBroker(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Get(_ context.Context, userID, key string) (json.RawMessage, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rows[rowKey{userID, key}]
	if !ok {
		return nil, false, nil
	}
	return cloneRaw(r.Value), true, nil
}

func (s *Store) Upsert(ctx context.Context, userID, key string, value json.RawMessage) (domain.Row, error) {
	r := domain.Row{UserID: userID, Key: key, Value: cloneRaw(value), UpdatedAt: s.now()}

	s.mu.Lock()
	s.rows[rowKey{userID, key}] = r
	s.mu.Unlock()

	_ = s.broker.Publish(ctx, domain.ChangeEvent{Op: domain.ChangeUpsert, Row: r})
	return r, nil
}

func (s *Store) Delete(ctx context.Context, userID, key string) error {
	s.mu.Lock()
	r, ok := s.rows[rowKey{userID, key}]
	delete(s.rows, rowKey{userID, key})
	s.mu.Unlock()

	if ok {
		_ = s.broker.Publish(ctx, domain.ChangeEvent{Op: domain.ChangeDelete, Row: r})
	}
	return nil
}

// ListByKeys returns matching rows ordered by user id then key.
func (s *Store) ListByKeys(_ context.Context, keys []string) ([]domain.Row, error) {
	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}

	s.mu.RLock()
	var out []domain.Row
	for k, r := range s.rows {
		if _, ok := want[k.key]; ok {
			r.Value = cloneRaw(r.Value)
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

func (s *Store) DeleteUser(ctx context.Context, userID string) (int64, error) {
	s.mu.Lock()
	var removed []domain.Row
	for k, r := range s.rows {
		if k.userID == userID {
			removed = append(removed, r)
			delete(s.rows, k)
		}
	}
	s.mu.Unlock()

	for _, r := range removed {
		_ = s.broker.Publish(ctx, domain.ChangeEvent{Op: domain.ChangeDelete, Row: r})
	}
	return int64(len(removed)), nil
}

func (s *Store) Subscribe(ctx context.Context, filter domain.ChangeFilter) (<-chan domain.ChangeEvent, error) {
	return s.broker.Subscribe(ctx, filter)
}

func cloneRaw(v json.RawMessage) json.RawMessage {
	if v == nil {
		return nil
	}
	out := make(json.RawMessage, len(v))
	copy(out, v)
	return out
}
