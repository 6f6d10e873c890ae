package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hikeplan/trip-planner/internal/core/domain"
	"github.com/hikeplan/trip-planner/internal/infrastructure/db/memory"
)

type recordingNotifier struct {
	mu         sync.Mutex
	events     []domain.ChangeEvent
	publishErr error
}

func (n *recordingNotifier) Publish(_ context.Context, ev domain.ChangeEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return n.publishErr
}

func (n *recordingNotifier) Subscribe(context.Context, domain.ChangeFilter) (<-chan domain.ChangeEvent, error) {
	return nil, errors.New("not supported")
}

type failingRows struct {
	*memory.Store
	err error
}

func (f failingRows) Upsert(context.Context, string, string, json.RawMessage) (domain.Row, error) {
	return domain.Row{}, f.err
}

func (f failingRows) Delete(context.Context, string, string) error { return f.err }

func TestNotifyingStore_PublishesAfterWrites(t *testing.T) {
	n := &recordingNotifier{}
	s := New(memory.NewStore(), n, zerolog.Nop())
	ctx := context.Background()

	_, err := s.Upsert(ctx, "u-1", "user_role", json.RawMessage(`"chef"`))
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, "u-1", "user_role"))

	require.Len(t, n.events, 2)
	assert.Equal(t, domain.ChangeUpsert, n.events[0].Op)
	assert.JSONEq(t, `"chef"`, string(n.events[0].Row.Value))
	assert.Equal(t, domain.ChangeDelete, n.events[1].Op)
	assert.Equal(t, "user_role", n.events[1].Row.Key)
}

func TestNotifyingStore_NoPublishOnFailedWrite(t *testing.T) {
	n := &recordingNotifier{}
	boom := errors.New("boom")
	s := New(failingRows{Store: memory.NewStore(), err: boom}, n, zerolog.Nop())

	_, err := s.Upsert(context.Background(), "u-1", "user_role", json.RawMessage(`"chef"`))
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Delete(context.Background(), "u-1", "user_role"), boom)
	assert.Empty(t, n.events)
}

func TestNotifyingStore_PublishFailureDoesNotFailWrite(t *testing.T) {
	n := &recordingNotifier{publishErr: errors.New("redis down")}
	rows := memory.NewStore()
	s := New(rows, n, zerolog.Nop())

	_, err := s.Upsert(context.Background(), "u-1", "user_role", json.RawMessage(`"chef"`))
	require.NoError(t, err)

	_, found, err := rows.Get(context.Background(), "u-1", "user_role")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestNotifyingStore_DeleteUserAnnouncesGovernedKeys(t *testing.T) {
	n := &recordingNotifier{}
	s := New(memory.NewStore(), n, zerolog.Nop())

	_, err := s.DeleteUser(context.Background(), "u-1")
	require.NoError(t, err)

	keys := map[string]bool{}
	for _, ev := range n.events {
		assert.Equal(t, domain.ChangeDelete, ev.Op)
		assert.Equal(t, "u-1", ev.Row.UserID)
		keys[ev.Row.Key] = true
	}
	for _, f := range domain.GovernedFields {
		for _, k := range f.Keys() {
			assert.True(t, keys[k], k)
		}
	}
}

func TestNotifyingStore_SubscribeUsesNotifier(t *testing.T) {
	broker := memory.NewBroker()
	s := New(memory.NewStore(), broker, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Subscribe(ctx, domain.ChangeFilter{UserID: "u-1", Key: "user_role_locked"})
	require.NoError(t, err)

	_, err = s.Upsert(ctx, "u-1", "user_role", json.RawMessage(`"chef"`))
	require.NoError(t, err)
	_, err = s.Upsert(ctx, "u-1", "user_role_locked", domain.EncodeFlag(true))
	require.NoError(t, err)

	ev := <-events
	assert.Equal(t, "user_role_locked", ev.Row.Key)
}
