package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hikeplan/trip-planner/internal/core/domain"
	"github.com/hikeplan/trip-planner/internal/core/ports"
	"github.com/hikeplan/trip-planner/internal/infrastructure/db/memory"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type recordingSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (s *recordingSink) Enqueue(ev domain.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) Events() []domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditEvent, len(s.events))
	copy(out, s.events)
	return out
}

// faultyStore wraps the in-memory store and injects failures per key.
type faultyStore struct {
	*memory.Store
	getErr       error
	upsertErrFor map[string]error
	listErr      error
	deleteErr    error
}

func newFaultyStore() *faultyStore {
	return &faultyStore{Store: memory.NewStore(), upsertErrFor: map[string]error{}}
}

func (f *faultyStore) Get(ctx context.Context, userID, key string) (json.RawMessage, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.Store.Get(ctx, userID, key)
}

func (f *faultyStore) Upsert(ctx context.Context, userID, key string, value json.RawMessage) (domain.Row, error) {
	if err, ok := f.upsertErrFor[key]; ok {
		return domain.Row{}, err
	}
	return f.Store.Upsert(ctx, userID, key, value)
}

func (f *faultyStore) ListByKeys(ctx context.Context, keys []string) ([]domain.Row, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.Store.ListByKeys(ctx, keys)
}

func (f *faultyStore) DeleteUser(ctx context.Context, userID string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	return f.Store.DeleteUser(ctx, userID)
}

type failingRoles struct{ err error }

func (r failingRoles) Find(context.Context, string) (*domain.MemberRole, error) { return nil, r.err }
func (r failingRoles) Upsert(context.Context, domain.MemberRole) error           { return r.err }
func (r failingRoles) Delete(context.Context, string) error                      { return r.err }

var errBoom = errors.New("connection reset")

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

const (
	ownerID = "owner-1"
	adminID = "admin-1"
)

var (
	owner = domain.Actor{UserID: ownerID}
	admin = domain.Actor{UserID: adminID, Admin: true}

	infoA = domain.EmergencyInfo{ContactName: "A", ContactPhone: "123", PoliceStation: domain.DefaultPoliceStation}
	infoB = domain.EmergencyInfo{ContactName: "B", ContactPhone: "456", InsurancePolicy: "P-77", PoliceStation: "Station 2"}
)

type fixture struct {
	store     *memory.Store
	roles     *memory.RoleRepository
	sink      *recordingSink
	fields    *FieldService
	overrides ports.OverrideService
	admins    *AdminService
}

func newFixture() *fixture {
	st := memory.NewStore()
	roles := memory.NewRoleRepository()
	sink := &recordingSink{}
	return &fixture{
		store:     st,
		roles:     roles,
		sink:      sink,
		fields:    NewFieldService(st, sink, domain.Defaults{}, zerolog.Nop()),
		overrides: NewOverrideService(st, sink, zerolog.Nop()),
		admins:    NewAdminService(st, roles, sink, zerolog.Nop()),
	}
}

func (f *fixture) project(t *testing.T, field domain.FieldName) domain.Projection {
	t.Helper()
	p, err := f.fields.ProjectField(context.Background(), ownerID, field)
	require.NoError(t, err)
	return p
}

func (f *fixture) putRaw(t *testing.T, userID, key, raw string) {
	t.Helper()
	_, err := f.store.Upsert(context.Background(), userID, key, json.RawMessage(raw))
	require.NoError(t, err)
}

func valueFor(field domain.FieldName, n int) any {
	if field == domain.FieldUserRole {
		return []domain.Role{domain.RoleChef, domain.RoleLeader}[n%2]
	}
	return []domain.EmergencyInfo{infoA, infoB}[n%2]
}
