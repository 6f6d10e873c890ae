package memory

import (
	"context"
	"sync"

	"github.com/hikeplan/trip-planner/internal/core/domain"
)

// RoleRepository is an in-memory user_roles table.
type RoleRepository struct {
	mu    sync.RWMutex
	roles map[string]domain.MemberRole
}

func NewRoleRepository() *RoleRepository {
	return &RoleRepository{roles: make(map[string]domain.MemberRole)}
}

func (r *RoleRepository) Find(_ context.Context, userID string) (*domain.MemberRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, ok := r.roles[userID]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return &role, nil
}

func (r *RoleRepository) Upsert(_ context.Context, role domain.MemberRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[role.UserID] = role
	return nil
}

func (r *RoleRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roles, userID)
	return nil
}

// AuditRepository keeps audit events in insertion order.
type AuditRepository struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

func (r *AuditRepository) Insert(_ context.Context, ev *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *ev)
	return nil
}

// Events returns a copy of the recorded events.
func (r *AuditRepository) Events() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditEvent, len(r.events))
	copy(out, r.events)
	return out
}
