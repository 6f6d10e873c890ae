package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/hikeplan/trip-planner/internal/api/metrics"
	"github.com/hikeplan/trip-planner/internal/core/domain"
	"github.com/hikeplan/trip-planner/internal/core/ports"
)

// AdminService implements the admin controls that sit beside the override
// controller: capability lookup, admin grants, the lock overview and member
// removal.
type AdminService struct {
	rows   ports.RowStore
	roles  ports.RoleRepository
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewAdminService(rows ports.RowStore, roles ports.RoleRepository, audit ports.AuditSink, logger zerolog.Logger) *AdminService {
	return &AdminService{
		rows:   rows,
		roles:  roles,
		audit:  audit,
		logger: logger.With().Str("component", "admin_service").Logger(),
	}
}

// IsAdmin grants the capability when either the identity claim or the
// user_roles row says so.
func (s *AdminService) IsAdmin(ctx context.Context, userID string, claimAdmin bool) (bool, error) {
	if claimAdmin {
		return true, nil
	}
	if userID == "" {
		return false, nil
	}

	role, err := s.roles.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("resolve admin: %w", domain.NewStoreError("get", err))
	}
	return role.IsAdmin, nil
}

func (s *AdminService) SetAdmin(ctx context.Context, actor domain.Actor, userID string, isAdmin bool) error {
	if err := requireAdminOver(actor, userID); err != nil {
		return fmt.Errorf("set admin: %w", err)
	}

	if err := s.roles.Upsert(ctx, domain.MemberRole{UserID: userID, IsAdmin: isAdmin}); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("upsert").Inc()
		return fmt.Errorf("set admin: %w", domain.NewStoreError("upsert", err))
	}

	action := domain.AuditRevokeAdmin
	if isAdmin {
		action = domain.AuditGrantAdmin
	}
	emitAudit(s.audit, domain.AuditEvent{UserID: userID, Action: action, ActorID: actor.UserID})

	s.logger.Info().Str("admin_id", actor.UserID).Str("user_id", userID).Bool("is_admin", isAdmin).Msg("admin flag updated")
	return nil
}

// ListLockStatuses builds the per-user lock overview from the flag rows of
// both governed fields. Users without any flag row are omitted.
func (s *AdminService) ListLockStatuses(ctx context.Context, actor domain.Actor) ([]domain.UserLockStatus, error) {
	if !actor.Admin {
		return nil, fmt.Errorf("list lock statuses: admin required: %w", domain.ErrPermissionDenied)
	}

	keys := []string{
		domain.FieldEmergencyInfo.LockedKey(),
		domain.FieldEmergencyInfo.CanEditKey(),
		domain.FieldUserRole.LockedKey(),
		domain.FieldUserRole.CanEditKey(),
	}
	rows, err := s.rows.ListByKeys(ctx, keys)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("list").Inc()
		return nil, fmt.Errorf("list lock statuses: %w", domain.NewStoreError("list", err))
	}

	byUser := make(map[string]*domain.UserLockStatus)
	for _, r := range rows {
		st, ok := byUser[r.UserID]
		if !ok {
			st = &domain.UserLockStatus{UserID: r.UserID}
			byUser[r.UserID] = st
		}
		v := domain.CoerceBool(r.Value)
		switch r.Key {
		case domain.FieldEmergencyInfo.LockedKey():
			st.EmergencyLocked = v
		case domain.FieldEmergencyInfo.CanEditKey():
			st.CanEditEmergency = v
		case domain.FieldUserRole.LockedKey():
			st.RoleLocked = v
		case domain.FieldUserRole.CanEditKey():
			st.CanEditRole = v
		}
	}

	out := make([]domain.UserLockStatus, 0, len(byUser))
	for _, st := range byUser {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// RemoveMember deletes every key/value row and the role row of userID.
func (s *AdminService) RemoveMember(ctx context.Context, actor domain.Actor, userID string) error {
	if err := requireAdminOver(actor, userID); err != nil {
		return fmt.Errorf("remove member: %w", err)
	}

	n, err := s.rows.DeleteUser(ctx, userID)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("delete").Inc()
		return fmt.Errorf("remove member: %w", domain.NewStoreError("delete", err))
	}
	if err := s.roles.Delete(ctx, userID); err != nil && !errors.Is(err, domain.ErrRoleNotFound) {
		metrics.StoreErrorsTotal.WithLabelValues("delete").Inc()
		return fmt.Errorf("remove member: roles: %w", domain.NewStoreError("delete", err))
	}

	emitAudit(s.audit, domain.AuditEvent{UserID: userID, Action: domain.AuditRemove, ActorID: actor.UserID})

	s.logger.Info().Str("admin_id", actor.UserID).Str("user_id", userID).Int64("rows", n).Msg("member removed")
	return nil
}

// requireAdminOver rejects non-admins and admins acting on themselves.
func requireAdminOver(actor domain.Actor, userID string) error {
	if !actor.Admin {
		return fmt.Errorf("admin required: %w", domain.ErrPermissionDenied)
	}
	if actor.Owns(userID) {
		return fmt.Errorf("cannot target own account: %w", domain.ErrPermissionDenied)
	}
	if userID == "" {
		return fmt.Errorf("empty user id: %w", domain.ErrInvalidValue)
	}
	return nil
}
