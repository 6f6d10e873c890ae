package ports

import (
	"context"

	"github.com/hikeplan/trip-planner/internal/core/domain"
)

// RoleRepository persists the user_roles table.
type RoleRepository interface {
	// Find returns the role row of userID, or domain.ErrRoleNotFound.
	Find(ctx context.Context, userID string) (*domain.MemberRole, error)
	Upsert(ctx context.Context, role domain.MemberRole) error
	Delete(ctx context.Context, userID string) error
}
