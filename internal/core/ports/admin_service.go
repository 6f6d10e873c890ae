package ports

import (
	"context"

	"github.com/hikeplan/trip-planner/internal/core/domain"
)

// OverrideService toggles the admin can_edit flag of a governed field.
type OverrideService interface {
	SetOverride(ctx context.Context, actor domain.Actor, userID string, field domain.FieldName, canEdit bool) error
}

// AdminService covers the remaining admin controls.
type AdminService interface {
	// IsAdmin resolves the admin capability of userID. claimAdmin is the
	// identity-provider flag carried in the access token.
	IsAdmin(ctx context.Context, userID string, claimAdmin bool) (bool, error)
	SetAdmin(ctx context.Context, actor domain.Actor, userID string, isAdmin bool) error
	ListLockStatuses(ctx context.Context, actor domain.Actor) ([]domain.UserLockStatus, error)
	RemoveMember(ctx context.Context, actor domain.Actor, userID string) error
}
