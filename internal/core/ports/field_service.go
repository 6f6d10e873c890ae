package ports

import (
	"context"

	"github.com/hikeplan/trip-planner/internal/core/domain"
)

// FieldService exposes the owner-facing side of the lock protocol.
type FieldService interface {
	ProjectField(ctx context.Context, userID string, field domain.FieldName) (domain.Projection, error)
	// WriteField stores value as actor, who must own userID's fields.
	WriteField(ctx context.Context, actor domain.Actor, userID string, field domain.FieldName, value any) (domain.Projection, error)
	// Watch sends the current projection and a fresh one after every change
	// to the field's rows. The channel closes when ctx is done.
	Watch(ctx context.Context, userID string, field domain.FieldName) (<-chan domain.Projection, error)
}
