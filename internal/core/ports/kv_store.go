package ports

import (
	"context"
	"encoding/json"

	"github.com/hikeplan/trip-planner/internal/core/domain"
)

// RowStore is the persistence side of the user_data key/value table.
type RowStore interface {
	// Get returns the stored value of (userID, key). found is false when the
	// row does not exist; that is not an error.
	Get(ctx context.Context, userID, key string) (value json.RawMessage, found bool, err error)
	// Upsert writes value with conflict target (user_id, key); last write wins.
	Upsert(ctx context.Context, userID, key string, value json.RawMessage) (domain.Row, error)
	// Delete removes (userID, key). Deleting a missing row is not an error.
	Delete(ctx context.Context, userID, key string) error
	// ListByKeys returns every row whose key is in keys, across all users.
	ListByKeys(ctx context.Context, keys []string) ([]domain.Row, error)
	// DeleteUser removes every row owned by userID and returns the removed count.
	DeleteUser(ctx context.Context, userID string) (int64, error)
}

// ChangeNotifier fans out row changes to subscribers.
type ChangeNotifier interface {
	Publish(ctx context.Context, ev domain.ChangeEvent) error
	// Subscribe streams events matching filter until ctx is cancelled, then
	// closes the channel.
	Subscribe(ctx context.Context, filter domain.ChangeFilter) (<-chan domain.ChangeEvent, error)
}

// KeyValueStore is the full collaborator consumed by the core.
type KeyValueStore interface {
	RowStore
	Subscribe(ctx context.Context, filter domain.ChangeFilter) (<-chan domain.ChangeEvent, error)
}
