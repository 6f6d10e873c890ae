package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hikeplan/trip-planner/internal/core/domain"
)

type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(collectionRoles)}
}

type mongoRole struct {
	UserID    string `bson:"user_id"`
	IsAdmin   bool   `bson:"is_admin"`
	Notes     string `bson:"notes,omitempty"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *RoleRepository) Find(ctx context.Context, userID string) (*domain.MemberRole, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoRole
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}

	return &domain.MemberRole{UserID: mr.UserID, IsAdmin: mr.IsAdmin, Notes: mr.Notes}, nil
}

func (r *RoleRepository) Upsert(ctx context.Context, role domain.MemberRole) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": mongoRole{
		UserID:    role.UserID,
		IsAdmin:   role.IsAdmin,
		Notes:     role.Notes,
		UpdatedAt: time.Now().UTC().Unix(),
	}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"user_id": role.UserID}, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("upsert role: %w", err)
	}
	return nil
}

func (r *RoleRepository) Delete(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}
