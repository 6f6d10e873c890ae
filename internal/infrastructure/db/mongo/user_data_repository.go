package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hikeplan/trip-planner/internal/core/domain"
)

// UserDataRepository stores the user_data key/value rows. Values are kept
// as their raw JSON text so loosely typed flags survive the round trip.
type UserDataRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewUserDataRepository(db *mongo.Database) *UserDataRepository {
	return &UserDataRepository{
		col: db.Collection(collectionUserData),
		now: func() time.Time { return time.Now().UTC() },
	}
}

type userDataDoc struct {
	UserID    string    `bson:"user_id"`
	Key       string    `bson:"key"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d userDataDoc) toRow() domain.Row {
	return domain.Row{
		UserID:    d.UserID,
		Key:       d.Key,
		Value:     json.RawMessage(d.Value),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func (r *UserDataRepository) Get(ctx context.Context, userID, key string) (json.RawMessage, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDataDoc
	err := r.col.FindOne(ctx, bson.M{"user_id": userID, "key": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return json.RawMessage(doc.Value), true, nil
}

// Upsert writes the row with (user_id, key) as conflict target.
func (r *UserDataRepository) Upsert(ctx context.Context, userID, key string, value json.RawMessage) (domain.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDataDoc{UserID: userID, Key: key, Value: string(value), UpdatedAt: r.now()}
	filter := bson.M{"user_id": userID, "key": key}
	update := bson.M{"$set": bson.M{"value": doc.Value, "updated_at": doc.UpdatedAt}}

	if _, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return domain.Row{}, err
	}
	return doc.toRow(), nil
}

func (r *UserDataRepository) Delete(ctx context.Context, userID, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"user_id": userID, "key": key})
	return err
}

func (r *UserDataRepository) ListByKeys(ctx context.Context, keys []string) ([]domain.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "user_id", Value: 1}, {Key: "key", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"key": bson.M{"$in": keys}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []userDataDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	rows := make([]domain.Row, len(docs))
	for i, d := range docs {
		rows[i] = d.toRow()
	}
	return rows, nil
}

func (r *UserDataRepository) DeleteUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
