package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"farecast-service/internal/domain/entity"
	"farecast-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMarkerRepository implements the MarkerRepository interface
type MongoMarkerRepository struct {
	collection *mongo.Collection
}

// NewMongoMarkerRepository creates a MongoDB marker store.
// A TTL index on expiresAt lets the server purge stale markers.
func NewMongoMarkerRepository(ctx context.Context, db *mongo.Database) (repository.MarkerRepository, error) {
	collection := db.Collection("run_markers")

	ttlIndex := mongo.IndexModel{
		Keys:    bson.M{"expiresAt": 1},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	if _, err := collection.Indexes().CreateOne(ctx, ttlIndex); err != nil {
		return nil, fmt.Errorf("create ttl index: %w", err)
	}

	return &MongoMarkerRepository{
		collection: collection,
	}, nil
}

// Get returns the marker value if present and not expired.
// The TTL monitor runs about once a minute so expiry is also checked here.
func (r *MongoMarkerRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var marker entity.IdempotencyMarker
	filter := bson.M{"_id": key, "expiresAt": bson.M{"$gt": time.Now().UTC()}}
	err := r.collection.FindOne(ctx, filter).Decode(&marker)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mongo find marker %s: %w", key, err)
	}
	return marker.Value, true, nil
}

// Put upserts the marker document
func (r *MongoMarkerRepository) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	marker := entity.IdempotencyMarker{
		Key:       key,
		Value:     value,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": key}, marker, opts); err != nil {
		return fmt.Errorf("mongo upsert marker %s: %w", key, err)
	}
	return nil
}

// Delete removes the marker document
func (r *MongoMarkerRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete marker %s: %w", key, err)
	}
	return nil
}
