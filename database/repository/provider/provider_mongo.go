package providerRepo

import (
	"context"
	"fmt"
	"time"

	"fixitnow/database"
	"fixitnow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProviderProfileRepo implements ProviderProfileRepository using MongoDB.
type MongoProviderProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderProfileRepo creates a new instance of ProviderProfileRepository using MongoDB.
func NewMongoProviderProfileRepo() ProviderProfileRepository {
	coll := database.Database().Collection("provider_profiles")
	repo := &MongoProviderProfileRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoProviderProfileRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a provider profile by its unique ID.
func (r *MongoProviderProfileRepo) GetByID(id string) (*models.ProviderProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var profile models.ProviderProfile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider profile with id %s: %w", id, err)
	}
	return &profile, nil
}

// UpdateRating writes the derived rating fields in one document update.
func (r *MongoProviderProfileRepo) UpdateRating(id string, rating float64, totalReviews int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"rating":        rating,
		"total_reviews": totalReviews,
		"updated_at":    time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update rating for provider %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
