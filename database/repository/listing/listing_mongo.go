package listingRepo

import (
	"context"
	"fmt"
	"time"

	"fixitnow/database"
	"fixitnow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoServiceListingRepo implements ServiceListingRepository using MongoDB.
// Listings are deliberately not cached: the active flag gates booking
// creation and must be read fresh.
type MongoServiceListingRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceListingRepo creates a new instance of ServiceListingRepository using MongoDB.
func NewMongoServiceListingRepo() ServiceListingRepository {
	return &MongoServiceListingRepo{coll: database.Database().Collection("service_listings")}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetByID retrieves a service listing by its unique ID.
func (r *MongoServiceListingRepo) GetByID(id string) (*models.ServiceListing, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var listing models.ServiceListing
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&listing); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch listing with id %s: %w", id, err)
	}
	return &listing, nil
}
