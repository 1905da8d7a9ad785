package reviewRepo

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

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	coll := database.Database().Collection("reviews")
	repo := &MongoReviewRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for review lookups. The unique compound index
// over (customer_id, service_listing_id) enforces one review per customer per
// listing.
func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "customer_id", Value: 1}, {Key: "service_listing_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "service_listing_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "provider_profile_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new review document.
func (r *MongoReviewRepo) Create(review *models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update modifies an existing review document.
func (r *MongoReviewRepo) Update(review *models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	review.UpdatedAt = time.Now()
	filter := bson.M{"id": review.ID}
	update := bson.M{"$set": review}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update review with id %s: %w", review.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a review document by its ID.
func (r *MongoReviewRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a review by its unique ID.
func (r *MongoReviewRepo) GetByID(id string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch review with id %s: %w", id, err)
	}
	return &review, nil
}

// Exists reports whether the customer has already reviewed the listing.
func (r *MongoReviewRepo) Exists(serviceListingID, customerID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"service_listing_id": serviceListingID,
		"customer_id":        customerID,
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check review existence: %w", err)
	}
	return count > 0, nil
}

// ListByListing returns one page of a listing's reviews, newest first.
func (r *MongoReviewRepo) ListByListing(serviceListingID string, page models.PageRequest) (*models.Page[models.Review], error) {
	return r.listPaginated(bson.M{"service_listing_id": serviceListingID}, page)
}

// ListByProvider returns one page of a provider's reviews, newest first.
func (r *MongoReviewRepo) ListByProvider(providerProfileID string, page models.PageRequest) (*models.Page[models.Review], error) {
	return r.listPaginated(bson.M{"provider_profile_id": providerProfileID}, page)
}

func (r *MongoReviewRepo) listPaginated(filter bson.M, page models.PageRequest) (*models.Page[models.Review], error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	page = page.Normalize()

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page.Page * page.Size)).
		SetLimit(int64(page.Size))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return &models.Page[models.Review]{
		Items:      reviews,
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: total,
	}, nil
}

// ListByCustomer returns all reviews authored by the customer, newest first.
func (r *MongoReviewRepo) ListByCustomer(customerID string) ([]models.Review, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"customer_id": customerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for customer %s: %w", customerID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}
