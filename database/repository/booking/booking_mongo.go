package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB. It holds the
// listing collection as well so the create transaction can bump the listing's
// booking counter in the same session.
type MongoBookingRepo struct {
	coll        *mongo.Collection
	listingColl *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.Database()
	repo := &MongoBookingRepo{
		coll:        db.Collection("bookings"),
		listingColl: db.Collection("service_listings"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries. The
// partial unique index over (provider_id, booking_date, time_slot) restricted
// to PENDING/CONFIRMED bookings enforces the no-double-booking invariant at
// the storage level, so concurrent check-then-insert attempts cannot both
// succeed.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "status", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "provider_id", Value: 1},
				{Key: "booking_date", Value: 1},
				{Key: "time_slot", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": bson.A{
						string(models.BookingStatusPending),
						string(models.BookingStatusConfirmed),
					}},
				}),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
