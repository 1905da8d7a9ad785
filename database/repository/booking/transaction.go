package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"fixitnow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create persists the booking and bumps the listing's booking counter in a
// single transaction, so a booking cannot be observed without its counter
// increment. A duplicate-key violation of the conflict index surfaces as
// ErrSlotTaken.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert booking failed: %w", err)
		}

		update := bson.M{
			"$inc": bson.M{"booking_count": 1},
			"$set": bson.M{"updated_at": now},
		}
		res, err := r.listingColl.UpdateOne(sc, bson.M{"id": booking.ServiceListingID}, update)
		if err != nil {
			return fmt.Errorf("increment listing booking count failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("listing %s not found while creating booking", booking.ServiceListingID)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSlotTaken {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}
