package bookingRepo

import (
	"fmt"
	"time"

	"fixitnow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// nonTerminalStatuses matches the partial filter of the conflict index.
var nonTerminalStatuses = bson.A{
	string(models.BookingStatusPending),
	string(models.BookingStatusConfirmed),
}

// HasConflict reports whether a PENDING or CONFIRMED booking already occupies
// the given provider, date and time slot.
func (r *MongoBookingRepo) HasConflict(providerID string, date time.Time, timeSlot string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id":  providerID,
		"booking_date": date,
		"time_slot":    timeSlot,
		"status":       bson.M{"$in": nonTerminalStatuses},
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check booking conflict: %w", err)
	}
	return count > 0, nil
}

// ListByParty returns one page of bookings where partyID is the customer or
// the provider, optionally filtered by status.
func (r *MongoBookingRepo) ListByParty(partyID string, asProvider bool, status *models.BookingStatus, page models.PageRequest) (*models.Page[models.Booking], error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	page = page.Normalize()

	partyField := "customer_id"
	if asProvider {
		partyField = "provider_id"
	}
	filter := bson.M{partyField: partyID}
	if status != nil {
		filter["status"] = string(*status)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	order := -1
	if page.SortOrder == "asc" {
		order = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: page.SortBy, Value: order}}).
		SetSkip(int64(page.Page * page.Size)).
		SetLimit(int64(page.Size))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return &models.Page[models.Booking]{
		Items:      bookings,
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: total,
	}, nil
}

// ListUpcoming returns all PENDING/CONFIRMED bookings for the party with a
// booking date at or after the given instant, ordered by booking date.
func (r *MongoBookingRepo) ListUpcoming(partyID string, asProvider bool, after time.Time) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	partyField := "customer_id"
	if asProvider {
		partyField = "provider_id"
	}
	filter := bson.M{
		partyField:     partyID,
		"status":       bson.M{"$in": nonTerminalStatuses},
		"booking_date": bson.M{"$gte": after},
	}
	opts := options.Find().SetSort(bson.D{{Key: "booking_date", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
