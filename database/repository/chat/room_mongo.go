package chatRepo

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

// MongoChatRoomRepo implements ChatRoomRepository using MongoDB.
type MongoChatRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoChatRoomRepo creates a new instance of ChatRoomRepository using MongoDB.
func NewMongoChatRoomRepo() ChatRoomRepository {
	coll := database.Database().Collection("chat_rooms")
	repo := &MongoChatRoomRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for room lookups. The unique index on
// booking_id enforces exactly one room per booking, closing the concurrent
// create-or-get race.
func (r *MongoChatRoomRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "room_key", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "active", Value: 1}}},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "active", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// CreateRoom inserts a new chat room document.
func (r *MongoChatRoomRepo) CreateRoom(room *models.ChatRoom) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, room)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrRoomExists
		}
		return fmt.Errorf("failed to create chat room: %w", err)
	}
	return nil
}

// GetByBookingID retrieves the room bound to the given booking.
func (r *MongoChatRoomRepo) GetByBookingID(bookingID string) (*models.ChatRoom, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var room models.ChatRoom
	if err := r.coll.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&room); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to fetch chat room for booking %s: %w", bookingID, err)
	}
	return &room, nil
}

// GetByRoomKey retrieves a room by its deterministic key.
func (r *MongoChatRoomRepo) GetByRoomKey(roomKey string) (*models.ChatRoom, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var room models.ChatRoom
	if err := r.coll.FindOne(ctx, bson.M{"room_key": roomKey}).Decode(&room); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to fetch chat room %s: %w", roomKey, err)
	}
	return &room, nil
}

// TouchLastMessage bumps the room's last_message_at watermark.
func (r *MongoChatRoomRepo) TouchLastMessage(roomID string, at time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"last_message_at": at, "updated_at": at}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": roomID}, update)
	if err != nil {
		return fmt.Errorf("failed to update chat room %s: %w", roomID, err)
	}
	if result.MatchedCount == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// ListActiveForUser returns active rooms where userID is customer or provider,
// newest conversation first. Rooms without messages sort last because a
// missing last_message_at is the lowest value under descending BSON order.
func (r *MongoChatRoomRepo) ListActiveForUser(userID string) ([]models.ChatRoom, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"active": true,
		"$or": bson.A{
			bson.M{"customer_id": userID},
			bson.M{"provider_id": userID},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat rooms for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var rooms []models.ChatRoom
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode chat rooms: %w", err)
	}
	return rooms, nil
}
