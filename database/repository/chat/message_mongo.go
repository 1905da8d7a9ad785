package chatRepo

import (
	"fmt"
	"time"

	"fixitnow/database"
	"fixitnow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoChatMessageRepo implements ChatMessageRepository using MongoDB.
type MongoChatMessageRepo struct {
	coll *mongo.Collection
}

// NewMongoChatMessageRepo creates a new instance of ChatMessageRepository using MongoDB.
func NewMongoChatMessageRepo() ChatMessageRepository {
	coll := database.Database().Collection("chat_messages")
	repo := &MongoChatMessageRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoChatMessageRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "sender_id", Value: 1}, {Key: "is_read", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Insert appends a new chat message document.
func (r *MongoChatMessageRepo) Insert(msg *models.ChatMessage) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	msg.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

// ListRecent returns the most recent messages in the room, newest first.
func (r *MongoChatMessageRepo) ListRecent(roomID string, limit int) ([]models.ChatMessage, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"room_id": roomID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for room %s: %w", roomID, err)
	}
	defer cursor.Close(ctx)

	var messages []models.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return messages, nil
}

// ListPaginated returns one page of the room's messages, newest first.
func (r *MongoChatMessageRepo) ListPaginated(roomID string, page models.PageRequest) (*models.Page[models.ChatMessage], error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	page = page.Normalize()
	filter := bson.M{"room_id": roomID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page.Page * page.Size)).
		SetLimit(int64(page.Size))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for room %s: %w", roomID, err)
	}
	defer cursor.Close(ctx)

	var messages []models.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}

	return &models.Page[models.ChatMessage]{
		Items:      messages,
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: total,
	}, nil
}

// MarkAllRead flips is_read for every unread message in the room that was not
// authored by readerID. Repeated calls are no-ops once caught up.
func (r *MongoChatMessageRepo) MarkAllRead(roomID, readerID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"room_id":   roomID,
		"sender_id": bson.M{"$ne": readerID},
		"is_read":   false,
	}
	_, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return fmt.Errorf("failed to mark messages read in room %s: %w", roomID, err)
	}
	return nil
}

// CountUnread counts messages in the room authored by the other party that
// readerID has not yet read.
func (r *MongoChatMessageRepo) CountUnread(roomID, readerID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"room_id":   roomID,
		"sender_id": bson.M{"$ne": readerID},
		"is_read":   false,
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages in room %s: %w", roomID, err)
	}
	return count, nil
}

// LastMessage returns the newest message in the room, or nil if the room has
// no messages yet.
func (r *MongoChatMessageRepo) LastMessage(roomID string) (*models.ChatMessage, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var msg models.ChatMessage
	if err := r.coll.FindOne(ctx, bson.M{"room_id": roomID}, opts).Decode(&msg); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch last message for room %s: %w", roomID, err)
	}
	return &msg, nil
}
