package chatRepo

import (
	"errors"
	"time"

	"fixitnow/models"
)

// ErrRoomNotFound is returned when no chat room matches the lookup.
var ErrRoomNotFound = errors.New("chat room not found")

// ErrRoomExists is returned by CreateRoom when a room already exists for the
// booking; callers should refetch instead of treating it as a failure.
var ErrRoomExists = errors.New("chat room already exists for booking")

// ChatRoomRepository defines the data access contract for chat rooms.
type ChatRoomRepository interface {
	CreateRoom(room *models.ChatRoom) error
	GetByBookingID(bookingID string) (*models.ChatRoom, error)
	GetByRoomKey(roomKey string) (*models.ChatRoom, error)
	// TouchLastMessage bumps the room's last_message_at watermark.
	TouchLastMessage(roomID string, at time.Time) error
	// ListActiveForUser returns active rooms where userID is a party,
	// ordered by last_message_at descending with never-messaged rooms last.
	ListActiveForUser(userID string) ([]models.ChatRoom, error)
}

// ChatMessageRepository defines the data access contract for chat messages.
type ChatMessageRepository interface {
	Insert(msg *models.ChatMessage) error
	ListRecent(roomID string, limit int) ([]models.ChatMessage, error)
	ListPaginated(roomID string, page models.PageRequest) (*models.Page[models.ChatMessage], error)
	// MarkAllRead flips is_read for every unread message in the room not
	// authored by readerID. Idempotent.
	MarkAllRead(roomID, readerID string) error
	CountUnread(roomID, readerID string) (int64, error)
	LastMessage(roomID string) (*models.ChatMessage, error)
}
