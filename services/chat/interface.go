package chat

import (
	"fixitnow/models"
)

// DefaultRecentMessageLimit is the page-less initial load size.
const DefaultRecentMessageLimit = 50

// ChatService owns the per-booking conversation channel: lazy room creation,
// message persistence, read tracking, and real-time fan-out.
type ChatService interface {
	CreateOrGetRoom(bookingID, actorID string) (*models.ChatRoomView, error)
	ListRoomsForUser(userID string) ([]models.ChatRoomView, error)
	SendMessage(roomKey, senderID string, req models.SendMessageRequest) (*models.ChatMessage, error)
	GetRecentMessages(roomKey, actorID string, limit int) ([]models.ChatMessage, error)
	GetMessagesPaginated(roomKey, actorID string, page models.PageRequest) (*models.Page[models.ChatMessage], error)
	MarkRead(roomKey, actorID string) error
	UnreadCount(roomKey, actorID string) (int64, error)
	// NotifyTyping and NotifyJoin broadcast ephemeral events to the room's
	// topic. They persist nothing and carry no read state.
	NotifyTyping(roomKey, actorID string) error
	NotifyJoin(roomKey, actorID string) error
}
