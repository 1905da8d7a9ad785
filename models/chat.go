package models

import "time"

// MessageType is the closed set of chat message kinds.
type MessageType string

const (
	MessageTypeText   MessageType = "TEXT"
	MessageTypeImage  MessageType = "IMAGE"
	MessageTypeFile   MessageType = "FILE"
	MessageTypeSystem MessageType = "SYSTEM"
)

// Valid reports whether t is a known message type.
func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeText, MessageTypeImage, MessageTypeFile, MessageTypeSystem:
		return true
	}
	return false
}

// ChatRoom is the 1:1 conversation channel bound to exactly one booking.
type ChatRoom struct {
	ID            string     `bson:"id" json:"id"`
	RoomKey       string     `bson:"room_key" json:"room_key"`
	BookingID     string     `bson:"booking_id" json:"booking_id"`
	CustomerID    string     `bson:"customer_id" json:"customer_id"`
	ProviderID    string     `bson:"provider_id" json:"provider_id"`
	Active        bool       `bson:"active" json:"active"`
	LastMessageAt *time.Time `bson:"last_message_at,omitempty" json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updated_at"`
}

// IsParty reports whether userID is the room's customer or provider.
func (r *ChatRoom) IsParty(userID string) bool {
	return r.CustomerID == userID || r.ProviderID == userID
}

// ChatMessage is one chat utterance. Content is immutable after creation;
// only the read flag flips thereafter.
type ChatMessage struct {
	ID          string      `bson:"id" json:"id"`
	RoomID      string      `bson:"room_id" json:"room_id"`
	RoomKey     string      `bson:"room_key" json:"room_key"`
	SenderID    string      `bson:"sender_id" json:"sender_id"`
	Body        string      `bson:"body" json:"body"`
	MessageType MessageType `bson:"message_type" json:"message_type"`
	IsRead      bool        `bson:"is_read" json:"is_read"`
	CreatedAt   time.Time   `bson:"created_at" json:"created_at"`
}

// SendMessageRequest is the input for sending a chat message.
type SendMessageRequest struct {
	RoomKey     string      `json:"room_key" binding:"required"`
	Body        string      `json:"body" binding:"required"`
	MessageType MessageType `json:"message_type,omitempty"`
}

// ChatRoomView is a room annotated with per-viewer unread state and the
// last message preview, for the room list endpoint.
type ChatRoomView struct {
	ChatRoom
	UnreadCount int64  `json:"unread_count"`
	LastMessage string `json:"last_message,omitempty"`
}
