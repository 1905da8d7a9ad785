package chat

import (
	"strings"
	"time"

	"fixitnow/models"
	"fixitnow/utils"

	"github.com/google/uuid"
)

// SendMessage persists a message in the room, bumps the room's last-message
// watermark, and fans the message out on the room topic. Messages start
// unread; the read flag flips only through MarkRead by the other party.
func (s *DefaultChatService) SendMessage(roomKey, senderID string, req models.SendMessageRequest) (*models.ChatMessage, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, utils.NewValidation("message body must not be empty")
	}

	msgType := req.MessageType
	if msgType == "" {
		msgType = models.MessageTypeText
	}
	if !msgType.Valid() {
		return nil, utils.NewValidation("unknown message type: " + string(msgType))
	}

	room, err := s.getRoomForParty(roomKey, senderID)
	if err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		ID:          uuid.New().String(),
		RoomID:      room.ID,
		RoomKey:     room.RoomKey,
		SenderID:    senderID,
		Body:        req.Body,
		MessageType: msgType,
		IsRead:      false,
	}
	if err := s.Messages.Insert(msg); err != nil {
		return nil, err
	}

	if err := s.Rooms.TouchLastMessage(room.ID, time.Now()); err != nil {
		return nil, err
	}

	s.publishEvent(RoomEvent{
		Event:   EventMessageCreated,
		RoomKey: room.RoomKey,
		UserID:  senderID,
		Message: msg,
	})

	return msg, nil
}

// GetRecentMessages returns the newest messages in the room, newest first.
func (s *DefaultChatService) GetRecentMessages(roomKey, actorID string, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = DefaultRecentMessageLimit
	}

	room, err := s.getRoomForParty(roomKey, actorID)
	if err != nil {
		return nil, err
	}
	return s.Messages.ListRecent(room.ID, limit)
}

// GetMessagesPaginated returns one page of the room's messages, newest first.
func (s *DefaultChatService) GetMessagesPaginated(roomKey, actorID string, page models.PageRequest) (*models.Page[models.ChatMessage], error) {
	room, err := s.getRoomForParty(roomKey, actorID)
	if err != nil {
		return nil, err
	}
	return s.Messages.ListPaginated(room.ID, page)
}

// MarkRead flips every unread message from the other party to read.
// Idempotent: repeated calls are no-ops once caught up.
func (s *DefaultChatService) MarkRead(roomKey, actorID string) error {
	room, err := s.getRoomForParty(roomKey, actorID)
	if err != nil {
		return err
	}
	return s.Messages.MarkAllRead(room.ID, actorID)
}

// UnreadCount counts the other party's messages the actor has not read.
func (s *DefaultChatService) UnreadCount(roomKey, actorID string) (int64, error) {
	room, err := s.getRoomForParty(roomKey, actorID)
	if err != nil {
		return 0, err
	}
	return s.Messages.CountUnread(room.ID, actorID)
}

// NotifyTyping broadcasts an ephemeral typing indicator to the room topic.
func (s *DefaultChatService) NotifyTyping(roomKey, actorID string) error {
	room, err := s.getRoomForParty(roomKey, actorID)
	if err != nil {
		return err
	}
	s.publishEvent(RoomEvent{Event: EventTyping, RoomKey: room.RoomKey, UserID: actorID})
	return nil
}

// NotifyJoin broadcasts an ephemeral join notice to the room topic.
func (s *DefaultChatService) NotifyJoin(roomKey, actorID string) error {
	room, err := s.getRoomForParty(roomKey, actorID)
	if err != nil {
		return err
	}
	s.publishEvent(RoomEvent{Event: EventJoin, RoomKey: room.RoomKey, UserID: actorID})
	return nil
}
