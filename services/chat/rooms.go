package chat

import (
	"errors"
	"fmt"

	bookingRepo "fixitnow/database/repository/booking"
	chatRepo "fixitnow/database/repository/chat"
	"fixitnow/models"
	"fixitnow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultChatService implements ChatService.
type DefaultChatService struct {
	Rooms     chatRepo.ChatRoomRepository
	Messages  chatRepo.ChatMessageRepository
	Bookings  bookingRepo.BookingRepository
	Publisher RealtimePublisher // optional
}

// RoomKeyFor derives the deterministic room key for a booking's conversation.
func RoomKeyFor(bookingID, customerID, providerID string) string {
	return fmt.Sprintf("booking_%s_customer_%s_provider_%s", bookingID, customerID, providerID)
}

// CreateOrGetRoom returns the room bound to the booking, creating it on first
// access. Idempotent: the unique booking_id index closes the concurrent
// create race, and the loser of that race refetches the winner's room.
func (s *DefaultChatService) CreateOrGetRoom(bookingID, actorID string) (*models.ChatRoomView, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NewNotFound("booking not found")
		}
		return nil, err
	}
	if !b.IsParty(actorID) {
		return nil, utils.NewUnauthorized("not a party of this booking")
	}

	room, err := s.Rooms.GetByBookingID(bookingID)
	if errors.Is(err, chatRepo.ErrRoomNotFound) {
		room = &models.ChatRoom{
			ID:         uuid.New().String(),
			RoomKey:    RoomKeyFor(b.ID, b.CustomerID, b.ProviderID),
			BookingID:  b.ID,
			CustomerID: b.CustomerID,
			ProviderID: b.ProviderID,
			Active:     true,
		}
		err = s.Rooms.CreateRoom(room)
		if errors.Is(err, chatRepo.ErrRoomExists) {
			room, err = s.Rooms.GetByBookingID(bookingID)
		} else if err == nil {
			utils.GetLogger().Info("chat room created",
				zap.String("roomKey", room.RoomKey),
				zap.String("bookingId", b.ID),
			)
		}
	}
	if err != nil {
		return nil, err
	}

	return s.annotate(room, actorID)
}

// ListRoomsForUser returns the user's active rooms, newest conversation
// first, each annotated with unread count and last message preview.
func (s *DefaultChatService) ListRoomsForUser(userID string) ([]models.ChatRoomView, error) {
	rooms, err := s.Rooms.ListActiveForUser(userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.ChatRoomView, 0, len(rooms))
	for i := range rooms {
		view, err := s.annotate(&rooms[i], userID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// annotate attaches the viewer's unread count and the last message preview.
func (s *DefaultChatService) annotate(room *models.ChatRoom, viewerID string) (*models.ChatRoomView, error) {
	unread, err := s.Messages.CountUnread(room.ID, viewerID)
	if err != nil {
		return nil, err
	}

	view := &models.ChatRoomView{ChatRoom: *room, UnreadCount: unread}
	if last, err := s.Messages.LastMessage(room.ID); err == nil && last != nil {
		view.LastMessage = last.Body
	}
	return view, nil
}

// getRoomForParty fetches a room by key and checks actor membership.
func (s *DefaultChatService) getRoomForParty(roomKey, actorID string) (*models.ChatRoom, error) {
	room, err := s.Rooms.GetByRoomKey(roomKey)
	if err != nil {
		if errors.Is(err, chatRepo.ErrRoomNotFound) {
			return nil, utils.NewNotFound("chat room not found")
		}
		return nil, err
	}
	if !room.IsParty(actorID) {
		return nil, utils.NewUnauthorized("not a party of this chat room")
	}
	return room, nil
}
