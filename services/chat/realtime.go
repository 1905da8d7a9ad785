package chat

import (
	"context"
	"encoding/json"
	"time"

	"fixitnow/models"
	"fixitnow/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Event kinds fanned out on a room's topic.
const (
	EventMessageCreated = "message.created"
	EventTyping         = "typing"
	EventJoin           = "join"
)

// RealtimePublisher is the injected publish-subscribe primitive. Delivery is
// best-effort and out of scope for correctness of persisted state.
type RealtimePublisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// RoomTopic returns the fan-out topic for a chat room.
func RoomTopic(roomKey string) string {
	return "chat:room:" + roomKey
}

// RoomEvent is the wire envelope for everything published on a room topic.
type RoomEvent struct {
	Event   string              `json:"event"`
	RoomKey string              `json:"room_key"`
	UserID  string              `json:"user_id,omitempty"`
	Message *models.ChatMessage `json:"message,omitempty"`
	At      time.Time           `json:"at"`
}

// RedisPublisher implements RealtimePublisher over Redis PUBLISH.
type RedisPublisher struct {
	Client *redis.Client
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	return p.Client.Publish(ctx, topic, payload).Err()
}

// publishEvent marshals and publishes a room event. Failures are logged and
// swallowed; real-time fan-out never fails the persisted operation.
func (s *DefaultChatService) publishEvent(ev RoomEvent) {
	if s.Publisher == nil {
		return
	}
	ev.At = time.Now()

	payload, err := json.Marshal(ev)
	if err != nil {
		utils.GetLogger().Error("failed to marshal room event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Publisher.Publish(ctx, RoomTopic(ev.RoomKey), payload); err != nil {
		utils.GetLogger().Warn("failed to publish room event",
			zap.String("roomKey", ev.RoomKey),
			zap.String("event", ev.Event),
			zap.Error(err),
		)
	}
}
