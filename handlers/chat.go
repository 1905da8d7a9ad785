package handlers

import (
	"net/http"

	"fixitnow/middleware"
	"fixitnow/models"
	"fixitnow/services/chat"
	"fixitnow/utils"

	"github.com/gin-gonic/gin"
)

// ChatHandler exposes the per-booking conversation channel over HTTP.
type ChatHandler struct {
	Service chat.ChatService
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc chat.ChatService) *ChatHandler {
	return &ChatHandler{Service: svc}
}

// CreateOrGetRoom handles POST /api/chat/room/:bookingId.
func (h *ChatHandler) CreateOrGetRoom(c *gin.Context) {
	room, err := h.Service.CreateOrGetRoom(c.Param("bookingId"), middleware.ActorID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Chat room ready",
		"chatRoom": room,
	})
}

// ListRooms handles GET /api/chat/rooms.
func (h *ChatHandler) ListRooms(c *gin.Context) {
	rooms, err := h.Service.ListRoomsForUser(middleware.ActorID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetMessages handles GET /api/chat/room/:roomId/messages. The default
// page=0/size=50 request returns the plain recent-message list for initial
// load; anything else is paginated.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	roomKey := c.Param("roomId")
	actorID := middleware.ActorID(c)
	page := queryInt(c, "page", 0)
	size := queryInt(c, "size", chat.DefaultRecentMessageLimit)

	if page == 0 && size == chat.DefaultRecentMessageLimit {
		messages, err := h.Service.GetRecentMessages(roomKey, actorID, size)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, messages)
		return
	}

	result, err := h.Service.GetMessagesPaginated(roomKey, actorID, models.PageRequest{Page: page, Size: size})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SendMessage handles POST /api/chat/send.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	msg, err := h.Service.SendMessage(req.RoomKey, middleware.ActorID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Message sent successfully",
		"chatMessage": msg,
	})
}

// MarkRead handles PUT /api/chat/room/:roomId/mark-read.
func (h *ChatHandler) MarkRead(c *gin.Context) {
	if err := h.Service.MarkRead(c.Param("roomId"), middleware.ActorID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Messages marked as read"})
}

// UnreadCount handles GET /api/chat/room/:roomId/unread-count.
func (h *ChatHandler) UnreadCount(c *gin.Context) {
	count, err := h.Service.UnreadCount(c.Param("roomId"), middleware.ActorID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

// NotifyTyping handles POST /api/chat/room/:roomId/typing.
func (h *ChatHandler) NotifyTyping(c *gin.Context) {
	if err := h.Service.NotifyTyping(c.Param("roomId"), middleware.ActorID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// NotifyJoin handles POST /api/chat/room/:roomId/join.
func (h *ChatHandler) NotifyJoin(c *gin.Context) {
	if err := h.Service.NotifyJoin(c.Param("roomId"), middleware.ActorID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
