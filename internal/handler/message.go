package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chat-backend/internal/broker"
	"github.com/iliyamo/chat-backend/internal/event"
	"github.com/iliyamo/chat-backend/internal/model"
	"github.com/iliyamo/chat-backend/internal/repository"
	"github.com/iliyamo/chat-backend/internal/utils"
)

// MessageHandler serves message CRUD endpoints. Creating a message publishes
// message.created with sender and room context baked in, so the notifier
// never has to query the database.
type MessageHandler struct {
	Messages *repository.MessageRepo
	Rooms    *repository.RoomRepo
	Users    *repository.UserRepo
	Events   *broker.Client
}

func NewMessageHandler(m *repository.MessageRepo, r *repository.RoomRepo, u *repository.UserRepo, ev *broker.Client) *MessageHandler {
	return &MessageHandler{Messages: m, Rooms: r, Users: u, Events: ev}
}

type sendMessageReq struct {
	UserID      uint64 `json:"user_id"`
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
}
type updateMessageReq struct {
	Content string `json:"content"`
}

type messageResp struct {
	ID          uint64 `json:"id"`
	RoomID      uint64 `json:"room_id"`
	UserID      uint64 `json:"user_id"`
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
	CreatedAt   string `json:"created_at"`
	EditedAt    string `json:"edited_at,omitempty"`
	IsDeleted   bool   `json:"is_deleted"`
}

func toMessageResp(m model.Message) messageResp {
	resp := messageResp{
		ID:          m.ID,
		RoomID:      m.RoomID,
		UserID:      m.UserID,
		Content:     m.Content,
		MessageType: m.MessageType,
		CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
		IsDeleted:   m.IsDeleted,
	}
	if m.EditedAt != nil {
		resp.EditedAt = m.EditedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// ListByRoom returns a page of messages from a room. Supports ?limit= and
// ?offset=, defaulting to 50/0.
func (h *MessageHandler) ListByRoom(c echo.Context) error {
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	limit, offset := 50, 0
	if s := c.QueryParam("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}
	if s := c.QueryParam("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			offset = n
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	msgs, err := h.Messages.ListByRoom(ctx, roomID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]messageResp, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResp(m))
	}
	return c.JSON(http.StatusOK, out)
}

// Send stores a message in a room and publishes message.created.
func (h *MessageHandler) Send(c echo.Context) error {
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req sendMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !utils.IsValidMessageContent(req.Content) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid message content (must be 1-1000 characters)"})
	}
	if req.MessageType == "" {
		req.MessageType = "text"
	}
	if !utils.IsValidMessageType(req.MessageType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid message type (must be 'text', 'image', or 'file')"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	u, err := h.Users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	member, err := h.Rooms.IsMember(ctx, u.ID, room.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !member {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "user is not a member of the room"})
	}

	m, err := h.Messages.Create(ctx, room.ID, u.ID, req.Content, req.MessageType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create message failed"})
	}

	_ = h.Events.Publish(ctx, event.KeyMessageCreated, event.MessageCreated{
		EventType:      event.KeyMessageCreated,
		MessageID:      m.ID,
		RoomID:         m.RoomID,
		UserID:         m.UserID,
		SenderUsername: u.Username,
		SenderEmail:    u.Email,
		RoomName:       room.Name,
		Content:        m.Content,
		MessageType:    m.MessageType,
		Timestamp:      m.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message_data": toMessageResp(m),
		"message":      "message sent successfully",
	})
}

// GetByID returns one message.
func (h *MessageHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid message id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Messages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "message not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toMessageResp(m))
}

// Update edits a message body. Deleted messages cannot be edited.
func (h *MessageHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid message id"})
	}
	var req updateMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !utils.IsValidMessageContent(req.Content) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid message content (must be 1-1000 characters)"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Messages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "message not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if m.IsDeleted {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot update a deleted message"})
	}

	if err := h.Messages.UpdateContent(ctx, id, req.Content); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	m, err = h.Messages.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message_data": toMessageResp(m),
		"message":      "message updated successfully",
	})
}

// Delete soft-deletes a message.
func (h *MessageHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid message id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Messages.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "message not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "message deleted successfully"})
}
