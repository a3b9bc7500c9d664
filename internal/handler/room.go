package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chat-backend/internal/broker"
	"github.com/iliyamo/chat-backend/internal/event"
	"github.com/iliyamo/chat-backend/internal/model"
	"github.com/iliyamo/chat-backend/internal/repository"
	"github.com/iliyamo/chat-backend/internal/utils"
)

// RoomHandler serves room CRUD and membership endpoints. Joining a room
// publishes user.joined_room so the notifier can confirm the membership by
// email.
type RoomHandler struct {
	Rooms  *repository.RoomRepo
	Users  *repository.UserRepo
	Events *broker.Client
}

func NewRoomHandler(r *repository.RoomRepo, u *repository.UserRepo, ev *broker.Client) *RoomHandler {
	return &RoomHandler{Rooms: r, Users: u, Events: ev}
}

type createRoomReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   uint64 `json:"created_by"`
	IsPrivate   bool   `json:"is_private"`
}
type updateRoomReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
type addMemberReq struct {
	UserID uint64 `json:"user_id"`
	Role   string `json:"role"`
}

type roomResp struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   uint64 `json:"created_by"`
	IsPrivate   bool   `json:"is_private"`
	CreatedAt   string `json:"created_at"`
}

func toRoomResp(r model.Room) roomResp {
	return roomResp{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedBy:   r.CreatedBy,
		IsPrivate:   r.IsPrivate,
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// List returns all rooms.
func (h *RoomHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResp(r))
	}
	return c.JSON(http.StatusOK, out)
}

// GetByID returns one room.
func (h *RoomHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	r, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toRoomResp(r))
}

// Create makes a room owned by created_by.
func (h *RoomHandler) Create(c echo.Context) error {
	var req createRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if !utils.IsValidRoomName(req.Name) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room name (must be 1-100 characters)"})
	}
	if !utils.IsValidRoomDescription(req.Description) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid description (max 500 characters)"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, req.CreatedBy); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	id, err := h.Rooms.Create(ctx, req.Name, req.Description, req.CreatedBy, req.IsPrivate)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	r, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"room":    toRoomResp(r),
		"message": "room created successfully",
	})
}

// ListByUser returns the rooms a user belongs to.
func (h *RoomHandler) ListByUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.ListByUser(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResp(r))
	}
	return c.JSON(http.StatusOK, out)
}

// Members lists the users in a room.
func (h *RoomHandler) Members(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Rooms.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	members, err := h.Rooms.Members(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]userResp, 0, len(members))
	for _, u := range members {
		out = append(out, userResp{ID: u.ID, Username: u.Username, Email: u.Email, IsActive: u.IsActive})
	}
	return c.JSON(http.StatusOK, out)
}

// AddMember joins a user to a room and publishes user.joined_room.
func (h *RoomHandler) AddMember(c echo.Context) error {
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req addMemberReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "member"
	}
	if role != "member" && role != "admin" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role (must be 'member' or 'admin')"})
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

	if err := h.Rooms.AddMember(ctx, u.ID, room.ID, role); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "user is already a member"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add member failed"})
	}

	_ = h.Events.Publish(ctx, event.KeyUserJoinedRoom, event.UserJoinedRoom{
		EventType: event.KeyUserJoinedRoom,
		RoomID:    room.ID,
		UserID:    u.ID,
		RoomName:  room.Name,
		Username:  u.Username,
		UserEmail: u.Email,
		Role:      role,
	})

	return c.JSON(http.StatusCreated, echo.Map{"message": "user added to room"})
}

// Update changes a room's name and description.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req updateRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if !utils.IsValidRoomName(req.Name) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room name (must be 1-100 characters)"})
	}
	if !utils.IsValidRoomDescription(req.Description) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid description (max 500 characters)"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Update(ctx, id, req.Name, req.Description); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrDuplicate):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room updated successfully"})
}

// Delete removes a room.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room deleted successfully"})
}

// RemoveMember removes a user from a room.
func (h *RoomHandler) RemoveMember(c echo.Context) error {
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	userID, err := pathID(c, "userID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.RemoveMember(ctx, userID, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "membership not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove member failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user removed from room"})
}
