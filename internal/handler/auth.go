package handler

import (
	"context" // provides context with cancellation for DB calls
	"errors"
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/chat-backend/internal/broker"
	"github.com/iliyamo/chat-backend/internal/config"
	"github.com/iliyamo/chat-backend/internal/event"
	"github.com/iliyamo/chat-backend/internal/repository"
	"github.com/iliyamo/chat-backend/internal/utils"
)

// AuthHandler bundles dependencies for registration and login endpoints.
// Events holds the shared broker client; it may be a degraded client when
// the broker was unreachable at startup, in which case publishes are logged
// and dropped without affecting the request.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Events *broker.Client
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, ev *broker.Client) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Events: ev}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register: validate input, create user, publish user.registered.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if !utils.IsValidUsername(req.Username) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid username format"})
	}
	if !utils.IsValidEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email format"})
	}
	if !utils.IsValidPassword(req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "password must be at least 8 characters long and contain both letters and numbers",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	uid, err := h.Users.Create(ctx, req.Username, req.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	// Fire-and-forget: the registration is already committed, a broker
	// outage only costs the welcome email.
	_ = h.Events.Publish(ctx, event.KeyUserRegistered, event.UserRegistered{
		EventType: event.KeyUserRegistered,
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Timestamp: u.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"user":    userPart{ID: u.ID, Username: u.Username, Email: u.Email},
		"message": "user registered successfully",
	})
}

// Login: verify credentials, stamp last_login and return an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if !u.IsActive {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account is disabled"})
	}

	_ = h.Users.TouchLastLogin(ctx, u.ID)

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Username, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":   userPart{ID: u.ID, Username: u.Username, Email: u.Email},
		"access": tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Me: simple protected endpoint.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id":  c.Get("user_id"),
		"username": c.Get("username"),
	})
}
