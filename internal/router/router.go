package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/chat-backend/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/chat-backend/internal/middleware" // import middleware for JWT authentication
)

// Handlers groups everything the router wires up. All fields must be
// non-nil except Translation, which may be nil when TRANSLATE_API_URL is
// unset; the route is then simply not registered.
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	Rooms       *handler.RoomHandler
	Messages    *handler.MessageHandler
	Translation *handler.TranslationHandler
}

// Register wires all API routes onto the provided Echo instance. Reads are
// public; anything that mutates state sits behind JWT auth.
func Register(e *echo.Echo, h Handlers, jwtSecret string) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")

	// Unauthenticated: account creation, login and reads.
	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login)
	api.GET("/users", h.Users.List)
	api.GET("/users/:id", h.Users.GetByID)
	api.GET("/rooms", h.Rooms.List)
	api.GET("/rooms/:id", h.Rooms.GetByID)
	api.GET("/rooms/user/:id", h.Rooms.ListByUser)
	api.GET("/rooms/:id/members", h.Rooms.Members)
	api.GET("/rooms/:id/messages", h.Messages.ListByRoom)
	api.GET("/messages/:id", h.Messages.GetByID)

	// Authenticated: every state mutation requires a valid access token.
	auth := api.Group("", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", h.Auth.Me)
	auth.PATCH("/users/:id", h.Users.Update)
	auth.DELETE("/users/:id", h.Users.Delete)
	auth.POST("/rooms", h.Rooms.Create)
	auth.PATCH("/rooms/:id", h.Rooms.Update)
	auth.DELETE("/rooms/:id", h.Rooms.Delete)
	auth.POST("/rooms/:id/members", h.Rooms.AddMember)
	auth.DELETE("/rooms/:id/members/:userID", h.Rooms.RemoveMember)
	auth.POST("/rooms/:id/messages", h.Messages.Send)
	auth.PATCH("/messages/:id", h.Messages.Update)
	auth.DELETE("/messages/:id", h.Messages.Delete)

	if h.Translation != nil {
		auth.POST("/translate", h.Translation.Translate)
	}
}
