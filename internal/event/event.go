// Package event defines the broker topology names and the message payloads
// exchanged between the API server and the notification service.
package event

// Broker topology. The API server publishes to the exchange; the notifier
// binds the queue to it with the routing keys below. Both sides declare the
// same topology so either process can start first.
const (
	Exchange = "chat_events"        // topic exchange, durable
	Queue    = "notification_queue" // durable, shared between consumer instances
)

// Routing keys for the three domain events. Anything published under another
// key is not bound to the notification queue and never reaches the notifier.
const (
	KeyUserRegistered = "user.registered"
	KeyMessageCreated = "message.created"
	KeyUserJoinedRoom = "user.joined_room"
)

// RoutingKeys lists every key the notification queue is bound to.
var RoutingKeys = []string{KeyUserRegistered, KeyMessageCreated, KeyUserJoinedRoom}

// UserRegistered is published after a new user row is committed. It carries
// enough data for the welcome email so the notifier never queries the
// database.
type UserRegistered struct {
	EventType string `json:"event_type"`
	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
}

// MessageCreated is published after a message is stored in a room.
type MessageCreated struct {
	EventType      string `json:"event_type"`
	MessageID      uint64 `json:"message_id"`
	RoomID         uint64 `json:"room_id"`
	UserID         uint64 `json:"user_id"`
	SenderUsername string `json:"sender_username"`
	SenderEmail    string `json:"sender_email"`
	RoomName       string `json:"room_name"`
	Content        string `json:"content"`
	MessageType    string `json:"message_type"`
	Timestamp      string `json:"timestamp"`
}

// UserJoinedRoom is published after a membership row is created.
type UserJoinedRoom struct {
	EventType string `json:"event_type"`
	RoomID    uint64 `json:"room_id"`
	UserID    uint64 `json:"user_id"`
	RoomName  string `json:"room_name"`
	Username  string `json:"username"`
	UserEmail string `json:"user_email"`
	Role      string `json:"role"`
}
