package event

import "encoding/json"

// Encode serializes a payload for transit. Messages travel as UTF-8 JSON with
// content type application/json.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// The decoders below are deliberately permissive: publishers enforce no schema,
// so missing fields are filled with the same defaults the consumer has always
// applied. Email fields default to empty and are rejected later by recipient
// validation, never here.

// DecodeUserRegistered parses a user.registered payload.
func DecodeUserRegistered(body []byte) (UserRegistered, error) {
	var ev UserRegistered
	if err := json.Unmarshal(body, &ev); err != nil {
		return UserRegistered{}, err
	}
	ev.EventType = KeyUserRegistered
	if ev.Username == "" {
		ev.Username = "User"
	}
	if ev.Timestamp == "" {
		ev.Timestamp = "N/A"
	}
	return ev, nil
}

// DecodeMessageCreated parses a message.created payload.
func DecodeMessageCreated(body []byte) (MessageCreated, error) {
	var ev MessageCreated
	if err := json.Unmarshal(body, &ev); err != nil {
		return MessageCreated{}, err
	}
	ev.EventType = KeyMessageCreated
	if ev.SenderUsername == "" {
		ev.SenderUsername = "Unknown User"
	}
	if ev.RoomName == "" {
		ev.RoomName = "Unknown Room"
	}
	if ev.MessageType == "" {
		ev.MessageType = "text"
	}
	if ev.Timestamp == "" {
		ev.Timestamp = "N/A"
	}
	return ev, nil
}

// DecodeUserJoinedRoom parses a user.joined_room payload.
func DecodeUserJoinedRoom(body []byte) (UserJoinedRoom, error) {
	var ev UserJoinedRoom
	if err := json.Unmarshal(body, &ev); err != nil {
		return UserJoinedRoom{}, err
	}
	ev.EventType = KeyUserJoinedRoom
	if ev.RoomName == "" {
		ev.RoomName = "Unknown Room"
	}
	if ev.Username == "" {
		ev.Username = "User"
	}
	if ev.Role == "" {
		ev.Role = "member"
	}
	return ev, nil
}
