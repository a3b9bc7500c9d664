package event

import (
	"encoding/json"
	"testing"
)

func TestEncodeDecodeUserRegisteredRoundTrip(t *testing.T) {
	in := UserRegistered{
		EventType: KeyUserRegistered,
		UserID:    1,
		Username:  "alice",
		Email:     "alice@example.com",
		Timestamp: "2024-01-01T00:00:00Z",
	}
	body, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeUserRegistered(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestDecodeUserRegisteredDefaults(t *testing.T) {
	out, err := DecodeUserRegistered([]byte(`{"user_id":7}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Username != "User" {
		t.Errorf("expected default username 'User', got %q", out.Username)
	}
	if out.Timestamp != "N/A" {
		t.Errorf("expected default timestamp 'N/A', got %q", out.Timestamp)
	}
	if out.Email != "" {
		t.Errorf("expected missing email to stay empty, got %q", out.Email)
	}
	if out.EventType != KeyUserRegistered {
		t.Errorf("expected event type %q, got %q", KeyUserRegistered, out.EventType)
	}
}

func TestDecodeMessageCreatedDefaults(t *testing.T) {
	out, err := DecodeMessageCreated([]byte(`{"message_id":3,"content":"hi"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.SenderUsername != "Unknown User" {
		t.Errorf("expected default sender, got %q", out.SenderUsername)
	}
	if out.RoomName != "Unknown Room" {
		t.Errorf("expected default room name, got %q", out.RoomName)
	}
	if out.MessageType != "text" {
		t.Errorf("expected default message type 'text', got %q", out.MessageType)
	}
	if out.SenderEmail != "" {
		t.Errorf("expected missing sender email to stay empty, got %q", out.SenderEmail)
	}
}

func TestDecodeUserJoinedRoomDefaults(t *testing.T) {
	out, err := DecodeUserJoinedRoom([]byte(`{"room_id":2,"user_id":5}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Role != "member" {
		t.Errorf("expected default role 'member', got %q", out.Role)
	}
	if out.RoomName != "Unknown Room" {
		t.Errorf("expected default room name, got %q", out.RoomName)
	}
	if out.Username != "User" {
		t.Errorf("expected default username, got %q", out.Username)
	}
}

func TestDecodeRejectsMalformedPayload(t *testing.T) {
	if _, err := DecodeUserRegistered([]byte("not json")); err == nil {
		t.Error("expected error for malformed user.registered payload")
	}
	if _, err := DecodeMessageCreated([]byte("{")); err == nil {
		t.Error("expected error for malformed message.created payload")
	}
	if _, err := DecodeUserJoinedRoom([]byte("[]")); err == nil {
		t.Error("expected error for non-object user.joined_room payload")
	}
}

func TestEncodeProducesWireFieldNames(t *testing.T) {
	body, err := Encode(MessageCreated{EventType: KeyMessageCreated, MessageID: 9, RoomName: "general"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"event_type", "message_id", "room_name", "sender_email"} {
		if _, ok := m[key]; !ok {
			t.Errorf("wire payload missing field %q", key)
		}
	}
}
