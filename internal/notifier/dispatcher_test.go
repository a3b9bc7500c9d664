package notifier

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/iliyamo/chat-backend/internal/event"
)

// recordingMailer captures every Send call for assertions. Guarded by a mutex
// because the consumer tests read it from the test goroutine while the
// consumer loop appends.
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return m.err
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *recordingMailer) mails() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

func encode(t *testing.T, v any) []byte {
	t.Helper()
	b, err := event.Encode(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return b
}

func TestDispatchWelcomeEmail(t *testing.T) {
	m := &recordingMailer{}
	d := NewDispatcher(m, "")

	d.Dispatch(event.KeyUserRegistered, encode(t, event.UserRegistered{
		EventType: event.KeyUserRegistered,
		UserID:    42,
		Username:  "alice",
		Email:     "alice@example.com",
		Timestamp: "2024-01-01T00:00:00Z",
	}))

	if len(m.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(m.sent))
	}
	mail := m.sent[0]
	if mail.To != "alice@example.com" {
		t.Errorf("wrong recipient: %s", mail.To)
	}
	if !strings.Contains(mail.Subject, "alice") {
		t.Errorf("subject should greet the user by name, got %q", mail.Subject)
	}
	if !strings.Contains(mail.Body, "ID: 42") {
		t.Errorf("body should carry the user ID, got %q", mail.Body)
	}
}

func TestDispatchDropsMissingEmail(t *testing.T) {
	m := &recordingMailer{}
	d := NewDispatcher(m, "")

	// No email field at all: decoder leaves it empty, dispatcher must skip.
	d.Dispatch(event.KeyUserRegistered, []byte(`{"user_id":1,"username":"bob"}`))
	if len(m.sent) != 0 {
		t.Errorf("expected no email for payload without address, got %d", len(m.sent))
	}

	// Present but not an address.
	d.Dispatch(event.KeyUserRegistered, []byte(`{"user_id":1,"username":"bob","email":"not-an-address"}`))
	if len(m.sent) != 0 {
		t.Errorf("expected no email for recipient without '@', got %d", len(m.sent))
	}
}

func TestDispatchMessageDigestRecipient(t *testing.T) {
	payload := encode(t, event.MessageCreated{
		EventType:      event.KeyMessageCreated,
		MessageID:      7,
		RoomID:         3,
		UserID:         2,
		SenderUsername: "carol",
		SenderEmail:    "carol@example.com",
		RoomName:       "general",
		Content:        "hello",
		MessageType:    "text",
		Timestamp:      "2024-01-01T00:00:00Z",
	})

	// Without an override the sender gets the digest.
	m := &recordingMailer{}
	NewDispatcher(m, "").Dispatch(event.KeyMessageCreated, payload)
	if len(m.sent) != 1 || m.sent[0].To != "carol@example.com" {
		t.Fatalf("expected digest to sender, got %+v", m.sent)
	}
	if !strings.Contains(m.sent[0].Subject, `"general"`) {
		t.Errorf("subject should name the room, got %q", m.sent[0].Subject)
	}

	// TEST_EMAIL_RECIPIENT wins over the sender address.
	m = &recordingMailer{}
	NewDispatcher(m, "qa@example.com").Dispatch(event.KeyMessageCreated, payload)
	if len(m.sent) != 1 || m.sent[0].To != "qa@example.com" {
		t.Fatalf("expected digest to test recipient, got %+v", m.sent)
	}
}

func TestDispatchMessageDigestWithoutRecipient(t *testing.T) {
	m := &recordingMailer{}
	d := NewDispatcher(m, "")

	d.Dispatch(event.KeyMessageCreated, []byte(`{"message_id":1,"content":"hi"}`))
	if len(m.sent) != 0 {
		t.Errorf("expected digest without sender email to be dropped, got %d", len(m.sent))
	}
}

func TestDispatchRoomJoinEmail(t *testing.T) {
	m := &recordingMailer{}
	d := NewDispatcher(m, "")

	d.Dispatch(event.KeyUserJoinedRoom, encode(t, event.UserJoinedRoom{
		EventType: event.KeyUserJoinedRoom,
		RoomID:    5,
		UserID:    9,
		RoomName:  "devops",
		Username:  "dave",
		UserEmail: "dave@example.com",
		Role:      "admin",
	}))

	if len(m.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(m.sent))
	}
	mail := m.sent[0]
	if mail.To != "dave@example.com" {
		t.Errorf("wrong recipient: %s", mail.To)
	}
	if !strings.Contains(mail.Subject, `"devops"`) {
		t.Errorf("subject should name the room, got %q", mail.Subject)
	}
	if !strings.Contains(mail.Body, "Your Role: admin") {
		t.Errorf("body should carry the role, got %q", mail.Body)
	}
}

func TestDispatchUnknownRoutingKey(t *testing.T) {
	m := &recordingMailer{}
	d := NewDispatcher(m, "")

	d.Dispatch("room.deleted", []byte(`{"room_id":1}`))
	if len(m.sent) != 0 {
		t.Errorf("expected unknown routing key to be skipped, got %d emails", len(m.sent))
	}
}

func TestDispatchMalformedPayload(t *testing.T) {
	m := &recordingMailer{}
	d := NewDispatcher(m, "")

	// Must not panic and must not send.
	d.Dispatch(event.KeyUserRegistered, []byte("not json"))
	d.Dispatch(event.KeyMessageCreated, []byte("{"))
	d.Dispatch(event.KeyUserJoinedRoom, []byte("[]"))
	if len(m.sent) != 0 {
		t.Errorf("expected malformed payloads to be dropped, got %d emails", len(m.sent))
	}
}

func TestDispatchSwallowsMailerError(t *testing.T) {
	m := &recordingMailer{err: errors.New("smtp: connection refused")}
	d := NewDispatcher(m, "")

	// A transport failure is logged and dropped, never propagated.
	d.Dispatch(event.KeyUserRegistered, encode(t, event.UserRegistered{
		EventType: event.KeyUserRegistered,
		UserID:    1,
		Username:  "erin",
		Email:     "erin@example.com",
		Timestamp: "N/A",
	}))
	if len(m.sent) != 1 {
		t.Errorf("expected one attempted delivery, got %d", len(m.sent))
	}
}

func TestValidRecipient(t *testing.T) {
	cases := []struct {
		addr string
		ok   bool
	}{
		{"a@b.com", true},
		{"weird@localhost", true},
		{"", false},
		{"no-at-sign", false},
	}
	for _, c := range cases {
		if got := validRecipient(c.addr); got != c.ok {
			t.Errorf("validRecipient(%q) = %v, want %v", c.addr, got, c.ok)
		}
	}
}
