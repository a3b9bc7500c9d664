package notifier

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/iliyamo/chat-backend/internal/event"
)

// Dispatcher routes a decoded event to the matching email template and hands
// the result to the mail transport. Every failure inside Dispatch is logged
// and dropped: a malformed payload or a refused recipient must never unwind
// the consumer loop.
type Dispatcher struct {
	Mailer Mailer
	// TestRecipient overrides the message.created recipient when set
	// (TEST_EMAIL_RECIPIENT). Lets a deployment route digests to one inbox
	// while testing against real traffic.
	TestRecipient string
}

func NewDispatcher(m Mailer, testRecipient string) *Dispatcher {
	return &Dispatcher{Mailer: m, TestRecipient: testRecipient}
}

// Dispatch handles one delivery. Unknown routing keys are logged and skipped;
// the queue bindings make them rare but nothing stops a producer from using
// the exchange with new keys before this service learns them.
func (d *Dispatcher) Dispatch(routingKey string, body []byte) {
	log.Printf("notifier: event %s at %s: %s", routingKey, time.Now().UTC().Format(time.RFC3339), body)

	switch routingKey {
	case event.KeyUserRegistered:
		d.sendWelcome(body)
	case event.KeyMessageCreated:
		d.sendMessageDigest(body)
	case event.KeyUserJoinedRoom:
		d.sendRoomJoin(body)
	default:
		log.Printf("notifier: unknown event type %q, skipping", routingKey)
	}
}

// validRecipient applies the minimal address check used before any delivery
// attempt: non-empty and contains an "@".
func validRecipient(addr string) bool {
	return addr != "" && strings.Contains(addr, "@")
}

func (d *Dispatcher) sendWelcome(body []byte) {
	ev, err := event.DecodeUserRegistered(body)
	if err != nil {
		log.Printf("notifier: bad user.registered payload %q: %v", body, err)
		return
	}
	if !validRecipient(ev.Email) {
		log.Printf("notifier: user.registered without usable email, skipping")
		return
	}

	subject := fmt.Sprintf("Welcome to Chat System, %s!", ev.Username)
	msg := fmt.Sprintf(
		"Hello %s!\n\n"+
			"Your account (ID: %d) has been successfully created.\n\n"+
			"---\n"+
			"Your email: %s",
		ev.Username, ev.UserID, ev.Email)

	if err := d.Mailer.Send(ev.Email, subject, msg); err != nil {
		log.Printf("notifier: welcome email to %s failed: %v", ev.Email, err)
		return
	}
	log.Printf("notifier: welcome email delivered to %s", ev.Email)
}

func (d *Dispatcher) sendMessageDigest(body []byte) {
	ev, err := event.DecodeMessageCreated(body)
	if err != nil {
		log.Printf("notifier: bad message.created payload %q: %v", body, err)
		return
	}

	to := ev.SenderEmail
	if d.TestRecipient != "" {
		to = d.TestRecipient
		log.Printf("notifier: using test recipient %s", to)
	}
	if !validRecipient(to) {
		log.Printf("notifier: message.created without usable recipient, skipping")
		return
	}

	subject := fmt.Sprintf("New message in %q", ev.RoomName)
	msg := fmt.Sprintf(
		"Hello!\n\n"+
			"You have a new message in one of your chat rooms.\n\n"+
			"Room: %s (ID: %d)\n"+
			"From: %s\n"+
			"Message Type: %s\n\n"+
			"Message:\n"+
			"%q\n\n"+
			"---\n"+
			"Message ID: %d\n"+
			"Timestamp: %s",
		ev.RoomName, ev.RoomID, ev.SenderUsername, ev.MessageType,
		ev.Content, ev.MessageID, ev.Timestamp)

	if err := d.Mailer.Send(to, subject, msg); err != nil {
		log.Printf("notifier: message digest to %s failed: %v", to, err)
		return
	}
	log.Printf("notifier: message digest delivered to %s", to)
}

func (d *Dispatcher) sendRoomJoin(body []byte) {
	ev, err := event.DecodeUserJoinedRoom(body)
	if err != nil {
		log.Printf("notifier: bad user.joined_room payload %q: %v", body, err)
		return
	}
	if !validRecipient(ev.UserEmail) {
		log.Printf("notifier: user.joined_room without usable email, skipping")
		return
	}

	subject := fmt.Sprintf("You've been added to %q!", ev.RoomName)
	msg := fmt.Sprintf(
		"Hello %s!\n\n"+
			"You have been added to a new chat room.\n\n"+
			"Room Details:\n"+
			"Name: %s\n"+
			"Room ID: %d\n"+
			"Your Role: %s\n\n"+
			"---\n"+
			"User ID: %d\n"+
			"Email: %s",
		ev.Username, ev.RoomName, ev.RoomID, ev.Role, ev.UserID, ev.UserEmail)

	if err := d.Mailer.Send(ev.UserEmail, subject, msg); err != nil {
		log.Printf("notifier: room join email to %s failed: %v", ev.UserEmail, err)
		return
	}
	log.Printf("notifier: room join email delivered to %s", ev.UserEmail)
}
