package broker

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/chat-backend/internal/event"
)

// A nil client is the degraded mode the API server runs in when the broker is
// unreachable at startup. Every operation must fail soft with ErrNotConnected
// instead of panicking.

func TestNilClientPublish(t *testing.T) {
	var c *Client
	err := c.Publish(context.Background(), event.KeyUserRegistered, event.UserRegistered{
		EventType: event.KeyUserRegistered,
		UserID:    1,
	})
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestNilClientEnsureTopology(t *testing.T) {
	var c *Client
	if err := c.EnsureTopology(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestNilClientConsume(t *testing.T) {
	var c *Client
	if _, err := c.Consume(true); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestNilClientClose(t *testing.T) {
	var c *Client
	c.Close() // must not panic
}

func TestClosedClientPublish(t *testing.T) {
	c := &Client{}
	err := c.Publish(context.Background(), event.KeyMessageCreated, event.MessageCreated{MessageID: 1})
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected on channel-less client, got %v", err)
	}
}
