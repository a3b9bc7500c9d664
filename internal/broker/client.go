// Package broker owns the RabbitMQ connection shared by the publisher and the
// notification consumer. The connection is opened once at process start,
// injected where needed and closed on shutdown; nothing here is package-global.
package broker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/chat-backend/internal/event"
)

// ErrNotConnected is returned by Publish when the client was created in
// degraded mode (broker unreachable at startup) or has been closed.
var ErrNotConnected = errors.New("broker: not connected")

// Client wraps one AMQP connection and one channel. A single channel is not
// safe for concurrent publishes, so every publish holds mu. Request handlers
// all share this one client.
type Client struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Connect dials the broker and opens a channel. Callers decide how to treat a
// failure: the API server degrades to a non-publishing client, the notifier
// exits.
func Connect(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &Client{conn: conn, ch: ch}, nil
}

// EnsureTopology declares the chat_events topic exchange, the notification
// queue and the three bindings. Declares are idempotent, so both processes run
// this on every startup. Any failure (auth, type mismatch with a pre-existing
// exchange) is returned for the caller to treat as fatal.
func (c *Client) EnsureTopology() error {
	if c == nil || c.ch == nil {
		return ErrNotConnected
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ch.ExchangeDeclare(
		event.Exchange, // name
		"topic",        // kind
		true,           // durable
		false,          // autoDelete
		false,          // internal
		false,          // noWait
		nil,            // args
	); err != nil {
		return fmt.Errorf("declare exchange %s: %w", event.Exchange, err)
	}

	if _, err := c.ch.QueueDeclare(
		event.Queue, // name
		true,        // durable
		false,       // autoDelete
		false,       // exclusive
		false,       // noWait
		nil,         // args
	); err != nil {
		return fmt.Errorf("declare queue %s: %w", event.Queue, err)
	}

	for _, key := range event.RoutingKeys {
		if err := c.ch.QueueBind(event.Queue, key, event.Exchange, false, nil); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return nil
}

// Publish serializes the payload and publishes it to the chat_events exchange
// under the given routing key. Messages are marked persistent so they survive
// a broker restart while queued. Errors are logged here and returned; callers
// on the write path ignore them so a broker outage never fails the originating
// request.
func (c *Client) Publish(ctx context.Context, routingKey string, payload any) error {
	if c == nil || c.ch == nil {
		log.Printf("broker: publish %s skipped: not connected", routingKey)
		return ErrNotConnected
	}

	body, err := event.Encode(payload)
	if err != nil {
		log.Printf("broker: marshal %s failed: %v", routingKey, err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.ch.PublishWithContext(ctx,
		event.Exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
	if err != nil {
		log.Printf("broker: publish %s failed: %v", routingKey, err)
		return err
	}
	return nil
}

// Consume opens a delivery stream from the notification queue. When autoAck is
// true the broker considers a message delivered the moment it is handed over,
// before dispatch runs; with autoAck false the consumer acks after processing.
func (c *Client) Consume(autoAck bool) (<-chan amqp.Delivery, error) {
	if c == nil || c.ch == nil {
		return nil, ErrNotConnected
	}
	return c.ch.Consume(
		event.Queue,
		"",      // consumer tag, broker-assigned
		autoAck, // autoAck
		false,   // exclusive
		false,   // noLocal
		false,   // noWait
		nil,     // args
	)
}

// Close releases the channel and connection.
func (c *Client) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ch != nil {
		_ = c.ch.Close()
		c.ch = nil
	}
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}
