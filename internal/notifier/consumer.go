package notifier

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultIdleWait bounds each receive so the loop can log liveness and notice
// cancellation. It is not a correctness mechanism.
const DefaultIdleWait = 5 * time.Second

// ErrStreamClosed signals that the broker closed the delivery stream, which
// the process treats as fatal.
var ErrStreamClosed = errors.New("notifier: delivery stream closed")

// Consumer runs the receive-route-deliver loop. Each message is fully handled,
// including any mail transport latency, before the next receive; a slow
// transport throttles the whole consumer, which is acceptable at this volume.
type Consumer struct {
	Dispatcher *Dispatcher
	// ManualAck switches the delivery policy from at-most-once (auto-ack,
	// the historical default: a crash during dispatch loses the message) to
	// at-least-once (ack only after dispatch returns). Must match the
	// autoAck flag the delivery stream was opened with.
	ManualAck bool
	IdleWait  time.Duration
}

// Run consumes deliveries until the context is cancelled or the stream fails.
// Idle timeouts are logged and the wait re-entered; only broker-level errors
// end the loop.
func (c *Consumer) Run(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	idle := c.IdleWait
	if idle <= 0 {
		idle = DefaultIdleWait
	}

	log.Printf("notifier: event processing loop started")
	for {
		select {
		case <-ctx.Done():
			log.Printf("notifier: shutdown requested, stopping consumer")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return ErrStreamClosed
			}
			c.Dispatcher.Dispatch(d.RoutingKey, d.Body)
			if c.ManualAck {
				if err := d.Ack(false); err != nil {
					return fmt.Errorf("ack delivery: %w", err)
				}
			}
		case <-time.After(idle):
			log.Printf("notifier: no messages (timeout), waiting...")
		}
	}
}
