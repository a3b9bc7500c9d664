package main // Entry point for the notification service

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iliyamo/chat-backend/internal/broker"
	"github.com/iliyamo/chat-backend/internal/config"
	"github.com/iliyamo/chat-backend/internal/event"
	"github.com/iliyamo/chat-backend/internal/notifier"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadNotifier()

	// Pick the mail transport once; the dispatcher never checks
	// configuration again.
	var mailer notifier.Mailer
	if cfg.SMTPConfigured() {
		log.Printf("notifier: SMTP configured, server %s:%d user %s", cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser)
		mailer = notifier.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	} else {
		log.Printf("notifier: SMTP credentials not set (SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASSWORD); email sending will be simulated")
		mailer = notifier.NewSimulatedMailer()
	}

	// Unlike the API server, the notifier has no degraded mode for the
	// broker itself: without a queue there is nothing to consume.
	client, err := broker.Connect(config.AMQPURL())
	if err != nil {
		log.Fatalf("notifier: broker connect failed: %v", err)
	}
	defer client.Close()

	if err := client.EnsureTopology(); err != nil {
		log.Fatalf("notifier: broker topology setup failed: %v", err)
	}
	log.Printf("notifier: topology ensured, consuming from %s", event.Queue)

	deliveries, err := client.Consume(!cfg.ManualAck)
	if err != nil {
		log.Fatalf("notifier: consume failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := &notifier.Consumer{
		Dispatcher: notifier.NewDispatcher(mailer, cfg.TestRecipient),
		ManualAck:  cfg.ManualAck,
	}
	if err := consumer.Run(ctx, deliveries); err != nil {
		client.Close()
		log.Printf("notifier: consumer terminated: %v", err)
		os.Exit(1)
	}
}
