// Package notifier implements the notification service: the queue consumer
// loop, the per-event dispatcher and the outbound mail transports.
package notifier

import (
	"log"
	"time"

	gomail "gopkg.in/gomail.v2"
)

// Mailer delivers one email. Chosen once at startup: SMTP when credentials are
// configured, simulation otherwise. The dispatch path never branches on
// configuration itself.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a real SMTP server.
type SMTPMailer struct {
	Host string
	Port int
	User string
	Pass string
}

// NewSMTPMailer builds an SMTP transport. The User doubles as the From
// address.
func NewSMTPMailer(host string, port int, user, pass string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, User: user, Pass: pass}
}

// Send composes a plain-text message and performs the SMTP transaction with
// STARTTLS. One dial per message keeps the transport stateless; volume is low
// enough that connection reuse is not worth the bookkeeping.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.User)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.Host, m.Port, m.User, m.Pass)
	if err := d.DialAndSend(msg); err != nil {
		return err
	}
	log.Printf("notifier: email sent to %s", to)
	return nil
}

// SimulatedMailer stands in when SMTP credentials are absent. It logs the
// message that would have been sent and sleeps to mimic delivery latency, so
// the pipeline can be exercised end to end without credentials.
type SimulatedMailer struct {
	Delay time.Duration
}

// NewSimulatedMailer returns a simulation transport with the historical 1.5 s
// artificial delay.
func NewSimulatedMailer() *SimulatedMailer {
	return &SimulatedMailer{Delay: 1500 * time.Millisecond}
}

func (m *SimulatedMailer) Send(to, subject, body string) error {
	log.Printf("notifier: [simulated] To: %s", to)
	log.Printf("notifier: [simulated] Subject: %s", subject)
	log.Printf("notifier: [simulated] Body:\n%s", body)
	time.Sleep(m.Delay)
	log.Printf("notifier: [simulated] email delivered (SMTP not configured)")
	return nil
}
