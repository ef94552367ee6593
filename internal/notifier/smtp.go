package notifier

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender creates a sender for host:port authenticating as user.
func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

// Send dials the relay for every message. ctx bounds the wait, the dial itself
// is not interruptible.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sending mail to %s: %w", msg.To, ctx.Err())
	}
}

// LogSender writes messages to the log instead of sending them, for development.
type LogSender struct {
	logf func(format string, args ...interface{})
}

// NewLogSender creates a sender that only logs.
func NewLogSender(logf func(format string, args ...interface{})) *LogSender {
	return &LogSender{logf: logf}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logf("mail to=%s subject=%q", msg.To, msg.Subject)
	return nil
}
