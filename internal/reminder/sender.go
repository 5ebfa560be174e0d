package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strconv"

	"github.com/jordan-wright/email"
)

// Sender delivers a rendered reminder.
type Sender interface {
	Send(ctx context.Context, r *Reminder) error
}

// SMTPConfig configures the outgoing mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends reminders as HTML email over SMTP.
type SMTPSender struct {
	cfg  SMTPConfig
	auth smtp.Auth
	send func(e *email.Email, addr string, a smtp.Auth) error
}

// NewSMTPSender creates a sender. Authentication is skipped when no
// username is configured.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPSender{
		cfg:  cfg,
		auth: auth,
		send: func(e *email.Email, addr string, a smtp.Auth) error { return e.Send(addr, a) },
	}
}

// Send delivers the reminder. It is not retried.
func (s *SMTPSender) Send(ctx context.Context, r *Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = s.cfg.From
	e.To = []string{r.To}
	e.Subject = r.Subject
	e.HTML = []byte(r.Body)

	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)
	if err := s.send(e, addr, s.auth); err != nil {
		slog.Error("Failed to send reminder", "to", r.To, "error", err)
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	slog.Info("Reminder sent", "to", r.To, "subject", r.Subject)
	return nil
}

// LogSender logs reminders instead of sending them. Used when no SMTP
// server is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, r *Reminder) error {
	slog.Info("Reminder (not sent, SMTP disabled)", "to", r.To, "subject", r.Subject, "amount", r.Amount.StringFixed(2))
	return nil
}
