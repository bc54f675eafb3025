package service

import (
	"context"
	"fmt"
	"log"
	"net/smtp"

	"github.com/flintdate/flint-backend/internal/config"
)

// Mailer delivers account emails (generated passwords, password resets).
// Delivery is a collaborator concern; auth flows only depend on this interface.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPMailer(cfg *config.Config) *smtpMailer {
	return &smtpMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.SMTPFrom,
	}
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body))

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	return smtp.SendMail(addr, auth, m.from, []string{to}, msg)
}

// logMailer is used in development and tests when no SMTP host is configured.
// It logs the subject but never the body, which may contain a raw password.
type logMailer struct{}

func NewLogMailer() *logMailer {
	return &logMailer{}
}

func (m *logMailer) Send(ctx context.Context, to, subject, body string) error {
	log.Printf("mailer: would send %q to %s", subject, to)
	return nil
}

// NewMailer picks the SMTP implementation when a host is configured and the
// log-only fallback otherwise.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return NewLogMailer()
	}
	return NewSMTPMailer(cfg)
}
