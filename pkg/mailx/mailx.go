// Package mailx delivers account emails (OTP codes, password reset links).
// The service depends on the Mailer interface only; delivery failures are the
// caller's problem to surface, never mailx's to retry.
package mailx

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer sends a single HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// SMTPConfig configures the SMTP sender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // display From header, e.g. `"Parley" <no-reply@parley.chat>`
}

// SMTPMailer sends mail over authenticated SMTP with STARTTLS (port 587
// style submission).
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	msg := buildMessage(m.cfg.From, to, subject, htmlBody, textBody)

	if err := smtp.SendMail(addr, auth, m.cfg.Username, []string{to}, msg); err != nil {
		return fmt.Errorf("mailx: send to %s failed: %w", to, err)
	}
	return nil
}

// buildMessage assembles a multipart/alternative MIME message so clients can
// fall back to the text part.
func buildMessage(from, to, subject, htmlBody, textBody string) []byte {
	const boundary = "parley-mail-boundary"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(textBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}

// LogMailer logs instead of sending. Used in dev and in the e2e containers
// where no SMTP relay exists; the OTP lands in the service log.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) Send(_ context.Context, to, subject, _ string, textBody string) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("mail suppressed (log mode)",
		"to", to,
		"subject", subject,
		"body", textBody,
	)
	return nil
}
