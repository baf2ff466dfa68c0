// Package mail sends outbound email over SMTP. It backs the contact-form
// notification and reply flows.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// SMTPConfig holds the SMTP server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends email through a plain-auth SMTP server.
type SMTPMailer struct {
	config SMTPConfig
	logger *zap.Logger
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(cfg SMTPConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{config: cfg, logger: logger}
}

// Send delivers one HTML email to a single recipient. The context is
// currently advisory: net/smtp has no context support, so cancellation is
// checked only before dialing.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if to == "" {
		return fmt.Errorf("recipient cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	headers := []string{
		"From: " + m.config.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="utf-8"`,
	}
	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(message)); err != nil {
		m.logger.Error("Failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("smtp send to '%s' failed: %w", to, err)
	}
	return nil
}
