// Package mail delivers transactional email over SMTP.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/gestor/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Message is a single outbound email
type Message struct {
	To      []string
	Subject string
	Body    string
	HTML    bool
}

// SMTPSender sends mail through a configured SMTP relay
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *zap.Logger

	// send is swappable for tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates a sender from configuration
func NewSMTPSender(cfg config.MailConfig, logger *zap.Logger) *SMTPSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		logger:   logger,
		send:     smtp.SendMail,
	}
}

// Send delivers the message, honoring context cancellation before dialing
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if err := s.send(addr, auth, s.from, msg.To, s.encode(msg)); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	s.logger.Info("Email sent",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

func (s *SMTPSender) encode(msg Message) []byte {
	contentType := "text/plain; charset=utf-8"
	if msg.HTML {
		contentType = "text/html; charset=utf-8"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s\r\n", contentType)
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

// NoopSender discards all mail. Used when mail delivery is disabled.
type NoopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates a sender that logs and drops messages
func NewNoopSender(logger *zap.Logger) *NoopSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoopSender{logger: logger}
}

// Send logs the message and succeeds without delivering anything
func (s *NoopSender) Send(_ context.Context, msg Message) error {
	s.logger.Debug("Mail delivery disabled, dropping message",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
