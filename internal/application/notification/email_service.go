package notification

import (
	"context"
	"fmt"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/infrastructure/mail"
	"go.uber.org/zap"
)

// Mailer delivers one transactional message. Implemented by the SMTP sender
// and the noop sender in infrastructure/mail.
type Mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// EmailService handles outbound transactional email
type EmailService struct {
	mailer Mailer
	logger *zap.Logger
}

// NewEmailService creates a new email service
func NewEmailService(mailer Mailer, logger *zap.Logger) *EmailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailService{
		mailer: mailer,
		logger: logger,
	}
}

// Send delivers an explicitly requested message. Delivery faults propagate
// to the caller as DELIVERY_ERROR.
func (s *EmailService) Send(ctx context.Context, req *SendEmailRequest) error {
	msg := mail.Message{
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
		HTML:    req.HTML,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Error("email delivery failed",
			zap.Strings("to", req.To),
			zap.String("subject", req.Subject),
			zap.Error(err))
		return shared.WrapDelivery(err)
	}
	return nil
}

// SendWelcome delivers the post-registration notice. Callers treat this as
// fire-and-forget: the returned error is for logging only and must never
// abort the registration that already succeeded.
func (s *EmailService) SendWelcome(ctx context.Context, to, name string) error {
	msg := mail.Message{
		To:      []string{to},
		Subject: "Bem-vindo ao Gestor",
		Body: fmt.Sprintf(
			"Olá %s,\n\nSua conta foi criada com sucesso. Acesse o sistema para começar a cadastrar clientes, fornecedores e produtos.\n\nEquipe Gestor",
			name),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Warn("welcome email not delivered",
			zap.String("to", to),
			zap.Error(err))
		return shared.WrapDelivery(err)
	}
	return nil
}
