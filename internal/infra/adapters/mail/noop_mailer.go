package mail

import (
	"context"

	"github.com/rs/zerolog"

	"interpreter-booking/internal/domain/ports/adapter"
)

var _ adapter.Mailer = (*NoopMailer)(nil)

// NoopMailer logs instead of sending; used in dev mode.
type NoopMailer struct {
	log *zerolog.Logger
}

func NewNoopMailer(logger *zerolog.Logger) *NoopMailer {
	l := logger.With().Str("component", "NoopMailer").Logger()
	return &NoopMailer{log: &l}
}

func (m *NoopMailer) Send(ctx context.Context, toEmail, toName, subject string, template adapter.MailTemplate, payload map[string]any) error {
	m.log.Info().Str("to", toEmail).Str("subject", subject).Str("template", string(template)).Msg("mail suppressed")
	return nil
}
