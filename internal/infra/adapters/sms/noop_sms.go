package sms

import (
	"context"

	"github.com/rs/zerolog"

	"interpreter-booking/internal/domain/ports/adapter"
)

var _ adapter.SMSGateway = (*NoopGateway)(nil)

// NoopGateway logs instead of sending; used in dev mode.
type NoopGateway struct {
	log *zerolog.Logger
}

func NewNoopGateway(logger *zerolog.Logger) *NoopGateway {
	l := logger.With().Str("component", "NoopSMS").Logger()
	return &NoopGateway{log: &l}
}

func (g *NoopGateway) Send(ctx context.Context, number, message string) (adapter.SMSDeliveryStatus, error) {
	g.log.Info().Str("to", number).Str("message", message).Msg("sms suppressed")
	return adapter.SMSQueued, nil
}
