package push

import (
	"context"

	"github.com/rs/zerolog"

	"interpreter-booking/internal/domain/ports/adapter"
)

var _ adapter.PushGateway = (*NoopGateway)(nil)

// NoopGateway logs instead of delivering; used in dev mode.
type NoopGateway struct {
	log *zerolog.Logger
}

func NewNoopGateway(logger *zerolog.Logger) *NoopGateway {
	l := logger.With().Str("component", "NoopPush").Logger()
	return &NoopGateway{log: &l}
}

func (g *NoopGateway) Deliver(ctx context.Context, n adapter.PushNotification) error {
	g.log.Info().Str("job_id", n.JobID).Str("type", string(n.Type)).
		Int("recipients", len(n.Recipients)).Msg("push suppressed")
	return nil
}
