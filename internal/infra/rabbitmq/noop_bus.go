package rabbitmq

import (
	"context"

	"github.com/rs/zerolog"

	"interpreter-booking/internal/domain/ports/adapter"
)

var _ adapter.EventBus = (*NoopBus)(nil)

// NoopBus logs instead of publishing; used in dev mode.
type NoopBus struct {
	log *zerolog.Logger
}

func NewNoopBus(logger *zerolog.Logger) *NoopBus {
	l := logger.With().Str("component", "NoopBus").Logger()
	return &NoopBus{log: &l}
}

func (b *NoopBus) Publish(ctx context.Context, e adapter.Event) error {
	b.log.Info().Str("kind", string(e.Kind)).Str("job_id", e.JobID).Msg("event suppressed")
	return nil
}
