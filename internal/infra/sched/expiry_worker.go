package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"interpreter-booking/internal/infra/metrics"
	"interpreter-booking/internal/usecase"
)

// ExpiryWorker periodically times out pending bookings whose offer window
// has passed.
type ExpiryWorker struct {
	interval time.Duration
	bookings *usecase.BookingOrchestrator
	log      *zerolog.Logger
}

func NewExpiryWorker(interval time.Duration, bookings *usecase.BookingOrchestrator, logger *zerolog.Logger) *ExpiryWorker {
	exprLog := logger.With().Str("component", "ExpiryWorker").Logger()
	return &ExpiryWorker{
		interval: interval,
		bookings: bookings,
		log:      &exprLog,
	}
}

func (w *ExpiryWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting expiry worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping expiry worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.bookings.ExpirePending(ctx)
			if err != nil {
				w.log.Error().Err(err).Msg("expiry worker error")
			}
			if n > 0 {
				metrics.IncJobsExpired(n)
				w.log.Info().Int("count", n).Msg("pending bookings timed out")
			}
		}
	}
}
