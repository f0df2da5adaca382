// File: cmd/app/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interpreter-booking/internal/config"
	"interpreter-booking/internal/domain/ports/adapter"
	mailAdapter "interpreter-booking/internal/infra/adapters/mail"
	pushAdapter "interpreter-booking/internal/infra/adapters/push"
	smsAdapter "interpreter-booking/internal/infra/adapters/sms"
	"interpreter-booking/internal/infra/clock"
	pg "interpreter-booking/internal/infra/db/postgres"
	"interpreter-booking/internal/infra/i18n"
	"interpreter-booking/internal/infra/logging"
	"interpreter-booking/internal/infra/metrics"
	"interpreter-booking/internal/infra/rabbitmq"
	red "interpreter-booking/internal/infra/redis"
	"interpreter-booking/internal/infra/sched"
	"interpreter-booking/internal/infra/web"
	"interpreter-booking/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.Connect(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	go pg.ReportPoolStats(ctx, pool, 15*time.Second)

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	locker := red.NewJobLocker(redisClient)
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Event bus ----
	var bus adapter.EventBus
	if cfg.Runtime.Dev {
		bus = rabbitmq.NewNoopBus(logger)
	} else {
		rb, err := rabbitmq.NewEventBus(cfg.Rabbit, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("rabbitmq")
		}
		defer rb.Close()
		bus = rb
	}

	// ---- Outbound gateways ----
	var (
		mailer adapter.Mailer
		pusher adapter.PushGateway
		texter adapter.SMSGateway
	)
	if cfg.Runtime.Dev {
		mailer = mailAdapter.NewNoopMailer(logger)
		pusher = pushAdapter.NewNoopGateway(logger)
		texter = smsAdapter.NewNoopGateway(logger)
	} else {
		mailer = mailAdapter.NewHTTPMailer(cfg.Mail)
		pusher = pushAdapter.NewOneSignalGateway(cfg.Push)
		texter = smsAdapter.NewHTTPGateway(cfg.SMS)
	}

	// ---- Repositories ----
	jobRepo := pg.NewJobRepo(pool)
	assignmentRepo := pg.NewAssignmentRepo(pool)
	userRepo := pg.NewUserRepo(pool)
	languageRepo := pg.NewLanguageRepo(pool)
	blacklistRepo := pg.NewBlacklistRepo(pool)
	auditRepo := pg.NewAuditLogRepo(pool)
	txm := pg.NewTxManager(pool)

	// ---- Domain services ----
	catalog := i18n.MustDefault()
	clk := clock.System{}
	night := usecase.NightWindow{Start: cfg.Booking.NightStart, End: cfg.Booking.NightEnd}

	notifier := usecase.NewNotificationPolicy(
		mailer, pusher, texter, userRepo, languageRepo,
		catalog, clk, night, cfg.Booking.ReminderLead, logger,
	)
	filter := usecase.NewEligibilityFilter(userRepo, blacklistRepo, assignmentRepo, logger)
	machine := usecase.NewStateMachine(userRepo, assignmentRepo, notifier, filter, clk, logger)
	manager := usecase.NewAssignmentManager(userRepo, assignmentRepo, languageRepo, clk, logger)

	bookings := usecase.NewBookingOrchestrator(
		jobRepo, assignmentRepo, userRepo, languageRepo, auditRepo, txm,
		machine, manager, filter, notifier,
		bus, locker, clk, catalog,
		cfg.Booking.ImmediateOffset, logger,
	)

	// ---- HTTP API ----
	auth := web.NewAuthManager(cfg.Auth.Secret, cfg.Auth.SecureCookie, cfg.Auth.CookieDomain, cfg.Auth.TTL)
	server := web.NewServer(bookings, userRepo, auth, rateLimiter, logger)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: server.Router(),
	}
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("http listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Expiry worker ----
	worker := sched.NewExpiryWorker(cfg.Booking.ExpirySweepInterval, bookings, logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)
}
