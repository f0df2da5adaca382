package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"interpreter-booking/internal/domain"
	"interpreter-booking/internal/domain/model"
	"interpreter-booking/internal/domain/ports/repository"
	red "interpreter-booking/internal/infra/redis"
	"interpreter-booking/internal/usecase"
)

type ctxKey string

const ctxUser ctxKey = "auth_user"

// Server exposes the booking operations over HTTP. Authentication is a
// bearer JWT whose subject is the user id; the middleware resolves it to
// the account so handlers work with a *model.User.
type Server struct {
	bookings *usecase.BookingOrchestrator
	users    repository.UserRepository
	auth     *AuthManager
	limiter  *red.RateLimiter
	log      *zerolog.Logger
}

func NewServer(
	bookings *usecase.BookingOrchestrator,
	users repository.UserRepository,
	auth *AuthManager,
	limiter *red.RateLimiter,
	logger *zerolog.Logger,
) *Server {
	l := logger.With().Str("component", "WebServer").Logger()
	return &Server{bookings: bookings, users: users, auth: auth, limiter: limiter, log: &l}
}

// Router assembles the full route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Use(s.rateLimitMiddleware)

		r.Post("/jobs", s.storeJob)
		r.Post("/jobs/{id}/email", s.storeJobEmail)
		r.Get("/jobs/potential", s.potentialJobs)
		r.Post("/jobs/{id}/accept", s.acceptJob)
		r.Post("/jobs/{id}/cancel", s.cancelJob)
		r.Post("/jobs/{id}/end", s.endJob)
		r.Post("/jobs/{id}/not-carried-out", s.customerNotCall)

		r.Get("/users/{id}/jobs", s.userJobs)
		r.Get("/users/{id}/jobs/history", s.userJobsHistory)

		// Admin surface.
		r.Group(func(r chi.Router) {
			r.Use(s.requireRole(model.RoleAdmin))
			r.Get("/jobs", s.queryJobs)
			r.Put("/jobs/{id}", s.updateJob)
			r.Post("/jobs/{id}/reopen", s.reopenJob)
			r.Post("/jobs/{id}/notify", s.notifyTranslators)
			r.Post("/jobs/{id}/resend-sms", s.resendSMS)
		})
	})

	return r
}

// authMiddleware parses the bearer token and loads the account.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.ParseFromRequest(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		user, err := s.users.FindByID(r.Context(), repository.NoTX, claims.Subject)
		if err != nil {
			if err == domain.ErrNotFound {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if !user.Enabled {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		ctx := context.WithValue(r.Context(), ctxUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		user := userFrom(r)
		key := red.UserRouteKey(user.ID, r.Method+" "+r.URL.Path)
		ok, err := s.limiter.Allow(r.Context(), key, 60, time.Minute)
		if err != nil {
			// Rate limiting is advisory; a broken limiter never blocks traffic.
			s.log.Warn().Err(err).Msg("rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userFrom(r).Role != role {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func userFrom(r *http.Request) *model.User {
	u, _ := r.Context().Value(ctxUser).(*model.User)
	return u
}
