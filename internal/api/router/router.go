// Package router assembles the HTTP surface: the public transit API, the
// admin endpoints and the web chat socket.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/intelligent-lrt/transit-assistant/internal/httpapi"
	"github.com/intelligent-lrt/transit-assistant/internal/webchat"
	"github.com/intelligent-lrt/transit-assistant/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger          *logging.Logger
	API             *httpapi.Handler
	Auth            *httpapi.AuthHandler
	Webchat         *webchat.Handler
	AdminAuthSecret string
	MetricsHandler  http.Handler
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if cfg.Logger != nil {
		r.Use(requestLogger(cfg.Logger))
	}

	r.Group(func(public chi.Router) {
		public.Get("/health", cfg.API.HealthCheck)
		public.Get("/api/trains", cfg.API.ListTrains)
		public.Get("/api/routes", cfg.API.ListSchedules)
		public.Get("/api/notices", cfg.API.ListNotices)
		public.Post("/api/tickets", cfg.API.CreateTicket)
		public.Get("/api/tickets/user/{userID}", cfg.API.ListUserTickets)
		public.Get("/api/tickets/{ticketID}", cfg.API.GetTicket)
		if cfg.Auth != nil {
			public.Post("/api/admin/login", cfg.Auth.Login)
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.Webchat != nil {
			public.Get("/webchat/ws", cfg.Webchat.HandleWebSocket)
		}
	})

	// Write access to the collections requires an admin token.
	if cfg.AdminAuthSecret != "" {
		r.Group(func(admin chi.Router) {
			admin.Use(httpapi.AdminJWT(cfg.AdminAuthSecret))
			admin.Post("/api/trains", cfg.API.CreateTrain)
			admin.Post("/api/routes", cfg.API.CreateSchedule)
			admin.Post("/api/notices", cfg.API.CreateNotice)
		})
	}

	return r
}

// requestLogger emits structured logs for every HTTP request.
func requestLogger(logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = uuid.NewString()
			}
			logger.Info("request started",
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", reqID,
				"remote_ip", r.RemoteAddr,
			)
			next.ServeHTTP(w, r)
			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", reqID,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
