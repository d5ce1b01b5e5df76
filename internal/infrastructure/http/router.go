package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/dustmassingale/ProjectPlanningTool/internal/infrastructure/http/handlers"
	"github.com/dustmassingale/ProjectPlanningTool/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AccountHandler   *handlers.AccountHandler
	DashboardHandler *handlers.DashboardHandler
	HealthHandler    *handlers.HealthHandler
	RequireSession   func(http.Handler) http.Handler
	Log              zerolog.Logger
	Secure           func(http.Handler) http.Handler
	IPRateLimit      func(http.Handler) http.Handler
	Metrics          bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/account", func(r chi.Router) {
		// Anonymous flows.
		r.Post("/login", cfg.AccountHandler.Login)
		r.Post("/join", cfg.AccountHandler.Join)
		r.Post("/logout", cfg.AccountHandler.Logout)
		r.Post("/forgot-password", cfg.AccountHandler.ForgotPassword)
		r.Get("/reset-password/{code}", cfg.AccountHandler.ResetPasswordLookup)
		r.Post("/reset-password", cfg.AccountHandler.ResetPasswordSubmit)
		// Flows that require an authenticated session.
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireSession)
			r.Post("/switch-team", cfg.AccountHandler.SwitchTeam)
		})
	})

	if cfg.DashboardHandler != nil {
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(cfg.RequireSession)
			r.Get("/", cfg.DashboardHandler.Index)
		})
	}

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
