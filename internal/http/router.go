package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/goalreacher/goalreacher/internal/auth"
	"github.com/goalreacher/goalreacher/internal/backend"
	"github.com/goalreacher/goalreacher/internal/config"
	"github.com/goalreacher/goalreacher/internal/http/ratelimit"
	"github.com/goalreacher/goalreacher/internal/metrics"
	"github.com/goalreacher/goalreacher/internal/proxy"
	"github.com/goalreacher/goalreacher/internal/ui"
)

// NewRouter wires all HTTP routes: pages, the session bridge, and the
// backend proxy layer.
func NewRouter(cfg *config.Config, backendClient *backend.Client, authService *auth.Service) http.Handler {
	r := chi.NewRouter()

	// Auth endpoints: 5 requests per second, burst of 10
	authRateLimiter := ratelimit.NewIPRateLimiter(rate.Limit(5), 10, 5*time.Minute, cfg.TrustedProxies)
	// Proxy endpoints: 20 requests per second, burst of 50
	apiRateLimiter := ratelimit.NewIPRateLimiter(rate.Limit(20), 50, 5*time.Minute, cfg.TrustedProxies)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// No local state to probe; readiness equals liveness here.
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.PrometheusEnabled {
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			metrics.Handler().ServeHTTP(w, r)
		})
	}

	uiHandler := ui.NewHandler(cfg, authService, backendClient)
	r.Get("/", uiHandler.Home)
	r.Get("/wizard", uiHandler.Wizard)
	r.Get("/welcome", uiHandler.Welcome)
	r.Get("/calendar", uiHandler.Calendar)

	r.Route("/auth", func(r chi.Router) {
		r.Use(authRateLimiter.Middleware())
		r.Get("/login", authService.BeginOAuth)
		r.Get("/callback", authService.HandleOAuthCallback)
		r.Post("/logout", authService.Logout)
	})

	proxyHandler := proxy.NewHandler(cfg, backendClient)
	r.Route("/api", func(r chi.Router) {
		r.Use(apiRateLimiter.Middleware())
		if len(cfg.CORSAllowedOrigins) > 0 {
			r.Use(cors.New(cors.Options{
				AllowedOrigins:   cfg.CORSAllowedOrigins,
				AllowedMethods:   []string{http.MethodGet, http.MethodPost},
				AllowedHeaders:   []string{"Content-Type"},
				AllowCredentials: true,
			}).Handler)
		}

		// Generation routes take their content from the request and need
		// no identity.
		r.Post("/chat/goal", proxyHandler.GenerateGoal)
		r.Post("/chat/status", proxyHandler.RegenerateStatus)
		r.Post("/chat/milestones", proxyHandler.GenerateMilestones)
		r.Post("/chat/missions", proxyHandler.GenerateMissions)
		r.Post("/chat/schedules", proxyHandler.GenerateSchedules)

		r.Group(func(r chi.Router) {
			r.Use(authService.RequireSession)
			r.Post("/chat/update", proxyHandler.SaveProgress)
			r.Post("/events/toggle", proxyHandler.ToggleEvent)
			r.Get("/get-status", proxyHandler.GetStatus)
			r.Get("/load", proxyHandler.LoadEvents)
		})

		if cfg.DebugRoutesEnabled {
			r.Get("/test-cookie", proxyHandler.TestCookie)
		}
	})

	return r
}
