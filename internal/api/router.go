package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/studytube-app/studytube/internal/middleware"
)

// HandlerSet holds handler functions injected from main.go to avoid import cycles.
type HandlerSet struct {
	GenerateNotes http.HandlerFunc
	QuotaStatus   http.HandlerFunc
}

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	CORSAllowedOrigins  []string
	GenerateRateLimiter func(http.Handler) http.Handler
	// StoreHealthy pings the quota store; nil means no store is configured.
	StoreHealthy func(*http.Request) error
}

func NewRouter(cfg RouterConfig, h HandlerSet) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.SecurityHeaders)
	r.Use(mw.Logging)
	r.Use(mw.Recovery)
	r.Use(mw.Metrics)
	r.Use(cors.Handler(mw.CORS(cfg.CORSAllowedOrigins)))

	// Liveness probe — always 200, no dependency checks
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Readiness probe — checks the quota store when one is configured
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]string{
			"status":      "healthy",
			"quota_store": "healthy",
		}
		status := http.StatusOK

		if cfg.StoreHealthy == nil {
			health["quota_store"] = "not configured"
		} else if err := cfg.StoreHealthy(r); err != nil {
			health["quota_store"] = "unhealthy"
			health["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}

		JSON(w, status, health)
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if cfg.GenerateRateLimiter != nil {
				r.Use(cfg.GenerateRateLimiter)
			}
			r.Post("/generate-notes", h.GenerateNotes)
		})
		r.Get("/quota", h.QuotaStatus)
	})

	return r
}
