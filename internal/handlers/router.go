// internal/handlers/router.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ammerola/reorder-engine/internal/handlers/middleware"
	"github.com/ammerola/reorder-engine/internal/pkg/config"
	"github.com/ammerola/reorder-engine/internal/pkg/metrics"
)

// NewRouter registers the routes. Metrics wraps the mux directly so it sees
// the matched pattern.
func NewRouter(cfg *config.Config, reorder *ReorderHandler, health *HealthHandler, l *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	const apiV1 = "/api/v1"

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /ready", health.Readiness)
	if cfg.Server.EnableMetrics {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	auth := middleware.Auth(cfg.Security.JWTSecret, cfg.Security.JWTIssuer, l)
	triggers := middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)

	mux.Handle("POST "+apiV1+"/reorder/run",
		middleware.Chain(http.HandlerFunc(reorder.RunScheduled), auth, triggers))
	mux.Handle("POST "+apiV1+"/reorder/skus/{skuId}",
		middleware.Chain(http.HandlerFunc(reorder.RunForSKU), auth, triggers))
	mux.Handle("GET "+apiV1+"/reorder/runs/last",
		middleware.Chain(http.HandlerFunc(reorder.LastRun), auth))

	mws := []func(http.Handler) http.Handler{
		middleware.RequestID(cfg.Security.RequestIDHeader),
		middleware.Logger(l),
		middleware.Recovery(l),
		middleware.CORS(cfg.Security.AllowedOrigins),
	}
	if cfg.Security.SecureHeaders {
		mws = append(mws, middleware.SecureHeaders)
	}

	return middleware.Chain(middleware.Metrics(mux), mws...)
}
