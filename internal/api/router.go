package api

import (
	"net/http"

	"outreach-route-service/internal/api/handlers"
	"outreach-route-service/internal/metrics"
	"outreach-route-service/internal/ports"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// A nil limiter disables rate limiting on plan creation; a nil db skips the
// readiness ping on /health.
func NewRouter(
	db handlers.Pinger,
	repo ports.DemandPointRepository,
	store ports.PlanStore,
	defaults handlers.PlanDefaults,
	limiter *rate.Limiter,
) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{DB: db}
	pointHandler := &handlers.PointHandler{Repo: repo}
	planHandler := &handlers.PlanHandler{
		Repo:     repo,
		Store:    store,
		Defaults: defaults,
	}

	var create http.Handler = http.HandlerFunc(planHandler.Create)
	if limiter != nil {
		create = rateLimit(limiter, create)
	}

	mux.HandleFunc("/health", healthHandler.Check)
	mux.HandleFunc("/points", pointHandler.List)
	mux.Handle("/plans", create)
	mux.HandleFunc("GET /plans/{id}", planHandler.Get)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux))
}
