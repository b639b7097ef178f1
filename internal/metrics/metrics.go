package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry served on /metrics.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Solves counts completed solves by plan status and construction algorithm.
	Solves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_solves_total", Help: "Completed solves by status and algorithm."},
		[]string{"status", "algorithm"},
	)
	SolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "route_solve_duration_seconds", Help: "Solve wall time in seconds.", Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2, 5, 10, 30}},
		[]string{"algorithm"},
	)
	SolveIterations = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "route_solve_iterations", Help: "Applied local search moves per solve.", Buckets: prometheus.ExponentialBuckets(1, 4, 8)},
	)
	UnservedPoints = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_unserved_points_total", Help: "Demand points left unserved by reason."},
		[]string{"reason"},
	)
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "http_rate_limited_total", Help: "Requests rejected by the rate limiter."},
	)
)

var regOnce sync.Once

// RegisterDefault registers every collector on Registry. Safe to call more
// than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Solves)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(SolveIterations)
		Registry.MustRegister(UnservedPoints)
		Registry.MustRegister(RateLimited)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
