package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"outreach-route-service/internal/adapters/planstore"
	"outreach-route-service/internal/api/dto"
	"outreach-route-service/internal/api/handlers"
	"outreach-route-service/internal/domain"
	"outreach-route-service/internal/optimizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type stubRepo struct {
	points []domain.DemandPoint
	err    error
}

func (s stubRepo) ListDemandPoints(context.Context) ([]domain.DemandPoint, error) {
	return s.points, s.err
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func testDefaults() handlers.PlanDefaults {
	return handlers.PlanDefaults{
		Depot:     domain.Point{ID: "depot", Name: "DEPOT", Location: domain.Coordinates{Lat: 13.2, Lon: 77.5}},
		Fleet:     optimizer.FleetConfig{VehicleCount: 2, VehicleCapacity: 50},
		Algorithm: optimizer.AlgorithmNearest,
		Budget:    optimizer.Budget{MaxIterations: 200, MaxDuration: time.Second},
		Workers:   2,
		MaxPoints: 4,
	}
}

func storedPoints() []domain.DemandPoint {
	return []domain.DemandPoint{
		{Point: domain.Point{ID: "v1", Name: "Anekal", Location: domain.Coordinates{Lat: 13.25, Lon: 77.55}}, Demand: 30, Priority: "High"},
		{Point: domain.Point{ID: "v2", Name: "Attibele", Location: domain.Coordinates{Lat: 13.1, Lon: 77.6}}, Demand: 25, Priority: "Low"},
	}
}

func newTestRouter(t *testing.T, limiter *rate.Limiter) http.Handler {
	t.Helper()
	return NewRouter(nil, stubRepo{points: storedPoints()}, planstore.NewMemory(time.Hour), testDefaults(), limiter)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, h, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestHealthReportsDatabase(t *testing.T) {
	down := NewRouter(stubPinger{err: errors.New("gone")}, stubRepo{}, planstore.NewMemory(0), testDefaults(), nil)
	rec := do(t, down, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	up := NewRouter(stubPinger{}, stubRepo{}, planstore.NewMemory(0), testDefaults(), nil)
	rec = do(t, up, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestListPoints(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/points", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[dto.ListPointsResponse](t, rec)
	require.Len(t, res.Points, 2)
	assert.Equal(t, "v1", res.Points[0].PointID)
	assert.Equal(t, "High", res.Points[0].Priority)
}

func TestListPointsRepositoryFailure(t *testing.T) {
	h := NewRouter(nil, stubRepo{err: errors.New("db down")}, planstore.NewMemory(0), testDefaults(), nil)

	rec := do(t, h, http.MethodGet, "/points", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestCreateAndGetPlan(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/plans", `{}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[dto.PlanResponse](t, rec)
	assert.NotEmpty(t, created.PlanID)
	assert.Equal(t, "optimal", created.Status)
	assert.Equal(t, "nearest", created.Algorithm)
	assert.Equal(t, 55, created.Summary.ServedDemand)
	assert.NotNil(t, created.Summary.Unserved)

	rec = do(t, h, http.MethodGet, "/plans/"+created.PlanID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decode[dto.PlanResponse](t, rec)
	assert.Equal(t, created.PlanID, fetched.PlanID)
	assert.Equal(t, created.Summary, fetched.Summary)
	assert.Equal(t, created.Routes, fetched.Routes)
}

func TestCreatePlanInline(t *testing.T) {
	body := `{
		"depot": {"id": "hq", "lat": 0, "lon": 0},
		"points": [
			{"point_id": "a", "lat": 0, "lon": 1, "demand": 10},
			{"point_id": "b", "lat": 1, "lon": 0, "demand": 10},
			{"point_id": "c", "lat": 0, "lon": -1, "demand": 10},
			{"point_id": "d", "lat": -1, "lon": 0, "demand": 10}
		],
		"vehicle_count": 2,
		"vehicle_capacity": 15,
		"algorithm": "savings",
		"max_iterations": 10,
		"max_duration_ms": 500
	}`

	rec := do(t, newTestRouter(t, nil), http.MethodPost, "/plans", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	res := decode[dto.PlanResponse](t, rec)
	assert.Equal(t, "infeasible", res.Status)
	assert.Equal(t, "savings", res.Algorithm)
	require.Len(t, res.Routes, 2)
	assert.Equal(t, "hq", res.Routes[0].Stops[0].PointID)
	require.Len(t, res.Summary.Unserved, 2)
	assert.Equal(t, "fleet_exhausted", res.Summary.Unserved[0].Reason)
	assert.Equal(t, 10, res.Summary.Unserved[0].Shortfall)
}

func TestCreatePlanPriorityFilter(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodPost, "/plans", `{"priorities": ["high"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	res := decode[dto.PlanResponse](t, rec)
	assert.Equal(t, 30, res.Summary.ServedDemand)
}

func TestCreatePlanRejectsBadRequests(t *testing.T) {
	h := newTestRouter(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"vehicle_count":`},
		{"unknown field", `{"trucks": 3}`},
		{"two objects", `{} {}`},
		{"zero vehicles", `{"vehicle_count": 0}`},
		{"negative capacity", `{"vehicle_capacity": -5}`},
		{"unknown algorithm", `{"algorithm": "tabu"}`},
		{"negative iterations", `{"max_iterations": -1}`},
		{"negative duration", `{"max_duration_ms": -1}`},
		{"bad latitude", `{"points": [{"point_id": "x", "lat": 95, "lon": 0, "demand": 1}]}`},
		{"duplicate ids", `{"points": [{"point_id": "x", "lat": 1, "lon": 1}, {"point_id": "x", "lat": 2, "lon": 2}]}`},
		{"negative demand", `{"points": [{"point_id": "x", "lat": 1, "lon": 1, "demand": -2}]}`},
		{"too many points", `{"points": [{"point_id": "a", "lat": 1, "lon": 1}, {"point_id": "b", "lat": 1, "lon": 2}, {"point_id": "c", "lat": 1, "lon": 3}, {"point_id": "d", "lat": 1, "lon": 4}, {"point_id": "e", "lat": 1, "lon": 5}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/plans", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestCreatePlanMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/plans", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestGetPlanNotFound(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/plans/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"plan not found"}`, rec.Body.String())
}

func TestCreatePlanRateLimited(t *testing.T) {
	h := newTestRouter(t, rate.NewLimiter(0, 1))

	rec := do(t, h, http.MethodPost, "/plans", `{}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPost, "/plans", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// Reads are never limited.
	rec = do(t, h, http.MethodGet, "/points", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t, nil)
	do(t, h, http.MethodPost, "/plans", `{}`)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "route_solves_total")
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/plans/{id}", routeLabel("/plans/8c1f"))
	assert.Equal(t, "/plans", routeLabel("/plans"))
	assert.Equal(t, "other", routeLabel("/admin"))
}
