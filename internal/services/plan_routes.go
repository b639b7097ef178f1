package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"outreach-route-service/internal/domain"
	"outreach-route-service/internal/metrics"
	"outreach-route-service/internal/optimizer"
	"outreach-route-service/internal/ports"

	"github.com/google/uuid"
)

type PlanRoutesRequest struct {
	Depot domain.Point
	// Inline points. When nil the repository is used.
	Points []domain.DemandPoint
	// Keep only points whose priority tag matches one of these, ignoring case.
	Priorities []string
	Fleet      optimizer.FleetConfig
	Algorithm  string
	Budget     optimizer.Budget
	Workers    int
}

// PlanRoutes solves one routing request and stores the resulting plan.
// Validation failures wrap optimizer.ErrInvalidInput or
// optimizer.ErrInvalidConfig.
func PlanRoutes(
	ctx context.Context,
	req PlanRoutesRequest,
	repo ports.DemandPointRepository,
	store ports.PlanStore,
) (domain.Plan, error) {
	points := req.Points
	if points == nil {
		var err error
		points, err = repo.ListDemandPoints(ctx)
		if err != nil {
			return domain.Plan{}, fmt.Errorf("plan routes: list demand points: %w", err)
		}
	}
	points = filterByPriority(points, req.Priorities)

	solver, err := optimizer.NewSolver(req.Algorithm, req.Workers)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("plan routes: %w", err)
	}

	start := time.Now()
	plan, err := solver.Solve(ctx, optimizer.Input{
		Depot:  req.Depot,
		Points: points,
		Fleet:  req.Fleet,
	}, req.Budget)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("plan routes: %w", err)
	}
	recordSolve(plan, time.Since(start))

	plan.ID = uuid.NewString()
	plan.CreatedAt = time.Now().UTC()

	if err := store.SavePlan(ctx, plan); err != nil {
		return domain.Plan{}, fmt.Errorf("plan routes: save plan: %w", err)
	}

	return plan, nil
}

// GetPlan returns a previously stored plan or ports.ErrPlanNotFound.
func GetPlan(ctx context.Context, id string, store ports.PlanStore) (domain.Plan, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Plan{}, ports.ErrPlanNotFound
	}

	plan, err := store.GetPlan(ctx, id)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("get plan: %w", err)
	}
	return plan, nil
}

func filterByPriority(points []domain.DemandPoint, priorities []string) []domain.DemandPoint {
	if len(priorities) == 0 {
		return points
	}

	keep := make(map[string]struct{}, len(priorities))
	for _, p := range priorities {
		keep[strings.ToLower(strings.TrimSpace(p))] = struct{}{}
	}

	out := make([]domain.DemandPoint, 0, len(points))
	for _, p := range points {
		if _, ok := keep[strings.ToLower(strings.TrimSpace(p.Priority))]; ok {
			out = append(out, p)
		}
	}
	return out
}

func recordSolve(plan domain.Plan, took time.Duration) {
	metrics.Solves.WithLabelValues(string(plan.Status), plan.Algorithm).Inc()
	metrics.SolveDuration.WithLabelValues(plan.Algorithm).Observe(took.Seconds())
	metrics.SolveIterations.Observe(float64(plan.Summary.Iterations))
	for _, u := range plan.Summary.Unserved {
		metrics.UnservedPoints.WithLabelValues(string(u.Reason)).Inc()
	}
}
