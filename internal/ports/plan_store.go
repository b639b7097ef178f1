package ports

import (
	"context"
	"errors"

	"outreach-route-service/internal/domain"
)

// ErrPlanNotFound is returned by PlanStore.GetPlan for unknown or expired ids.
var ErrPlanNotFound = errors.New("plan not found")

// Port: keeps solved plans for later retrieval by id.
type PlanStore interface {
	SavePlan(ctx context.Context, plan domain.Plan) error
	GetPlan(ctx context.Context, id string) (domain.Plan, error)
}
