package ports

import (
	"context"

	"outreach-route-service/internal/domain"
)

// Port: a boundary for retrieving DemandPoint entities from a data source.
type DemandPointRepository interface {
	// Retrieve all demand points available for routing, ordered by id.
	ListDemandPoints(ctx context.Context) ([]domain.DemandPoint, error)
}
