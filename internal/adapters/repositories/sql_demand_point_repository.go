package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"outreach-route-service/internal/domain"
	"outreach-route-service/internal/platform/obs"
)

// SQL-backed implementation of the DemandPointRepository port.
type SQLDemandPointRepository struct{ DB *sql.DB }

func NewSQLDemandPointRepository(db *sql.DB) *SQLDemandPointRepository {
	return &SQLDemandPointRepository{DB: db}
}

// Return all demand points stored in the database.
func (s *SQLDemandPointRepository) ListDemandPoints(ctx context.Context) (_ []domain.DemandPoint, err error) {
	defer obs.Time(ctx, "repo.ListDemandPoints")(&err)

	if s.DB == nil {
		return nil, errors.New("sql demand point repository: DB is nil")
	}

	query := `
	SELECT
		point_id,
		name,
		lat,
		lon,
		demand,
		priority
	FROM demand_points
	ORDER BY point_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list demand points: query demand_points table: %w", err)
	}
	defer rows.Close()

	points := make([]domain.DemandPoint, 0, 64)
	for rows.Next() {
		var p domain.DemandPoint
		err := rows.Scan(&p.ID, &p.Name, &p.Location.Lat, &p.Location.Lon, &p.Demand, &p.Priority)
		if err != nil {
			return nil, fmt.Errorf("list demand points: scan row: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list demand points: row iteration: %w", err)
	}

	return points, nil
}
