package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// InitSchema creates the tables used by the service. Statements are portable
// between SQLite and Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDemandPointsQuery := `
	CREATE TABLE IF NOT EXISTS demand_points (
		point_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		demand INTEGER NOT NULL CHECK (demand >= 0),
		priority TEXT NOT NULL DEFAULT ''
	);
	`

	createPlansQuery := `
	CREATE TABLE IF NOT EXISTS plans (
		plan_id TEXT PRIMARY KEY,
		created_at BIGINT NOT NULL,
		expires_at BIGINT NOT NULL,
		body TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_demand_points_priority
	ON demand_points(priority);
	`

	statements := []string{
		createDemandPointsQuery,
		createPlansQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// DemandPointSeed is one entry of the seed JSON file.
type DemandPointSeed struct {
	PointID  string  `json:"point_id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Demand   int     `json:"demand"`
	Priority string  `json:"priority"`
}

// SeedFromJSON upserts demand points from a JSON file.
func SeedFromJSON(ctx context.Context, db *sql.DB, dialect Dialect, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed demand points: read %q: %w", jsonPath, err)
	}

	var data []DemandPointSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed demand points: parse json: %w", err)
	}

	rows := make([]DemandPointSeed, 0, len(data))
	for i, item := range data {
		item.PointID = strings.TrimSpace(item.PointID)
		if item.PointID == "" {
			return 0, fmt.Errorf("seed demand points: item at index %d: point_id cannot be empty", i+1)
		}
		if item.Demand < 0 {
			return 0, fmt.Errorf("seed demand points: point_id=%s: negative demand %d", item.PointID, item.Demand)
		}
		if item.Lat < -90 || item.Lat > 90 || item.Lon < -180 || item.Lon > 180 {
			return 0, fmt.Errorf("seed demand points: point_id=%s: coordinates out of range", item.PointID)
		}
		if strings.TrimSpace(item.Name) == "" {
			item.Name = item.PointID
		}
		rows = append(rows, item)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed demand points: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf(`
	INSERT INTO demand_points (
		point_id,
		name,
		lat,
		lon,
		demand,
		priority
	)
	VALUES (%s)
	ON CONFLICT (point_id) DO UPDATE
	SET name = EXCLUDED.name,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		demand = EXCLUDED.demand,
		priority = EXCLUDED.priority;
	`, dialect.Placeholders(6))
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("seed demand points: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range rows {
		if _, err := stmt.ExecContext(ctx, p.PointID, p.Name, p.Lat, p.Lon, p.Demand, p.Priority); err != nil {
			return 0, fmt.Errorf("seed demand points: insert point_id=%s: %w", p.PointID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed demand points: commit tx: %w", err)
	}

	return len(rows), nil
}
