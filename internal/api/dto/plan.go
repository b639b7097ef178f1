package dto

import "time"

type DepotRequest struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type PointRequest struct {
	PointID  string  `json:"point_id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Demand   int     `json:"demand"`
	Priority string  `json:"priority"`
}

// PlanRequest is the body of POST /plans. Omitted fields fall back to the
// server defaults; omitting points plans over the stored demand points.
type PlanRequest struct {
	Depot           *DepotRequest  `json:"depot"`
	Points          []PointRequest `json:"points"`
	Priorities      []string       `json:"priorities"`
	VehicleCount    *int           `json:"vehicle_count"`
	VehicleCapacity *int           `json:"vehicle_capacity"`
	Algorithm       string         `json:"algorithm"`
	MaxIterations   *int           `json:"max_iterations"`
	MaxDurationMS   *int           `json:"max_duration_ms"`
}

type PlanStopResponse struct {
	PointID                  string  `json:"point_id"`
	Name                     string  `json:"name"`
	Lat                      float64 `json:"lat"`
	Lon                      float64 `json:"lon"`
	Demand                   int     `json:"demand"`
	Priority                 string  `json:"priority,omitempty"`
	CumulativeLoad           int     `json:"cumulative_load"`
	CumulativeDistanceMeters int64   `json:"cumulative_distance_meters"`
}

type PlanRouteResponse struct {
	VehicleID           string             `json:"vehicle_id"`
	Capacity            int                `json:"capacity"`
	Load                int                `json:"load"`
	TotalDistanceMeters int64              `json:"total_distance_meters"`
	Stops               []PlanStopResponse `json:"stops"`
}

type UnservedPointResponse struct {
	PointID   string `json:"point_id"`
	Name      string `json:"name"`
	Demand    int    `json:"demand"`
	Shortfall int    `json:"shortfall"`
	Reason    string `json:"reason"`
}

type PlanSummaryResponse struct {
	TotalDistanceMeters int64                   `json:"total_distance_meters"`
	VehiclesUsed        int                     `json:"vehicles_used"`
	ServedDemand        int                     `json:"served_demand"`
	Unserved            []UnservedPointResponse `json:"unserved"`
	Iterations          int                     `json:"iterations"`
	TimedOut            bool                    `json:"timed_out"`
}

type PlanResponse struct {
	PlanID    string              `json:"plan_id"`
	CreatedAt time.Time           `json:"created_at"`
	Algorithm string              `json:"algorithm"`
	Status    string              `json:"status"`
	Routes    []PlanRouteResponse `json:"routes"`
	Summary   PlanSummaryResponse `json:"summary"`
}
