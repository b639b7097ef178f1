package domain

import "time"

// Status summarizes how a plan was produced.
type Status string

const (
	// Every servable point is routed and local search converged.
	StatusOptimal Status = "optimal"
	// The solve budget ran out before local search converged.
	StatusTimedOut Status = "timed_out"
	// At least one demand point could not be served.
	StatusInfeasible Status = "infeasible"
	// No demand points were given.
	StatusEmpty Status = "empty"
)

// Why a demand point was left out of every route.
type UnservedReason string

const (
	ReasonExceedsCapacity UnservedReason = "exceeds_capacity"
	ReasonFleetExhausted  UnservedReason = "fleet_exhausted"
	ReasonBudgetExhausted UnservedReason = "budget_exhausted"
)

// Represents a single visit in a planned route.
// Cumulative values are measured from the depot departure up to and
// including this stop.
type PlanStop struct {
	PointID                  string
	Name                     string
	Location                 Coordinates
	Demand                   int
	Priority                 string
	CumulativeLoad           int
	CumulativeDistanceMeters int64
}

// Represents the planned route for a single vehicle.
// Stops always begin and end at the depot.
type PlanRoute struct {
	VehicleID           string
	Capacity            int
	Stops               []PlanStop
	Load                int
	TotalDistanceMeters int64
}

// A demand point that no route serves.
type UnservedPoint struct {
	PointID   string
	Name      string
	Demand    int
	Shortfall int
	Reason    UnservedReason
}

type PlanSummary struct {
	TotalDistanceMeters int64
	VehiclesUsed        int
	ServedDemand        int
	Unserved            []UnservedPoint
	Iterations          int
	TimedOut            bool
}

// Represents the output of one optimizer invocation.
// A Plan is immutable planning data; ID and CreatedAt are assigned by
// the planning service when the plan is stored.
type Plan struct {
	ID        string
	CreatedAt time.Time
	Algorithm string
	Status    Status
	Routes    []PlanRoute
	Summary   PlanSummary
}
