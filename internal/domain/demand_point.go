package domain

// Represents a fixed location known to the planner.
// The depot is a Point; every demand point embeds one.
type Point struct {
	ID       string
	Name     string
	Location Coordinates
}

// Represents a location with outstanding workload to be served by a vehicle.
// Demand is measured in whole units and counts against vehicle capacity.
// Priority is a free-form tag used for reporting and request filtering only;
// it never affects feasibility.
type DemandPoint struct {
	Point
	Demand   int
	Priority string
}
