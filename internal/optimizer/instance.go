package optimizer

import (
	"strings"

	"outreach-route-service/internal/domain"
)

// DefaultDepotID names the depot when the caller leaves its id empty.
const DefaultDepotID = "depot"

// FleetConfig describes a homogeneous fleet.
type FleetConfig struct {
	VehicleCount    int
	VehicleCapacity int
}

// Input is everything a single solve needs from the caller.
type Input struct {
	Depot  domain.Point
	Points []domain.DemandPoint
	Fleet  FleetConfig
}

// Instance is the indexed working set shared by every solver stage.
// Points[0] is the depot with zero demand; demand points follow in input
// order. Dist is attached by the solver once the distance model has run.
type Instance struct {
	Points   []domain.DemandPoint
	Vehicles []domain.Vehicle
	Dist     *DistanceMatrix
}

// NewInstance validates the input and builds the indexed working set.
// Fleet problems are reported before point problems.
func NewInstance(in Input) (*Instance, error) {
	if in.Fleet.VehicleCount <= 0 {
		return nil, invalidConfig("vehicle count must be positive, got %d", in.Fleet.VehicleCount)
	}
	if in.Fleet.VehicleCapacity <= 0 {
		return nil, invalidConfig("vehicle capacity must be positive, got %d", in.Fleet.VehicleCapacity)
	}

	depot := in.Depot
	depot.ID = strings.TrimSpace(depot.ID)
	if depot.ID == "" {
		depot.ID = DefaultDepotID
	}
	if depot.Name == "" {
		depot.Name = strings.ToUpper(depot.ID)
	}
	if !depot.Location.InRange() {
		return nil, invalidInput("depot %q has out-of-range coordinates lat=%v lon=%v", depot.ID, depot.Location.Lat, depot.Location.Lon)
	}

	points := make([]domain.DemandPoint, 0, len(in.Points)+1)
	points = append(points, domain.DemandPoint{Point: depot})

	seen := map[string]int{depot.ID: 0}
	for i, p := range in.Points {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, invalidInput("demand point at index %d has an empty id", i)
		}
		if prev, ok := seen[id]; ok {
			return nil, invalidInput("demand point id %q collides with point #%d", id, prev)
		}
		if !p.Location.InRange() {
			return nil, invalidInput("demand point %q has out-of-range coordinates lat=%v lon=%v", id, p.Location.Lat, p.Location.Lon)
		}
		if p.Demand < 0 {
			return nil, invalidInput("demand point %q has negative demand %d", id, p.Demand)
		}
		seen[id] = i + 1
		p.ID = id
		points = append(points, p)
	}

	return &Instance{
		Points:   points,
		Vehicles: domain.NewFleet(in.Fleet.VehicleCount, in.Fleet.VehicleCapacity),
	}, nil
}

// Len returns the number of indexed points including the depot.
func (in *Instance) Len() int { return len(in.Points) }

// Empty reports whether there is nothing to route.
func (in *Instance) Empty() bool { return len(in.Points) <= 1 }

// Demand returns the demand of point i. The depot has zero demand.
func (in *Instance) Demand(i int) int { return in.Points[i].Demand }

// MaxCapacity returns the largest single-vehicle capacity in the fleet.
func (in *Instance) MaxCapacity() int {
	c := 0
	for _, v := range in.Vehicles {
		c = max(c, v.Capacity)
	}
	return c
}

// Coordinates returns point locations in index order.
func (in *Instance) Coordinates() []domain.Coordinates {
	out := make([]domain.Coordinates, len(in.Points))
	for i, p := range in.Points {
		out[i] = p.Location
	}
	return out
}
