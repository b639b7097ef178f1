package optimizer

import (
	"math/rand/v2"
	"testing"

	"outreach-route-service/internal/domain"

	"github.com/stretchr/testify/require"
)

// Great-circle distances in meters between whole-degree offsets on the equator
// or a meridian.
const (
	oneDegree   int64 = 111195
	twoDegrees  int64 = 222390
	diagonalOne int64 = 157249 // between (0,1) and (1,0)
)

var origin = domain.Coordinates{}

func point(id string, lat, lon float64, demand int) domain.DemandPoint {
	return domain.DemandPoint{
		Point:  domain.Point{ID: id, Name: "Point " + id, Location: domain.Coordinates{Lat: lat, Lon: lon}},
		Demand: demand,
	}
}

// diamond returns four points one degree from the origin at (lat, lon)
// (0,1), (1,0), (0,-1) and (-1,0). Adjacent points are diagonalOne apart.
func diamond(demand int) []domain.DemandPoint {
	return []domain.DemandPoint{
		point("p1", 0, 1, demand),
		point("p2", 1, 0, demand),
		point("p3", 0, -1, demand),
		point("p4", -1, 0, demand),
	}
}

func input(points []domain.DemandPoint, vehicles, capacity int) Input {
	return Input{
		Depot:  domain.Point{ID: "depot", Name: "DEPOT", Location: origin},
		Points: points,
		Fleet:  FleetConfig{VehicleCount: vehicles, VehicleCapacity: capacity},
	}
}

func newTestInstance(t *testing.T, points []domain.DemandPoint, vehicles, capacity int) *Instance {
	t.Helper()

	inst, err := NewInstance(input(points, vehicles, capacity))
	require.NoError(t, err)

	inst.Dist, err = BuildDistanceMatrix(inst.Coordinates(), 2)
	require.NoError(t, err)

	return inst
}

// randomPoints scatters n points around a district centre with demands in
// [1, maxDemand]. The same seed always yields the same points.
func randomPoints(seed uint64, n, maxDemand int) []domain.DemandPoint {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	points := make([]domain.DemandPoint, 0, n)
	for i := range n {
		p := point(
			"s"+string(rune('A'+i%26))+string(rune('a'+i/26)),
			12.8+rng.Float64()*0.8,
			77.2+rng.Float64()*0.7,
			1+rng.IntN(maxDemand),
		)
		points = append(points, p)
	}
	return points
}

// routeWith builds a route for vehicle v over the given stops, bookended by
// the depot, with fresh totals.
func routeWith(inst *Instance, v int, stops ...int) *Route {
	r := &Route{Vehicle: v, Stops: append(append([]int{0}, stops...), 0)}
	r.recompute(inst)
	return r
}

// requirePlanInvariants checks coverage, capacity and bookending on the
// external plan.
func requirePlanInvariants(t *testing.T, in Input, plan domain.Plan) {
	t.Helper()

	count := map[string]int{}
	for _, r := range plan.Routes {
		require.GreaterOrEqual(t, len(r.Stops), 3, "used route has no visits")
		require.Equal(t, in.Depot.ID, r.Stops[0].PointID)
		require.Equal(t, in.Depot.ID, r.Stops[len(r.Stops)-1].PointID)

		load := 0
		for _, s := range r.Stops[1 : len(r.Stops)-1] {
			count[s.PointID]++
			load += s.Demand
		}
		require.Equal(t, r.Load, load)
		require.LessOrEqual(t, load, r.Capacity)
	}
	for _, u := range plan.Summary.Unserved {
		count[u.PointID]++
	}

	require.Len(t, count, len(in.Points))
	for _, p := range in.Points {
		require.Equal(t, 1, count[p.ID], "point %s", p.ID)
	}
	require.LessOrEqual(t, len(plan.Routes), in.Fleet.VehicleCount)
}
