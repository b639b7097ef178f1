package optimizer

import (
	"fmt"
	"slices"

	"outreach-route-service/internal/domain"
)

// Route is the stop sequence driven by one vehicle. Stops always begin and end
// at the depot (index 0); an unused vehicle holds [0, 0].
//
// Load and Distance are caches over Stops. They are recomputed from scratch by
// recompute whenever Stops changes and are never patched incrementally.
type Route struct {
	Vehicle  int
	Stops    []int
	Load     int
	Distance int64
}

func newRoute(vehicle int) *Route {
	return &Route{Vehicle: vehicle, Stops: []int{0, 0}}
}

// Visits returns the number of non-depot stops.
func (r *Route) Visits() int { return len(r.Stops) - 2 }

func (r *Route) recompute(inst *Instance) {
	r.Load = 0
	r.Distance = 0
	for i := 1; i < len(r.Stops); i++ {
		r.Load += inst.Demand(r.Stops[i])
		r.Distance += inst.Dist.At(r.Stops[i-1], r.Stops[i])
	}
}

// insert places point p before position pos.
func (r *Route) insert(pos, p int) {
	r.Stops = slices.Insert(r.Stops, pos, p)
}

// remove deletes and returns the stop at pos.
func (r *Route) remove(pos int) int {
	p := r.Stops[pos]
	r.Stops = slices.Delete(r.Stops, pos, pos+1)
	return p
}

func (r *Route) clone() *Route {
	c := *r
	c.Stops = slices.Clone(r.Stops)
	return &c
}

// Unassigned records a demand point left out of every route.
type Unassigned struct {
	Index  int
	Reason domain.UnservedReason
}

// Solution holds one route slot per vehicle in fleet order plus the points no
// route serves, ordered by index.
type Solution struct {
	Routes     []*Route
	Unserved   []Unassigned
	Iterations int
	TimedOut   bool
}

// NewSolution returns a solution with an empty route for every vehicle.
func NewSolution(inst *Instance) *Solution {
	s := &Solution{Routes: make([]*Route, len(inst.Vehicles))}
	for v := range inst.Vehicles {
		s.Routes[v] = newRoute(v)
	}
	return s
}

// Clone returns a deep copy.
func (s *Solution) Clone() *Solution {
	c := &Solution{
		Routes:     make([]*Route, len(s.Routes)),
		Unserved:   slices.Clone(s.Unserved),
		Iterations: s.Iterations,
		TimedOut:   s.TimedOut,
	}
	for i, r := range s.Routes {
		c.Routes[i] = r.clone()
	}
	return c
}

// TotalDistance sums the cached distance of every route.
func (s *Solution) TotalDistance() int64 {
	var total int64
	for _, r := range s.Routes {
		total += r.Distance
	}
	return total
}

// Verify checks the structural invariants of s against inst: every demand
// point appears exactly once across routes and the unserved list, every route
// is bookended by the depot and respects its vehicle's capacity, and the
// cached totals match the stop sequence.
func (s *Solution) Verify(inst *Instance) error {
	if len(s.Routes) > len(inst.Vehicles) {
		return fmt.Errorf("solution has %d routes for %d vehicles", len(s.Routes), len(inst.Vehicles))
	}

	seen := make([]int, inst.Len())
	driven := make([]bool, len(inst.Vehicles))
	for ri, r := range s.Routes {
		if r.Vehicle < 0 || r.Vehicle >= len(inst.Vehicles) || driven[r.Vehicle] {
			return fmt.Errorf("route %d references vehicle %d", ri, r.Vehicle)
		}
		driven[r.Vehicle] = true
		n := len(r.Stops)
		if n < 2 || r.Stops[0] != 0 || r.Stops[n-1] != 0 {
			return fmt.Errorf("route %d is not bookended by the depot: %v", ri, r.Stops)
		}
		load := 0
		var dist int64
		for i := 1; i < n; i++ {
			p := r.Stops[i]
			if p < 0 || p >= inst.Len() {
				return fmt.Errorf("route %d references point %d", ri, p)
			}
			if i < n-1 {
				if p == 0 {
					return fmt.Errorf("route %d visits the depot mid-route", ri)
				}
				seen[p]++
			}
			load += inst.Demand(p)
			dist += inst.Dist.At(r.Stops[i-1], p)
		}
		if capacity := inst.Vehicles[r.Vehicle].Capacity; load > capacity {
			return fmt.Errorf("route %d carries %d over capacity %d", ri, load, capacity)
		}
		if load != r.Load || dist != r.Distance {
			return fmt.Errorf("route %d has stale totals: load %d/%d distance %d/%d", ri, r.Load, load, r.Distance, dist)
		}
	}
	for _, u := range s.Unserved {
		if u.Index <= 0 || u.Index >= inst.Len() {
			return fmt.Errorf("unserved entry references point %d", u.Index)
		}
		seen[u.Index]++
	}
	for i := 1; i < inst.Len(); i++ {
		if seen[i] != 1 {
			return fmt.Errorf("point %q appears %d times", inst.Points[i].ID, seen[i])
		}
	}
	return nil
}
